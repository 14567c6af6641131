package httpkit

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lead_advisor_backend/platform/apperr"
	"lead_advisor_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jwtSecret string

func (s jwtSecret) GetJWTAccessSecret() string { return string(s) }

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter(secret string) *gin.Engine {
	r := gin.New()
	r.Use(AuthRequired(jwtSecret(secret)))
	r.GET("/me", func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": identity.UserID.String(), "admin": identity.HasRole("admin")})
	})
	return r
}

func TestAuthRequiredAcceptsAccessToken(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, "s3cret", jwt.MapClaims{
		"sub":   userID.String(),
		"type":  "access",
		"roles": []string{"admin"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	newAuthRouter("s3cret").ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
	assert.Contains(t, rec.Body.String(), `"admin":true`)
}

func TestAuthRequiredRejects(t *testing.T) {
	valid := jwt.MapClaims{"sub": uuid.NewString(), "type": "access", "exp": time.Now().Add(time.Hour).Unix()}
	refresh := jwt.MapClaims{"sub": uuid.NewString(), "type": "refresh", "exp": time.Now().Add(time.Hour).Unix()}
	expired := jwt.MapClaims{"sub": uuid.NewString(), "type": "access", "exp": time.Now().Add(-time.Hour).Unix()}
	badSub := jwt.MapClaims{"sub": "not-a-uuid", "type": "access", "exp": time.Now().Add(time.Hour).Unix()}

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "wrong secret", header: "Bearer " + signToken(t, "other", valid)},
		{name: "refresh token", header: "Bearer " + signToken(t, "s3cret", refresh)},
		{name: "expired", header: "Bearer " + signToken(t, "s3cret", expired)},
		{name: "bad subject", header: "Bearer " + signToken(t, "s3cret", badSub)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			newAuthRouter("s3cret").ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error":"`)
		})
	}
}

func TestRequireRole(t *testing.T) {
	newRouter := func(roles []string, authenticated bool) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if authenticated {
				c.Set(ContextUserIDKey, uuid.New())
				c.Set(ContextRolesKey, roles)
			}
		})
		r.POST("/admin", RequireRole("admin"), func(c *gin.Context) { c.Status(http.StatusNoContent) })
		return r
	}

	tests := []struct {
		name          string
		roles         []string
		authenticated bool
		code          int
	}{
		{name: "admin", roles: []string{"operator", "admin"}, authenticated: true, code: http.StatusNoContent},
		{name: "missing role", roles: []string{"operator"}, authenticated: true, code: http.StatusForbidden},
		{name: "no identity", code: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(tt.roles, tt.authenticated).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin", nil))
			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusForbidden {
				assert.JSONEq(t, `{"error":"forbidden"}`, rec.Body.String())
			}
		})
	}
}

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	limiter := NewIPRateLimiter(0.0001, 2, logger.Discard())
	r := gin.New()
	r.Use(limiter.RateLimit())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRequestIDPropagates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		id, _ := c.Request.Context().Value(logger.RequestIDKey).(string)
		c.String(http.StatusOK, id)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Body.String())
	assert.Equal(t, "req-123", rec.Header().Get(HeaderRequestID))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(rec.Body.String())
	assert.NoError(t, err, "generated request id should be a uuid")
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestHandleErrorMapsKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{name: "not found", err: apperr.NotFound("lead not found"), code: http.StatusNotFound, body: "lead not found"},
		{name: "validation", err: apperr.Validation("bad"), code: http.StatusBadRequest, body: "bad"},
		{name: "wrapped conflict", err: errors.Join(errors.New("ctx"), apperr.Conflict("taken")), code: http.StatusConflict, body: "taken"},
		{name: "plain error hidden", err: errors.New("pg: connection refused"), code: http.StatusInternalServerError, body: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			require.True(t, HandleError(c, tt.err))
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	assert.False(t, HandleError(c, nil))
}
