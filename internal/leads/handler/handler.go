package handler

import (
	"net/http"

	"lead_advisor_backend/internal/leads/domain"
	"lead_advisor_backend/internal/leads/service"
	"lead_advisor_backend/internal/leads/transport"
	"lead_advisor_backend/internal/scheduler"
	"lead_advisor_backend/platform/apperr"
	"lead_advisor_backend/platform/httpkit"
	"lead_advisor_backend/platform/validator"

	"github.com/gin-gonic/gin"
	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid lead id"

	roleAdmin      = "admin"
	sweepBatchRule = "omitempty,min=1,max=1000"
	leadStatusTag  = "leadstatus"
)

type Handler struct {
	svc    *service.Service
	val    *validator.Validator
	sweeps scheduler.SweepEnqueuer
}

// New registers the leadstatus validation tag on val and returns a handler
// that runs on-demand sweeps inline until SetSweepEnqueuer is called.
func New(svc *service.Service, val *validator.Validator) *Handler {
	if err := val.RegisterValidation(leadStatusTag, validLeadStatus); err != nil {
		panic(err)
	}
	return &Handler{svc: svc, val: val}
}

// SetSweepEnqueuer hands on-demand sweeps to the scheduler worker instead of
// running them in the request.
func (h *Handler) SetSweepEnqueuer(sweeps scheduler.SweepEnqueuer) {
	h.sweeps = sweeps
}

func validLeadStatus(fl playground.FieldLevel) bool {
	return domain.LeadStatus(fl.Field().String()).IsValid()
}

// RegisterRoutes mounts the stateless advisor endpoints on advisorGroup and
// the stored-lead endpoints on leadsGroup.
func (h *Handler) RegisterRoutes(advisorGroup, leadsGroup *gin.RouterGroup) {
	advisorGroup.POST("/evaluate", h.EvaluateSnapshot)
	advisorGroup.POST("/summary", h.Summarize)
	advisorGroup.POST("/sequence", h.SequenceSnapshot)

	leadsGroup.GET("/advisor/dashboard", h.Dashboard)
	leadsGroup.POST("/advisor/sweep", httpkit.RequireRole(roleAdmin), h.Sweep)
	leadsGroup.GET("/:id/advisor", h.Evaluate)
	leadsGroup.GET("/:id/advisor/sequence", h.Sequence)
	leadsGroup.POST("/:id/advisor/apply-status", h.ApplyStatus)
}

// EvaluateSnapshot evaluates a lead posted in the body.
// POST /api/v1/advisor/evaluate
func (h *Handler) EvaluateSnapshot(c *gin.Context) {
	var req transport.EvaluateRequest
	if !h.bindJSON(c, &req) {
		return
	}
	httpkit.OK(c, h.svc.EvaluateRequest(req.Lead, req.Now))
}

// Summarize evaluates a posted batch and groups it by priority.
// POST /api/v1/advisor/summary
func (h *Handler) Summarize(c *gin.Context) {
	var req transport.SummaryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.svc.Summarize(c.Request.Context(), req.Leads, req.Now)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SequenceSnapshot drafts the drip campaign for a posted lead.
// POST /api/v1/advisor/sequence
func (h *Handler) SequenceSnapshot(c *gin.Context) {
	var req transport.SequenceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	httpkit.OK(c, h.svc.SequenceFor(req.Lead))
}

// Dashboard evaluates a filtered page of stored leads.
// GET /api/v1/leads/advisor/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	var req transport.DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgInvalidRequest))
		return
	}
	req.Normalize()
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, validationError(err))
		return
	}

	result, err := h.svc.Dashboard(c.Request.Context(), req.ListParams())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Sweep runs an advisor sweep on demand. With a scheduler attached the sweep
// is queued and the call returns 202; otherwise it runs inline. A zero
// batchSize leaves the choice to the worker or service default.
// POST /api/v1/leads/advisor/sweep
func (h *Handler) Sweep(c *gin.Context) {
	var req transport.SweepRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgInvalidRequest))
		return
	}
	if err := h.val.Var(req.BatchSize, sweepBatchRule); err != nil {
		httpkit.HandleError(c, apperr.Validation(msgValidationFailed).WithDetails(map[string]string{"batchSize": "range"}))
		return
	}
	if h.sweeps != nil {
		if err := h.sweeps.EnqueueSweep(c.Request.Context(), req.BatchSize); err != nil {
			httpkit.HandleError(c, apperr.Wrap(apperr.KindInternal, "failed to queue sweep", err))
			return
		}
		httpkit.JSON(c, http.StatusAccepted, transport.SweepResponse{Queued: true})
		return
	}

	result, err := h.svc.Sweep(c.Request.Context(), req.BatchSize)
	if err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindInternal, "advisor sweep failed", err))
		return
	}
	httpkit.OK(c, transport.SweepResponse{Evaluated: result.Evaluated, Cold: result.Cold})
}

// Evaluate returns the advice for a stored lead.
// GET /api/v1/leads/:id/advisor
func (h *Handler) Evaluate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.svc.Evaluate(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Sequence returns drip drafts for a stored lead.
// GET /api/v1/leads/:id/advisor/sequence
func (h *Handler) Sequence(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.svc.Sequence(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ApplyStatus persists the status the advisor suggests.
// POST /api/v1/leads/:id/advisor/apply-status
func (h *Handler) ApplyStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var actorID uuid.UUID
	if identity, ok := httpkit.GetIdentity(c); ok {
		actorID = identity.UserID
	}

	result, err := h.svc.ApplySuggestedStatus(c.Request.Context(), id, actorID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgInvalidRequest))
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, validationError(err))
		return false
	}
	return true
}

func validationError(err error) *apperr.Error {
	return apperr.Validation(msgValidationFailed).WithDetails(validator.FieldErrors(err))
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgInvalidID))
		return uuid.UUID{}, false
	}
	return id, true
}
