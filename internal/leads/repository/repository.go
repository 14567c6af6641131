package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"lead_advisor_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("lead not found")

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository struct {
	db DB
}

func New(db DB) *Repository {
	return &Repository{db: db}
}

// AdvisorRow is a lead joined with its AI insight and best matched puppy.
// Text columns are coalesced to empty strings; nullable timestamps and
// scores stay pointers so "missing" is kept distinct from zero.
type AdvisorRow struct {
	ID                uuid.UUID
	Name              string
	Phone             string
	Status            string
	City              string
	State             string
	PreferredColor    string
	PreferredSex      string
	Message           string
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	AIScore           *float64
	AIIntent          string
	AIUrgency         string
	MatchedPuppyID    string
	MatchedPuppyName  string
	MatchedPuppyColor string
	MatchedPuppySex   string
	SuggestedPuppies  []byte
}

// ListParams filters advisor rows. Statuses are canonical stored statuses and
// match every alias of each; empty means any. Colors and City compare
// case-insensitively. CreatedFrom is inclusive, CreatedBefore exclusive.
// Limit defaults to 50 and is capped at 500.
type ListParams struct {
	Statuses        []domain.LeadStatus
	Colors          []string
	City            string
	CreatedFrom     *time.Time
	CreatedBefore   *time.Time
	ExcludeTerminal bool
	Limit           int
	Offset          int
}

const advisorColumns = `
	SELECT l.id,
		COALESCE(l.nome, ''), COALESCE(l.telefone, ''), COALESCE(l.status, ''),
		COALESCE(l.cidade, ''), COALESCE(l.estado, ''),
		COALESCE(l.cor_preferida, ''), COALESCE(l.sexo_preferido, ''), COALESCE(l.mensagem, ''),
		l.created_at, l.updated_at,
		ai.score, COALESCE(ai.intent, ''), COALESCE(ai.urgency, ''),
		COALESCE(p.id::text, ''), COALESCE(p.name, ''), COALESCE(p.color, ''), COALESCE(p.sex, ''),
		COALESCE(ai.suggested_puppies, '[]'::jsonb)
	FROM leads l`

const advisorJoins = `
	LEFT JOIN lead_ai_insights ai ON ai.lead_id = l.id
	LEFT JOIN puppies p ON p.id = COALESCE(ai.matched_puppy_id, l.puppy_id)`

// statusKeySQL folds a raw status column the way domain.StatusKey does.
func statusKeySQL(column string) string {
	return `trim(both '_' from regexp_replace(lower(COALESCE(` + column + `, '')), '[\s-]+', '_', 'g'))`
}

// canonicalStatusJoin resolves l.status to st.status through the alias table
// passed as $1/$2. Unknown spellings resolve to novo, as in the service.
var canonicalStatusJoin = `
	CROSS JOIN LATERAL (
		SELECT COALESCE(
			(SELECT m.status FROM unnest($1::text[], $2::text[]) AS m(alias, status)
			WHERE m.alias = ` + statusKeySQL("l.status") + `),
			'novo') AS status
	) st`

func scanAdvisorRow(row pgx.Row) (AdvisorRow, error) {
	var r AdvisorRow
	err := row.Scan(
		&r.ID,
		&r.Name, &r.Phone, &r.Status,
		&r.City, &r.State,
		&r.PreferredColor, &r.PreferredSex, &r.Message,
		&r.CreatedAt, &r.UpdatedAt,
		&r.AIScore, &r.AIIntent, &r.AIUrgency,
		&r.MatchedPuppyID, &r.MatchedPuppyName, &r.MatchedPuppyColor, &r.MatchedPuppySex,
		&r.SuggestedPuppies,
	)
	return r, err
}

// GetAdvisorRow loads one lead with everything the advisor needs.
func (r *Repository) GetAdvisorRow(ctx context.Context, id uuid.UUID) (AdvisorRow, error) {
	row, err := scanAdvisorRow(r.db.QueryRow(ctx, advisorColumns+advisorJoins+`
	WHERE l.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return AdvisorRow{}, ErrNotFound
	}
	if err != nil {
		return AdvisorRow{}, err
	}
	return row, nil
}

// ListAdvisorRows returns a page of leads, newest first.
func (r *Repository) ListAdvisorRows(ctx context.Context, params ListParams) ([]AdvisorRow, error) {
	aliases, aliasStatuses := domain.AliasTable()

	statuses := make([]string, 0, len(params.Statuses))
	for _, status := range params.Statuses {
		statuses = append(statuses, string(status))
	}
	excluded := []string{}
	if params.ExcludeTerminal {
		excluded = []string{string(domain.LeadStatusFechado), string(domain.LeadStatusPerdido)}
	}
	colors := make([]string, 0, len(params.Colors))
	for _, color := range params.Colors {
		if color = foldText(color); color != "" {
			colors = append(colors, color)
		}
	}

	rows, err := r.db.Query(ctx, advisorColumns+canonicalStatusJoin+advisorJoins+`
	WHERE (cardinality($3::text[]) = 0 OR st.status = ANY($3::text[]))
		AND st.status <> ALL($4::text[])
		AND (cardinality($5::text[]) = 0 OR lower(trim(COALESCE(l.cor_preferida, ''))) = ANY($5::text[]))
		AND ($6::text = '' OR lower(trim(COALESCE(l.cidade, ''))) = $6::text)
		AND ($7::timestamptz IS NULL OR l.created_at >= $7::timestamptz)
		AND ($8::timestamptz IS NULL OR l.created_at < $8::timestamptz)
	ORDER BY l.created_at DESC, l.id
	LIMIT $9 OFFSET $10`,
		aliases, aliasStatuses, statuses, excluded, colors, foldText(params.City),
		params.CreatedFrom, params.CreatedBefore,
		clampLimit(params.Limit), max(params.Offset, 0),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]AdvisorRow, 0)
	for rows.Next() {
		item, err := scanAdvisorRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return items, nil
}

// UpdateStatus stores a new status and bumps updated_at. Leads already in a
// terminal status are left untouched and reported as ErrNotFound, the same
// as a missing lead.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE leads
		SET status = $2, updated_at = now()
		WHERE id = $1 AND `+statusKeySQL("status")+` <> ALL($3::text[])
	`, id, string(status), domain.TerminalStatusAliases())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus counts every stored lead per canonical status. All four
// statuses are present in the result, zero when no lead has them.
func (r *Repository) CountByStatus(ctx context.Context) (map[domain.LeadStatus]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT COALESCE(status, ''), count(*)
		FROM leads
		GROUP BY 1
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[domain.LeadStatus]int{
		domain.LeadStatusNovo:      0,
		domain.LeadStatusEmContato: 0,
		domain.LeadStatusFechado:   0,
		domain.LeadStatusPerdido:   0,
	}
	for rows.Next() {
		var (
			raw   string
			count int64
		)
		if err := rows.Scan(&raw, &count); err != nil {
			return nil, err
		}
		counts[domain.NormalizeLeadStatus(raw)] += int(count)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return counts, nil
}

func foldText(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
