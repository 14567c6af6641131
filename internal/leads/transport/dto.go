package transport

import (
	"strings"
	"time"

	"lead_advisor_backend/internal/leads/advisor"
	"lead_advisor_backend/internal/leads/domain"
	"lead_advisor_backend/internal/leads/repository"

	"github.com/google/uuid"
)

// =====================================
// Requests
// =====================================

type PuppyRequest struct {
	ID     string `json:"id" validate:"max=64"`
	Name   string `json:"name" validate:"required,max=120"`
	Color  string `json:"color" validate:"max=60"`
	Sex    string `json:"sex" validate:"max=30"`
	Reason string `json:"reason" validate:"max=500"`
}

// LeadSnapshotRequest carries a lead evaluated without touching the store.
// Timestamps are kept as strings so malformed values reach the advisor,
// which treats them as missing.
type LeadSnapshotRequest struct {
	ID               string         `json:"id" validate:"required,max=64"`
	Name             string         `json:"name" validate:"max=200"`
	Message          string         `json:"message" validate:"max=4000"`
	Status           string         `json:"status" validate:"max=40"`
	City             string         `json:"city" validate:"max=120"`
	State            string         `json:"state" validate:"max=60"`
	PreferredColor   string         `json:"preferredColor" validate:"max=60"`
	PreferredSex     string         `json:"preferredSex" validate:"max=30"`
	CreatedAt        string         `json:"createdAt" validate:"max=64"`
	UpdatedAt        string         `json:"updatedAt" validate:"max=64"`
	AIScore          *float64       `json:"aiScore"`
	AIIntent         string         `json:"aiIntent" validate:"max=120"`
	AIUrgency        string         `json:"aiUrgency" validate:"max=40"`
	Phone            string         `json:"phone" validate:"max=40"`
	MatchedPuppy     *PuppyRequest  `json:"matchedPuppy"`
	SuggestedPuppies []PuppyRequest `json:"suggestedPuppies" validate:"max=20,dive"`
}

type EvaluateRequest struct {
	Lead LeadSnapshotRequest `json:"lead"`
	Now  *time.Time          `json:"now"`
}

type SummaryRequest struct {
	Leads []LeadSnapshotRequest `json:"leads" validate:"required,min=1,max=1000,dive"`
	Now   *time.Time            `json:"now"`
}

type SequenceRequest struct {
	Lead LeadSnapshotRequest `json:"lead"`
}

// DashboardRequest filters the stored-lead dashboard. status and color take
// repeated parameters or comma- or pipe-separated lists. from and to are
// calendar days in UTC, both inclusive.
type DashboardRequest struct {
	Status          []string `form:"status" validate:"max=4,dive,leadstatus"`
	Color           []string `form:"color" validate:"max=20,dive,max=60"`
	City            string   `form:"city" validate:"max=120"`
	From            string   `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To              string   `form:"to" validate:"omitempty,datetime=2006-01-02"`
	ExcludeTerminal bool     `form:"excludeTerminal"`
	Limit           int      `form:"limit" validate:"omitempty,min=1,max=500"`
	Offset          int      `form:"offset" validate:"omitempty,min=0"`
}

// Normalize splits list parameters and folds status spellings so
// "em-contato" and "Em Contato" both read as em_contato.
func (r *DashboardRequest) Normalize() {
	r.Status = splitList(r.Status, domain.StatusKey)
	r.Color = splitList(r.Color, strings.TrimSpace)
}

// ListParams converts a validated request into repository filters.
func (r DashboardRequest) ListParams() repository.ListParams {
	params := repository.ListParams{
		Colors:          r.Color,
		City:            r.City,
		ExcludeTerminal: r.ExcludeTerminal,
		Limit:           r.Limit,
		Offset:          r.Offset,
	}
	for _, status := range r.Status {
		params.Statuses = append(params.Statuses, domain.LeadStatus(status))
	}
	if from, ok := parseDay(r.From); ok {
		params.CreatedFrom = &from
	}
	if to, ok := parseDay(r.To); ok {
		before := to.AddDate(0, 0, 1)
		params.CreatedBefore = &before
	}
	return params
}

func splitList(values []string, fold func(string) string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, value := range values {
		for _, part := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == '|' }) {
			part = fold(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			out = append(out, part)
		}
	}
	return out
}

func parseDay(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	day, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// SweepRequest asks for an on-demand advisor sweep. Zero uses the
// configured batch size.
type SweepRequest struct {
	BatchSize int `form:"batchSize"`
}

// =====================================
// Responses
// =====================================

type WhatsAppLink struct {
	Style domain.MessageStyle `json:"style"`
	URL   string              `json:"url"`
}

type LeadAdviceResponse struct {
	LeadID   uuid.UUID         `json:"leadId"`
	Name     string            `json:"name"`
	Status   domain.LeadStatus `json:"status"`
	Phone    string            `json:"phone,omitempty"`
	WhatsApp string            `json:"whatsapp,omitempty"`
	Advisor  advisor.Snapshot  `json:"advisor"`
	Links    []WhatsAppLink    `json:"links"`
}

type SequenceDraft struct {
	Stage domain.SequenceStage `json:"stage"`
	Label string               `json:"label"`
	Text  string               `json:"text"`
	URL   string               `json:"url,omitempty"`
}

type SequenceResponse struct {
	LeadID   string          `json:"leadId"`
	WhatsApp string          `json:"whatsapp,omitempty"`
	Drafts   []SequenceDraft `json:"drafts"`
}

type EvaluatedLead struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Advisor advisor.Snapshot `json:"advisor"`
}

type SummaryResponse struct {
	Items   []EvaluatedLead         `json:"items"`
	Summary advisor.PrioritySummary `json:"summary"`
}

// DashboardResponse pairs a filtered page of advice with StatusSummary, the
// stored status counts over every lead regardless of filters.
type DashboardResponse struct {
	Items         []LeadAdviceResponse      `json:"items"`
	Summary       advisor.PrioritySummary   `json:"summary"`
	StatusSummary map[domain.LeadStatus]int `json:"statusSummary"`
	GeneratedAt   time.Time                 `json:"generatedAt"`
}

// SweepResponse reports a sweep that was either queued for the scheduler
// worker or run inline.
type SweepResponse struct {
	Queued    bool `json:"queued"`
	Evaluated int  `json:"evaluated"`
	Cold      int  `json:"cold"`
}

type ApplyStatusResponse struct {
	LeadID         uuid.UUID               `json:"leadId"`
	PreviousStatus domain.LeadStatus       `json:"previousStatus"`
	Status         domain.LeadStatus       `json:"status"`
	Suggestion     domain.StatusSuggestion `json:"suggestion"`
	Applied        bool                    `json:"applied"`
}
