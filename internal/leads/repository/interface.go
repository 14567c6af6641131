package repository

import (
	"context"

	"lead_advisor_backend/internal/leads/domain"

	"github.com/google/uuid"
)

// AdvisorReader loads the joined lead rows the advisor evaluates.
type AdvisorReader interface {
	GetAdvisorRow(ctx context.Context, id uuid.UUID) (AdvisorRow, error)
	ListAdvisorRows(ctx context.Context, params ListParams) ([]AdvisorRow, error)
	CountByStatus(ctx context.Context) (map[domain.LeadStatus]int, error)
}

// StatusWriter persists stored lead statuses.
type StatusWriter interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus) error
}

// LeadsRepository is the full store surface used by the advisor service.
type LeadsRepository interface {
	AdvisorReader
	StatusWriter
}

var _ LeadsRepository = (*Repository)(nil)
