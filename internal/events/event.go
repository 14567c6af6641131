// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"lead_advisor_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// =============================================================================
// Lead Advisor Domain Events
// =============================================================================

// LeadWentCold is published by the advisor sweep for every lead that has
// been silent for at least 48 hours without reaching a terminal status.
// Consumers decide whether and how to reach out; ReactivationMessage is a draft.
type LeadWentCold struct {
	BaseEvent
	LeadID              uuid.UUID `json:"leadId"`
	LeadName            string    `json:"leadName"`
	HoursSinceUpdate    int       `json:"hoursSinceUpdate"`
	Suggestion          string    `json:"suggestion"`
	ReactivationMessage string    `json:"reactivationMessage"`
	WhatsApp            string    `json:"whatsapp,omitempty"`
}

func (e LeadWentCold) EventName() string { return "leads.advisor.went_cold" }

// LeadStatusApplied is published when an advisor suggestion is persisted as the stored status.
type LeadStatusApplied struct {
	BaseEvent
	LeadID     uuid.UUID `json:"leadId"`
	OldStatus  string    `json:"oldStatus"`
	NewStatus  string    `json:"newStatus"`
	Suggestion string    `json:"suggestion"`
	ActorID    uuid.UUID `json:"actorId,omitempty"`
}

func (e LeadStatusApplied) EventName() string { return "leads.advisor.status_applied" }
