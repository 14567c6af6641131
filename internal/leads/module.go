// Package leads provides the lead advisory bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"context"

	"lead_advisor_backend/internal/events"
	apphttp "lead_advisor_backend/internal/http"
	"lead_advisor_backend/internal/leads/advisor"
	"lead_advisor_backend/internal/leads/handler"
	"lead_advisor_backend/internal/leads/repository"
	"lead_advisor_backend/internal/leads/service"
	"lead_advisor_backend/internal/observability/metrics"
	"lead_advisor_backend/internal/scheduler"
	"lead_advisor_backend/platform/config"
	"lead_advisor_backend/platform/logger"
	"lead_advisor_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	log     *logger.Logger
}

// NewModule creates and initializes the leads module with all its dependencies.
// db is usually a *pgxpool.Pool.
func NewModule(db repository.DB, eventBus events.Bus, val *validator.Validator, cfg config.AdvisorConfig, m *metrics.AdvisorMetrics, log *logger.Logger) *Module {
	if log == nil {
		log = logger.Discard()
	}

	repo := repository.New(db)
	engine := advisor.New(advisor.Config{Brand: cfg.GetAdvisorBrandName()})

	svc := service.New(repo, engine, eventBus, log,
		service.WithMetrics(m),
		service.WithBatchWorkers(cfg.GetAdvisorBatchWorkers()),
		service.WithPhoneRegion(cfg.GetPhoneDefaultRegion()),
	)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the advisor service for the scheduler worker.
func (m *Module) Service() *service.Service {
	return m.service
}

// SetSweepEnqueuer queues on-demand sweeps on the scheduler instead of running
// them inside the request.
func (m *Module) SetSweepEnqueuer(sweeps scheduler.SweepEnqueuer) {
	m.handler.SetSweepEnqueuer(sweeps)
}

// RegisterHandlers subscribes the audit log to advisor events.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadWentCold{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.LeadWentCold)
		if !ok {
			return nil
		}
		m.log.WithContext(ctx).Info("lead went cold",
			"leadId", e.LeadID,
			"hoursSinceUpdate", e.HoursSinceUpdate,
			"suggestion", e.Suggestion,
			"hasWhatsApp", e.WhatsApp != "",
		)
		return nil
	}))

	bus.Subscribe(events.LeadStatusApplied{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.LeadStatusApplied)
		if !ok {
			return nil
		}
		m.log.WithContext(ctx).Info("advisor status applied",
			"leadId", e.LeadID,
			"from", e.OldStatus,
			"to", e.NewStatus,
			"actorId", e.ActorID,
		)
		return nil
	}))
}

// RegisterRoutes mounts advisor routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// All advisor routes require authentication
	m.handler.RegisterRoutes(ctx.Protected.Group("/advisor"), ctx.Protected.Group("/leads"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
