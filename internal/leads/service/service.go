// Package service hosts the lead advisor: it loads leads from the store,
// runs the advisor engine and turns the results into responses, status
// updates and cold-lead events.
package service

import (
	"context"
	"errors"
	"time"

	"lead_advisor_backend/internal/events"
	"lead_advisor_backend/internal/leads/advisor"
	"lead_advisor_backend/internal/leads/domain"
	"lead_advisor_backend/internal/leads/repository"
	"lead_advisor_backend/internal/leads/transport"
	"lead_advisor_backend/internal/observability/metrics"
	"lead_advisor_backend/platform/apperr"
	"lead_advisor_backend/platform/logger"
	"lead_advisor_backend/platform/phone"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	msgLeadNotFound     = "lead not found"
	msgLeadChanged      = "lead status changed during update"
	msgStoreFailure     = "failed to load leads"
	msgInvalidDateRange = "from must not be after to"
	defaultWorkers      = 8
	defaultSweepSize    = 200
)

type Service struct {
	repo    repository.LeadsRepository
	engine  *advisor.Engine
	bus     events.Bus
	metrics *metrics.AdvisorMetrics
	log     *logger.Logger
	workers int
	region  string
	now     func() time.Time
}

type Option func(*Service)

// WithClock replaces the wall clock used when a caller does not supply "now".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithMetrics(m *metrics.AdvisorMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithBatchWorkers bounds the parallelism of batch evaluation.
func WithBatchWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithPhoneRegion sets the region used to read national phone numbers.
func WithPhoneRegion(region string) Option {
	return func(s *Service) {
		if region != "" {
			s.region = region
		}
	}
}

func New(repo repository.LeadsRepository, engine *advisor.Engine, bus events.Bus, log *logger.Logger, opts ...Option) *Service {
	if engine == nil {
		engine = advisor.New(advisor.Config{})
	}
	if log == nil {
		log = logger.Discard()
	}
	s := &Service{
		repo:    repo,
		engine:  engine,
		bus:     bus,
		log:     log,
		workers: defaultWorkers,
		region:  phone.DefaultRegion,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock reading.
func (s *Service) Now() time.Time {
	return s.now()
}

// EvaluateSnapshot runs the engine on one lead and records metrics.
func (s *Service) EvaluateSnapshot(lead advisor.LeadSnapshot, now time.Time) advisor.Snapshot {
	snap := s.engine.Build(lead, now)
	s.metrics.ObserveEvaluation(string(snap.Priority.Level), string(snap.Status.Suggestion), snap.Loss.IsCold)
	s.log.AdvisorEvaluated(lead.ID, string(snap.Priority.Level), string(snap.Status.Suggestion), snap.Compatibility.Score, snap.Loss.IsCold)
	return snap
}

// EvaluateBatch evaluates leads in parallel. Results keep input order. The
// only error is cancellation of ctx.
func (s *Service) EvaluateBatch(ctx context.Context, leads []advisor.LeadSnapshot, now time.Time) ([]advisor.Snapshot, error) {
	results := make([]advisor.Snapshot, len(leads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range leads {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.EvaluateSnapshot(leads[i], now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Evaluate loads one lead and returns its advice with WhatsApp links.
func (s *Service) Evaluate(ctx context.Context, id uuid.UUID) (transport.LeadAdviceResponse, error) {
	row, err := s.getRow(ctx, id)
	if err != nil {
		return transport.LeadAdviceResponse{}, err
	}
	snap := s.EvaluateSnapshot(snapshotFromRow(row), s.now())
	return s.adviceResponse(row, snap), nil
}

// Sequence loads one lead and drafts its drip campaign.
func (s *Service) Sequence(ctx context.Context, id uuid.UUID) (transport.SequenceResponse, error) {
	row, err := s.getRow(ctx, id)
	if err != nil {
		return transport.SequenceResponse{}, err
	}
	digits, _ := phone.WhatsAppDigits(row.Phone, s.region)
	return transport.SequenceResponse{
		LeadID:   row.ID.String(),
		WhatsApp: digits,
		Drafts:   sequenceDrafts(digits, s.engine.Sequence(snapshotFromRow(row))),
	}, nil
}

// SequenceFor drafts the drip campaign for a posted lead.
func (s *Service) SequenceFor(req transport.LeadSnapshotRequest) transport.SequenceResponse {
	digits, _ := phone.WhatsAppDigits(req.Phone, s.region)
	return transport.SequenceResponse{
		LeadID:   req.ID,
		WhatsApp: digits,
		Drafts:   sequenceDrafts(digits, s.engine.Sequence(snapshotFromRequest(req))),
	}
}

// EvaluateRequest evaluates a posted lead. A nil now uses the service clock.
func (s *Service) EvaluateRequest(req transport.LeadSnapshotRequest, now *time.Time) advisor.Snapshot {
	return s.EvaluateSnapshot(snapshotFromRequest(req), s.resolveNow(now))
}

// Dashboard evaluates a page of stored leads and summarises their priorities.
func (s *Service) Dashboard(ctx context.Context, params repository.ListParams) (transport.DashboardResponse, error) {
	if params.CreatedFrom != nil && params.CreatedBefore != nil && !params.CreatedFrom.Before(*params.CreatedBefore) {
		return transport.DashboardResponse{}, apperr.Validation(msgInvalidDateRange).WithOp("Dashboard")
	}

	start := time.Now()
	defer s.metrics.ObserveBatch("dashboard", start)

	rows, err := s.repo.ListAdvisorRows(ctx, params)
	if err != nil {
		s.log.DatabaseError("list_advisor_rows", err)
		return transport.DashboardResponse{}, apperr.Wrap(apperr.KindInternal, msgStoreFailure, err)
	}

	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		s.log.DatabaseError("count_by_status", err)
		return transport.DashboardResponse{}, apperr.Wrap(apperr.KindInternal, msgStoreFailure, err)
	}

	now := s.now()
	leads := make([]advisor.LeadSnapshot, len(rows))
	for i, row := range rows {
		leads[i] = snapshotFromRow(row)
	}
	snaps, err := s.EvaluateBatch(ctx, leads, now)
	if err != nil {
		return transport.DashboardResponse{}, err
	}

	items := make([]transport.LeadAdviceResponse, len(rows))
	entries := make([]advisor.SummaryEntry, len(rows))
	for i, row := range rows {
		items[i] = s.adviceResponse(row, snaps[i])
		entries[i] = advisor.SummaryEntry{ID: row.ID.String(), Name: row.Name, Advisor: snaps[i]}
	}

	return transport.DashboardResponse{
		Items:         items,
		Summary:       advisor.SummarizePriorities(entries),
		StatusSummary: counts,
		GeneratedAt:   now,
	}, nil
}

// Summarize evaluates posted leads and summarises their priorities.
func (s *Service) Summarize(ctx context.Context, reqs []transport.LeadSnapshotRequest, now *time.Time) (transport.SummaryResponse, error) {
	start := time.Now()
	defer s.metrics.ObserveBatch("summary", start)

	leads := make([]advisor.LeadSnapshot, len(reqs))
	for i, req := range reqs {
		leads[i] = snapshotFromRequest(req)
	}
	snaps, err := s.EvaluateBatch(ctx, leads, s.resolveNow(now))
	if err != nil {
		return transport.SummaryResponse{}, err
	}

	items := make([]transport.EvaluatedLead, len(reqs))
	entries := make([]advisor.SummaryEntry, len(reqs))
	for i, req := range reqs {
		items[i] = transport.EvaluatedLead{ID: req.ID, Name: req.Name, Advisor: snaps[i]}
		entries[i] = advisor.SummaryEntry{ID: req.ID, Name: req.Name, Advisor: snaps[i]}
	}

	return transport.SummaryResponse{Items: items, Summary: advisor.SummarizePriorities(entries)}, nil
}

// ApplySuggestedStatus persists the stored status matching the advisor's
// suggestion. Leads already closed or lost are returned unchanged.
func (s *Service) ApplySuggestedStatus(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (transport.ApplyStatusResponse, error) {
	row, err := s.getRow(ctx, id)
	if err != nil {
		return transport.ApplyStatusResponse{}, err
	}

	now := s.now()
	previous := domain.NormalizeLeadStatus(row.Status)
	snap := s.EvaluateSnapshot(snapshotFromRow(row), now)
	resp := transport.ApplyStatusResponse{
		LeadID:         row.ID,
		PreviousStatus: previous,
		Status:         previous,
		Suggestion:     snap.Status.Suggestion,
	}

	if previous.IsTerminal() {
		return resp, nil
	}

	target := snap.Status.Suggestion.ToLeadStatus()
	if target == previous && row.Status == string(previous) {
		return resp, nil
	}

	if err := s.repo.UpdateStatus(ctx, row.ID, target); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.ApplyStatusResponse{}, apperr.Conflict(msgLeadChanged).WithOp("ApplySuggestedStatus")
		}
		s.log.DatabaseError("update_status", err)
		return transport.ApplyStatusResponse{}, apperr.Wrap(apperr.KindInternal, "failed to update lead status", err)
	}

	resp.Status = target
	resp.Applied = true

	if s.bus != nil {
		s.bus.Publish(ctx, events.LeadStatusApplied{
			BaseEvent:  events.NewBaseEvent(now),
			LeadID:     row.ID,
			OldStatus:  row.Status,
			NewStatus:  string(target),
			Suggestion: string(snap.Status.Suggestion),
			ActorID:    actorID,
		})
	}

	return resp, nil
}

// SweepResult reports one pass over the non-terminal leads.
type SweepResult struct {
	Evaluated int `json:"evaluated"`
	Cold      int `json:"cold"`
}

// Sweep pages through every non-terminal lead, evaluates it and publishes
// LeadWentCold for each cold one. It stops early when ctx is cancelled.
func (s *Service) Sweep(ctx context.Context, batchSize int) (SweepResult, error) {
	if batchSize <= 0 {
		batchSize = defaultSweepSize
	}
	start := time.Now()
	defer s.metrics.ObserveBatch("sweep", start)

	now := s.now()
	var result SweepResult
	for offset := 0; ; offset += batchSize {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rows, err := s.repo.ListAdvisorRows(ctx, repository.ListParams{
			ExcludeTerminal: true,
			Limit:           batchSize,
			Offset:          offset,
		})
		if err != nil {
			s.log.DatabaseError("sweep_list_advisor_rows", err)
			return result, err
		}

		leads := make([]advisor.LeadSnapshot, len(rows))
		for i, row := range rows {
			leads[i] = snapshotFromRow(row)
		}
		snaps, err := s.EvaluateBatch(ctx, leads, now)
		if err != nil {
			return result, err
		}

		for i, snap := range snaps {
			result.Evaluated++
			if !snap.Loss.IsCold {
				continue
			}
			result.Cold++
			s.publishCold(ctx, rows[i], snap, now)
		}

		if len(rows) < batchSize {
			break
		}
	}

	s.log.Info("advisor sweep finished", "evaluated", result.Evaluated, "cold", result.Cold)
	return result, nil
}

func (s *Service) publishCold(ctx context.Context, row repository.AdvisorRow, snap advisor.Snapshot, now time.Time) {
	s.log.ColdLeadDetected(row.ID.String(), snap.Loss.HoursSinceUpdate)
	if s.bus == nil {
		return
	}
	digits, _ := phone.WhatsAppDigits(row.Phone, s.region)
	s.bus.Publish(ctx, events.LeadWentCold{
		BaseEvent:           events.NewBaseEvent(now),
		LeadID:              row.ID,
		LeadName:            row.Name,
		HoursSinceUpdate:    snap.Loss.HoursSinceUpdate,
		Suggestion:          string(snap.Status.Suggestion),
		ReactivationMessage: snap.Loss.ReactivationMessage,
		WhatsApp:            digits,
	})
}

func (s *Service) getRow(ctx context.Context, id uuid.UUID) (repository.AdvisorRow, error) {
	row, err := s.repo.GetAdvisorRow(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.AdvisorRow{}, apperr.NotFound(msgLeadNotFound)
	}
	if err != nil {
		s.log.DatabaseError("get_advisor_row", err)
		return repository.AdvisorRow{}, apperr.Wrap(apperr.KindInternal, msgStoreFailure, err)
	}
	return row, nil
}

func (s *Service) adviceResponse(row repository.AdvisorRow, snap advisor.Snapshot) transport.LeadAdviceResponse {
	digits, _ := phone.WhatsAppDigits(row.Phone, s.region)
	return transport.LeadAdviceResponse{
		LeadID:   row.ID,
		Name:     row.Name,
		Status:   domain.NormalizeLeadStatus(row.Status),
		Phone:    phone.NormalizeE164(row.Phone, s.region),
		WhatsApp: digits,
		Advisor:  snap,
		Links:    messageLinks(digits, snap.Messages),
	}
}

func (s *Service) resolveNow(now *time.Time) time.Time {
	if now != nil && !now.IsZero() {
		return now.UTC()
	}
	return s.now()
}
