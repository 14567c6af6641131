package scheduler

import (
	"context"
	"fmt"
	"time"

	"lead_advisor_backend/internal/leads/service"
	"lead_advisor_backend/platform/config"
	"lead_advisor_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Sweeper runs one advisor pass over the open leads.
type Sweeper interface {
	Sweep(ctx context.Context, batchSize int) (service.SweepResult, error)
}

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	sweeper   Sweeper
	batchSize int
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, sweeper Sweeper, log *logger.Logger) (*Worker, error) {
	opt, err := schedulerRedisOpt(cfg)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
		Logger: newAsynqLogger(log),
	})

	w := newWorker(sweeper, cfg.GetAdvisorSweepBatchSize(), log)
	w.server = server
	return w, nil
}

func newWorker(sweeper Sweeper, batchSize int, log *logger.Logger) *Worker {
	if log == nil {
		log = logger.Discard()
	}
	w := &Worker{
		mux:       asynq.NewServeMux(),
		sweeper:   sweeper,
		batchSize: batchSize,
		log:       log,
	}
	w.mux.HandleFunc(TaskAdvisorSweep, w.handleAdvisorSweep)
	return w
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	// Start instead of Run: Run waits for OS signals and would ignore ctx.
	if err := w.server.Start(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
		return
	}

	<-ctx.Done()
	w.server.Shutdown()
}

func (w *Worker) handleAdvisorSweep(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAdvisorSweepPayload(task)
	if err != nil {
		// Malformed payloads never succeed on retry.
		return fmt.Errorf("parse sweep payload: %v: %w", err, asynq.SkipRetry)
	}

	batchSize := payload.BatchSize
	if batchSize <= 0 {
		batchSize = w.batchSize
	}

	start := time.Now()
	result, err := w.sweeper.Sweep(ctx, batchSize)
	if err != nil {
		w.log.Error("advisor sweep failed", "error", err, "evaluated", result.Evaluated)
		return err
	}

	w.log.Info("advisor sweep task done",
		"evaluated", result.Evaluated,
		"cold", result.Cold,
		"durationMs", time.Since(start).Milliseconds(),
	)
	return nil
}
