package scheduler

import (
	"context"
	"strings"
	"time"

	"lead_advisor_backend/platform/config"
	"lead_advisor_backend/platform/logger"

	"github.com/hibiken/asynq"
)

const defaultSweepInterval = time.Hour

// Periodic registers the advisor sweep as an asynq cron entry. The worker
// picks up each enqueued run.
type Periodic struct {
	scheduler *asynq.Scheduler
	cronspec  string
	queue     string
	batchSize int
	log       *logger.Logger
}

func NewPeriodic(cfg config.SchedulerConfig, log *logger.Logger) (*Periodic, error) {
	opt, err := schedulerRedisOpt(cfg)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}

	return &Periodic{
		scheduler: asynq.NewScheduler(opt, &asynq.SchedulerOpts{
			Location: time.UTC,
			Logger:   newAsynqLogger(log),
		}),
		cronspec:  cronSpec(cfg.GetAdvisorSweepCron()),
		queue:     queueName(cfg),
		batchSize: cfg.GetAdvisorSweepBatchSize(),
		log:       log,
	}, nil
}

// Run registers the sweep entry and blocks until ctx is done.
func (p *Periodic) Run(ctx context.Context) error {
	task, err := NewAdvisorSweepTask(AdvisorSweepPayload{BatchSize: p.batchSize})
	if err != nil {
		return err
	}

	entryID, err := p.scheduler.Register(p.cronspec, task, asynq.Queue(p.queue), asynq.Unique(sweepUniqueTTL))
	if err != nil {
		return err
	}
	p.log.Info("advisor sweep scheduled", "cron", p.cronspec, "entryId", entryID)

	if err := p.scheduler.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	p.scheduler.Shutdown()
	return nil
}

// SweepLoop runs the sweep in-process on a ticker. It is the fallback when
// Redis is not configured.
type SweepLoop struct {
	sweeper   Sweeper
	interval  time.Duration
	batchSize int
	log       *logger.Logger
}

func NewSweepLoop(cfg config.SchedulerConfig, sweeper Sweeper, log *logger.Logger) *SweepLoop {
	if log == nil {
		log = logger.Discard()
	}
	return &SweepLoop{
		sweeper:   sweeper,
		interval:  everyInterval(cfg.GetAdvisorSweepCron()),
		batchSize: cfg.GetAdvisorSweepBatchSize(),
		log:       log,
	}
}

func (l *SweepLoop) Run(ctx context.Context) {
	if l == nil || l.sweeper == nil {
		return
	}

	l.sweep(ctx)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep(ctx)
		}
	}
}

func (l *SweepLoop) sweep(ctx context.Context) {
	result, err := l.sweeper.Sweep(ctx, l.batchSize)
	if err != nil {
		if ctx.Err() == nil {
			l.log.Warn("advisor sweep failed", "error", err)
		}
		return
	}
	if result.Cold > 0 {
		l.log.Info("advisor sweep found cold leads", "cold", result.Cold, "evaluated", result.Evaluated)
	}
}

func cronSpec(spec string) string {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "@every " + defaultSweepInterval.String()
	}
	return spec
}

// everyInterval reads the duration of an "@every <d>" spec. Other cron
// expressions fall back to hourly.
func everyInterval(spec string) time.Duration {
	rest, ok := strings.CutPrefix(strings.TrimSpace(spec), "@every ")
	if !ok {
		return defaultSweepInterval
	}
	d, err := time.ParseDuration(strings.TrimSpace(rest))
	if err != nil || d <= 0 {
		return defaultSweepInterval
	}
	return d
}
