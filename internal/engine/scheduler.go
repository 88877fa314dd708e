package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs ingestion on a fixed interval.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	log    *slog.Logger
}

// NewScheduler creates a Scheduler that runs ingestion every interval. Runs
// that would overlap a previous one are skipped.
func NewScheduler(eng *Engine, ingestionInterval time.Duration, log *slog.Logger) (*Scheduler, error) {
	if ingestionInterval <= 0 {
		return nil, fmt.Errorf("ingestion interval must be positive, got %s", ingestionInterval)
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	s := &Scheduler{
		cron:   c,
		engine: eng,
		log:    log,
	}

	if _, err := c.AddFunc("@every "+ingestionInterval.String(), s.runIngestion); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runIngestion() {
	ctx := context.Background()
	s.log.Info("scheduled ingestion starting")
	if _, err := s.engine.RunIngestion(ctx); err != nil {
		if errors.Is(err, ErrIngestionRunning) {
			s.log.Warn("scheduled ingestion skipped", "reason", err)
			return
		}
		s.log.Error("scheduled ingestion failed", "error", err)
	}
}
