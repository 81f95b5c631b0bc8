package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"hotelier/config"
	"hotelier/internal/domains/reconciliation/service"
	"hotelier/shared/clock"
)

// Scheduler fires the reconciliation run once a day at the configured
// anchor hour. A failed run is logged and retried at the next anchor,
// never immediately.
type Scheduler struct {
	svc   service.Reconciliation
	cfg   *config.Config
	clock clock.Clock

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func New(svc service.Reconciliation, cfg *config.Config, clk clock.Clock) *Scheduler {
	return &Scheduler{
		svc:   svc,
		cfg:   cfg,
		clock: clk,
	}
}

// NextRun returns the next anchor instant strictly after now. At or
// past today's anchor the run moves to tomorrow.
func NextRun(now time.Time, anchorHour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), anchorHour, 0, 0, 0, now.Location())
	if !now.Before(next) {
		next = next.Add(24 * time.Hour)
	}

	return next
}

// Start launches the scheduling loop. Calling Start on a running
// scheduler is a no-op; after Stop it may be started again.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	if !s.cfg.Hotel.Reconciliation.Enable {
		log.Info().Msg("reconciliation scheduler disabled by configuration")

		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.loop(ctx, s.done)
}

// Stop halts the loop and waits for an in-flight run to finish its
// budget.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	<-s.done
	s.running = false
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	anchorHour := s.cfg.Hotel.Reconciliation.AnchorHour

	next := NextRun(s.clock.Now(), anchorHour)
	timer := time.NewTimer(time.Until(next))
	defer timer.Stop()

	log.Info().Time("nextRun", next).Msg("reconciliation scheduler started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("reconciliation scheduler stopped")

			return
		case <-timer.C:
			s.runOnce(ctx)

			next = NextRun(s.clock.Now(), anchorHour)
			timer.Reset(time.Until(next))

			log.Info().Time("nextRun", next).Msg("reconciliation rescheduled")
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	budget := time.Duration(s.cfg.Hotel.Reconciliation.BudgetSeconds) * time.Second

	runCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	now := s.clock.Now()

	result, err := s.svc.Run(runCtx, now)
	if err != nil {
		log.Error().Err(err).Time("runAt", now).Msg("reconciliation run failed, waiting for next anchor")

		return
	}

	log.Info().
		Int("cancelled", result.Cancelled).
		Int("noShowBilled", result.NoShowBilled).
		Msg("reconciliation run finished")
}
