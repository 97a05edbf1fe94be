package update

import (
	"context"
	"sync"
	"time"

	"github.com/gdt-tools/gdtpack/pkg/helper"
	"github.com/gdt-tools/gdtpack/pkg/logger"
)

// OutcomeCallback receives the result of the scheduled update cycle.
type OutcomeCallback func(Outcome)

// Scheduler arms the single automatic update check: one cycle, a fixed
// delay after startup, never repeated within a process lifetime.
type Scheduler struct {
	service  *Service
	delay    time.Duration
	onResult OutcomeCallback
	logger   *logger.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler firing the service once after delay.
func NewScheduler(service *Service, delay time.Duration, onResult OutcomeCallback) *Scheduler {
	return &Scheduler{
		service:  service,
		delay:    delay,
		onResult: onResult,
		logger:   logger.NewLogger("update-scheduler"),
	}
}

// Start arms the one-shot timer. Calling Start while armed is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.Warn("Update scheduler is already running")
		return
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.running = true

	s.wg.Add(1)
	go s.run()

	s.logger.WithFields(logger.Fields{"delay": s.delay.String()}).Info("Update scheduler started")
}

// Stop cancels a pending trigger and waits for the goroutine to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()

	if s.cancel != nil {
		s.cancel()
	}
	wasRunning := s.running
	s.running = false
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if wasRunning {
			s.logger.Debug("Update scheduler stopped")
		}
	case <-time.After(5 * time.Second):
		s.logger.Warn("Update scheduler stop timed out")
	}
}

// run waits out the startup delay and performs the single cycle.
func (s *Scheduler) run() {
	defer helper.RecoverPanic(s.logger, "update-scheduler")
	defer s.wg.Done()

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-s.ctx.Done():
		s.logger.Debug("Update scheduler cancelled before firing")
		return
	case <-timer.C:
	}

	outcome := s.service.RunOnce(s.ctx)
	s.logger.WithFields(logger.Fields{"outcome": string(outcome)}).Info("Scheduled update cycle finished")

	if s.onResult != nil {
		s.onResult(outcome)
	}
}
