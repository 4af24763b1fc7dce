package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/vhenriksson/wind-monitor/internal/logger"
)

// Acquirer runs one acquisition cycle against the configured provider.
// Implemented by wind.Service.
type Acquirer interface {
	RunCycle(ctx context.Context) error
}

// RetryState is the bounded retry budget of the current scheduling period.
// The scheduler owns it exclusively; attemptCount never exceeds maxRetries.
type RetryState struct {
	attemptCount int
	maxRetries   int
	retryDelay   time.Duration
}

// Scheduler triggers acquisition on a fixed interval and, independently,
// retries failed cycles a bounded number of times. The two timers do not
// coordinate: a pending retry may overlap the next periodic fetch, and
// whichever cycle finishes last wins in the store.
type Scheduler struct {
	scheduler    *gocron.Scheduler
	service      Acquirer
	interval     time.Duration
	cycleTimeout time.Duration

	mu         sync.Mutex
	retry      RetryState
	retryTimer *time.Timer
	stopped    bool
}

// New creates a new Scheduler with the given refresh interval and retry
// policy.
func New(service Acquirer, interval, retryDelay time.Duration, maxRetries int) *Scheduler {
	return &Scheduler{
		scheduler:    gocron.NewScheduler(time.UTC),
		service:      service,
		interval:     interval,
		cycleTimeout: 30 * time.Second,
		retry: RetryState{
			maxRetries: maxRetries,
			retryDelay: retryDelay,
		},
	}
}

// Start schedules the periodic job and runs the first cycle immediately, so
// data is available as soon as the provider answers rather than one full
// interval after boot.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.interval = 30 * time.Minute
	}

	logger.Infof("scheduler: refreshing every %s", s.interval)

	_, err := s.scheduler.Every(s.interval).StartImmediately().Do(s.periodicCycle)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the periodic job and disarms any pending retry.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	if s.retryTimer != nil {
		s.retryTimer.Stop()
		s.retryTimer = nil
	}
	s.mu.Unlock()

	s.scheduler.Stop()
	logger.Info("scheduler: stopped")
}

// TriggerNow runs one out-of-band cycle asynchronously. It does not consume
// or arm the retry budget; a success still resets it.
func (s *Scheduler) TriggerNow() {
	go s.runCycle(false)
}

// periodicCycle opens a new scheduling period: the retry budget resets and
// one acquisition runs. A retry armed late in the previous period is left
// to fire; it simply runs alongside this cycle.
func (s *Scheduler) periodicCycle() {
	s.mu.Lock()
	s.retry.attemptCount = 0
	s.mu.Unlock()

	s.runCycle(true)
}

func (s *Scheduler) retryCycle() {
	s.runCycle(true)
}

// runCycle executes one acquisition and, when armRetry is set, schedules a
// one-shot retry on failure while budget remains.
func (s *Scheduler) runCycle(armRetry bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cycleTimeout)
	defer cancel()

	err := s.service.RunCycle(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		s.retry.attemptCount = 0
		return
	}
	if !armRetry || s.stopped {
		return
	}
	if s.retry.attemptCount >= s.retry.maxRetries {
		logger.Infof("scheduler: giving up after %d retries, next attempt at the periodic refresh", s.retry.maxRetries)
		return
	}

	s.retry.attemptCount++
	logger.Infof("scheduler: retrying in %s (attempt %d/%d)",
		s.retry.retryDelay, s.retry.attemptCount, s.retry.maxRetries)
	s.retryTimer = time.AfterFunc(s.retry.retryDelay, s.retryCycle)
}
