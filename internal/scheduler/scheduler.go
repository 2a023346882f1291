package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"telegram-report-bot/internal/config"
)

// Runner is the export pipeline invoked on each trigger.
type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler fires the export pipeline Monday through Friday at the
// configured hour and minute in the configured timezone. The trigger is
// fire-and-forget: pipeline failures are logged, never propagated back
// into the cron runtime.
type Scheduler struct {
	cron      *cron.Cron
	entryID   cron.EntryID
	config    *config.ReportConfig
	runner    Runner
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning bool
	mu        sync.RWMutex
}

// NewScheduler creates a new scheduler
func NewScheduler(cfg *config.ReportConfig, loc *time.Location, runner Runner) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		config: cfg,
		runner: runner,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	// Weekday schedule at the configured local time.
	schedule := fmt.Sprintf("0 %d %d * * MON-FRI", s.config.Minute, s.config.Hour)

	entryID, err := s.cron.AddFunc(schedule, s.runExport)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.entryID = entryID
	s.cron.Start()
	s.isRunning = true

	logrus.Infof("Scheduler started: export at %02d:%02d %s, Monday-Friday",
		s.config.Hour, s.config.Minute, s.config.Timezone)
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.cancel()

	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
		logrus.Info("Scheduler stopped gracefully")
	case <-time.After(30 * time.Second):
		logrus.Warn("Scheduler stop timeout, forcing shutdown")
	}

	s.cron.Remove(s.entryID)
	s.isRunning = false
	return nil
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// runExport is the cron callback
func (s *Scheduler) runExport() {
	s.wg.Add(1)
	defer s.wg.Done()

	s.mu.RLock()
	if !s.isRunning {
		s.mu.RUnlock()
		logrus.Info("Scheduler not running, skipping export trigger")
		return
	}
	ctx := s.ctx
	s.mu.RUnlock()

	logrus.Info("Scheduled export triggered")
	if err := s.runner.Run(ctx); err != nil {
		logrus.Errorf("Scheduled export failed: %v", err)
	}
}

// GetNextRun returns the time of the next scheduled run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isRunning {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// GetLastRun returns the time of the last run
func (s *Scheduler) GetLastRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isRunning {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Prev
}

// Wait waits for any in-flight trigger to finish
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
