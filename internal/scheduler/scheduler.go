package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"city-weather/pkg/logger"
)

// Refresher refreshes the cities of every user.
type Refresher interface {
	RefreshAllUsers(ctx context.Context) error
}

// Scheduler periodically refreshes every user's cities in the background.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	interval  time.Duration
	timeout   time.Duration
	l         *logger.Logger
}

// New creates a Scheduler. A zero interval disables it.
func New(refresher Refresher, interval time.Duration, l *logger.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	return &Scheduler{
		scheduler: s,
		refresher: refresher,
		interval:  interval,
		timeout:   interval,
		l:         l,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.l.Info("scheduler: background refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.l.Info("scheduler: background refresh started", map[string]any{"interval": s.interval.String()})

	return nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.l.Info("scheduler: running refresh job")
	if err := s.refresher.RefreshAllUsers(ctx); err != nil {
		s.l.Error(err, map[string]any{"job": "refresh all users"})
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
