package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Refresher regenerates reports for all configured sources.
type Refresher interface {
	Sources() []string
	Refresh(ctx context.Context) error
}

// Scheduler periodically refreshes reports.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler. Each refresh run is cancelled after timeout;
// a non-positive timeout means 30s.
func New(interval, timeout time.Duration, service Refresher, logger *slog.Logger) *Scheduler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
		timeout:   timeout,
		logger:    logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.service.Sources()) == 0 {
		s.logger.Info("scheduler: no sources configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	_, err := s.scheduler.Every(interval).Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	s.logger.Debug("scheduler: running report refresh job")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.service.Refresh(ctx); err != nil {
		s.logger.Warn("scheduler: refresh completed with errors", "error", err)
		return
	}
	s.logger.Debug("scheduler: completed report refresh job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
