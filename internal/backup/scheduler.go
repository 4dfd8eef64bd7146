package backup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily backup cycle: build one archive, then prune old
// ones. Failures in either step are logged and swallowed so the timer is
// never disabled. Overlapping runs are not prevented; the operations are
// independent enough that a rare overlap only costs an extra archive.
type Scheduler struct {
	svc    *Service
	cron   *cron.Cron
	keep   int
	logger *slog.Logger
}

// NewScheduler registers a daily trigger at the local wall-clock time
// dailyAt ("HH:MM").
func NewScheduler(svc *Service, dailyAt string, keep int, logger *slog.Logger) (*Scheduler, error) {
	at, err := time.Parse("15:04", dailyAt)
	if err != nil {
		return nil, fmt.Errorf("backup: parse daily trigger time %q: %w", dailyAt, err)
	}

	s := &Scheduler{
		svc:    svc,
		cron:   cron.New(),
		keep:   keep,
		logger: logger,
	}
	spec := fmt.Sprintf("%d %d * * *", at.Minute(), at.Hour())
	if _, err := s.cron.AddFunc(spec, s.RunCycle); err != nil {
		return nil, fmt.Errorf("backup: register schedule %q: %w", spec, err)
	}
	return s, nil
}

// RunCycle performs one archive-then-prune pass. It never returns an error
// to its caller; scheduled failures stay inside this component.
func (s *Scheduler) RunCycle() {
	s.logger.Info("starting scheduled backup")

	if _, err := s.svc.Create(context.Background()); err != nil {
		s.logger.Error("scheduled backup failed", slog.String("error", err.Error()))
		return
	}
	if _, err := s.svc.Prune(s.keep); err != nil {
		s.logger.Error("scheduled retention failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("scheduled backup completed")
}

// Run starts the timer and blocks until ctx is cancelled, then waits for any
// in-flight cycle to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	return nil
}
