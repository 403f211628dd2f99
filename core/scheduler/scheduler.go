package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Job is the work run on every tick.
type Job func(ctx context.Context) error

// Scheduler wraps a gocron scheduler running in UTC.
type Scheduler struct {
	cron   *gocron.Scheduler
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a stopped scheduler.
func New(logger *zap.Logger) *Scheduler {
	cron := gocron.NewScheduler(time.UTC)
	cron.SingletonModeAll()

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{cron: cron, logger: logger, ctx: ctx, cancel: cancel}
}

// Add registers job under name on a standard five field cron expression.
func (s *Scheduler) Add(name, expr string, job Job) error {
	_, err := s.cron.Cron(expr).Tag(name).Do(func() {
		l := s.logger.With(zap.String("job", name))
		l.Info("Executing scheduled job")
		if err := job(s.ctx); err != nil {
			l.Error("Job execution failed", zap.Error(err))
			return
		}
		l.Info("Job execution completed")
	})
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", name, err)
	}
	return nil
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int {
	return s.cron.Len()
}

// NextRun returns the next run time of the job registered under name.
func (s *Scheduler) NextRun(name string) (time.Time, bool) {
	jobs, err := s.cron.FindJobsByTag(name)
	if err != nil || len(jobs) == 0 {
		return time.Time{}, false
	}
	return jobs[0].NextRun(), true
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() {
	if s.cron.Len() == 0 {
		s.logger.Info("No jobs registered, scheduler will not start")
		return
	}
	s.cron.StartAsync()
	for _, job := range s.cron.Jobs() {
		s.logger.Info("Job scheduled", zap.Strings("tags", job.Tags()), zap.Time("next_run", job.NextRun()))
	}
}

// Stop cancels running jobs and stops the scheduler.
func (s *Scheduler) Stop() {
	s.cancel()
	s.cron.Stop()
}
