// Package scheduler runs periodic housekeeping: expiring idle dialogue
// sessions, forgetting idle flood limiters and removing stale plot files.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-bot/internal/lib/sl"
)

// Task is one sweep. It returns how many items it removed.
type Task struct {
	Name string
	Run  func(ctx context.Context) (int, error)
}

// Scheduler runs all tasks together on a fixed interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	tasks     []Task
	interval  time.Duration
	log       *slog.Logger
}

func New(interval time.Duration, log *slog.Logger, tasks ...Task) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		tasks:     tasks,
		interval:  interval,
		log:       log.With(slog.String("component", "scheduler")),
	}
}

// Start schedules the housekeeping job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.tasks) == 0 {
		s.log.Info("no housekeeping tasks configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 10
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce runs every task concurrently and waits for all of them. A failing
// task does not stop the others.
func (s *Scheduler) RunOnce(ctx context.Context) {
	var wg sync.WaitGroup
	for _, t := range s.tasks {
		wg.Add(1)
		go func(t Task) {
			defer wg.Done()

			removed, err := t.Run(ctx)
			if err != nil {
				s.log.Error("housekeeping task failed", slog.String("task", t.Name), sl.Err(err))
				return
			}
			if removed > 0 {
				s.log.Info("housekeeping done", slog.String("task", t.Name), slog.Int("removed", removed))
			}
		}(t)
	}
	wg.Wait()
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
