// Package scheduler runs periodic jobs (expiry sweeps, automatic sync) on their own goroutines.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is one periodic job. Run receives a context cancelled on shutdown.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler ticks every registered task at its interval until shut down.
type Scheduler struct {
	tasks  []Task
	logger *slog.Logger
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates an idle scheduler. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{logger: logger, ctx: ctx, cancel: cancel}
}

// Add registers a task. Tasks with a non-positive interval are disabled and skipped.
func (s *Scheduler) Add(t Task) {
	if t.Interval <= 0 {
		s.logger.Info("scheduled task disabled", slog.String("task", t.Name))
		return
	}
	s.tasks = append(s.tasks, t)
}

// Start launches one goroutine per task. A run in progress is never overlapped by the next tick.
func (s *Scheduler) Start() {
	for _, t := range s.tasks {
		s.wg.Add(1)
		go func(t Task) {
			defer s.wg.Done()
			s.loop(t)
		}(t)
	}
}

func (s *Scheduler) loop(t Task) {
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()
	s.logger.Info("scheduled task started", slog.String("task", t.Name), slog.Duration("interval", t.Interval))

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info("scheduled task stopped", slog.String("task", t.Name))
			return
		case <-ticker.C:
			s.runOnce(t)
		}
	}
}

func (s *Scheduler) runOnce(t Task) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduled task panicked", slog.String("task", t.Name), slog.Any("panic", r))
		}
	}()
	if err := t.Run(s.ctx); err != nil {
		s.logger.Error("scheduled task failed", slog.String("task", t.Name), slog.String("error", err.Error()))
		return
	}
	s.logger.Debug("scheduled task finished", slog.String("task", t.Name), slog.Duration("took", time.Since(started)))
}

// Shutdown stops all tasks and waits for in-flight runs to return.
func (s *Scheduler) Shutdown() {
	s.cancel()
	s.wg.Wait()
}
