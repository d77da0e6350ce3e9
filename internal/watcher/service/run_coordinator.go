package service

import (
	"context"
	"sync"

	"stock-news-watcher/internal/watcher/dto"
)

// RunCoordinator serializes watcher runs and remembers the last report.
// The scheduler and the HTTP trigger share one coordinator so a run can
// never overlap another.
type RunCoordinator struct {
	mu      sync.Mutex
	running bool
	last    *dto.RunReport
	svc     WatcherService
}

// NewRunCoordinator creates a new RunCoordinator.
func NewRunCoordinator(svc WatcherService) *RunCoordinator {
	return &RunCoordinator{svc: svc}
}

// TryRun executes one run unless another is already in flight, in which
// case it returns false without blocking.
func (c *RunCoordinator) TryRun(ctx context.Context) (*dto.RunReport, bool) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil, false
	}
	c.running = true
	c.mu.Unlock()

	report := c.svc.Run(ctx)

	c.mu.Lock()
	c.running = false
	c.last = report
	c.mu.Unlock()

	return report, true
}

// LastReport returns the most recent run report, nil before the first
// completed run.
func (c *RunCoordinator) LastReport() *dto.RunReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
