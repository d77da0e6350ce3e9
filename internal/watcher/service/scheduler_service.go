package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"stock-news-watcher/internal/watcher/config"
	"stock-news-watcher/pkg/logger"
)

// SchedulerService fires watcher runs on the configured cron schedule.
type SchedulerService interface {
	Start()
	Stop()
}

type schedulerService struct {
	cfg         *config.Config
	logger      *logger.Logger
	coordinator *RunCoordinator
	cron        *cron.Cron
}

// NewSchedulerService creates a scheduler whose cron specs are evaluated
// in loc, the same timezone the run windows use.
func NewSchedulerService(cfg *config.Config, log *logger.Logger, coordinator *RunCoordinator, loc *time.Location) (SchedulerService, error) {
	s := &schedulerService{
		cfg:         cfg,
		logger:      log,
		coordinator: coordinator,
		cron:        cron.New(cron.WithLocation(loc)),
	}

	for _, spec := range cfg.Scheduler.CronSpecs {
		if _, err := s.cron.AddFunc(spec, func() { s.fire(spec) }); err != nil {
			return nil, fmt.Errorf("failed to register cron spec %q: %w", spec, err)
		}
	}
	return s, nil
}

func (s *schedulerService) fire(spec string) {
	s.logger.Info("Scheduled run firing", logger.StringField("cron", spec))
	if _, ok := s.coordinator.TryRun(context.Background()); !ok {
		s.logger.Warn("Previous run still in flight, skipping", logger.StringField("cron", spec))
	}
}

// Start begins dispatching scheduled runs.
func (s *schedulerService) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started",
		logger.IntField("entries", len(s.cron.Entries())),
		logger.Field("cron_specs", s.cfg.Scheduler.CronSpecs))
}

// Stop halts the schedule and waits for a run already in flight to finish.
func (s *schedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}
