package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stock-news-watcher/internal/entity"
	"stock-news-watcher/internal/watcher/config"
	"stock-news-watcher/internal/watcher/dto"
	"stock-news-watcher/internal/watcher/repository"
	"stock-news-watcher/internal/watcher/strategy"
	"stock-news-watcher/pkg/logger"
)

// WatcherService runs the monitoring pipeline: watchlist, collection,
// AI confirmation, notification.
type WatcherService interface {
	Run(ctx context.Context) *dto.RunReport
}

type watcherService struct {
	cfg           *config.Config
	logger        *logger.Logger
	watchlistRepo repository.WatchlistRepository
	collector     *NewsCollector
	notifier      NotifierService
	judges        map[entity.JudgeMode]strategy.NewsJudgeStrategy
	now           func() time.Time
}

// NewWatcherService creates a new WatcherService, registering the given
// judge strategies by mode.
func NewWatcherService(
	cfg *config.Config,
	log *logger.Logger,
	watchlistRepo repository.WatchlistRepository,
	collector *NewsCollector,
	notifier NotifierService,
	strategies []strategy.NewsJudgeStrategy,
	loc *time.Location,
) WatcherService {
	judges := make(map[entity.JudgeMode]strategy.NewsJudgeStrategy)
	for _, s := range strategies {
		judges[s.GetMode()] = s
	}
	return &watcherService{
		cfg:           cfg,
		logger:        log,
		watchlistRepo: watchlistRepo,
		collector:     collector,
		notifier:      notifier,
		judges:        judges,
		now:           func() time.Time { return time.Now().In(loc) },
	}
}

// Run executes one watch pass. Every stage failure is absorbed into the
// report so a run always finishes and a broken provider never crashes the
// scheduler.
func (s *watcherService) Run(ctx context.Context) *dto.RunReport {
	report := &dto.RunReport{StartedAt: s.now()}
	defer func() { report.FinishedAt = s.now() }()

	s.logger.Info("Watch run starting")

	tickers, err := s.watchlistRepo.GetTickers(ctx)
	if err != nil {
		s.logger.Error("Failed to load watchlist", logger.ErrorField(err))
		report.Watchlist = dto.StageResult{Status: dto.StageFailed, Error: err.Error()}
	} else {
		report.Watchlist = dto.StageResult{Status: dto.StageSuccess}
	}
	report.TickerCount = len(tickers)

	if len(tickers) == 0 {
		s.logger.Warn("Watchlist is empty, nothing to monitor")
		report.Collect = dto.StageResult{Status: dto.StageSkipped}
		report.Judge = dto.StageResult{Status: dto.StageSkipped}
		report.Notify = dto.StageResult{Status: dto.StageSkipped}
		return report
	}
	s.logger.Info("Watchlist loaded", logger.IntField("tickers", len(tickers)))

	window := ResolveTimeWindow(report.StartedAt)
	report.Mode = window.Mode
	report.WindowStart = window.Start
	report.WindowEnd = window.End
	s.logger.Info("Time window resolved",
		logger.StringField("mode", string(window.Mode)),
		logger.StringField("start", window.Start.Format(time.RFC3339)),
		logger.StringField("end", window.End.Format(time.RFC3339)))

	candidates := s.collector.Collect(ctx, tickers, window)
	report.CandidateCount = len(candidates)
	report.Collect = dto.StageResult{Status: dto.StageSuccess}

	if len(candidates) == 0 {
		s.logger.Info("No candidate news in the window")
		report.Judge = dto.StageResult{Status: dto.StageSkipped}
		report.Notify = dto.StageResult{Status: dto.StageSkipped}
		return report
	}

	judge, ok := s.judges[entity.JudgeMode(s.cfg.Judge.Mode)]
	if !ok {
		err := fmt.Errorf("no judge strategy found for mode: %s", s.cfg.Judge.Mode)
		s.logger.Error("Judge stage failed", logger.ErrorField(err))
		report.Judge = dto.StageResult{Status: dto.StageFailed, Error: err.Error()}
		report.Notify = dto.StageResult{Status: dto.StageSkipped}
		return report
	}

	bad, good, err := judge.Judge(ctx, candidates)
	if err != nil {
		s.logger.Error("Judge stage failed", logger.ErrorField(err))
		report.Judge = dto.StageResult{Status: dto.StageFailed, Error: err.Error()}
		report.Notify = dto.StageResult{Status: dto.StageSkipped}
		return report
	}
	report.Judge = dto.StageResult{Status: dto.StageSuccess}
	report.ConfirmedBad = len(bad)
	report.ConfirmedGood = len(good)

	report.Notify = s.notify(ctx, bad, good, report)

	s.logger.Info("Watch run finished",
		logger.StringField("mode", string(report.Mode)),
		logger.IntField("candidates", report.CandidateCount),
		logger.IntField("confirmed_bad", report.ConfirmedBad),
		logger.IntField("confirmed_good", report.ConfirmedGood),
		logger.IntField("mails_sent", report.MailsSent))
	return report
}

// notify delivers the bad digest first so the warning always lands before
// the good news when both exist.
func (s *watcherService) notify(ctx context.Context, bad, good []entity.NewsItem, report *dto.RunReport) dto.StageResult {
	result := dto.StageResult{Status: dto.StageSkipped}
	var errs []string

	if len(bad) > 0 {
		if err := s.notifier.NotifyDigest(ctx, bad, entity.CategoryBad); err != nil {
			errs = append(errs, err.Error())
		} else {
			report.MailsSent++
			result.Status = dto.StageSuccess
		}
	} else {
		s.logger.Info("No confirmed bad news")
	}

	if len(good) > 0 {
		if err := s.notifier.NotifyDigest(ctx, good, entity.CategoryGood); err != nil {
			errs = append(errs, err.Error())
		} else {
			report.MailsSent++
			if result.Status != dto.StageFailed {
				result.Status = dto.StageSuccess
			}
		}
	} else {
		s.logger.Info("No confirmed good news")
	}

	if len(errs) > 0 {
		result.Status = dto.StageFailed
		result.Error = strings.Join(errs, "; ")
	}
	return result
}
