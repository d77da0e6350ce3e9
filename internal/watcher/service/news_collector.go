package service

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"stock-news-watcher/internal/entity"
	"stock-news-watcher/internal/watcher/config"
	"stock-news-watcher/internal/watcher/repository"
	"stock-news-watcher/pkg/logger"
	"stock-news-watcher/pkg/utils"
)

// NewsCollector fetches recent news for every watched ticker and keeps
// the headlines that fall inside the run window and match a sentiment
// keyword.
type NewsCollector struct {
	cfg           *config.Config
	logger        *logger.Logger
	newsRepo      repository.NewsRepository
	classifier    *KeywordClassifier
	inmemoryCache *cache.Cache
}

// NewNewsCollector creates a new NewsCollector. Provider responses are
// cached per ticker so overlapping runs inside the TTL reuse them.
func NewNewsCollector(cfg *config.Config, log *logger.Logger, newsRepo repository.NewsRepository, classifier *KeywordClassifier) *NewsCollector {
	ttl := cfg.News.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &NewsCollector{
		cfg:           cfg,
		logger:        log,
		newsRepo:      newsRepo,
		classifier:    classifier,
		inmemoryCache: cache.New(ttl, 10*time.Minute),
	}
}

// Collect returns the candidate news items for the window. A ticker whose
// fetch fails is logged and skipped so one bad symbol cannot starve the
// rest of the watchlist.
func (s *NewsCollector) Collect(ctx context.Context, tickers []string, window entity.TimeWindow) []entity.NewsItem {
	var candidates []entity.NewsItem
	for _, ticker := range tickers {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}

		items, err := s.fetchNews(ctx, ticker)
		if err != nil {
			s.logger.Error("Failed to fetch news, skipping ticker",
				logger.ErrorField(err),
				logger.StringField("ticker", ticker))
			continue
		}

		for _, item := range items {
			if !window.Contains(item.PublishedAt) {
				continue
			}
			category, ok := s.classifier.Classify(item.Title)
			if !ok {
				continue
			}
			item.Category = category
			candidates = append(candidates, item)
		}
	}

	s.logger.Info("News collection finished",
		logger.IntField("tickers", len(tickers)),
		logger.IntField("candidates", len(candidates)),
		logger.StringField("mode", string(window.Mode)))
	return candidates
}

func (s *NewsCollector) fetchNews(ctx context.Context, ticker string) ([]entity.NewsItem, error) {
	if cached, found := s.inmemoryCache.Get(ticker); found {
		return cached.([]entity.NewsItem), nil
	}

	items, err := s.newsRepo.GetNews(ctx, ticker)
	if err != nil {
		return nil, err
	}

	s.inmemoryCache.Set(ticker, items, cache.DefaultExpiration)
	return items, nil
}
