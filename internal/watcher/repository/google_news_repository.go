package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"stock-news-watcher/internal/entity"
	"stock-news-watcher/internal/watcher/config"
	"stock-news-watcher/pkg/logger"
)

// googleNewsRepository fetches headlines for a ticker from the Google News
// RSS search feed. It is the fallback provider for tickers Yahoo covers
// poorly.
type googleNewsRepository struct {
	cfg      *config.Config
	log      *logger.Logger
	parser   *gofeed.Parser
	location *time.Location
}

// NewGoogleNewsRepository creates a Google News RSS backed news repository.
func NewGoogleNewsRepository(cfg *config.Config, log *logger.Logger, loc *time.Location) NewsRepository {
	return &googleNewsRepository{
		cfg:      cfg,
		log:      log,
		parser:   gofeed.NewParser(),
		location: loc,
	}
}

func (r *googleNewsRepository) GetNews(ctx context.Context, ticker string) ([]entity.NewsItem, error) {
	// The feed is searched by bare code, "7203.T" becomes "7203 株".
	code := strings.TrimSuffix(ticker, r.cfg.Sheets.MarketSuffix)
	query := url.QueryEscape(code + " " + r.cfg.GoogleNews.QuerySuffix)
	feedURL := fmt.Sprintf("%s/rss/search?q=%s&%s", r.cfg.GoogleNews.BaseURL, query, r.cfg.GoogleNews.QueryParams)

	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	items := make([]entity.NewsItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Title == "" || item.PublishedParsed == nil {
			continue
		}
		items = append(items, entity.NewsItem{
			Ticker:      ticker,
			Title:       item.Title,
			PublishedAt: item.PublishedParsed.In(r.location),
			Link:        item.Link,
			Category:    entity.CategoryUnset,
		})
	}

	r.log.DebugContext(ctx, "Fetched Google News RSS items",
		logger.StringField("ticker", ticker),
		logger.IntField("items", len(items)))
	return items, nil
}
