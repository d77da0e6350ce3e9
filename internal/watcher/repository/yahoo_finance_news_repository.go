package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"stock-news-watcher/internal/entity"
	"stock-news-watcher/internal/watcher/config"
	"stock-news-watcher/internal/watcher/dto"
	"stock-news-watcher/pkg/logger"
)

// yahooFinanceNewsRepository fetches recent headlines for a ticker from the
// Yahoo Finance search endpoint.
type yahooFinanceNewsRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	location       *time.Location
}

// NewYahooFinanceNewsRepository creates a Yahoo Finance backed news
// repository. Publish times are converted into loc.
func NewYahooFinanceNewsRepository(cfg *config.Config, log *logger.Logger, loc *time.Location) NewsRepository {
	perMinute := cfg.YahooFinance.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	requestLimiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	return &yahooFinanceNewsRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: requestLimiter,
		location:       loc,
	}
}

func (r *yahooFinanceNewsRepository) GetNews(ctx context.Context, ticker string) ([]entity.NewsItem, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	searchURL := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=0&newsCount=%d",
		r.cfg.YahooFinance.BaseURL, url.QueryEscape(ticker), r.cfg.YahooFinance.NewsCount)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Yahoo Finance API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("received non-OK response from Yahoo Finance API: %d - %s", resp.StatusCode, string(body))
	}

	var searchResp dto.YahooSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	items := make([]entity.NewsItem, 0, len(searchResp.News))
	for _, raw := range searchResp.News {
		if raw.Title == "" {
			continue
		}
		items = append(items, entity.NewsItem{
			Ticker:      ticker,
			Title:       raw.Title,
			PublishedAt: time.Unix(raw.ProviderPublishTime, 0).In(r.location),
			Link:        raw.Link,
			Category:    entity.CategoryUnset,
		})
	}

	r.log.DebugContext(ctx, "Fetched Yahoo Finance news",
		logger.StringField("ticker", ticker),
		logger.IntField("items", len(items)))
	return items, nil
}
