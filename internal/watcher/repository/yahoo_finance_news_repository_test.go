package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-news-watcher/internal/entity"
	"stock-news-watcher/internal/watcher/config"
	"stock-news-watcher/pkg/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func TestYahooFinanceNewsRepositoryGetNews(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/finance/search", r.URL.Path)
		assert.Equal(t, "7203.T", r.URL.Query().Get("q"))
		assert.Equal(t, "0", r.URL.Query().Get("quotesCount"))
		assert.Equal(t, "20", r.URL.Query().Get("newsCount"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"news": [
				{"uuid": "a", "title": "トヨタ、業績を下方修正", "publisher": "Example", "link": "https://example.com/a", "providerPublishTime": 1756090800},
				{"uuid": "b", "title": "", "link": "https://example.com/b", "providerPublishTime": 1756090800}
			]
		}`))
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.YahooFinance.BaseURL = server.URL
	cfg.YahooFinance.NewsCount = 20
	cfg.YahooFinance.MaxRequestPerMinute = 600

	jst, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	repo := NewYahooFinanceNewsRepository(cfg, newTestLogger(t), jst)
	items, err := repo.GetNews(context.Background(), "7203.T")
	require.NoError(t, err)

	require.Len(t, items, 1, "untitled entries are dropped")
	assert.Equal(t, "7203.T", items[0].Ticker)
	assert.Equal(t, "トヨタ、業績を下方修正", items[0].Title)
	assert.Equal(t, "https://example.com/a", items[0].Link)
	assert.Equal(t, entity.CategoryUnset, items[0].Category)

	assert.Equal(t, jst, items[0].PublishedAt.Location())
	assert.Equal(t, int64(1756090800), items[0].PublishedAt.Unix())
}

func TestYahooFinanceNewsRepositoryGetNewsNonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.YahooFinance.BaseURL = server.URL
	cfg.YahooFinance.NewsCount = 20
	cfg.YahooFinance.MaxRequestPerMinute = 600

	repo := NewYahooFinanceNewsRepository(cfg, newTestLogger(t), time.UTC)
	_, err := repo.GetNews(context.Background(), "7203.T")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-OK response")
}
