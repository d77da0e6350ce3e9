package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/patrickmn/go-cache"

	"stock-news-watcher/internal/watcher/config"
	"stock-news-watcher/pkg/logger"
	"stock-news-watcher/pkg/utils"
)

// articleRepository fetches a news page and boils it down to readable text
// for prompt enrichment. Results are cached per link so retried batches do
// not refetch.
type articleRepository struct {
	cfg           *config.Config
	logger        *logger.Logger
	client        *http.Client
	inmemoryCache *cache.Cache
}

// NewArticleRepository creates a new instance of articleRepository.
func NewArticleRepository(cfg *config.Config, log *logger.Logger) ArticleRepository {
	return &articleRepository{
		cfg:    cfg,
		logger: log,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		inmemoryCache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (r *articleRepository) GetContent(ctx context.Context, url string) (string, error) {
	if cached, found := r.inmemoryCache.Get(url); found {
		return cached.(string), nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for news item: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en-US;q=0.7,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch news content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch news content, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse news content: %w", err)
	}
	content := doc.Content()
	docHTML, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(content)))
	if err != nil {
		return "", fmt.Errorf("failed to parse news content: %w", err)
	}

	content = strings.TrimSpace(docHTML.Text())
	content = strings.ReplaceAll(content, "\n", "")
	content = strings.ReplaceAll(content, "\t", "")
	content = strings.ReplaceAll(content, "\r", "")
	content = strings.ReplaceAll(content, "\f", "")
	content = utils.SafeText(content)

	if max := r.cfg.Judge.ContentMaxChars; max > 0 {
		if runes := []rune(content); len(runes) > max {
			content = string(runes[:max])
		}
	}

	r.inmemoryCache.Set(url, content, cache.DefaultExpiration)
	r.logger.DebugContext(ctx, "Article content extracted",
		logger.StringField("url", url),
		logger.IntField("chars", len([]rune(content))))
	return content, nil
}
