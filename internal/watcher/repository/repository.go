package repository

import (
	"context"

	"stock-news-watcher/internal/entity"
)

// WatchlistRepository loads the ticker watchlist from its external source.
type WatchlistRepository interface {
	GetTickers(ctx context.Context) ([]string, error)
}

// NewsRepository retrieves recent news items for a single ticker.
type NewsRepository interface {
	GetNews(ctx context.Context, ticker string) ([]entity.NewsItem, error)
}

// AIRepository generates model output for a prompt.
type AIRepository interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}

// ArticleRepository fetches readable article text for a news link.
type ArticleRepository interface {
	GetContent(ctx context.Context, url string) (string, error)
}
