package strategy

import (
	"context"

	"stock-news-watcher/internal/entity"
)

// NewsJudgeStrategy defines the interface for the AI confirmation variants.
// Judge takes keyword-matched candidates and returns the items confirmed as
// material, split by direction.
type NewsJudgeStrategy interface {
	Judge(ctx context.Context, candidates []entity.NewsItem) (bad []entity.NewsItem, good []entity.NewsItem, err error)
	GetMode() entity.JudgeMode
}
