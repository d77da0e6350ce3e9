package service

import (
	"strings"

	"stock-news-watcher/internal/entity"
	"stock-news-watcher/internal/watcher/config"
)

// KeywordClassifier triages headlines by substring match against the
// configured keyword lists.
type KeywordClassifier struct {
	ignore []string
	bad    []string
	good   []string
}

// NewKeywordClassifier creates a classifier from the configured lists.
func NewKeywordClassifier(cfg *config.Config) *KeywordClassifier {
	return &KeywordClassifier{
		ignore: cfg.Keywords.Ignore,
		bad:    cfg.Keywords.Bad,
		good:   cfg.Keywords.Good,
	}
}

// Classify returns the category for a headline. Ignore keywords win over
// everything and bad wins over good when both match. The second return is
// false when the headline is not a candidate at all.
func (k *KeywordClassifier) Classify(title string) (entity.Category, bool) {
	if containsAny(title, k.ignore) {
		return entity.CategoryUnset, false
	}

	switch {
	case containsAny(title, k.bad):
		return entity.CategoryBad, true
	case containsAny(title, k.good):
		return entity.CategoryGood, true
	default:
		return entity.CategoryUnset, false
	}
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
