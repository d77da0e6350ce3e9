package telegram

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-news-watcher/internal/entity"
)

func TestFormatNewsDigest(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	items := []entity.NewsItem{
		{
			Ticker:      "7203.T",
			Title:       "トヨタ<速報>、下方修正 & 減配",
			PublishedAt: time.Date(2026, 8, 25, 13, 45, 0, 0, loc),
			Link:        "https://example.com/news?id=1&lang=ja",
			Category:    entity.CategoryBad,
		},
	}

	messages := FormatNewsDigest(items, entity.CategoryBad)
	require.Len(t, messages, 1)

	msg := messages[0]
	assert.True(t, strings.HasPrefix(msg, "<b>🚨 保有株に悪材料検知 (1件)</b>\n\n"))
	assert.Contains(t, msg, "1. [7203.T] トヨタ&lt;速報&gt;、下方修正 &amp; 減配\n")
	assert.Contains(t, msg, "🕒 08/25 13:45\n")
	assert.Contains(t, msg, "🔗 https://example.com/news?id=1&amp;lang=ja\n")
}

func TestFormatNewsDigestGoodHeader(t *testing.T) {
	items := []entity.NewsItem{{Ticker: "6758.T", Title: "増配"}}

	messages := FormatNewsDigest(items, entity.CategoryGood)
	require.Len(t, messages, 1)
	assert.True(t, strings.HasPrefix(messages[0], "<b>🎉 保有株に好材料検知 (1件)</b>"))
}

func TestFormatNewsDigestEmpty(t *testing.T) {
	assert.Nil(t, FormatNewsDigest(nil, entity.CategoryBad))
}

func TestFormatNewsDigestSplitsLongDigest(t *testing.T) {
	longTitle := strings.Repeat("長文ニュース見出し", 20)
	var items []entity.NewsItem
	for i := 0; i < 12; i++ {
		items = append(items, entity.NewsItem{
			Ticker: fmt.Sprintf("%04d.T", i),
			Title:  longTitle,
			Link:   "https://example.com/news",
		})
	}

	messages := FormatNewsDigest(items, entity.CategoryBad)
	require.Greater(t, len(messages), 1, "a digest over the length limit splits into parts")
	assert.Contains(t, messages[1], "続き Part 2")

	var entries int
	for _, msg := range messages {
		entries += strings.Count(msg, "🔗 ")
	}
	assert.Equal(t, len(items), entries, "no entry is lost across parts")
}
