package entity

import (
	"time"
)

// Category is the sentiment classification attached to a news item.
type Category string

const (
	CategoryBad   Category = "BAD"
	CategoryGood  Category = "GOOD"
	CategoryUnset Category = "UNSET"
)

// NewsItem represents a single headline fetched for a watched ticker.
type NewsItem struct {
	Ticker      string    `json:"ticker"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"published_at"`
	Link        string    `json:"link"`
	Category    Category  `json:"category"`
}

// PublishedLabel formats the publish time the way digests display it.
func (n NewsItem) PublishedLabel() string {
	return n.PublishedAt.Format("01/02 15:04")
}
