package telegram

import (
	"fmt"
	"html"
	"strings"

	"stock-news-watcher/internal/entity"
)

// FormatNewsDigest formats confirmed news items into one or more HTML
// Telegram messages, splitting so each message stays under the Telegram
// length limit. Titles and links are escaped for HTML parse mode.
func FormatNewsDigest(items []entity.NewsItem, category entity.Category) []string {
	if len(items) == 0 {
		return nil
	}

	const maxLen = 4090
	var messages []string
	var currentMessage strings.Builder
	part := 1

	var title, icon string
	if category == entity.CategoryBad {
		title = "保有株に悪材料検知"
		icon = "🚨"
	} else {
		title = "保有株に好材料検知"
		icon = "🎉"
	}

	startNewPart := func() {
		currentMessage.Reset()
		if part == 1 {
			currentMessage.WriteString(fmt.Sprintf("<b>%s %s (%d件)</b>\n\n", icon, title, len(items)))
		} else {
			currentMessage.WriteString(fmt.Sprintf("--- %s 続き Part %d ---\n\n", title, part))
		}
	}

	startNewPart()

	for i, item := range items {
		var entryBuilder strings.Builder
		entryBuilder.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, item.Ticker, html.EscapeString(item.Title)))
		entryBuilder.WriteString(fmt.Sprintf("🕒 %s\n", item.PublishedLabel()))
		entryBuilder.WriteString(fmt.Sprintf("🔗 %s\n", html.EscapeString(item.Link)))
		entryBuilder.WriteString("\n")

		entryString := entryBuilder.String()

		// Assume a single entry never exceeds the limit on its own.
		if currentMessage.Len()+len(entryString) > maxLen {
			messages = append(messages, currentMessage.String())
			part++
			startNewPart()
		}

		currentMessage.WriteString(entryString)
	}

	messages = append(messages, currentMessage.String())

	return messages
}
