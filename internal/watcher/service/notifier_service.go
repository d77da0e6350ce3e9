package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stock-news-watcher/internal/entity"
	"stock-news-watcher/internal/watcher/config"
	"stock-news-watcher/pkg/logger"
	"stock-news-watcher/pkg/telegram"
)

// MailSender is the outbound mail dependency of the notifier.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
	CleanupSent(ctx context.Context, subject string) error
}

// NotifierService renders digests and delivers them by mail, with an
// optional Telegram mirror.
type NotifierService interface {
	NotifyDigest(ctx context.Context, items []entity.NewsItem, category entity.Category) error
}

type notifierService struct {
	cfg      *config.Config
	logger   *logger.Logger
	mail     MailSender
	notifier telegram.Notifier
	location *time.Location
	now      func() time.Time
}

// NewNotifierService creates a new NotifierService. telegramNotifier may
// be nil when no bot is configured.
func NewNotifierService(cfg *config.Config, log *logger.Logger, mail MailSender, telegramNotifier telegram.Notifier, loc *time.Location) NotifierService {
	return &notifierService{
		cfg:      cfg,
		logger:   log,
		mail:     mail,
		notifier: telegramNotifier,
		location: loc,
		now:      func() time.Time { return time.Now().In(loc) },
	}
}

// NotifyDigest sends one digest mail for the given category and then
// prunes the sent copy. Cleanup failures are logged but do not undo the
// delivery, the mail already left.
func (s *notifierService) NotifyDigest(ctx context.Context, items []entity.NewsItem, category entity.Category) error {
	body := CreateBody(items, category)
	if body == "" {
		return nil
	}
	subject := BuildSubject(category, len(items), s.now())

	if err := s.mail.Send(ctx, s.cfg.Mail.To, subject, body); err != nil {
		s.logger.Error("Failed to send digest mail",
			logger.ErrorField(err),
			logger.StringField("subject", subject))
		return fmt.Errorf("failed to send digest mail: %w", err)
	}
	s.logger.Info("Digest mail sent",
		logger.StringField("subject", subject),
		logger.IntField("items", len(items)))

	if err := s.mail.CleanupSent(ctx, subject); err != nil {
		s.logger.Error("Failed to clean sent copy",
			logger.ErrorField(err),
			logger.StringField("subject", subject))
	}

	if s.notifier != nil {
		for _, msg := range telegram.FormatNewsDigest(items, category) {
			if err := s.notifier.SendMessage(msg); err != nil {
				s.logger.Warn("Failed to send Telegram digest", logger.ErrorField(err))
				break
			}
		}
	}

	return nil
}

// CreateBody renders the digest mail body. An empty item list renders
// nothing and the caller skips sending.
func CreateBody(items []entity.NewsItem, category entity.Category) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("株式暴騰暴落ニュース監視システムです。\n")
	if category == entity.CategoryBad {
		b.WriteString("保有銘柄（日本株）に暴落リスクのある悪材料を検知しました。\n\n")
	} else {
		b.WriteString("保有銘柄（日本株）に福音（好材料）を検知しました。\n\n")
	}

	for i, item := range items {
		b.WriteString(fmt.Sprintf("%d. [%s] \n", i+1, item.Ticker))
		b.WriteString(fmt.Sprintf("【時刻】 %s\n", item.PublishedLabel()))
		b.WriteString(fmt.Sprintf("【ニュース】 %s\n", item.Title))
		b.WriteString(fmt.Sprintf("【リンク】 %s\n", item.Link))
		b.WriteString(strings.Repeat("-", 20) + "\n")
	}

	b.WriteString("\n※自動配信")
	return b.String()
}

// BuildSubject renders the digest subject line for a category. The
// timestamp makes every subject unique so the sent cleanup only matches
// its own mail.
func BuildSubject(category entity.Category, count int, now time.Time) string {
	stamp := now.Format("01/02 15:04")
	if category == entity.CategoryBad {
		return fmt.Sprintf("【警告】保有株に悪材料検知 (%d件) - %s", count, stamp)
	}
	return fmt.Sprintf("【福音】保有株に好材料検知 (%d件) - %s", count, stamp)
}
