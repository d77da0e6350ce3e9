package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"

	"stock-news-watcher/pkg/logger"
)

// CleanupSent moves the sent copy of a digest, matched by subject, to the
// trash so the sent folder stays empty. Gmail exposes the move as a label
// store; a server without the extension fails the store and the copy stays.
func (c *Client) CleanupSent(ctx context.Context, subject string) error {
	addr := fmt.Sprintf("%s:%d", c.cfg.IMAPHost, c.cfg.IMAPPort)
	cl, err := client.DialTLS(addr, nil)
	if err != nil {
		return fmt.Errorf("failed to dial IMAP server: %w", err)
	}
	cl.Timeout = 30 * time.Second
	defer cl.Logout()

	if err := cl.Login(c.cfg.Username, c.cfg.Password); err != nil {
		return fmt.Errorf("failed to login to IMAP server: %w", err)
	}

	// Sent folder names differ per account locale, try each in order.
	var selectErr error
	selected := false
	for _, folder := range c.cfg.SentFolders {
		if _, selectErr = cl.Select(folder, false); selectErr == nil {
			selected = true
			break
		}
	}
	if !selected {
		return fmt.Errorf("failed to select sent folder: %w", selectErr)
	}

	criteria := imap.NewSearchCriteria()
	criteria.Header.Add("Subject", subject)
	seqNums, err := cl.Search(criteria)
	if err != nil {
		return fmt.Errorf("failed to search sent folder: %w", err)
	}
	if len(seqNums) == 0 {
		c.log.DebugContext(ctx, "No sent copy found to clean", logger.StringField("subject", subject))
		return nil
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(seqNums...)
	item := imap.StoreItem("+X-GM-LABELS")
	if err := cl.Store(seqSet, item, []interface{}{c.cfg.TrashLabel}, nil); err != nil {
		return fmt.Errorf("failed to move sent copy to trash: %w", err)
	}
	if err := cl.Close(); err != nil {
		c.log.DebugContext(ctx, "Failed to close IMAP mailbox", logger.ErrorField(err))
	}

	c.log.InfoContext(ctx, "Sent copies moved to trash",
		logger.StringField("subject", subject),
		logger.IntField("messages", len(seqNums)))
	return nil
}
