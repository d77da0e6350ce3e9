package mailer

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"

	"stock-news-watcher/pkg/logger"
)

// Config holds the SMTP and IMAP settings for the digest mailbox.
type Config struct {
	SMTPHost    string
	SMTPPort    int
	IMAPHost    string
	IMAPPort    int
	Username    string
	Password    string
	From        string
	SentFolders []string
	TrashLabel  string
}

// Client sends digest mail over SMTP and prunes the sent copies over IMAP.
type Client struct {
	cfg Config
	log *logger.Logger
}

// NewClient creates a mail client. The sender address defaults to the
// account username when From is empty.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &Client{cfg: cfg, log: log}
}

// Send delivers a plain text message to a single recipient. Port 465 uses
// implicit TLS, anything else dials plain and upgrades with STARTTLS when
// the server offers it.
func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", c.cfg.SMTPHost, c.cfg.SMTPPort)

	var client *smtp.Client
	var err error
	if c.cfg.SMTPPort == 465 {
		client, err = c.dialTLS(ctx, addr)
	} else {
		client, err = c.dialStartTLS(ctx, addr)
	}
	if err != nil {
		return err
	}
	defer client.Close()

	auth := smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.SMTPHost)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate with SMTP server: %w", err)
	}
	if err := client.Mail(c.cfg.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err := w.Write([]byte(c.buildMessage(to, subject, body))); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		return fmt.Errorf("failed to quit SMTP session: %w", err)
	}

	c.log.Info("Mail sent", logger.StringField("to", to), logger.StringField("subject", subject))
	return nil
}

func (c *Client) dialTLS(ctx context.Context, addr string) (*smtp.Client, error) {
	dialer := &tls.Dialer{Config: &tls.Config{ServerName: c.cfg.SMTPHost}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	client, err := smtp.NewClient(conn, c.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return client, nil
}

func (c *Client) dialStartTLS(ctx context.Context, addr string) (*smtp.Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	client, err := smtp.NewClient(conn, c.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: c.cfg.SMTPHost}); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to start TLS: %w", err)
		}
	}
	return client, nil
}

// buildMessage renders the raw RFC 5322 message. The subject is encoded
// per RFC 2047 and the body is base64 so Japanese text survives transport.
func (c *Client) buildMessage(to, subject, body string) string {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", c.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.BEncoding.Encode("UTF-8", subject)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("Content-Transfer-Encoding: base64\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(encodeBase64WithLineBreaks([]byte(body)))
	return msg.String()
}

// encodeBase64WithLineBreaks encodes data and wraps the output at 76
// characters as required by RFC 2045.
func encodeBase64WithLineBreaks(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)
	var sb strings.Builder
	for i := 0; i < len(encoded); i += 76 {
		end := i + 76
		if end > len(encoded) {
			end = len(encoded)
		}
		sb.WriteString(encoded[i:end])
		sb.WriteString("\r\n")
	}
	return sb.String()
}
