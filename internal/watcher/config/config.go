package config

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"

	"stock-news-watcher/pkg/common"
	"stock-news-watcher/pkg/config"
)

// SecretsEnvKey is the environment variable carrying the JSON secrets blob.
const SecretsEnvKey = "APP_SECRETS"

// Sheets holds the Google Sheets watchlist source configuration.
type Sheets struct {
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	WorksheetName   string `mapstructure:"worksheet_name"`
	CredentialsJSON string `mapstructure:"credentials_json"`
	MarketSuffix    string `mapstructure:"market_suffix"`
}

// News selects the news provider and tunes the per-ticker cache.
type News struct {
	Provider string        `mapstructure:"provider"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// YahooFinance holds the configuration for the Yahoo Finance API.
type YahooFinance struct {
	BaseURL             string `mapstructure:"base_url"`
	NewsCount           int    `mapstructure:"news_count"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// GoogleNews holds the configuration for the Google News RSS feed.
type GoogleNews struct {
	BaseURL     string `mapstructure:"base_url"`
	QuerySuffix string `mapstructure:"query_suffix"`
	QueryParams string `mapstructure:"query_params"`
}

// Keywords holds the headline triage keyword lists.
type Keywords struct {
	Ignore []string `mapstructure:"ignore"`
	Bad    []string `mapstructure:"bad"`
	Good   []string `mapstructure:"good"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// JudgeVariant tunes one confirmation strategy.
type JudgeVariant struct {
	Model      string        `mapstructure:"model"`
	BatchSize  int           `mapstructure:"batch_size"`
	BatchDelay time.Duration `mapstructure:"batch_delay"`
}

// Judge selects and tunes the AI confirmation stage.
type Judge struct {
	Mode             string       `mapstructure:"mode"`
	TrustKeywordGood bool         `mapstructure:"trust_keyword_good"`
	FetchContent     bool         `mapstructure:"fetch_content"`
	ContentMaxChars  int          `mapstructure:"content_max_chars"`
	Extraction       JudgeVariant `mapstructure:"extraction"`
	Classification   JudgeVariant `mapstructure:"classification"`
}

// Mail holds the digest mailbox configuration.
type Mail struct {
	SMTPHost    string   `mapstructure:"smtp_host"`
	SMTPPort    int      `mapstructure:"smtp_port"`
	IMAPHost    string   `mapstructure:"imap_host"`
	IMAPPort    int      `mapstructure:"imap_port"`
	Username    string   `mapstructure:"username"`
	Password    string   `mapstructure:"password"`
	To          string   `mapstructure:"to"`
	SentFolders []string `mapstructure:"sent_folders"`
	TrashLabel  string   `mapstructure:"trash_label"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Scheduler holds the cron schedule for unattended runs.
type Scheduler struct {
	CronSpecs []string `mapstructure:"cron_specs"`
}

// Config holds the full configuration for the watcher service.
type Config struct {
	App          config.App    `mapstructure:"app"`
	Logger       config.Logger `mapstructure:"logger"`
	API          config.API    `mapstructure:"api"`
	Timezone     string        `mapstructure:"timezone"`
	Sheets       Sheets        `mapstructure:"sheets"`
	News         News          `mapstructure:"news"`
	YahooFinance YahooFinance  `mapstructure:"yahoo_finance"`
	GoogleNews   GoogleNews    `mapstructure:"google_news"`
	Keywords     Keywords      `mapstructure:"keywords"`
	Gemini       Gemini        `mapstructure:"gemini"`
	Judge        Judge         `mapstructure:"judge"`
	Mail         Mail          `mapstructure:"mail"`
	Telegram     Telegram      `mapstructure:"telegram"`
	Scheduler    Scheduler     `mapstructure:"scheduler"`
}

// Secrets is the APP_SECRETS payload. The service account key is kept raw
// since it is itself a JSON document.
type Secrets struct {
	GCPSAKey         json.RawMessage `json:"GCP_SA_KEY"`
	SpreadsheetID    string          `json:"SPREADSHEET_ID"`
	GeminiAPIKey     string          `json:"GEMINI_API_KEY"`
	GmailUser        string          `json:"GMAIL_USER"`
	GmailAppPassword string          `json:"GMAIL_APP_PASSWORD"`
	EmailTo          string          `json:"EMAIL_TO"`
}

// Load loads the watcher configuration from the given path and overlays
// secrets from the environment.
func Load(path string) (*Config, error) {
	setDefaults()

	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplySecrets(os.Getenv(SecretsEnvKey))
	return &cfg, nil
}

// ApplySecrets overlays the APP_SECRETS JSON blob onto the config. A
// malformed blob is logged and ignored so the run degrades to an empty
// watchlist instead of crashing.
func (c *Config) ApplySecrets(raw string) {
	if raw == "" {
		return
	}

	var secrets Secrets
	if err := json.Unmarshal([]byte(raw), &secrets); err != nil {
		log.Println("Failed to parse APP_SECRETS, check JSON format:", err)
		return
	}

	if len(secrets.GCPSAKey) > 0 && string(secrets.GCPSAKey) != "null" {
		c.Sheets.CredentialsJSON = string(secrets.GCPSAKey)
	}
	if secrets.SpreadsheetID != "" {
		c.Sheets.SpreadsheetID = secrets.SpreadsheetID
	}
	if secrets.GeminiAPIKey != "" {
		c.Gemini.APIKey = secrets.GeminiAPIKey
	}
	if secrets.GmailUser != "" {
		c.Mail.Username = secrets.GmailUser
	}
	if secrets.GmailAppPassword != "" {
		c.Mail.Password = secrets.GmailAppPassword
	}
	if secrets.EmailTo != "" {
		c.Mail.To = secrets.EmailTo
	}
}

func setDefaults() {
	viper.SetDefault("timezone", "Asia/Tokyo")

	viper.SetDefault("sheets.worksheet_name", "保有銘柄2512")
	viper.SetDefault("sheets.market_suffix", ".T")

	viper.SetDefault("news.provider", "yahoo")
	viper.SetDefault("news.cache_ttl", "5m")

	viper.SetDefault("yahoo_finance.base_url", "https://query1.finance.yahoo.com")
	viper.SetDefault("yahoo_finance.news_count", 20)
	viper.SetDefault("yahoo_finance.max_request_per_minute", 60)

	viper.SetDefault("google_news.base_url", "https://news.google.com")
	viper.SetDefault("google_news.query_suffix", "株")
	viper.SetDefault("google_news.query_params", "hl=ja&gl=JP&ceid=JP:ja")

	viper.SetDefault("keywords.ignore", common.DefaultIgnoreKeywords)
	viper.SetDefault("keywords.bad", common.DefaultBadKeywords)
	viper.SetDefault("keywords.good", common.DefaultGoodKeywords)

	viper.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta/models")
	viper.SetDefault("gemini.max_request_per_minute", 10)
	viper.SetDefault("gemini.max_token_per_minute", 250000)

	viper.SetDefault("judge.mode", "extraction")
	viper.SetDefault("judge.trust_keyword_good", true)
	viper.SetDefault("judge.fetch_content", false)
	viper.SetDefault("judge.content_max_chars", 500)
	viper.SetDefault("judge.extraction.model", "gemini-2.5-flash")
	viper.SetDefault("judge.extraction.batch_size", 30)
	viper.SetDefault("judge.extraction.batch_delay", "2s")
	viper.SetDefault("judge.classification.model", "gemini-1.5-flash")
	viper.SetDefault("judge.classification.batch_size", 10)
	viper.SetDefault("judge.classification.batch_delay", "0s")

	viper.SetDefault("mail.smtp_host", "smtp.gmail.com")
	viper.SetDefault("mail.smtp_port", 465)
	viper.SetDefault("mail.imap_host", "imap.gmail.com")
	viper.SetDefault("mail.imap_port", 993)
	viper.SetDefault("mail.sent_folders", []string{"[Gmail]/Sent Mail", "[Gmail]/送信済みメール"})
	viper.SetDefault("mail.trash_label", `\Trash`)

	viper.SetDefault("scheduler.cron_specs", []string{"5 12 * * *", "0 17 * * *"})
}
