package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"stock-news-watcher/internal/watcher/config"
	"stock-news-watcher/internal/watcher/repository"
	"stock-news-watcher/internal/watcher/service"
	"stock-news-watcher/internal/watcher/strategy"
	"stock-news-watcher/pkg/logger"
	"stock-news-watcher/pkg/mailer"
	"stock-news-watcher/pkg/telegram"
	"stock-news-watcher/pkg/utils"

	"google.golang.org/genai"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

// initWatcher wires the full pipeline and returns the shared run
// coordinator together with the configured location.
func initWatcher(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) (*service.RunCoordinator, *time.Location) {
	loc := utils.GetJSTLocation()
	var err error
	if cfg.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			appLogger.Fatal("Failed to load timezone", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	watchlistRepo := repository.NewSheetsWatchlistRepository(cfg, appLogger)

	var newsRepo repository.NewsRepository
	switch cfg.News.Provider {
	case "yahoo":
		newsRepo = repository.NewYahooFinanceNewsRepository(cfg, appLogger, loc)
	case "google_rss":
		newsRepo = repository.NewGoogleNewsRepository(cfg, appLogger, loc)
	default:
		appLogger.Fatal("Invalid news provider specified in config", zap.String("provider", cfg.News.Provider))
	}

	// Initialize AI provider
	var genAiClient *genai.Client
	if cfg.Gemini.APIKey != "" {
		genAiClient, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
	} else {
		appLogger.Warn("Gemini API key is not configured, AI confirmation will fail until it is set")
	}
	aiRepo, err := repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
	if err != nil {
		appLogger.Fatal("Failed to initialize Gemini AI repository", logger.ErrorField(err))
	}
	articleRepo := repository.NewArticleRepository(cfg, appLogger)

	// Initialize notifiers
	mailClient := mailer.NewClient(mailer.Config{
		SMTPHost:    cfg.Mail.SMTPHost,
		SMTPPort:    cfg.Mail.SMTPPort,
		IMAPHost:    cfg.Mail.IMAPHost,
		IMAPPort:    cfg.Mail.IMAPPort,
		Username:    cfg.Mail.Username,
		Password:    cfg.Mail.Password,
		SentFolders: cfg.Mail.SentFolders,
		TrashLabel:  cfg.Mail.TrashLabel,
	}, appLogger)

	var telegramNotifier telegram.Notifier
	if cfg.Telegram.BotToken != "" {
		telegramNotifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}
	notifierSvc := service.NewNotifierService(cfg, appLogger, mailClient, telegramNotifier, loc)

	// Initialize strategies
	strategies := []strategy.NewsJudgeStrategy{
		strategy.NewExtractionJudge(cfg, appLogger, aiRepo, articleRepo),
		strategy.NewClassificationJudge(cfg, appLogger, aiRepo),
	}

	collector := service.NewNewsCollector(cfg, appLogger, newsRepo, service.NewKeywordClassifier(cfg))
	watcherSvc := service.NewWatcherService(cfg, appLogger, watchlistRepo, collector, notifierSvc, strategies, loc)

	return service.NewRunCoordinator(watcherSvc), loc
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "stock-news-watcher",
		Short: "A watcher that mails alerts when watched Japanese stocks hit the news",
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing stock-news-watcher CLI: %s\n", err)
		os.Exit(1)
	}
}
