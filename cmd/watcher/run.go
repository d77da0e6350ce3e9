package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"stock-news-watcher/internal/watcher/config"
	"stock-news-watcher/pkg/logger"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs one watch pass and exits",
	Run:   runOnce,
}

func runOnce(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting single watch run", logger.Field("name", cfg.App.Name))

	coordinator, _ := initWatcher(ctx, cfg, appLogger)
	report, ok := coordinator.TryRun(ctx)
	if !ok {
		appLogger.Warn("Another run is already in progress")
		return
	}

	appLogger.Info("Watch run report",
		logger.StringField("mode", string(report.Mode)),
		logger.IntField("tickers", report.TickerCount),
		logger.IntField("candidates", report.CandidateCount),
		logger.IntField("confirmed_bad", report.ConfirmedBad),
		logger.IntField("confirmed_good", report.ConfirmedGood),
		logger.IntField("mails_sent", report.MailsSent))
}
