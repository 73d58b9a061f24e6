package main

import (
	"context"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"pumpScout/config"
	"pumpScout/internal/adapters/binanceclient"
	"pumpScout/internal/adapters/collector"
	"pumpScout/internal/adapters/logger"
	"pumpScout/internal/adapters/notifier"
	"pumpScout/internal/adapters/sentiment"
	"pumpScout/internal/adapters/sqlite"
	"pumpScout/internal/app"
	"pumpScout/internal/decision"
	"pumpScout/internal/history"
	"pumpScout/internal/indicators"
	"pumpScout/internal/ports"
	"pumpScout/internal/risk"
	"pumpScout/internal/scoring"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := newLogger(cfg)
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String(), "format": cfg.LogFormat})

	// 3. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize database repository")
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err) // Also log to stderr
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing database repository")
		}
	}()

	// 4. Initialize Exchange Client (Binance Adapter)
	binanceClient, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize Binance client")
		log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
	}
	if err := binanceClient.Ping(context.Background()); err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Exchange connectivity check failed")
		log.Fatalf("FATAL: Exchange connectivity check failed: %v", err)
	}
	appLogger.Info(context.Background(), "Binance client initialized")

	// 5. Initialize Signal Collectors and Sentiment Scorer
	reddit, err := collector.NewReddit(collector.RedditConfig{
		HTTPTimeout: cfg.CollectorTimeout,
		Logger:      appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Reddit collector: %v", err)
	}
	signalSource, err := collector.NewMulti(appLogger, reddit)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize signal collector: %v", err)
	}
	sentimentScorer := sentiment.NewLexicon()

	// 6. Initialize Scoring Pipeline
	engine, err := indicators.NewEngine(indicators.EngineConfig{
		VolumeSpike: cfg.VolumeMultiple,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize indicator engine: %v", err)
	}
	analyzer := history.NewAnalyzer(history.AnalyzerConfig{
		PumpThresholdPct: cfg.PumpThresholdPct,
		VolumeMultiple:   cfg.VolumeMultiple,
	})
	scorer, err := scoring.NewScorer(scoring.ScorerConfig{
		Weights:            cfg.Weights,
		SentimentThreshold: cfg.SentimentThreshold,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize composite scorer")
		log.Fatalf("FATAL: Failed to initialize composite scorer: %v", err)
	}
	gate := decision.New(decision.Config{
		ScoreThreshold:     cfg.ScoreThreshold,
		HistScoreThreshold: cfg.HistScoreThreshold,
		PriceSignalPct:     cfg.PriceSignalPct,
		MaxPriceIncrease:   cfg.MaxPriceIncrease,
		MinSignals:         cfg.MinSignals,
	})
	sizer := risk.NewSizer(risk.SizerConfig{
		MaxAllocation:  cfg.MaxAllocation,
		MinTradeAmount: cfg.MinTradeAmount,
	})

	// 7. Initialize Notifier (Telegram when configured, log-only otherwise)
	var notify ports.Notifier
	if cfg.TelegramBotToken != "" {
		notify, err = notifier.NewTelegram(notifier.TelegramConfig{
			BotToken: cfg.TelegramBotToken,
			ChatID:   cfg.TelegramChatID,
			Logger:   appLogger,
		})
		if err != nil {
			appLogger.Error(context.Background(), err, "FATAL: Failed to initialize Telegram notifier")
			log.Fatalf("FATAL: Failed to initialize Telegram notifier: %v", err)
		}
	} else {
		notify = notifier.NewNoop(appLogger)
	}

	// 8. Initialize Orchestrator
	orchestrator, err := app.New(
		app.Config{
			Symbols:       cfg.Symbols,
			QuoteAsset:    cfg.QuoteAsset,
			Keywords:      cfg.Keywords,
			KlineInterval: cfg.KlineInterval,
			KlineLimit:    cfg.KlineLimit,
			AssetTimeout:  cfg.AssetTimeout,
		},
		appLogger,
		signalSource,
		sentimentScorer,
		binanceClient,
		repo,
		notify,
		engine,
		analyzer,
		scorer,
		gate,
		sizer,
	)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize orchestrator")
		log.Fatalf("FATAL: Failed to initialize orchestrator: %v", err)
	}

	// 9. Schedule cycles and the daily report
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runCycle := func() {
		if cfg.DryRun {
			evaluations := orchestrator.EvaluateAll(ctx)
			for _, ev := range evaluations {
				appLogger.Info(ctx, "Dry-run evaluation", map[string]interface{}{
					"symbol":    ev.Symbol,
					"total":     ev.Composite.Total,
					"histScore": ev.Decision.HistoricalScore,
					"shouldBuy": ev.Decision.ShouldBuy,
				})
			}
			return
		}
		if err := orchestrator.RunCycle(ctx); err != nil {
			appLogger.Error(ctx, err, "Evaluation cycle failed")
		}
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ScanCronSpec, runCycle); err != nil {
		appLogger.Error(ctx, err, "FATAL: Invalid scan schedule", map[string]interface{}{"spec": cfg.ScanCronSpec})
		log.Fatalf("FATAL: Invalid scan schedule %q: %v", cfg.ScanCronSpec, err)
	}
	if _, err := scheduler.AddFunc(cfg.ReportCronSpec, func() {
		if err := orchestrator.SendTradeReport(ctx, cfg.ReportWindow); err != nil {
			appLogger.Error(ctx, err, "Trade report failed")
		}
	}); err != nil {
		appLogger.Error(ctx, err, "FATAL: Invalid report schedule", map[string]interface{}{"spec": cfg.ReportCronSpec})
		log.Fatalf("FATAL: Invalid report schedule %q: %v", cfg.ReportCronSpec, err)
	}

	scheduler.Start()
	appLogger.Info(ctx, "Scheduler started", map[string]interface{}{
		"scanSpec":   cfg.ScanCronSpec,
		"reportSpec": cfg.ReportCronSpec,
		"symbols":    cfg.Symbols,
		"dryRun":     cfg.DryRun,
	})

	// Run one cycle immediately rather than waiting for the first tick
	go runCycle()

	// 10. Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info(ctx, "Shutdown signal received", map[string]interface{}{"signal": sig.String()})

	cancel()
	stopCtx := scheduler.Stop() // Waits for running jobs
	<-stopCtx.Done()
	appLogger.Info(context.Background(), "Application finished gracefully.")
}

// newLogger selects the logging backend from configuration.
func newLogger(cfg *config.Config) ports.Logger {
	if cfg.LogFormat == "std" {
		return logger.NewStdLogger(cfg.LogLevel)
	}
	return logger.NewZerolog(cfg.LogLevel, cfg.LogFormat)
}
