// Command scan runs a single evaluation cycle over the configured asset
// universe and prints the results, without placing any orders. Useful for
// tuning thresholds and checking signal sources.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	"pumpScout/config"
	"pumpScout/internal/adapters/binanceclient"
	"pumpScout/internal/adapters/collector"
	"pumpScout/internal/adapters/logger"
	"pumpScout/internal/adapters/notifier"
	"pumpScout/internal/adapters/sentiment"
	"pumpScout/internal/adapters/sqlite"
	"pumpScout/internal/app"
	"pumpScout/internal/decision"
	"pumpScout/internal/domain"
	"pumpScout/internal/history"
	"pumpScout/internal/indicators"
	"pumpScout/internal/risk"
	"pumpScout/internal/scoring"
)

func main() {
	// A scan never trades, so missing API keys must not stop it
	os.Setenv("DRY_RUN", "true")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	appLogger := logger.NewStdLogger(cfg.LogLevel)
	ctx := context.Background()

	binanceClient, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
	}
	if err := binanceClient.Ping(ctx); err != nil {
		log.Fatalf("FATAL: Exchange connectivity check failed: %v", err)
	}

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

	repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer repo.Close()

	engine, err := indicators.NewEngine(indicators.EngineConfig{VolumeSpike: cfg.VolumeMultiple})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize indicator engine: %v", err)
	}
	scorer, err := scoring.NewScorer(scoring.ScorerConfig{
		Weights:            cfg.Weights,
		SentimentThreshold: cfg.SentimentThreshold,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize composite scorer: %v", err)
	}

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
		sentiment.NewLexicon(),
		binanceClient,
		repo,
		notifier.NewNoop(appLogger),
		engine,
		history.NewAnalyzer(history.AnalyzerConfig{
			PumpThresholdPct: cfg.PumpThresholdPct,
			VolumeMultiple:   cfg.VolumeMultiple,
		}),
		scorer,
		decision.New(decision.Config{
			ScoreThreshold:     cfg.ScoreThreshold,
			HistScoreThreshold: cfg.HistScoreThreshold,
			PriceSignalPct:     cfg.PriceSignalPct,
			MaxPriceIncrease:   cfg.MaxPriceIncrease,
			MinSignals:         cfg.MinSignals,
		}),
		risk.NewSizer(risk.SizerConfig{
			MaxAllocation:  cfg.MaxAllocation,
			MinTradeAmount: cfg.MinTradeAmount,
		}),
	)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize orchestrator: %v", err)
	}

	evaluations := orchestrator.EvaluateAll(ctx)
	sort.Slice(evaluations, func(i, j int) bool {
		return evaluations[i].Composite.Total > evaluations[j].Composite.Total
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tTOTAL\tRSI\tMACD\tSMA\tEMA\tVOL\tSENT\tHIST\tSIGNALS\tDECISION")
	for _, ev := range evaluations {
		decisionStr := "-"
		if ev.Decision.ShouldBuy {
			decisionStr = "BUY"
		}
		fmt.Fprintf(w, "%s\t%.1f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%d\t%d\t%s\n",
			ev.Symbol,
			ev.Composite.Total,
			ev.Composite.SubScores[domain.ScoreRSI].Value,
			ev.Composite.SubScores[domain.ScoreMACD].Value,
			ev.Composite.SubScores[domain.ScoreSMACrossover].Value,
			ev.Composite.SubScores[domain.ScoreEMACrossover].Value,
			ev.Composite.SubScores[domain.ScoreVolumeSpike].Value,
			ev.Composite.SubScores[domain.ScoreSentiment].Value,
			ev.Decision.HistoricalScore,
			ev.SignalCount,
			decisionStr,
		)
	}
	w.Flush()

	if len(evaluations) < len(cfg.Symbols) {
		fmt.Fprintf(os.Stderr, "%d of %d assets failed evaluation (see log)\n",
			len(cfg.Symbols)-len(evaluations), len(cfg.Symbols))
	}
}
