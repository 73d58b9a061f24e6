// Package app orchestrates the per-asset evaluation pipeline and the
// subsequent trade execution. Evaluation fans out over all candidate assets
// concurrently with independent failure isolation; execution fans out only
// over the assets whose decision gate opened, and only after every evaluation
// has completed.
package app

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"pumpScout/internal/decision"
	"pumpScout/internal/domain"
	"pumpScout/internal/history"
	"pumpScout/internal/indicators"
	"pumpScout/internal/ports"
	"pumpScout/internal/risk"
	"pumpScout/internal/scoring"
)

// Config holds the orchestrator's working-set parameters.
type Config struct {
	Symbols       []string      // Candidate asset universe
	QuoteAsset    string        // Balance asset for sizing (default "USDT")
	Keywords      []string      // Shared keyword list handed to the collector
	KlineInterval string        // Lookback interval (default "1h")
	KlineLimit    int           // Lookback window length (default 1000)
	AssetTimeout  time.Duration // Per-asset pipeline deadline (default 30s)
}

// Evaluation is the outcome of one asset's pipeline run.
type Evaluation struct {
	Symbol      string
	Composite   *domain.CompositeScore
	Decision    *domain.TradeDecision
	History     history.Details
	SignalCount int
	LastPrice   float64
}

// Orchestrator wires the scoring and decision components to the collaborator
// ports and runs evaluation cycles over the asset universe.
type Orchestrator struct {
	cfg        Config
	logger     ports.Logger
	collector  ports.SignalCollector
	sentiment  ports.SentimentScorer
	exchange   ports.ExchangeClient
	tradeRepo  ports.TradeRepository
	notifier   ports.Notifier
	indicators *indicators.Engine
	history    *history.Analyzer
	scorer     *scoring.Scorer
	gate       *decision.Engine
	sizer      *risk.Sizer

	// Exchange clock skew is corrected once per session.
	timeSync    sync.Once
	timeSyncErr error
}

// New creates an orchestrator. All dependencies are required.
func New(
	cfg Config,
	logger ports.Logger,
	collector ports.SignalCollector,
	sentiment ports.SentimentScorer,
	exchange ports.ExchangeClient,
	tradeRepo ports.TradeRepository,
	notifier ports.Notifier,
	engine *indicators.Engine,
	analyzer *history.Analyzer,
	scorer *scoring.Scorer,
	gate *decision.Engine,
	sizer *risk.Sizer,
) (*Orchestrator, error) {
	if logger == nil || collector == nil || sentiment == nil || exchange == nil ||
		tradeRepo == nil || notifier == nil || engine == nil || analyzer == nil ||
		scorer == nil || gate == nil || sizer == nil {
		return nil, fmt.Errorf("missing required dependencies for Orchestrator")
	}
	if len(cfg.Symbols) == 0 {
		return nil, fmt.Errorf("%w: at least one symbol is required", ports.ErrConfigurationError)
	}
	if cfg.QuoteAsset == "" {
		cfg.QuoteAsset = "USDT"
	}
	if cfg.KlineInterval == "" {
		cfg.KlineInterval = "1h"
	}
	if cfg.KlineLimit == 0 {
		cfg.KlineLimit = 1000
	}
	if cfg.AssetTimeout == 0 {
		cfg.AssetTimeout = 30 * time.Second
	}

	return &Orchestrator{
		cfg:        cfg,
		logger:     logger,
		collector:  collector,
		sentiment:  sentiment,
		exchange:   exchange,
		tradeRepo:  tradeRepo,
		notifier:   notifier,
		indicators: engine,
		history:    analyzer,
		scorer:     scorer,
		gate:       gate,
		sizer:      sizer,
	}, nil
}

// RunCycle runs one full evaluation-then-execution cycle over the universe.
// The error return covers session-level failures only; per-asset failures are
// logged and excluded from the cycle.
func (o *Orchestrator) RunCycle(ctx context.Context) error {
	if err := o.ensureTimeSync(ctx); err != nil {
		return fmt.Errorf("server time sync: %w", err)
	}

	evaluations := o.EvaluateAll(ctx)
	o.logger.Info(ctx, "Evaluation phase complete", map[string]interface{}{
		"symbols":   len(o.cfg.Symbols),
		"evaluated": len(evaluations),
	})

	buys := make([]*Evaluation, 0, len(evaluations))
	for _, ev := range evaluations {
		if ev.Decision.ShouldBuy {
			buys = append(buys, ev)
		}
	}
	if len(buys) == 0 {
		o.logger.Info(ctx, "No assets cleared the decision gate this cycle")
		return nil
	}

	o.ExecuteAll(ctx, buys)
	return nil
}

// EvaluateAll runs the per-asset pipeline for every candidate concurrently
// and returns the successful evaluations. Each asset runs under its own
// deadline; a failed or timed-out asset is logged and omitted, so the result
// length is the universe size minus the number of failures. Results are
// collected into an indexed slice and filtered afterwards — no accumulator is
// shared between pipelines.
func (o *Orchestrator) EvaluateAll(ctx context.Context) []*Evaluation {
	results := make([]*Evaluation, len(o.cfg.Symbols))

	var wg sync.WaitGroup
	for i, symbol := range o.cfg.Symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					o.logger.Error(ctx, fmt.Errorf("panic: %v", r), "Asset pipeline panicked", map[string]interface{}{"symbol": symbol})
				}
			}()

			assetCtx, cancel := context.WithTimeout(ctx, o.cfg.AssetTimeout)
			defer cancel()

			ev, err := o.evaluateAsset(assetCtx, symbol)
			if err != nil {
				o.logger.Error(ctx, err, "Asset pipeline failed, excluding from cycle", map[string]interface{}{"symbol": symbol})
				return
			}
			results[i] = ev
		}(i, symbol)
	}
	wg.Wait()

	evaluations := make([]*Evaluation, 0, len(results))
	for _, ev := range results {
		if ev != nil {
			evaluations = append(evaluations, ev)
		}
	}
	return evaluations
}

// evaluateAsset runs the full scoring pipeline for one symbol.
func (o *Orchestrator) evaluateAsset(ctx context.Context, symbol string) (*Evaluation, error) {
	// Signal collection. A collector failure degrades to an empty signal
	// list: partial or missing social data is valid input, not an error.
	signals, err := o.collector.Collect(ctx, o.cfg.Keywords)
	if err != nil {
		o.logger.Warn(ctx, "Signal collection failed, continuing without signals", map[string]interface{}{
			"symbol": symbol, "collector": o.collector.Name(), "error": err.Error(),
		})
		signals = nil
	}

	klines, err := o.exchange.GetKlines(ctx, symbol, o.cfg.KlineInterval, o.cfg.KlineLimit)
	if err != nil {
		return nil, fmt.Errorf("get klines for %s: %w", symbol, err)
	}
	ticker, err := o.exchange.GetTicker(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("get ticker for %s: %w", symbol, err)
	}

	histScore, histDetails := o.history.Analyze(klines)

	currentVolume := math.NaN()
	averageVolume := math.NaN()
	if len(klines) > 0 {
		currentVolume = klines[len(klines)-1].Volume
		averageVolume = histDetails.AvgVolume
	}
	technical := o.indicators.Scores(klines, currentVolume, averageVolume)

	rawSentiment := o.scoreSignals(ctx, signals)
	composite := o.scorer.Score(symbol, technical, rawSentiment, histScore)

	priceIncrease := priceIncreasePct(klines, signals, ticker)
	dec := o.gate.Decide(decision.Input{
		Symbol:           symbol,
		TotalScore:       composite.Total,
		HistoricalScore:  histScore,
		PriceIncreasePct: priceIncrease,
	})

	o.logger.Debug(ctx, "Asset evaluated", map[string]interface{}{
		"symbol":        symbol,
		"total":         composite.Total,
		"histScore":     histScore,
		"priceIncrease": priceIncrease,
		"signals":       len(signals),
		"shouldBuy":     dec.ShouldBuy,
	})

	return &Evaluation{
		Symbol:      symbol,
		Composite:   composite,
		Decision:    dec,
		History:     histDetails,
		SignalCount: len(signals),
		LastPrice:   ticker.LastPrice,
	}, nil
}

// scoreSignals produces the cycle's raw sentiment: each signal's text is
// scored by the external producer and the results are engagement-weighted.
func (o *Orchestrator) scoreSignals(ctx context.Context, signals []domain.Signal) float64 {
	sentiments := make([]float64, len(signals))
	for i, sig := range signals {
		value, err := o.sentiment.Score(ctx, sig.Text)
		if err != nil {
			o.logger.Debug(ctx, "Sentiment scoring failed for signal", map[string]interface{}{
				"source": sig.Source, "error": err.Error(),
			})
			value = math.NaN()
		}
		sentiments[i] = value
	}
	return scoring.AggregateSentiment(signals, sentiments)
}

// ExecuteAll submits orders for the given BUY evaluations concurrently. Each
// execution is independent: a failed submission is reported and does not
// affect the other assets in the batch.
func (o *Orchestrator) ExecuteAll(ctx context.Context, buys []*Evaluation) {
	var wg sync.WaitGroup
	for _, ev := range buys {
		wg.Add(1)
		go func(ev *Evaluation) {
			defer wg.Done()
			if err := o.executeTrade(ctx, ev); err != nil {
				o.logger.Error(ctx, err, "Trade execution failed", map[string]interface{}{"symbol": ev.Symbol})
				o.notify(ctx, fmt.Sprintf("Trade execution failed for %s: %v", ev.Symbol, err))
			}
		}(ev)
	}
	wg.Wait()
}

// executeTrade sizes and submits a market order for one BUY decision, then
// hands the record to persistence and notification. No automatic retry is
// performed: a resubmission after an ambiguous failure risks duplicate fills.
func (o *Orchestrator) executeTrade(ctx context.Context, ev *Evaluation) error {
	balance, err := o.exchange.GetAccountBalance(ctx, o.cfg.QuoteAsset)
	if err != nil {
		return fmt.Errorf("get balance: %w", err)
	}
	openCount, err := o.exchange.CountOpenPositions(ctx)
	if err != nil {
		return fmt.Errorf("count open positions: %w", err)
	}

	size, err := o.sizer.Size(risk.Input{
		Symbol:            ev.Symbol,
		HistoricalScore:   ev.Decision.HistoricalScore,
		TotalScore:        ev.Decision.CompositeScore,
		PortfolioBalance:  balance,
		OpenPositionCount: openCount,
	})
	if err != nil {
		return fmt.Errorf("position sizing: %w", err)
	}

	precision, err := o.exchange.GetSymbolPrecision(ctx, ev.Symbol)
	if err != nil {
		return fmt.Errorf("get symbol precision: %w", err)
	}
	if ev.LastPrice <= 0 {
		return fmt.Errorf("%w: last price %f for %s", ports.ErrInvariantViolation, ev.LastPrice, ev.Symbol)
	}
	quantity := formatQuantity(size.TradeAmountUSD/ev.LastPrice, precision)

	o.logger.Info(ctx, "Submitting market order", map[string]interface{}{
		"symbol":     ev.Symbol,
		"quantity":   quantity,
		"amountUSD":  size.TradeAmountUSD,
		"allocation": size.AllocationFraction,
	})

	order, err := o.exchange.PlaceMarketOrder(ctx, ev.Symbol, domain.Buy, quantity)
	if err != nil {
		return fmt.Errorf("place market order: %w", err)
	}

	fillPrice := order.AvgPrice
	if fillPrice == 0 {
		fillPrice = ev.LastPrice
	}
	record := &domain.TradeRecord{
		Symbol:    ev.Symbol,
		Side:      domain.Buy,
		Amount:    order.ExecutedQty,
		Price:     fillPrice,
		Timestamp: order.Timestamp,
	}

	// Persistence is fire-and-forget: the order is already on the exchange,
	// so a failed write must not fail the execution.
	if _, err := o.tradeRepo.RecordTrade(ctx, record); err != nil {
		o.logger.Error(ctx, err, "Failed to persist trade record", map[string]interface{}{"symbol": ev.Symbol})
	}

	o.notify(ctx, fmt.Sprintf("BUY %s: qty %s @ %.6f (score %.1f, hist %d, alloc %.2f%%)",
		ev.Symbol, quantity, fillPrice, ev.Composite.Total, ev.Decision.HistoricalScore, size.AllocationFraction*100))
	return nil
}

// notify delivers a best-effort message; failures are logged only.
func (o *Orchestrator) notify(ctx context.Context, message string) {
	if err := o.notifier.Notify(ctx, message); err != nil {
		o.logger.Warn(ctx, "Notification delivery failed", map[string]interface{}{"error": err.Error()})
	}
}

// ensureTimeSync corrects the exchange clock skew once per session.
func (o *Orchestrator) ensureTimeSync(ctx context.Context) error {
	o.timeSync.Do(func() {
		o.timeSyncErr = o.exchange.SetServerTime(ctx)
		if o.timeSyncErr == nil {
			o.logger.Info(ctx, "Exchange server time synchronized")
		}
	})
	return o.timeSyncErr
}

// priceIncreasePct computes the percentage move since the earliest signal's
// observation time, using the close of the candle covering that time as the
// base. A cycle without signals (a scheduled evaluation rather than a
// post-triggered one) falls back to the 24h price change so the anti-chasing
// guard still has a reference move.
func priceIncreasePct(klines []*domain.Kline, signals []domain.Signal, ticker *ports.Ticker) float64 {
	if len(signals) == 0 || len(klines) == 0 {
		return ticker.PriceChangePct24h
	}

	earliest := signals[0].Timestamp
	for _, sig := range signals[1:] {
		if sig.Timestamp.Before(earliest) {
			earliest = sig.Timestamp
		}
	}

	var base float64
	for _, k := range klines {
		if !k.OpenTime.After(earliest) {
			base = k.Close
		} else {
			break
		}
	}
	if base <= 0 {
		return ticker.PriceChangePct24h
	}
	return (ticker.LastPrice - base) / base * 100
}

// formatQuantity floors a base-asset quantity to the symbol's precision and
// formats it for the exchange API.
func formatQuantity(quantity float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	factor := math.Pow(10, float64(precision))
	floored := math.Floor(quantity*factor) / factor
	return strconv.FormatFloat(floored, 'f', precision, 64)
}
