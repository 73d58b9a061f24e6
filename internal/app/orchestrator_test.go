package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"pumpScout/internal/decision"
	"pumpScout/internal/domain"
	"pumpScout/internal/history"
	"pumpScout/internal/indicators"
	"pumpScout/internal/ports"
	"pumpScout/internal/risk"
	"pumpScout/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

type mockCollector struct {
	signals []domain.Signal
	err     error
}

func (m *mockCollector) Name() string { return "mock" }
func (m *mockCollector) Collect(ctx context.Context, keywords []string) ([]domain.Signal, error) {
	return m.signals, m.err
}

type mockSentiment struct {
	value float64
	err   error
}

func (m *mockSentiment) Score(ctx context.Context, text string) (float64, error) {
	return m.value, m.err
}

// mockExchange serves canned market data per symbol and records order calls.
type mockExchange struct {
	mu sync.Mutex

	klines      map[string][]*domain.Kline
	klinesErr   map[string]error
	klinesDelay map[string]time.Duration // per-symbol response latency
	tickers     map[string]*ports.Ticker
	balance     float64
	openCount   int
	precision   int
	orderErr    error
	orders      []string // symbols in placement order
	syncCalls   int
}

func (m *mockExchange) GetKlines(ctx context.Context, symbol, interval string, limit int) ([]*domain.Kline, error) {
	if d := m.klinesDelay[symbol]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := m.klinesErr[symbol]; err != nil {
		return nil, err
	}
	return m.klines[symbol], nil
}

func (m *mockExchange) GetTicker(ctx context.Context, symbol string) (*ports.Ticker, error) {
	t, ok := m.tickers[symbol]
	if !ok {
		return nil, fmt.Errorf("no ticker for %s", symbol)
	}
	return t, nil
}

func (m *mockExchange) SetServerTime(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncCalls++
	return nil
}

func (m *mockExchange) GetServerTime(ctx context.Context) (time.Time, error) { return time.Now(), nil }
func (m *mockExchange) Ping(ctx context.Context) error                       { return nil }

func (m *mockExchange) GetAccountBalance(ctx context.Context, asset string) (float64, error) {
	return m.balance, nil
}

func (m *mockExchange) CountOpenPositions(ctx context.Context) (int, error) {
	return m.openCount, nil
}

func (m *mockExchange) GetSymbolPrecision(ctx context.Context, symbol string) (int, error) {
	return m.precision, nil
}

func (m *mockExchange) PlaceMarketOrder(ctx context.Context, symbol string, side domain.OrderSide, quantity string) (*ports.OrderResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.orderErr != nil {
		return nil, m.orderErr
	}
	m.orders = append(m.orders, symbol)
	return &ports.OrderResult{
		OrderID:     int64(len(m.orders)),
		Symbol:      symbol,
		Side:        string(side),
		Status:      "FILLED",
		ExecutedQty: 100,
		AvgPrice:    115,
		Timestamp:   time.Now(),
	}, nil
}

func (m *mockExchange) placedOrders() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.orders...)
}

type mockRepo struct {
	mu     sync.Mutex
	trades []*domain.TradeRecord
	err    error
}

func (m *mockRepo) RecordTrade(ctx context.Context, trade *domain.TradeRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.trades = append(m.trades, trade)
	return int64(len(m.trades)), nil
}

func (m *mockRepo) FindSince(ctx context.Context, cutoff time.Time) ([]*domain.TradeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trades, m.err
}

type mockNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockNotifier) Notify(ctx context.Context, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
	return nil
}

// --- Fixtures ---

var seriesStart = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

// bullishKlines builds a 30-candle window engineered to clear the full
// pipeline with the small-period test engine: a gentle decline with a final
// spike (bullish crossover and positive MACD), three pump candles and spiking
// volumes (historical score 20), and a final volume burst.
func bullishKlines() []*domain.Kline {
	klines := make([]*domain.Kline, 30)
	for i := 0; i < 29; i++ {
		c := 100 - float64(i)*0.17
		klines[i] = &domain.Kline{
			OpenTime:  seriesStart.Add(time.Duration(i) * time.Hour),
			CloseTime: seriesStart.Add(time.Duration(i+1) * time.Hour),
			Symbol:    "TESTUSDT",
			Interval:  "1h",
			Open:      c,
			Close:     c,
			High:      c,
			Low:       c,
			Volume:    10,
		}
	}
	// Three pump candles: +30% close over open, outsized volume.
	for _, i := range []int{26, 27, 28} {
		klines[i].Open = klines[i].Close / 1.3
		klines[i].Volume = 100
	}
	// Final spike candle with a volume burst.
	klines[29] = &domain.Kline{
		OpenTime:  seriesStart.Add(29 * time.Hour),
		CloseTime: seriesStart.Add(30 * time.Hour),
		Symbol:    "TESTUSDT",
		Interval:  "1h",
		Open:      110,
		Close:     140,
		High:      140,
		Low:       110,
		Volume:    200,
	}
	return klines
}

// flatKlines builds a window with no signal in it at all.
func flatKlines() []*domain.Kline {
	klines := make([]*domain.Kline, 30)
	for i := range klines {
		klines[i] = &domain.Kline{
			OpenTime:  seriesStart.Add(time.Duration(i) * time.Hour),
			CloseTime: seriesStart.Add(time.Duration(i+1) * time.Hour),
			Symbol:    "QUIETUSDT",
			Interval:  "1h",
			Open:      50,
			Close:     50,
			High:      50,
			Low:       50,
			Volume:    10,
		}
	}
	return klines
}

// testSignals place the earliest observation at candle index 5, so the price
// base is that candle's close (~99) and the 115 ticker is a ~16% move.
func testSignals() []domain.Signal {
	return []domain.Signal{
		{Source: "mock", Text: "mooning hard", Timestamp: seriesStart.Add(5 * time.Hour), EngagementScore: 50},
		{Source: "mock", Text: "pump incoming", Timestamp: seriesStart.Add(8 * time.Hour), EngagementScore: 10},
	}
}

func newTestOrchestrator(t *testing.T, cfg Config, exchange *mockExchange, coll ports.SignalCollector, repo *mockRepo, notif *mockNotifier) *Orchestrator {
	t.Helper()

	// Small periods so 30 candles are enough for every indicator.
	engine, err := indicators.NewEngine(indicators.EngineConfig{
		RSIPeriod:      2,
		MACDShort:      3,
		MACDLong:       6,
		MACDSignal:     3,
		SMAShortPeriod: 2,
		SMALongPeriod:  3,
		EMAShortPeriod: 2,
		EMALongPeriod:  3,
	})
	require.NoError(t, err)

	scorer, err := scoring.NewScorer(scoring.ScorerConfig{})
	require.NoError(t, err)

	orch, err := New(
		cfg,
		&mockLogger{},
		coll,
		&mockSentiment{value: 0.9},
		exchange,
		repo,
		notif,
		engine,
		history.NewAnalyzer(history.AnalyzerConfig{}),
		scorer,
		decision.New(decision.DefaultConfig()),
		risk.NewSizer(risk.SizerConfig{}),
	)
	require.NoError(t, err)
	return orch
}

// --- Tests ---

func TestOrchestrator_RunCycle_ExecutesBuys(t *testing.T) {
	exchange := &mockExchange{
		klines:    map[string][]*domain.Kline{"TESTUSDT": bullishKlines()},
		tickers:   map[string]*ports.Ticker{"TESTUSDT": {Symbol: "TESTUSDT", LastPrice: 115, PriceChangePct24h: 2}},
		balance:   10000,
		precision: 2,
	}
	repo := &mockRepo{}
	notif := &mockNotifier{}
	orch := newTestOrchestrator(t, Config{Symbols: []string{"TESTUSDT"}},
		exchange, &mockCollector{signals: testSignals()}, repo, notif)

	require.NoError(t, orch.RunCycle(context.Background()))

	assert.Equal(t, []string{"TESTUSDT"}, exchange.placedOrders())
	require.Len(t, repo.trades, 1)
	assert.Equal(t, "TESTUSDT", repo.trades[0].Symbol)
	assert.Equal(t, domain.Buy, repo.trades[0].Side)
	require.Len(t, notif.messages, 1)
	assert.Contains(t, notif.messages[0], "BUY TESTUSDT")
}

func TestOrchestrator_RunCycle_QuietMarketPlacesNoOrders(t *testing.T) {
	exchange := &mockExchange{
		klines:    map[string][]*domain.Kline{"QUIETUSDT": flatKlines()},
		tickers:   map[string]*ports.Ticker{"QUIETUSDT": {Symbol: "QUIETUSDT", LastPrice: 50, PriceChangePct24h: 0}},
		balance:   10000,
		precision: 2,
	}
	orch := newTestOrchestrator(t, Config{Symbols: []string{"QUIETUSDT"}},
		exchange, &mockCollector{}, &mockRepo{}, &mockNotifier{})

	require.NoError(t, orch.RunCycle(context.Background()))
	assert.Empty(t, exchange.placedOrders())
}

func TestOrchestrator_EvaluateAll_FailureIsolation(t *testing.T) {
	// Three symbols: one healthy, one with a failing klines call, one with a
	// missing ticker. The failures must not affect the healthy asset.
	exchange := &mockExchange{
		klines: map[string][]*domain.Kline{
			"TESTUSDT":  bullishKlines(),
			"NOTICKUSD": bullishKlines(),
		},
		klinesErr: map[string]error{"BROKENUSDT": errors.New("exchange unavailable")},
		tickers:   map[string]*ports.Ticker{"TESTUSDT": {Symbol: "TESTUSDT", LastPrice: 115, PriceChangePct24h: 2}},
		balance:   10000,
		precision: 2,
	}
	orch := newTestOrchestrator(t, Config{Symbols: []string{"TESTUSDT", "BROKENUSDT", "NOTICKUSD"}},
		exchange, &mockCollector{signals: testSignals()}, &mockRepo{}, &mockNotifier{})

	evaluations := orch.EvaluateAll(context.Background())

	require.Len(t, evaluations, 1, "result count must be universe size minus failures")
	assert.Equal(t, "TESTUSDT", evaluations[0].Symbol)
}

func TestOrchestrator_EvaluateAll_SlowAssetTimesOut(t *testing.T) {
	// One symbol answers promptly, the other hangs past the per-asset
	// deadline. The stalled asset is dropped; the prompt one survives.
	exchange := &mockExchange{
		klines: map[string][]*domain.Kline{
			"TESTUSDT": bullishKlines(),
			"SLOWUSDT": bullishKlines(),
		},
		klinesDelay: map[string]time.Duration{"SLOWUSDT": 5 * time.Second},
		tickers: map[string]*ports.Ticker{
			"TESTUSDT": {Symbol: "TESTUSDT", LastPrice: 115, PriceChangePct24h: 2},
			"SLOWUSDT": {Symbol: "SLOWUSDT", LastPrice: 115, PriceChangePct24h: 2},
		},
		balance:   10000,
		precision: 2,
	}
	cfg := Config{Symbols: []string{"TESTUSDT", "SLOWUSDT"}, AssetTimeout: 50 * time.Millisecond}
	orch := newTestOrchestrator(t, cfg,
		exchange, &mockCollector{signals: testSignals()}, &mockRepo{}, &mockNotifier{})

	start := time.Now()
	evaluations := orch.EvaluateAll(context.Background())

	require.Len(t, evaluations, 1)
	assert.Equal(t, "TESTUSDT", evaluations[0].Symbol)
	assert.Less(t, time.Since(start), 2*time.Second, "the deadline must cut the stalled call short")
}

func TestOrchestrator_EvaluateAll_CollectorFailureDegrades(t *testing.T) {
	// A broken collector means no signals, not a failed asset.
	exchange := &mockExchange{
		klines:    map[string][]*domain.Kline{"TESTUSDT": bullishKlines()},
		tickers:   map[string]*ports.Ticker{"TESTUSDT": {Symbol: "TESTUSDT", LastPrice: 115, PriceChangePct24h: 2}},
		balance:   10000,
		precision: 2,
	}
	orch := newTestOrchestrator(t, Config{Symbols: []string{"TESTUSDT"}},
		exchange, &mockCollector{err: errors.New("source down")}, &mockRepo{}, &mockNotifier{})

	evaluations := orch.EvaluateAll(context.Background())

	require.Len(t, evaluations, 1)
	ev := evaluations[0]
	assert.Equal(t, 0, ev.SignalCount)
	// Absent sentiment contributes zero, not an error.
	assert.InDelta(t, 0.0, ev.Composite.SubScores[domain.ScoreSentiment].Value, 1e-9)
}

func TestOrchestrator_RunCycle_OrderFailureIsReported(t *testing.T) {
	exchange := &mockExchange{
		klines:    map[string][]*domain.Kline{"TESTUSDT": bullishKlines()},
		tickers:   map[string]*ports.Ticker{"TESTUSDT": {Symbol: "TESTUSDT", LastPrice: 115, PriceChangePct24h: 2}},
		balance:   10000,
		precision: 2,
		orderErr:  ports.ErrOrderPlacementFailed,
	}
	repo := &mockRepo{}
	notif := &mockNotifier{}
	orch := newTestOrchestrator(t, Config{Symbols: []string{"TESTUSDT"}},
		exchange, &mockCollector{signals: testSignals()}, repo, notif)

	// A failed submission is a per-asset event, never a cycle error.
	require.NoError(t, orch.RunCycle(context.Background()))

	assert.Empty(t, repo.trades, "no record without a confirmed order")
	require.Len(t, notif.messages, 1)
	assert.Contains(t, notif.messages[0], "failed")
}

func TestOrchestrator_TimeSyncOncePerSession(t *testing.T) {
	exchange := &mockExchange{
		klines:    map[string][]*domain.Kline{"QUIETUSDT": flatKlines()},
		tickers:   map[string]*ports.Ticker{"QUIETUSDT": {Symbol: "QUIETUSDT", LastPrice: 50}},
		balance:   10000,
		precision: 2,
	}
	orch := newTestOrchestrator(t, Config{Symbols: []string{"QUIETUSDT"}},
		exchange, &mockCollector{}, &mockRepo{}, &mockNotifier{})

	ctx := context.Background()
	require.NoError(t, orch.RunCycle(ctx))
	require.NoError(t, orch.RunCycle(ctx))
	require.NoError(t, orch.RunCycle(ctx))

	assert.Equal(t, 1, exchange.syncCalls)
}

func TestOrchestrator_RecordFailureDoesNotFailExecution(t *testing.T) {
	exchange := &mockExchange{
		klines:    map[string][]*domain.Kline{"TESTUSDT": bullishKlines()},
		tickers:   map[string]*ports.Ticker{"TESTUSDT": {Symbol: "TESTUSDT", LastPrice: 115, PriceChangePct24h: 2}},
		balance:   10000,
		precision: 2,
	}
	repo := &mockRepo{err: errors.New("disk full")}
	notif := &mockNotifier{}
	orch := newTestOrchestrator(t, Config{Symbols: []string{"TESTUSDT"}},
		exchange, &mockCollector{signals: testSignals()}, repo, notif)

	require.NoError(t, orch.RunCycle(context.Background()))

	// The order went out and success was still announced.
	assert.Equal(t, []string{"TESTUSDT"}, exchange.placedOrders())
	require.Len(t, notif.messages, 1)
	assert.Contains(t, notif.messages[0], "BUY TESTUSDT")
}

func TestOrchestrator_SendTradeReport(t *testing.T) {
	repo := &mockRepo{trades: []*domain.TradeRecord{
		{Symbol: "DOGEUSDT", Side: domain.Buy, Amount: 100, Price: 0.08, Timestamp: time.Now(), RealizedPnL: 2},
	}}
	notif := &mockNotifier{}
	exchange := &mockExchange{
		klines:  map[string][]*domain.Kline{"QUIETUSDT": flatKlines()},
		tickers: map[string]*ports.Ticker{"QUIETUSDT": {Symbol: "QUIETUSDT", LastPrice: 50}},
	}
	orch := newTestOrchestrator(t, Config{Symbols: []string{"QUIETUSDT"}},
		exchange, &mockCollector{}, repo, notif)

	require.NoError(t, orch.SendTradeReport(context.Background(), 24*time.Hour))

	require.Len(t, notif.messages, 1)
	assert.Contains(t, notif.messages[0], "DOGEUSDT")
	assert.Contains(t, notif.messages[0], "Total trades: 1")
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		value     float64
		precision int
		want      string
	}{
		{value: 1.23456, precision: 2, want: "1.23"},
		{value: 1.23999, precision: 2, want: "1.23"}, // floored, never rounded up
		{value: 1500.7, precision: 0, want: "1500"},
		{value: 0.000123456, precision: 6, want: "0.000123"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatQuantity(tt.value, tt.precision))
	}
}
