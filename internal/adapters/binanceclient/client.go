package binanceclient

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pumpScout/internal/domain"
	"pumpScout/internal/ports"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
)

const (
	// Base URLs
	baseURLProduction = "https://api.binance.com"
	baseURLTestnet    = "https://testnet.binance.vision"
)

// Client implements the ports.ExchangeClient interface using the go-binance
// spot client.
type Client struct {
	spotClient *binance.Client
	logger     ports.Logger
}

// Config holds configuration specific to the Binance client adapter.
type Config struct {
	APIKey     string
	SecretKey  string
	UseTestnet bool
	Logger     ports.Logger
}

// New creates a new Binance client adapter.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Binance client")
	}
	if cfg.APIKey == "" || cfg.SecretKey == "" {
		cfg.Logger.Warn(context.Background(), "APIKey or SecretKey is empty. Client will only work for public endpoints.")
	}

	client := binance.NewClient(cfg.APIKey, cfg.SecretKey)

	// Set BaseURL directly instead of flipping the global binance.UseTestnet
	if cfg.UseTestnet {
		client.BaseURL = baseURLTestnet
		cfg.Logger.Info(context.Background(), "Binance client configured for Testnet", map[string]interface{}{"baseURL": client.BaseURL})
	} else {
		client.BaseURL = baseURLProduction
		cfg.Logger.Info(context.Background(), "Binance client configured for Production", map[string]interface{}{"baseURL": client.BaseURL})
	}

	return &Client{
		spotClient: client,
		logger:     cfg.Logger,
	}, nil
}

// handleError translates common Binance API errors into standardized ports errors.
func (c *Client) handleError(ctx context.Context, err error, operation string) error {
	if err == nil {
		return nil
	}

	fields := map[string]interface{}{"operation": operation, "originalError": err.Error()}

	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		fields["apiErrorCode"] = apiErr.Code
		fields["apiErrorMessage"] = apiErr.Message

		var mappedErr error
		switch apiErr.Code {
		case -1003: // Too many requests
			mappedErr = ports.ErrRateLimited
		case -1021: // Timestamp outside of the recvWindow
			mappedErr = ports.ErrTimeout
		case -1022: // Invalid signature
			mappedErr = ports.ErrAuthenticationFailed
		case -1100, -1101, -1102, -1103, -1104, -1105, -1106, -1111, -1112, -1121, -1130: // Parameter/request format errors
			mappedErr = ports.ErrInvalidRequest
		case -2010: // New order rejected
			mappedErr = ports.ErrOrderPlacementFailed
		case -2014, -2015: // API-key format invalid / invalid key, IP, or permissions
			mappedErr = ports.ErrInvalidAPIKeys
		case -3005: // Insufficient balance
			mappedErr = ports.ErrInsufficientFunds
		default:
			mappedErr = ports.ErrUnknown
		}
		finalErr := fmt.Errorf("%s failed: %w: %w", operation, mappedErr, err)
		c.logger.Error(ctx, err, fmt.Sprintf("%s failed with API error", operation), fields)
		return finalErr
	}

	// Handle non-API errors (network, context cancellation, etc.)
	var finalErr error
	if errors.Is(err, context.DeadlineExceeded) {
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrTimeout, err)
	} else if errors.Is(err, context.Canceled) {
		finalErr = fmt.Errorf("%s operation canceled: %w: %w", operation, ports.ErrContextCanceled, err)
	} else if strings.Contains(err.Error(), "use of closed network connection") ||
		strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "connection reset by peer") {
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrConnectionFailed, err)
	} else {
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrUnknown, err)
	}

	c.logger.Error(ctx, err, fmt.Sprintf("%s failed", operation), fields)
	return finalErr
}

// SetServerTime synchronizes the client's time offset with the server's time.
func (c *Client) SetServerTime(ctx context.Context) error {
	op := "SetServerTime"
	_, err := c.spotClient.NewSetServerTimeService().Do(ctx)
	if err != nil {
		return c.handleError(ctx, err, op)
	}
	c.logger.Debug(ctx, op+" successful")
	return nil
}

// GetServerTime retrieves the current server time from the exchange.
func (c *Client) GetServerTime(ctx context.Context) (time.Time, error) {
	op := "GetServerTime"
	serverTimeMs, err := c.spotClient.NewServerTimeService().Do(ctx)
	if err != nil {
		return time.Time{}, c.handleError(ctx, err, op)
	}
	return time.UnixMilli(serverTimeMs), nil
}

// Ping checks the connectivity to the exchange API.
func (c *Client) Ping(ctx context.Context) error {
	op := "Ping"
	if err := c.spotClient.NewPingService().Do(ctx); err != nil {
		return c.handleError(ctx, err, op)
	}
	c.logger.Debug(ctx, op+" successful")
	return nil
}

// GetKlines retrieves historical klines/candlestick data for the given symbol.
func (c *Client) GetKlines(ctx context.Context, symbol string, interval string, limit int) ([]*domain.Kline, error) {
	op := "GetKlines"
	binanceKlines, err := c.spotClient.NewKlinesService().Symbol(symbol).Interval(interval).Limit(limit).Do(ctx)
	if err != nil {
		return nil, c.handleError(ctx, err, op)
	}

	domainKlines := make([]*domain.Kline, 0, len(binanceKlines))
	for _, bk := range binanceKlines {
		dk, err := translateKline(bk, symbol, interval)
		if err != nil {
			return nil, c.handleError(ctx, fmt.Errorf("failed to translate historical kline: %w", err), op)
		}
		domainKlines = append(domainKlines, dk)
	}

	return domainKlines, nil
}

// GetTicker retrieves the 24h rolling ticker for a given symbol.
func (c *Client) GetTicker(ctx context.Context, symbol string) (*ports.Ticker, error) {
	op := "GetTicker"
	stats, err := c.spotClient.NewListPriceChangeStatsService().Symbol(symbol).Do(ctx)
	if err != nil {
		return nil, c.handleError(ctx, err, op)
	}
	if len(stats) == 0 {
		return nil, c.handleError(ctx, fmt.Errorf("no ticker data returned for symbol %s", symbol), op)
	}

	s := stats[0]
	lastPrice, err := strconv.ParseFloat(s.LastPrice, 64)
	if err != nil {
		return nil, c.handleError(ctx, fmt.Errorf("could not parse last price '%s': %w", s.LastPrice, err), op)
	}
	changePct, err := strconv.ParseFloat(s.PriceChangePercent, 64)
	if err != nil {
		return nil, c.handleError(ctx, fmt.Errorf("could not parse price change percent '%s': %w", s.PriceChangePercent, err), op)
	}
	volume, err := strconv.ParseFloat(s.Volume, 64)
	if err != nil {
		return nil, c.handleError(ctx, fmt.Errorf("could not parse volume '%s': %w", s.Volume, err), op)
	}

	return &ports.Ticker{
		Symbol:            symbol,
		LastPrice:         lastPrice,
		PriceChangePct24h: changePct,
		Volume24h:         volume,
	}, nil
}

// GetAccountBalance retrieves the free balance for a specific asset (e.g., "USDT").
func (c *Client) GetAccountBalance(ctx context.Context, asset string) (float64, error) {
	op := "GetAccountBalance"
	account, err := c.spotClient.NewGetAccountService().Do(ctx)
	if err != nil {
		return 0, c.handleError(ctx, err, op)
	}

	for _, bal := range account.Balances {
		if bal.Asset == asset {
			balance, err := strconv.ParseFloat(bal.Free, 64)
			if err != nil {
				parseErr := fmt.Errorf("could not parse balance '%s' for asset %s: %w", bal.Free, asset, err)
				return 0, c.handleError(ctx, parseErr, op)
			}
			return balance, nil
		}
	}

	// Asset not found in the account details
	return 0, c.handleError(ctx, fmt.Errorf("asset %s not found in account balance", asset), op)
}

// CountOpenPositions returns the number of currently open orders across all
// symbols. Used as the diversification divisor when sizing new trades.
func (c *Client) CountOpenPositions(ctx context.Context) (int, error) {
	op := "CountOpenPositions"
	orders, err := c.spotClient.NewListOpenOrdersService().Do(ctx)
	if err != nil {
		return 0, c.handleError(ctx, err, op)
	}
	return len(orders), nil
}

// GetSymbolPrecision returns the base-asset quantity precision for the symbol,
// derived from the exchange's lot-size step.
func (c *Client) GetSymbolPrecision(ctx context.Context, symbol string) (int, error) {
	op := "GetSymbolPrecision"
	info, err := c.spotClient.NewExchangeInfoService().Symbol(symbol).Do(ctx)
	if err != nil {
		return 0, c.handleError(ctx, err, op)
	}

	for _, s := range info.Symbols {
		if s.Symbol != symbol {
			continue
		}
		if lot := s.LotSizeFilter(); lot != nil {
			return stepSizePrecision(lot.StepSize), nil
		}
		return s.BaseAssetPrecision, nil
	}

	return 0, c.handleError(ctx, fmt.Errorf("symbol %s not found in exchange info", symbol), op)
}

// PlaceMarketOrder places a market order for the given base-asset quantity.
func (c *Client) PlaceMarketOrder(ctx context.Context, symbol string, side domain.OrderSide, quantity string) (*ports.OrderResult, error) {
	op := "PlaceMarketOrder"
	binanceSide := binance.SideType(side) // Direct conversion, values match

	order, err := c.spotClient.NewCreateOrderService().
		Symbol(symbol).
		Side(binanceSide).
		Type(binance.OrderTypeMarket).
		Quantity(quantity).
		Do(ctx)
	if err != nil {
		return nil, c.handleError(ctx, err, op)
	}

	result := translateOrderResponse(order)
	c.logger.Info(ctx, op+" successful", map[string]interface{}{
		"symbol":   symbol,
		"side":     side,
		"quantity": quantity,
		"orderID":  result.OrderID,
		"avgPrice": result.AvgPrice,
	})
	return result, nil
}

// --- Translation Helpers ---

func translateOrderResponse(order *binance.CreateOrderResponse) *ports.OrderResult {
	if order == nil {
		return nil
	}
	execQty, _ := strconv.ParseFloat(order.ExecutedQuantity, 64)
	quoteQty, _ := strconv.ParseFloat(order.CummulativeQuoteQuantity, 64)

	// Market orders report no single price; derive the average fill price
	// from the cumulative quote quantity.
	avgPrice := 0.0
	if execQty > 0 {
		avgPrice = quoteQty / execQty
	}

	return &ports.OrderResult{
		OrderID:     order.OrderID,
		Symbol:      order.Symbol,
		Side:        string(order.Side),
		Status:      string(order.Status),
		ExecutedQty: execQty,
		AvgPrice:    avgPrice,
		Timestamp:   time.UnixMilli(order.TransactTime),
	}
}

func translateKline(bk *binance.Kline, symbol, interval string) (*domain.Kline, error) {
	if bk == nil {
		return nil, errors.New("received nil historical kline")
	}
	open, err := strconv.ParseFloat(bk.Open, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing open price '%s': %w", bk.Open, err)
	}
	high, err := strconv.ParseFloat(bk.High, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing high price '%s': %w", bk.High, err)
	}
	low, err := strconv.ParseFloat(bk.Low, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing low price '%s': %w", bk.Low, err)
	}
	cls, err := strconv.ParseFloat(bk.Close, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing close price '%s': %w", bk.Close, err)
	}
	vol, err := strconv.ParseFloat(bk.Volume, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing volume '%s': %w", bk.Volume, err)
	}

	return &domain.Kline{
		OpenTime:  time.UnixMilli(bk.OpenTime),
		CloseTime: time.UnixMilli(bk.CloseTime),
		Symbol:    symbol,
		Interval:  interval,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     cls,
		Volume:    vol,
	}, nil
}

// stepSizePrecision converts a lot-size step like "0.00100000" into the
// number of usable decimal places.
func stepSizePrecision(step string) int {
	step = strings.TrimRight(step, "0")
	dot := strings.IndexByte(step, '.')
	if dot < 0 {
		return 0
	}
	return len(step) - dot - 1
}
