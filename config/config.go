package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"pumpScout/internal/adapters/logger" // Import the logger package for LogLevel
	"pumpScout/internal/domain"
	"pumpScout/internal/scoring"
)

// Config holds all application configuration.
type Config struct {
	// Binance API
	APIKey    string
	SecretKey string
	IsTestnet bool

	// Asset Universe
	Symbols    []string // Candidate symbols (e.g., DOGEUSDT,SHIBUSDT)
	QuoteAsset string   // Balance asset used for sizing (e.g., USDT)
	Keywords   []string // Keyword list handed to the signal collectors

	// Market Data
	KlineInterval string
	KlineLimit    int
	AssetTimeout  time.Duration // Per-asset pipeline deadline

	// Scoring
	Weights            domain.Weights // Composite weight table (default scoring.DefaultWeights)
	SentimentThreshold float64        // Sentiment value that saturates the sentiment sub-score

	// Decision Gate
	ScoreThreshold     float64 // Composite total required for a BUY
	HistScoreThreshold int     // Historical score required for a BUY
	PriceSignalPct     float64 // Price increase counting as a confirming signal
	MaxPriceIncrease   float64 // Anti-chasing guard percentage
	MinSignals         int     // Confirming signals required

	// Position Sizing
	MaxAllocation  float64 // Per-trade portfolio fraction ceiling
	MinTradeAmount float64 // Trade amount floor in quote currency

	// Historical Pattern Analysis
	PumpThresholdPct float64 // Candle close/open gain counting as a pump
	VolumeMultiple   float64 // Volume vs. mean multiple counting as a spike

	// Collectors
	CollectorTimeout time.Duration

	// Scheduling
	ScanCronSpec   string // Evaluation cycle schedule
	ReportCronSpec string // Daily trade report schedule
	ReportWindow   time.Duration

	// Telegram (optional; notifications are log-only when unset)
	TelegramBotToken string
	TelegramChatID   int64

	// Database
	DBPath string

	// Logging
	LogLevel  logger.LogLevel
	LogFormat string // "json" or "console"

	// Execution
	DryRun bool // Evaluate and report, never place orders
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// Binance API
	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")
	cfg.IsTestnet = getEnvAsBool("IS_TESTNET", true) // Default to testnet for safety
	cfg.DryRun = getEnvAsBool("DRY_RUN", false)

	// Keys are only required when the bot will actually trade
	if !cfg.DryRun {
		if cfg.APIKey == "" {
			errs = append(errs, "BINANCE_API_KEY must be set")
		}
		if cfg.SecretKey == "" {
			errs = append(errs, "BINANCE_API_SECRET must be set")
		}
	}

	// Asset Universe
	cfg.Symbols = getEnvAsList("SYMBOLS", []string{"DOGEUSDT"})
	if len(cfg.Symbols) == 0 {
		errs = append(errs, "SYMBOLS must list at least one symbol")
	}
	cfg.QuoteAsset = getEnv("QUOTE_ASSET", "USDT")
	cfg.Keywords = getEnvAsList("KEYWORDS", nil)
	if len(cfg.Keywords) == 0 {
		// Derive keywords from the base assets when none are configured
		for _, s := range cfg.Symbols {
			base := strings.TrimSuffix(s, cfg.QuoteAsset)
			if base != "" {
				cfg.Keywords = append(cfg.Keywords, base)
			}
		}
	}

	// Market Data
	cfg.KlineInterval = getEnv("KLINE_INTERVAL", "1h")
	cfg.KlineLimit = getEnvAsInt("KLINE_LIMIT", 1000)
	if cfg.KlineLimit <= 0 {
		errs = append(errs, "KLINE_LIMIT must be positive")
	}
	assetTimeoutSeconds := getEnvAsInt("ASSET_TIMEOUT_SECONDS", 30)
	if assetTimeoutSeconds <= 0 {
		errs = append(errs, "ASSET_TIMEOUT_SECONDS must be positive")
	}
	cfg.AssetTimeout = time.Duration(assetTimeoutSeconds) * time.Second

	// Scoring: the weight table is overridable only as a whole, and is
	// revalidated so a partial override cannot silently skew the composite.
	if weightsStr := getEnv("SCORE_WEIGHTS", ""); weightsStr != "" {
		weights, werr := parseWeights(weightsStr)
		if werr != nil {
			errs = append(errs, fmt.Sprintf("invalid SCORE_WEIGHTS: %v", werr))
		} else if werr := weights.Validate(); werr != nil {
			errs = append(errs, fmt.Sprintf("invalid SCORE_WEIGHTS: %v", werr))
		} else {
			cfg.Weights = weights
		}
	} else {
		cfg.Weights = scoring.DefaultWeights()
	}

	cfg.SentimentThreshold, err = getEnvAsFloatRequired("SENTIMENT_THRESHOLD", 0.8)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid SENTIMENT_THRESHOLD: %v", err))
	} else if cfg.SentimentThreshold <= 0 || cfg.SentimentThreshold > 1.0 {
		errs = append(errs, "SENTIMENT_THRESHOLD must be between 0.0 (exclusive) and 1.0")
	}

	// Decision Gate
	cfg.ScoreThreshold, err = getEnvAsFloatRequired("SCORE_THRESHOLD", 70.0)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid SCORE_THRESHOLD: %v", err))
	} else if cfg.ScoreThreshold < 0 || cfg.ScoreThreshold > 100 {
		errs = append(errs, "SCORE_THRESHOLD must be between 0 and 100")
	}
	cfg.HistScoreThreshold = getEnvAsInt("HIST_SCORE_THRESHOLD", 10)
	cfg.PriceSignalPct = getEnvAsFloat("PRICE_SIGNAL_PCT", 10.0)
	cfg.MaxPriceIncrease = getEnvAsFloat("MAX_PRICE_INCREASE_PCT", 50.0)
	cfg.MinSignals = getEnvAsInt("MIN_SIGNALS", 2)
	if cfg.MinSignals < 0 {
		errs = append(errs, "MIN_SIGNALS cannot be negative")
	}

	// Position Sizing
	cfg.MaxAllocation, err = getEnvAsFloatRequired("MAX_ALLOCATION", 0.05)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid MAX_ALLOCATION: %v", err))
	} else if cfg.MaxAllocation <= 0 || cfg.MaxAllocation >= 1.0 {
		errs = append(errs, "MAX_ALLOCATION must be between 0.0 and 1.0 (exclusive)")
	}
	cfg.MinTradeAmount, err = getEnvAsFloatRequired("MIN_TRADE_AMOUNT", 10.0)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid MIN_TRADE_AMOUNT: %v", err))
	} else if cfg.MinTradeAmount <= 0 {
		errs = append(errs, "MIN_TRADE_AMOUNT must be positive")
	}

	// Historical Pattern Analysis
	cfg.PumpThresholdPct = getEnvAsFloat("PUMP_THRESHOLD_PCT", 20.0)
	cfg.VolumeMultiple = getEnvAsFloat("VOLUME_SPIKE_MULTIPLE", 3.0)
	if cfg.PumpThresholdPct <= 0 || cfg.VolumeMultiple <= 0 {
		errs = append(errs, "PUMP_THRESHOLD_PCT and VOLUME_SPIKE_MULTIPLE must be positive")
	}

	// Collectors
	collectorTimeoutSeconds := getEnvAsInt("COLLECTOR_TIMEOUT_SECONDS", 10)
	if collectorTimeoutSeconds <= 0 {
		errs = append(errs, "COLLECTOR_TIMEOUT_SECONDS must be positive")
	}
	cfg.CollectorTimeout = time.Duration(collectorTimeoutSeconds) * time.Second

	// Scheduling
	cfg.ScanCronSpec = getEnv("SCAN_CRON", "*/15 * * * *")    // Every 15 minutes
	cfg.ReportCronSpec = getEnv("REPORT_CRON", "0 8 * * *")   // Daily at 08:00
	reportWindowHours := getEnvAsInt("REPORT_WINDOW_HOURS", 24)
	if reportWindowHours <= 0 {
		errs = append(errs, "REPORT_WINDOW_HOURS must be positive")
	}
	cfg.ReportWindow = time.Duration(reportWindowHours) * time.Hour

	// Telegram
	cfg.TelegramBotToken = getEnv("TELEGRAM_BOT_TOKEN", "")
	chatIDStr := getEnv("TELEGRAM_CHAT_ID", "")
	if chatIDStr != "" {
		cfg.TelegramChatID, err = strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid TELEGRAM_CHAT_ID: %v", err))
		}
	}
	if (cfg.TelegramBotToken == "") != (chatIDStr == "") {
		errs = append(errs, "TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}

	// Database
	cfg.DBPath = getEnv("DB_PATH", "./data/pump_scout.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	// Logging
	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))
	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", "json"))
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" && cfg.LogFormat != "std" {
		errs = append(errs, "LOG_FORMAT must be one of: json, console, std")
	}

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// parseWeights parses a comma-separated "name=value" list into a weight table,
// e.g. "rsi_score=0.15,macd_score=0.15,...". Names must be known sub-scores:
// a misspelled name would otherwise pass the sum check while its weight lands
// on a sub-score the scorer never produces.
func parseWeights(s string) (domain.Weights, error) {
	known := scoring.DefaultWeights()
	weights := domain.Weights{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, valueStr, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("malformed weight entry '%s' (want name=value)", pair)
		}
		name = strings.TrimSpace(name)
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("unknown sub-score '%s'", name)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight value in '%s': %w", pair, err)
		}
		weights[name] = value
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("no weight entries found")
	}
	return weights, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Log warning? For non-required fields, default is often acceptable.
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
