package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the order book view service.
type Config struct {
	Port            int
	LogLevel        string
	LedgerURL       string
	LedgerTimeout   time.Duration
	LedgerRetries   int
	Markets         map[string]common.Address // symbol → order book contract
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables (optionally seeded
// from a .env file), applies defaults, and validates values. The ledger
// endpoint and every market contract address must be supplied; there are
// no compiled-in fallbacks for either.
func Load() (*Config, error) {
	// .env is a development convenience; deployed environments set
	// variables directly.
	_ = godotenv.Load()

	port, err := getInt("PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	ledgerURL := getStr("LEDGER_URL", "")
	if ledgerURL == "" {
		return nil, fmt.Errorf("LEDGER_URL is required")
	}

	ledgerTimeout, err := getDuration("LEDGER_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_TIMEOUT: %w", err)
	}

	ledgerRetries, err := getInt("LEDGER_RETRIES", 2)
	if err != nil || ledgerRetries < 0 {
		return nil, fmt.Errorf("invalid LEDGER_RETRIES: must be a non-negative integer")
	}

	markets, err := loadMarkets()
	if err != nil {
		return nil, err
	}

	readTimeout, err := getDuration("READ_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := getDuration("WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := getDuration("IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid IDLE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return &Config{
		Port:            port,
		LogLevel:        logLevel,
		LedgerURL:       ledgerURL,
		LedgerTimeout:   ledgerTimeout,
		LedgerRetries:   ledgerRetries,
		Markets:         markets,
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		IdleTimeout:     idleTimeout,
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

// legacyMarketVars maps the per-market environment variables inherited from
// earlier deployments to their symbols.
var legacyMarketVars = map[string]string{
	"ETH-USDC": "ETHUSDC",
	"BTC-USDC": "BTCUSDC",
}

// loadMarkets reads the market list from MARKETS, a comma-separated list of
// SYMBOL=0xADDRESS pairs, falling back to the legacy ETHUSDC/BTCUSDC
// variables. At least one market must be configured and every address must
// be a valid hex contract address.
func loadMarkets() (map[string]common.Address, error) {
	markets := make(map[string]common.Address)

	if raw := os.Getenv("MARKETS"); raw != "" {
		for _, pair := range strings.Split(raw, ",") {
			sym, addr, ok := strings.Cut(strings.TrimSpace(pair), "=")
			if !ok || sym == "" {
				return nil, fmt.Errorf("invalid MARKETS entry %q, expected SYMBOL=0xADDRESS", pair)
			}
			if !common.IsHexAddress(addr) {
				return nil, fmt.Errorf("invalid contract address for market %q", sym)
			}
			markets[sym] = common.HexToAddress(addr)
		}
		return markets, nil
	}

	for sym, key := range legacyMarketVars {
		addr := os.Getenv(key)
		if addr == "" {
			continue
		}
		if !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("invalid %s: not a hex contract address", key)
		}
		markets[sym] = common.HexToAddress(addr)
	}

	if len(markets) == 0 {
		return nil, fmt.Errorf("no markets configured: set MARKETS or the ETHUSDC/BTCUSDC variables")
	}
	return markets, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(v)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
