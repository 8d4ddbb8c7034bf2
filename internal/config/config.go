package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Transaction source
	DataBackend       string // csv, sheets, sqlite, memory
	OperationsCSVPath string
	SQLiteDBPath      string

	// Google Sheets source
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Market data
	UserSettingsPath string
	StockCachePath   string
	CurrencyAPIURL   string
	StockAPIURL      string
	StockAPIKey      string
	FetchTimeout     time.Duration

	// Reports
	ResultsDir      string
	TopTransactions int

	// AMQP (optional report notifications)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Worker
	RefreshInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8082"),

		DataBackend:       getEnv("DATA_BACKEND", "csv"),
		OperationsCSVPath: getEnv("OPERATIONS_CSV_PATH", "./data/operations.csv"),
		SQLiteDBPath:      getEnv("SQLITE_DB_PATH", "./data/operations.db"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Operations"),

		UserSettingsPath: getEnv("USER_SETTINGS_PATH", "./user_settings.json"),
		StockCachePath:   getEnv("STOCK_CACHE_PATH", "./stock_cache.json"),
		CurrencyAPIURL:   getEnv("CURRENCY_API_URL", "https://www.cbr-xml-daily.ru/daily_json.js"),
		StockAPIURL:      getEnv("STOCK_API_URL", "https://www.alphavantage.co/query"),
		StockAPIKey:      getEnv("STOCK_API_KEY", ""),
		FetchTimeout:     getEnvDuration("FETCH_TIMEOUT", 10*time.Second),

		ResultsDir:      getEnv("RESULTS_DIR", "./reports"),
		TopTransactions: getEnvInt("TOP_TRANSACTIONS", 5),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finview"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "report_events"),

		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 6*time.Hour),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "csv", "sheets", "sqlite", "memory":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [csv sheets sqlite memory]", c.DataBackend))
	}

	if c.DataBackend == "csv" && c.OperationsCSVPath == "" {
		errs = append(errs, "operations CSV path cannot be empty when using csv backend")
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.DataBackend == "sheets" && c.GoogleSpreadsheetID == "" {
		errs = append(errs, "Google Spreadsheet ID is required when using sheets backend")
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.FetchTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid fetch timeout %v: must be at least 1 second", c.FetchTimeout))
	} else if c.FetchTimeout > time.Minute {
		errs = append(errs, fmt.Sprintf("invalid fetch timeout %v: must be at most 1 minute", c.FetchTimeout))
	}

	if c.TopTransactions < 1 {
		errs = append(errs, fmt.Sprintf("invalid top transactions count %d: must be at least 1", c.TopTransactions))
	}

	if c.RefreshInterval < time.Minute {
		errs = append(errs, fmt.Sprintf("invalid refresh interval %v: must be at least 1 minute", c.RefreshInterval))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
