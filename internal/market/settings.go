// Package market enriches reports with external currency rates and
// stock quotes, caching quote lookups per calendar day.
package market

import (
	"encoding/json"
	"os"

	"finview/internal/log"
)

// Settings selects which currencies and stocks the dashboard tracks.
type Settings struct {
	UserCurrencies []string `json:"user_currencies"`
	UserStocks     []string `json:"user_stocks"`
}

// DefaultSettings is used whenever the settings file is missing or
// malformed.
func DefaultSettings() Settings {
	return Settings{
		UserCurrencies: []string{"USD", "EUR"},
		UserStocks:     []string{"AAPL", "AMZN", "GOOGL", "MSFT", "TSLA"},
	}
}

// LoadSettings reads the user settings file. Any failure falls back to
// DefaultSettings with a logged warning; loading never errors.
func LoadSettings(path string, logger *log.Logger) Settings {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentMarket)

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Settings file not readable, using defaults",
			log.FieldFilePath, path, log.FieldError, err.Error())
		return DefaultSettings()
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		logger.Warn("Settings file contains invalid JSON, using defaults",
			log.FieldFilePath, path, log.FieldError, err.Error())
		return DefaultSettings()
	}

	if s.UserCurrencies == nil {
		s.UserCurrencies = DefaultSettings().UserCurrencies
	}
	if s.UserStocks == nil {
		s.UserStocks = DefaultSettings().UserStocks
	}
	return s
}
