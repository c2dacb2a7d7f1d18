package config

import (
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/1taes/JOY-Intranet/internal/sheets"
)

// LoadSheetsConfig loads the sheet gateway configuration. Precedence:
// 1. Viper configuration (config file or JOYINTRA_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetsConfig() (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	if v := viper.GetString("sheets.spreadsheet_id"); v != "" {
		config.SpreadsheetID = v
	}
	if v := viper.GetString("sheets.user_spreadsheet_id"); v != "" {
		config.UserSpreadsheetID = v
	}
	if v := viper.GetString("sheets.api_key"); v != "" {
		config.APIKey = v
	}
	if v := viper.GetString("sheets.service_account_path"); v != "" {
		config.ServiceAccountPath = ExpandPath(v)
	}
	if v := viper.GetString("sheets.user_service_account_path"); v != "" {
		config.UserServiceAccountPath = ExpandPath(v)
	}
	if v := viper.GetDuration("sheets.cache_ttl"); v > 0 {
		config.CacheTTL = v
	}
	if v := viper.GetFloat64("sheets.rate_limit"); v > 0 {
		config.RateLimit = v
	}
	if v := viper.GetInt("sheets.rate_burst"); v > 0 {
		config.RateBurst = v
	}
	if v := viper.GetString("sheets.time_zone"); v != "" {
		config.TimeZone = v
	}

	// Fall back to the variables the spreadsheet was originally accessed
	// with, so an existing deployment works without a config file.
	if config.SpreadsheetID == "" {
		config.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	}
	if config.UserSpreadsheetID == "" {
		config.UserSpreadsheetID = os.Getenv("GOOGLE_SHEETS_USER_SPREADSHEET_ID")
	}
	if config.APIKey == "" {
		config.APIKey = os.Getenv("GOOGLE_SHEETS_API_KEY")
	}
	if config.ServiceAccountPath == "" {
		if v := os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"); v != "" {
			config.ServiceAccountPath = ExpandPath(v)
		}
	}
	if config.UserServiceAccountPath == "" {
		if v := os.Getenv("GOOGLE_SHEETS_USER_SERVICE_ACCOUNT_PATH"); v != "" {
			config.UserServiceAccountPath = ExpandPath(v)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Location resolves the configured time zone, falling back to UTC when the
// zone database does not know it.
func Location(config *sheets.Config) *time.Location {
	loc, err := time.LoadLocation(config.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
