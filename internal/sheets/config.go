// Package sheets provides the spreadsheet data access layer: a Google Sheets
// gateway with an in-memory row cache and dual service-account token
// management, one credential per spreadsheet.
package sheets

import (
	"fmt"
	"time"
)

// Config holds the configuration for the sheet gateway.
type Config struct {
	// SpreadsheetID is the primary club spreadsheet.
	SpreadsheetID string
	// UserSpreadsheetID is the optional secondary spreadsheet holding the
	// member roster. When unset, the roster lives in the primary one.
	UserSpreadsheetID string
	// APIKey enables read-only access to public sheets when no service
	// account is configured.
	APIKey string
	// ServiceAccountPath and UserServiceAccountPath point at the JSON key
	// files for the primary and secondary spreadsheets.
	ServiceAccountPath     string
	UserServiceAccountPath string

	CacheTTL  time.Duration
	RateLimit float64
	RateBurst int
	TimeZone  string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CacheTTL:  30 * time.Second,
		RateLimit: 5,
		RateBurst: 10,
		TimeZone:  "Asia/Seoul",
	}
}

// RosterSpreadsheetID returns the spreadsheet holding the member roster.
func (c Config) RosterSpreadsheetID() string {
	if c.UserSpreadsheetID != "" {
		return c.UserSpreadsheetID
	}
	return c.SpreadsheetID
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("spreadsheet id is required")
	}
	if c.ServiceAccountPath == "" && c.APIKey == "" {
		return fmt.Errorf("no access method configured: provide a service account key or an API key")
	}
	if c.UserSpreadsheetID != "" && c.UserServiceAccountPath == "" && c.ServiceAccountPath == "" {
		return fmt.Errorf("secondary spreadsheet configured without any service account")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache TTL cannot be negative")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	if c.RateBurst <= 0 {
		return fmt.Errorf("rate burst must be positive")
	}
	return nil
}
