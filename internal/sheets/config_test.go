package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		config  Config
		wantErr bool
	}{
		{
			name: "valid service account config",
			config: Config{
				SpreadsheetID:      "sheet-1",
				ServiceAccountPath: "/path/to/key.json",
				CacheTTL:           30 * time.Second,
				RateLimit:          5,
				RateBurst:          10,
			},
			wantErr: false,
		},
		{
			name: "valid api key config",
			config: Config{
				SpreadsheetID: "sheet-1",
				APIKey:        "key-123",
				CacheTTL:      30 * time.Second,
				RateLimit:     5,
				RateBurst:     10,
			},
			wantErr: false,
		},
		{
			name: "missing spreadsheet id",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				CacheTTL:           30 * time.Second,
				RateLimit:          5,
				RateBurst:          10,
			},
			wantErr: true,
			errMsg:  "spreadsheet id is required",
		},
		{
			name: "no access method",
			config: Config{
				SpreadsheetID: "sheet-1",
				CacheTTL:      30 * time.Second,
				RateLimit:     5,
				RateBurst:     10,
			},
			wantErr: true,
			errMsg:  "no access method configured",
		},
		{
			name: "secondary spreadsheet without service account",
			config: Config{
				SpreadsheetID:     "sheet-1",
				UserSpreadsheetID: "sheet-2",
				APIKey:            "key-123",
				CacheTTL:          30 * time.Second,
				RateLimit:         5,
				RateBurst:         10,
			},
			wantErr: true,
			errMsg:  "secondary spreadsheet configured without any service account",
		},
		{
			name: "negative cache TTL",
			config: Config{
				SpreadsheetID:      "sheet-1",
				ServiceAccountPath: "/path/to/key.json",
				CacheTTL:           -time.Second,
				RateLimit:          5,
				RateBurst:          10,
			},
			wantErr: true,
			errMsg:  "cache TTL cannot be negative",
		},
		{
			name: "zero rate limit",
			config: Config{
				SpreadsheetID:      "sheet-1",
				ServiceAccountPath: "/path/to/key.json",
				CacheTTL:           30 * time.Second,
				RateLimit:          0,
				RateBurst:          10,
			},
			wantErr: true,
			errMsg:  "rate limit must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, float64(5), cfg.RateLimit)
	assert.Equal(t, 10, cfg.RateBurst)
	assert.Equal(t, "Asia/Seoul", cfg.TimeZone)
}

func TestConfig_RosterSpreadsheetID(t *testing.T) {
	cfg := Config{SpreadsheetID: "primary"}
	assert.Equal(t, "primary", cfg.RosterSpreadsheetID())

	cfg.UserSpreadsheetID = "roster"
	assert.Equal(t, "roster", cfg.RosterSpreadsheetID())
}
