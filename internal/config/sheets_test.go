package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSheetsConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("sheets.spreadsheet_id", "ss-club")
	viper.Set("sheets.api_key", "key-123")
	viper.Set("sheets.cache_ttl", "45s")
	viper.Set("sheets.rate_limit", 2.5)

	cfg, err := LoadSheetsConfig()
	require.NoError(t, err)
	assert.Equal(t, "ss-club", cfg.SpreadsheetID)
	assert.Equal(t, "key-123", cfg.APIKey)
	assert.Equal(t, 45*time.Second, cfg.CacheTTL)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, 10, cfg.RateBurst, "default survives partial config")
	assert.Equal(t, "Asia/Seoul", cfg.TimeZone)
}

func TestLoadSheetsConfig_EnvFallback(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "ss-env")
	t.Setenv("GOOGLE_SHEETS_API_KEY", "key-env")

	cfg, err := LoadSheetsConfig()
	require.NoError(t, err)
	assert.Equal(t, "ss-env", cfg.SpreadsheetID)
	assert.Equal(t, "key-env", cfg.APIKey)
}

func TestLoadSheetsConfig_ViperWinsOverEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("sheets.spreadsheet_id", "ss-viper")
	viper.Set("sheets.api_key", "key-viper")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "ss-env")

	cfg, err := LoadSheetsConfig()
	require.NoError(t, err)
	assert.Equal(t, "ss-viper", cfg.SpreadsheetID)
}

func TestLoadSheetsConfig_Invalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := LoadSheetsConfig()
	require.Error(t, err, "no spreadsheet and no access method")
}

func TestLocation(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("sheets.spreadsheet_id", "ss")
	viper.Set("sheets.api_key", "k")

	cfg, err := LoadSheetsConfig()
	require.NoError(t, err)
	loc := Location(cfg)
	assert.Equal(t, "Asia/Seoul", loc.String())

	cfg.TimeZone = "Not/AZone"
	assert.Equal(t, time.UTC, Location(cfg))
}

func TestExpandPath(t *testing.T) {
	t.Setenv("JOY_TEST_DIR", "/srv/joy")
	assert.Equal(t, "/srv/joy/key.json", ExpandPath("$JOY_TEST_DIR/key.json"))
	assert.Equal(t, "", ExpandPath(""))
	assert.NotContains(t, ExpandPath("~/keys/sa.json"), "~")
}
