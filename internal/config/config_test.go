package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rags2riches.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
game {
  blackjack_payout    = 2.0
  dealer_stands_on    = 16
  bet_timeout_seconds = 30
  dealer_name         = "Zoro"
  record_abandoned    = true
}

store {
  path = "/tmp/bj.db"
}

host {
  base_url = "https://host.example"
  enabled  = true
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Game.BlackjackPayout)
	assert.Equal(t, 16, cfg.Game.DealerStandsOn)
	assert.Equal(t, 30*time.Second, cfg.BetTimeout())
	assert.Equal(t, "Zoro", cfg.Game.DealerName)
	assert.True(t, cfg.Game.RecordAbandoned)
	assert.Equal(t, "/tmp/bj.db", cfg.Store.Path)
	assert.Equal(t, "https://host.example", cfg.Host.BaseURL)
	assert.True(t, cfg.Host.Enabled)
}

func TestLoadPartialConfigFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
game {
  dealer_stands_on = 18
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 18, cfg.Game.DealerStandsOn)
	assert.Equal(t, 1.5, cfg.Game.BlackjackPayout)
	assert.Equal(t, 10*time.Second, cfg.BetTimeout())
	assert.Equal(t, "Mugiwara", cfg.Game.DealerName)
	assert.NotEmpty(t, cfg.Store.Path)
	assert.Equal(t, "https://www.funfile.org", cfg.Host.BaseURL)
}

func TestLoadInvalidHCL(t *testing.T) {
	path := writeConfig(t, `game { blackjack_payout = `)

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"negative payout", func(c *Config) { c.Game.BlackjackPayout = -1 }, "payout must be positive"},
		{"stand threshold too high", func(c *Config) { c.Game.DealerStandsOn = 22 }, "between 2 and 21"},
		{"zero timeout", func(c *Config) { c.Game.BetTimeoutSeconds = 0 }, "timeout must be positive"},
		{"empty dealer name", func(c *Config) { c.Game.DealerName = "" }, "dealer name"},
		{"host enabled without url", func(c *Config) { c.Host.Enabled = true; c.Host.BaseURL = "" }, "base url required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
