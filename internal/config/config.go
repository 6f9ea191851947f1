// Package config loads game configuration from an HCL file. A missing
// file is not an error, the defaults describe a playable game on their
// own.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete game configuration. Blocks are
// pointers so a config file may omit any of them.
type Config struct {
	Game  *GameSettings  `hcl:"game,block"`
	Store *StoreSettings `hcl:"store,block"`
	Host  *HostSettings  `hcl:"host,block"`
}

// GameSettings contains the table rules and round pacing.
type GameSettings struct {
	BlackjackPayout   float64 `hcl:"blackjack_payout,optional"`
	DealerStandsOn    int     `hcl:"dealer_stands_on,optional"`
	BetTimeoutSeconds int     `hcl:"bet_timeout_seconds,optional"`
	DealerName        string  `hcl:"dealer_name,optional"`
	RecordAbandoned   bool    `hcl:"record_abandoned,optional"`
}

// StoreSettings locates the statistics database.
type StoreSettings struct {
	Path string `hcl:"path,optional"`
}

// HostSettings configures the credit-hosting site integration.
type HostSettings struct {
	BaseURL string `hcl:"base_url,optional"`
	Enabled bool   `hcl:"enabled,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: &GameSettings{
			BlackjackPayout:   1.5,
			DealerStandsOn:    17,
			BetTimeoutSeconds: 10,
			DealerName:        "Mugiwara",
		},
		Store: &StoreSettings{
			Path: defaultStorePath(),
		},
		Host: &HostSettings{
			BaseURL: "https://www.funfile.org",
			Enabled: false,
		},
	}
}

// Load loads configuration from an HCL file, falling back to Default
// when the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing blocks and values
	if config.Game == nil {
		config.Game = &GameSettings{}
	}
	if config.Game.BlackjackPayout == 0 {
		config.Game.BlackjackPayout = 1.5
	}
	if config.Game.DealerStandsOn == 0 {
		config.Game.DealerStandsOn = 17
	}
	if config.Game.BetTimeoutSeconds == 0 {
		config.Game.BetTimeoutSeconds = 10
	}
	if config.Game.DealerName == "" {
		config.Game.DealerName = "Mugiwara"
	}
	if config.Store == nil {
		config.Store = &StoreSettings{}
	}
	if config.Store.Path == "" {
		config.Store.Path = defaultStorePath()
	}
	if config.Host == nil {
		config.Host = &HostSettings{}
	}
	if config.Host.BaseURL == "" {
		config.Host.BaseURL = "https://www.funfile.org"
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.BlackjackPayout <= 0 {
		return fmt.Errorf("blackjack payout must be positive, got %g", c.Game.BlackjackPayout)
	}
	if c.Game.DealerStandsOn < 2 || c.Game.DealerStandsOn > 21 {
		return fmt.Errorf("dealer stand threshold must be between 2 and 21, got %d", c.Game.DealerStandsOn)
	}
	if c.Game.BetTimeoutSeconds <= 0 {
		return fmt.Errorf("bet timeout must be positive, got %d", c.Game.BetTimeoutSeconds)
	}
	if c.Game.DealerName == "" {
		return fmt.Errorf("dealer name must not be empty")
	}
	if c.Host.Enabled && c.Host.BaseURL == "" {
		return fmt.Errorf("host base url required when host integration is enabled")
	}
	return nil
}

// BetTimeout returns the bet prompt timeout as a duration.
func (c *Config) BetTimeout() time.Duration {
	return time.Duration(c.Game.BetTimeoutSeconds) * time.Second
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "rags2riches.db"
	}
	return filepath.Join(dir, "rags2riches", "rags2riches.db")
}
