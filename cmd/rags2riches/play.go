package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/lox/rags2riches/cmd/rags2riches/shared"
	"github.com/lox/rags2riches/internal/config"
	"github.com/lox/rags2riches/internal/game"
	"github.com/lox/rags2riches/internal/host"
	"github.com/lox/rags2riches/internal/ledger"
	"github.com/lox/rags2riches/internal/randutil"
	"github.com/lox/rags2riches/internal/store"
	"github.com/lox/rags2riches/internal/tui"
)

// PlayCmd runs the interactive table
type PlayCmd struct {
	Config  string   `kong:"default='rags2riches.hcl',help='Path to the HCL config file'"`
	Balance *float64 `kong:"help='Start with a fixed balance instead of reading it from the host site'"`
	Name    string   `kong:"help='Override the player name'"`
	Seed    *int64   `kong:"help='Deterministic RNG seed for the shuffle (optional)'"`
	Debug   bool     `kong:"help='Write debug logs to rags2riches.log'"`
}

func (c *PlayCmd) Run() error {
	// The TUI owns the terminal, so logs go to a file or nowhere.
	logger, closeLog, err := shared.SetupFileLogger("rags2riches.log", c.Debug)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	defer closeLog()

	_ = godotenv.Load()

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	seed := randutil.Seed(c.Seed)
	logger.Debug("Seeded RNG", "seed", seed)
	rng := randutil.New(seed)

	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open statistics store: %w", err)
	}
	defer db.Close()

	ctx := shared.SetupSignalHandler(logger)

	balances, identities := c.hostSources(cfg, logger)
	balance, identity := host.Snapshot(ctx, logger, balances, identities)
	if c.Name != "" {
		identity.Name = c.Name
	}
	logger.Info("Session starting", "player", identity.Name, "balance", balance)

	lgr, err := ledger.New(logger, db, db, identity.Name, cfg.Game.DealerName, balance)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}

	engine := game.NewEngine(logger, rng, lgr, game.Config{
		Rules: game.Rules{
			BlackjackPayout: cfg.Game.BlackjackPayout,
			DealerStandsOn:  cfg.Game.DealerStandsOn,
		},
		BetTimeout:      cfg.BetTimeout(),
		RecordAbandoned: cfg.Game.RecordAbandoned,
	})

	session := tui.NewSession(logger, engine, identity.Name, cfg.Game.DealerName)
	return session.Run(ctx)
}

// hostSources picks where the starting balance and identity come from.
// An explicit --balance wins, then the configured host site, then a
// zero-balance offline table.
func (c *PlayCmd) hostSources(cfg *config.Config, logger *log.Logger) (host.BalanceSource, host.IdentitySource) {
	if c.Balance != nil {
		src := host.StaticSource{Balance: *c.Balance}
		return src, src
	}
	if cfg.Host.Enabled {
		adapter := host.NewSiteAdapter(logger, cfg.Host.BaseURL)
		return adapter, adapter
	}
	return host.StaticSource{}, host.StaticSource{}
}
