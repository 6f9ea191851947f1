package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lox/rags2riches/internal/config"
	"github.com/lox/rags2riches/internal/store"
)

// StatsCmd prints the persisted session counters
type StatsCmd struct {
	Config string `kong:"default='rags2riches.hcl',help='Path to the HCL config file'"`
}

func (c *StatsCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open statistics store: %w", err)
	}
	defer db.Close()

	stats, err := db.Load()
	if err != nil {
		return fmt.Errorf("load statistics: %w", err)
	}

	fmt.Println(simHeaderStyle.Render("Session statistics"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "rounds\t%d\n", stats.Rounds())
	fmt.Fprintf(w, "wins\t%s\n", simWinStyle.Render(fmt.Sprintf("%d", stats.Wins)))
	fmt.Fprintf(w, "losses\t%s\n", simLossStyle.Render(fmt.Sprintf("%d", stats.Losses)))
	fmt.Fprintf(w, "earned\t%.2f\n", stats.TotalEarned)
	fmt.Fprintf(w, "lost\t%.2f\n", stats.TotalLost)
	fmt.Fprintf(w, "net\t%+.2f\n", stats.Net())
	if stats.Abandoned > 0 {
		fmt.Fprintf(w, "abandoned\t%d\n", stats.Abandoned)
	}
	return w.Flush()
}
