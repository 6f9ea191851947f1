package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/rags2riches/cmd/rags2riches/shared"
	"github.com/lox/rags2riches/internal/game"
	"github.com/lox/rags2riches/internal/ledger"
	"github.com/lox/rags2riches/internal/randutil"
	"github.com/lox/rags2riches/internal/statistics"
)

var (
	simHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	simWinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	simLossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// SimulateCmd plays unattended rounds with a fixed strategy
type SimulateCmd struct {
	Rounds   int     `kong:"default='1000',help='Number of rounds to play'"`
	Bet      float64 `kong:"default='10',help='Bet wagered every round'"`
	Balance  float64 `kong:"default='1000',help='Starting balance'"`
	HitBelow int     `kong:"default='17',help='Hit while the hand value is under this'"`
	Seed     *int64  `kong:"help='Deterministic RNG seed (optional)'"`
	Debug    bool    `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	seed := randutil.Seed(c.Seed)
	logger.Debug("Seeded RNG", "seed", seed)

	// Simulations never touch the on-disk store or the transfer queue.
	lgr, err := ledger.New(logger, statistics.NewMemoryStore(), ledger.DiscardSink{}, "simulator", "house", c.Balance)
	if err != nil {
		return err
	}

	engine := game.NewEngine(logger, randutil.New(seed), lgr, game.Config{})
	agent := game.StrategyAgent{Bet: c.Bet, HitBelow: c.HitBelow}

	ctx := shared.SetupSignalHandler(logger)

	played := 0
	for i := 0; i < c.Rounds; i++ {
		result, err := engine.PlayRound(ctx, agent)
		if err != nil {
			return err
		}
		if result.Abandoned {
			logger.Info("Balance exhausted, stopping early", "rounds", played)
			break
		}
		played++
	}

	stats := engine.Stats()
	fmt.Println(simHeaderStyle.Render(fmt.Sprintf("Simulated %d rounds (seed %d)", played, seed)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "wins\t%s\n", simWinStyle.Render(fmt.Sprintf("%d", stats.Wins)))
	fmt.Fprintf(w, "losses\t%s\n", simLossStyle.Render(fmt.Sprintf("%d", stats.Losses)))
	fmt.Fprintf(w, "pushes\t%d\n", played-stats.Wins-stats.Losses)
	fmt.Fprintf(w, "earned\t%.2f\n", stats.TotalEarned)
	fmt.Fprintf(w, "lost\t%.2f\n", stats.TotalLost)
	fmt.Fprintf(w, "net\t%+.2f\n", stats.Net())
	fmt.Fprintf(w, "balance\t%.2f\n", engine.Balance())
	return w.Flush()
}
