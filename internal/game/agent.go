package game

import (
	"context"
	"time"

	"github.com/lox/rags2riches/internal/deck"
)

// Action is a player decision during their turn. Split, double and
// insurance are not offered at this table.
type Action int

const (
	ActionHit Action = iota
	ActionStand
)

// String returns the string representation of an action
func (a Action) String() string {
	if a == ActionStand {
		return "stand"
	}
	return "hit"
}

// BetPrompt is what an agent sees when asked for a bet.
type BetPrompt struct {
	Balance float64
	Timeout time.Duration
}

// RoundView is the plain-data snapshot handed to agents for a
// decision. It exposes no engine internals and no hidden dealer card.
type RoundView struct {
	Bet         float64
	Balance     float64
	PlayerHand  Hand
	PlayerValue int
	DealerUp    deck.Card
	DealerValue int // value of the dealer's visible card only
}

// Agent supplies the player's decisions. Implementations block until a
// decision is available and must return promptly when the context is
// cancelled; the engine owns the bet-entry timeout.
type Agent interface {
	PlaceBet(ctx context.Context, prompt BetPrompt) (float64, error)
	Decide(ctx context.Context, view RoundView) (Action, error)
}

// StrategyAgent plays unattended rounds with a fixed bet and a simple
// hit-below-threshold policy, for simulations and soak runs.
type StrategyAgent struct {
	// Bet is wagered every round.
	Bet float64
	// HitBelow draws while the player's value is under it. 17 mimics
	// the dealer.
	HitBelow int
}

// PlaceBet returns the fixed bet, capped at the available balance.
func (a StrategyAgent) PlaceBet(ctx context.Context, prompt BetPrompt) (float64, error) {
	bet := a.Bet
	if bet > prompt.Balance {
		bet = prompt.Balance
	}
	return bet, nil
}

// Decide hits while the hand value is below the configured threshold.
func (a StrategyAgent) Decide(ctx context.Context, view RoundView) (Action, error) {
	if view.PlayerValue < a.HitBelow {
		return ActionHit, nil
	}
	return ActionStand, nil
}
