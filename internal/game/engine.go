package game

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/rags2riches/internal/deck"
	"github.com/lox/rags2riches/internal/ledger"
	"github.com/lox/rags2riches/internal/statistics"
)

// DefaultBetTimeout bounds the bet prompt when the config does not.
const DefaultBetTimeout = 10 * time.Second

// Config carries the engine's tunables.
type Config struct {
	Rules Rules
	// BetTimeout bounds the bet prompt. On expiry the bet defaults to
	// zero and the round is abandoned.
	BetTimeout time.Duration
	// RecordAbandoned tallies abandoned rounds in the session counters
	// instead of treating them as pure no-ops.
	RecordAbandoned bool
}

// RoundResult summarizes a finished round.
type RoundResult struct {
	// Abandoned is set when no valid bet was placed: the prompt timed
	// out or the bet failed validation. Nothing else changed.
	Abandoned bool
	Outcome   Outcome
	Bet       float64
	Delta     float64
	Balance   float64
	Stats     statistics.SessionStats
	Transfer  *ledger.PendingTransfer
}

// Engine drives complete rounds: bet entry with a timeout, the player
// and dealer turns, and settlement against the ledger. One round is in
// flight at a time and every transition runs sequentially.
type Engine struct {
	logger  *log.Logger
	rng     *rand.Rand
	clock   quartz.Clock
	ledger  *ledger.Ledger
	bus     *EventBus
	cfg     Config
	newDeck func() *deck.Deck
}

// EngineOption configures an Engine during creation.
type EngineOption func(*Engine)

// WithClock substitutes the clock used for the bet-entry timeout.
// Tests pass quartz.NewMock to control time explicitly.
func WithClock(clock quartz.Clock) EngineOption {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithDeckFactory substitutes how each round's deck is built. Tests
// pass stacked decks for exact card sequences.
func WithDeckFactory(f func() *deck.Deck) EngineOption {
	return func(e *Engine) {
		e.newDeck = f
	}
}

// NewEngine creates an engine over the given ledger. The RNG shuffles
// each round's fresh deck.
func NewEngine(logger *log.Logger, rng *rand.Rand, lgr *ledger.Ledger, cfg Config, opts ...EngineOption) *Engine {
	if cfg.Rules.BlackjackPayout <= 0 {
		cfg.Rules.BlackjackPayout = DefaultRules().BlackjackPayout
	}
	if cfg.Rules.DealerStandsOn <= 0 {
		cfg.Rules.DealerStandsOn = DefaultRules().DealerStandsOn
	}
	if cfg.BetTimeout <= 0 {
		cfg.BetTimeout = DefaultBetTimeout
	}

	e := &Engine{
		logger: logger.WithPrefix("engine"),
		rng:    rng,
		clock:  quartz.NewReal(),
		ledger: lgr,
		bus:    NewEventBus(),
		cfg:    cfg,
	}
	e.newDeck = func() *deck.Deck {
		return deck.New(e.rng)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EventBus returns the bus presentation layers subscribe to.
func (e *Engine) EventBus() *EventBus {
	return e.bus
}

// Balance returns the ledger's current working balance.
func (e *Engine) Balance() float64 {
	return e.ledger.Balance()
}

// Stats returns the current session counters.
func (e *Engine) Stats() statistics.SessionStats {
	return e.ledger.Stats()
}

// PlayRound runs one complete round against the agent. A bet that
// fails validation or times out abandons the round with no balance or
// counter movement beyond the optional abandonment tally; the error
// return is reserved for context cancellation and agent failures.
func (e *Engine) PlayRound(ctx context.Context, agent Agent) (*RoundResult, error) {
	round := NewRound(e.newDeck(), e.cfg.Rules)
	e.bus.Publish(RoundStartEvent{Balance: e.ledger.Balance(), timestamp: time.Now()})

	bet, err := e.awaitBet(ctx, agent)
	if err != nil {
		if errors.Is(err, ErrBetTimeout) {
			e.logger.Warn("Bet prompt timed out, abandoning round", "timeout", e.cfg.BetTimeout)
			e.bus.Publish(BetTimeoutEvent{Timeout: e.cfg.BetTimeout, timestamp: time.Now()})
			return e.abandonRound(), nil
		}
		return nil, err
	}

	if err := round.PlaceBet(bet, e.ledger.Balance()); err != nil {
		if errors.Is(err, ErrInvalidBet) || errors.Is(err, ErrInsufficientBalance) {
			e.logger.Debug("Bet rejected", "bet", bet, "error", err)
			e.bus.Publish(BetRejectedEvent{Bet: bet, Err: err, timestamp: time.Now()})
			return e.abandonRound(), nil
		}
		return nil, fmt.Errorf("place bet: %w", err)
	}

	e.ledger.PlaceBet(bet)
	e.logger.Debug("Bet placed", "bet", bet, "balance", e.ledger.Balance())
	e.bus.Publish(BetPlacedEvent{Bet: bet, Balance: e.ledger.Balance(), timestamp: time.Now()})
	e.publishOpeningDeal(round)

	for !round.IsResolved() {
		action, err := agent.Decide(ctx, e.viewFor(round))
		if err != nil {
			return nil, fmt.Errorf("awaiting decision: %w", err)
		}

		switch action {
		case ActionHit:
			card, err := round.Hit()
			if err != nil {
				return nil, err
			}
			e.bus.Publish(CardDealtEvent{
				Seat:      SeatPlayer,
				Card:      card,
				HandValue: round.Player().Value(),
				timestamp: time.Now(),
			})
		case ActionStand:
			drawn, err := round.Stand()
			if err != nil {
				return nil, err
			}
			dealer := round.Dealer()
			hole := dealer[:len(dealer)-len(drawn)]
			e.bus.Publish(DealerRevealEvent{
				Hand:      hole,
				HandValue: hole.Value(),
				timestamp: time.Now(),
			})
			for i, card := range drawn {
				visible := dealer[:len(hole)+i+1]
				e.bus.Publish(CardDealtEvent{
					Seat:      SeatDealer,
					Card:      card,
					HandValue: visible.Value(),
					timestamp: time.Now(),
				})
			}
		default:
			return nil, fmt.Errorf("agent returned unknown action %d", action)
		}
	}

	outcome, _ := round.Outcome()
	delta := round.Payout()
	stats, transfer := e.ledger.Resolve(round.Bet(), delta)
	e.logger.Info("Round resolved",
		"outcome", outcome,
		"bet", round.Bet(),
		"delta", delta,
		"balance", e.ledger.Balance())

	e.bus.Publish(RoundResolvedEvent{
		Outcome:     outcome,
		Bet:         round.Bet(),
		Delta:       delta,
		Balance:     e.ledger.Balance(),
		PlayerHand:  round.Player(),
		PlayerValue: round.Player().Value(),
		DealerHand:  round.Dealer(),
		DealerValue: round.Dealer().Value(),
		Stats:       stats,
		timestamp:   time.Now(),
	})

	return &RoundResult{
		Outcome:  outcome,
		Bet:      round.Bet(),
		Delta:    delta,
		Balance:  e.ledger.Balance(),
		Stats:    stats,
		Transfer: transfer,
	}, nil
}

// awaitBet asks the agent for a bet, bounded by the configured
// timeout. The agent's context is cancelled when the timer fires so a
// blocked prompt unwinds instead of leaking into the next round.
func (e *Engine) awaitBet(ctx context.Context, agent Agent) (float64, error) {
	betCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	timer := e.clock.AfterFunc(e.cfg.BetTimeout, cancel)
	defer timer.Stop()

	bet, err := agent.PlaceBet(betCtx, BetPrompt{
		Balance: e.ledger.Balance(),
		Timeout: e.cfg.BetTimeout,
	})
	if err != nil {
		if betCtx.Err() != nil && ctx.Err() == nil {
			return 0, ErrBetTimeout
		}
		return 0, fmt.Errorf("awaiting bet: %w", err)
	}
	return bet, nil
}

func (e *Engine) abandonRound() *RoundResult {
	stats := e.ledger.Stats()
	if e.cfg.RecordAbandoned {
		stats = e.ledger.RecordAbandoned()
	}
	return &RoundResult{
		Abandoned: true,
		Balance:   e.ledger.Balance(),
		Stats:     stats,
	}
}

// publishOpeningDeal announces the four opening cards. The dealer's
// second card stays hidden until the dealer's turn, so dealer hand
// values cover the up card only.
func (e *Engine) publishOpeningDeal(round *Round) {
	player, dealer := round.Player(), round.Dealer()
	upValue := Hand{dealer[0]}.Value()

	deals := []CardDealtEvent{
		{Seat: SeatPlayer, Card: player[0], HandValue: Hand{player[0]}.Value()},
		{Seat: SeatDealer, Card: dealer[0], HandValue: upValue},
		{Seat: SeatPlayer, Card: player[1], HandValue: player.Value()},
		{Seat: SeatDealer, Card: dealer[1], Hidden: true, HandValue: upValue},
	}
	for _, ev := range deals {
		ev.timestamp = time.Now()
		e.bus.Publish(ev)
	}
}

func (e *Engine) viewFor(round *Round) RoundView {
	player := round.Player()
	up := round.DealerUp()
	return RoundView{
		Bet:         round.Bet(),
		Balance:     e.ledger.Balance(),
		PlayerHand:  player,
		PlayerValue: player.Value(),
		DealerUp:    up,
		DealerValue: Hand{up}.Value(),
	}
}
