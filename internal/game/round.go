package game

import (
	"math"

	"github.com/lox/rags2riches/internal/deck"
)

// RoundState identifies where a round is in its lifecycle.
type RoundState int

const (
	AwaitingBet RoundState = iota
	PlayerTurn
	DealerTurn
	Resolved
)

// String returns the string representation of a round state
func (s RoundState) String() string {
	switch s {
	case AwaitingBet:
		return "awaiting-bet"
	case PlayerTurn:
		return "player-turn"
	case DealerTurn:
		return "dealer-turn"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of a resolved round.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomePlayerBlackjack
	OutcomePlayerBust
	OutcomeDealerBust
	OutcomePlayerWin
	OutcomeDealerWin
	OutcomePush
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case OutcomePlayerBlackjack:
		return "blackjack"
	case OutcomePlayerBust:
		return "player-bust"
	case OutcomeDealerBust:
		return "dealer-bust"
	case OutcomePlayerWin:
		return "player-win"
	case OutcomeDealerWin:
		return "dealer-win"
	case OutcomePush:
		return "push"
	default:
		return "none"
	}
}

// PlayerWon reports whether the outcome pays the player.
func (o Outcome) PlayerWon() bool {
	return o == OutcomePlayerBlackjack || o == OutcomeDealerBust || o == OutcomePlayerWin
}

// PlayerLost reports whether the outcome costs the player their bet.
func (o Outcome) PlayerLost() bool {
	return o == OutcomePlayerBust || o == OutcomeDealerWin
}

// Rules carries the table rules a round plays under.
type Rules struct {
	// BlackjackPayout is the multiplier applied to the bet on a natural
	// 21. The house pays 3:2.
	BlackjackPayout float64
	// DealerStandsOn is the value the dealer stops drawing at. The
	// dealer draws while strictly below it, soft or hard.
	DealerStandsOn int
}

// DefaultRules returns the standard table rules
func DefaultRules() Rules {
	return Rules{
		BlackjackPayout: 1.5,
		DealerStandsOn:  17,
	}
}

// Round drives a single blackjack hand from bet placement to
// resolution. The bet is fixed once placed and never mutated until the
// round ends; a new round starts with a fresh deck and empty hands.
type Round struct {
	rules   Rules
	deck    *deck.Deck
	state   RoundState
	bet     float64
	player  Hand
	dealer  Hand
	outcome Outcome
}

// NewRound starts a round at AwaitingBet with empty hands.
func NewRound(d *deck.Deck, rules Rules) *Round {
	return &Round{
		rules: rules,
		deck:  d,
		state: AwaitingBet,
	}
}

// State returns the round's current state
func (r *Round) State() RoundState {
	return r.state
}

// Bet returns the bet fixed for this round, 0 before placement.
func (r *Round) Bet() float64 {
	return r.bet
}

// Player returns a copy of the player's hand
func (r *Round) Player() Hand {
	return append(Hand(nil), r.player...)
}

// Dealer returns a copy of the dealer's hand
func (r *Round) Dealer() Hand {
	return append(Hand(nil), r.dealer...)
}

// DealerUp returns the dealer's visible card. Only valid once the
// opening hands are dealt.
func (r *Round) DealerUp() deck.Card {
	return r.dealer[0]
}

// Outcome returns the outcome and whether the round has resolved.
func (r *Round) Outcome() (Outcome, bool) {
	return r.outcome, r.state == Resolved
}

// IsResolved reports whether the round has reached its terminal state.
func (r *Round) IsResolved() bool {
	return r.state == Resolved
}

// PlaceBet validates and fixes the bet for the round, then deals the
// opening hands in interleaved order: player, dealer, player, dealer.
// A player 21 off the deal resolves immediately as a blackjack win.
// Validation failures leave the round at AwaitingBet so the caller can
// retry.
func (r *Round) PlaceBet(bet, available float64) error {
	if r.state != AwaitingBet {
		return ErrWrongState
	}
	if bet <= 0 || math.IsNaN(bet) || math.IsInf(bet, 0) {
		return ErrInvalidBet
	}
	if bet > available {
		return ErrInsufficientBalance
	}

	r.bet = bet
	r.player = append(r.player, r.deck.Draw())
	r.dealer = append(r.dealer, r.deck.Draw())
	r.player = append(r.player, r.deck.Draw())
	r.dealer = append(r.dealer, r.deck.Draw())
	r.state = PlayerTurn

	if r.player.Value() == 21 {
		r.resolve(OutcomePlayerBlackjack)
	}
	return nil
}

// Hit deals one card to the player. Busting resolves the round on the
// spot; the dealer never plays.
func (r *Round) Hit() (deck.Card, error) {
	if r.state == Resolved {
		return deck.Card{}, ErrRoundOver
	}
	if r.state != PlayerTurn {
		return deck.Card{}, ErrWrongState
	}

	card := r.deck.Draw()
	r.player = append(r.player, card)
	if r.player.IsBust() {
		r.resolve(OutcomePlayerBust)
	}
	return card, nil
}

// Stand ends the player's turn and runs the dealer's fixed policy:
// draw while strictly below the stand threshold, then compare scores.
// The cards the dealer drew are returned for display.
func (r *Round) Stand() ([]deck.Card, error) {
	if r.state == Resolved {
		return nil, ErrRoundOver
	}
	if r.state != PlayerTurn {
		return nil, ErrWrongState
	}

	r.state = DealerTurn
	var drawn []deck.Card
	for r.dealer.Value() < r.rules.DealerStandsOn {
		card := r.deck.Draw()
		r.dealer = append(r.dealer, card)
		drawn = append(drawn, card)
	}

	playerScore, dealerScore := r.player.Value(), r.dealer.Value()
	switch {
	case dealerScore > 21:
		r.resolve(OutcomeDealerBust)
	case playerScore > dealerScore:
		r.resolve(OutcomePlayerWin)
	case dealerScore > playerScore:
		r.resolve(OutcomeDealerWin)
	default:
		r.resolve(OutcomePush)
	}
	return drawn, nil
}

// Payout returns the net credit delta for the resolved outcome:
// +1.5x the bet for a blackjack, +1x for a win, -1x for a loss, 0 for
// a push. Zero until the round resolves.
func (r *Round) Payout() float64 {
	switch r.outcome {
	case OutcomePlayerBlackjack:
		return r.bet * r.rules.BlackjackPayout
	case OutcomeDealerBust, OutcomePlayerWin:
		return r.bet
	case OutcomePlayerBust, OutcomeDealerWin:
		return -r.bet
	default:
		return 0
	}
}

func (r *Round) resolve(o Outcome) {
	r.outcome = o
	r.state = Resolved
}
