package game

import (
	"strings"

	"github.com/lox/rags2riches/internal/deck"
)

// Hand is an ordered sequence of cards held by the player or dealer.
// It starts empty at round start and is appended to by draws.
type Hand []deck.Card

// Value computes the best blackjack total for the hand. Aces count 11
// first and are re-counted as 1, one at a time, while the total is
// over 21. The result is the highest total not exceeding 21 when one
// is achievable, otherwise the lowest (hard bust) total. An empty hand
// evaluates to 0.
func (h Hand) Value() int {
	value := 0
	aces := 0

	for _, c := range h {
		value += c.BlackjackValue()
		if c.IsAce() {
			aces++
		}
	}

	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return value
}

// IsSoft reports whether the hand currently counts an ace as 11.
func (h Hand) IsSoft() bool {
	value := 0
	aces := 0
	for _, c := range h {
		value += c.BlackjackValue()
		if c.IsAce() {
			aces++
		}
	}
	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return aces > 0
}

// IsBust reports whether the hand's value exceeds 21.
func (h Hand) IsBust() bool {
	return h.Value() > 21
}

// IsBlackjack reports a two-card 21.
func (h Hand) IsBlackjack() bool {
	return len(h) == 2 && h.Value() == 21
}

// String returns the hand as space-separated cards (e.g. "A♠ K♥").
func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
