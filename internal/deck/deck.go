package deck

import (
	rand "math/rand/v2"
)

// Deck is the working shoe: an ordered sequence of cards drawn from
// the top. A fresh deck holds exactly one card per (rank, suit) pair.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a freshly shuffled 52-card deck. The RNG is required so
// callers control determinism; pass a fixed-seed source in tests.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.fill()
	d.Shuffle()
	return d
}

// NewStacked creates a deck that deals the given cards in order, for
// deterministic tests. Once the stacked cards run out, Draw falls back
// to regenerating a full shuffled deck.
func NewStacked(rng *rand.Rand, cards ...Card) *Deck {
	d := &Deck{
		cards: make([]Card, 0, len(cards)),
		rng:   rng,
	}
	// Draw takes from the end, so reverse the order given.
	for i := len(cards) - 1; i >= 0; i-- {
		d.cards = append(d.cards, cards[i])
	}
	return d
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
}

// Shuffle randomizes the order of cards in the deck using Fisher-Yates.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card. An exhausted deck is
// transparently replaced with a fresh shuffled 52 cards before the
// draw, so Draw never fails; any card-counting state resets when that
// happens.
func (d *Deck) Draw() Card {
	if len(d.cards) == 0 {
		d.fill()
		d.Shuffle()
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}
