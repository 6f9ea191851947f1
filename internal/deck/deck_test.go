package deck

import (
	"testing"

	"github.com/lox/rags2riches/internal/randutil"
)

func TestNewDeckComplete(t *testing.T) {
	d := New(randutil.New(1))

	if d.Remaining() != 52 {
		t.Fatalf("expected 52 cards, got %d", d.Remaining())
	}

	seen := make(map[Card]int)
	suits := make(map[Suit]int)
	ranks := make(map[Rank]int)
	for !d.IsEmpty() {
		c := d.Draw()
		seen[c]++
		suits[c.Suit]++
		ranks[c.Rank]++
	}

	if len(seen) != 52 {
		t.Errorf("expected 52 unique cards, got %d", len(seen))
	}
	for card, n := range seen {
		if n != 1 {
			t.Errorf("card %s appeared %d times", card, n)
		}
	}
	for suit, n := range suits {
		if n != 13 {
			t.Errorf("suit %s has %d cards, want 13", suit, n)
		}
	}
	for rank, n := range ranks {
		if n != 4 {
			t.Errorf("rank %s has %d cards, want 4", rank, n)
		}
	}
}

func TestDrawReducesDeck(t *testing.T) {
	d := New(randutil.New(2))

	for i := 52; i > 0; i-- {
		if d.Remaining() != i {
			t.Fatalf("expected %d cards before draw, got %d", i, d.Remaining())
		}
		d.Draw()
	}
	if !d.IsEmpty() {
		t.Errorf("deck should be empty after 52 draws, has %d", d.Remaining())
	}
}

func TestDrawRegeneratesWhenExhausted(t *testing.T) {
	d := New(randutil.New(3))

	for i := 0; i < 52; i++ {
		d.Draw()
	}

	// The 53rd draw must transparently rebuild the shoe, not fail.
	card := d.Draw()
	if card == (Card{}) {
		t.Error("draw from exhausted deck returned zero card")
	}
	if d.Remaining() != 51 {
		t.Errorf("expected 51 cards after regeneration draw, got %d", d.Remaining())
	}
}

func TestShuffleDeterministicWithSeed(t *testing.T) {
	a := New(randutil.New(42))
	b := New(randutil.New(42))

	for i := 0; i < 52; i++ {
		ca, cb := a.Draw(), b.Draw()
		if ca != cb {
			t.Fatalf("draw %d differs for identical seeds: %s vs %s", i, ca, cb)
		}
	}
}

func TestNewStackedDealsInOrder(t *testing.T) {
	cards := MustParseCards("AsKh5d")
	d := NewStacked(randutil.New(4), cards...)

	for i, want := range cards {
		got := d.Draw()
		if got != want {
			t.Errorf("draw %d = %s, want %s", i, got, want)
		}
	}

	// Stacked cards exhausted; the next draw regenerates a full deck.
	d.Draw()
	if d.Remaining() != 51 {
		t.Errorf("expected 51 cards after regeneration, got %d", d.Remaining())
	}
}
