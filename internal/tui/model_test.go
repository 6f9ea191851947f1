package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/rags2riches/internal/deck"
	"github.com/lox/rags2riches/internal/game"
	"github.com/lox/rags2riches/internal/statistics"
)

func keyPress(m *Model, keys string) {
	for _, r := range keys {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func pressEnter(m *Model) {
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestBetSubmitReachesAgent(t *testing.T) {
	m := NewModel("hero", "Mugiwara")
	m.applyEvent(game.RoundStartEvent{Balance: 100})
	require.Equal(t, phaseBetting, m.phase)

	keyPress(m, "25")
	pressEnter(m)

	bet, err := m.PlaceBet(context.Background(), game.BetPrompt{Balance: 100})
	require.NoError(t, err)
	assert.Equal(t, 25.0, bet)
}

func TestBetRejectsGarbageInput(t *testing.T) {
	m := NewModel("hero", "Mugiwara")
	m.applyEvent(game.RoundStartEvent{Balance: 100})

	keyPress(m, "lots")
	pressEnter(m)

	assert.NotEmpty(t, m.message)
	select {
	case bet := <-m.bets:
		t.Fatalf("unexpected bet %v from unparseable input", bet)
	default:
	}
}

func TestPlaceBetReturnsOnContextCancel(t *testing.T) {
	m := NewModel("hero", "Mugiwara")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() {
		_, err := m.PlaceBet(ctx, game.BetPrompt{})
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("PlaceBet did not unwind on cancellation")
	}
}

func TestHitAndStandKeysReachAgent(t *testing.T) {
	m := NewModel("hero", "Mugiwara")
	m.applyEvent(game.RoundStartEvent{Balance: 100})
	m.applyEvent(game.BetPlacedEvent{Bet: 10, Balance: 90})
	require.Equal(t, phasePlaying, m.phase)

	keyPress(m, "h")
	action, err := m.Decide(context.Background(), game.RoundView{})
	require.NoError(t, err)
	assert.Equal(t, game.ActionHit, action)

	keyPress(m, "s")
	action, err = m.Decide(context.Background(), game.RoundView{})
	require.NoError(t, err)
	assert.Equal(t, game.ActionStand, action)
}

func TestStaleDecisionDrainedAtRoundStart(t *testing.T) {
	m := NewModel("hero", "Mugiwara")
	m.applyEvent(game.RoundStartEvent{Balance: 100})
	m.applyEvent(game.BetPlacedEvent{Bet: 10, Balance: 90})
	keyPress(m, "h") // never consumed

	m.applyEvent(game.RoundStartEvent{Balance: 90})

	select {
	case action := <-m.decisions:
		t.Fatalf("stale %v survived the round boundary", action)
	default:
	}
}

func TestNextRoundKey(t *testing.T) {
	m := NewModel("hero", "Mugiwara")
	m.applyEvent(game.RoundResolvedEvent{Outcome: game.OutcomePush})
	require.Equal(t, phaseResolved, m.phase)

	keyPress(m, "n")
	require.NoError(t, m.AwaitNextRound(context.Background()))
}

func TestDealerHoleCardHiddenUntilReveal(t *testing.T) {
	m := NewModel("hero", "Mugiwara")
	m.applyEvent(game.RoundStartEvent{Balance: 100})
	m.applyEvent(game.BetPlacedEvent{Bet: 10, Balance: 90})

	up := deck.NewCard(deck.Hearts, deck.Nine)
	hole := deck.NewCard(deck.Spades, deck.King)
	m.applyEvent(game.CardDealtEvent{Seat: game.SeatDealer, Card: up, HandValue: 9})
	m.applyEvent(game.CardDealtEvent{Seat: game.SeatDealer, Card: hole, Hidden: true, HandValue: 9})

	view := m.View()
	assert.Contains(t, view, "[??]")
	assert.NotContains(t, view, hole.String())
	assert.Contains(t, view, "(9)")

	m.applyEvent(game.DealerRevealEvent{Hand: game.Hand{up, hole}, HandValue: 19})
	view = m.View()
	assert.NotContains(t, view, "[??]")
	assert.Contains(t, view, hole.String())
	assert.Contains(t, view, "(19)")
}

func TestResolvedViewShowsOutcomeAndStats(t *testing.T) {
	m := NewModel("hero", "Mugiwara")
	m.applyEvent(game.RoundResolvedEvent{
		Outcome:     game.OutcomePlayerBlackjack,
		Bet:         10,
		Delta:       15,
		Balance:     115,
		PlayerHand:  game.Hand{deck.NewCard(deck.Spades, deck.Ace), deck.NewCard(deck.Hearts, deck.King)},
		PlayerValue: 21,
		DealerHand:  game.Hand{deck.NewCard(deck.Clubs, deck.Nine), deck.NewCard(deck.Diamonds, deck.Seven)},
		DealerValue: 16,
		Stats:       statistics.SessionStats{Wins: 3, Losses: 1, TotalEarned: 45, TotalLost: 10},
	})

	view := m.View()
	assert.Contains(t, view, "Blackjack! You win 15.00 cr.")
	assert.Contains(t, view, "Balance: 115.00 cr.")
	assert.Contains(t, view, "W/L: 3/1")
	assert.Contains(t, view, "Net: +35.00")
}
