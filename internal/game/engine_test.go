package game

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/rags2riches/internal/deck"
	"github.com/lox/rags2riches/internal/ledger"
	"github.com/lox/rags2riches/internal/randutil"
	"github.com/lox/rags2riches/internal/statistics"
)

type collectSink struct {
	transfers []ledger.PendingTransfer
}

func (s *collectSink) EmitPendingTransfer(t ledger.PendingTransfer) error {
	s.transfers = append(s.transfers, t)
	return nil
}

// scriptedAgent bets a fixed amount then plays the scripted actions.
type scriptedAgent struct {
	bet     float64
	actions []Action
	next    int
}

func (a *scriptedAgent) PlaceBet(ctx context.Context, prompt BetPrompt) (float64, error) {
	return a.bet, nil
}

func (a *scriptedAgent) Decide(ctx context.Context, view RoundView) (Action, error) {
	if a.next >= len(a.actions) {
		return ActionStand, nil
	}
	action := a.actions[a.next]
	a.next++
	return action, nil
}

// blockedAgent never produces a bet; it unblocks only on cancellation.
type blockedAgent struct {
	started chan struct{}
}

func (a *blockedAgent) PlaceBet(ctx context.Context, prompt BetPrompt) (float64, error) {
	close(a.started)
	<-ctx.Done()
	return 0, ctx.Err()
}

func (a *blockedAgent) Decide(ctx context.Context, view RoundView) (Action, error) {
	return ActionStand, nil
}

func newTestEngine(t *testing.T, balance float64, cards string, opts ...EngineOption) (*Engine, *collectSink, statistics.Store) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	store := statistics.NewMemoryStore()
	sink := &collectSink{}
	lgr, err := ledger.New(logger, store, sink, "alice", "Mugiwara", balance)
	require.NoError(t, err)

	if cards != "" {
		stacked := deck.MustParseCards(cards)
		opts = append(opts, WithDeckFactory(func() *deck.Deck {
			return deck.NewStacked(randutil.New(0), stacked...)
		}))
	}
	engine := NewEngine(logger, randutil.New(1), lgr, Config{}, opts...)
	return engine, sink, store
}

func TestPlayRoundBlackjack(t *testing.T) {
	engine, sink, _ := newTestEngine(t, 100, "As2hKd3c")
	agent := &scriptedAgent{bet: 10}

	result, err := engine.PlayRound(context.Background(), agent)
	require.NoError(t, err)

	assert.False(t, result.Abandoned)
	assert.Equal(t, OutcomePlayerBlackjack, result.Outcome)
	assert.Equal(t, 15.0, result.Delta)
	assert.Equal(t, 115.0, result.Balance)
	assert.Equal(t, 1, result.Stats.Wins)
	assert.Equal(t, 15.0, result.Stats.TotalEarned)
	require.NotNil(t, result.Transfer)
	assert.Equal(t, "alice", result.Transfer.Recipient)
	require.Len(t, sink.transfers, 1)
}

func TestPlayRoundPlayerBust(t *testing.T) {
	// Player K+9 hits into a K and busts; the dealer never plays.
	engine, _, store := newTestEngine(t, 100, "Kh5s9h6sKd")
	agent := &scriptedAgent{bet: 10, actions: []Action{ActionHit}}

	result, err := engine.PlayRound(context.Background(), agent)
	require.NoError(t, err)

	assert.Equal(t, OutcomePlayerBust, result.Outcome)
	assert.Equal(t, -10.0, result.Delta)
	assert.Equal(t, 90.0, result.Balance)
	assert.Equal(t, 1, result.Stats.Losses)
	assert.Equal(t, 10.0, result.Stats.TotalLost)

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, result.Stats, saved)
}

func TestPlayRoundPush(t *testing.T) {
	engine, sink, _ := newTestEngine(t, 100, "ThTsQhKs")
	agent := &scriptedAgent{bet: 10, actions: []Action{ActionStand}}

	result, err := engine.PlayRound(context.Background(), agent)
	require.NoError(t, err)

	assert.Equal(t, OutcomePush, result.Outcome)
	assert.Equal(t, 0.0, result.Delta)
	assert.Equal(t, 100.0, result.Balance, "push must hand back the deducted stake")
	assert.Equal(t, statistics.SessionStats{}, result.Stats)
	assert.Nil(t, result.Transfer)
	assert.Empty(t, sink.transfers)
}

func TestPlayRoundInsufficientBalanceAbandons(t *testing.T) {
	engine, sink, _ := newTestEngine(t, 5, "As2hKd3c")
	agent := &scriptedAgent{bet: 10}

	result, err := engine.PlayRound(context.Background(), agent)
	require.NoError(t, err)

	assert.True(t, result.Abandoned)
	assert.Equal(t, 5.0, result.Balance)
	assert.Equal(t, statistics.SessionStats{}, result.Stats)
	assert.Empty(t, sink.transfers)
}

func TestPlayRoundInvalidBetAbandons(t *testing.T) {
	engine, _, _ := newTestEngine(t, 100, "As2hKd3c")
	agent := &scriptedAgent{bet: -1}

	result, err := engine.PlayRound(context.Background(), agent)
	require.NoError(t, err)

	assert.True(t, result.Abandoned)
	assert.Equal(t, 100.0, result.Balance)
}

func TestPlayRoundBetTimeout(t *testing.T) {
	ctx := context.Background()
	mClock := quartz.NewMock(t)
	engine, sink, _ := newTestEngine(t, 100, "As2hKd3c", WithClock(mClock))
	agent := &blockedAgent{started: make(chan struct{})}

	type answer struct {
		result *RoundResult
		err    error
	}
	done := make(chan answer, 1)
	go func() {
		result, err := engine.PlayRound(ctx, agent)
		done <- answer{result, err}
	}()

	// Wait until the prompt is up, then fire the bet timeout.
	<-agent.started
	mClock.Advance(DefaultBetTimeout).MustWait(ctx)

	got := <-done
	require.NoError(t, got.err)
	assert.True(t, got.result.Abandoned)
	assert.Equal(t, 100.0, got.result.Balance, "timeout must leave the balance untouched")
	assert.Equal(t, statistics.SessionStats{}, got.result.Stats)
	assert.Empty(t, sink.transfers)
}

func TestPlayRoundTimeoutRecordsAbandonmentWhenConfigured(t *testing.T) {
	ctx := context.Background()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	store := statistics.NewMemoryStore()
	lgr, err := ledger.New(logger, store, ledger.DiscardSink{}, "alice", "Mugiwara", 100)
	require.NoError(t, err)

	mClock := quartz.NewMock(t)
	engine := NewEngine(logger, randutil.New(1), lgr, Config{RecordAbandoned: true}, WithClock(mClock))
	agent := &blockedAgent{started: make(chan struct{})}

	done := make(chan *RoundResult, 1)
	go func() {
		result, err := engine.PlayRound(ctx, agent)
		require.NoError(t, err)
		done <- result
	}()

	<-agent.started
	mClock.Advance(DefaultBetTimeout).MustWait(ctx)

	result := <-done
	assert.True(t, result.Abandoned)
	assert.Equal(t, 1, result.Stats.Abandoned)
	assert.Equal(t, 100.0, result.Balance)
}

func TestPlayRoundContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	engine, _, _ := newTestEngine(t, 100, "As2hKd3c")
	agent := &blockedAgent{started: make(chan struct{})}

	done := make(chan error, 1)
	go func() {
		_, err := engine.PlayRound(ctx, agent)
		done <- err
	}()

	<-agent.started
	cancel()

	err := <-done
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlayRoundPublishesEvents(t *testing.T) {
	engine, _, _ := newTestEngine(t, 100, "ThTs9h6s2d")
	agent := &scriptedAgent{bet: 10, actions: []Action{ActionStand}}

	var types []EventType
	engine.EventBus().Subscribe(func(e Event) {
		types = append(types, e.EventType())
	})

	_, err := engine.PlayRound(context.Background(), agent)
	require.NoError(t, err)

	want := []EventType{
		EventTypeRoundStart,
		EventTypeBetPlaced,
		EventTypeCardDealt, // player up
		EventTypeCardDealt, // dealer up
		EventTypeCardDealt, // player second
		EventTypeCardDealt, // dealer hole, hidden
		EventTypeDealerReveal,
		EventTypeCardDealt, // dealer draw on 16
		EventTypeRoundResolved,
	}
	assert.Equal(t, want, types)
}

func TestStrategyAgentMimicsDealer(t *testing.T) {
	agent := StrategyAgent{Bet: 10, HitBelow: 17}

	action, err := agent.Decide(context.Background(), RoundView{PlayerValue: 16})
	require.NoError(t, err)
	assert.Equal(t, ActionHit, action)

	action, err = agent.Decide(context.Background(), RoundView{PlayerValue: 17})
	require.NoError(t, err)
	assert.Equal(t, ActionStand, action)

	// The fixed bet caps at the available balance.
	bet, err := agent.PlaceBet(context.Background(), BetPrompt{Balance: 4, Timeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, 4.0, bet)
}
