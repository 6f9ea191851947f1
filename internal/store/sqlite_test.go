package store

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/rags2riches/internal/ledger"
	"github.com/lox/rags2riches/internal/statistics"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadDefaultsToZero(t *testing.T) {
	s := openTestStore(t)

	stats, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, statistics.SessionStats{}, stats)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	want := statistics.SessionStats{
		Wins:        7,
		Losses:      3,
		TotalEarned: 105.5,
		TotalLost:   30,
		Abandoned:   2,
	}
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadIdempotent(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Save(statistics.SessionStats{Wins: 1, TotalEarned: 15}))

	first, err := s.Load()
	require.NoError(t, err)
	second, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSaveOverwrites(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save(statistics.SessionStats{Wins: 1}))
	require.NoError(t, s.Save(statistics.SessionStats{Wins: 2, Losses: 1, TotalLost: 10}))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, statistics.SessionStats{Wins: 2, Losses: 1, TotalLost: 10}, got)
}

func TestStatsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(statistics.SessionStats{Wins: 4, TotalEarned: 60}))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Load()
	require.NoError(t, err)
	assert.Equal(t, statistics.SessionStats{Wins: 4, TotalEarned: 60}, got)
}

func TestPendingTransferQueue(t *testing.T) {
	s := openTestStore(t)

	first := ledger.PendingTransfer{
		ID:        uuid.New().String(),
		Recipient: "Mugiwara",
		Amount:    10,
		Reason:    "Blackjack Loss: -10.00",
	}
	second := ledger.PendingTransfer{
		ID:        uuid.New().String(),
		Recipient: "alice",
		Amount:    15,
		Reason:    "Blackjack Win: +15.00",
	}
	require.NoError(t, s.EmitPendingTransfer(first))
	require.NoError(t, s.EmitPendingTransfer(second))

	transfers, err := s.PendingTransfers()
	require.NoError(t, err)
	require.Len(t, transfers, 2)
	assert.Equal(t, first, transfers[0])
	assert.Equal(t, second, transfers[1])

	require.NoError(t, s.ClearPendingTransfers())
	transfers, err = s.PendingTransfers()
	require.NoError(t, err)
	assert.Empty(t, transfers)
}
