// Package statistics tracks the durable win/loss counters for a
// blackjack session. Counters only ever grow; resetting them is an
// explicit external action, not something the game does.
package statistics

import "sync"

// SessionStats holds the persistent session counters. They survive
// across rounds and process restarts via a Store.
type SessionStats struct {
	Wins        int
	Losses      int
	TotalEarned float64
	TotalLost   float64
	// Abandoned counts rounds dropped at the bet prompt. It only moves
	// when the record-abandoned policy is enabled.
	Abandoned int
}

// Record folds one resolved round's credit delta into the counters.
// Wins and losses move only on non-zero deltas; a push changes
// nothing.
func (s *SessionStats) Record(delta float64) {
	switch {
	case delta > 0:
		s.Wins++
		s.TotalEarned += delta
	case delta < 0:
		s.Losses++
		s.TotalLost += -delta
	}
}

// Rounds returns the number of recorded decisive rounds.
func (s SessionStats) Rounds() int {
	return s.Wins + s.Losses
}

// Net returns total earnings minus total losses for the session.
func (s SessionStats) Net() float64 {
	return s.TotalEarned - s.TotalLost
}

// Store persists SessionStats between rounds and process restarts.
// Load and Save are idempotent; Load treats counters that were never
// written as zero rather than erroring.
type Store interface {
	Load() (SessionStats, error)
	Save(SessionStats) error
}

// MemoryStore is a Store kept in process memory, for tests and
// throwaway sessions.
type MemoryStore struct {
	mu    sync.Mutex
	stats SessionStats
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored counters.
func (m *MemoryStore) Load() (SessionStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats, nil
}

// Save replaces the stored counters.
func (m *MemoryStore) Save(stats SessionStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = stats
	return nil
}
