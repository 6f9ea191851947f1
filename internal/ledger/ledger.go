// Package ledger mirrors the player's host-site credit balance for
// the duration of a session and applies round results to it. The host
// remains the ledger of record; this is a working copy, reconciled by
// pending-transfer records that a human settles on the host site.
package ledger

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/rags2riches/internal/statistics"
)

// PendingTransfer describes a credit movement still awaiting manual
// settlement on the host site.
type PendingTransfer struct {
	ID        string
	Recipient string
	Amount    float64
	Reason    string
}

// Sink receives pending transfers. Emission is fire-and-forget: the
// ledger does not wait for settlement and a sink failure never fails
// the round.
type Sink interface {
	EmitPendingTransfer(t PendingTransfer) error
}

// DiscardSink drops transfers, for simulations that settle nothing.
type DiscardSink struct{}

// EmitPendingTransfer implements Sink
func (DiscardSink) EmitPendingTransfer(PendingTransfer) error { return nil }

// Ledger owns the working balance and session counters. Mutations
// happen only at round boundaries: the stake leaves at bet time and
// the result settles once, atomically per round, at resolution.
type Ledger struct {
	logger     *log.Logger
	store      statistics.Store
	sink       Sink
	playerName string
	dealerName string

	balance float64
	stats   statistics.SessionStats
}

// New creates a ledger seeded with the host balance and the counters
// previously persisted to the store.
func New(logger *log.Logger, store statistics.Store, sink Sink, playerName, dealerName string, balance float64) (*Ledger, error) {
	stats, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load session statistics: %w", err)
	}
	return &Ledger{
		logger:     logger.WithPrefix("ledger"),
		store:      store,
		sink:       sink,
		playerName: playerName,
		dealerName: dealerName,
		balance:    balance,
		stats:      stats,
	}, nil
}

// Balance returns the current working balance.
func (l *Ledger) Balance() float64 {
	return l.balance
}

// Stats returns the current session counters.
func (l *Ledger) Stats() statistics.SessionStats {
	return l.stats
}

// PlaceBet moves the stake out of the working balance for the
// duration of the round.
func (l *Ledger) PlaceBet(bet float64) {
	l.balance -= bet
}

// Resolve settles a resolved round: the stake returns to the balance
// along with the credit delta, the win/loss counters update and are
// persisted once, and any non-zero delta is queued as a pending
// transfer. The net balance movement across the whole round equals
// delta, so a push hands back exactly the deducted stake.
func (l *Ledger) Resolve(bet, delta float64) (statistics.SessionStats, *PendingTransfer) {
	l.balance += bet + delta
	l.stats.Record(delta)

	if err := l.store.Save(l.stats); err != nil {
		l.logger.Error("Failed to persist session statistics", "error", err)
	}

	if delta == 0 {
		return l.stats, nil
	}

	transfer := PendingTransfer{
		ID:     uuid.New().String(),
		Amount: math.Abs(delta),
	}
	if delta > 0 {
		transfer.Recipient = l.playerName
		transfer.Reason = fmt.Sprintf("Blackjack Win: +%.2f", transfer.Amount)
	} else {
		transfer.Recipient = l.dealerName
		transfer.Reason = fmt.Sprintf("Blackjack Loss: -%.2f", transfer.Amount)
	}

	if err := l.sink.EmitPendingTransfer(transfer); err != nil {
		l.logger.Error("Failed to queue pending transfer",
			"error", err,
			"recipient", transfer.Recipient,
			"amount", transfer.Amount)
	}
	return l.stats, &transfer
}

// RecordAbandoned tallies a round dropped at the bet prompt. Only
// called when the record-abandoned policy is on; the balance never
// moves for an abandoned round.
func (l *Ledger) RecordAbandoned() statistics.SessionStats {
	l.stats.Abandoned++
	if err := l.store.Save(l.stats); err != nil {
		l.logger.Error("Failed to persist session statistics", "error", err)
	}
	return l.stats
}
