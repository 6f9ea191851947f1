package game

import (
	"sync"
	"time"

	"github.com/lox/rags2riches/internal/deck"
	"github.com/lox/rags2riches/internal/statistics"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeRoundStart    EventType = "round_start"
	EventTypeBetPlaced     EventType = "bet_placed"
	EventTypeBetRejected   EventType = "bet_rejected"
	EventTypeBetTimeout    EventType = "bet_timeout"
	EventTypeCardDealt     EventType = "card_dealt"
	EventTypeDealerReveal  EventType = "dealer_reveal"
	EventTypeRoundResolved EventType = "round_resolved"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event represents any event that occurs during a blackjack session.
// Events carry plain data only so presentation layers can render them
// without reaching back into the engine.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// Seat identifies whose hand a card event belongs to.
type Seat int

const (
	SeatPlayer Seat = iota
	SeatDealer
)

// String returns the string representation of a seat
func (s Seat) String() string {
	if s == SeatDealer {
		return "dealer"
	}
	return "player"
}

// RoundStartEvent is published when a new round begins taking bets.
type RoundStartEvent struct {
	Balance   float64
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// BetPlacedEvent is published once a bet is accepted and deducted.
type BetPlacedEvent struct {
	Bet       float64
	Balance   float64
	timestamp time.Time
}

func (e BetPlacedEvent) EventType() EventType { return EventTypeBetPlaced }
func (e BetPlacedEvent) Timestamp() time.Time { return e.timestamp }

// BetRejectedEvent is published when a bet fails validation. The round
// is abandoned without any balance or statistics change.
type BetRejectedEvent struct {
	Bet       float64
	Err       error
	timestamp time.Time
}

func (e BetRejectedEvent) EventType() EventType { return EventTypeBetRejected }
func (e BetRejectedEvent) Timestamp() time.Time { return e.timestamp }

// BetTimeoutEvent is published when the bet prompt expires.
type BetTimeoutEvent struct {
	Timeout   time.Duration
	timestamp time.Time
}

func (e BetTimeoutEvent) EventType() EventType { return EventTypeBetTimeout }
func (e BetTimeoutEvent) Timestamp() time.Time { return e.timestamp }

// CardDealtEvent is published for each card dealt to either seat.
// Hidden marks the dealer's hole card, which stays face down until the
// dealer's turn; HandValue is the value of the visible cards only.
type CardDealtEvent struct {
	Seat      Seat
	Card      deck.Card
	Hidden    bool
	HandValue int
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// DealerRevealEvent is published when the dealer's hole card turns
// over at the start of the dealer's turn.
type DealerRevealEvent struct {
	Hand      Hand
	HandValue int
	timestamp time.Time
}

func (e DealerRevealEvent) EventType() EventType { return EventTypeDealerReveal }
func (e DealerRevealEvent) Timestamp() time.Time { return e.timestamp }

// RoundResolvedEvent is published once per resolved round with the
// final hands, the credit delta, and the updated session counters.
type RoundResolvedEvent struct {
	Outcome     Outcome
	Bet         float64
	Delta       float64
	Balance     float64
	PlayerHand  Hand
	PlayerValue int
	DealerHand  Hand
	DealerValue int
	Stats       statistics.SessionStats
	timestamp   time.Time
}

func (e RoundResolvedEvent) EventType() EventType { return EventTypeRoundResolved }
func (e RoundResolvedEvent) Timestamp() time.Time { return e.timestamp }

// EventBus delivers game events to subscribers. Delivery is
// synchronous and in subscription order; the engine runs one round at
// a time so handlers never race each other.
type EventBus struct {
	mu       sync.RWMutex
	handlers []func(Event)
}

// NewEventBus creates an empty event bus
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers a handler for all events.
func (b *EventBus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, fn)
}

// Publish delivers the event to every subscriber.
func (b *EventBus) Publish(e Event) {
	b.mu.RLock()
	handlers := b.handlers
	b.mu.RUnlock()
	for _, fn := range handlers {
		fn(e)
	}
}
