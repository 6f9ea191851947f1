// Package game implements the core blackjack logic: hand scoring with
// soft-ace handling, the round state machine, and the engine that
// drives complete rounds against an Agent.
//
// The main types are Round, which takes a single hand from bet
// placement through the player and dealer turns to resolution, and
// Engine, which wraps rounds with bet-entry timeouts, ledger
// settlement, and event publication.
//
// # Deterministic Testing
//
// All randomness is injected. Create an engine with a fixed-seed RNG
// and, when exact cards matter, a stacked deck:
//
//	rng := randutil.New(42)
//	d := deck.NewStacked(rng, deck.MustParseCards("AsKh5d9c")...)
//	r := game.NewRound(d, game.DefaultRules())
//
// The bet-entry timeout uses a quartz.Clock, so tests substitute
// quartz.NewMock and advance time explicitly.
//
// State lives in explicit Round and Engine values rather than package
// globals, so every transition is directly testable.
package game
