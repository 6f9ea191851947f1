package game

import "errors"

var (
	// ErrInvalidBet rejects a bet that is zero, negative, or not a
	// finite number. The round stays at AwaitingBet.
	ErrInvalidBet = errors.New("invalid bet: must be a positive amount")

	// ErrInsufficientBalance rejects a bet larger than the available
	// balance. The round stays at AwaitingBet.
	ErrInsufficientBalance = errors.New("insufficient balance for bet")

	// ErrBetTimeout signals the bet prompt expired. The round is
	// abandoned with no balance or statistics change.
	ErrBetTimeout = errors.New("bet entry timed out")

	// ErrRoundOver rejects actions after the round has resolved.
	ErrRoundOver = errors.New("round already resolved")

	// ErrWrongState rejects an action that is not legal in the round's
	// current state, such as hitting before a bet is placed.
	ErrWrongState = errors.New("action not valid in current round state")
)
