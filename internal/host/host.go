// Package host integrates with the credit-hosting site. The game
// needs two small reads from it (balance and identity); every failure
// degrades to a default value rather than an error the player sees,
// and the site remains the ledger of record.
package host

import (
	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// PlaceholderName is used when the host can't tell us who is playing.
const PlaceholderName = "Player"

// Identity is the player as the host site knows them.
type Identity struct {
	Name      string
	AvatarRef string
}

// BalanceSource supplies the starting credit balance. It is read once
// per session start; absence degrades to zero and is never retried.
type BalanceSource interface {
	ReadBalance(ctx context.Context) (float64, error)
}

// IdentitySource supplies the player's display identity.
type IdentitySource interface {
	ReadIdentity(ctx context.Context) (Identity, error)
}

// StaticSource serves a fixed balance and identity, for offline play
// and tests.
type StaticSource struct {
	Balance  float64
	Identity Identity
}

// ReadBalance implements BalanceSource
func (s StaticSource) ReadBalance(ctx context.Context) (float64, error) {
	return s.Balance, nil
}

// ReadIdentity implements IdentitySource
func (s StaticSource) ReadIdentity(ctx context.Context) (Identity, error) {
	return s.Identity, nil
}

// Snapshot fetches the balance and identity concurrently, degrading
// each to its default on failure. The returned identity always has a
// usable name.
func Snapshot(ctx context.Context, logger *log.Logger, balances BalanceSource, identities IdentitySource) (float64, Identity) {
	var (
		balance  float64
		identity Identity
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := balances.ReadBalance(gctx)
		if err != nil {
			logger.Warn("Could not read balance from host, defaulting to 0", "error", err)
			return nil
		}
		balance = b
		return nil
	})
	g.Go(func() error {
		id, err := identities.ReadIdentity(gctx)
		if err != nil {
			logger.Warn("Could not read identity from host, using placeholder", "error", err)
			return nil
		}
		identity = id
		return nil
	})
	// Failures were already downgraded to defaults above.
	_ = g.Wait()

	if identity.Name == "" {
		identity.Name = PlaceholderName
	}
	return balance, identity
}
