package lock

//go:generate mockgen -package=mocks -destination=mocks/mock_locker.go github.com/KirkDiggler/poolbot/internal/repositories/lock Locker

import (
	"context"
	"time"
)

// Locker hands out short exclusive leases keyed by name
type Locker interface {
	// Acquire takes the lease for input.Key. A nil lease with a nil error
	// means another holder owns it.
	Acquire(ctx context.Context, input *AcquireInput) (*Lease, error)

	// Release gives a lease back if it is still owned by the caller
	Release(ctx context.Context, lease *Lease) error
}

type AcquireInput struct {
	Key string
	TTL time.Duration
}

// Lease is proof of ownership of a key until it expires or is released
type Lease struct {
	Key   string
	Token string
}
