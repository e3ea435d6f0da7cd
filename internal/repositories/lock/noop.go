package lock

import "context"

// NoopLocker grants every lease. Used when no Redis is configured and a
// single process owns the chat.
type NoopLocker struct{}

func (NoopLocker) Acquire(_ context.Context, input *AcquireInput) (*Lease, error) {
	return &Lease{Key: input.Key}, nil
}

func (NoopLocker) Release(context.Context, *Lease) error {
	return nil
}
