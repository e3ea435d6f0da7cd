package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/poolbot/internal/common/clock Clock

// Clock supplies the timestamps stamped onto sessions, roster rows, requests and votes.
type Clock interface {
	Now() time.Time
}

// DefaultClock reads the system clock, normalised to UTC so both SQL dialects store the same value.
type DefaultClock struct{}

// Now returns the current UTC time
func (c *DefaultClock) Now() time.Time {
	return time.Now().UTC()
}
