package testutil

import (
	"time"

	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
)

// NewFixedClock creates a mock clock fixed at the given time.
func NewFixedClock(t time.Time) *clock.MockClock {
	return clock.NewMockClock(t)
}

// NewMockClock creates a mock clock starting now, truncated to the second
// so that values read back from Spanner compare equal.
func NewMockClock() *clock.MockClock {
	return clock.NewMockClock(time.Now().UTC().Truncate(time.Second))
}
