package adapters

import (
	"time"

	"github.com/fatura-tracker/backend/internal/application/adapter"
)

// systemClock implements the adapter.Clock interface over the wall clock.
type systemClock struct{}

// NewSystemClock creates a new system clock instance.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

// Now returns the current UTC time.
func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
