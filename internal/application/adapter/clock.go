package adapter

import "time"

// Clock abstracts wall-clock time so cycle and status computations can be
// tested against fixed instants.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}
