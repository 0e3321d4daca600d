package events

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrCapacity is returned by Push when the queue is full.
var ErrCapacity = errors.New("events: queue at capacity")

// PanicError wraps a panic value recovered from an Executable's Execute
// method, identified by the envelope's trace id.
type PanicError struct {
	TraceID   uuid.UUID
	Recovered any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("events: event %s panicked: %v", e.TraceID, e.Recovered)
}
