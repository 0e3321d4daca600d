package scheduler

import "errors"

var (
	// ErrCapacity is returned by Enqueue when the pending FIFO is full.
	ErrCapacity = errors.New("scheduler: pending queue at capacity")
	// ErrInvalidNode is returned by Enqueue when a task names a node id
	// outside [0, MaxNodes).
	ErrInvalidNode = errors.New("scheduler: node id out of range")
)
