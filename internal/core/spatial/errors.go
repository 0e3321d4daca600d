package spatial

import "errors"

// ErrCellFull is returned by Grid.Add when a covered cell is already at
// its configured maxPerCell capacity.
var ErrCellFull = errors.New("spatial: cell at capacity")
