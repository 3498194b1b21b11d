package history

import (
	"errors"
	"fmt"
)

// ErrNoSnapshots reports an undo against an empty snapshot sequence.
var ErrNoSnapshots = errors.New("no snapshots recorded")

// InvalidIndexError reports a positional restore outside history bounds.
type InvalidIndexError struct {
	Index  int
	Length int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid history index %d (length %d)", e.Index, e.Length)
}
