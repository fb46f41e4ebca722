package suffixtree

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when a global or local position falls
	// outside the sequences stored in a tree.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidSequence is returned when a sequence cannot be appended to a tree.
	ErrInvalidSequence = errors.New("invalid sequence")
)

// InvariantError is the panic value raised when construction or a walk
// reaches a tree state that construction can never produce.
type InvariantError struct {
	Op  string
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("suffixtree: %s: %s", e.Op, e.Msg)
}

func invariant(op, format string, args ...interface{}) {
	panic(&InvariantError{Op: op, Msg: fmt.Sprintf(format, args...)})
}
