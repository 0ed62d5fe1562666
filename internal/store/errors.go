package store

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed indicates the store has been closed.
	ErrClosed = errors.New("store: closed")

	// ErrEmptyConversationID indicates a write without a conversation id.
	ErrEmptyConversationID = errors.New("store: empty conversation id")
)

// QueryError wraps a database failure with the operation that caused it.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
