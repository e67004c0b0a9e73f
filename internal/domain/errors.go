package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoAnalysis      = errors.New("no stored analysis for ticker")
)

// PersistenceError marks a failed durable write. It is never swallowed: the
// memory bank surfaces it and the pipeline converts it into a failed outcome.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
