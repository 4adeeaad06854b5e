package task

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTarget indicates the task's target path cannot be used,
	// for example creating a path that already exists.
	ErrInvalidTarget = errors.New("task: invalid target")

	// ErrOrchestratorClosed indicates Run was called after Finishing.
	ErrOrchestratorClosed = errors.New("task: orchestrator is closed")
)

// OperationError wraps a failure with the task that produced it.
type OperationError struct {
	Task string
	Err  error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("task: %s: %v", e.Task, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// AggregateError collects the failures of a whole session, returned by
// Finishing. Cancellation is never part of the aggregate.
type AggregateError struct {
	Errs []error
}

func (e *AggregateError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("task: %d operation(s) failed: %s", len(e.Errs), strings.Join(msgs, "; "))
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errs
}
