package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIllegalState is matched by every IllegalStateError.
var ErrIllegalState = errors.New("illegal state")

// IllegalStateError reports an operation invoked in a state that forbids it.
type IllegalStateError struct {
	Op     string
	Reason string
}

func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Is makes errors.Is(err, ErrIllegalState) succeed.
func (e *IllegalStateError) Is(target error) bool {
	return target == ErrIllegalState
}

// Issue captures a single validation problem.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more problems in question data.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return "question validation failed: " + strings.Join(parts, "; ")
}

// Add records a new issue.
func (e *ValidationError) Add(field, message string) {
	e.Issues = append(e.Issues, Issue{Field: field, Message: message})
}

// Err returns e when it holds issues and nil otherwise.
func (e *ValidationError) Err() error {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}
