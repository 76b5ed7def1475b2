package services

import "strings"

// ValidationError is a user-correctable input problem: missing mandatory
// fields, duplicate authors, oversized files. Always surfaced to the actor.
type ValidationError struct {
	Message string
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, "; ")
}

func newValidationError(message string, details ...string) *ValidationError {
	return &ValidationError{Message: message, Details: details}
}

// ConflictError signals a concurrent-mutation race, typically a uniqueness
// violation such as assigning the same reviewer twice.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func newConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// PreconditionError signals a workflow-state violation: the operation is
// well-formed but the entity is not in a state that permits it. Rejected
// before any mutation.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

func newPreconditionError(message string) *PreconditionError {
	return &PreconditionError{Message: message}
}
