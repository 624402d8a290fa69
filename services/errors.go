package services

import (
	"errors"
	"fmt"

	"document-flow-api/models"
)

// Sentinel errors for the workflow engine. Controllers translate these to
// HTTP statuses: not found -> 404, forbidden -> 403, invalid transition and
// validation -> 400, conflict -> 409.
var (
	ErrDocumentNotFound   = errors.New("document not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrDepartmentNotFound = errors.New("department not found")

	// ErrVersionConflict signals a concurrent workflow write on the same
	// document; the caller should retry against fresh state.
	ErrVersionConflict = errors.New("document was modified by another user")
)

// ForbiddenError reports a role gate violation.
type ForbiddenError struct {
	Action   string
	Required []string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("actor lacks a required role for %s (requires one of %v)", e.Action, e.Required)
}

// InvalidTransitionError reports a status change the state machine forbids.
type InvalidTransitionError struct {
	Action string
	From   models.DocumentStatus
	To     models.DocumentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot perform %s: transition %s -> %s is not allowed", e.Action, e.From, e.To)
}

// ValidationError reports a malformed or business-invalid payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
