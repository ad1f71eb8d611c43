package rental

import (
	"errors"
	"fmt"
)

// ErrAlreadyReviewed is returned when a booking request left the "new" state
// and re-review is disabled.
var ErrAlreadyReviewed = errors.New("booking request already reviewed")

type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e ValidationError) Is(target error) bool {
	var t *ValidationError
	ok := errors.As(target, &t)
	return ok
}
