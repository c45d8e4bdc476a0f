package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an id does not resolve to a stored bookmark.
var ErrNotFound = errors.New("bookmark doesn't exist")

// Reason qualifies a ValidationError.
type Reason string

const (
	ReasonMissing     Reason = "missing"
	ReasonNotANumber  Reason = "not-a-number"
	ReasonOutOfRange  Reason = "out-of-range"
	ReasonEmptyUpdate Reason = "empty-update"
)

// EmptyUpdateMessage is reported when a partial update carries nothing usable.
const EmptyUpdateMessage = "Request body must contain one of the following: 'title', 'description', 'url' or 'rating'"

// ValidationError reports client input that cannot be accepted.
// Error() is the client-facing message.
type ValidationError struct {
	Field  string
	Reason Reason
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonMissing:
		return fmt.Sprintf("Missing %s in request.", e.Field)
	case ReasonNotANumber, ReasonOutOfRange:
		return fmt.Sprintf("Invalid %s in request.", e.Field)
	case ReasonEmptyUpdate:
		return EmptyUpdateMessage
	default:
		return fmt.Sprintf("Invalid %s in request.", e.Field)
	}
}

// StorageError wraps a failed Storage Adapter call.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
