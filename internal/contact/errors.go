package contact

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("contact request not found")

// ValidationError rejects a request before any persistence attempt.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
