package posts

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("post not found")
	ErrNoFields = errors.New("no fields to update")
)

// ValidationError rejects a request before any persistence attempt.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
