package response

import (
	"errors"
)

// Error pairs a domain failure with the HTTP status handlers answer with.
type Error struct {
	Code int
	Err  error
}

func NewError(code int, message string) error {
	return &Error{Code: code, Err: errors.New(message)}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is compares status and message, so two errors built from the same
// sentinel arguments match.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}
