package store

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// IsNotFound reports whether err (or anything it wraps) is a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

var (
	ErrUnknownAction = errors.New("unknown action")
	// ErrInvalidAction marks an action whose result could not be persisted
	// and loaded back.
	ErrInvalidAction = errors.New("invalid action")
)
