package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicateID      = errors.New("duplicate id")
	ErrCorrupt          = errors.New("corrupt persisted data")
)

// RemoteAuthError is a non-2xx answer from the identity provider.
// Message is shown to the user verbatim.
type RemoteAuthError struct {
	Status  int
	Message string
}

func (e *RemoteAuthError) Error() string {
	return fmt.Sprintf("identity: %d: %s", e.Status, e.Message)
}
