// Package apperr holds the error taxonomy shared by the pool services.
// Every failure is scoped to a single intent; callers match kinds with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

// Error is a custom error type for pool errors
type Error string

// Error implements the error interface
func (e Error) Error() string {
	return string(e)
}

const (
	ErrValidation      Error = "invalid amount"
	ErrConflict        Error = "a session is already active in this chat"
	ErrNotFound        Error = "not found"
	ErrNotMember       Error = "not a participant of this session"
	ErrAlreadyMember   Error = "already a participant of this session"
	ErrAlreadyResolved Error = "request already resolved"
	ErrSelfVote        Error = "cannot vote on your own request"
	ErrTransport       Error = "transport failure"
)

// transportError keeps the underlying store or messenger error reachable through Unwrap
// while still matching ErrTransport.
type transportError struct {
	op  string
	err error
}

func (e *transportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTransport, e.op, e.err)
}

func (e *transportError) Unwrap() error {
	return e.err
}

func (e *transportError) Is(target error) bool {
	return target == ErrTransport
}

// Transport wraps a failure talking to the ledger store or the chat transport.
// Errors that already carry a domain kind are returned unchanged.
func Transport(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomain(err) {
		return err
	}
	return &transportError{op: op, err: err}
}

// IsDomain reports whether err carries one of the domain kinds (anything but ErrTransport).
func IsDomain(err error) bool {
	for _, kind := range []Error{
		ErrValidation, ErrConflict, ErrNotFound, ErrNotMember,
		ErrAlreadyMember, ErrAlreadyResolved, ErrSelfVote,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
