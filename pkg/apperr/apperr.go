// Package apperr holds the closed set of error kinds that callers switch on
// instead of matching message strings.
package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Kind int

const (
	// Validation: missing selection, empty cart, not signed in. Never reaches the network.
	Validation Kind = iota + 1
	NotFound
	// NetworkFailure: a remote read failed or timed out; retrying is safe.
	NetworkFailure
	// RemoteWriteFailure: an order write failed; nothing was committed.
	RemoteWriteFailure
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case NetworkFailure:
		return "network_failure"
	case RemoteWriteFailure:
		return "remote_write_failure"
	default:
		return "unknown"
	}
}

// Error is a user-facing message plus its kind and optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind, so errors.Is(err, apperr.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// kind-only targets for errors.Is
var (
	ErrValidation         = &Error{Kind: Validation}
	ErrNotFound           = &Error{Kind: NotFound}
	ErrNetworkFailure     = &Error{Kind: NetworkFailure}
	ErrRemoteWriteFailure = &Error{Kind: RemoteWriteFailure}
)

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Invalid(msg string) *Error { return New(Validation, msg) }

// KindOf returns the kind of err, or 0 when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Message returns the user-facing text for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// FromRead classifies a repository read error.
func FromRead(what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Wrap(NotFound, what+" not found", err)
	}
	if KindOf(err) != 0 {
		return err
	}
	return Wrap(NetworkFailure, "could not load "+what, err)
}

// FromWrite classifies a repository write error.
func FromWrite(what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Wrap(NotFound, what+" not found", err)
	}
	if KindOf(err) != 0 {
		return err
	}
	return Wrap(RemoteWriteFailure, "could not save "+what, err)
}
