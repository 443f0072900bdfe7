package application

import (
	"errors"
	"strings"
)

// ErrorKind classifies service failures for the transport layer.
type ErrorKind uint8

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindBadRequest
	KindNotFound
	KindConflict
	KindAuth
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	default:
		return "internal"
	}
}

// Client-facing messages.
const (
	MsgInvalidID          = "Invalid user ID"
	MsgNameParamRequired  = "Name parameter is required"
	MsgUserNotFound       = "User not found"
	MsgEmailExists        = "User with this email already exists"
	MsgEmailTakenByOther  = "Email already taken by another user"
	MsgInvalidCredentials = "Invalid credentials"
)

// Error is returned by every Service operation that fails. For
// KindInternal, Message names the failed step and Err holds the cause;
// neither is meant for clients.
type Error struct {
	Kind    ErrorKind
	Message string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of a service error, KindInternal for anything else.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func validationError(errs []string) *Error {
	return &Error{Kind: KindValidation, Message: strings.Join(errs, ", "), Details: errs}
}

func badRequest(msg string) *Error { return &Error{Kind: KindBadRequest, Message: msg} }

func notFound() *Error { return &Error{Kind: KindNotFound, Message: MsgUserNotFound} }

func conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

func authFailed() *Error { return &Error{Kind: KindAuth, Message: MsgInvalidCredentials} }

func internal(step string, err error) *Error {
	return &Error{Kind: KindInternal, Message: step, Err: err}
}
