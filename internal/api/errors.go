package api

import (
	"errors"
	"fmt"
)

// Kind separates the failure classes callers react to differently:
// Unauthorized forces a session clear and a redirect to /login, Validation
// never left the browser process, everything else is shown and retried by
// hand.
type Kind int

const (
	KindNetwork Kind = iota
	KindUnauthorized
	KindValidation
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network_failure"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation_failure"
	case KindRejected:
		return "server_rejected"
	}
	return "unknown"
}

type Error struct {
	Kind    Kind
	Status  int // HTTP status, 0 for network and validation errors
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err carries KindUnauthorized anywhere in
// its chain.
func IsUnauthorized(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == KindUnauthorized
}

func IsValidation(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == KindValidation
}

func networkErr(err error) *Error {
	return &Error{Kind: KindNetwork, Message: "request failed", Err: err}
}

func statusErr(status int, message string) *Error {
	k := KindRejected
	if status == 401 || status == 403 {
		k = KindUnauthorized
	}
	return &Error{Kind: k, Status: status, Message: message}
}

// ValidationErr marks input rejected locally, before any network call.
func ValidationErr(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}
