// Package apperr is the error taxonomy shared by services and handlers.
// Every domain failure is an *Error with a Kind; handlers return it unchanged and
// gRPC derives the status code from GRPCStatus.
package apperr

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind classifies an Error.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation is missing or malformed input.
	KindValidation
	// KindNotFound is an unknown record or unregistered phone.
	KindNotFound
	// KindAuth is an expired/consumed/mismatched OTP or an invalid token.
	KindAuth
	// KindFraudSuspicion is a geo mismatch; callers must be able to tell it apart from KindAuth.
	KindFraudSuspicion
	// KindDependency is a store, delivery or geolocation failure. Not retried.
	KindDependency
	// KindCrypto is a derivation failure or an authentication-tag mismatch.
	KindCrypto
	// KindRateLimited is too many OTP requests for a phone or IP.
	KindRateLimited
	// KindConflict is a state transition that already happened (e.g. profile already completed).
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindFraudSuspicion:
		return "fraud_suspicion"
	case KindDependency:
		return "dependency"
	case KindCrypto:
		return "crypto"
	case KindRateLimited:
		return "rate_limited"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is a classified domain error. Msg is safe to show to the caller; Err is the
// underlying cause and is never sent over the wire.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// GRPCStatus lets status.FromError and the gRPC server map the error without a handler-side switch.
func (e *Error) GRPCStatus() *status.Status {
	return status.New(e.Kind.code(), e.Msg)
}

func (k Kind) code() codes.Code {
	switch k {
	case KindValidation, KindCrypto:
		return codes.InvalidArgument
	case KindNotFound:
		return codes.NotFound
	case KindAuth:
		return codes.Unauthenticated
	case KindFraudSuspicion:
		return codes.PermissionDenied
	case KindDependency:
		return codes.Unavailable
	case KindRateLimited:
		return codes.ResourceExhausted
	case KindConflict:
		return codes.AlreadyExists
	default:
		return codes.Internal
	}
}

// New returns an Error of kind with a caller-safe message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap returns an Error of kind wrapping cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

func Validation(msg string) *Error { return New(KindValidation, msg) }

func NotFound(msg string) *Error { return New(KindNotFound, msg) }

func Auth(msg string, cause error) *Error { return Wrap(KindAuth, msg, cause) }

func FraudSuspicion(msg string) *Error { return New(KindFraudSuspicion, msg) }

func Dependency(msg string, cause error) *Error { return Wrap(KindDependency, msg, cause) }

func Crypto(msg string, cause error) *Error { return Wrap(KindCrypto, msg, cause) }

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ToStatus converts err to a gRPC status error. Classified errors keep their caller-safe
// message; anything else becomes Internal without detail.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e.GRPCStatus().Err()
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codes.Internal, "internal error")
}
