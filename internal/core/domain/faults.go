package domain

import (
	"errors"
	"fmt"
)

// FaultKind classifies every failure the services can report. Handlers and
// callers branch on the kind, never on message text.
type FaultKind string

const (
	// FaultConfiguration: the process is miswired (e.g. no connection pool).
	// Fatal: the caller must not proceed.
	FaultConfiguration FaultKind = "configuration"
	// FaultConnectivity: the store is unreachable after all retries.
	FaultConnectivity FaultKind = "connectivity"
	// FaultValidation: bad input, caught before any write.
	FaultValidation FaultKind = "validation"
	// FaultConstraint: the store rejected a write (duplicate key, foreign
	// key, business trigger). The underlying message is kept, not decoded.
	FaultConstraint FaultKind = "constraint"
	// FaultNotFound: zero rows matched an update/delete/select.
	FaultNotFound FaultKind = "not_found"
)

// Fault is the uniform failure value returned across service boundaries.
type Fault struct {
	Kind    FaultKind
	Message string
	cause   error
}

func (f *Fault) Error() string {
	if f.cause != nil {
		return f.Message + ": " + f.cause.Error()
	}
	return f.Message
}

func (f *Fault) Unwrap() error { return f.cause }

// Is makes two faults of the same kind match under errors.Is, so sentinel
// faults below can be used as comparison targets.
func (f *Fault) Is(target error) bool {
	var t *Fault
	if errors.As(target, &t) {
		return f.Kind == t.Kind
	}
	return false
}

func Configurationf(format string, args ...any) *Fault {
	return &Fault{Kind: FaultConfiguration, Message: fmt.Sprintf(format, args...)}
}

func Connectivityf(cause error, format string, args ...any) *Fault {
	return &Fault{Kind: FaultConnectivity, Message: fmt.Sprintf(format, args...), cause: cause}
}

func Validationf(format string, args ...any) *Fault {
	return &Fault{Kind: FaultValidation, Message: fmt.Sprintf(format, args...)}
}

func Constraintf(cause error, format string, args ...any) *Fault {
	return &Fault{Kind: FaultConstraint, Message: fmt.Sprintf(format, args...), cause: cause}
}

func NotFoundf(format string, args ...any) *Fault {
	return &Fault{Kind: FaultNotFound, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the FaultKind carried by err, or "" for unclassified errors.
func KindOf(err error) FaultKind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// Sentinel faults for errors.Is comparisons on kind alone.
var (
	ErrNotFound      = &Fault{Kind: FaultNotFound, Message: "not found"}
	ErrNotConfigured = &Fault{Kind: FaultConfiguration, Message: "connection pool is not initialized"}
)

// ErrInvalidCredentials is deliberately identical for "no such user" and
// "wrong password"; callers must not be able to tell them apart.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrForbidden marks an operation the acting account is not allowed to
// perform on the targeted row.
var ErrForbidden = errors.New("access forbidden")

// ErrTooManyAttempts is returned when the login throttle window is exhausted.
var ErrTooManyAttempts = errors.New("too many failed login attempts, retry later")
