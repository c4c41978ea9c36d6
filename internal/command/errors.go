// Package command defines the error taxonomy and shared request/response
// shapes for the command surface. The operations themselves live on
// core.State, which is the only thing with enough context (entity
// registry, window/tag/output maps, engines) to execute them; this
// package holds what both core and the RPC transport need without
// either depending on the other's internals.
package command

import "fmt"

// Kind is one of the five error categories the command surface reports.
type Kind int

const (
	// InvalidArgument: the request was malformed on its face — an
	// Unspecified enum value, an empty required field, a negative size.
	InvalidArgument Kind = iota
	// NotFound: the request referenced an entity ID that no longer
	// exists (or never did). Never a panic.
	NotFound
	// ProtocolViolation: the caller violated the gate/stream protocol,
	// e.g. committing a buffer before every rule subscriber finished.
	// Logged, and usually still honored rather than refused.
	ProtocolViolation
	// Transient: the operation could not complete right now but may
	// succeed on retry (e.g. focusing a window that has not mapped yet,
	// or a process spawn that failed).
	Transient
	// Fatal: an invariant was violated in a way indicating a bug; the
	// caller should treat this as unrecoverable for the request in hand.
	Fatal
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid_argument"
	case NotFound:
		return "not_found"
	case ProtocolViolation:
		return "protocol_violation"
	case Transient:
		return "transient"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Error is the error type every command surface operation returns.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Errorf builds an Error of the given kind.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsError reports whether err is a *Error and, if so, returns it.
func AsError(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}
