package mongo

import (
	"errors"
	"fmt"
)

var (
	ErrMissingURI        = errors.New("MONGODB_URI não está definida")
	ErrConfiguration     = errors.New("mongo configuration error")
	ErrConnection        = errors.New("failed to connect to mongo")
	ErrPing              = errors.New("mongo ping failed")
	ErrStats             = errors.New("mongo stats failed")
	ErrHealthcheckFailed = errors.New("mongo healthcheck failed")
	ErrDisconnected      = errors.New("mongo connector disconnected while connecting")
)

// Kind classifies connector failures.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindConnection
	KindPing
	KindStats
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindConnection:
		return "connection"
	case KindPing:
		return "ping"
	case KindStats:
		return "stats"
	default:
		return "unknown"
	}
}

// sentinel maps a kind to the error returned for it by errors.Is.
func (k Kind) sentinel() error {
	switch k {
	case KindConfiguration:
		return ErrConfiguration
	case KindConnection:
		return ErrConnection
	case KindPing:
		return ErrPing
	case KindStats:
		return ErrStats
	default:
		return nil
	}
}

// Error is the typed failure produced by the Connector.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("mongo %s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("mongo %s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrConnection) match on the kind without the
// sentinel being part of the wrapped chain.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Message returns the underlying message without the operation prefix, which
// is what the HTTP layer shows to non-production callers.
func (e *Error) Message() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
