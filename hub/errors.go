package hub

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrSignalNotFound      = errors.New("signal not found")
	ErrDuplicateSignal     = errors.New("signal already registered")
	ErrDuplicateConnection = errors.New("connection already exists")
)

// InvalidArgumentError reports a value that cannot participate in the
// registry: a non-identity emitter/listener/object, an id that is
// neither string nor integer, or an unresolvable default callback.
type InvalidArgumentError struct {
	Role   string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Role, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

// SignalNotFoundError is returned by Connect, Disconnect and Emit when
// the named signal was never registered on the emitter. Deregister is
// deliberately more lenient and treats an absent signal as a no-op.
type SignalNotFoundError struct {
	SignalID string
}

func (e *SignalNotFoundError) Error() string {
	return fmt.Sprintf("no signal %s registered on emitter", e.SignalID)
}

func (e *SignalNotFoundError) Unwrap() error { return ErrSignalNotFound }

type DuplicateSignalError struct {
	SignalID string
}

func (e *DuplicateSignalError) Error() string {
	return fmt.Sprintf("signal %s already registered on emitter", e.SignalID)
}

func (e *DuplicateSignalError) Unwrap() error { return ErrDuplicateSignal }

// DuplicateConnectionError is returned when the exact (emitter, signal,
// listener, connection id) 4-tuple is already connected. The second
// connection never takes effect; both indexes are left untouched.
type DuplicateConnectionError struct {
	SignalID     string
	ConnectionID string
}

func (e *DuplicateConnectionError) Error() string {
	return fmt.Sprintf("connection %s already exists on signal %s", e.ConnectionID, e.SignalID)
}

func (e *DuplicateConnectionError) Unwrap() error { return ErrDuplicateConnection }
