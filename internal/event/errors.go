package event

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned by Subscribe for an empty event name, a
// listener that cannot be called, or a scope that can never be compared.
// Callers must fix the call site; retrying will not help.
var ErrInvalidArgument = errors.New("event: invalid argument")

// IsInvalidArgument reports whether err was caused by a rejected argument.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }

// ListenerError reports a listener that failed during Broadcast.
type ListenerError struct {
	Event Name
	// Index is the listener's position in the delivery snapshot.
	Index int
	Scope Scope
	Err   error
	// Panic holds the recovered value when the listener panicked (Isolate only).
	Panic any
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("event %q: listener %d (scope %s): %v", e.Event, e.Index, scopeLabel(e.Scope), e.Err)
}

func (e *ListenerError) Unwrap() error { return e.Err }

// IsListenerFailure reports whether err contains a *ListenerError.
func IsListenerFailure(err error) bool {
	var le *ListenerError
	return errors.As(err, &le)
}
