package event

import "github.com/rs/zerolog"

// FailurePolicy decides what Broadcast does when a listener fails.
type FailurePolicy int

const (
	// FailFast stops delivery at the first listener error. Panics propagate to
	// the broadcaster.
	FailFast FailurePolicy = iota
	// Isolate keeps delivering after a listener error or panic and returns all
	// failures joined together.
	Isolate
)

func (p FailurePolicy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case Isolate:
		return "isolate"
	default:
		return "unknown"
	}
}

// ParseFailurePolicy maps "fail-fast" / "isolate" to a policy. Anything else,
// including "", yields FailFast.
func ParseFailurePolicy(s string) FailurePolicy {
	if s == "isolate" {
		return Isolate
	}
	return FailFast
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger installs a structured logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// WithFailurePolicy selects how listener failures are handled.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(d *Dispatcher) { d.policy = p }
}

// WithMetrics toggles Prometheus instrumentation (on by default).
func WithMetrics(enabled bool) Option {
	return func(d *Dispatcher) { d.metrics = enabled }
}
