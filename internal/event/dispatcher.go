package event

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Subscription describes one registered listener for diagnostics.
type Subscription struct {
	Event Name
	Scope Scope
}

// Stats is a point-in-time view of the registry.
type Stats struct {
	// Events maps each event name to its listener count.
	Events    map[Name]int
	Listeners int
}

// Dispatcher delivers broadcasts to the listeners subscribed for an event name.
// It is safe for concurrent use.
type Dispatcher struct {
	mu  sync.Mutex
	reg *registry

	log     zerolog.Logger
	policy  FailurePolicy
	metrics bool
}

// New constructs an empty Dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		reg:     newRegistry(),
		log:     zerolog.Nop(),
		policy:  FailFast,
		metrics: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Policy returns the dispatcher's failure policy.
func (d *Dispatcher) Policy() FailurePolicy { return d.policy }

// Subscribe registers l for name under scope. Subscribing a listener that is
// already registered for name (with the same scope, when scope is set) does
// nothing.
func (d *Dispatcher) Subscribe(name Name, l Listener, scope Scope) error {
	if name == "" {
		return fmt.Errorf("subscribe: empty event name: %w", ErrInvalidArgument)
	}
	if !invocable(l) {
		return fmt.Errorf("subscribe %q: listener must be callable: %w", name, ErrInvalidArgument)
	}
	if !comparableScope(scope) {
		return fmt.Errorf("subscribe %q: scope of type %T is not comparable: %w", name, scope, ErrInvalidArgument)
	}

	d.mu.Lock()
	if d.reg.find(name, l, scope) >= 0 {
		d.mu.Unlock()
		d.log.Debug().Str("event", name.String()).Str("scope", scopeLabel(scope)).Msg("event: duplicate subscription ignored")
		return nil
	}
	d.reg.insert(name, l, scope)
	d.mu.Unlock()

	if d.metrics {
		listenersGauge.Inc()
	}
	return nil
}

// UnsubscribeScope removes every listener registered with scope, across all
// event names, and returns how many were removed. Unknown scopes are a no-op.
func (d *Dispatcher) UnsubscribeScope(scope Scope) int {
	d.mu.Lock()
	removed := d.reg.removeByScope(scope)
	d.mu.Unlock()

	if removed > 0 {
		if d.metrics {
			listenersGauge.Sub(float64(removed))
		}
		d.log.Debug().Str("scope", scopeLabel(scope)).Int("removed", removed).Msg("event: scope unsubscribed")
	}
	return removed
}

// Broadcast delivers payload to the listeners of name, in subscription order,
// on the calling goroutine.
//
// The payload is normalized in place: a nil payload becomes an empty one, and
// a missing or empty "name" entry is set to name. The normalized payload is
// returned. An empty name or a name without listeners is a no-op.
//
// The listener list is fixed before the first listener runs. With FailFast the
// first listener error ends delivery and is returned as a *ListenerError; a
// listener panic propagates to the caller. With Isolate all listeners run and
// their failures are joined.
func (d *Dispatcher) Broadcast(name Name, payload Payload) (Payload, error) {
	if name == "" {
		return payload, nil
	}

	d.mu.Lock()
	snapshot := d.reg.listenersFor(name)
	d.mu.Unlock()
	if len(snapshot) == 0 {
		return payload, nil
	}

	if payload == nil {
		payload = Payload{}
	}
	switch v := payload["name"].(type) {
	case nil:
		payload["name"] = string(name)
	case string:
		if v == "" {
			payload["name"] = string(name)
		}
	}

	if d.metrics {
		broadcastsTotal.WithLabelValues(name.String()).Inc()
	}
	if d.policy == Isolate {
		return payload, d.deliverIsolated(name, payload, snapshot)
	}

	for i, e := range snapshot {
		if err := e.listener.Handle(payload, e.scope); err != nil {
			d.countFailure(name)
			return payload, &ListenerError{Event: name, Index: i, Scope: e.scope, Err: err}
		}
		d.countDelivery(name)
	}
	return payload, nil
}

func (d *Dispatcher) deliverIsolated(name Name, payload Payload, snapshot []entry) error {
	var errs []error
	for i, e := range snapshot {
		recovered, err := callIsolated(e, payload)
		if err == nil {
			d.countDelivery(name)
			continue
		}
		d.countFailure(name)
		lerr := &ListenerError{Event: name, Index: i, Scope: e.scope, Err: err, Panic: recovered}
		d.log.Warn().Err(err).Str("event", name.String()).Int("listener", i).Bool("panic", recovered != nil).Msg("event: listener failed")
		errs = append(errs, lerr)
	}
	return errors.Join(errs...)
}

func callIsolated(e entry, payload Payload) (recovered any, err error) {
	defer func() {
		if r := recover(); r != nil {
			recovered = r
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return nil, e.listener.Handle(payload, e.scope)
}

func (d *Dispatcher) countDelivery(name Name) {
	if d.metrics {
		deliveriesTotal.WithLabelValues(name.String()).Inc()
	}
}

func (d *Dispatcher) countFailure(name Name) {
	if d.metrics {
		listenerFailuresTotal.WithLabelValues(name.String()).Inc()
	}
}

// PrintScope lists and logs (at debug level) the subscriptions registered with
// scope. It does not change the registry.
func (d *Dispatcher) PrintScope(scope Scope) []Subscription {
	d.mu.Lock()
	subs := d.reg.byScope(scope)
	d.mu.Unlock()

	for _, s := range subs {
		d.log.Debug().Str("event", s.Event.String()).Str("scope", scopeLabel(s.Scope)).Msg("event: subscription")
	}
	return subs
}

// Stats reports listener counts per event name.
func (d *Dispatcher) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	st := Stats{Events: make(map[Name]int, len(d.reg.listeners)), Listeners: d.reg.count()}
	for _, name := range d.reg.names() {
		st.Events[name] = d.reg.countFor(name)
	}
	return st
}
