package event

import "sort"

// entry is one registered (listener, scope) pair.
type entry struct {
	listener Listener
	scope    Scope
}

// registry maps event names to listeners in subscription order.
// A name present in the map always has at least one entry.
// It is not safe for concurrent use; Dispatcher guards it.
type registry struct {
	listeners map[Name][]entry
}

func newRegistry() *registry {
	return &registry{listeners: make(map[Name][]entry)}
}

// find returns the index of the first entry for name whose listener is l and,
// when scope is set, whose scope equals scope. It returns -1 when nothing matches.
func (r *registry) find(name Name, l Listener, scope Scope) int {
	matchScope := scopeSet(scope)
	for i, e := range r.listeners[name] {
		if !sameListener(e.listener, l) {
			continue
		}
		if !matchScope || equal(e.scope, scope) {
			return i
		}
	}
	return -1
}

func (r *registry) insert(name Name, l Listener, scope Scope) {
	r.listeners[name] = append(r.listeners[name], entry{listener: l, scope: scope})
}

// removeByScope drops every entry registered with scope and returns how many
// were removed. Names left without listeners are deleted.
func (r *registry) removeByScope(scope Scope) int {
	removed := 0
	for name, entries := range r.listeners {
		kept := make([]entry, 0, len(entries))
		for _, e := range entries {
			if equal(e.scope, scope) {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		switch {
		case len(kept) == 0:
			delete(r.listeners, name)
		case len(kept) != len(entries):
			r.listeners[name] = kept
		}
	}
	return removed
}

// listenersFor returns a copy of the entries for name.
func (r *registry) listenersFor(name Name) []entry {
	entries := r.listeners[name]
	if len(entries) == 0 {
		return nil
	}
	out := make([]entry, len(entries))
	copy(out, entries)
	return out
}

// byScope lists the (name, scope) pairs registered with scope, ordered by name
// and then subscription order.
func (r *registry) byScope(scope Scope) []Subscription {
	var out []Subscription
	for _, name := range r.names() {
		for _, e := range r.listeners[name] {
			if equal(e.scope, scope) {
				out = append(out, Subscription{Event: name, Scope: e.scope})
			}
		}
	}
	return out
}

func (r *registry) names() []Name {
	names := make([]Name, 0, len(r.listeners))
	for name := range r.listeners {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func (r *registry) countFor(name Name) int { return len(r.listeners[name]) }

func (r *registry) count() int {
	n := 0
	for _, entries := range r.listeners {
		n += len(entries)
	}
	return n
}
