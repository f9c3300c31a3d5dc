package event

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Scope groups listeners for bulk removal. Scopes are compared with == and are
// never called or dereferenced. nil (or an empty string) means "no scope".
type Scope = any

// Payload is the data handed to listeners. Broadcast guarantees a "name" entry.
type Payload map[string]any

// Name returns the payload's "name" entry, or "" when it is unset or not a string.
func (p Payload) Name() string {
	s, _ := p["name"].(string)
	return s
}

// Listener receives broadcast payloads together with the scope it was
// registered with.
type Listener interface {
	Handle(p Payload, scope Scope) error
}

// ListenerFunc adapts a plain function to Listener.
//
// Two ListenerFunc values are the same listener only when they are the same
// function value. Method values (obj.Method) and closures that capture
// variables create a new function value on every evaluation, so keep the value
// around if it has to be recognized again. A closure that captures nothing, like
// a top-level function, is one listener however often it is evaluated.
type ListenerFunc func(p Payload, scope Scope) error

// Handle calls f(p, scope).
func (f ListenerFunc) Handle(p Payload, scope Scope) error { return f(p, scope) }

// invocable reports whether l can be called.
func invocable(l Listener) bool {
	if l == nil {
		return false
	}
	if f, ok := l.(ListenerFunc); ok {
		return f != nil
	}
	v := reflect.ValueOf(l)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return !v.IsNil()
	}
	return true
}

// funcIdentity returns the address of the closure behind f.
func funcIdentity(f ListenerFunc) uintptr {
	return *(*uintptr)(unsafe.Pointer(&f))
}

func sameListener(a, b Listener) bool {
	fa, aok := a.(ListenerFunc)
	fb, bok := b.(ListenerFunc)
	if aok || bok {
		return aok && bok && funcIdentity(fa) == funcIdentity(fb)
	}
	return equal(a, b)
}

// equal compares two values with == and reports false instead of panicking on
// values that hold non-comparable parts.
func equal(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// scopeSet reports whether a lookup should also match on scope.
func scopeSet(s Scope) bool {
	if s == nil {
		return false
	}
	if str, ok := s.(string); ok {
		return str != ""
	}
	return true
}

// comparableScope reports whether s can ever be matched by UnsubscribeScope.
func comparableScope(s Scope) bool {
	if s == nil {
		return true
	}
	return reflect.TypeOf(s).Comparable()
}

// scopeLabel renders a scope for logs without dumping whole structs.
func scopeLabel(s Scope) string {
	switch v := s.(type) {
	case nil:
		return "<nil>"
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	if reflect.TypeOf(s).Kind() == reflect.Pointer {
		return fmt.Sprintf("%T(%p)", s, s)
	}
	return fmt.Sprintf("%v", s)
}
