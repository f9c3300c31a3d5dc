// Package event implements the in-process publish/subscribe dispatcher shared
// by splash and game lifecycle components.
//
// Listeners are registered per event Name together with an optional Scope.
// The scope is an opaque, comparable value (usually the owning component's
// pointer or an id string) that is only ever compared: UnsubscribeScope removes
// every listener registered with it across all event names in one call.
//
// Delivery is synchronous. Broadcast snapshots the listener list for the event,
// releases the registry lock, and invokes the listeners in subscription order on
// the calling goroutine. Listeners may subscribe or unsubscribe while a
// broadcast is running; the change applies to the next broadcast only.
//
// Failure handling is selected per dispatcher:
//
//   - FailFast (default): the first listener error stops delivery and is
//     returned as a *ListenerError. Panics are not recovered.
//   - Isolate: every listener runs; errors and recovered panics are joined and
//     returned after the fan-out completes.
//
// A Dispatcher is constructed once by the composition root and handed to every
// component that needs it. There is no package-level instance.
package event
