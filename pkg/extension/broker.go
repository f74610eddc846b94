// Package extension allows external code to observe and influence the email
// viewer via typed event brokers.
package extension

import "sync"

type listener[F any] struct {
	name string
	fn   F
}

// EventBroker relays an event to listeners synchronously, in registration
// order, until one returns a non-nil result.  That result is returned to
// the emitter.
type EventBroker[E any, R any] struct {
	mu        sync.RWMutex
	listeners []listener[func(E) *R]
}

// Emit sends the event to each listener in order.  Listeners receive a
// copy, so only a returned result can influence the emitter.
func (eb *EventBroker[E, R]) Emit(event *E) *R {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, l := range eb.listeners {
		if result := l.fn(*event); result != nil {
			return result
		}
	}
	return nil
}

// AddListener registers the named listener, replacing a previous listener
// of the same name.  Register in order of priority, most significant first.
func (eb *EventBroker[E, R]) AddListener(name string, fn func(E) *R) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.listeners = removeNamed(eb.listeners, name)
	eb.listeners = append(eb.listeners, listener[func(E) *R]{name, fn})
}

// RemoveListener unregisters the named listener.
func (eb *EventBroker[E, R]) RemoveListener(name string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.listeners = removeNamed(eb.listeners, name)
}

func removeNamed[F any](ls []listener[F], name string) []listener[F] {
	for i, l := range ls {
		if l.name == name {
			return append(ls[:i], ls[i+1:]...)
		}
	}
	return ls
}
