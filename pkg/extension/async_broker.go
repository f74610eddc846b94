package extension

import (
	"errors"
	"sync"
	"time"
)

// AsyncEventBroker relays an event to all listeners in parallel; results
// are ignored.
type AsyncEventBroker[E any] struct {
	mu        sync.RWMutex
	listeners []listener[func(E)]
}

// Emit sends a copy of the event to each listener on its own goroutine.
func (eb *AsyncEventBroker[E]) Emit(event *E) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, l := range eb.listeners {
		go l.fn(*event)
	}
}

// AddListener registers the named listener, replacing a previous listener
// of the same name.
func (eb *AsyncEventBroker[E]) AddListener(name string, fn func(E)) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.listeners = removeNamed(eb.listeners, name)
	eb.listeners = append(eb.listeners, listener[func(E)]{name, fn})
}

// RemoveListener unregisters the named listener.
func (eb *AsyncEventBroker[E]) RemoveListener(name string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.listeners = removeNamed(eb.listeners, name)
}

// AsyncTestListener registers a capturing listener and returns a func that
// waits for the next event or times out.  Intended for tests.
func (eb *AsyncEventBroker[E]) AsyncTestListener(name string, capacity int) func() (*E, error) {
	events := make(chan E, capacity)
	eb.AddListener(name, func(e E) {
		events <- e
	})

	count := 0
	return func() (*E, error) {
		count++
		defer func() {
			if count >= capacity {
				eb.RemoveListener(name)
				close(events)
			}
		}()

		select {
		case e := <-events:
			return &e, nil
		case <-time.After(2 * time.Second):
			return nil, errors.New("timeout waiting for event")
		}
	}
}
