// Package msghub relays message-opened events to monitor listeners, with a
// bounded replay history for late joiners.
package msghub

import (
	"container/ring"
	"context"

	"github.com/bitosaur/emlee/pkg/extension"
	"github.com/bitosaur/emlee/pkg/extension/event"
)

// Length of hub operation queue.
const opChanLen = 100

// Listener receives the contents of the history buffer, followed by new
// events.
type Listener interface {
	Receive(msg event.MessageOpened) error
}

// Hub relays open events on to its listeners.
type Hub struct {
	// History buffer; points at the next slot to write, the following
	// non-nil entry is the oldest event.
	history   *ring.Ring
	listeners map[Listener]struct{}
	opChan    chan func(h *Hub) // operations queued for this actor
}

// New constructs a Hub caching historyLen events for playback to future
// listeners, fed by the extension host's AfterMessageOpened event.  Call
// Start to begin processing.
func New(historyLen int, extHost *extension.Host) *Hub {
	hub := &Hub{
		history:   ring.New(historyLen),
		listeners: make(map[Listener]struct{}),
		opChan:    make(chan func(h *Hub), opChanLen),
	}

	extHost.Events.AfterMessageOpened.AddListener("msghub",
		func(msg event.MessageOpened) {
			hub.Dispatch(msg)
		})

	return hub
}

// Start runs the Hub processing loop until ctx is canceled.
func (hub *Hub) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(hub.opChan)
			return
		case op := <-hub.opChan:
			op(hub)
		}
	}
}

// Dispatch queues an event for broadcast.  It is placed into the history
// buffer and relayed to all registered listeners.
func (hub *Hub) Dispatch(msg event.MessageOpened) {
	hub.opChan <- func(h *Hub) {
		if h.history != nil {
			h.history.Value = msg
			h.history = h.history.Next()

			// Deliver to all listeners, dropping those that error.
			for l := range h.listeners {
				if err := l.Receive(msg); err != nil {
					delete(h.listeners, l)
				}
			}
		}
	}
}

// AddListener registers a listener; it first receives the replay history.
func (hub *Hub) AddListener(l Listener) {
	hub.opChan <- func(h *Hub) {
		h.history.Do(func(v interface{}) {
			if v != nil {
				_ = l.Receive(v.(event.MessageOpened))
			}
		})

		h.listeners[l] = struct{}{}
	}
}

// RemoveListener deletes a listener registration.
func (hub *Hub) RemoveListener(l Listener) {
	hub.opChan <- func(h *Hub) {
		delete(h.listeners, l)
	}
}

// Sync blocks until the hub has processed its queue up to this point,
// useful for unit tests.
func (hub *Hub) Sync() {
	done := make(chan struct{})
	hub.opChan <- func(h *Hub) {
		close(done)
	}
	<-done
}
