package extension

import "github.com/bitosaur/emlee/pkg/extension/event"

// Host defines the extension points of the viewer.
type Host struct {
	Events *Events
}

// Events defines the event types extensions may hook.
//
// The before-event runs synchronously inside the open operation; the first
// listener returning a non-nil value decides the outcome and later
// listeners are skipped.  After-events run asynchronously and cannot
// influence the viewer.
type Events struct {
	AfterMessageOpened    AsyncEventBroker[event.MessageOpened]
	BeforeAttachmentWrite EventBroker[event.AttachmentWrite, event.AttachmentWrite]
}

// NewHost creates an extension host with no listeners.
func NewHost() *Host {
	return &Host{Events: &Events{}}
}
