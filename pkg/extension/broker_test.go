package extension_test

import (
	"testing"

	"github.com/bitosaur/emlee/pkg/extension"
	"github.com/bitosaur/emlee/pkg/extension/event"
	"github.com/stretchr/testify/assert"
)

func TestEmitNoListeners(t *testing.T) {
	eb := &extension.EventBroker[event.AttachmentWrite, event.AttachmentWrite]{}
	got := eb.Emit(&event.AttachmentWrite{FileName: "a.png"})
	assert.Nil(t, got)
}

func TestEmitFirstResultWins(t *testing.T) {
	eb := &extension.EventBroker[event.AttachmentWrite, event.AttachmentWrite]{}
	eb.AddListener("skip", func(event.AttachmentWrite) *event.AttachmentWrite {
		return nil
	})
	eb.AddListener("rename", func(aw event.AttachmentWrite) *event.AttachmentWrite {
		aw.FileName = "renamed-" + aw.FileName
		return &aw
	})
	called := false
	eb.AddListener("late", func(event.AttachmentWrite) *event.AttachmentWrite {
		called = true
		return nil
	})

	got := eb.Emit(&event.AttachmentWrite{FileName: "a.png"})
	if assert.NotNil(t, got) {
		assert.Equal(t, "renamed-a.png", got.FileName)
	}
	assert.False(t, called, "listeners after the deciding one should be skipped")
}

func TestAddListenerReplacesByName(t *testing.T) {
	eb := &extension.EventBroker[event.AttachmentWrite, event.AttachmentWrite]{}
	eb.AddListener("dup", func(event.AttachmentWrite) *event.AttachmentWrite {
		return &event.AttachmentWrite{FileName: "old"}
	})
	eb.AddListener("dup", func(event.AttachmentWrite) *event.AttachmentWrite {
		return &event.AttachmentWrite{FileName: "new"}
	})

	got := eb.Emit(&event.AttachmentWrite{})
	if assert.NotNil(t, got) {
		assert.Equal(t, "new", got.FileName)
	}
}

func TestRemoveListener(t *testing.T) {
	eb := &extension.EventBroker[event.AttachmentWrite, event.AttachmentWrite]{}
	eb.AddListener("only", func(event.AttachmentWrite) *event.AttachmentWrite {
		return &event.AttachmentWrite{}
	})
	eb.RemoveListener("only")
	assert.Nil(t, eb.Emit(&event.AttachmentWrite{}))
}
