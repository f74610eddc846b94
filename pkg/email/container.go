package email

import "sync"

// ContainerReader decodes a proprietary compound-document email container
// (a `.msg` file) into the same Source shape the MIME reader produces.
//
// Implementations must deliver body candidates already decoded to text,
// and must prefer an attachment's long/display filename over its short
// name when the container carries both.
type ContainerReader interface {
	Read(path string) (*Source, error)
}

var (
	containerMu sync.RWMutex
	container   ContainerReader
)

// RegisterContainer installs a container decoder, typically from the init
// func of the package providing it.  Passing nil removes the decoder.
func RegisterContainer(r ContainerReader) {
	containerMu.Lock()
	defer containerMu.Unlock()
	container = r
}

// Container returns the registered container decoder, or nil when `.msg`
// support is unavailable in this build.
func Container() ContainerReader {
	containerMu.RLock()
	defer containerMu.RUnlock()
	return container
}
