// Package test provides helpers shared by Emlee package tests.
package test

import (
	"fmt"

	"github.com/bitosaur/emlee/pkg/email"
)

// StubContainer implements email.ContainerReader over canned sources keyed
// by path, standing in for a real `.msg` decoder.
type StubContainer struct {
	Sources map[string]*email.Source
	Err     error
}

// Read returns the canned source for path.
func (c *StubContainer) Read(path string) (*email.Source, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	src, ok := c.Sources[path]
	if !ok {
		return nil, fmt.Errorf("no stub source for %q", path)
	}
	return src, nil
}

var _ email.ContainerReader = &StubContainer{}
