package web

import (
	"net/http"

	"github.com/bitosaur/emlee/pkg/config"
	"github.com/bitosaur/emlee/pkg/msghub"
	"github.com/bitosaur/emlee/pkg/viewer"
	"github.com/gorilla/mux"
)

// Context is passed into every request handler function.
type Context struct {
	Vars       map[string]string
	MsgHub     *msghub.Hub
	Manager    viewer.Manager
	RootConfig *config.Root
	WebConfig  config.Web
}

// Close the Context (currently does nothing).
func (c *Context) Close() {
	// Do nothing
}

// NewContext returns a Context for the given HTTP Request.
func NewContext(req *http.Request) (*Context, error) {
	vars := mux.Vars(req)
	ctx := &Context{
		Vars:       vars,
		MsgHub:     msgHub,
		Manager:    manager,
		RootConfig: rootConfig,
		WebConfig:  rootConfig.Web,
	}
	return ctx, nil
}
