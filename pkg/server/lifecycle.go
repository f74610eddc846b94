// Package server wires the viewer core to its long-running services.
package server

import (
	"context"

	"github.com/bitosaur/emlee/pkg/attachment"
	"github.com/bitosaur/emlee/pkg/config"
	"github.com/bitosaur/emlee/pkg/email"
	"github.com/bitosaur/emlee/pkg/extension"
	"github.com/bitosaur/emlee/pkg/extension/luahost"
	"github.com/bitosaur/emlee/pkg/msghub"
	"github.com/bitosaur/emlee/pkg/server/web"
	"github.com/bitosaur/emlee/pkg/stringutil"
	"github.com/bitosaur/emlee/pkg/viewer"
	"github.com/bitosaur/emlee/pkg/webui"
	"github.com/rs/zerolog/log"
)

// Services holds the configured and started services.
type Services struct {
	ExtHost *extension.Host
	LuaHost *luahost.Host
	Manager viewer.Manager
	MsgHub  *msghub.Hub
}

// Prod wires up the production Emlee environment.
func Prod(rootCtx context.Context, shutdownChan chan bool, conf *config.Root) (*Services, error) {
	extHost := extension.NewHost()

	luaHost, err := luahost.New(log.Logger, conf.Lua, extHost)
	if err != nil {
		return nil, err
	}

	msgHub := msghub.New(conf.Viewer.MonitorHistory, extHost)
	go msgHub.Start(rootCtx)

	materializer, err := attachment.New(conf.Viewer.AttachmentDir)
	if err != nil {
		return nil, err
	}

	manager := &viewer.Session{
		Normalizer:   &email.Normalizer{Container: email.Container()},
		Materializer: materializer,
		ExtHost:      extHost,
	}

	// Configure routes and start HTTP server.
	prefix := stringutil.MakePathPrefixer(conf.Web.BasePath)
	webui.SetupRoutes(web.Router.PathPrefix(prefix("/api/")).Subrouter())
	web.Initialize(conf, shutdownChan, manager, msgHub)
	go web.Start(rootCtx)

	return &Services{
		ExtHost: extHost,
		LuaHost: luaHost,
		Manager: manager,
		MsgHub:  msgHub,
	}, nil
}
