package webui

import (
	"net/http"

	"github.com/bitosaur/emlee/pkg/config"
	"github.com/bitosaur/emlee/pkg/metric"
	"github.com/bitosaur/emlee/pkg/server/web"
)

type jsonServerStatus struct {
	Version       string `json:"version"`
	BuildDate     string `json:"build-date"`
	WebListener   string `json:"web-listener"`
	AttachmentDir string `json:"attachment-dir"`
	LuaPath       string `json:"lua-path"`
	OpenedTotal   int64  `json:"opened-total"`
}

// Status outputs the server build and runtime counters as JSON for the UI.
func Status(w http.ResponseWriter, req *http.Request, ctx *web.Context) error {
	return web.RenderJSON(w, &jsonServerStatus{
		Version:       config.Version,
		BuildDate:     config.BuildDate,
		WebListener:   ctx.WebConfig.Addr,
		AttachmentDir: ctx.RootConfig.Viewer.AttachmentDir,
		LuaPath:       ctx.RootConfig.Lua.Path,
		OpenedTotal:   metric.ExpOpenedTotal.Value(),
	})
}
