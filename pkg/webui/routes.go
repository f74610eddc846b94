// Package webui powers Emlee's JSON API for display frontends.
package webui

import (
	"github.com/bitosaur/emlee/pkg/server/web"
	"github.com/gorilla/mux"
)

// SetupRoutes populates routes for the webui into the provided Router.
func SetupRoutes(r *mux.Router) {
	r.Path("/viewer/open").Handler(
		web.Handler(ViewerOpen)).Name("ViewerOpen").Methods("POST")
	r.Path("/viewer/current").Handler(
		web.Handler(ViewerCurrent)).Name("ViewerCurrent").Methods("GET")
	r.Path("/viewer/next").Handler(
		web.Handler(ViewerNext)).Name("ViewerNext").Methods("POST")
	r.Path("/viewer/previous").Handler(
		web.Handler(ViewerPrevious)).Name("ViewerPrevious").Methods("POST")
	r.Path("/viewer/source").Handler(
		web.Handler(ViewerSource)).Name("ViewerSource").Methods("GET")
	r.Path("/viewer/attachment/{file}").Handler(
		web.Handler(ViewerAttachment)).Name("ViewerAttachment").Methods("GET")
	r.Path("/monitor/opens").Handler(
		web.Handler(MonitorOpens)).Name("MonitorOpens").Methods("GET")
	r.Path("/status").Handler(
		web.Handler(Status)).Name("Status").Methods("GET")
}
