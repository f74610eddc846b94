// Package web provides the plumbing for Emlee's HTTP shell and JSON API.
package web

import (
	"context"
	"expvar"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/bitosaur/emlee/pkg/config"
	"github.com/bitosaur/emlee/pkg/msghub"
	"github.com/bitosaur/emlee/pkg/viewer"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

var (
	// msgHub holds a reference to the open-event pub/sub system.
	msgHub  *msghub.Hub
	manager viewer.Manager

	// Router sends incoming requests to the correct handler function.
	Router = mux.NewRouter()

	rootConfig     *config.Root
	server         *http.Server
	listener       net.Listener
	globalShutdown chan bool
	handleOnce     sync.Once

	// ExpWebSocketConnectsCurrent tracks the number of open WebSockets.
	ExpWebSocketConnectsCurrent = new(expvar.Int)
)

func init() {
	m := expvar.NewMap("http")
	m.Set("WebSocketConnectsCurrent", ExpWebSocketConnectsCurrent)
}

// Initialize sets up things for unit tests or the Start() method.
func Initialize(
	conf *config.Root,
	shutdownChan chan bool,
	mm viewer.Manager,
	mh *msghub.Hub) {

	rootConfig = conf
	globalShutdown = shutdownChan
	msgHub = mh
	manager = mm

	Router.NotFoundHandler = noMatchHandler(
		http.StatusNotFound, "No route matches URI path")
	Router.MethodNotAllowedHandler = noMatchHandler(
		http.StatusMethodNotAllowed, "Method not allowed for URI path")
	handleOnce.Do(func() {
		http.Handle("/", requestLoggingWrapper(Router))
	})
}

// Start begins listening for HTTP requests.
func Start(ctx context.Context) {
	addr := rootConfig.Web.Addr
	slog := log.With().Str("module", "web").Str("phase", "startup").Logger()
	server = &http.Server{
		Addr:         addr,
		Handler:      nil,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	// We don't use ListenAndServe because it lacks a way to close the listener.
	slog.Info().Str("addr", addr).Msg("HTTP listening on tcp4")
	var err error
	listener, err = net.Listen("tcp", addr)
	if err != nil {
		slog.Error().Err(err).Msg("HTTP failed to start TCP4 listener")
		emergencyShutdown()
		return
	}

	// Listener go routine.
	go serve(ctx)

	// Wait for shutdown.
	<-ctx.Done()
	log.Debug().Str("module", "web").Str("phase", "shutdown").
		Msg("HTTP server shutting down on request")

	// Closing the listener will cause the serve() go routine to exit.
	if err := listener.Close(); err != nil {
		log.Error().Str("module", "web").Str("phase", "shutdown").Err(err).
			Msg("Failed to close HTTP listener")
	}
}

// serve begins serving HTTP requests.
func serve(ctx context.Context) {
	// server.Serve blocks until we close the listener.
	err := server.Serve(listener)

	select {
	case <-ctx.Done():
		// Nop
	default:
		log.Error().Str("module", "web").Err(err).Msg("HTTP server failed")
		emergencyShutdown()
	}
}

func emergencyShutdown() {
	select {
	case <-globalShutdown:
	default:
		close(globalShutdown)
	}
}
