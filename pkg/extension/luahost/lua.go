// Package luahost loads a Lua extension script and wires its handler
// functions to the viewer's extension events.
package luahost

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/bitosaur/emlee/pkg/config"
	"github.com/bitosaur/emlee/pkg/extension"
	"github.com/bitosaur/emlee/pkg/extension/event"
	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// Host of Lua extensions.
type Host struct {
	extHost    *extension.Host
	pool       *statePool
	logContext zerolog.Context
}

// New constructs a new Lua Host, pre-compiling the script named by conf.
// Returns nil without error when no script file is present.
func New(logger zerolog.Logger, conf config.Lua, extHost *extension.Host) (*Host, error) {
	scriptPath := conf.Path
	if scriptPath == "" {
		return nil, nil
	}

	logContext := logger.With().Str("module", "lua")
	slog := logContext.Str("phase", "startup").Str("path", scriptPath).Logger()

	if fi, err := os.Stat(scriptPath); err != nil {
		slog.Info().Msg("Script file not found")
		return nil, nil
	} else if fi.IsDir() {
		return nil, fmt.Errorf("lua script %v is a directory", scriptPath)
	}

	slog.Info().Msg("Loading script")
	file, err := os.Open(scriptPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return NewFromReader(logger, extHost, bufio.NewReader(file), scriptPath)
}

// NewFromReader constructs a new Lua Host, loading Lua source from the
// provided reader.  The path is used in logging and error messages.
func NewFromReader(logger zerolog.Logger, extHost *extension.Host, r io.Reader, path string) (*Host, error) {
	logContext := logger.With().Str("module", "lua")

	chunk, err := parse.Parse(r, path)
	if err != nil {
		return nil, err
	}
	proto, err := lua.Compile(chunk, path)
	if err != nil {
		return nil, err
	}

	// Build the pool and confirm an LState is obtainable; this also runs
	// the script once, surfacing runtime errors at startup.
	pool := newStatePool(logContext.Logger(), proto)
	h := &Host{extHost: extHost, pool: pool, logContext: logContext}
	ls, err := pool.getState()
	if err != nil {
		return nil, err
	}
	pool.putState(ls)

	h.wireEvents()

	return h, nil
}

// CreateChannel creates a channel and places it into the named global
// variable in newly created LStates.
func (h *Host) CreateChannel(name string) chan lua.LValue {
	return h.pool.createChannel(name)
}

func (h *Host) wireEvents() {
	events := h.extHost.Events
	events.AfterMessageOpened.AddListener("lua", h.handleMessageOpened)
	events.BeforeAttachmentWrite.AddListener("lua", h.handleAttachmentWrite)
}

func (h *Host) handleMessageOpened(msg event.MessageOpened) {
	slog := h.logContext.Str("event", "message_opened").Logger()
	ls, err := h.pool.getState()
	if err != nil {
		slog.Error().Err(err).Msg("Failed to obtain Lua state")
		return
	}
	defer h.pool.putState(ls)

	emlee, err := getEmlee(ls)
	if err != nil {
		slog.Error().Err(err).Msg("Failed to access emlee global")
		return
	}
	fn := emlee.After.MessageOpened
	if fn == nil {
		return
	}

	if err := ls.CallByParam(
		lua.P{Fn: fn, NRet: 0, Protect: true},
		wrapMessageOpened(ls, &msg),
	); err != nil {
		slog.Error().Err(err).Msg("Lua handler failed")
	}
}

func (h *Host) handleAttachmentWrite(aw event.AttachmentWrite) *event.AttachmentWrite {
	slog := h.logContext.Str("event", "attachment_write").Logger()
	ls, err := h.pool.getState()
	if err != nil {
		slog.Error().Err(err).Msg("Failed to obtain Lua state")
		return nil
	}
	defer h.pool.putState(ls)

	emlee, err := getEmlee(ls)
	if err != nil {
		slog.Error().Err(err).Msg("Failed to access emlee global")
		return nil
	}
	fn := emlee.Before.AttachmentWrite
	if fn == nil {
		return nil
	}

	if err := ls.CallByParam(
		lua.P{Fn: fn, NRet: 1, Protect: true},
		wrapAttachmentWrite(ls, &aw),
	); err != nil {
		slog.Error().Err(err).Msg("Lua handler failed")
		return nil
	}
	ret := ls.Get(-1)
	ls.Pop(1)
	if ret == lua.LNil {
		return nil
	}
	ud, ok := ret.(*lua.LUserData)
	if !ok {
		slog.Warn().Str("got", ret.Type().String()).
			Msg("attachment_write handler must return attachment_write or nil")
		return nil
	}
	val, ok := ud.Value.(*event.AttachmentWrite)
	if !ok {
		slog.Warn().Msg("attachment_write handler returned foreign userdata")
		return nil
	}

	// Copy; the LState owned value is recycled with the state.
	res := *val
	return &res
}
