package webui

import (
	"net/http"
	"time"

	"github.com/bitosaur/emlee/pkg/extension/event"
	"github.com/bitosaur/emlee/pkg/msghub"
	"github.com/bitosaur/emlee/pkg/server/web"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// options for gorilla connection upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// openListener relays open events from the msghub to one WebSocket client.
type openListener struct {
	hub *msghub.Hub
	c   chan *JSONMonitorEvent // Queue of incoming events.
}

// newOpenListener creates a listener and registers it with the hub.
func newOpenListener(hub *msghub.Hub) *openListener {
	ol := &openListener{
		hub: hub,
		c:   make(chan *JSONMonitorEvent, 100),
	}
	hub.AddListener(ol)
	return ol
}

// Receive handles an incoming open event.
func (ol *openListener) Receive(msg event.MessageOpened) error {
	// Enqueue for websocket.
	ol.c <- &JSONMonitorEvent{
		Variant: "message-opened",
		Opened: &JSONOpened{
			Path:        msg.Path,
			From:        msg.From,
			To:          msg.To,
			Subject:     msg.Subject,
			Date:        msg.Date,
			BodyIsHTML:  msg.BodyIsHTML,
			Attachments: msg.Attachments,
		},
	}

	return nil
}

// WSReader makes sure the websocket client is still connected, discards any messages from client
func (ol *openListener) WSReader(conn *websocket.Conn) {
	slog := log.With().Str("module", "webui").Str("proto", "WebSocket").
		Str("remote", conn.RemoteAddr().String()).Logger()
	defer ol.Close()

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		slog.Warn().Err(err).Msg("Failed to setup read deadline")
	}
	conn.SetPongHandler(func(string) error {
		slog.Debug().Msg("Got pong")
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			slog.Warn().Err(err).Msg("Failed to set read deadline in pong")
		}
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				// Unexpected close code
				slog.Warn().Err(err).Msg("Socket error")
			} else {
				slog.Debug().Msg("Closing socket")
			}
			break
		}
	}
}

// WSWriter makes sure the websocket client is still connected
func (ol *openListener) WSWriter(conn *websocket.Conn) {
	slog := log.With().Str("module", "webui").Str("proto", "WebSocket").
		Str("remote", conn.RemoteAddr().String()).Logger()

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ol.Close()
	}()

	// Handle messages from hub until openListener is closed
	for {
		select {
		case event, ok := <-ol.c:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				slog.Warn().Err(err).Msg("Failed to set write deadline for msg")
			}
			if !ok {
				// openListener closed, exit
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if conn.WriteJSON(event) != nil {
				// Write failed
				return
			}
		case <-ticker.C:
			// Send ping
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				slog.Warn().Err(err).Msg("Failed to set write deadline for ping")
			}
			if conn.WriteMessage(websocket.PingMessage, []byte{}) != nil {
				// Write error
				return
			}
			slog.Debug().Msg("Sent ping")
		}
	}
}

// Close removes the listener registration
func (ol *openListener) Close() {
	select {
	case <-ol.c:
		// Already closed
	default:
		ol.hub.RemoveListener(ol)
		close(ol.c)
	}
}

// MonitorOpens is a web handler which upgrades the connection to a websocket
// and notifies the client of each opened email.
func MonitorOpens(w http.ResponseWriter, req *http.Request, ctx *web.Context) error {
	// Upgrade to Websocket.
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		return err
	}
	web.ExpWebSocketConnectsCurrent.Add(1)
	defer func() {
		_ = conn.Close()
		web.ExpWebSocketConnectsCurrent.Add(-1)
	}()
	log.Debug().Str("module", "webui").Str("proto", "WebSocket").
		Str("remote", conn.RemoteAddr().String()).Msg("Upgraded to WebSocket")
	// Create, register listener; then interact with conn.
	ol := newOpenListener(ctx.MsgHub)
	go ol.WSWriter(conn)
	ol.WSReader(conn)
	return nil
}
