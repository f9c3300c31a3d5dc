package httpapi

import (
	"encoding/json"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"splashd/internal/event"
	"splashd/pkg/types"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// Message types exchanged over the websocket.
const (
	wsSubscribe  = "subscribe"
	wsBroadcast  = "broadcast"
	wsEvent      = "event"
	wsSubscribed = "subscribed"
	wsError      = "error"
)

// wsHandler bridges dispatcher events to websocket clients. Every connection
// subscribes with its own uuid as scope and unsubscribes that scope when it
// goes away.
type wsHandler struct {
	svc      Service
	upgrader websocket.Upgrader
}

func newWSHandler(svc Service) *wsHandler {
	return &wsHandler{
		svc: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// checkOrigin accepts requests without Origin, same-host origins and, when
// CORS is enabled, the configured origins.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if corsEnabled && (slices.Contains(corsAllowedOrigins, "*") || slices.Contains(corsAllowedOrigins, origin)) {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if !strings.EqualFold(u.Host, r.Host) {
		l := logger()
		l.Warn().Str("origin", origin).Msg("ws: origin rejected")
		return false
	}
	return true
}

// ServeHTTP godoc
// @Summary      Event stream
// @Description  Websocket. Forwards the events listed in ?events= and accepts subscribe/broadcast messages.
// @Tags         events
// @Param        events  query  string  false  "Comma separated event names"
// @Success      101
// @Router       /events/ws [get]
func (h *wsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader already replied.
		l := logger()
		l.Debug().Err(err).Msg("ws: upgrade failed")
		return
	}

	c := &wsConn{
		id:   uuid.NewString(),
		conn: conn,
		svc:  h.svc,
		bus:  h.svc.Dispatcher(),
		send: make(chan types.WsMessage, wsSendBuffer),
		done: make(chan struct{}),
		subs: make(map[event.Name]bool),
	}
	c.log = logger().With().Str("conn", c.id).Logger()
	wsConnections.Inc()
	c.log.Debug().Str("remote", r.RemoteAddr).Msg("ws: connected")

	for _, name := range splitEvents(r.URL.Query().Get("events")) {
		c.subscribe(name)
	}

	go func() {
		select {
		case <-serverBaseCtx.Done():
			c.close()
		case <-c.done:
		}
	}()
	go c.writePump()
	go c.readPump()
}

func splitEvents(s string) []event.Name {
	var out []event.Name
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, event.Name(p))
		}
	}
	return out
}

type wsConn struct {
	id   string
	conn *websocket.Conn
	svc  Service
	bus  *event.Dispatcher
	log  zerolog.Logger

	send chan types.WsMessage
	done chan struct{}
	once sync.Once

	// subs is only touched by the handler goroutine and then the read pump.
	subs map[event.Name]bool
}

// subscribe registers a forwarder for name. It reports false when the
// connection is already closed; close may run on another goroutine, so a
// subscription that lands after it is removed again.
func (c *wsConn) subscribe(name event.Name) bool {
	if c.closed() {
		return false
	}
	if c.subs[name] {
		c.enqueue(types.WsMessage{Type: wsSubscribed, Event: name.String()})
		return true
	}
	if err := c.bus.Subscribe(name, c.forwarder(name), c.id); err != nil {
		c.enqueue(types.WsMessage{Type: wsError, Event: name.String(), Error: err.Error()})
		return true
	}
	if c.closed() {
		c.bus.UnsubscribeScope(c.id)
		return false
	}
	c.subs[name] = true
	c.enqueue(types.WsMessage{Type: wsSubscribed, Event: name.String()})
	return true
}

func (c *wsConn) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// forwarder queues the payload for the write pump. It never blocks the
// broadcaster; a full queue drops the event.
func (c *wsConn) forwarder(name event.Name) event.ListenerFunc {
	return func(p event.Payload, _ event.Scope) error {
		// Other listeners may still mutate p after we return.
		if !c.enqueue(types.WsMessage{Type: wsEvent, Event: name.String(), Payload: maps.Clone(p)}) {
			wsDroppedTotal.WithLabelValues(name.String()).Inc()
			c.log.Warn().Str("event", name.String()).Msg("ws: send queue full, event dropped")
		}
		return nil
	}
}

// enqueue reports false when the message could not be queued.
func (c *wsConn) enqueue(msg types.WsMessage) bool {
	if c.closed() {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *wsConn) close() {
	c.once.Do(func() {
		removed := c.bus.UnsubscribeScope(c.id)
		close(c.done)
		_ = c.conn.Close()
		wsConnections.Dec()
		c.log.Debug().Int("unsubscribed", removed).Msg("ws: disconnected")
	})
}

func (c *wsConn) readPump() {
	defer func() {
		c.close()
		// Catches a subscribe that raced with close from another goroutine.
		c.bus.UnsubscribeScope(c.id)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn().Err(err).Msg("ws: client disconnected unexpectedly")
			}
			return
		}

		var msg types.WsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.enqueue(types.WsMessage{Type: wsError, Error: "invalid JSON message"})
			continue
		}

		switch msg.Type {
		case wsSubscribe:
			c.subscribe(event.Name(msg.Event))
		case wsBroadcast:
			if _, err := c.svc.Publish(event.Name(msg.Event), msg.Payload); err != nil {
				c.enqueue(types.WsMessage{Type: wsError, Event: msg.Event, Error: err.Error()})
			}
		default:
			c.enqueue(types.WsMessage{Type: wsError, Error: "unknown message type " + msg.Type})
		}
	}
}

func (c *wsConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return

		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
