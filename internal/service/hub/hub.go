package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"RugGuard/internal/domain/models"
	applogger "RugGuard/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// ErrClosed is returned by Emit after Close.
var ErrClosed = errors.New("hub closed")

type client struct {
	session string
	conn    *websocket.Conn
	send    chan []byte
}

type outbound struct {
	session string
	payload []byte
}

// Hub streams diagnostics over websocket to the browser session whose action
// produced them. A single goroutine owns the client set; slow clients are
// dropped.
type Hub struct {
	log      *applogger.Logger
	upgrader websocket.Upgrader
	buffer   int

	register   chan *client
	unregister chan *client
	broadcast  chan outbound
	done       chan struct{}

	clients int64

	// mu orders wg.Add against Close so no pump starts after Close returns.
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// New starts a hub. buffer bounds both the broadcast queue and each
// client's send queue.
func New(l *applogger.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = 64
	}
	h := &Hub{
		log:        l,
		buffer:     buffer,
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan outbound, buffer),
		done:       make(chan struct{}),
	}
	h.wg.Add(1)
	go h.run()
	return h
}

func (h *Hub) Name() string { return "websocket" }

// Emit queues d for the clients of d.Session. Diagnostics without a session
// have no browser to go to and are skipped.
func (h *Hub) Emit(ctx context.Context, d models.Diagnostic) error {
	select {
	case <-h.done:
		return ErrClosed
	default:
	}
	if d.Session == "" {
		return nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal diagnostic: %w", err)
	}
	select {
	case h.broadcast <- outbound{session: d.Session, payload: b}:
		return nil
	case <-h.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Clients reports the number of registered clients.
func (h *Hub) Clients() int {
	return int(atomic.LoadInt64(&h.clients))
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Hub) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/diagnostics", h.Serve)
}

// Serve upgrades the request and blocks until the client goes away. The
// request must carry a session id in its context.
func (h *Hub) Serve(c echo.Context) error {
	session := models.SessionFromContext(c.Request().Context())
	if session == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing session")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.log.Warn("websocket upgrade failed", applogger.Error(err))
		return nil
	}

	cl := &client{session: session, conn: conn, send: make(chan []byte, h.buffer)}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return nil
	}
	h.wg.Add(1)
	h.mu.Unlock()

	select {
	case h.register <- cl:
	case <-h.done:
		h.wg.Done()
		_ = conn.Close()
		return nil
	}
	go h.writePump(cl)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	select {
	case h.unregister <- cl:
	case <-h.done:
	}
	return nil
}

// Close disconnects all clients and stops the hub.
func (h *Hub) Close() error {
	h.mu.Lock()
	if !h.closed {
		h.closed = true
		close(h.done)
	}
	h.mu.Unlock()
	h.wg.Wait()
	return nil
}

func (h *Hub) run() {
	defer h.wg.Done()

	clients := make(map[*client]struct{})
	drop := func(c *client) {
		if _, ok := clients[c]; ok {
			delete(clients, c)
			close(c.send)
			atomic.StoreInt64(&h.clients, int64(len(clients)))
		}
	}

	for {
		select {
		case c := <-h.register:
			clients[c] = struct{}{}
			atomic.StoreInt64(&h.clients, int64(len(clients)))
		case c := <-h.unregister:
			drop(c)
		case msg := <-h.broadcast:
			for c := range clients {
				if c.session != msg.session {
					continue
				}
				select {
				case c.send <- msg.payload:
				default:
					h.log.Warn("websocket client too slow, dropping")
					drop(c)
				}
			}
		case <-h.done:
			for c := range clients {
				drop(c)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer h.wg.Done()
	defer c.conn.Close()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
