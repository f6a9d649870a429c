// internal/ws/hub.go
//
// Websocket hub: one socket per open browser tab, grouped by player.
// Outbound: feedback events (render, flash, sound, speak) as JSON text.
// Inbound: game.Input messages, e.g. {"kind":"key","key":"a"}.

package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"nhooyr.io/websocket"

	"github.com/robalobadob/spellbank/internal/feedback"
	"github.com/robalobadob/spellbank/internal/game"
)

const (
	sendBuffer   = 64
	pingInterval = 15 * time.Second
	writeTimeout = 5 * time.Second
)

type client struct {
	player string
	conn   *websocket.Conn
	send   chan []byte
}

// Hub tracks connected clients per player.
type Hub struct {
	allowOrigins []string

	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
}

// NewHub accepts cross-origin upgrades only from the listed host patterns
// (see websocket.AcceptOptions.OriginPatterns).
func NewHub(allowOrigins []string) *Hub {
	return &Hub{
		allowOrigins: allowOrigins,
		clients:      map[string]map[*client]struct{}{},
	}
}

// Publish implements feedback.Sink. Slow clients miss events.
func (h *Hub) Publish(player string, ev feedback.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	set := h.clients[player]
	if len(set) == 0 {
		return
	}
	msg, err := json.Marshal(ev)
	if err != nil {
		log.Warn().Err(err).Msg("ws marshal")
		return
	}
	for c := range set {
		select {
		case c.send <- msg:
		default:
		}
	}
}

// Count reports the open sockets for player.
func (h *Hub) Count(player string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[player])
}

// ServeWS upgrades the request and blocks until the socket closes. Each
// inbound input is passed to onInput on the reading goroutine.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, player string, onInput func(game.Input)) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.allowOrigins})
	if err != nil {
		log.Debug().Err(err).Msg("ws accept")
		return
	}
	c := &client{player: player, conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(c)
	log.Debug().Str("player", player).Msg("ws connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// writer
	go func() {
		ping := time.NewTicker(pingInterval)
		defer func() { ping.Stop(); _ = conn.Close(websocket.StatusNormalClosure, "bye") }()
		for {
			select {
			case msg, ok := <-c.send:
				if !ok {
					return
				}
				wctx, wcancel := context.WithTimeout(ctx, writeTimeout)
				err := conn.Write(wctx, websocket.MessageText, msg)
				wcancel()
				if err != nil {
					return
				}
			case <-ping.C:
				if err := conn.Ping(ctx); err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	// reader
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			break
		}
		in, err := game.ParseInput(data, "")
		if err != nil {
			log.Debug().Err(err).Str("player", player).Msg("ws input rejected")
			continue
		}
		onInput(in)
	}
	h.unregister(c)
	log.Debug().Str("player", player).Msg("ws disconnected")
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[c.player]
	if set == nil {
		set = map[*client]struct{}{}
		h.clients[c.player] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[c.player]; ok {
		if _, ok := set[c]; ok {
			delete(set, c)
			close(c.send)
		}
		if len(set) == 0 {
			delete(h.clients, c.player)
		}
	}
}
