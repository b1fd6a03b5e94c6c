package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"ocean-server/internal/dispatcher"
	"ocean-server/internal/ocean"
)

const (
	// ActionDisconnect is submitted by the hub when a connection goes away.
	ActionDisconnect = "disconnect"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second

	maxMessageSize = 64 << 10
)

// Submitter accepts inbound events for processing.
type Submitter interface {
	Submit(e dispatcher.Event) error
}

type Options struct {
	// SendBuffer is the number of outbound messages queued per connection.
	SendBuffer int
	// AllowedOrigins restricts browser origins; empty allows any.
	AllowedOrigins []string
}

// Hub tracks live connections and the rooms they are subscribed to. It
// implements ocean.Broadcaster.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	rooms   map[string]map[string]struct{}

	events     Submitter
	upgrader   websocket.Upgrader
	sendBuffer int
	log        zerolog.Logger
}

type client struct {
	id        string
	conn      *websocket.Conn
	send      chan []byte
	rooms     map[string]struct{}
	closeOnce sync.Once
}

// envelope is the frame shape in both directions.
type envelope struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type outbound struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

func NewHub(events Submitter, opts Options, log zerolog.Logger) *Hub {
	if opts.SendBuffer < 1 {
		opts.SendBuffer = 256
	}
	h := &Hub{
		clients:    make(map[string]*client),
		rooms:      make(map[string]map[string]struct{}),
		events:     events,
		sendBuffer: opts.SendBuffer,
		log:        log.With().Str("component", "ws").Logger(),
	}
	allowed := slices.Clone(opts.AllowedOrigins)
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return len(allowed) == 0 || origin == "" || slices.Contains(allowed, origin)
		},
	}
	return h
}

// HandleWS upgrades the request and serves the connection until it closes.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("remote", c.ClientIP()).Msg("websocket upgrade failed")
		return
	}

	cl := &client{
		id:    uuid.NewString(),
		conn:  conn,
		send:  make(chan []byte, h.sendBuffer),
		rooms: make(map[string]struct{}),
	}
	h.register(cl)
	h.log.Info().Str("conn", cl.id).Str("remote", c.ClientIP()).Msg("connection opened")

	go h.writePump(cl)
	h.Emit(cl.id, ocean.ActionConnected, gin.H{"sid": cl.id})
	h.readPump(cl)
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[cl.id] = cl
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[cl.id] != cl {
		return
	}
	delete(h.clients, cl.id)
	for code := range cl.rooms {
		h.leave(cl.id, code)
	}
	cl.closeOnce.Do(func() {
		close(cl.send)
	})
}

// leave must be called with mu held.
func (h *Hub) leave(connID, roomCode string) {
	members, ok := h.rooms[roomCode]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(h.rooms, roomCode)
	}
}

func (h *Hub) readPump(cl *client) {
	defer func() {
		h.unregister(cl)
		_ = cl.conn.Close()
		h.log.Info().Str("conn", cl.id).Msg("connection closed")
		if err := h.events.Submit(dispatcher.Event{Action: ActionDisconnect, ConnID: cl.id}); err != nil {
			h.log.Warn().Err(err).Str("conn", cl.id).Msg("disconnect not delivered")
		}
	}()

	cl.conn.SetReadLimit(maxMessageSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, message, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				h.log.Warn().Err(err).Str("conn", cl.id).Msg("websocket read failed")
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg envelope
		if err := json.Unmarshal(message, &msg); err != nil || msg.Action == "" {
			h.log.Debug().Str("conn", cl.id).Msg("malformed frame")
			h.Emit(cl.id, ocean.ActionInvalidRequest, "malformed message")
			continue
		}
		if msg.Action == ActionDisconnect {
			// reserved for the hub
			h.Emit(cl.id, ocean.ActionInvalidRequest, "unknown action: "+msg.Action)
			continue
		}

		err = h.events.Submit(dispatcher.Event{
			Action:    msg.Action,
			ConnID:    cl.id,
			Data:      msg.Data,
			Timestamp: time.Now(),
		})
		if errors.Is(err, dispatcher.ErrStopped) {
			return
		}
	}
}

func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()

	for {
		select {
		case message, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				h.log.Debug().Err(err).Str("conn", cl.id).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Join subscribes a connection to a room. Joining twice is harmless.
func (h *Hub) Join(connID, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cl, ok := h.clients[connID]
	if !ok {
		return
	}
	if h.rooms[roomCode] == nil {
		h.rooms[roomCode] = make(map[string]struct{})
	}
	h.rooms[roomCode][connID] = struct{}{}
	cl.rooms[roomCode] = struct{}{}
}

// Emit sends one message to a single connection. Unknown connections are
// ignored.
func (h *Hub) Emit(connID string, action string, data interface{}) {
	message, ok := h.encode(action, data)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if cl, ok := h.clients[connID]; ok {
		h.deliver(cl, action, message)
	}
}

// Broadcast sends one message to every member of a room.
func (h *Hub) Broadcast(roomCode string, action string, data interface{}) {
	message, ok := h.encode(action, data)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for connID := range h.rooms[roomCode] {
		if cl, ok := h.clients[connID]; ok {
			h.deliver(cl, action, message)
		}
	}
}

// CloseRoom unsubscribes every member of a room. Connections stay open.
func (h *Hub) CloseRoom(roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for connID := range h.rooms[roomCode] {
		if cl, ok := h.clients[connID]; ok {
			delete(cl.rooms, roomCode)
		}
	}
	delete(h.rooms, roomCode)
}

func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RoomSize reports how many connections are subscribed to a room.
func (h *Hub) RoomSize(roomCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomCode])
}

// Close drops every connection. Their read pumps then report the disconnects.
func (h *Hub) Close() {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for _, cl := range h.clients {
		conns = append(conns, cl.conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
}

// encode marshals the payload up front so it reflects the state at the time
// of the call, not at the time of the write.
func (h *Hub) encode(action string, data interface{}) ([]byte, bool) {
	message, err := json.Marshal(outbound{Action: action, Data: data})
	if err != nil {
		h.log.Error().Err(err).Str("action", action).Msg("failed to encode message")
		return nil, false
	}
	return message, true
}

// deliver must be called with mu held.
func (h *Hub) deliver(cl *client, action string, message []byte) {
	select {
	case cl.send <- message:
	default:
		h.log.Warn().Str("conn", cl.id).Str("action", action).Msg("send buffer full, message dropped")
	}
}
