// Package ws delivers real-time notifications to caregiver clients over
// WebSockets. Each connection is bound to the authenticated caregiver and
// subscribed to that caregiver's channel; notification producers broadcast
// into the channel and every open session for the caregiver receives the
// message.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	gorillawebsocket "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/caresense/caresense/internal/platform/auth"
)

// Message is the wire frame pushed to connected clients.
type Message struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Client represents a single caregiver WebSocket session.
type Client struct {
	CaregiverID uuid.UUID
	Send        chan []byte
}

// Hub tracks open client sessions per caregiver. A caregiver may hold
// several sessions at once (phone and laptop); each receives every message.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]struct{}
	logger  zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client session for its caregiver.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[client.CaregiverID] == nil {
		h.clients[client.CaregiverID] = make(map[*Client]struct{})
	}
	h.clients[client.CaregiverID][client] = struct{}{}
}

// Unregister removes a client session and closes its Send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	sessions, ok := h.clients[client.CaregiverID]
	if !ok {
		return
	}
	if _, ok := sessions[client]; !ok {
		return
	}
	delete(sessions, client)
	if len(sessions) == 0 {
		delete(h.clients, client.CaregiverID)
	}
	close(client.Send)
}

// Broadcast sends a message to every open session for the caregiver. Delivery
// is best-effort: a session whose buffer is full misses the message rather
// than blocking the producer.
func (h *Hub) Broadcast(caregiverID uuid.UUID, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Msg("marshal websocket message")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[caregiverID] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn().
				Str("caregiver_id", caregiverID.String()).
				Msg("websocket client buffer full, dropping message")
		}
	}
}

// SessionCount returns the number of open sessions for a caregiver.
func (h *Hub) SessionCount(caregiverID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[caregiverID])
}

var upgrader = gorillawebsocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins; tighten in production.
	},
}

// Handler upgrades authenticated HTTP requests to WebSocket sessions.
type Handler struct {
	hub *Hub
	// OnConnect and OnDisconnect let the notification layer attach and
	// detach per-caregiver listeners as sessions come and go.
	OnConnect    func(caregiverID uuid.UUID)
	OnDisconnect func(caregiverID uuid.UUID)
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// RegisterRoutes registers the WebSocket endpoint on the provided Echo group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/ws", h.HandleConnect)
}

// HandleConnect binds the session to the authenticated caller and starts the
// read and write pumps.
func (h *Handler) HandleConnect(c echo.Context) error {
	caregiverID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		CaregiverID: caregiverID,
		Send:        make(chan []byte, 64),
	}
	h.hub.Register(client)
	if h.OnConnect != nil {
		h.OnConnect(caregiverID)
	}

	go h.writePump(client, conn)
	go h.readPump(client, conn)

	return nil
}

// readPump drains inbound frames until the peer closes the connection. The
// protocol is push-only, so inbound payloads are discarded.
func (h *Handler) readPump(client *Client, conn *gorillawebsocket.Conn) {
	defer func() {
		h.hub.Unregister(client)
		conn.Close()
		if h.OnDisconnect != nil {
			h.OnDisconnect(client.CaregiverID)
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Handler) writePump(client *Client, conn *gorillawebsocket.Conn) {
	defer conn.Close()
	for message := range client.Send {
		if err := conn.WriteMessage(gorillawebsocket.TextMessage, message); err != nil {
			break
		}
	}
}
