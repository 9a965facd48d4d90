// Package realtime exposes the notification bus over a WebSocket endpoint.
// Each connection registers one bus observer; clients join and leave
// per-auction rooms with small JSON control messages and receive auction
// events as JSON frames.
package realtime

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/notionstudy21-cmd/AuctionHub/internal/bus"
	"github.com/notionstudy21-cmd/AuctionHub/utils"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Browser clients connect from a separately hosted frontend.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is a control frame sent by the client.
type clientMessage struct {
	Action    string `json:"action"`
	AuctionID string `json:"auction_id"`
}

// ackMessage confirms a join or leave back to the client.
type ackMessage struct {
	Type      string `json:"type"`
	AuctionID string `json:"auction_id"`
	RoomSize  int    `json:"room_size"`
}

// Handler bridges WebSocket connections to the bus.
type Handler struct {
	bus *bus.Bus
}

// NewHandler creates a WebSocket handler backed by the given bus.
func NewHandler(b *bus.Bus) *Handler {
	return &Handler{bus: b}
}

// Serve upgrades the request and pumps bus events to the client until it
// disconnects. Every connection immediately receives newAuction broadcasts;
// room-scoped events require a joinAuction message first.
func (h *Handler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		utils.Warn("websocket upgrade failed", map[string]any{"error": err.Error()})
		return
	}
	defer conn.Close()

	observerID := utils.GenerateID()
	events := h.bus.Register(observerID)
	defer h.bus.Unregister(observerID)

	utils.Info("websocket observer connected", map[string]any{
		"observer_id": observerID,
		"remote_addr": conn.RemoteAddr().String(),
	})

	// The write pump is the only goroutine writing to the connection; acks
	// from the read loop are routed through it.
	acks := make(chan ackMessage, 8)
	done := make(chan struct{})
	go h.writePump(conn, events, acks, done)

	h.readPump(conn, observerID, acks)

	close(done)
	utils.Info("websocket observer disconnected", map[string]any{"observer_id": observerID})
}

// readPump consumes control messages until the connection drops.
func (h *Handler) readPump(conn *websocket.Conn, observerID string, acks chan<- ackMessage) {
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				utils.Warn("websocket read failed", map[string]any{
					"observer_id": observerID,
					"error":       err.Error(),
				})
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.AuctionID == "" {
			continue
		}

		switch msg.Action {
		case "joinAuction":
			h.bus.Join(observerID, msg.AuctionID)
		case "leaveAuction":
			h.bus.Leave(observerID, msg.AuctionID)
		default:
			continue
		}

		select {
		case acks <- ackMessage{
			Type:      msg.Action + "Ack",
			AuctionID: msg.AuctionID,
			RoomSize:  h.bus.RoomSize(msg.AuctionID),
		}:
		default:
		}
	}
}

// writePump serializes bus events and acks onto the connection and keeps it
// alive with pings.
func (h *Handler) writePump(conn *websocket.Conn, events <-chan bus.Event, acks <-chan ackMessage, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case ack := <-acks:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ack); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
