package realtime

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/notionstudy21-cmd/AuctionHub/internal/bus"
)

type wireEvent struct {
	Type      string `json:"type"`
	AuctionID string `json:"auction_id"`
	RoomSize  int    `json:"room_size"`
}

func dialTestServer(t *testing.T, b *bus.Bus) *websocket.Conn {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws", NewHandler(b).Serve)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) wireEvent {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev wireEvent
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestServe_JoinedRoomReceivesEvents(t *testing.T) {
	b := bus.NewBus(16)
	conn := dialTestServer(t, b)

	require.NoError(t, conn.WriteJSON(clientMessage{Action: "joinAuction", AuctionID: "a1"}))

	ack := readEvent(t, conn)
	require.Equal(t, "joinAuctionAck", ack.Type)
	require.Equal(t, "a1", ack.AuctionID)
	require.Equal(t, 1, ack.RoomSize)

	b.Publish("a1", bus.EventBidPlaced, map[string]any{"amount": 110})

	ev := readEvent(t, conn)
	require.Equal(t, string(bus.EventBidPlaced), ev.Type)
	require.Equal(t, "a1", ev.AuctionID)
}

func TestServe_BroadcastNeedsNoRoom(t *testing.T) {
	b := bus.NewBus(16)
	conn := dialTestServer(t, b)

	// Give the server a moment to register the observer.
	require.Eventually(t, func() bool {
		b.Broadcast(bus.EventNewAuction, nil)
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
		var ev wireEvent
		return conn.ReadJSON(&ev) == nil && ev.Type == string(bus.EventNewAuction)
	}, 2*time.Second, 50*time.Millisecond)
}

func TestServe_LeaveStopsRoomEvents(t *testing.T) {
	b := bus.NewBus(16)
	conn := dialTestServer(t, b)

	require.NoError(t, conn.WriteJSON(clientMessage{Action: "joinAuction", AuctionID: "a1"}))
	require.Equal(t, "joinAuctionAck", readEvent(t, conn).Type)

	require.NoError(t, conn.WriteJSON(clientMessage{Action: "leaveAuction", AuctionID: "a1"}))
	ack := readEvent(t, conn)
	require.Equal(t, "leaveAuctionAck", ack.Type)
	require.Equal(t, 0, ack.RoomSize)

	b.Publish("a1", bus.EventBidPlaced, nil)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	var ev wireEvent
	require.Error(t, conn.ReadJSON(&ev), "no event expected after leaving the room")
}

func TestServe_DisconnectUnregistersObserver(t *testing.T) {
	b := bus.NewBus(16)
	conn := dialTestServer(t, b)

	require.NoError(t, conn.WriteJSON(clientMessage{Action: "joinAuction", AuctionID: "a1"}))
	require.Equal(t, "joinAuctionAck", readEvent(t, conn).Type)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return b.RoomSize("a1") == 0
	}, 2*time.Second, 50*time.Millisecond)
}
