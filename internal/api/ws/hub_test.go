package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocean-server/internal/dispatcher"
	"ocean-server/internal/ocean"
)

type fakeSubmitter struct {
	events chan dispatcher.Event
}

func (f *fakeSubmitter) Submit(e dispatcher.Event) error {
	f.events <- e
	return nil
}

func (f *fakeSubmitter) next(t *testing.T) dispatcher.Event {
	t.Helper()
	select {
	case e := <-f.events:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("no event submitted")
		return dispatcher.Event{}
	}
}

func newTestHub(t *testing.T, opts Options) (*Hub, *fakeSubmitter, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sub := &fakeSubmitter{events: make(chan dispatcher.Event, 64)}
	hub := NewHub(sub, opts, zerolog.Nop())

	r := gin.New()
	r.GET("/ws", hub.HandleWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return hub, sub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

// dial connects and consumes the greeting, returning the connection id.
func dial(t *testing.T, url string) (*websocket.Conn, string) {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	msg := readFrame(t, conn)
	require.Equal(t, ocean.ActionConnected, msg.Action)
	var hello struct {
		SID string `json:"sid"`
	}
	require.NoError(t, json.Unmarshal(msg.Data, &hello))
	require.NotEmpty(t, hello.SID)
	return conn, hello.SID
}

func readFrame(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg envelope
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHub_ConnectAndSubmit(t *testing.T) {
	hub, sub, url := newTestHub(t, Options{})
	conn, sid := dial(t, url)

	assert.Equal(t, 1, hub.ConnectionCount())

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"action":"createOcean","data":{"oId":"S","config":{"carrierMinDist":2}}}`)))

	e := sub.next(t)
	assert.Equal(t, "createOcean", e.Action)
	assert.Equal(t, sid, e.ConnID)
	assert.JSONEq(t, `{"oId":"S","config":{"carrierMinDist":2}}`, string(e.Data))
	assert.False(t, e.Timestamp.IsZero())
}

func TestHub_ConnectionIDsAreUnique(t *testing.T) {
	_, _, url := newTestHub(t, Options{})
	_, a := dial(t, url)
	_, b := dial(t, url)
	assert.NotEqual(t, a, b)
}

func TestHub_RejectsMalformedFrames(t *testing.T) {
	_, sub, url := newTestHub(t, Options{})
	conn, _ := dial(t, url)

	frames := []string{
		`not json`,
		`{"data":{}}`,
		`{"action":"disconnect"}`,
	}
	for _, f := range frames {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(f)))
		assert.Equal(t, ocean.ActionInvalidRequest, readFrame(t, conn).Action, f)
	}

	select {
	case e := <-sub.events:
		t.Fatalf("unexpected event %q", e.Action)
	default:
	}
}

func TestHub_BroadcastReachesRoomOnly(t *testing.T) {
	hub, _, url := newTestHub(t, Options{})
	board, boardID := dial(t, url)
	player, playerID := dial(t, url)
	outsider, outsiderID := dial(t, url)

	hub.Join(boardID, "S")
	hub.Join(playerID, "S")
	hub.Join(playerID, "S")
	assert.Equal(t, 2, hub.RoomSize("S"))

	hub.Broadcast("S", "roundUpdated", map[string]int{"round": 2})
	hub.Emit(outsiderID, "marker", nil)

	for _, conn := range []*websocket.Conn{board, player} {
		msg := readFrame(t, conn)
		assert.Equal(t, "roundUpdated", msg.Action)
		assert.JSONEq(t, `{"round":2}`, string(msg.Data))
	}
	assert.Equal(t, "marker", readFrame(t, outsider).Action)
}

func TestHub_EmitTargetsOneConnection(t *testing.T) {
	hub, _, url := newTestHub(t, Options{})
	a, aID := dial(t, url)
	b, bID := dial(t, url)

	hub.Emit(aID, "newPlayerInfo", json.RawMessage(`{"pSid":"x","fuel":3}`))
	hub.Emit(bID, "marker", nil)
	hub.Emit("nobody", "lost", nil)

	msg := readFrame(t, a)
	assert.Equal(t, "newPlayerInfo", msg.Action)
	assert.JSONEq(t, `{"pSid":"x","fuel":3}`, string(msg.Data))
	assert.Equal(t, "marker", readFrame(t, b).Action)
}

func TestHub_CloseRoom(t *testing.T) {
	hub, _, url := newTestHub(t, Options{})
	conn, id := dial(t, url)

	hub.Join(id, "S")
	hub.CloseRoom("S")
	assert.Equal(t, 0, hub.RoomSize("S"))

	hub.Broadcast("S", "roundUpdated", nil)
	hub.Emit(id, "marker", nil)
	assert.Equal(t, "marker", readFrame(t, conn).Action)
	assert.Equal(t, 1, hub.ConnectionCount())
}

func TestHub_DisconnectIsSubmitted(t *testing.T) {
	hub, sub, url := newTestHub(t, Options{})
	conn, id := dial(t, url)
	hub.Join(id, "S")

	require.NoError(t, conn.Close())

	e := sub.next(t)
	assert.Equal(t, ActionDisconnect, e.Action)
	assert.Equal(t, id, e.ConnID)
	assert.Equal(t, 0, hub.ConnectionCount())
	assert.Equal(t, 0, hub.RoomSize("S"))
}

func TestHub_Close(t *testing.T) {
	hub, sub, url := newTestHub(t, Options{})
	_, id := dial(t, url)

	hub.Close()

	e := sub.next(t)
	assert.Equal(t, ActionDisconnect, e.Action)
	assert.Equal(t, id, e.ConnID)
}

func TestHub_CheckOrigin(t *testing.T) {
	_, _, url := newTestHub(t, Options{AllowedOrigins: []string{"http://board.local"}})

	header := http.Header{"Origin": []string{"http://elsewhere.local"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header.Set("Origin", "http://board.local")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	_ = conn.Close()
}
