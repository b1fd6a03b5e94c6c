package ocean_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"ocean-server/internal/game"
)

// sentMessage is one outbound message captured by recorder.
type sentMessage struct {
	Target    string // connection id, or room code when Broadcast is set
	Broadcast bool
	Action    string
	Data      json.RawMessage
}

// recorder is an in-memory Broadcaster. Payloads are marshalled on the spot,
// the same way the websocket hub does it.
type recorder struct {
	mu       sync.Mutex
	rooms    map[string]map[string]bool
	closed   []string
	messages []sentMessage
	conns    int
}

func newRecorder() *recorder {
	return &recorder{rooms: map[string]map[string]bool{}}
}

func (r *recorder) Join(connID, roomCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rooms[roomCode] == nil {
		r.rooms[roomCode] = map[string]bool{}
	}
	r.rooms[roomCode][connID] = true
}

func (r *recorder) Emit(connID string, action string, data interface{}) {
	r.record(connID, false, action, data)
}

func (r *recorder) Broadcast(roomCode string, action string, data interface{}) {
	r.record(roomCode, true, action, data)
}

func (r *recorder) CloseRoom(roomCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, roomCode)
	r.closed = append(r.closed, roomCode)
}

func (r *recorder) ConnectionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.conns
}

func (r *recorder) record(target string, broadcast bool, action string, data interface{}) {
	b, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, sentMessage{Target: target, Broadcast: broadcast, Action: action, Data: b})
}

func (r *recorder) inRoom(roomCode, connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rooms[roomCode][connID]
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}

func (r *recorder) all() []sentMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sentMessage(nil), r.messages...)
}

// only asserts exactly one message was sent since the last reset and returns it.
func (r *recorder) only(t *testing.T) sentMessage {
	t.Helper()
	msgs := r.all()
	require.Len(t, msgs, 1)
	return msgs[0]
}

func decodeOcean(t *testing.T, m sentMessage) game.Ocean {
	t.Helper()
	var o game.Ocean
	require.NoError(t, json.Unmarshal(m.Data, &o))
	return o
}

func decodeTeam(t *testing.T, m sentMessage) game.Team {
	t.Helper()
	var team game.Team
	require.NoError(t, json.Unmarshal(m.Data, &team))
	return team
}

func decodeMap(t *testing.T, m sentMessage) map[string]any {
	t.Helper()
	var v map[string]any
	require.NoError(t, json.Unmarshal(m.Data, &v))
	return v
}
