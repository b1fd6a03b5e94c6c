package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocean-server/internal/game"
	"ocean-server/internal/ocean"
)

type fakeInspector struct {
	oceans map[string]*game.Ocean
	stats  ocean.Stats
}

func (f *fakeInspector) Snapshot(id string) (*game.Ocean, bool) {
	o, ok := f.oceans[id]
	if !ok {
		return nil, false
	}
	return o.Clone(), true
}

func (f *fakeInspector) Stats() ocean.Stats {
	return f.stats
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeInspector) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := game.OceanConfig{CarrierMinDist: 2, FighterFuel: 10, Extra: map[string]any{"boardSize": float64(20)}}
	o := game.NewOcean("S", "board-1", cfg)
	o.Teams = append(o.Teams, game.NewTeam("red", game.NewPlayer(cfg, 1, "Ann", "c1")))

	ins := &fakeInspector{
		oceans: map[string]*game.Ocean{"S": o},
		stats:  ocean.Stats{OceanCount: 1, ClientsConnected: 3},
	}
	ws := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	return NewRouter(ins, ws, zerolog.Nop()), ins
}

func get(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestRouter(t)

	w := get(t, r, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_Stats(t *testing.T) {
	r, _ := newTestRouter(t)

	w := get(t, r, "/api/stats")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"oceanCount":1,"clientsConnected":3}`, w.Body.String())
}

func TestRouter_Ocean(t *testing.T) {
	r, _ := newTestRouter(t)

	w := get(t, r, "/api/oceans/S")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Ocean   game.Ocean `json:"ocean"`
		Players int        `json:"players"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "S", body.Ocean.ID)
	assert.Equal(t, "board-1", body.Ocean.BoardConnID)
	require.Len(t, body.Ocean.Teams, 1)
	assert.Equal(t, "Ann", body.Ocean.Teams[0].Players[0].Name)
	assert.Equal(t, 1, body.Players)

	var raw struct {
		Ocean map[string]any `json:"ocean"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Contains(t, raw.Ocean, "tms")
	assert.Contains(t, raw.Ocean, "oId")
}

func TestRouter_OceanConfig(t *testing.T) {
	r, _ := newTestRouter(t)

	w := get(t, r, "/api/oceans/S/config")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"oceanId":"S","config":{"carrierMinDist":2,"fighterFuel":10,"boardSize":20}}`, w.Body.String())
}

func TestRouter_NotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/api/oceans/nope", "/api/oceans/nope/config"} {
		w := get(t, r, path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.JSONEq(t, `{"error":"ocean not found"}`, w.Body.String(), path)
	}
}

func TestRouter_WebSocketRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	w := get(t, r, "/ws")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
