package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ocean-server/internal/game"
	"ocean-server/internal/ocean"
)

// Inspector is the read-only view of the session registry.
type Inspector interface {
	Snapshot(id string) (*game.Ocean, bool)
	Stats() ocean.Stats
}

// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// @Summary Server counters
// @Description Number of active oceans and open connections
// @Tags Ocean
// @Produce json
// @Success 200 {object} StatsResponse
// @Router /api/stats [get]
func StatsHandler(ins Inspector) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := ins.Stats()
		c.JSON(http.StatusOK, StatsResponse{
			OceanCount:       s.OceanCount,
			ClientsConnected: s.ClientsConnected,
		})
	}
}

// @Summary Inspect an ocean
// @Description Returns the current state of one ocean, teams and players included
// @Tags Ocean
// @Produce json
// @Param id path string true "Ocean ID"
// @Success 200 {object} OceanResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/oceans/{id} [get]
func OceanHandler(ins Inspector) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, ok := ins.Snapshot(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "ocean not found"})
			return
		}
		c.JSON(http.StatusOK, OceanResponse{Ocean: o, Players: o.PlayerCount()})
	}
}
