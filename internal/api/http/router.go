package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func NewRouter(ins Inspector, ws gin.HandlerFunc, log zerolog.Logger) *gin.Engine {
	log = log.With().Str("component", "http").Logger()

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))

	// WebSocket for boards and participants
	r.GET("/ws", ws)

	r.GET("/healthz", HealthHandler)

	// --- OCEAN ENDPOINTS ---
	api := r.Group("/api")
	api.GET("/stats", StatsHandler(ins))
	api.GET("/oceans/:id", OceanHandler(ins))

	// --- CONFIG ENDPOINTS ---
	cfg := NewConfigHandler(ins)
	api.GET("/oceans/:id/config", cfg.GetOceanConfigHandler)

	return r
}
