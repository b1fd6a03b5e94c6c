package http

import "ocean-server/internal/game"

// ErrorResponse is returned by every endpoint on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse mirrors the counters sent to boards on oceanCreated.
type StatsResponse struct {
	OceanCount       int `json:"oceanCount"`
	ClientsConnected int `json:"clientsConnected"`
}

// OceanResponse wraps an ocean in its wire shape.
type OceanResponse struct {
	Ocean   *game.Ocean `json:"ocean"`
	Players int         `json:"players"`
}

type OceanConfigResponse struct {
	OceanID string           `json:"oceanId"`
	Config  game.OceanConfig `json:"config"`
}
