package ws

import (
	"ocean-server/internal/game"
	"ocean-server/internal/shared"
)

// OceanManager is the session logic the websocket actions are routed to.
type OceanManager interface {
	CreateOcean(boardConnID string, req shared.CreateOcean) error
	OceanUpdate(connID string, next game.Ocean) error
	RoundUpdate(connID string, req shared.RoundUpdate) error
	PlayerInfo(connID string, req shared.PlayerInfo) error
	FlightControl(connID string, req shared.FlightControl) error

	CreatePlayer(connID string, req shared.CreatePlayer) error
	PlaceCarrier(connID string, req shared.PlaceCarrier) error
	RemoveCarrier(connID string, req shared.RemoveCarrier) error
	CommitCarrier(connID string, req shared.CommitCarrier) error
	EveryonesReady(connID string, req shared.EveryonesReady) error

	Disconnect(connID string)
}
