package ws

import (
	"encoding/json"
	"fmt"

	"ocean-server/internal/dispatcher"
	"ocean-server/internal/ocean"
)

// Emitter delivers a reply to a single connection.
type Emitter interface {
	Emit(connID string, action string, data interface{})
}

// RegisterRoutes binds every inbound action to its manager operation.
func RegisterRoutes(d *dispatcher.Dispatcher, m OceanManager, out Emitter) {
	// board
	d.Register("createOcean", bind(out, m.CreateOcean), dispatcher.Logged())
	d.Register("oceanUpdate", bind(out, m.OceanUpdate), dispatcher.Logged())
	d.Register("roundUpdate", bind(out, m.RoundUpdate), dispatcher.Logged())
	d.Register("playerInfo", bind(out, m.PlayerInfo), dispatcher.Logged())
	d.Register("flightControl", bind(out, m.FlightControl), dispatcher.Logged())

	// participants
	d.Register("createPlayer", bind(out, m.CreatePlayer), dispatcher.Logged())
	d.Register("placeCarrier", bind(out, m.PlaceCarrier), dispatcher.Logged())
	d.Register("removeCarrier", bind(out, m.RemoveCarrier), dispatcher.Logged())
	d.Register("commitCarrier", bind(out, m.CommitCarrier), dispatcher.Logged())
	d.Register("everyonesReady", bind(out, m.EveryonesReady), dispatcher.Logged())

	d.Register(ActionDisconnect, func(e dispatcher.Event) error {
		m.Disconnect(e.ConnID)
		return nil
	}, dispatcher.Logged())
}

// bind decodes the event payload into T before calling fn. Payloads that do
// not decode are answered with invalidRequest.
func bind[T any](out Emitter, fn func(string, T) error) dispatcher.HandlerFunc {
	return func(e dispatcher.Event) error {
		var req T
		data := e.Data
		if len(data) == 0 {
			data = json.RawMessage("null")
		}
		if err := json.Unmarshal(data, &req); err != nil {
			err = fmt.Errorf("%s: decode payload: %v: %w", e.Action, err, ocean.ErrBadPayload)
			out.Emit(e.ConnID, ocean.ActionInvalidRequest, err.Error())
			return err
		}
		return fn(e.ConnID, req)
	}
}
