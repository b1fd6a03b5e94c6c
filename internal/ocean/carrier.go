package ocean

import (
	"errors"
	"fmt"

	"ocean-server/internal/game"
	"ocean-server/internal/shared"
)

// PlaceCarrier sets the next tile of a team's carrier. No role check is made:
// any member of the team may place.
func (m *Manager) PlaceCarrier(connID string, req shared.PlaceCarrier) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, err := m.lookup(connID, "place carrier", req.OceanID)
	if err != nil {
		return err
	}
	team, err := m.lookupTeam(connID, "place carrier", o, req.TeamColor)
	if err != nil {
		return err
	}

	p := game.Point{X: req.X, Y: req.Y}
	if err := game.PlaceCarrierPoint(o, team, p); err != nil {
		wrapped := fmt.Errorf("place carrier: ocean %s team %q at (%d,%d): %w", o.ID, team.Color, p.X, p.Y, err)
		switch {
		case errors.Is(err, game.ErrTooClose):
			return m.reject(connID, ActionTooClose,
				fmt.Sprintf("You must place your carrier at least %d tiles away from an enemy carrier", o.Config.CarrierMinDist),
				wrapped)
		case errors.Is(err, game.ErrNotAttached):
			return m.reject(connID, ActionNotAttached, "Your second tile must be attached to the first", wrapped)
		}
		return m.invalid(connID, wrapped)
	}
	m.store.SaveOcean(o)

	m.log.Debug().
		Str("ocean", o.ID).
		Str("team", team.Color).
		Int("x", p.X).
		Int("y", p.Y).
		Msg("carrier tile placed")

	m.out.Emit(o.BoardConnID, ActionPlacedCarrier, o)
	m.out.Emit(connID, ActionPlacedCarrier, team)
	return nil
}

// RemoveCarrier clears both tiles of a team's carrier, committed or not.
func (m *Manager) RemoveCarrier(connID string, req shared.RemoveCarrier) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, err := m.lookup(connID, "remove carrier", req.OceanID)
	if err != nil {
		return err
	}
	team, err := m.lookupTeam(connID, "remove carrier", o, req.TeamColor)
	if err != nil {
		return err
	}

	game.RemoveCarrier(team)
	m.store.SaveOcean(o)

	m.log.Debug().Str("ocean", o.ID).Str("team", team.Color).Msg("carrier removed")

	m.out.Emit(o.BoardConnID, ActionRemovedCarrier, o)
	m.out.Emit(connID, ActionRemovedCarrier, team)
	return nil
}

// CommitCarrier marks the team at the given index as committed. Carrier
// tiles are not required to be placed.
func (m *Manager) CommitCarrier(connID string, req shared.CommitCarrier) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, err := m.lookup(connID, "commit carrier", req.OceanID)
	if err != nil {
		return err
	}
	if req.TeamIndex < 0 || req.TeamIndex >= len(o.Teams) {
		return m.invalid(connID, fmt.Errorf("commit carrier: ocean %s index %d: %w", o.ID, req.TeamIndex, ErrTeamIndex))
	}

	team := &o.Teams[req.TeamIndex]
	team.Committed = true
	m.store.SaveOcean(o)

	m.log.Info().Str("ocean", o.ID).Str("team", team.Color).Msg("carrier committed")

	m.out.Emit(o.BoardConnID, ActionCarrierCommitted, o)
	m.out.Emit(connID, ActionCarrierCommitted, "")
	return nil
}
