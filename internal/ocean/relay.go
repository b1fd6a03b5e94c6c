package ocean

import (
	"fmt"

	"ocean-server/internal/game"
	"ocean-server/internal/shared"
)

// FlightControl stores a fighter's latest direction and movement commands
// and forwards the ocean to its board.
func (m *Manager) FlightControl(connID string, req shared.FlightControl) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, err := m.lookup(connID, "flight control", req.OceanID)
	if err != nil {
		return err
	}
	team, err := m.lookupTeam(connID, "flight control", o, req.TeamColor)
	if err != nil {
		return err
	}
	player, ok := team.FindPlayer(req.PlayerID)
	if !ok {
		return m.invalid(connID, fmt.Errorf("flight control: ocean %s team %q player %d: %w",
			o.ID, team.Color, req.PlayerID, ErrPlayerNotFound))
	}

	player.DirCmd = req.DirCmd
	player.MvmCmd = req.MvmCmd
	m.store.SaveOcean(o)

	if req.BoardConnID != "" && req.BoardConnID != o.BoardConnID {
		m.log.Warn().
			Str("ocean", o.ID).
			Str("requested", req.BoardConnID).
			Str("board", o.BoardConnID).
			Msg("flight control names another board, using the ocean's own")
	}

	m.out.Emit(o.BoardConnID, ActionFlightControl, o)
	return nil
}

// RoundUpdate moves the round counter forward and tells the whole room.
func (m *Manager) RoundUpdate(connID string, req shared.RoundUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, err := m.lookup(connID, "round update", req.OceanID)
	if err != nil {
		return err
	}
	if req.Round < o.Round {
		return m.invalid(connID, fmt.Errorf("round update: ocean %s from %d to %d: %w",
			o.ID, o.Round, req.Round, ErrRoundRegressed))
	}

	o.Round = req.Round
	m.store.SaveOcean(o)

	m.log.Debug().Str("ocean", o.ID).Int("round", o.Round).Msg("round updated")

	m.out.Broadcast(o.ID, ActionRoundUpdated, o)
	return nil
}

// OceanUpdate replaces the stored ocean with the board's snapshot. The id,
// the owning board and the config are immutable and always kept. A started
// game stays started and committed teams stay committed.
func (m *Manager) OceanUpdate(connID string, next game.Ocean) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, err := m.lookup(connID, "ocean update", game.LooseID(next.ID))
	if err != nil {
		return err
	}
	if next.Round < o.Round {
		return m.invalid(connID, fmt.Errorf("ocean update: ocean %s from %d to %d: %w",
			o.ID, o.Round, next.Round, ErrRoundRegressed))
	}
	if o.Ready && !next.Ready {
		return m.invalid(connID, fmt.Errorf("ocean update: ocean %s: %w", o.ID, ErrReopened))
	}
	seen := make(map[string]bool, len(next.Teams))
	for _, t := range next.Teams {
		if seen[t.Color] {
			return m.invalid(connID, fmt.Errorf("ocean update: ocean %s duplicate team %q: %w",
				o.ID, t.Color, ErrBadPayload))
		}
		seen[t.Color] = true
		// commits are one way
		if prev, _, ok := o.FindTeam(t.Color); ok && prev.Committed && !t.Committed {
			return m.invalid(connID, fmt.Errorf("ocean update: ocean %s team %q: %w",
				o.ID, t.Color, ErrReopened))
		}
	}

	next.BoardConnID = o.BoardConnID
	next.Config = o.Config
	if next.Teams == nil {
		next.Teams = []game.Team{}
	}
	m.store.SaveOcean(&next)

	m.log.Debug().Str("ocean", next.ID).Int("round", next.Round).Msg("ocean replaced by board snapshot")

	m.out.Broadcast(next.ID, ActionOceanUpdated, &next)
	return nil
}

// PlayerInfo relays a board payload untouched to one participant.
func (m *Manager) PlayerInfo(connID string, req shared.PlayerInfo) error {
	if req.TargetConnID == "" {
		return m.invalid(connID, fmt.Errorf("player info: missing target connection: %w", ErrBadPayload))
	}
	m.out.Emit(req.TargetConnID, ActionNewPlayerInfo, req.Raw)
	return nil
}
