package ocean

import (
	"fmt"

	"ocean-server/internal/game"
	"ocean-server/internal/shared"
)

// EveryonesReady starts the game once every team has committed. Otherwise
// the captain of the first team is told to wait, whoever asked.
func (m *Manager) EveryonesReady(connID string, req shared.EveryonesReady) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, err := m.lookup(connID, "everyones ready", req.OceanID)
	if err != nil {
		return err
	}

	if !game.AllCommitted(o.Teams) {
		err := fmt.Errorf("everyones ready: ocean %s: %w", o.ID, ErrNotAllCommitted)
		// AllCommitted is only false when at least one team exists
		captain, ok := o.Teams[0].Captain()
		if !ok {
			// board snapshots may carry empty teams
			m.log.Warn().Str("ocean", o.ID).Msg("first team has no captain to notify")
			return err
		}
		return m.reject(captain.ConnID, ActionNotAllCommitted, "Not all teams have committed a carrier yet", err)
	}

	if !o.Ready {
		m.log.Info().Str("ocean", o.ID).Int("teams", len(o.Teams)).Msg("all teams ready, game starting")
	}
	o.Ready = true
	m.store.SaveOcean(o)

	m.out.Broadcast(o.ID, ActionInitiateGame, o)
	return nil
}
