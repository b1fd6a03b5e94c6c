package ocean

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"ocean-server/internal/game"
	"ocean-server/internal/shared"
)

// CreatePlayer admits a participant into an ocean, creating the team on the
// fly when nobody has claimed the color yet.
func (m *Manager) CreatePlayer(connID string, req shared.CreatePlayer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := string(req.OceanID)
	// subscribed even when admission fails
	m.out.Join(connID, id)

	o, ok := m.store.GetOcean(id)
	if !ok {
		return m.reject(connID, ActionOceanDne,
			fmt.Sprintf("Ocean ID: %s does not exist", id),
			fmt.Errorf("create player %q: ocean %s: %w", req.Name, id, ErrOceanNotFound))
	}
	if o.Ready {
		return m.reject(connID, ActionInProgress,
			fmt.Sprintf("Ocean ID: %s already in progress. Please choose another Ocean ID", id),
			fmt.Errorf("create player %q: ocean %s: %w", req.Name, id, ErrInProgress))
	}
	if o.HasPlayerNamed(req.Name) {
		return m.reject(connID, ActionSameName,
			fmt.Sprintf("%s already exists in this ocean. Please choose another player name.", req.Name),
			fmt.Errorf("create player %q: ocean %s: %w", req.Name, id, ErrDuplicateName))
	}

	var player game.Player
	team, teamIdx, found := o.FindTeam(req.TeamColor)
	if found {
		pid := team.NextPlayerID()
		if pid > game.MaxTeamSize {
			return m.reject(connID, ActionTeamFull,
				fmt.Sprintf("The %s team is full and cannot accept any new members", req.TeamColor),
				fmt.Errorf("create player %q: ocean %s team %q: %w", req.Name, id, req.TeamColor, ErrTeamFull))
		}
		player = game.NewPlayer(o.Config, pid, req.Name, connID)
		team.Players = append(team.Players, player)
	} else {
		player = game.NewPlayer(o.Config, 1, req.Name, connID)
		o.Teams = append(o.Teams, game.NewTeam(req.TeamColor, player))
		teamIdx = len(o.Teams) - 1
	}
	m.store.SaveOcean(o)

	m.log.Info().
		Str("ocean", id).
		Str("team", req.TeamColor).
		Str("player", req.Name).
		Int("pid", player.ID).
		Msg("player created")

	stats := m.stats()
	m.out.Emit(o.BoardConnID, ActionPlayerCreated, gin.H{
		"ocean":            o,
		"boardSocketid":    o.BoardConnID,
		"oceanCount":       stats.OceanCount,
		"clientsConnected": stats.ClientsConnected,
	})
	m.out.Emit(connID, ActionPlayerCreated, gin.H{
		"captain":       player.IsCaptain(),
		"pId":           player.ID,
		"pSid":          connID,
		"boardSocketid": o.BoardConnID,
		"oceanId":       id,
		"name":          req.Name,
		"teamClr":       req.TeamColor,
		"oceanConfig":   o.Config,
		"teamIdx":       teamIdx,
		"x":             player.Position.X,
		"y":             player.Position.Y,
		"dir":           player.Heading,
		"alt":           player.Altitude,
		"fuel":          player.Fuel,
		"dmg":           player.Damage,
		"drn":           player.Drone,
		"diedX":         player.Died.X,
		"diedY":         player.Died.Y,
		"dirCmd":        player.DirCmd,
		"mvmCmd":        player.MvmCmd,
		"nextTile": gin.H{
			"x":   1,
			"y":   2,
			"dir": game.West,
		},
	})
	return nil
}
