package ocean

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"ocean-server/internal/game"
	"ocean-server/internal/shared"
)

type Store interface {
	GetOcean(id string) (*game.Ocean, bool)
	SaveOcean(o *game.Ocean)
	DeleteOcean(id string)
	OceansOwnedBy(boardConnID string) []string
	Count() int
}

// Manager owns every active ocean. Each exported operation runs to
// completion under a single lock, so handlers never observe a half-applied
// change and outbound payloads always reflect the state they were sent for.
type Manager struct {
	mu    sync.Mutex
	store Store
	out   Broadcaster
	log   zerolog.Logger
}

func NewManager(s Store, out Broadcaster, log zerolog.Logger) *Manager {
	return &Manager{
		store: s,
		out:   out,
		log:   log.With().Str("component", "ocean").Logger(),
	}
}

type Stats struct {
	OceanCount       int `json:"oceanCount"`
	ClientsConnected int `json:"clientsConnected"`
}

// CreateOcean registers a new ocean owned by the requesting board connection
// and subscribes the board to the ocean's room.
func (m *Manager) CreateOcean(boardConnID string, req shared.CreateOcean) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := string(req.OceanID)
	if id == "" {
		return m.invalid(boardConnID, fmt.Errorf("create ocean: missing ocean id: %w", ErrBadPayload))
	}
	if req.Config.CarrierMinDist < 0 || req.Config.FighterFuel < 0 {
		return m.invalid(boardConnID, fmt.Errorf("create ocean %s: negative config value: %w", id, ErrBadPayload))
	}
	if _, ok := m.store.GetOcean(id); ok {
		return m.reject(boardConnID, ActionOceanExists,
			fmt.Sprintf("Ocean ID: %s is already in use. Please choose another Ocean ID", id),
			fmt.Errorf("create ocean %s: %w", id, ErrOceanExists))
	}

	m.out.Join(boardConnID, id)
	o := game.NewOcean(id, boardConnID, req.Config)
	m.store.SaveOcean(o)

	m.log.Info().Str("ocean", id).Str("board", boardConnID).Msg("ocean created")

	m.out.Emit(boardConnID, ActionOceanCreated, gin.H{
		"msg":              req,
		"ocean":            o,
		"boardSocketid":    boardConnID,
		"oceanCount":       m.store.Count(),
		"clientsConnected": m.out.ConnectionCount(),
	})
	return nil
}

// Disconnect tears down every ocean whose board is the closing connection,
// not only the most recently created one. Participant disconnects leave the
// oceans untouched.
func (m *Manager) Disconnect(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.store.OceansOwnedBy(connID) {
		m.store.DeleteOcean(id)
		m.out.CloseRoom(id)
		m.log.Info().Str("ocean", id).Str("board", connID).Msg("board disconnected, ocean removed")
	}
}

// Snapshot returns a copy of the ocean that callers may read freely.
func (m *Manager) Snapshot(id string) (*game.Ocean, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.store.GetOcean(id)
	if !ok {
		return nil, false
	}
	return o.Clone(), true
}

func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats()
}

func (m *Manager) stats() Stats {
	return Stats{
		OceanCount:       m.store.Count(),
		ClientsConnected: m.out.ConnectionCount(),
	}
}

// reject reports a rule violation to a single connection.
func (m *Manager) reject(connID, action, message string, err error) error {
	m.out.Emit(connID, action, message)
	return err
}

// invalid answers a malformed request. Nothing is sent when the request has
// no originating connection.
func (m *Manager) invalid(connID string, err error) error {
	if connID != "" {
		m.out.Emit(connID, ActionInvalidRequest, err.Error())
	}
	return err
}

func (m *Manager) lookup(connID, op string, id game.LooseID) (*game.Ocean, error) {
	o, ok := m.store.GetOcean(string(id))
	if !ok {
		return nil, m.invalid(connID, fmt.Errorf("%s: ocean %s: %w", op, id, ErrOceanNotFound))
	}
	return o, nil
}

func (m *Manager) lookupTeam(connID, op string, o *game.Ocean, color string) (*game.Team, error) {
	t, _, ok := o.FindTeam(color)
	if !ok {
		return nil, m.invalid(connID, fmt.Errorf("%s: ocean %s team %q: %w", op, o.ID, color, ErrTeamNotFound))
	}
	return t, nil
}
