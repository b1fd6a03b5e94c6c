package store

import (
	"sync"

	"ocean-server/internal/game"
)

// MemoryStore keeps the active oceans in memory, indexed by ocean id and by
// the connection id of the board that owns them.
type MemoryStore struct {
	mu      sync.RWMutex
	oceans  map[string]*game.Ocean
	byBoard map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		oceans:  map[string]*game.Ocean{},
		byBoard: map[string][]string{},
	}
}

func (m *MemoryStore) GetOcean(id string) (*game.Ocean, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.oceans[id]
	return o, ok
}

// SaveOcean inserts o or replaces the ocean stored under the same id.
func (m *MemoryStore) SaveOcean(o *game.Ocean) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.oceans[o.ID]; ok && prev.BoardConnID != o.BoardConnID {
		m.unindex(prev.BoardConnID, prev.ID)
	}
	if _, ok := m.oceans[o.ID]; !ok || !m.indexed(o.BoardConnID, o.ID) {
		m.byBoard[o.BoardConnID] = append(m.byBoard[o.BoardConnID], o.ID)
	}
	m.oceans[o.ID] = o
}

func (m *MemoryStore) DeleteOcean(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.oceans[id]
	if !ok {
		return
	}
	m.unindex(o.BoardConnID, id)
	delete(m.oceans, id)
}

// OceansOwnedBy returns the ids of the oceans created by the given board
// connection, oldest first.
func (m *MemoryStore) OceansOwnedBy(boardConnID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.byBoard[boardConnID]...)
}

func (m *MemoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.oceans)
}

func (m *MemoryStore) indexed(boardConnID, id string) bool {
	for _, v := range m.byBoard[boardConnID] {
		if v == id {
			return true
		}
	}
	return false
}

func (m *MemoryStore) unindex(boardConnID, id string) {
	ids := m.byBoard[boardConnID]
	for i, v := range ids {
		if v == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(m.byBoard, boardConnID)
		return
	}
	m.byBoard[boardConnID] = ids
}
