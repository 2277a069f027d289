package player

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	// ErrAlreadyOnline is returned by Register when a player with the same
	// UUID is already logged in.
	ErrAlreadyOnline = errors.New("player: already online")
	// ErrServerFull is returned by Register when the player limit is reached.
	ErrServerFull = errors.New("player: server full")
)

// Sample is the name/id pair listed in a status response.
type Sample struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Manager tracks all logged-in players.
type Manager struct {
	mu           sync.RWMutex
	players      map[int32]*Player   // entityID → Player
	byUUID       map[uuid.UUID]int32 // UUID → entityID
	order        []int32             // registration order
	maxPlayers   int                 // 0 means unlimited
	nextEntityID atomic.Int32
}

// NewManager creates an empty player manager admitting at most maxPlayers
// players. A maxPlayers of 0 or less means no limit.
func NewManager(maxPlayers int) *Manager {
	return &Manager{
		players:    make(map[int32]*Player),
		byUUID:     make(map[uuid.UUID]int32),
		maxPlayers: max(maxPlayers, 0),
	}
}

// AllocateEntityID returns the next unique entity ID.
func (m *Manager) AllocateEntityID() int32 {
	return m.nextEntityID.Add(1)
}

// Register creates and adds a player. It fails with ErrAlreadyOnline if the
// UUID belongs to a player that has not been removed yet, and with
// ErrServerFull once the limit is reached.
func (m *Manager) Register(id uuid.UUID, username string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byUUID[id]; ok {
		return nil, fmt.Errorf("register %s (%s): %w", username, id, ErrAlreadyOnline)
	}
	if m.maxPlayers > 0 && len(m.players) >= m.maxPlayers {
		return nil, fmt.Errorf("register %s: %d/%d online: %w", username, len(m.players), m.maxPlayers, ErrServerFull)
	}

	p := NewPlayer(m.AllocateEntityID(), id, username)
	m.players[p.EntityID] = p
	m.byUUID[id] = p.EntityID
	m.order = append(m.order, p.EntityID)
	return p, nil
}

// Remove unregisters a player. Removing a player twice is a no-op.
func (m *Manager) Remove(p *Player) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cur, ok := m.players[p.EntityID]; !ok || cur != p {
		return
	}
	delete(m.players, p.EntityID)
	delete(m.byUUID, p.UUID)
	for i, eid := range m.order {
		if eid == p.EntityID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Lookup returns the online player with the given UUID.
func (m *Manager) Lookup(id uuid.UUID) (*Player, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	eid, ok := m.byUUID[id]
	if !ok {
		return nil, false
	}
	return m.players[eid], true
}

// Count returns the number of online players.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.players)
}

// Sample returns up to n players in registration order.
func (m *Manager) Sample(n int) []Sample {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n = min(n, len(m.order))
	if n <= 0 {
		return nil
	}
	out := make([]Sample, 0, n)
	for _, eid := range m.order[:n] {
		p := m.players[eid]
		out = append(out, Sample{Name: p.Username, ID: p.UUID.String()})
	}
	return out
}

// GetByName returns the player with the given username (case-insensitive), or nil.
func (m *Manager) GetByName(name string) *Player {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.players {
		if strings.EqualFold(p.Username, name) {
			return p
		}
	}
	return nil
}

// ForEach calls fn for every online player under a read lock.
func (m *Manager) ForEach(fn func(*Player)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, eid := range m.order {
		fn(m.players[eid])
	}
}
