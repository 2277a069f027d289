package player

import (
	"math"
	"sync"

	"github.com/google/uuid"
)

// Position holds a player's world position and orientation.
type Position struct {
	X, Y, Z    float64
	Yaw, Pitch float32
	OnGround   bool
}

// Player represents a logged-in player.
type Player struct {
	EntityID int32
	UUID     uuid.UUID
	Username string

	mu  sync.RWMutex
	pos Position
}

// NewPlayer creates a new Player at the origin.
func NewPlayer(entityID int32, id uuid.UUID, username string) *Player {
	return &Player{
		EntityID: entityID,
		UUID:     id,
		Username: username,
	}
}

// OfflineUUID derives the identifier of an unauthenticated player: a name
// based (version 5) UUID of the username in the DNS namespace.
func OfflineUUID(username string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(username))
}

// GetPosition returns a copy of the player's current position.
func (p *Player) GetPosition() Position {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pos
}

// SetPosition updates the player's position.
func (p *Player) SetPosition(pos Position) {
	p.mu.Lock()
	p.pos = pos
	p.mu.Unlock()
}

// ChunkX returns the chunk X coordinate of the player's current position.
func (p *Player) ChunkX() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return int(math.Floor(p.pos.X)) >> 4
}

// ChunkZ returns the chunk Z coordinate of the player's current position.
func (p *Player) ChunkZ() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return int(math.Floor(p.pos.Z)) >> 4
}
