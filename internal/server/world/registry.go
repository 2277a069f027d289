package world

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// ErrWorldNotFound is returned when a location refers to a world that is no
// longer registered.
var ErrWorldNotFound = errors.New("world: world not found")

// ID is a handle to a registered world. The zero ID is never assigned.
type ID uint32

// Location is a position inside a world. It refers to the world by handle,
// so holding a Location does not keep the world alive.
type Location struct {
	X, Y, Z float64
	World   ID
}

// ChunkX returns the chunk column x coordinate containing the location.
func (l Location) ChunkX() int { return int(math.Floor(l.X)) >> 4 }

// ChunkZ returns the chunk column z coordinate containing the location.
func (l Location) ChunkZ() int { return int(math.Floor(l.Z)) >> 4 }

// Registry is the set of live worlds.
type Registry struct {
	mu     sync.RWMutex
	worlds map[ID]*World
	nextID ID
	spawn  Location
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{worlds: make(map[ID]*World)}
}

// Add registers w and returns its handle.
func (r *Registry) Add(w *World) ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	w.id = r.nextID
	r.worlds[w.id] = w
	return w.id
}

// Remove unregisters the world. Locations that refer to it stop resolving.
func (r *Registry) Remove(id ID) {
	r.mu.Lock()
	delete(r.worlds, id)
	r.mu.Unlock()
}

// Get returns the world with the given handle.
func (r *Registry) Get(id ID) (*World, error) {
	r.mu.RLock()
	w, ok := r.worlds[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("resolve world %d: %w", id, ErrWorldNotFound)
	}
	return w, nil
}

// Resolve returns the world a location refers to.
func (r *Registry) Resolve(loc Location) (*World, error) {
	return r.Get(loc.World)
}

// Len returns the number of registered worlds.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.worlds)
}

// SetSpawn sets the location new players join at.
func (r *Registry) SetSpawn(loc Location) {
	r.mu.Lock()
	r.spawn = loc
	r.mu.Unlock()
}

// Spawn returns the configured spawn location.
func (r *Registry) Spawn() Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.spawn
}

func (r *Registry) spawnWorld() (*World, Location, error) {
	loc := r.Spawn()
	w, err := r.Resolve(loc)
	return w, loc, err
}

// SpawnWorldMetadata returns the metadata of the world containing the spawn.
func (r *Registry) SpawnWorldMetadata() (Metadata, error) {
	w, _, err := r.spawnWorld()
	if err != nil {
		return Metadata{}, err
	}
	return w.Metadata(), nil
}

// SpawnPosition returns the spawn coordinates, failing if the spawn world is
// gone. A spawn below the terrain is lifted to stand on the highest block.
func (r *Registry) SpawnPosition() (x, y, z float64, err error) {
	w, loc, err := r.spawnWorld()
	if err != nil {
		return 0, 0, 0, err
	}
	ground := float64(w.HeightAt(int(math.Floor(loc.X)), int(math.Floor(loc.Z))) + 1)
	return loc.X, max(loc.Y, ground), loc.Z, nil
}

// Column returns a column of the spawn world.
func (r *Registry) Column(cx, cz int) (*Column, error) {
	w, _, err := r.spawnWorld()
	if err != nil {
		return nil, err
	}
	return w.Column(cx, cz), nil
}
