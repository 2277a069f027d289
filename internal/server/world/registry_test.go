package world

import (
	"errors"
	"testing"
)

func TestRegistrySpawn(t *testing.T) {
	r := NewRegistry()
	w := newFlatWorld()
	id := r.Add(w)
	if id == 0 || w.ID() != id {
		t.Fatalf("Add returned %d, world id %d", id, w.ID())
	}

	r.SetSpawn(Location{X: 8.5, Y: 5, Z: -7.5, World: id})

	meta, err := r.SpawnWorldMetadata()
	if err != nil {
		t.Fatalf("SpawnWorldMetadata: %v", err)
	}
	if meta.LevelType != LevelFlat {
		t.Errorf("LevelType = %v, want flat", meta.LevelType)
	}

	x, y, z, err := r.SpawnPosition()
	if err != nil || x != 8.5 || y != 5 || z != -7.5 {
		t.Errorf("SpawnPosition = %v %v %v, %v", x, y, z, err)
	}

	c, err := r.Column(0, -1)
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if c != w.Column(0, -1) {
		t.Error("registry column differs from world column")
	}
}

func TestRegistrySpawnAboveTerrain(t *testing.T) {
	r := NewRegistry()
	w := newFlatWorld()
	id := r.Add(w)

	tests := []struct {
		name  string
		y     float64
		wantY float64
	}{
		{"underground", 0, 5},
		{"inside_grass", 4.5, 5},
		{"on_ground", 5, 5},
		{"in_air", 70, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.SetSpawn(Location{X: -3.5, Y: tt.y, Z: 12, World: id})
			x, y, z, err := r.SpawnPosition()
			if err != nil {
				t.Fatalf("SpawnPosition: %v", err)
			}
			if x != -3.5 || y != tt.wantY || z != 12 {
				t.Errorf("SpawnPosition = %v %v %v, want -3.5 %v 12", x, y, z, tt.wantY)
			}
		})
	}
	if got := w.HeightAt(-4, 12); got != 4 {
		t.Errorf("HeightAt = %d, want 4", got)
	}
}

func TestRegistryWorldGone(t *testing.T) {
	r := NewRegistry()
	id := r.Add(newFlatWorld())
	loc := Location{World: id}
	r.SetSpawn(loc)
	r.Remove(id)

	if _, err := r.Resolve(loc); !errors.Is(err, ErrWorldNotFound) {
		t.Errorf("Resolve error = %v, want ErrWorldNotFound", err)
	}
	if _, err := r.SpawnWorldMetadata(); !errors.Is(err, ErrWorldNotFound) {
		t.Errorf("SpawnWorldMetadata error = %v, want ErrWorldNotFound", err)
	}
	if _, _, _, err := r.SpawnPosition(); !errors.Is(err, ErrWorldNotFound) {
		t.Errorf("SpawnPosition error = %v, want ErrWorldNotFound", err)
	}
	if _, err := r.Column(0, 0); !errors.Is(err, ErrWorldNotFound) {
		t.Errorf("Column error = %v, want ErrWorldNotFound", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestRegistryIDsNotReused(t *testing.T) {
	r := NewRegistry()
	a := r.Add(newFlatWorld())
	r.Remove(a)
	b := r.Add(newFlatWorld())
	if a == b {
		t.Errorf("id %d reused after removal", a)
	}
}

func TestLocationChunk(t *testing.T) {
	tests := []struct {
		x, z   float64
		cx, cz int
	}{
		{0, 0, 0, 0},
		{15.9, 16, 0, 1},
		{-0.5, -16, -1, -1},
		{-16.1, 31, -2, 1},
	}
	for _, tt := range tests {
		loc := Location{X: tt.x, Z: tt.z}
		if loc.ChunkX() != tt.cx || loc.ChunkZ() != tt.cz {
			t.Errorf("(%v,%v) chunk = %d,%d, want %d,%d", tt.x, tt.z, loc.ChunkX(), loc.ChunkZ(), tt.cx, tt.cz)
		}
	}
}
