package world

import (
	"sync"

	"github.com/obelisk-mc/obelisk/internal/server/world/gen"
)

const (
	// SectionCount is the number of 16-block-high sections in a column.
	SectionCount = 16
	// SectionVolume is the number of blocks in one section.
	SectionVolume = gen.SectionVolume
	// DirectBitsPerEntry is the width of a global palette state id in 1.13.2.
	DirectBitsPerEntry = 14
)

// BlockIDArray is the flat list of global block state ids for one section,
// indexed y*256 + z*16 + x.
type BlockIDArray struct {
	IDs          []uint32
	BitsPerEntry int
}

// Column is an immutable generated chunk column.
type Column struct {
	X, Z int
	data *gen.ChunkData
}

// Section returns the block ids of section i, or false when the section is
// empty (all air) or out of range.
func (c *Column) Section(i int) (BlockIDArray, bool) {
	if i < 0 || i >= SectionCount || c.data.Sections[i] == nil {
		return BlockIDArray{}, false
	}
	ids := make([]uint32, SectionVolume)
	copy(ids, c.data.Sections[i].Blocks[:])
	return BlockIDArray{IDs: ids, BitsPerEntry: DirectBitsPerEntry}, true
}

// Biomes returns the biome id of every x/z column, indexed z*16 + x.
func (c *Column) Biomes() [256]int32 { return c.data.Biomes }

// Block returns the block state at local coordinates.
func (c *Column) Block(x, y, z int) uint32 {
	if y < 0 || y >= SectionCount*16 {
		return 0
	}
	return c.data.GetBlock(x&0xF, y, z&0xF)
}

// World holds metadata and lazily generated terrain columns.
type World struct {
	id        ID
	meta      Metadata
	generator gen.Generator

	mu      sync.RWMutex
	columns map[gen.ChunkPos]*Column
}

// NewWorld creates a new World with the given generator.
func NewWorld(meta Metadata, generator gen.Generator) *World {
	return &World{
		meta:      meta,
		generator: generator,
		columns:   make(map[gen.ChunkPos]*Column),
	}
}

// ID returns the handle assigned by the Registry, or zero if unregistered.
func (w *World) ID() ID { return w.id }

func (w *World) Metadata() Metadata { return w.meta }

// Column returns the column at the given chunk coordinates, generating and
// caching it if needed.
func (w *World) Column(cx, cz int) *Column {
	pos := gen.ChunkPos{X: cx, Z: cz}

	w.mu.RLock()
	if c, ok := w.columns[pos]; ok {
		w.mu.RUnlock()
		return c
	}
	w.mu.RUnlock()

	c := &Column{X: cx, Z: cz, data: w.generator.Generate(cx, cz)}

	w.mu.Lock()
	// Double-check after acquiring write lock.
	if existing, ok := w.columns[pos]; ok {
		w.mu.Unlock()
		return existing
	}
	w.columns[pos] = c
	w.mu.Unlock()
	return c
}

// HeightAt returns the y of the highest solid block at the block position.
func (w *World) HeightAt(x, z int) int {
	return w.generator.HeightAt(x, z)
}

// LoadedColumns returns the number of cached columns.
func (w *World) LoadedColumns() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.columns)
}
