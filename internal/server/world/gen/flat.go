package gen

import "fmt"

const biomePlains = 1

// BlockStates names the global palette state ids the flat generator uses.
type BlockStates struct {
	Bedrock uint32
	Stone   uint32
	Dirt    uint32
	Grass   uint32
}

// DefaultBlockStates are the 1.13.2 global palette ids
// (grass_block is its snowy=false state).
var DefaultBlockStates = BlockStates{
	Bedrock: 33,
	Stone:   1,
	Dirt:    10,
	Grass:   9,
}

// StateLookup resolves a block name to its default state id.
type StateLookup interface {
	DefaultState(name string) (uint32, bool)
}

// ResolveBlockStates looks up the flat generator's blocks in a palette.
func ResolveBlockStates(l StateLookup) (BlockStates, error) {
	var s BlockStates
	for _, b := range []struct {
		name string
		dst  *uint32
	}{
		{"bedrock", &s.Bedrock},
		{"stone", &s.Stone},
		{"dirt", &s.Dirt},
		{"grass_block", &s.Grass},
	} {
		id, ok := l.DefaultState(b.name)
		if !ok {
			return BlockStates{}, fmt.Errorf("palette has no %q block", b.name)
		}
		*b.dst = id
	}
	return s, nil
}

// FlatGenerator generates a classic superflat world:
// bedrock at y=0, stone y=1..2, dirt y=3, grass y=4.
type FlatGenerator struct {
	states BlockStates
}

// NewFlatGenerator creates a FlatGenerator using the given block states.
func NewFlatGenerator(states BlockStates) *FlatGenerator {
	return &FlatGenerator{states: states}
}

func (g *FlatGenerator) Generate(_, _ int) *ChunkData {
	c := &ChunkData{}

	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			c.SetBlock(x, 0, z, g.states.Bedrock)
			c.SetBlock(x, 1, z, g.states.Stone)
			c.SetBlock(x, 2, z, g.states.Stone)
			c.SetBlock(x, 3, z, g.states.Dirt)
			c.SetBlock(x, 4, z, g.states.Grass)
			c.SetBiome(x, z, biomePlains)
		}
	}
	return c
}

func (g *FlatGenerator) HeightAt(_, _ int) int {
	return 4 // top solid block is at y=4 (grass)
}
