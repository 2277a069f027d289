// Package gamedata loads block data published by PrismarineJS minecraft-data.
package gamedata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/obelisk-mc/obelisk/pkg/protocol"
)

// ErrEmptyPalette is returned when a blocks file lists no blocks.
var ErrEmptyPalette = errors.New("gamedata: empty palette")

// Block is one entry of blocks.json.
type Block struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	MinStateID   uint32 `json:"minStateId"`
	MaxStateID   uint32 `json:"maxStateId"`
	DefaultState uint32 `json:"defaultState"`
}

// Palette maps block names to global palette state ids.
type Palette struct {
	blocks   []Block
	byName   map[string]int
	maxState uint32
}

// LoadPalette parses a blocks.json document.
func LoadPalette(r io.Reader) (*Palette, error) {
	var blocks []Block
	if err := json.NewDecoder(r).Decode(&blocks); err != nil {
		return nil, fmt.Errorf("decode blocks: %w", err)
	}
	if len(blocks) == 0 {
		return nil, ErrEmptyPalette
	}

	p := &Palette{blocks: blocks, byName: make(map[string]int, len(blocks))}
	for i, b := range blocks {
		if b.MinStateID > b.MaxStateID || b.DefaultState < b.MinStateID || b.DefaultState > b.MaxStateID {
			return nil, fmt.Errorf("block %q: inconsistent state range %d..%d default %d",
				b.Name, b.MinStateID, b.MaxStateID, b.DefaultState)
		}
		p.byName[b.Name] = i
		p.maxState = max(p.maxState, b.MaxStateID)
	}
	return p, nil
}

// LoadPaletteFile reads a blocks.json file from disk.
func LoadPaletteFile(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open palette: %w", err)
	}
	defer f.Close()

	p, err := LoadPalette(f)
	if err != nil {
		return nil, fmt.Errorf("load palette %s: %w", path, err)
	}
	return p, nil
}

// Block returns the block with the given name. A "minecraft:" prefix is
// accepted.
func (p *Palette) Block(name string) (Block, bool) {
	i, ok := p.byName[strings.TrimPrefix(name, "minecraft:")]
	if !ok {
		return Block{}, false
	}
	return p.blocks[i], true
}

// DefaultState returns the default state id of the named block.
func (p *Palette) DefaultState(name string) (uint32, bool) {
	b, ok := p.Block(name)
	return b.DefaultState, ok
}

// Len returns the number of blocks.
func (p *Palette) Len() int { return len(p.blocks) }

// MaxStateID returns the highest state id of any block.
func (p *Palette) MaxStateID() uint32 { return p.maxState }

// BitsPerEntry returns the width needed to address every state directly.
func (p *Palette) BitsPerEntry() int { return protocol.BitsFor(p.maxState) }
