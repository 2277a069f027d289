package world

import (
	"sync"
	"testing"

	"github.com/obelisk-mc/obelisk/internal/server/world/gen"
)

func newFlatWorld() *World {
	return NewWorld(Metadata{Dimension: Overworld, LevelType: LevelFlat}, gen.NewFlatGenerator(gen.DefaultBlockStates))
}

func TestWorldFlatColumn(t *testing.T) {
	w := newFlatWorld()
	c := w.Column(0, 0)

	if got := c.Block(0, 0, 0); got != gen.DefaultBlockStates.Bedrock {
		t.Errorf("Block(0,0,0) = %d, want bedrock", got)
	}
	if got := c.Block(5, 4, 10); got != gen.DefaultBlockStates.Grass {
		t.Errorf("Block(5,4,10) = %d, want grass", got)
	}
	if got := c.Block(5, 64, 10); got != 0 {
		t.Errorf("Block(5,64,10) = %d, want air", got)
	}
	if got := c.Block(0, -1, 0); got != 0 {
		t.Errorf("Block below the world = %d, want air", got)
	}
}

func TestColumnSection(t *testing.T) {
	c := newFlatWorld().Column(2, -3)

	sec, ok := c.Section(0)
	if !ok {
		t.Fatal("section 0 reported empty")
	}
	if len(sec.IDs) != SectionVolume || sec.BitsPerEntry != DirectBitsPerEntry {
		t.Fatalf("section 0: %d ids at %d bits", len(sec.IDs), sec.BitsPerEntry)
	}
	if sec.IDs[4*256] != gen.DefaultBlockStates.Grass {
		t.Errorf("ids[y=4] = %d, want grass", sec.IDs[4*256])
	}

	for _, i := range []int{1, 15, -1, 16} {
		if _, ok := c.Section(i); ok {
			t.Errorf("Section(%d) reported non-empty", i)
		}
	}
}

func TestColumnSectionIsCopy(t *testing.T) {
	c := newFlatWorld().Column(0, 0)
	sec, _ := c.Section(0)
	sec.IDs[0] = 999
	if got := c.Block(0, 0, 0); got == 999 {
		t.Error("mutating a section array changed the column")
	}
}

func TestWorldColumnCached(t *testing.T) {
	w := newFlatWorld()

	var wg sync.WaitGroup
	cols := make([]*Column, 8)
	for i := range cols {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cols[i] = w.Column(1, 1)
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(cols); i++ {
		if cols[i] != cols[0] {
			t.Fatal("concurrent Column calls returned different columns")
		}
	}
	if n := w.LoadedColumns(); n != 1 {
		t.Errorf("LoadedColumns = %d, want 1", n)
	}
}
