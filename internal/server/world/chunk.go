package world

import (
	"github.com/obelisk-mc/obelisk/internal/server/packet"
	"github.com/obelisk-mc/obelisk/pkg/protocol"
)

const (
	sectionLightBytes = SectionVolume / 2 // 4096 nibbles
	biomeCount        = 256
)

var fullLight = func() []byte {
	b := make([]byte, sectionLightBytes)
	for i := range b {
		b[i] = 0xFF
	}
	return b
}()

// EncodeColumn builds the full-column ChunkData packet for c. Each non-empty
// section is written with the direct palette (14 bits per entry, no palette
// list), followed by block light and, when skyLight is set, sky light. The
// 256 biome ids close the payload.
func EncodeColumn(c *Column, skyLight bool) packet.ChunkData {
	var mask int32
	var data []byte

	for i := 0; i < SectionCount; i++ {
		sec, ok := c.Section(i)
		if !ok {
			continue
		}
		mask |= 1 << i
		data = appendSection(data, sec, skyLight)
	}

	biomes := c.Biomes()
	for _, b := range biomes {
		data = protocol.AppendI32(data, b)
	}

	return packet.ChunkData{
		ChunkX:         int32(c.X),
		ChunkZ:         int32(c.Z),
		FullChunk:      true,
		PrimaryBitMask: mask,
		Data:           data,
		BlockEntities:  0,
	}
}

func appendSection(dst []byte, sec BlockIDArray, skyLight bool) []byte {
	dst = protocol.AppendU8(dst, uint8(sec.BitsPerEntry))
	dst = protocol.AppendLongArray(dst, protocol.PackBits(sec.IDs, sec.BitsPerEntry))
	dst = append(dst, fullLight...)
	if skyLight {
		dst = append(dst, fullLight...)
	}
	return dst
}

// SectionSize returns the encoded size of one section with the given width.
func SectionSize(bitsPerEntry int, skyLight bool) int {
	words := protocol.PackedLen(SectionVolume, bitsPerEntry)
	n := 1 + protocol.VarIntSize(int32(words)) + words*8 + sectionLightBytes
	if skyLight {
		n += sectionLightBytes
	}
	return n
}
