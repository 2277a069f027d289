package protocol

import "math/bits"

// PackBits packs values into 64-bit words, bitsPerEntry bits each. Entries
// fill a word from its most significant bit downwards and never straddle a
// word boundary: when the next entry does not fit, the low bits of the
// current word stay zero and the entry starts at bit 63 of a new word.
//
// Every value must fit in bitsPerEntry bits; higher bits are masked off.
//
// The result always has PackedLen(len(values), bitsPerEntry) words. A final
// word whose entries are all zero is still emitted: the client derives the
// array length from the entry count and rejects a shorter array.
func PackBits(values []uint32, bitsPerEntry int) []uint64 {
	if len(values) == 0 || bitsPerEntry <= 0 || bitsPerEntry > 32 {
		return nil
	}

	mask := uint64(1)<<bitsPerEntry - 1
	words := make([]uint64, 0, PackedLen(len(values), bitsPerEntry))

	var word uint64
	offset := 64 - bitsPerEntry
	for _, v := range values {
		if offset < 0 {
			words = append(words, word)
			word = 0
			offset = 64 - bitsPerEntry
		}
		word |= (uint64(v) & mask) << offset
		offset -= bitsPerEntry
	}
	// offset < 64-bitsPerEntry here, so the last word holds at least one entry.
	return append(words, word)
}

// UnpackBits reverses PackBits, returning count entries.
func UnpackBits(words []uint64, bitsPerEntry, count int) []uint32 {
	if bitsPerEntry <= 0 || bitsPerEntry > 32 {
		return nil
	}

	perWord := 64 / bitsPerEntry
	mask := uint64(1)<<bitsPerEntry - 1
	out := make([]uint32, 0, count)
	for i := 0; i < count; i++ {
		w := i / perWord
		if w >= len(words) {
			break
		}
		shift := 64 - bitsPerEntry*(i%perWord+1)
		out = append(out, uint32(words[w]>>shift&mask))
	}
	return out
}

// PackedLen returns the number of words PackBits produces for count entries.
func PackedLen(count, bitsPerEntry int) int {
	if count <= 0 || bitsPerEntry <= 0 || bitsPerEntry > 32 {
		return 0
	}
	perWord := 64 / bitsPerEntry
	return (count + perWord - 1) / perWord
}

// BitsFor returns the smallest width that can hold maxValue, at least 1.
func BitsFor(maxValue uint32) int {
	if maxValue == 0 {
		return 1
	}
	return bits.Len32(maxValue)
}

// AppendLongArray appends a VarInt word count followed by each word as a
// big-endian long.
func AppendLongArray(dst []byte, words []uint64) []byte {
	dst = AppendVarInt(dst, int32(len(words)))
	for _, w := range words {
		dst = AppendU64(dst, w)
	}
	return dst
}
