package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MaxVarIntLen is the maximum encoded size of a 32-bit VarInt.
	MaxVarIntLen = 5
	// MaxVarLongLen is the maximum encoded size of a 64-bit VarLong.
	MaxVarLongLen = 10
	// MaxStringBytes bounds the byte length of a protocol string
	// (32767 UTF-16 code units, up to 4 bytes each).
	MaxStringBytes = 32767 * 4
)

// decodeVarInt parses a VarInt from the front of p without consuming it.
// Bits of the fifth byte beyond the 32-bit range are dropped.
func decodeVarInt(p []byte) (int32, int, error) {
	var result uint32
	for i := 0; i < MaxVarIntLen; i++ {
		if i >= len(p) {
			return 0, 0, ErrInsufficientData
		}
		b := p[i]
		result |= uint32(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return int32(result), i + 1, nil
		}
	}
	return 0, 0, ErrMalformedVarInt
}

func decodeVarLong(p []byte) (int64, int, error) {
	var result uint64
	for i := 0; i < MaxVarLongLen; i++ {
		if i >= len(p) {
			return 0, 0, ErrInsufficientData
		}
		b := p[i]
		result |= uint64(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return int64(result), i + 1, nil
		}
	}
	return 0, 0, ErrMalformedVarInt
}

// ReadVarInt consumes a VarInt from b.
func ReadVarInt(b *Buffer) (int32, error) {
	v, n, err := decodeVarInt(b.data)
	if err != nil {
		return 0, err
	}
	b.discard(n)
	return v, nil
}

// ReadVarLong consumes a VarLong from b.
func ReadVarLong(b *Buffer) (int64, error) {
	v, n, err := decodeVarLong(b.data)
	if err != nil {
		return 0, err
	}
	b.discard(n)
	return v, nil
}

// PutVarInt encodes value into buf, which must hold MaxVarIntLen bytes,
// and returns the number of bytes written.
func PutVarInt(buf []byte, value int32) int {
	val := uint32(value)
	n := 0
	for {
		b := byte(val & 0x7F)
		val >>= 7
		if val != 0 {
			b |= 0x80
		}
		buf[n] = b
		n++
		if val == 0 {
			break
		}
	}
	return n
}

// VarIntSize returns the encoded size of value.
func VarIntSize(value int32) int {
	val := uint32(value)
	size := 0
	for {
		size++
		val >>= 7
		if val == 0 {
			break
		}
	}
	return size
}

// AppendVarInt appends the VarInt encoding of value to dst.
func AppendVarInt(dst []byte, value int32) []byte {
	var buf [MaxVarIntLen]byte
	n := PutVarInt(buf[:], value)
	return append(dst, buf[:n]...)
}

// AppendVarLong appends the VarLong encoding of value to dst.
func AppendVarLong(dst []byte, value int64) []byte {
	val := uint64(value)
	for {
		b := byte(val & 0x7F)
		val >>= 7
		if val != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if val == 0 {
			return dst
		}
	}
}

// WriteVarInt writes the VarInt encoding of value to w.
func WriteVarInt(w io.Writer, value int32) (int, error) {
	var buf [MaxVarIntLen]byte
	n := PutVarInt(buf[:], value)
	return w.Write(buf[:n])
}

// ReadVarIntFrom reads a VarInt one byte at a time from r. It is used by
// blocking clients; the server side decodes from a Buffer instead.
func ReadVarIntFrom(r io.Reader) (int32, int, error) {
	var result uint32
	var buf [1]byte
	for numRead := 1; numRead <= MaxVarIntLen; numRead++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, numRead - 1, err
		}
		result |= uint32(buf[0]&0x7F) << (7 * (numRead - 1))
		if buf[0]&0x80 == 0 {
			return int32(result), numRead, nil
		}
	}
	return 0, MaxVarIntLen, ErrMalformedVarInt
}

func AppendU8(dst []byte, v uint8) []byte { return append(dst, v) }

func AppendI8(dst []byte, v int8) []byte { return append(dst, byte(v)) }

func AppendU16(dst []byte, v uint16) []byte { return binary.BigEndian.AppendUint16(dst, v) }

func AppendI16(dst []byte, v int16) []byte { return binary.BigEndian.AppendUint16(dst, uint16(v)) }

func AppendU32(dst []byte, v uint32) []byte { return binary.BigEndian.AppendUint32(dst, v) }

func AppendI32(dst []byte, v int32) []byte { return binary.BigEndian.AppendUint32(dst, uint32(v)) }

func AppendU64(dst []byte, v uint64) []byte { return binary.BigEndian.AppendUint64(dst, v) }

func AppendI64(dst []byte, v int64) []byte { return binary.BigEndian.AppendUint64(dst, uint64(v)) }

func AppendF32(dst []byte, v float32) []byte {
	return binary.BigEndian.AppendUint32(dst, math.Float32bits(v))
}

func AppendF64(dst []byte, v float64) []byte {
	return binary.BigEndian.AppendUint64(dst, math.Float64bits(v))
}

func AppendBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}
	return append(dst, 0)
}

// AppendString appends a VarInt byte count followed by the UTF-8 bytes of s.
func AppendString(dst []byte, s string) []byte {
	dst = AppendVarInt(dst, int32(len(s)))
	return append(dst, s...)
}

// AppendByteArray appends a VarInt length followed by data.
func AppendByteArray(dst []byte, data []byte) []byte {
	dst = AppendVarInt(dst, int32(len(data)))
	return append(dst, data...)
}

// AppendUUID appends the 16 raw bytes of id.
func AppendUUID(dst []byte, id uuid.UUID) []byte {
	return append(dst, id[:]...)
}

// EncodePosition packs block coordinates into the 26/12/26-bit position
// format.
func EncodePosition(x, y, z int) int64 {
	return (int64(x)&0x3FFFFFF)<<38 | (int64(y)&0xFFF)<<26 | int64(z)&0x3FFFFFF
}

// DecodePosition is the inverse of EncodePosition, sign-extending each field.
func DecodePosition(val int64) (x, y, z int) {
	x = int(val >> 38)
	y = int((val >> 26) & 0xFFF)
	z = int(val & 0x3FFFFFF)

	if y >= 1<<11 {
		y -= 1 << 12
	}
	if z >= 1<<25 {
		z -= 1 << 26
	}
	return
}

// AppendPosition appends the packed position as a big-endian long.
func AppendPosition(dst []byte, x, y, z int) []byte {
	return AppendI64(dst, EncodePosition(x, y, z))
}

func ReadU8(b *Buffer) (uint8, error) {
	p, err := b.next(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func ReadI8(b *Buffer) (int8, error) {
	v, err := ReadU8(b)
	return int8(v), err
}

func ReadU16(b *Buffer) (uint16, error) {
	p, err := b.next(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(p), nil
}

func ReadI16(b *Buffer) (int16, error) {
	v, err := ReadU16(b)
	return int16(v), err
}

func ReadU32(b *Buffer) (uint32, error) {
	p, err := b.next(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(p), nil
}

func ReadI32(b *Buffer) (int32, error) {
	v, err := ReadU32(b)
	return int32(v), err
}

func ReadU64(b *Buffer) (uint64, error) {
	p, err := b.next(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(p), nil
}

func ReadI64(b *Buffer) (int64, error) {
	v, err := ReadU64(b)
	return int64(v), err
}

func ReadF32(b *Buffer) (float32, error) {
	v, err := ReadU32(b)
	return math.Float32frombits(v), err
}

func ReadF64(b *Buffer) (float64, error) {
	v, err := ReadU64(b)
	return math.Float64frombits(v), err
}

// ReadBool consumes one byte that must be 0 or 1.
func ReadBool(b *Buffer) (bool, error) {
	p, err := b.peek(1)
	if err != nil {
		return false, err
	}
	switch p[0] {
	case 0:
		b.discard(1)
		return false, nil
	case 1:
		b.discard(1)
		return true, nil
	default:
		return false, fmt.Errorf("%w: 0x%02X", ErrInvalidBoolean, p[0])
	}
}

// readPrefixed peeks a VarInt length and the body that follows it. It
// consumes nothing; the caller discards n bytes on success.
func readPrefixed(b *Buffer, limit int) (body []byte, n int, err error) {
	length, prefix, err := decodeVarInt(b.data)
	if err != nil {
		return nil, 0, err
	}
	if length < 0 || int(length) > limit {
		return nil, 0, fmt.Errorf("%w: %d", ErrStringTooLong, length)
	}
	if len(b.data)-prefix < int(length) {
		return nil, 0, ErrInsufficientData
	}
	return b.data[prefix : prefix+int(length)], prefix + int(length), nil
}

// ReadString consumes a length-prefixed UTF-8 string.
func ReadString(b *Buffer) (string, error) {
	body, n, err := readPrefixed(b, MaxStringBytes)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(body) {
		return "", ErrInvalidUTF8
	}
	s := string(body)
	b.discard(n)
	return s, nil
}

// ReadByteArray consumes a length-prefixed byte array and returns a copy.
func ReadByteArray(b *Buffer) ([]byte, error) {
	body, n, err := readPrefixed(b, math.MaxInt32)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(body))
	copy(out, body)
	b.discard(n)
	return out, nil
}

// ReadUUID consumes 16 raw bytes.
func ReadUUID(b *Buffer) (uuid.UUID, error) {
	var id uuid.UUID
	p, err := b.next(16)
	if err != nil {
		return id, err
	}
	copy(id[:], p)
	return id, nil
}

// ReadRest consumes and returns a copy of everything left in b.
func ReadRest(b *Buffer) []byte {
	out := make([]byte, b.Len())
	copy(out, b.data)
	b.discard(len(b.data))
	return out
}
