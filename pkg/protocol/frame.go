package protocol

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// MaxFrameLength is the largest body a frame may declare (the maximum value
// of a three-byte VarInt).
const MaxFrameLength = 1<<21 - 1

// RawPacket is one decoded frame: a packet id and its undecoded payload.
type RawPacket struct {
	ID      int32
	Payload []byte
}

// NextPacket decodes one frame from the front of buf.
//
// When buf holds only part of a frame it returns ok == false and consumes
// nothing, so it can be called again after more bytes arrive. Any error is
// fatal for the stream.
func NextPacket(buf *Buffer) (p RawPacket, ok bool, err error) {
	length, prefix, err := decodeVarInt(buf.data)
	switch {
	case errors.Is(err, ErrInsufficientData):
		return RawPacket{}, false, nil
	case err != nil:
		return RawPacket{}, false, ErrFrameLengthTooLong
	}
	if length < 0 || length > MaxFrameLength {
		return RawPacket{}, false, fmt.Errorf("%w: %d", ErrFrameLengthTooLong, length)
	}
	if len(buf.data)-prefix < int(length) {
		return RawPacket{}, false, nil
	}

	body := buf.data[prefix : prefix+int(length)]
	id, idSize, err := decodeVarInt(body)
	switch {
	case errors.Is(err, ErrInsufficientData):
		// The id would have to borrow bytes from whatever follows this frame.
		return RawPacket{}, false, fmt.Errorf("%w: packet id exceeds declared length %d", ErrFrameOverrun, length)
	case err != nil:
		return RawPacket{}, false, fmt.Errorf("read packet id: %w", err)
	}

	payload := make([]byte, len(body)-idSize)
	copy(payload, body[idSize:])
	buf.discard(prefix + int(length))

	return RawPacket{ID: id, Payload: payload}, true, nil
}

// AppendFrame appends the length-prefixed encoding of p to dst.
func AppendFrame(dst []byte, p RawPacket) []byte {
	total := VarIntSize(p.ID) + len(p.Payload)
	dst = AppendVarInt(dst, int32(total))
	dst = AppendVarInt(dst, p.ID)
	return append(dst, p.Payload...)
}

// EncodeFrame returns the length-prefixed encoding of p.
func EncodeFrame(p RawPacket) []byte {
	total := VarIntSize(p.ID) + len(p.Payload)
	return AppendFrame(make([]byte, 0, VarIntSize(int32(total))+total), p)
}

// ReadRawPacket reads one frame from a blocking reader.
func ReadRawPacket(r io.Reader) (RawPacket, error) {
	length, _, err := ReadVarIntFrom(r)
	if err != nil {
		return RawPacket{}, fmt.Errorf("read packet length: %w", err)
	}
	if length < 1 || length > MaxFrameLength {
		return RawPacket{}, fmt.Errorf("%w: %d", ErrFrameLengthTooLong, length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return RawPacket{}, fmt.Errorf("read packet body: %w", err)
	}

	id, idSize, err := decodeVarInt(body)
	if err != nil {
		return RawPacket{}, fmt.Errorf("read packet id: %w", err)
	}
	return RawPacket{ID: id, Payload: body[idSize:]}, nil
}

// WriteRawPacket writes p to w as a single frame.
func WriteRawPacket(w io.Writer, p RawPacket) error {
	if _, err := w.Write(EncodeFrame(p)); err != nil {
		return fmt.Errorf("write packet 0x%02X: %w", p.ID, err)
	}
	return nil
}

// WritePacket marshals p and writes it to w as a single frame.
func WritePacket(w io.Writer, p Packet) error {
	raw, err := MarshalRaw(p)
	if err != nil {
		return err
	}
	return WriteRawPacket(w, raw)
}

// ReadPacket reads one frame and unmarshals it into p, which must match the
// frame's packet id.
func ReadPacket(r io.Reader, p Packet) error {
	raw, err := ReadRawPacket(r)
	if err != nil {
		return err
	}
	if raw.ID != p.PacketID() {
		return fmt.Errorf("expected packet 0x%02X, got 0x%02X", p.PacketID(), raw.ID)
	}
	return Unmarshal(raw.Payload, p)
}

// Equal reports whether two raw packets carry the same id and payload.
func (p RawPacket) Equal(o RawPacket) bool {
	return p.ID == o.ID && bytes.Equal(p.Payload, o.Payload)
}
