package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeFrameLayout(t *testing.T) {
	got := EncodeFrame(RawPacket{ID: 0x01, Payload: []byte{0xAA, 0xBB}})
	want := []byte{0x03, 0x01, 0xAA, 0xBB}
	if !bytes.Equal(got, want) {
		t.Fatalf("EncodeFrame = % X, want % X", got, want)
	}
}

func TestNextPacketRoundTrip(t *testing.T) {
	packets := []RawPacket{
		{ID: 0x00, Payload: nil},
		{ID: 0x25, Payload: []byte("join")},
		{ID: 300, Payload: bytes.Repeat([]byte{7}, 200)},
	}

	var stream []byte
	for _, p := range packets {
		stream = AppendFrame(stream, p)
	}

	buf := NewBuffer(stream)
	for i, want := range packets {
		got, ok, err := NextPacket(buf)
		if err != nil {
			t.Fatalf("packet %d: NextPacket: %v", i, err)
		}
		if !ok {
			t.Fatalf("packet %d: NextPacket reported need more data", i)
		}
		if got.ID != want.ID || !bytes.Equal(got.Payload, want.Payload) {
			t.Errorf("packet %d = {0x%02X % X}, want {0x%02X % X}", i, got.ID, got.Payload, want.ID, want.Payload)
		}
	}
	if buf.Len() != 0 {
		t.Errorf("%d bytes left after decoding all frames", buf.Len())
	}
}

func TestNextPacketByteAtATime(t *testing.T) {
	want := RawPacket{ID: 0x02, Payload: AppendString(AppendString(nil, "uuid"), "Notch")}
	frame := EncodeFrame(want)

	buf := NewBuffer(nil)
	for i, b := range frame {
		buf.Write([]byte{b})
		got, ok, err := NextPacket(buf)
		if err != nil {
			t.Fatalf("byte %d: NextPacket: %v", i, err)
		}
		if i < len(frame)-1 {
			if ok {
				t.Fatalf("byte %d: got a packet before the frame was complete", i)
			}
			if buf.Len() != i+1 {
				t.Fatalf("byte %d: partial call consumed bytes: %d buffered, want %d", i, buf.Len(), i+1)
			}
			continue
		}
		if !ok {
			t.Fatal("final byte: NextPacket still needs more data")
		}
		if !got.Equal(want) {
			t.Errorf("NextPacket = %+v, want %+v", got, want)
		}
	}
	if buf.Len() != 0 {
		t.Errorf("%d bytes left after complete frame", buf.Len())
	}
}

func TestNextPacketLeavesTrailingPartialFrame(t *testing.T) {
	first := EncodeFrame(RawPacket{ID: 1, Payload: []byte{1, 2, 3, 4, 5, 6, 7, 8}})
	second := EncodeFrame(RawPacket{ID: 0, Payload: nil})

	buf := NewBuffer(append(append([]byte(nil), first...), second[:1]...))
	if _, ok, err := NextPacket(buf); !ok || err != nil {
		t.Fatalf("first frame: ok=%v err=%v", ok, err)
	}
	if _, ok, err := NextPacket(buf); ok || err != nil {
		t.Fatalf("partial second frame: ok=%v err=%v, want need more data", ok, err)
	}
	if !bytes.Equal(buf.Bytes(), second[:1]) {
		t.Errorf("buffer = % X, want % X", buf.Bytes(), second[:1])
	}
}

func TestNextPacketLengthTooLong(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"unterminated_prefix", []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}},
		{"negative_length", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
		{"above_max", AppendVarInt(nil, MaxFrameLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NextPacket(NewBuffer(tt.data))
			if !errors.Is(err, ErrFrameLengthTooLong) {
				t.Fatalf("NextPacket error = %v, want ErrFrameLengthTooLong", err)
			}
		})
	}
}

func TestNextPacketShortPrefixNeedsMoreData(t *testing.T) {
	buf := NewBuffer([]byte{0x80, 0x80, 0x80, 0x80})
	_, ok, err := NextPacket(buf)
	if ok || err != nil {
		t.Fatalf("NextPacket = ok %v err %v, want need more data", ok, err)
	}
	if buf.Len() != 4 {
		t.Errorf("prefix bytes consumed: %d left, want 4", buf.Len())
	}
}

func TestNextPacketOverrun(t *testing.T) {
	// The frame declares one body byte, but that byte starts a multi-byte
	// packet id. The bytes after it happen to form a valid frame of their
	// own; the framer must not borrow them.
	next := EncodeFrame(RawPacket{ID: 0x01, Payload: []byte{0, 0, 0, 0, 0, 0, 0, 42}})
	stream := append([]byte{0x01, 0x80}, next...)

	_, ok, err := NextPacket(NewBuffer(stream))
	if ok {
		t.Fatal("NextPacket returned a packet from an inconsistent frame")
	}
	if !errors.Is(err, ErrFrameOverrun) {
		t.Fatalf("NextPacket error = %v, want ErrFrameOverrun", err)
	}
}

func TestNextPacketEmptyBody(t *testing.T) {
	_, _, err := NextPacket(NewBuffer([]byte{0x00, 0x01, 0x00}))
	if !errors.Is(err, ErrFrameOverrun) {
		t.Fatalf("NextPacket error = %v, want ErrFrameOverrun", err)
	}
}

func TestReadWriteRawPacket(t *testing.T) {
	var conn bytes.Buffer
	want := RawPacket{ID: 0x01, Payload: AppendI64(nil, 1234567890)}
	if err := WriteRawPacket(&conn, want); err != nil {
		t.Fatalf("WriteRawPacket: %v", err)
	}

	got, err := ReadRawPacket(&conn)
	if err != nil {
		t.Fatalf("ReadRawPacket: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("ReadRawPacket = %+v, want %+v", got, want)
	}
}
