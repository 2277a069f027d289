package protocol

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

type testPacket struct {
	EntityID    int32  `mc:"i32"`
	GameMode    uint8  `mc:"u8"`
	Dimension   int32  `mc:"i32"`
	Difficulty  uint8  `mc:"u8"`
	MaxPlayers  uint8  `mc:"u8"`
	LevelType   string `mc:"string"`
	ReducedInfo bool   `mc:"bool"`
}

func (testPacket) PacketID() int32 { return 0x25 }

func TestMarshalUnmarshal(t *testing.T) {
	original := &testPacket{
		EntityID:    42,
		GameMode:    1,
		Dimension:   -1,
		Difficulty:  1,
		MaxPlayers:  20,
		LevelType:   "flat",
		ReducedInfo: false,
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	decoded := &testPacket{}
	if err := Unmarshal(data, decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if *original != *decoded {
		t.Errorf("round-trip mismatch:\n  got  %+v\n  want %+v", decoded, original)
	}
}

type testVarIntPacket struct {
	ProtocolVersion int32  `mc:"varint"`
	ServerAddress   string `mc:"string"`
	ServerPort      uint16 `mc:"u16"`
	NextState       int32  `mc:"varint"`
}

func (testVarIntPacket) PacketID() int32 { return 0x00 }

func TestMarshalVarInt(t *testing.T) {
	original := &testVarIntPacket{
		ProtocolVersion: 404,
		ServerAddress:   "localhost",
		ServerPort:      25565,
		NextState:       2,
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	decoded := &testVarIntPacket{}
	if err := Unmarshal(data, decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if *original != *decoded {
		t.Errorf("round-trip mismatch:\n  got  %+v\n  want %+v", decoded, original)
	}
}

type testRestPacket struct {
	ID   int32  `mc:"varint"`
	Data []byte `mc:"rest"`
}

func (testRestPacket) PacketID() int32 { return 0xFF }

func TestMarshalRest(t *testing.T) {
	original := &testRestPacket{
		ID:   5,
		Data: []byte{0xDE, 0xAD, 0xBE, 0xEF},
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	decoded := &testRestPacket{}
	if err := Unmarshal(data, decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if original.ID != decoded.ID {
		t.Errorf("ID mismatch: got %d, want %d", decoded.ID, original.ID)
	}
	if string(original.Data) != string(decoded.Data) {
		t.Errorf("Data mismatch: got %x, want %x", decoded.Data, original.Data)
	}
}

type testUUIDPacket struct {
	ID   uuid.UUID `mc:"uuid"`
	Name string    `mc:"string"`
}

func (testUUIDPacket) PacketID() int32 { return 0x30 }

func TestMarshalUUID(t *testing.T) {
	original := &testUUIDPacket{ID: uuid.NewSHA1(uuid.NameSpaceDNS, []byte("jeb_")), Name: "jeb_"}
	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	decoded := &testUUIDPacket{}
	if err := Unmarshal(data, decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if *original != *decoded {
		t.Errorf("round-trip mismatch:\n  got  %+v\n  want %+v", decoded, original)
	}
}

func TestUnmarshalTrailingData(t *testing.T) {
	data := append(AppendVarInt(nil, 404), 0x99)
	err := Unmarshal(data, &testTrailing{})
	if !errors.Is(err, ErrTrailingData) {
		t.Fatalf("Unmarshal error = %v, want ErrTrailingData", err)
	}
}

type testTrailing struct {
	Version int32 `mc:"varint"`
}

func (testTrailing) PacketID() int32 { return 0x00 }

func TestUnmarshalTruncated(t *testing.T) {
	err := Unmarshal([]byte{0x01}, &testVarIntPacket{})
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("Unmarshal error = %v, want ErrInsufficientData", err)
	}
}

func TestMarshalRaw(t *testing.T) {
	raw, err := MarshalRaw(&testTrailing{Version: 404})
	if err != nil {
		t.Fatalf("MarshalRaw: %v", err)
	}
	if raw.ID != 0x00 || len(raw.Payload) != VarIntSize(404) {
		t.Errorf("MarshalRaw = %+v", raw)
	}
}
