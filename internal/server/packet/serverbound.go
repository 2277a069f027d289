package packet

// Serverbound play packets

// TeleportConfirm acknowledges a PlayerPositionAndLook (serverbound 0x00).
type TeleportConfirm struct {
	TeleportID int32 `mc:"varint"`
}

func (TeleportConfirm) PacketID() int32 { return 0x00 }

// ClientSettings is sent by the client with their settings (serverbound 0x04).
type ClientSettings struct {
	Locale       string `mc:"string"`
	ViewDistance int8   `mc:"i8"`
	ChatMode     int32  `mc:"varint"`
	ChatColors   bool   `mc:"bool"`
	SkinParts    uint8  `mc:"u8"`
	MainHand     int32  `mc:"varint"`
}

func (ClientSettings) PacketID() int32 { return 0x04 }

// KeepAliveServerbound is the client's reply to KeepAliveClientbound (serverbound 0x0E).
type KeepAliveServerbound struct {
	KeepAliveID int64 `mc:"i64"`
}

func (KeepAliveServerbound) PacketID() int32 { return 0x0E }

// PlayerPosition (serverbound 0x10).
type PlayerPosition struct {
	X        float64 `mc:"f64"`
	FeetY    float64 `mc:"f64"`
	Z        float64 `mc:"f64"`
	OnGround bool    `mc:"bool"`
}

func (PlayerPosition) PacketID() int32 { return 0x10 }

// PlayerPositionAndLookServerbound (serverbound 0x11).
type PlayerPositionAndLookServerbound struct {
	X        float64 `mc:"f64"`
	FeetY    float64 `mc:"f64"`
	Z        float64 `mc:"f64"`
	Yaw      float32 `mc:"f32"`
	Pitch    float32 `mc:"f32"`
	OnGround bool    `mc:"bool"`
}

func (PlayerPositionAndLookServerbound) PacketID() int32 { return 0x11 }
