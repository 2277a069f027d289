package packet

// HardcoreFlag is OR-ed into JoinGame.GameMode for hardcore worlds.
const HardcoreFlag uint8 = 0x08

// PlayerAbility flag bits.
const (
	AbilityInvulnerable int8 = 0x01
	AbilityFlying       int8 = 0x02
	AbilityAllowFlight  int8 = 0x04
	AbilityCreativeMode int8 = 0x08
)

// JoinGame is the first packet of the Play state (clientbound 0x25).
type JoinGame struct {
	EntityID         int32  `mc:"i32"`
	GameMode         uint8  `mc:"u8"`
	Dimension        int32  `mc:"i32"`
	Difficulty       uint8  `mc:"u8"`
	MaxPlayers       uint8  `mc:"u8"`
	LevelType        string `mc:"string"`
	ReducedDebugInfo bool   `mc:"bool"`
}

func (JoinGame) PacketID() int32 { return 0x25 }

// SpawnPosition sets the compass target and respawn point (clientbound 0x49).
type SpawnPosition struct {
	Location int64 `mc:"position"`
}

func (SpawnPosition) PacketID() int32 { return 0x49 }

// PlayerAbilities (clientbound 0x2E).
type PlayerAbilities struct {
	Flags       int8    `mc:"i8"`
	FlyingSpeed float32 `mc:"f32"`
	FOVModifier float32 `mc:"f32"`
}

func (PlayerAbilities) PacketID() int32 { return 0x2E }

// PlayerPositionAndLook teleports the client (clientbound 0x32). The client
// answers with TeleportConfirm carrying TeleportID.
type PlayerPositionAndLook struct {
	X          float64 `mc:"f64"`
	Y          float64 `mc:"f64"`
	Z          float64 `mc:"f64"`
	Yaw        float32 `mc:"f32"`
	Pitch      float32 `mc:"f32"`
	Flags      int8    `mc:"i8"`
	TeleportID int32   `mc:"varint"`
}

func (PlayerPositionAndLook) PacketID() int32 { return 0x32 }

// ChunkData carries one chunk column (clientbound 0x22).
type ChunkData struct {
	ChunkX         int32  `mc:"i32"`
	ChunkZ         int32  `mc:"i32"`
	FullChunk      bool   `mc:"bool"`
	PrimaryBitMask int32  `mc:"varint"`
	Data           []byte `mc:"bytearray"`
	BlockEntities  int32  `mc:"varint"`
}

func (ChunkData) PacketID() int32 { return 0x22 }

// KeepAliveClientbound (clientbound 0x21).
type KeepAliveClientbound struct {
	KeepAliveID int64 `mc:"i64"`
}

func (KeepAliveClientbound) PacketID() int32 { return 0x21 }
