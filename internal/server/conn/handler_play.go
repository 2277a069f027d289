package conn

import (
	"fmt"
	"math"

	"github.com/obelisk-mc/obelisk/internal/server/packet"
	"github.com/obelisk-mc/obelisk/internal/server/player"
	"github.com/obelisk-mc/obelisk/internal/server/world"
	"github.com/obelisk-mc/obelisk/pkg/protocol"
)

// joinSequence adds the packets that put p into the world to b: JoinGame
// first, then the spawn point, abilities, the columns around spawn and
// finally the player position.
func (c *Connection) joinSequence(b *packetBatch, p *player.Player, meta world.Metadata) error {
	gameMode := uint8(meta.GameMode)
	if meta.Hardcore {
		gameMode |= packet.HardcoreFlag
	}

	// 1. Join Game
	if err := b.add(StatePlay, &packet.JoinGame{
		EntityID:         p.EntityID,
		GameMode:         gameMode,
		Dimension:        int32(meta.Dimension),
		Difficulty:       uint8(meta.Difficulty),
		MaxPlayers:       c.cfg.JoinMaxPlayers(),
		LevelType:        meta.LevelType.String(),
		ReducedDebugInfo: false,
	}); err != nil {
		return fmt.Errorf("write join game: %w", err)
	}

	x, y, z, err := c.worlds.SpawnPosition()
	if err != nil {
		return fmt.Errorf("spawn position: %w", err)
	}
	bx, by, bz := int(math.Floor(x)), int(math.Floor(y)), int(math.Floor(z))

	// 2. Spawn Position
	if err := b.add(StatePlay, &packet.SpawnPosition{
		Location: protocol.EncodePosition(bx, by, bz),
	}); err != nil {
		return fmt.Errorf("write spawn position: %w", err)
	}

	// 3. Player Abilities
	if err := b.add(StatePlay, &packet.PlayerAbilities{
		Flags:       abilityFlags(meta.GameMode),
		FlyingSpeed: 0.05,
		FOVModifier: 0.1,
	}); err != nil {
		return fmt.Errorf("write player abilities: %w", err)
	}

	// 4. Chunk Data
	if err := c.addColumns(b, bx>>4, bz>>4, meta.Dimension.HasSkyLight()); err != nil {
		return err
	}

	// 5. Player Position And Look
	teleportID := c.teleportID + 1
	if err := b.add(StatePlay, &packet.PlayerPositionAndLook{
		X:          x,
		Y:          y,
		Z:          z,
		Flags:      0x00, // all absolute
		TeleportID: teleportID,
	}); err != nil {
		return fmt.Errorf("write position and look: %w", err)
	}
	c.teleportID = teleportID
	p.SetPosition(player.Position{X: x, Y: y, Z: z})

	c.log.Debug("join sequence built", "packets", len(b.frames))
	return nil
}

// addColumns adds the columns within the view distance of (cx, cz) to b,
// nearest rings first.
func (c *Connection) addColumns(b *packetBatch, cx, cz int, skyLight bool) error {
	vd := c.cfg.ViewDistance
	for r := 0; r <= vd; r++ {
		for dx := -r; dx <= r; dx++ {
			for dz := -r; dz <= r; dz++ {
				if max(abs(dx), abs(dz)) != r {
					continue
				}
				col, err := c.worlds.Column(cx+dx, cz+dz)
				if err != nil {
					return fmt.Errorf("column %d,%d: %w", cx+dx, cz+dz, err)
				}
				chunk := world.EncodeColumn(col, skyLight)
				if err := b.add(StatePlay, &chunk); err != nil {
					return fmt.Errorf("write chunk %d,%d: %w", cx+dx, cz+dz, err)
				}
			}
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func abilityFlags(m world.GameMode) int8 {
	switch m {
	case world.Creative:
		return packet.AbilityInvulnerable | packet.AbilityAllowFlight | packet.AbilityCreativeMode
	case world.Spectator:
		return packet.AbilityInvulnerable | packet.AbilityFlying | packet.AbilityAllowFlight
	}
	return 0
}

// sendKeepAlive queues a keep alive and flushes it.
func (c *Connection) sendKeepAlive() error {
	c.keepAliveID++
	if err := c.writePacket(&packet.KeepAliveClientbound{KeepAliveID: c.keepAliveID}); err != nil {
		return fmt.Errorf("write keep alive: %w", err)
	}
	return c.flush()
}

// handlePlay decodes the serverbound play packets the server tracks. Every
// other id is dropped.
func (c *Connection) handlePlay(raw protocol.RawPacket) error {
	switch raw.ID {
	case 0x00: // Teleport Confirm
		var pkt packet.TeleportConfirm
		if err := protocol.Unmarshal(raw.Payload, &pkt); err != nil {
			return fmt.Errorf("unmarshal teleport confirm: %w", err)
		}
		c.log.Debug("teleport confirmed", "teleportID", pkt.TeleportID, "pending", c.teleportID)
	case 0x04: // Client Settings
		var pkt packet.ClientSettings
		if err := protocol.Unmarshal(raw.Payload, &pkt); err != nil {
			return fmt.Errorf("unmarshal client settings: %w", err)
		}
		c.log.Debug("client settings", "locale", pkt.Locale, "viewDistance", pkt.ViewDistance)
	case 0x0E: // KeepAlive
		var pkt packet.KeepAliveServerbound
		if err := protocol.Unmarshal(raw.Payload, &pkt); err != nil {
			return fmt.Errorf("unmarshal keep alive: %w", err)
		}
		if pkt.KeepAliveID != c.keepAliveID {
			c.log.Debug("stale keep alive", "got", pkt.KeepAliveID, "want", c.keepAliveID)
		}
	case 0x10: // Player Position
		var pkt packet.PlayerPosition
		if err := protocol.Unmarshal(raw.Payload, &pkt); err != nil {
			return fmt.Errorf("unmarshal player position: %w", err)
		}
		pos := c.self.GetPosition()
		pos.X, pos.Y, pos.Z, pos.OnGround = pkt.X, pkt.FeetY, pkt.Z, pkt.OnGround
		c.self.SetPosition(pos)
	case 0x11: // Player Position And Look
		var pkt packet.PlayerPositionAndLookServerbound
		if err := protocol.Unmarshal(raw.Payload, &pkt); err != nil {
			return fmt.Errorf("unmarshal player position and look: %w", err)
		}
		c.self.SetPosition(player.Position{
			X: pkt.X, Y: pkt.FeetY, Z: pkt.Z,
			Yaw: pkt.Yaw, Pitch: pkt.Pitch,
			OnGround: pkt.OnGround,
		})
	default:
		c.log.Debug("ignoring play packet", "id", fmt.Sprintf("0x%02X", raw.ID))
	}
	return nil
}
