package conn

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/obelisk-mc/obelisk/internal/server/packet"
	"github.com/obelisk-mc/obelisk/internal/server/player"
	"github.com/obelisk-mc/obelisk/internal/server/world"
	"github.com/obelisk-mc/obelisk/pkg/protocol"
)

const maxUsernameLength = 16

func (c *Connection) handleLogin(raw protocol.RawPacket) error {
	switch raw.ID {
	case 0x00: // LoginStart
		return c.handleLoginStart(raw.Payload)
	default:
		return fmt.Errorf("login packet 0x%02X: %w", raw.ID, ErrUnexpectedPacket)
	}
}

func (c *Connection) handleLoginStart(data []byte) error {
	var login packet.LoginStart
	if err := protocol.Unmarshal(data, &login); err != nil {
		return fmt.Errorf("unmarshal login start: %w", err)
	}
	username := login.Name

	c.log.Info("login start", "username", username)

	if n := utf8.RuneCountInString(username); n == 0 || n > maxUsernameLength {
		c.metrics.Login("invalid_name")
		return c.rejectLogin("Invalid username")
	}

	meta, err := c.worlds.SpawnWorldMetadata()
	if errors.Is(err, world.ErrWorldNotFound) {
		c.log.Warn("no spawn world", "error", err)
		c.metrics.Login("no_world")
		return c.rejectLogin("No world to join")
	}
	if err != nil {
		return fmt.Errorf("spawn world metadata: %w", err)
	}

	id := player.OfflineUUID(username)
	p, err := c.players.Register(id, username)
	switch {
	case errors.Is(err, player.ErrAlreadyOnline):
		c.metrics.Login("already_online")
		return c.rejectLogin("You are already logged in")
	case errors.Is(err, player.ErrServerFull):
		c.metrics.Login("server_full")
		return c.rejectLogin("The server is full")
	case err != nil:
		return fmt.Errorf("register player: %w", err)
	}

	// LoginSuccess and the join sequence are queued together or not at all.
	var batch packetBatch
	if err := batch.add(StateLogin, &packet.LoginSuccess{
		UUID:     id.String(),
		Username: username,
	}); err != nil {
		c.players.Remove(p)
		return fmt.Errorf("write login success: %w", err)
	}
	if err := c.joinSequence(&batch, p, meta); err != nil {
		c.players.Remove(p)
		if errors.Is(err, world.ErrWorldNotFound) {
			c.log.Warn("spawn world removed during login", "error", err)
			c.metrics.Login("no_world")
			return c.rejectLogin("No world to join")
		}
		return err
	}

	c.self = p
	c.log = c.log.With("player", username)
	c.state = StatePlay
	c.enqueue(&batch)

	c.log.Info("login success", "uuid", id, "entityID", p.EntityID)
	c.metrics.Login("success")
	return nil
}

// rejectLogin queues a LoginDisconnect and closes after flushing.
func (c *Connection) rejectLogin(reason string) error {
	text, err := chatText(reason)
	if err != nil {
		return err
	}
	if err := c.writePacket(&packet.LoginDisconnect{Reason: text}); err != nil {
		return fmt.Errorf("write login disconnect: %w", err)
	}
	c.disconnect(reason)
	return nil
}

// chatText encodes a plain chat component.
func chatText(s string) (string, error) {
	b, err := json.Marshal(StatusText{Text: s})
	if err != nil {
		return "", fmt.Errorf("marshal chat: %w", err)
	}
	return string(b), nil
}
