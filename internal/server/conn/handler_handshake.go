package conn

import (
	"fmt"

	"github.com/obelisk-mc/obelisk/internal/server/packet"
	"github.com/obelisk-mc/obelisk/pkg/protocol"
)

func (c *Connection) handleHandshake(raw protocol.RawPacket) error {
	if raw.ID != 0x00 {
		return fmt.Errorf("handshake packet 0x%02X: %w", raw.ID, ErrUnexpectedPacket)
	}

	var hs packet.Handshake
	if err := protocol.Unmarshal(raw.Payload, &hs); err != nil {
		return fmt.Errorf("unmarshal handshake: %w", err)
	}

	c.log.Debug("handshake received",
		"protocol", hs.ProtocolVersion,
		"server", hs.ServerAddress,
		"port", hs.ServerPort,
		"nextState", hs.NextState,
	)

	switch hs.NextState {
	case packet.NextStateStatus:
		c.state = StateStatus
	case packet.NextStateLogin:
		if hs.ProtocolVersion != packet.ProtocolVersion {
			c.log.Warn("unsupported protocol version", "version", hs.ProtocolVersion)
		}
		c.state = StateLogin
	default:
		return fmt.Errorf("next state %d: %w", hs.NextState, ErrInvalidHandshakeState)
	}

	return nil
}
