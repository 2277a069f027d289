package conn

import (
	"encoding/json"
	"fmt"

	"github.com/obelisk-mc/obelisk/internal/server/packet"
	"github.com/obelisk-mc/obelisk/internal/server/player"
	"github.com/obelisk-mc/obelisk/pkg/protocol"
)

// maxStatusSample is the number of players listed in a status response.
const maxStatusSample = 5

// StatusDocument is the JSON body of a status response.
type StatusDocument struct {
	Version     StatusVersion `json:"version"`
	Players     StatusPlayers `json:"players"`
	Description StatusText    `json:"description"`
}

type StatusVersion struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

type StatusPlayers struct {
	Max    int             `json:"max"`
	Online int             `json:"online"`
	Sample []player.Sample `json:"sample"`
}

type StatusText struct {
	Text string `json:"text"`
}

func (c *Connection) statusDocument() StatusDocument {
	sample := c.players.Sample(maxStatusSample)
	if sample == nil {
		sample = []player.Sample{}
	}
	return StatusDocument{
		Version: StatusVersion{
			Name:     packet.VersionName,
			Protocol: packet.ProtocolVersion,
		},
		Players: StatusPlayers{
			Max:    c.cfg.MaxPlayers,
			Online: c.players.Count(),
			Sample: sample,
		},
		Description: StatusText{Text: c.cfg.MOTD},
	}
}

func (c *Connection) handleStatus(raw protocol.RawPacket) error {
	switch raw.ID {
	case 0x00: // Status Request
		jsonBytes, err := json.Marshal(c.statusDocument())
		if err != nil {
			return fmt.Errorf("marshal status response: %w", err)
		}
		return c.writePacket(&packet.StatusResponse{
			JSONResponse: string(jsonBytes),
		})

	case 0x01: // Ping
		var ping packet.StatusPing
		if err := protocol.Unmarshal(raw.Payload, &ping); err != nil {
			return fmt.Errorf("unmarshal ping: %w", err)
		}
		return c.writePacket(&packet.StatusPong{Payload: ping.Payload})

	default:
		return fmt.Errorf("status packet 0x%02X: %w", raw.ID, ErrUnexpectedPacket)
	}
}
