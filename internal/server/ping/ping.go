package ping

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/obelisk-mc/obelisk/internal/server/conn"
	"github.com/obelisk-mc/obelisk/internal/server/packet"
	"github.com/obelisk-mc/obelisk/pkg/protocol"
)

// Result is the outcome of a status query.
type Result struct {
	Status  conn.StatusDocument
	Latency time.Duration
}

// Ping performs a status handshake against addr ("host:port") and measures
// the round trip of a ping packet.
func Ping(ctx context.Context, addr string) (*Result, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("parse address: %w", err)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("parse port %q: %w", portStr, err)
	}

	var d net.Dialer
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer c.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = c.SetDeadline(deadline)
	}

	if err := protocol.WritePacket(c, &packet.Handshake{
		ProtocolVersion: packet.ProtocolVersion,
		ServerAddress:   host,
		ServerPort:      uint16(port),
		NextState:       packet.NextStateStatus,
	}); err != nil {
		return nil, fmt.Errorf("write handshake: %w", err)
	}
	if err := protocol.WritePacket(c, &packet.StatusRequest{}); err != nil {
		return nil, fmt.Errorf("write status request: %w", err)
	}

	var resp packet.StatusResponse
	if err := protocol.ReadPacket(c, &resp); err != nil {
		return nil, fmt.Errorf("read status response: %w", err)
	}
	res := &Result{}
	if err := json.Unmarshal([]byte(resp.JSONResponse), &res.Status); err != nil {
		return nil, fmt.Errorf("parse status JSON: %w", err)
	}

	start := time.Now()
	payload := start.UnixMilli()
	if err := protocol.WritePacket(c, &packet.StatusPing{Payload: payload}); err != nil {
		return nil, fmt.Errorf("write ping: %w", err)
	}
	var pong packet.StatusPong
	if err := protocol.ReadPacket(c, &pong); err != nil {
		return nil, fmt.Errorf("read pong: %w", err)
	}
	if pong.Payload != payload {
		return nil, fmt.Errorf("pong payload %d, want %d", pong.Payload, payload)
	}
	res.Latency = time.Since(start)
	return res, nil
}
