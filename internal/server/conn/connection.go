package conn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/obelisk-mc/obelisk/internal/server/config"
	"github.com/obelisk-mc/obelisk/internal/server/metrics"
	"github.com/obelisk-mc/obelisk/internal/server/player"
	"github.com/obelisk-mc/obelisk/internal/server/world"
	"github.com/obelisk-mc/obelisk/pkg/protocol"
)

// State represents the connection state.
type State int

const (
	StateHandshake State = iota
	StateStatus
	StateLogin
	StatePlay
)

func (s State) String() string {
	switch s {
	case StateHandshake:
		return "handshake"
	case StateStatus:
		return "status"
	case StateLogin:
		return "login"
	case StatePlay:
		return "play"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	readChunkSize     = 4096
	keepAliveInterval = 15 * time.Second
	writeTimeout      = 30 * time.Second
)

// PlayerRegistry is the set of logged-in players shared by all connections.
type PlayerRegistry interface {
	Register(id uuid.UUID, username string) (*player.Player, error)
	Lookup(id uuid.UUID) (*player.Player, bool)
	Count() int
	Sample(n int) []player.Sample
	Remove(p *player.Player)
}

// WorldSnapshot is the read-only view of the world new players join.
type WorldSnapshot interface {
	SpawnWorldMetadata() (world.Metadata, error)
	SpawnPosition() (x, y, z float64, err error)
	Column(cx, cz int) (*world.Column, error)
}

// Connection manages a single client connection through the protocol state machine.
type Connection struct {
	conn    net.Conn
	cfg     *config.Config
	log     *slog.Logger
	players PlayerRegistry
	worlds  WorldSnapshot
	metrics *metrics.Metrics

	// Owned by the Serve goroutine.
	state   State
	recv    *protocol.Buffer
	self    *player.Player
	closing bool

	teleportID  int32
	keepAliveID int64

	out OutboundQueue
}

// NewConnection creates a new Connection from a raw TCP connection.
func NewConnection(conn net.Conn, cfg *config.Config, log *slog.Logger, players PlayerRegistry, worlds WorldSnapshot, m *metrics.Metrics) *Connection {
	return &Connection{
		conn:    conn,
		cfg:     cfg,
		log:     log.With("addr", conn.RemoteAddr().String()),
		players: players,
		worlds:  worlds,
		metrics: m,
		state:   StateHandshake,
		recv:    protocol.NewBuffer(nil),
	}
}

// State returns the current protocol state.
func (c *Connection) State() State { return c.state }

// Player returns the logged-in player, or nil before login completes.
func (c *Connection) Player() *player.Player { return c.self }

// Closing reports whether the connection has queued its final packet and
// will close after the next flush.
func (c *Connection) Closing() bool { return c.closing }

// Serve runs the connection lifecycle: it reads from the socket, decodes
// every complete frame, dispatches it, and flushes queued responses until
// the peer disconnects, a fatal protocol error occurs, or ctx is cancelled.
func (c *Connection) Serve(ctx context.Context) error {
	c.metrics.ConnOpened()
	c.log.Info("connection accepted")

	stop := context.AfterFunc(ctx, func() { _ = c.conn.Close() })
	defer func() {
		stop()
		c.close()
	}()

	buf := make([]byte, readChunkSize)
	for {
		if c.state == StatePlay {
			_ = c.conn.SetReadDeadline(time.Now().Add(keepAliveInterval))
		}

		n, readErr := c.conn.Read(buf)
		if n > 0 {
			c.metrics.BytesIn(n)
			c.recv.Write(buf[:n])
			if err := c.processInbound(); err != nil {
				// Responses queued before the error are dropped with it.
				c.out.Reset()
				c.metrics.ProtocolError(errorKind(err))
				c.log.Error("handling packet", "state", c.state, "error", err)
				return err
			}
		}

		if readErr != nil {
			switch {
			case errors.Is(readErr, os.ErrDeadlineExceeded) && c.state == StatePlay:
				if err := c.sendKeepAlive(); err != nil {
					return err
				}
			case errors.Is(readErr, io.EOF), errors.Is(readErr, net.ErrClosed), ctx.Err() != nil:
				return nil
			default:
				return fmt.Errorf("read: %w", readErr)
			}
		}

		if err := c.flush(); err != nil {
			return err
		}
		if c.closing {
			return nil
		}
	}
}

// processInbound decodes and handles every complete frame in the receive
// buffer. A trailing partial frame stays buffered.
func (c *Connection) processInbound() error {
	for !c.closing {
		raw, ok, err := protocol.NextPacket(c.recv)
		if err != nil {
			return fmt.Errorf("frame: %w", err)
		}
		if !ok {
			return nil
		}
		if err := c.HandlePacket(raw); err != nil {
			return err
		}
	}
	return nil
}

// HandlePacket dispatches one packet to the handler for the current state.
// Responses are queued, not written.
func (c *Connection) HandlePacket(raw protocol.RawPacket) error {
	c.metrics.PacketIn(c.state.String())

	switch c.state {
	case StateHandshake:
		return c.handleHandshake(raw)
	case StateStatus:
		return c.handleStatus(raw)
	case StateLogin:
		return c.handleLogin(raw)
	case StatePlay:
		return c.handlePlay(raw)
	default:
		return fmt.Errorf("unknown state: %d", c.state)
	}
}

// writePacket encodes p and queues it for the next flush.
func (c *Connection) writePacket(p protocol.Packet) error {
	var b packetBatch
	if err := b.add(c.state, p); err != nil {
		return err
	}
	c.enqueue(&b)
	return nil
}

// enqueue queues every frame of b in order.
func (c *Connection) enqueue(b *packetBatch) {
	for _, f := range b.frames {
		c.out.Enqueue(f.data)
		c.metrics.PacketOut(f.state.String())
	}
}

// flush writes the outbound queue to the socket.
func (c *Connection) flush() error {
	if c.out.Len() == 0 {
		return nil
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	n, err := c.out.Drain(c.conn)
	c.metrics.BytesOut(n)
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if c.out.Len() > 0 {
		return fmt.Errorf("flush %d bytes: %w", c.out.Buffered(), ErrWriteStalled)
	}
	return nil
}

// disconnect marks the connection to close once queued packets are flushed.
func (c *Connection) disconnect(reason string) {
	c.log.Info("disconnecting", "reason", reason)
	c.closing = true
}

func (c *Connection) close() {
	if c.self != nil {
		c.players.Remove(c.self)
		c.self = nil
	}
	c.out.Reset()
	c.recv.Reset()

	_ = c.conn.Close()
	c.metrics.ConnClosed()
	c.log.Info("connection closed")
}
