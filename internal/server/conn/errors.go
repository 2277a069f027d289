package conn

import (
	"errors"

	"github.com/obelisk-mc/obelisk/internal/server/metrics"
)

var (
	// ErrUnexpectedPacket is returned for a packet id the current state does
	// not accept.
	ErrUnexpectedPacket = errors.New("conn: unexpected packet")
	// ErrInvalidHandshakeState is returned when a handshake asks for a state
	// other than status or login.
	ErrInvalidHandshakeState = errors.New("conn: invalid handshake next state")
	// ErrWriteStalled is returned when the peer stops reading long enough for
	// a flush to time out.
	ErrWriteStalled = errors.New("conn: write stalled")
)

// errorKind labels a fatal connection error for the protocol error metric.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrUnexpectedPacket):
		return "unexpected_packet"
	case errors.Is(err, ErrInvalidHandshakeState):
		return "invalid_next_state"
	}
	return metrics.ErrorKind(err)
}
