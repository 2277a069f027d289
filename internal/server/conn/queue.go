package conn

import (
	"errors"
	"io"
	"os"

	"github.com/obelisk-mc/obelisk/pkg/protocol"
)

// OutboundQueue holds encoded frames waiting to be written. A frame that was
// only partly written stays at the head with its write offset, so the next
// Drain resumes exactly where the last one stopped.
type OutboundQueue struct {
	frames [][]byte
	off    int // bytes of frames[0] already written
	size   int // unwritten bytes across all frames
}

// Enqueue appends an encoded frame.
func (q *OutboundQueue) Enqueue(frame []byte) {
	if len(frame) == 0 {
		return
	}
	q.frames = append(q.frames, frame)
	q.size += len(frame)
}

// Len returns the number of frames not yet fully written.
func (q *OutboundQueue) Len() int { return len(q.frames) }

// Buffered returns the number of bytes not yet written.
func (q *OutboundQueue) Buffered() int { return q.size }

// Drain writes queued frames to w in order and returns the number of bytes
// written. A deadline error means the writer is not ready; Drain stops and
// returns a nil error with the remaining bytes still queued. Any other write
// error is returned.
func (q *OutboundQueue) Drain(w io.Writer) (int, error) {
	total := 0
	for len(q.frames) > 0 {
		head := q.frames[0]
		n, err := w.Write(head[q.off:])
		total += n
		q.off += n
		q.size -= n
		if q.off == len(head) {
			q.frames[0] = nil
			q.frames = q.frames[1:]
			q.off = 0
		}
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				return total, nil
			}
			return total, err
		}
		if n == 0 {
			return total, nil
		}
	}
	q.frames = nil
	return total, nil
}

// Reset drops every queued frame.
func (q *OutboundQueue) Reset() {
	q.frames = nil
	q.off = 0
	q.size = 0
}

// packetBatch collects encoded frames so a multi-packet response is queued
// whole or not at all.
type packetBatch struct {
	frames []batchFrame
}

type batchFrame struct {
	data  []byte
	state State
}

// add encodes p as a frame sent in state.
func (b *packetBatch) add(state State, p protocol.Packet) error {
	raw, err := protocol.MarshalRaw(p)
	if err != nil {
		return err
	}
	b.frames = append(b.frames, batchFrame{data: protocol.EncodeFrame(raw), state: state})
	return nil
}
