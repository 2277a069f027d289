package protocol

// Buffer is a byte queue. Writes append to the back, decode functions
// consume from the front. A decode that fails consumes nothing.
type Buffer struct {
	data []byte
}

// NewBuffer returns a Buffer that starts out holding b. The Buffer takes
// ownership of b.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{data: b}
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the unread bytes without consuming them. The slice aliases
// the buffer and is only valid until the next mutation.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Write appends p to the buffer. It never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

// Reset drops all buffered bytes.
func (b *Buffer) Reset() {
	b.data = nil
}

// peek returns the next n bytes without consuming them.
func (b *Buffer) peek(n int) ([]byte, error) {
	if n < 0 || len(b.data) < n {
		return nil, ErrInsufficientData
	}
	return b.data[:n], nil
}

// next consumes and returns the next n bytes.
func (b *Buffer) next(n int) ([]byte, error) {
	p, err := b.peek(n)
	if err != nil {
		return nil, err
	}
	b.discard(n)
	return p, nil
}

// discard drops n bytes from the front. A drained buffer releases its
// backing array.
func (b *Buffer) discard(n int) {
	b.data = b.data[n:]
	if len(b.data) == 0 {
		b.data = nil
	}
}
