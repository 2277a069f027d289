package protocol

import "errors"

// Decode errors. ErrInsufficientData is the only recoverable one: the caller
// should wait for more bytes. Everything else means the stream is corrupt.
var (
	ErrInsufficientData   = errors.New("protocol: insufficient data")
	ErrMalformedVarInt    = errors.New("protocol: malformed varint")
	ErrInvalidBoolean     = errors.New("protocol: invalid boolean")
	ErrInvalidUTF8        = errors.New("protocol: invalid utf-8 string")
	ErrStringTooLong      = errors.New("protocol: string length out of range")
	ErrFrameLengthTooLong = errors.New("protocol: frame length too long")
	ErrFrameOverrun       = errors.New("protocol: frame overrun")
	ErrTrailingData       = errors.New("protocol: trailing data after packet fields")
)
