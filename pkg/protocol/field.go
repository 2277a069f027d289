package protocol

import (
	"fmt"

	"github.com/google/uuid"
)

// AppendField appends val encoded according to the mc struct tag.
func AppendField(dst []byte, tag string, val any) ([]byte, error) {
	switch tag {
	case "varint":
		return AppendVarInt(dst, val.(int32)), nil
	case "varlong":
		return AppendVarLong(dst, val.(int64)), nil
	case "i8":
		return AppendI8(dst, val.(int8)), nil
	case "u8":
		return AppendU8(dst, val.(uint8)), nil
	case "i16":
		return AppendI16(dst, val.(int16)), nil
	case "u16":
		return AppendU16(dst, val.(uint16)), nil
	case "i32":
		return AppendI32(dst, val.(int32)), nil
	case "i64":
		return AppendI64(dst, val.(int64)), nil
	case "f32":
		return AppendF32(dst, val.(float32)), nil
	case "f64":
		return AppendF64(dst, val.(float64)), nil
	case "bool":
		return AppendBool(dst, val.(bool)), nil
	case "string":
		return AppendString(dst, val.(string)), nil
	case "position":
		return AppendI64(dst, val.(int64)), nil
	case "uuid":
		return AppendUUID(dst, val.(uuid.UUID)), nil
	case "bytearray":
		return AppendByteArray(dst, val.([]byte)), nil
	case "rest":
		return append(dst, val.([]byte)...), nil
	default:
		return dst, fmt.Errorf("unknown field tag: %q", tag)
	}
}

// ReadField consumes one value of the type named by the mc struct tag.
func ReadField(b *Buffer, tag string) (any, error) {
	switch tag {
	case "varint":
		return ReadVarInt(b)
	case "varlong":
		return ReadVarLong(b)
	case "i8":
		return ReadI8(b)
	case "u8":
		return ReadU8(b)
	case "i16":
		return ReadI16(b)
	case "u16":
		return ReadU16(b)
	case "i32":
		return ReadI32(b)
	case "i64", "position":
		return ReadI64(b)
	case "f32":
		return ReadF32(b)
	case "f64":
		return ReadF64(b)
	case "bool":
		return ReadBool(b)
	case "string":
		return ReadString(b)
	case "uuid":
		return ReadUUID(b)
	case "bytearray":
		return ReadByteArray(b)
	case "rest":
		return ReadRest(b), nil
	default:
		return nil, fmt.Errorf("unknown field tag: %q", tag)
	}
}
