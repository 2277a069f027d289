package protocol

import (
	"fmt"
	"reflect"
)

const tagName = "mc"

// Packet is implemented by every typed packet struct.
type Packet interface {
	PacketID() int32
}

// Marshal encodes a Packet struct into bytes using mc struct tags.
func Marshal(p Packet) ([]byte, error) {
	v := reflect.ValueOf(p)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("marshal: expected struct, got %s", v.Kind())
	}

	var buf []byte
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get(tagName)
		if tag == "" || tag == "-" {
			continue
		}

		var err error
		if buf, err = AppendField(buf, tag, v.Field(i).Interface()); err != nil {
			return nil, fmt.Errorf("marshal field %s: %w", field.Name, err)
		}
	}

	return buf, nil
}

// Unmarshal decodes bytes into a Packet struct using mc struct tags.
// Bytes left over after the last tagged field are an error.
func Unmarshal(data []byte, p Packet) error {
	v := reflect.ValueOf(p)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("unmarshal: expected non-nil pointer, got %T", p)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("unmarshal: expected pointer to struct, got pointer to %s", v.Kind())
	}

	b := NewBuffer(data)
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get(tagName)
		if tag == "" || tag == "-" {
			continue
		}

		val, err := ReadField(b, tag)
		if err != nil {
			return fmt.Errorf("unmarshal field %s: %w", field.Name, err)
		}

		fv := v.Field(i)
		rv := reflect.ValueOf(val)
		if !rv.Type().AssignableTo(fv.Type()) {
			return fmt.Errorf("unmarshal field %s: cannot assign %s to %s", field.Name, rv.Type(), fv.Type())
		}
		fv.Set(rv)
	}

	if b.Len() != 0 {
		return fmt.Errorf("unmarshal %T: %w (%d bytes)", p, ErrTrailingData, b.Len())
	}
	return nil
}

// MarshalRaw encodes p and pairs it with its packet id.
func MarshalRaw(p Packet) (RawPacket, error) {
	data, err := Marshal(p)
	if err != nil {
		return RawPacket{}, fmt.Errorf("marshal packet 0x%02X: %w", p.PacketID(), err)
	}
	return RawPacket{ID: p.PacketID(), Payload: data}, nil
}
