// Package nbt implements the named binary tag tree format used for
// structured metadata payloads (dimension registries, chunk height-maps).
// Tags are built in memory and serialized immediately; nothing in the login
// flow ever parses client-supplied NBT.
package nbt

import (
	"encoding/binary"
	"math"
)

// Tag type IDs as they appear on the wire.
const (
	TypeEnd byte = iota
	TypeByte
	TypeShort
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeByteArray
	TypeString
	TypeList
	TypeCompound
	TypeIntArray
	TypeLongArray
)

// Tag is the closed set of tag variants. Only the types in this package
// implement it.
type Tag interface {
	TypeID() byte
	// appendValue appends the tag's value bytes (no type, no name).
	appendValue(dst []byte) []byte
}

// NamedTag pairs a tag with its name. It is the only unit ever serialized at
// the top level or inside a Compound.
type NamedTag struct {
	Name string
	Tag  Tag
}

// End terminates a Compound. Serializing it emits the single 0x00 byte.
type End struct{}

// Byte is a signed 8-bit tag.
type Byte int8

// Short is a big-endian signed 16-bit tag.
type Short int16

// Int is a big-endian signed 32-bit tag.
type Int int32

// Long is a big-endian signed 64-bit tag.
type Long int64

// Float is a big-endian 32-bit float tag.
type Float float32

// Double is a big-endian 64-bit float tag.
type Double float64

// ByteArray is a 16-bit-length-prefixed byte sequence tag.
type ByteArray []byte

// String is a 16-bit-length-prefixed UTF-8 tag.
type String string

// List is a homogeneous sequence of tags. Mixing variants is a contract
// violation and panics during serialization; it is never silently coerced.
type List []Tag

// Compound is an ordered name→tag mapping. Insertion order is preserved on
// the wire.
type Compound []NamedTag

// IntArray is a 32-bit-count-prefixed sequence of big-endian int32 values.
type IntArray []int32

// LongArray is a 32-bit-count-prefixed sequence of big-endian int64 values.
type LongArray []int64

func (End) TypeID() byte       { return TypeEnd }
func (Byte) TypeID() byte      { return TypeByte }
func (Short) TypeID() byte     { return TypeShort }
func (Int) TypeID() byte       { return TypeInt }
func (Long) TypeID() byte      { return TypeLong }
func (Float) TypeID() byte     { return TypeFloat }
func (Double) TypeID() byte    { return TypeDouble }
func (ByteArray) TypeID() byte { return TypeByteArray }
func (String) TypeID() byte    { return TypeString }
func (List) TypeID() byte      { return TypeList }
func (Compound) TypeID() byte  { return TypeCompound }
func (IntArray) TypeID() byte  { return TypeIntArray }
func (LongArray) TypeID() byte { return TypeLongArray }

func (End) appendValue(dst []byte) []byte { return dst }

func (t Byte) appendValue(dst []byte) []byte { return append(dst, byte(t)) }

func (t Short) appendValue(dst []byte) []byte {
	return binary.BigEndian.AppendUint16(dst, uint16(t))
}

func (t Int) appendValue(dst []byte) []byte {
	return binary.BigEndian.AppendUint32(dst, uint32(t))
}

func (t Long) appendValue(dst []byte) []byte {
	return binary.BigEndian.AppendUint64(dst, uint64(t))
}

func (t Float) appendValue(dst []byte) []byte {
	return binary.BigEndian.AppendUint32(dst, math.Float32bits(float32(t)))
}

func (t Double) appendValue(dst []byte) []byte {
	return binary.BigEndian.AppendUint64(dst, math.Float64bits(float64(t)))
}

func (t ByteArray) appendValue(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint16(dst, uint16(len(t)))
	return append(dst, t...)
}

func (t String) appendValue(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint16(dst, uint16(len(t)))
	return append(dst, t...)
}

func (t List) appendValue(dst []byte) []byte {
	elemType := TypeEnd
	if len(t) > 0 {
		elemType = t[0].TypeID()
	}
	dst = append(dst, elemType)
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(t)))
	for _, elem := range t {
		if elem.TypeID() != elemType {
			panic("nbt: heterogeneous list")
		}
		dst = elem.appendValue(dst)
	}
	return dst
}

func (t Compound) appendValue(dst []byte) []byte {
	for _, child := range t {
		dst = child.appendNamed(dst, true)
	}
	return append(dst, TypeEnd)
}

func (t IntArray) appendValue(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(t)))
	for _, v := range t {
		dst = binary.BigEndian.AppendUint32(dst, uint32(v))
	}
	return dst
}

func (t LongArray) appendValue(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(t)))
	for _, v := range t {
		dst = binary.BigEndian.AppendUint64(dst, uint64(v))
	}
	return dst
}

// Marshal serializes the named tag: type byte, length-prefixed name, value
// bytes. An End tag serializes as the bare 0x00 byte regardless of name.
func (t NamedTag) Marshal() []byte {
	return t.appendNamed(nil, true)
}

func (t NamedTag) appendNamed(dst []byte, named bool) []byte {
	typeID := t.Tag.TypeID()
	if typeID == TypeEnd {
		return append(dst, TypeEnd)
	}
	dst = append(dst, typeID)
	if named {
		dst = binary.BigEndian.AppendUint16(dst, uint16(len(t.Name)))
		dst = append(dst, t.Name...)
	}
	return t.Tag.appendValue(dst)
}
