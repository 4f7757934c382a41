package protocol

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/EquinoxAlpha/void/pkg/nbt"
)

// Builder accumulates typed fields into an outgoing packet payload and frames
// it on Build. It performs no schema validation: the caller is responsible
// for appending the right fields in the right order for the packet ID.
type Builder struct {
	id  int32
	buf bytes.Buffer
}

// NewBuilder starts a packet with the given ID and an empty payload.
func NewBuilder(id int32) *Builder {
	return &Builder{id: id}
}

// VarInt appends a variable-length integer.
func (b *Builder) VarInt(v int32) *Builder {
	WriteVarInt(&b.buf, v)
	return b
}

// Byte appends a single byte.
func (b *Builder) Byte(v byte) *Builder {
	b.buf.WriteByte(v)
	return b
}

// Bool appends a boolean as a single 0/1 byte.
func (b *Builder) Bool(v bool) *Builder {
	if v {
		return b.Byte(1)
	}
	return b.Byte(0)
}

// Uint16 appends a big-endian unsigned 16-bit integer.
func (b *Builder) Uint16(v uint16) *Builder {
	WriteUint16(&b.buf, v)
	return b
}

// Int32 appends a big-endian signed 32-bit integer.
func (b *Builder) Int32(v int32) *Builder {
	WriteInt32(&b.buf, v)
	return b
}

// Int64 appends a big-endian signed 64-bit integer.
func (b *Builder) Int64(v int64) *Builder {
	WriteInt64(&b.buf, v)
	return b
}

// Float32 appends a big-endian 32-bit float.
func (b *Builder) Float32(v float32) *Builder {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], math.Float32bits(v))
	b.buf.Write(tmp[:])
	return b
}

// Float64 appends a big-endian 64-bit float.
func (b *Builder) Float64(v float64) *Builder {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], math.Float64bits(v))
	b.buf.Write(tmp[:])
	return b
}

// String appends a VarInt-length-prefixed UTF-8 string.
func (b *Builder) String(s string) *Builder {
	WriteString(&b.buf, s)
	return b
}

// UUID appends a 128-bit UUID as 16 raw big-endian bytes.
func (b *Builder) UUID(u [16]byte) *Builder {
	b.buf.Write(u[:])
	return b
}

// NBT appends a named tag tree in its binary serialization.
func (b *Builder) NBT(t nbt.NamedTag) *Builder {
	b.buf.Write(t.Marshal())
	return b
}

// Raw appends bytes verbatim.
func (b *Builder) Raw(p []byte) *Builder {
	b.buf.Write(p)
	return b
}

// Position appends a block position bit-packed into a big-endian int64.
func (b *Builder) Position(x, y, z int32) *Builder {
	return b.Int64(PackPosition(x, y, z))
}

// Build frames the accumulated payload: outer length VarInt, packet ID
// VarInt, then the payload bytes.
func (b *Builder) Build() []byte {
	idSize := VarIntSize(b.id)
	totalLen := int32(idSize + b.buf.Len())

	out := bytes.NewBuffer(make([]byte, 0, VarIntSize(totalLen)+int(totalLen)))
	WriteVarInt(out, totalLen)
	WriteVarInt(out, b.id)
	out.Write(b.buf.Bytes())
	return out.Bytes()
}
