package protocol

import (
	"bytes"
	"testing"

	"github.com/EquinoxAlpha/void/pkg/nbt"
)

func TestBuilderFrame(t *testing.T) {
	frame := NewBuilder(0x01).Int64(0x0102030405060708).Build()

	want := []byte{
		0x09, // length: id (1) + payload (8)
		0x01, // packet id
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	}
	if !bytes.Equal(frame, want) {
		t.Fatalf("frame = % x, want % x", frame, want)
	}
}

func TestBuilderFields(t *testing.T) {
	frame := NewBuilder(0x00).
		VarInt(300).
		Byte(0xAB).
		Bool(true).
		Bool(false).
		Uint16(0xBEEF).
		Int32(-1).
		String("hi").
		UUID([16]byte{0: 0x11, 15: 0x22}).
		Raw([]byte{0xDE, 0xAD}).
		Build()

	pkt, err := ReadPacket(bytes.NewReader(frame))
	if err != nil {
		t.Fatalf("ReadPacket error: %v", err)
	}
	if pkt.ID != 0x00 {
		t.Fatalf("packet id = %d", pkt.ID)
	}

	r := bytes.NewReader(pkt.Data)
	if v, _, _ := ReadVarInt(r); v != 300 {
		t.Errorf("VarInt field = %d, want 300", v)
	}
	var b [2]byte
	r.Read(b[:])
	if b[0] != 0xAB || b[1] != 1 {
		t.Errorf("byte/bool fields = % x", b)
	}
	if ok, _ := ReadBool(r); ok {
		t.Error("second bool field should be false")
	}
	if v, _ := ReadUint16(r); v != 0xBEEF {
		t.Errorf("uint16 field = %#x", v)
	}
	if v, _ := ReadInt32(r); v != -1 {
		t.Errorf("int32 field = %d", v)
	}
	if s, _ := ReadString(r); s != "hi" {
		t.Errorf("string field = %q", s)
	}
	u, _ := ReadUUID(r)
	if u[0] != 0x11 || u[15] != 0x22 {
		t.Errorf("uuid field = % x", u)
	}
	rest := make([]byte, r.Len())
	r.Read(rest)
	if !bytes.Equal(rest, []byte{0xDE, 0xAD}) {
		t.Errorf("raw tail = % x", rest)
	}
}

func TestBuilderFloats(t *testing.T) {
	frame := NewBuilder(0x39).Float64(1.5).Float32(-2.25).Build()
	pkt, err := ReadPacket(bytes.NewReader(frame))
	if err != nil {
		t.Fatalf("ReadPacket error: %v", err)
	}
	r := bytes.NewReader(pkt.Data)
	if v, _ := ReadFloat64(r); v != 1.5 {
		t.Errorf("float64 field = %v, want 1.5", v)
	}
	if v, _ := ReadFloat32(r); v != -2.25 {
		t.Errorf("float32 field = %v, want -2.25", v)
	}
}

func TestBuilderNBT(t *testing.T) {
	tag := nbt.NamedTag{Tag: nbt.Compound{{Name: "a", Tag: nbt.Int(1)}}}
	frame := NewBuilder(0x21).NBT(tag).Build()

	pkt, err := ReadPacket(bytes.NewReader(frame))
	if err != nil {
		t.Fatalf("ReadPacket error: %v", err)
	}
	if !bytes.Equal(pkt.Data, tag.Marshal()) {
		t.Fatalf("nbt payload = % x, want % x", pkt.Data, tag.Marshal())
	}
}
