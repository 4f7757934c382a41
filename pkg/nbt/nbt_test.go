package nbt

import (
	"bytes"
	"testing"
)

func TestMarshalCompound(t *testing.T) {
	root := NamedTag{Name: "", Tag: Compound{{Name: "a", Tag: Int(1)}}}

	want := []byte{
		0x0A,       // compound
		0x00, 0x00, // empty root name
		0x03,       // int
		0x00, 0x01, // name length
		'a',
		0x00, 0x00, 0x00, 0x01, // value
		0x00, // terminator
	}
	if got := root.Marshal(); !bytes.Equal(got, want) {
		t.Fatalf("Marshal = % x, want % x", got, want)
	}
}

func TestMarshalEmptyCompound(t *testing.T) {
	root := NamedTag{Name: "", Tag: Compound{}}
	want := []byte{0x0A, 0x00, 0x00, 0x00}
	if got := root.Marshal(); !bytes.Equal(got, want) {
		t.Fatalf("Marshal = % x, want % x", got, want)
	}
}

func TestMarshalEnd(t *testing.T) {
	// End carries no name, whatever the NamedTag says.
	root := NamedTag{Name: "ignored", Tag: End{}}
	if got := root.Marshal(); !bytes.Equal(got, []byte{0x00}) {
		t.Fatalf("Marshal(End) = % x, want 00", got)
	}
}

func TestMarshalScalars(t *testing.T) {
	tests := []struct {
		tag  Tag
		want []byte
	}{
		{Byte(-1), []byte{0xFF}},
		{Short(0x0102), []byte{0x01, 0x02}},
		{Long(1), []byte{0, 0, 0, 0, 0, 0, 0, 1}},
		{Float(1.0), []byte{0x3F, 0x80, 0x00, 0x00}},
		{Double(1.0), []byte{0x3F, 0xF0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{String("ab"), []byte{0x00, 0x02, 'a', 'b'}},
		{ByteArray{0xAA, 0xBB}, []byte{0x00, 0x02, 0xAA, 0xBB}},
		{IntArray{1}, []byte{0, 0, 0, 1, 0, 0, 0, 1}},
		{LongArray{1}, []byte{0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1}},
	}
	for _, tt := range tests {
		if got := tt.tag.appendValue(nil); !bytes.Equal(got, tt.want) {
			t.Errorf("value bytes of %T = % x, want % x", tt.tag, got, tt.want)
		}
	}
}

func TestMarshalList(t *testing.T) {
	list := List{Int(1), Int(2)}
	want := []byte{
		0x03,                   // element type: int
		0x00, 0x00, 0x00, 0x02, // count
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x02,
	}
	if got := list.appendValue(nil); !bytes.Equal(got, want) {
		t.Fatalf("list value = % x, want % x", got, want)
	}

	empty := List{}
	if got := empty.appendValue(nil); !bytes.Equal(got, []byte{0x00, 0, 0, 0, 0}) {
		t.Fatalf("empty list value = % x", got)
	}
}

func TestMarshalHeterogeneousListPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for heterogeneous list")
		}
	}()
	List{Int(1), String("x")}.appendValue(nil)
}

func TestCompoundPreservesOrder(t *testing.T) {
	root := NamedTag{Tag: Compound{
		{Name: "z", Tag: Byte(1)},
		{Name: "a", Tag: Byte(2)},
	}}
	got := root.Marshal()
	zi := bytes.Index(got, []byte("z"))
	ai := bytes.Index(got, []byte("a"))
	if zi < 0 || ai < 0 || zi > ai {
		t.Fatalf("insertion order not preserved: % x", got)
	}
}

func TestRoundTrip(t *testing.T) {
	root := NamedTag{Name: "root", Tag: Compound{
		{Name: "byte", Tag: Byte(1)},
		{Name: "str", Tag: String("hello")},
		{Name: "list", Tag: List{Float(1.5), Float(2.5)}},
		{Name: "nested", Tag: Compound{
			{Name: "longs", Tag: LongArray{1, 2, 3}},
			{Name: "ints", Tag: IntArray{-1, 0, 1}},
		}},
		{Name: "raw", Tag: ByteArray{0x00, 0xFF}},
	}}

	encoded := root.Marshal()
	decoded, err := Decode(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	reencoded := decoded.Marshal()
	if !bytes.Equal(encoded, reencoded) {
		t.Fatalf("encode/decode/encode mismatch:\n  first  = % x\n  second = % x", encoded, reencoded)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	tests := [][]byte{
		{0x0D, 0x00, 0x00},      // unknown type id
		{0x03, 0x00, 0x01, 'a'}, // truncated int value
		{0x09, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF}, // negative list count
	}
	for _, data := range tests {
		if _, err := Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(% x) succeeded, want error", data)
		}
	}
}
