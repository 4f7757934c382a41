package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestVarInt(t *testing.T) {
	tests := []struct {
		value    int32
		expected []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xFF, 0x01}},
		{25565, []byte{0xDD, 0xC7, 0x01}},
		{2097151, []byte{0xFF, 0xFF, 0x7F}},
		{2147483647, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x07}},
		{-1, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
		{-2147483648, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			var buf bytes.Buffer
			_, err := WriteVarInt(&buf, tt.value)
			if err != nil {
				t.Fatalf("WriteVarInt(%d) error: %v", tt.value, err)
			}
			if !bytes.Equal(buf.Bytes(), tt.expected) {
				t.Errorf("WriteVarInt(%d) = %v, want %v", tt.value, buf.Bytes(), tt.expected)
			}

			val, n, err := ReadVarInt(bytes.NewReader(tt.expected))
			if err != nil {
				t.Fatalf("ReadVarInt error: %v", err)
			}
			if val != tt.value {
				t.Errorf("ReadVarInt = %d, want %d", val, tt.value)
			}
			if n != len(tt.expected) {
				t.Errorf("ReadVarInt bytes read = %d, want %d", n, len(tt.expected))
			}
		})
	}
}

func TestVarIntRoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 127, 128, 300, -300, 1 << 20, -(1 << 20), 2147483647, -2147483648}
	for _, v := range values {
		var buf bytes.Buffer
		WriteVarInt(&buf, v)
		if got := VarIntSize(v); got != buf.Len() {
			t.Errorf("VarIntSize(%d) = %d, want %d", v, got, buf.Len())
		}
		back, _, err := ReadVarInt(&buf)
		if err != nil {
			t.Fatalf("ReadVarInt(%d) error: %v", v, err)
		}
		if back != v {
			t.Errorf("round trip of %d = %d", v, back)
		}
	}
}

func TestVarIntMalformed(t *testing.T) {
	// Six continuation bytes can never terminate a 32-bit value.
	malformed := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80}
	_, _, err := ReadVarInt(bytes.NewReader(malformed))
	if !errors.Is(err, ErrMalformedVarInt) {
		t.Fatalf("ReadVarInt(malformed) error = %v, want ErrMalformedVarInt", err)
	}
}

func TestVarIntTruncated(t *testing.T) {
	_, _, err := ReadVarInt(bytes.NewReader([]byte{0x80, 0x80}))
	if err == nil {
		t.Fatal("ReadVarInt(truncated) succeeded, want error")
	}
}
