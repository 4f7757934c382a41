package protocol

import (
	"bytes"
	"io"
	"testing"
)

func TestPacketRoundTrip(t *testing.T) {
	tests := []struct {
		id   int32
		data []byte
	}{
		{0x00, nil},
		{0x00, []byte("test data")},
		{0x25, bytes.Repeat([]byte{0xAB}, 1000)},
		{0x6B, []byte{}},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := WritePacket(&buf, &Packet{ID: tt.id, Data: tt.data}); err != nil {
			t.Fatalf("WritePacket error: %v", err)
		}

		got, err := ReadPacket(&buf)
		if err != nil {
			t.Fatalf("ReadPacket error: %v", err)
		}
		if got.ID != tt.id {
			t.Errorf("packet ID = %d, want %d", got.ID, tt.id)
		}
		if !bytes.Equal(got.Data, tt.data) {
			t.Errorf("payload = %v, want %v", got.Data, tt.data)
		}
		if buf.Len() != 0 {
			t.Errorf("ReadPacket left %d bytes unread", buf.Len())
		}
	}
}

func TestReadPacketTruncated(t *testing.T) {
	// Length claims 10 payload bytes, stream ends after 3.
	frame := []byte{0x0B, 0x00, 0x01, 0x02, 0x03}
	_, err := ReadPacket(bytes.NewReader(frame))
	if err == nil {
		t.Fatal("ReadPacket(truncated) succeeded, want error")
	}
}

func TestReadPacketBadLength(t *testing.T) {
	tests := [][]byte{
		{0x00},                               // zero length
		{0xFF, 0xFF, 0xFF, 0xFF, 0x0F, 0x00}, // negative length
	}
	for _, frame := range tests {
		if _, err := ReadPacket(bytes.NewReader(frame)); err == nil {
			t.Errorf("ReadPacket(% x) succeeded, want error", frame)
		}
	}
}

func TestReadPacketStopsAtFrame(t *testing.T) {
	var buf bytes.Buffer
	WritePacket(&buf, &Packet{ID: 1, Data: []byte{0xAA}})
	WritePacket(&buf, &Packet{ID: 2, Data: []byte{0xBB}})

	first, err := ReadPacket(&buf)
	if err != nil {
		t.Fatalf("ReadPacket error: %v", err)
	}
	if first.ID != 1 || !bytes.Equal(first.Data, []byte{0xAA}) {
		t.Fatalf("first frame = %+v", first)
	}

	second, err := ReadPacket(&buf)
	if err != nil {
		t.Fatalf("ReadPacket error: %v", err)
	}
	if second.ID != 2 || !bytes.Equal(second.Data, []byte{0xBB}) {
		t.Fatalf("second frame = %+v", second)
	}

	if _, err := ReadPacket(&buf); err != io.EOF {
		t.Fatalf("expected EOF after last frame, got %v", err)
	}
}

func TestReadString(t *testing.T) {
	values := []string{"", "Hello", "Hello, World!", "日本語テスト"}
	for _, s := range values {
		var buf bytes.Buffer
		if err := WriteString(&buf, s); err != nil {
			t.Fatalf("WriteString(%q) error: %v", s, err)
		}
		got, err := ReadString(&buf)
		if err != nil {
			t.Fatalf("ReadString error: %v", err)
		}
		if got != s {
			t.Errorf("ReadString = %q, want %q", got, s)
		}
	}
}

func TestReadStringInvalidUTF8(t *testing.T) {
	frame := []byte{0x02, 0xFF, 0xFE}
	if _, err := ReadString(bytes.NewReader(frame)); err != ErrInvalidString {
		t.Fatalf("ReadString(invalid utf8) error = %v, want ErrInvalidString", err)
	}
}

func TestPosition(t *testing.T) {
	tests := []struct{ x, y, z int32 }{
		{0, 0, 0},
		{8, 5, 8},
		{-100, -12, 3000},
		{33554431, 2047, -33554432},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		WriteInt64(&buf, PackPosition(tt.x, tt.y, tt.z))
		x, y, z, err := ReadPosition(&buf)
		if err != nil {
			t.Fatalf("ReadPosition error: %v", err)
		}
		if x != tt.x || y != tt.y || z != tt.z {
			t.Errorf("position round trip = (%d,%d,%d), want (%d,%d,%d)", x, y, z, tt.x, tt.y, tt.z)
		}
	}
}
