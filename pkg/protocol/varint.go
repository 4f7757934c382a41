package protocol

import (
	"errors"
	"io"
)

// ErrMalformedVarInt is returned when a VarInt encoding does not terminate
// within the 5 bytes a 32-bit value can occupy.
var ErrMalformedVarInt = errors.New("malformed VarInt: exceeds 5 bytes")

// ReadVarInt reads a variable-length integer from the reader and returns the
// value together with the number of bytes consumed.
func ReadVarInt(r io.Reader) (int32, int, error) {
	var result int32
	var numRead int
	buf := make([]byte, 1)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, numRead, err
		}
		b := buf[0]
		result |= int32(b&0x7F) << (7 * numRead)
		numRead++
		if (b & 0x80) == 0 {
			break
		}
		if numRead >= 5 {
			return 0, numRead, ErrMalformedVarInt
		}
	}
	return result, numRead, nil
}

// WriteVarInt writes a variable-length integer to the writer.
func WriteVarInt(w io.Writer, value int32) (int, error) {
	var buf [5]byte
	n := PutVarInt(buf[:], value)
	return w.Write(buf[:n])
}

// PutVarInt encodes a VarInt into the buffer and returns the number of bytes
// written. Negative values encode through their two's-complement bit pattern,
// so every value fits in at most 5 bytes.
func PutVarInt(buf []byte, value int32) int {
	uval := uint32(value)
	n := 0
	for {
		if (uval & ^uint32(0x7F)) == 0 {
			buf[n] = byte(uval)
			n++
			return n
		}
		buf[n] = byte(uval&0x7F) | 0x80
		n++
		uval >>= 7
	}
}

// VarIntSize returns the number of bytes WriteVarInt would produce, without
// materializing them. Frame headers need this up front.
func VarIntSize(value int32) int {
	uval := uint32(value)
	size := 0
	for {
		size++
		if (uval & ^uint32(0x7F)) == 0 {
			return size
		}
		uval >>= 7
	}
}
