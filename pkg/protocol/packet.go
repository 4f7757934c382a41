package protocol

import (
	"bytes"
	"fmt"
	"io"
)

// Packet is one decoded frame: a packet ID and its raw payload. The payload's
// meaning depends entirely on the session phase the frame arrived in.
type Packet struct {
	ID   int32
	Data []byte
}

// Frames larger than a 3-byte VarInt length are rejected outright; nothing
// this server speaks comes close.
const maxPacketLength = 2097151

// ReadPacket reads a single length-prefixed frame from the reader. It decodes
// the outer length, the packet ID, and then exactly the remaining payload
// bytes. It never buffers past the end of one frame.
func ReadPacket(r io.Reader) (*Packet, error) {
	length, _, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if length < 1 {
		return nil, fmt.Errorf("packet length too small: %d", length)
	}
	if length > maxPacketLength {
		return nil, fmt.Errorf("packet length too large: %d", length)
	}

	packetID, idLen, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if int(length) < idLen {
		return nil, fmt.Errorf("packet length %d shorter than its ID", length)
	}

	payload := make([]byte, int(length)-idLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}

	return &Packet{ID: packetID, Data: payload}, nil
}

// WritePacket frames and writes a packet in a single write, so the bytes are
// on the wire before the caller continues.
func WritePacket(w io.Writer, p *Packet) error {
	idSize := VarIntSize(p.ID)
	totalLen := int32(idSize + len(p.Data))

	buf := bytes.NewBuffer(make([]byte, 0, VarIntSize(totalLen)+int(totalLen)))
	WriteVarInt(buf, totalLen)
	WriteVarInt(buf, p.ID)
	buf.Write(p.Data)

	_, err := w.Write(buf.Bytes())
	return err
}
