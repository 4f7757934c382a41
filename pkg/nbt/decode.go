package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Arrays larger than this are rejected while decoding, before allocation.
const maxArrayLength = 1 << 24

// Decode reads one named tag from the reader. Nothing on the login path ever
// decodes NBT; this exists so encoded trees can be verified round-trip.
func Decode(r io.Reader) (NamedTag, error) {
	typeID, err := readByte(r)
	if err != nil {
		return NamedTag{}, err
	}
	if typeID == TypeEnd {
		return NamedTag{Tag: End{}}, nil
	}
	name, err := readShortString(r)
	if err != nil {
		return NamedTag{}, err
	}
	tag, err := decodeValue(r, typeID)
	if err != nil {
		return NamedTag{}, err
	}
	return NamedTag{Name: name, Tag: tag}, nil
}

func decodeValue(r io.Reader, typeID byte) (Tag, error) {
	switch typeID {
	case TypeEnd:
		return End{}, nil
	case TypeByte:
		b, err := readByte(r)
		return Byte(b), err
	case TypeShort:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		return Short(binary.BigEndian.Uint16(buf[:])), nil
	case TypeInt:
		v, err := readUint32(r)
		return Int(v), err
	case TypeLong:
		v, err := readUint64(r)
		return Long(v), err
	case TypeFloat:
		v, err := readUint32(r)
		return Float(math.Float32frombits(v)), err
	case TypeDouble:
		v, err := readUint64(r)
		return Double(math.Float64frombits(v)), err
	case TypeByteArray:
		data, err := readShortBytes(r)
		return ByteArray(data), err
	case TypeString:
		s, err := readShortString(r)
		return String(s), err
	case TypeList:
		return decodeList(r)
	case TypeCompound:
		return decodeCompound(r)
	case TypeIntArray:
		count, err := readCount(r)
		if err != nil {
			return nil, err
		}
		out := make(IntArray, count)
		for i := range out {
			v, err := readUint32(r)
			if err != nil {
				return nil, err
			}
			out[i] = int32(v)
		}
		return out, nil
	case TypeLongArray:
		count, err := readCount(r)
		if err != nil {
			return nil, err
		}
		out := make(LongArray, count)
		for i := range out {
			v, err := readUint64(r)
			if err != nil {
				return nil, err
			}
			out[i] = int64(v)
		}
		return out, nil
	}
	return nil, fmt.Errorf("nbt: unknown tag type %#02x", typeID)
}

func decodeList(r io.Reader) (Tag, error) {
	elemType, err := readByte(r)
	if err != nil {
		return nil, err
	}
	count, err := readCount(r)
	if err != nil {
		return nil, err
	}
	if elemType == TypeEnd && count > 0 {
		return nil, fmt.Errorf("nbt: list of End tags with %d elements", count)
	}
	list := make(List, 0, count)
	for i := 0; i < count; i++ {
		elem, err := decodeValue(r, elemType)
		if err != nil {
			return nil, err
		}
		list = append(list, elem)
	}
	return list, nil
}

func decodeCompound(r io.Reader) (Tag, error) {
	var compound Compound
	for {
		child, err := Decode(r)
		if err != nil {
			return nil, err
		}
		if child.Tag.TypeID() == TypeEnd {
			return compound, nil
		}
		compound = append(compound, child)
	}
}

func readByte(r io.Reader) (byte, error) {
	var buf [1]byte
	_, err := io.ReadFull(r, buf[:])
	return buf[0], err
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

func readCount(r io.Reader) (int, error) {
	v, err := readUint32(r)
	if err != nil {
		return 0, err
	}
	count := int(int32(v))
	if count < 0 || count > maxArrayLength {
		return 0, fmt.Errorf("nbt: element count out of range: %d", count)
	}
	return count, nil
}

func readShortBytes(r io.Reader) ([]byte, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	data := make([]byte, binary.BigEndian.Uint16(buf[:]))
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

func readShortString(r io.Reader) (string, error) {
	data, err := readShortBytes(r)
	return string(data), err
}
