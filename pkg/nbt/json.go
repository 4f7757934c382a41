package nbt

import (
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// FromJSON converts a JSON document into a tag tree rooted at an unnamed
// Compound. Objects become Compounds in document key order, arrays become
// Lists (and must be type-homogeneous), strings become String tags, booleans
// become Byte 0/1, and numbers become Int when they carry no fractional part
// and Float otherwise.
//
// This importer exists to load static registry/dimension metadata at startup;
// it is not a general NBT transcoder.
func FromJSON(data []byte) (NamedTag, error) {
	if !gjson.ValidBytes(data) {
		return NamedTag{}, errors.New("nbt: invalid JSON document")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return NamedTag{}, errors.New("nbt: root value must be an object")
	}
	tag, err := fromJSONValue(root)
	if err != nil {
		return NamedTag{}, err
	}
	return NamedTag{Name: "", Tag: tag}, nil
}

func fromJSONValue(v gjson.Result) (Tag, error) {
	switch {
	case v.IsObject():
		var compound Compound
		var convErr error
		v.ForEach(func(key, value gjson.Result) bool {
			tag, err := fromJSONValue(value)
			if err != nil {
				convErr = fmt.Errorf("key %q: %w", key.String(), err)
				return false
			}
			compound = append(compound, NamedTag{Name: key.String(), Tag: tag})
			return true
		})
		if convErr != nil {
			return nil, convErr
		}
		return compound, nil

	case v.IsArray():
		var list List
		var convErr error
		v.ForEach(func(_, value gjson.Result) bool {
			tag, err := fromJSONValue(value)
			if err != nil {
				convErr = err
				return false
			}
			if len(list) > 0 && tag.TypeID() != list[0].TypeID() {
				convErr = errors.New("nbt: array elements must share one type")
				return false
			}
			list = append(list, tag)
			return true
		})
		if convErr != nil {
			return nil, convErr
		}
		return list, nil
	}

	switch v.Type {
	case gjson.String:
		return String(v.Str), nil
	case gjson.True:
		return Byte(1), nil
	case gjson.False:
		return Byte(0), nil
	case gjson.Number:
		if v.Num == math.Trunc(v.Num) {
			return Int(int32(v.Num)), nil
		}
		return Float(float32(v.Num)), nil
	}
	return nil, fmt.Errorf("nbt: unsupported JSON value %q", v.Raw)
}
