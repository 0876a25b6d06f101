package dagcbor

import (
	"math"
	"unicode/utf8"

	"github.com/synadia-labs/dagcbor/cidcodec"
)

// Decoder configures a decode pass. The zero Decoder uses defaultMaxDepth
// and no Observer.
type Decoder struct {
	// MaxDepth bounds list/map nesting. Zero means defaultMaxDepth.
	MaxDepth int
	// Observer, if set, is invoked for every decoded value (including
	// container children) with its depth, mirroring a streaming visitor
	// over an otherwise fully materialized tree.
	Observer func(Value, int)
}

func (d *Decoder) maxDepth() int {
	if d == nil || d.MaxDepth <= 0 {
		return defaultMaxDepth
	}
	return d.MaxDepth
}

// Decode parses exactly one canonical DAG-CBOR value from data and
// rejects any trailing bytes.
func Decode(data []byte) (Value, error) {
	return (&Decoder{}).Decode(data)
}

// Decode parses exactly one value from data using d's settings.
func (d *Decoder) Decode(data []byte) (Value, error) {
	v, consumed, err := d.decodeOne(data)
	if err != nil {
		return Value{}, err
	}
	if consumed != len(data) {
		return Value{}, &DecodeError{Kind: DecodeErrTrailingBytes, Offset: consumed, Path: "root", Msg: "trailing bytes after the top-level value"}
	}
	return v, nil
}

// DecodeAllowConcat parses one value from the front of data and returns
// it along with the remaining unconsumed bytes, for callers concatenating
// multiple top-level items (spec §6 streaming note).
func DecodeAllowConcat(data []byte) (Value, []byte, error) {
	return (&Decoder{}).DecodeAllowConcat(data)
}

// DecodeAllowConcat parses one value from the front of data using d's
// settings and returns it along with the remaining unconsumed bytes,
// instead of rejecting them as Decode does.
func (d *Decoder) DecodeAllowConcat(data []byte) (Value, []byte, error) {
	v, consumed, err := d.decodeOne(data)
	if err != nil {
		return Value{}, nil, err
	}
	return v, data[consumed:], nil
}

func (d *Decoder) decodeOne(data []byte) (Value, int, error) {
	s := &decodeState{data: data, path: newPathStack(), maxDepth: d.maxDepth(), observer: d.Observer}
	v, off, err := decodeValue(s, 0, 0)
	return v, off, err
}

// decodeState carries the shared, mutable context of one decode pass:
// the full input, the live container-path stack used for diagnostics, and
// the configured limits.
type decodeState struct {
	data     []byte
	path     *pathStack
	maxDepth int
	observer func(Value, int)
}

// checkRemaining reports whether n more bytes are available at off,
// defending declared container/string lengths against adversarial input
// that claims more data than the buffer actually holds (spec §5 resource
// discipline).
func (s *decodeState) checkRemaining(off int, n uint64) bool {
	remaining := uint64(len(s.data) - off)
	return n <= remaining
}

// decodeValue decodes one item starting at off and returns it with the
// offset immediately past it.
func decodeValue(s *decodeState, off int, depth int) (Value, int, error) {
	if depth > s.maxDepth {
		return Value{}, off, s.errAt(off, DecodeErrNestingTooDeep, "container nesting exceeds the configured maximum depth")
	}
	if off >= len(s.data) {
		return Value{}, off, s.errAt(off, DecodeErrUnexpectedEndOfInput, "expected a value, found end of input")
	}

	head := decodeHead(s.data[off:])
	if !head.ok {
		return Value{}, off, s.errAt(off, head.kind, "invalid item head")
	}
	bodyOff := off + head.consumed

	var (
		v   Value
		end int
		err error
	)
	switch head.major {
	case majorUint:
		v, end, err = Value{kind: KindInt, mag: head.argument}, bodyOff, nil
	case majorNegInt:
		v, end, err = Value{kind: KindInt, neg: true, mag: head.argument}, bodyOff, nil
	case majorBytes:
		v, end, err = decodeBytesBody(s, bodyOff, head.argument)
	case majorText:
		v, end, err = decodeTextBody(s, bodyOff, head.argument)
	case majorList:
		if depth >= s.maxDepth {
			err = s.errAt(off, DecodeErrNestingTooDeep, "list nesting exceeds the configured maximum depth")
			break
		}
		v, end, err = decodeListBody(s, bodyOff, head.argument, depth)
	case majorMap:
		if depth >= s.maxDepth {
			err = s.errAt(off, DecodeErrNestingTooDeep, "map nesting exceeds the configured maximum depth")
			break
		}
		v, end, err = decodeMapBody(s, bodyOff, head.argument, depth)
	case majorTag:
		v, end, err = decodeTagBody(s, off, bodyOff, head.argument, depth)
	case majorSimple:
		v, end, err = decodeSimpleBody(s, off, bodyOff, head.minor, head.argument)
	default:
		err = s.errAt(off, DecodeErrInvalidHead, "unrecognized major type")
	}
	if err != nil {
		return Value{}, off, err
	}
	if s.observer != nil {
		s.observer(v, depth)
	}
	return v, end, nil
}

func decodeBytesBody(s *decodeState, off int, length uint64) (Value, int, error) {
	if !s.checkRemaining(off, length) {
		return Value{}, off, s.errAt(off, DecodeErrUnexpectedEndOfInput, "byte string declares more data than remains")
	}
	end := off + int(length)
	return NewBytes(s.data[off:end]), end, nil
}

func decodeTextBody(s *decodeState, off int, length uint64) (Value, int, error) {
	if !s.checkRemaining(off, length) {
		return Value{}, off, s.errAt(off, DecodeErrUnexpectedEndOfInput, "text string declares more data than remains")
	}
	end := off + int(length)
	raw := s.data[off:end]
	if !utf8.Valid(raw) {
		return Value{}, off, s.errAt(off, DecodeErrInvalidUtf8, "text string is not valid UTF-8")
	}
	return NewString(string(raw)), end, nil
}

func decodeListBody(s *decodeState, off int, count uint64, depth int) (Value, int, error) {
	// Cap preallocation at the remaining input length: each element needs
	// at least one byte, so a declared count beyond that is necessarily
	// a malformed or adversarial document (spec §5).
	cap64 := count
	if rem := uint64(len(s.data) - off); cap64 > rem {
		cap64 = rem
	}
	items := make([]Value, 0, cap64)

	cur := off
	for i := uint64(0); i < count; i++ {
		s.path.pushList(int(i))
		v, next, err := decodeValue(s, cur, depth+1)
		s.path.pop()
		if err != nil {
			return Value{}, off, err
		}
		items = append(items, v)
		cur = next
	}
	return NewList(items), cur, nil
}

func decodeMapBody(s *decodeState, off int, count uint64, depth int) (Value, int, error) {
	cap64 := count
	if rem := uint64(len(s.data) - off); cap64 > rem {
		cap64 = rem
	}
	entries := make([]MapEntry, 0, cap64)

	cur := off
	prevKey := ""
	havePrev := false
	for i := uint64(0); i < count; i++ {
		s.path.pushMap(int(i))

		keyHead := decodeHead(s.data[cur:])
		if !keyHead.ok {
			s.path.pop()
			return Value{}, off, s.errAt(cur, keyHead.kind, "invalid map key head")
		}
		if keyHead.major != majorText {
			s.path.pop()
			return Value{}, off, s.errAt(cur, DecodeErrMapKeyNotString, "map key is not a text string")
		}
		keyVal, keyEnd, err := decodeValue(s, cur, depth+1)
		if err != nil {
			s.path.pop()
			return Value{}, off, err
		}
		key, _ := keyVal.Str()
		s.path.setKey(key)

		if havePrev {
			if key == prevKey {
				return Value{}, off, s.errAt(cur, DecodeErrMapKeyDuplicate, "duplicate map key "+quoteKey(key))
			}
			if !canonicalLess(prevKey, key) {
				return Value{}, off, s.errAt(cur, DecodeErrMapKeyOutOfOrder, "map key "+quoteKey(key)+" is out of canonical order")
			}
		}
		prevKey, havePrev = key, true

		val, valEnd, err := decodeValue(s, keyEnd, depth+1)
		s.path.pop()
		if err != nil {
			return Value{}, off, err
		}
		entries = append(entries, MapEntry{Key: key, Value: val})
		cur = valEnd
	}
	return NewMapEntries(entries), cur, nil
}

func decodeTagBody(s *decodeState, headOff, bodyOff int, tag uint64, depth int) (Value, int, error) {
	if tag != cidTag {
		return Value{}, headOff, s.errAt(headOff, DecodeErrUnexpectedTag, "tag is not the recognized CID tag")
	}
	tagHead := decodeHead(s.data[bodyOff:])
	if !tagHead.ok || tagHead.major != majorBytes {
		return Value{}, headOff, s.errAt(headOff, DecodeErrInvalidCidPrefix, "CID tag must wrap a byte string")
	}
	byteOff := bodyOff + tagHead.consumed
	if !s.checkRemaining(byteOff, tagHead.argument) {
		return Value{}, headOff, s.errAt(headOff, DecodeErrUnexpectedEndOfInput, "CID byte string declares more data than remains")
	}
	if tagHead.argument < 1 {
		return Value{}, headOff, s.errAt(headOff, DecodeErrInvalidCidPrefix, "CID byte string is empty")
	}
	end := byteOff + int(tagHead.argument)
	body := s.data[byteOff:end]
	if body[0] != cidMultibasePrefix {
		return Value{}, headOff, s.errAt(headOff, DecodeErrInvalidCidPrefix, "CID byte string is missing the multibase identity prefix")
	}
	return NewCID(cidcodec.FromBytes(body[1:])), end, nil
}

func decodeSimpleBody(s *decodeState, headOff, bodyOff int, minor byte, argument uint64) (Value, int, error) {
	switch minor {
	case simpleFalse:
		return NewBool(false), bodyOff, nil
	case simpleTrue:
		return NewBool(true), bodyOff, nil
	case simpleNull:
		return Null(), bodyOff, nil
	case simpleFloat16, simpleFloat32:
		return Value{}, headOff, s.errAt(headOff, DecodeErrDisallowedFloat, "half- and single-precision floats are not permitted")
	case simpleFloat64:
		// decodeHead already consumed the 8-byte payload into argument as
		// a big-endian uint64, which is exactly the IEEE 754 bit pattern.
		f := math.Float64frombits(argument)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, headOff, s.errAt(headOff, DecodeErrDisallowedFloat, "NaN and infinite floats are not permitted")
		}
		return NewFloat(f), bodyOff, nil
	default:
		return Value{}, headOff, s.errAt(headOff, DecodeErrInvalidHead, "simple value is not true, false, or null, or uses a disallowed float width")
	}
}
