package dagcbor

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

// Encoder configures a canonical encode pass. The zero Encoder uses
// defaultMaxDepth.
type Encoder struct {
	// MaxDepth bounds list/map nesting. Zero means defaultMaxDepth.
	MaxDepth int
}

func (e *Encoder) maxDepth() int {
	if e == nil || e.MaxDepth <= 0 {
		return defaultMaxDepth
	}
	return e.MaxDepth
}

// Encode serializes v to its canonical DAG-CBOR byte representation using
// default encoder settings.
func Encode(v Value) ([]byte, error) {
	return (&Encoder{}).Encode(v)
}

// Encode serializes v using e's settings.
func (e *Encoder) Encode(v Value) ([]byte, error) {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)

	path := newEncPathStack()
	if err := encodeValue(bb, v, 0, path, e.maxDepth()); err != nil {
		return nil, err
	}
	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())
	return out, nil
}

// EncodeInto writes v's canonical encoding to sink and returns the number
// of bytes written. It is the streaming counterpart to Encode (spec §6):
// the sink only ever sees the fully assembled encoding of one top-level
// value, written in a single Write call.
func EncodeInto(sink Sink, v Value) (int, error) {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)

	path := newEncPathStack()
	if err := encodeValue(bb, v, 0, path, defaultMaxDepth); err != nil {
		return 0, err
	}
	return sink.Write(bb.Bytes())
}

// encodeValue appends v's canonical encoding to bb, recursing through
// lists and maps. depth counts container nesting so MaxDepth can reject
// runaway or adversarially-built in-memory structures before they ever
// reach the wire.
func encodeValue(bb *ByteBuffer, v Value, depth int, path *encPathStack, maxDepth int) error {
	switch v.Kind() {
	case KindNull:
		return bb.WriteByte(makeHeadByte(majorSimple, simpleNull))

	case KindBool:
		b, _ := v.Bool()
		val := byte(simpleFalse)
		if b {
			val = simpleTrue
		}
		return bb.WriteByte(makeHeadByte(majorSimple, val))

	case KindInt:
		major := byte(majorUint)
		if v.IsNegative() {
			major = majorNegInt
		}
		mag, _ := v.Magnitude()
		bb.b = appendHead(bb.b, major, mag)
		return nil

	case KindFloat:
		f, _ := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return &EncodeError{Kind: EncodeErrDisallowedFloat, Path: path.String(), Msg: "NaN and infinite floats are not representable"}
		}
		bb.WriteByte(makeHeadByte(majorSimple, simpleFloat64))
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], math.Float64bits(f))
		_, err := bb.Write(tmp[:])
		return err

	case KindBytes:
		raw, _ := v.Bytes()
		bb.b = appendHead(bb.b, majorBytes, uint64(len(raw)))
		_, err := bb.Write(raw)
		return err

	case KindString:
		s, _ := v.Str()
		if !utf8.ValidString(s) {
			return &EncodeError{Kind: EncodeErrInvalidUtf8, Path: path.String(), Msg: "string is not valid UTF-8"}
		}
		bb.b = appendHead(bb.b, majorText, uint64(len(s)))
		_, err := bb.WriteString(s)
		return err

	case KindList:
		if depth >= maxDepth {
			return &EncodeError{Kind: EncodeErrNestingTooDeep, Path: path.String(), Msg: "list nesting exceeds the configured maximum depth"}
		}
		items, _ := v.List()
		bb.b = appendHead(bb.b, majorList, uint64(len(items)))
		for i, item := range items {
			path.pushList(i)
			if err := encodeValue(bb, item, depth+1, path, maxDepth); err != nil {
				return err
			}
			path.pop()
		}
		return nil

	case KindMap:
		if depth >= maxDepth {
			return &EncodeError{Kind: EncodeErrNestingTooDeep, Path: path.String(), Msg: "map nesting exceeds the configured maximum depth"}
		}
		entries, _ := v.MapEntries()
		ordered, err := canonicalMapEntries(entries)
		if err != nil {
			if ee, ok := err.(*EncodeError); ok && ee.Path == "" {
				ee.Path = path.String()
			}
			return err
		}
		bb.b = appendHead(bb.b, majorMap, uint64(len(ordered)))
		for _, entry := range ordered {
			if !utf8.ValidString(entry.Key) {
				return &EncodeError{Kind: EncodeErrInvalidUtf8, Path: path.String(), Msg: "map key is not valid UTF-8"}
			}
			bb.b = appendHead(bb.b, majorText, uint64(len(entry.Key)))
			if _, err := bb.WriteString(entry.Key); err != nil {
				return err
			}
			path.pushMap(entry.Key)
			if err := encodeValue(bb, entry.Value, depth+1, path, maxDepth); err != nil {
				return err
			}
			path.pop()
		}
		return nil

	case KindCID:
		c, _ := v.CID()
		if c == nil {
			return &EncodeError{Kind: EncodeErrUnsupportedType, Path: path.String(), Msg: "nil CID collaborator"}
		}
		raw := c.Bytes()
		bb.b = appendHead(bb.b, majorTag, cidTag)
		bb.b = appendHead(bb.b, majorBytes, uint64(len(raw))+1)
		bb.WriteByte(cidMultibasePrefix)
		_, err := bb.Write(raw)
		return err

	default:
		return &EncodeError{Kind: EncodeErrUnsupportedType, Path: path.String(), Msg: "value has no recognized kind"}
	}
}

var _ io.Writer = (*ByteBuffer)(nil)
