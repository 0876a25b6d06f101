package dagcbor

import (
	"bytes"
	"math"
	"math/big"
	"sort"

	"github.com/synadia-labs/dagcbor/cidcodec"
)

// Kind discriminates the nine value kinds this codec handles (spec §3).
// It is a closed set: every switch over Kind in this package is
// exhaustive, so no kind is ever silently forwarded as "unsupported" at
// run time without an explicit default case returning EncodeErrUnsupportedType.
type Kind byte

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindBytes
	KindString
	KindList
	KindMap
	KindCID
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindCID:
		return "cid"
	default:
		return "invalid"
	}
}

// MapEntry is one key/value pair of a Map value. Key is always a string:
// the data model in spec §3 only permits string-keyed maps.
type MapEntry struct {
	Key   string
	Value Value
}

// Value is the closed, tagged variant over the nine IPLD kinds described
// in spec §3. The zero Value is KindInvalid and is never produced by
// Decode; encoding a zero Value fails with EncodeErrUnsupportedType.
//
// Int is stored as (neg, mag) mirroring the wire's own major-0/major-1
// sign/magnitude split (value = mag if !neg, else -1-mag) rather than as
// a host int64. This sidesteps Go's int64 range entirely and resolves
// spec §9's open question about magnitudes near 2^64: the full unsigned
// argument range is representable without a bignum fallback.
type Value struct {
	kind Kind

	boolVal bool

	neg bool
	mag uint64

	floatVal float64

	bytesVal []byte
	strVal   string

	listVal []Value
	mapVal  []MapEntry

	cidVal cidcodec.CID
}

// Null returns the Null value.
func Null() Value { return Value{kind: KindNull} }

// NewBool wraps a bool.
func NewBool(b bool) Value { return Value{kind: KindBool, boolVal: b} }

// NewInt wraps a host int64. Every int64 is representable exactly.
func NewInt(i int64) Value {
	if i >= 0 {
		return Value{kind: KindInt, mag: uint64(i)}
	}
	// ^i is the two's-complement bitwise NOT of i, which for any signed
	// integer equals exactly -1-i -- the CBOR negative-integer argument.
	return Value{kind: KindInt, neg: true, mag: uint64(^i)}
}

// NewUint wraps a host uint64, including magnitudes beyond math.MaxInt64
// that an int64 cannot hold.
func NewUint(u uint64) Value { return Value{kind: KindInt, mag: u} }

// NewBigInt constructs an Int value from an arbitrary-precision integer.
// It fails with EncodeErrIntegerOutOfRange when the magnitude cannot be
// represented in the wire model's 64-bit argument (spec §9, |v| <= 2^64).
func NewBigInt(z *big.Int) (Value, error) {
	neg := z.Sign() < 0
	mag := new(big.Int).Abs(z)
	if neg {
		mag.Sub(mag, big.NewInt(1)) // CBOR negative argument is -1-v
	}
	if !mag.IsUint64() {
		return Value{}, &EncodeError{
			Kind: EncodeErrIntegerOutOfRange,
			Msg:  "integer " + z.String() + " exceeds the representable range",
		}
	}
	return Value{kind: KindInt, neg: neg, mag: mag.Uint64()}, nil
}

// NewFloat wraps a float64. NaN and ±Infinity are accepted here (the
// invariant is enforced at the encode/decode boundary, per spec §3) so
// that an intermediate pipeline can construct and inspect such a value
// before it ever reaches the wire.
func NewFloat(f float64) Value { return Value{kind: KindFloat, floatVal: f} }

// NewBytes wraps a byte slice. The slice is copied.
func NewBytes(b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Value{kind: KindBytes, bytesVal: cp}
}

// NewString wraps a string. UTF-8 validity is checked at encode time.
func NewString(s string) Value { return Value{kind: KindString, strVal: s} }

// NewList wraps a slice of child values in order. The slice is copied.
func NewList(items []Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindList, listVal: cp}
}

// NewMap builds a Map value from a Go map. Go's map iteration order is
// randomized, so a map of more than one entry usually takes the encoder's
// re-sort path; use NewMapEntries when the caller already has entries in
// canonical order, so the encoder's linear in-order check lets it skip
// the sort.
func NewMap(m map[string]Value) Value {
	entries := make([]MapEntry, 0, len(m))
	for k, v := range m {
		entries = append(entries, MapEntry{Key: k, Value: v})
	}
	return Value{kind: KindMap, mapVal: entries}
}

// NewMapEntries builds a Map value from entries in caller-supplied order.
// Keys are neither checked nor sorted here. At encode time duplicate keys
// are rejected and out-of-order keys are sorted into canonical order; keys
// already in canonical order are not re-sorted.
func NewMapEntries(entries []MapEntry) Value {
	cp := make([]MapEntry, len(entries))
	copy(cp, entries)
	return Value{kind: KindMap, mapVal: cp}
}

// NewCID wraps a CID collaborator (spec §6). The codec never inspects its
// internals beyond Bytes().
func NewCID(c cidcodec.CID) Value { return Value{kind: KindCID, cidVal: c} }

// Kind reports the value's kind.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the bool payload and whether v is a Bool.
func (v Value) Bool() (bool, bool) { return v.boolVal, v.kind == KindBool }

// IsNegative reports whether an Int value is negative. Only meaningful
// when Kind() == KindInt.
func (v Value) IsNegative() bool { return v.kind == KindInt && v.neg }

// Magnitude returns the Int value's wire-model magnitude (spec §3: the
// argument, i.e. v if non-negative, or -1-v if negative) and whether v is
// an Int.
func (v Value) Magnitude() (uint64, bool) { return v.mag, v.kind == KindInt }

// Int64 returns the value as an int64 and whether it is both an Int and
// representable without loss (i.e. within [math.MinInt64, math.MaxInt64]).
func (v Value) Int64() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	if !v.neg {
		if v.mag > math.MaxInt64 {
			return 0, false
		}
		return int64(v.mag), true
	}
	if v.mag > math.MaxInt64 {
		return 0, false
	}
	return -1 - int64(v.mag), true
}

// Uint64 returns the value as a uint64 and whether it is a non-negative Int.
func (v Value) Uint64() (uint64, bool) {
	if v.kind != KindInt || v.neg {
		return 0, false
	}
	return v.mag, true
}

// Float returns the float64 payload and whether v is a Float.
func (v Value) Float() (float64, bool) { return v.floatVal, v.kind == KindFloat }

// Bytes returns the byte payload and whether v is Bytes. The returned
// slice aliases the Value's internal storage; callers must not mutate it.
func (v Value) Bytes() ([]byte, bool) { return v.bytesVal, v.kind == KindBytes }

// Str returns the string payload and whether v is a String.
func (v Value) Str() (string, bool) { return v.strVal, v.kind == KindString }

// List returns the element slice and whether v is a List. The returned
// slice aliases the Value's internal storage; callers must not mutate it.
func (v Value) List() ([]Value, bool) { return v.listVal, v.kind == KindList }

// MapEntries returns the entry slice (in whatever order the Value holds
// them -- not necessarily canonical until Encode sorts them) and whether
// v is a Map. The returned slice aliases the Value's internal storage;
// callers must not mutate it.
func (v Value) MapEntries() ([]MapEntry, bool) { return v.mapVal, v.kind == KindMap }

// CID returns the CID payload and whether v is a CID.
func (v Value) CID() (cidcodec.CID, bool) { return v.cidVal, v.kind == KindCID }

// Equal reports deep, semantic equality: floats compare by bit pattern
// (spec §8 property 1: "float equality by bit pattern"), maps compare
// after canonical sorting regardless of each side's entry order, and CIDs
// compare by raw bytes.
func (a Value) Equal(b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindInvalid, KindNull:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindInt:
		return a.neg == b.neg && a.mag == b.mag
	case KindFloat:
		return math.Float64bits(a.floatVal) == math.Float64bits(b.floatVal)
	case KindBytes:
		return bytes.Equal(a.bytesVal, b.bytesVal)
	case KindString:
		return a.strVal == b.strVal
	case KindList:
		if len(a.listVal) != len(b.listVal) {
			return false
		}
		for i := range a.listVal {
			if !a.listVal[i].Equal(b.listVal[i]) {
				return false
			}
		}
		return true
	case KindMap:
		ae, _ := canonicalMapEntries(a.mapVal)
		be, _ := canonicalMapEntries(b.mapVal)
		if len(ae) != len(be) {
			return false
		}
		for i := range ae {
			if ae[i].Key != be[i].Key || !ae[i].Value.Equal(be[i].Value) {
				return false
			}
		}
		return true
	case KindCID:
		if a.cidVal == nil || b.cidVal == nil {
			return a.cidVal == nil && b.cidVal == nil
		}
		return bytes.Equal(a.cidVal.Bytes(), b.cidVal.Bytes())
	default:
		return false
	}
}

// sortedKeys is a small helper used by CanonicalOrder; kept free of
// Value's internal representation so it can be exercised directly.
func sortedKeys(keys []string) []string {
	out := make([]string, len(keys))
	copy(out, keys)
	sort.Slice(out, func(i, j int) bool { return canonicalLess(out[i], out[j]) })
	return out
}
