// Package dagcbor implements a strict, deterministic binary codec that
// encodes and decodes a fixed set of typed values to and from the
// canonical byte representation mandated by the DAG-CBOR specification,
// a restriction of CBOR used by content-addressed data systems.
//
// The package handles exactly nine value kinds (Null, Bool, Int, Float,
// Bytes, String, List, Map, CID) and rejects every non-canonical form
// that general CBOR otherwise allows: indefinite-length items, non-string
// map keys, tags other than 42, half/single-precision floats, simple
// values other than true/false/null, and NaN/±Infinity.
package dagcbor

// CBOR major types (top 3 bits of a head byte).
const (
	majorUint   = 0 // unsigned integer
	majorNegInt = 1 // negative integer
	majorBytes  = 2 // byte string
	majorText   = 3 // text string (UTF-8)
	majorList   = 4 // array
	majorMap    = 5 // map
	majorTag    = 6 // semantic tag
	majorSimple = 7 // float / simple value / break
)

// Additional-info thresholds (bottom 5 bits of a head byte).
const (
	addDirectMax = 23 // 0..23 carried directly in the head byte
	add1Byte     = 24 // 1 extra byte follows
	add2Byte     = 25 // 2 extra bytes follow
	add4Byte     = 26 // 4 extra bytes follow
	add8Byte     = 27 // 8 extra bytes follow
	addBreak     = 31 // break stop-code; never valid here
)

// Simple values and float-width additional-info codes under major type 7.
const (
	simpleFalse     = 20
	simpleTrue      = 21
	simpleNull      = 22
	simpleUndefined = 23
	simpleFloat16   = 25
	simpleFloat32   = 26
	simpleFloat64   = 27
)

// cidTag is the only semantic tag this codec accepts (multiformats CID).
const cidTag = 42

// cidMultibasePrefix is the leading byte a tag-42 byte string must carry:
// the multibase "identity" prefix, per spec.
const cidMultibasePrefix = 0x00

// defaultMaxDepth bounds recursion so adversarial input cannot overflow
// the host stack; callers may raise or lower it per Encoder/Decoder.
const defaultMaxDepth = 256

func makeHeadByte(major byte, addInfo byte) byte {
	return (major << 5) | addInfo
}

func splitHeadByte(b byte) (major byte, addInfo byte) {
	return b >> 5, b & 0x1f
}
