package dagcbor

import "encoding/binary"

// appendHead appends the one-to-nine-byte CBOR head for (major, argument)
// to dst, always choosing the minimum-length form (spec "Head codec"):
// argument < 24 packs inline; < 2^8, < 2^16, < 2^32 use 1/2/4 extra bytes;
// anything larger uses 8. This is the sole place encode-side canonical
// argument packing happens; every head in the encoder goes through it.
func appendHead(dst []byte, major byte, argument uint64) []byte {
	switch {
	case argument <= addDirectMax:
		return append(dst, makeHeadByte(major, byte(argument)))
	case argument <= 0xff:
		dst = append(dst, makeHeadByte(major, add1Byte))
		return append(dst, byte(argument))
	case argument <= 0xffff:
		dst = append(dst, makeHeadByte(major, add2Byte))
		var tmp [2]byte
		binary.BigEndian.PutUint16(tmp[:], uint16(argument))
		return append(dst, tmp[:]...)
	case argument <= 0xffffffff:
		dst = append(dst, makeHeadByte(major, add4Byte))
		var tmp [4]byte
		binary.BigEndian.PutUint32(tmp[:], uint32(argument))
		return append(dst, tmp[:]...)
	default:
		dst = append(dst, makeHeadByte(major, add8Byte))
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], argument)
		return append(dst, tmp[:]...)
	}
}

// headResult carries the outcome of decodeHead without allocating an
// error on the hot path; ok is false iff kind names the failure. minor is
// the raw additional-info nibble as written (24/25/26/27 and so on); for
// major types 0-6 it mirrors the byte width chosen for argument, but
// under major 7 it also names which fixed-width payload follows (a
// 1-byte simple value, or 2/4/8-byte float), which is why decodeSimpleBody
// dispatches on minor rather than on argument.
type headResult struct {
	major    byte
	minor    byte
	argument uint64
	consumed int
	kind     DecodeErrorKind
	ok       bool
}

// decodeHead reads one CBOR head from the front of b. For major types 0-6
// it enforces minimum-length argument encoding (spec "Head codec" decode
// half): an argument that would have fit in a shorter form is rejected
// with NonCanonicalArgument. That minimality rule does not apply to major
// type 7's fixed-width float payloads (a float64 bit pattern of, say, all
// zero bytes is not a "short form" of anything -- the width is dictated
// by the minor code itself, not chosen to fit the value), so it is
// skipped there. Additional-info values 28, 29, 30 (reserved) and 31
// (break) are rejected with InvalidHead; neither ever appears in a
// well-formed DAG-CBOR document.
func decodeHead(b []byte) headResult {
	if len(b) < 1 {
		return headResult{kind: DecodeErrUnexpectedEndOfInput}
	}
	major, minor := splitHeadByte(b[0])
	checkMinimal := major != majorSimple
	switch {
	case minor <= addDirectMax:
		return headResult{major: major, minor: minor, argument: uint64(minor), consumed: 1, ok: true}
	case minor == add1Byte:
		if len(b) < 2 {
			return headResult{kind: DecodeErrUnexpectedEndOfInput}
		}
		v := uint64(b[1])
		if checkMinimal && v <= addDirectMax {
			return headResult{kind: DecodeErrNonCanonicalArgument}
		}
		return headResult{major: major, minor: minor, argument: v, consumed: 2, ok: true}
	case minor == add2Byte:
		if len(b) < 3 {
			return headResult{kind: DecodeErrUnexpectedEndOfInput}
		}
		v := uint64(binary.BigEndian.Uint16(b[1:3]))
		if checkMinimal && v <= 0xff {
			return headResult{kind: DecodeErrNonCanonicalArgument}
		}
		return headResult{major: major, minor: minor, argument: v, consumed: 3, ok: true}
	case minor == add4Byte:
		if len(b) < 5 {
			return headResult{kind: DecodeErrUnexpectedEndOfInput}
		}
		v := uint64(binary.BigEndian.Uint32(b[1:5]))
		if checkMinimal && v <= 0xffff {
			return headResult{kind: DecodeErrNonCanonicalArgument}
		}
		return headResult{major: major, minor: minor, argument: v, consumed: 5, ok: true}
	case minor == add8Byte:
		if len(b) < 9 {
			return headResult{kind: DecodeErrUnexpectedEndOfInput}
		}
		v := binary.BigEndian.Uint64(b[1:9])
		if checkMinimal && v <= 0xffffffff {
			return headResult{kind: DecodeErrNonCanonicalArgument}
		}
		return headResult{major: major, minor: minor, argument: v, consumed: 9, ok: true}
	default: // 28, 29, 30 reserved; 31 break
		return headResult{kind: DecodeErrInvalidHead}
	}
}
