package dagcbor

import "fmt"

// EncodeErrorKind enumerates the structured encode-side failure families
// from spec §4.4. Encoding errors are never strings: callers that need to
// branch on failure type switch on Kind rather than matching substrings.
type EncodeErrorKind int

const (
	EncodeErrUnsupportedType EncodeErrorKind = iota
	// EncodeErrNonStringMapKey is reserved for a map key that is
	// structurally not a string; MapEntry.Key is a Go string, so this
	// package's own encode path never produces it. Invalid-UTF-8 string
	// content (including map keys) is EncodeErrInvalidUtf8 instead.
	EncodeErrNonStringMapKey
	EncodeErrDuplicateMapKey
	EncodeErrDisallowedFloat
	EncodeErrIntegerOutOfRange
	EncodeErrNestingTooDeep
	EncodeErrInvalidUtf8
)

func (k EncodeErrorKind) String() string {
	switch k {
	case EncodeErrUnsupportedType:
		return "UnsupportedType"
	case EncodeErrNonStringMapKey:
		return "NonStringMapKey"
	case EncodeErrDuplicateMapKey:
		return "DuplicateMapKey"
	case EncodeErrDisallowedFloat:
		return "DisallowedFloat"
	case EncodeErrIntegerOutOfRange:
		return "IntegerOutOfRange"
	case EncodeErrNestingTooDeep:
		return "NestingTooDeep"
	case EncodeErrInvalidUtf8:
		return "InvalidUtf8"
	default:
		return "Unknown"
	}
}

// EncodeError is returned by Encode/EncodeInto. Path describes the
// offending value's position in the in-memory structure (spec §7:
// "Encoding errors cite the offending value and its path within the
// in-memory structure").
type EncodeError struct {
	Kind EncodeErrorKind
	Path string
	Msg  string
}

func (e *EncodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("dagcbor: encode: %s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("dagcbor: encode: %s: %s at %s", e.Kind, e.Msg, e.Path)
}

// DecodeErrorKind enumerates the structured decode-side failure families
// from spec §4.4.
type DecodeErrorKind int

const (
	DecodeErrUnexpectedEndOfInput DecodeErrorKind = iota
	DecodeErrInvalidHead
	DecodeErrNonCanonicalArgument
	DecodeErrInvalidUtf8
	DecodeErrUnexpectedTag
	DecodeErrDisallowedFloat
	DecodeErrMapKeyNotString
	DecodeErrMapKeyDuplicate
	DecodeErrMapKeyOutOfOrder
	DecodeErrInvalidCidPrefix
	DecodeErrTrailingBytes
	DecodeErrNestingTooDeep
)

func (k DecodeErrorKind) String() string {
	switch k {
	case DecodeErrUnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case DecodeErrInvalidHead:
		return "InvalidHead"
	case DecodeErrNonCanonicalArgument:
		return "NonCanonicalArgument"
	case DecodeErrInvalidUtf8:
		return "InvalidUtf8"
	case DecodeErrUnexpectedTag:
		return "UnexpectedTag"
	case DecodeErrDisallowedFloat:
		return "DisallowedFloat"
	case DecodeErrMapKeyNotString:
		return "MapKeyNotString"
	case DecodeErrMapKeyDuplicate:
		return "MapKeyDuplicate"
	case DecodeErrMapKeyOutOfOrder:
		return "MapKeyOutOfOrder"
	case DecodeErrInvalidCidPrefix:
		return "InvalidCidPrefix"
	case DecodeErrTrailingBytes:
		return "TrailingBytes"
	case DecodeErrNestingTooDeep:
		return "NestingTooDeep"
	default:
		return "Unknown"
	}
}

// DecodeError is returned by Decode/DecodeAllowConcat. Offset is the byte
// position of the offending item; Path is the logical container stack
// (spec §4.3: "root/list[3]/map[\"foo\"]/…") at the time of failure.
type DecodeError struct {
	Kind   DecodeErrorKind
	Offset int
	Path   string
	Msg    string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("dagcbor: decode: %s: %s at offset %d (%s)", e.Kind, e.Msg, e.Offset, e.Path)
}

// errAt builds a DecodeError anchored to the current path and the given
// byte offset. Every branch in decodeValue funnels through this so offset
// and path are always populated together.
func (s *decodeState) errAt(offset int, kind DecodeErrorKind, msg string) error {
	return &DecodeError{Kind: kind, Offset: offset, Path: s.path.String(), Msg: msg}
}
