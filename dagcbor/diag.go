package dagcbor

import (
	"encoding/hex"
	"math"
	"strconv"
	"strings"
)

// RenderDiagnostic renders v in RFC 8949-style diagnostic notation,
// restricted to the nine permitted kinds (no indefinite-length markers,
// no simple(N) placeholders, no raw tag numbers besides the CID form).
func RenderDiagnostic(v Value) (string, error) {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)
	if err := diagOne(bb, v); err != nil {
		return "", err
	}
	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())
	return string(out), nil
}

func diagOne(buf *ByteBuffer, v Value) error {
	switch v.Kind() {
	case KindNull:
		buf.WriteString("null")
		return nil
	case KindBool:
		b, _ := v.Bool()
		if b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case KindInt:
		if i, ok := v.Int64(); ok {
			buf.WriteString(strconv.FormatInt(i, 10))
			return nil
		}
		u, _ := v.Uint64()
		buf.WriteString(strconv.FormatUint(u, 10))
		return nil
	case KindFloat:
		f, _ := v.Float()
		buf.WriteString(formatFloatDiag(f))
		return nil
	case KindBytes:
		b, _ := v.Bytes()
		buf.WriteString("h'")
		d := buf.Extend(hex.EncodedLen(len(b)))
		hex.Encode(d, b)
		buf.WriteString("'")
		return nil
	case KindString:
		s, _ := v.Str()
		buf.WriteString(strconv.Quote(s))
		return nil
	case KindList:
		items, _ := v.List()
		buf.WriteString("[")
		for i, item := range items {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := diagOne(buf, item); err != nil {
				return err
			}
		}
		buf.WriteString("]")
		return nil
	case KindMap:
		entries, _ := v.MapEntries()
		ordered, err := canonicalMapEntries(entries)
		if err != nil {
			return err
		}
		buf.WriteString("{")
		for i, entry := range ordered {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(strconv.Quote(entry.Key))
			buf.WriteString(": ")
			if err := diagOne(buf, entry.Value); err != nil {
				return err
			}
		}
		buf.WriteString("}")
		return nil
	case KindCID:
		c, _ := v.CID()
		buf.WriteString("42(h'00")
		if c != nil {
			d := buf.Extend(hex.EncodedLen(len(c.Bytes())))
			hex.Encode(d, c.Bytes())
		}
		buf.WriteString("')")
		return nil
	default:
		return &EncodeError{Kind: EncodeErrUnsupportedType, Msg: "value has no recognized kind"}
	}
}

// formatFloatDiag mirrors the fixed-point-preferred rendering used by the
// corpus's own diagnostic renderer, restricted to finite values since NaN
// and infinities never survive into a Value in the first place.
func formatFloatDiag(f float64) string {
	af := math.Abs(f)
	if af == 0 || af < 1e15 {
		return trimTrailingZerosDot(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func trimTrailingZerosDot(s string) string {
	if strings.IndexByte(s, '.') < 0 {
		return s
	}
	i := len(s)
	for i > 0 && s[i-1] == '0' {
		i--
	}
	if i > 0 && s[i-1] == '.' {
		i--
	}
	return s[:i]
}

// HexSnippet renders a caret-annotated hex dump of data centered on
// offset within a window of up to 2*window bytes, for use in decode error
// reporting alongside DecodeError's Offset and Path.
func HexSnippet(data []byte, offset, window int) string {
	if window <= 0 {
		window = 16
	}
	start := offset - window
	if start < 0 {
		start = 0
	}
	end := offset + window
	if end > len(data) {
		end = len(data)
	}

	bb := GetByteBuffer()
	defer PutByteBuffer(bb)

	for i := start; i < end; i++ {
		if i > start {
			bb.WriteByte(' ')
		}
		d := bb.Extend(2)
		hex.Encode(d, data[i:i+1])
	}
	bb.WriteByte('\n')
	for i := start; i < end; i++ {
		if i > start {
			bb.WriteByte(' ')
		}
		if i == offset {
			bb.WriteString("^^")
		} else {
			bb.WriteString("  ")
		}
	}
	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())
	return string(out)
}
