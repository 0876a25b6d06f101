package dagcbor

import (
	"encoding/hex"
	"testing"
)

func TestAppendHeadMinimalForm(t *testing.T) {
	cases := []struct {
		name     string
		argument uint64
		want     string
	}{
		{"direct-zero", 0, "00"},
		{"direct-max", 23, "17"},
		{"one-byte-boundary", 24, "1818"},
		{"one-byte-max", 0xff, "18ff"},
		{"two-byte-boundary", 0x100, "190100"},
		{"two-byte-max", 0xffff, "19ffff"},
		{"four-byte-boundary", 0x10000, "1a00010000"},
		{"eight-byte-boundary", 0x100000000, "1b0000000100000000"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := appendHead(nil, majorUint, c.argument)
			if hex.EncodeToString(got) != c.want {
				t.Fatalf("appendHead(%d) = %x, want %s", c.argument, got, c.want)
			}
		})
	}
}

func TestDecodeHeadRoundTrip(t *testing.T) {
	for _, argument := range []uint64{0, 23, 24, 255, 256, 65535, 65536, 1 << 32, 1<<64 - 1} {
		encoded := appendHead(nil, majorUint, argument)
		res := decodeHead(encoded)
		if !res.ok {
			t.Fatalf("decodeHead(%x) failed: %v", encoded, res.kind)
		}
		if res.argument != argument || res.consumed != len(encoded) {
			t.Fatalf("decodeHead(%x) = (%d, consumed %d), want (%d, %d)", encoded, res.argument, res.consumed, argument, len(encoded))
		}
	}
}

func TestDecodeHeadRejectsNonMinimalArgument(t *testing.T) {
	cases := []struct {
		name string
		b    []byte
	}{
		{"one-byte-fits-direct", []byte{0x18, 0x05}},
		{"two-byte-fits-one", []byte{0x19, 0x00, 0x10}},
		{"four-byte-fits-two", []byte{0x1a, 0x00, 0x00, 0x01, 0x00}},
		{"eight-byte-fits-four", []byte{0x1b, 0, 0, 0, 0, 0x00, 0x00, 0x01, 0x00}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := decodeHead(c.b)
			if res.ok || res.kind != DecodeErrNonCanonicalArgument {
				t.Fatalf("decodeHead(%x) = %+v, want NonCanonicalArgument", c.b, res)
			}
		})
	}
}

func TestDecodeHeadRejectsReservedAndBreak(t *testing.T) {
	for _, minor := range []byte{28, 29, 30, 31} {
		b := []byte{makeHeadByte(majorUint, minor)}
		res := decodeHead(b)
		if res.ok || res.kind != DecodeErrInvalidHead {
			t.Fatalf("decodeHead(minor=%d) = %+v, want InvalidHead", minor, res)
		}
	}
}

func TestDecodeHeadSkipsMinimalityCheckForFloats(t *testing.T) {
	// A float64 of 0.0 has an all-zero 8-byte bit pattern, which looks
	// numerically "short" but is not a non-minimal encoding of anything.
	b := append([]byte{makeHeadByte(majorSimple, simpleFloat64)}, make([]byte, 8)...)
	res := decodeHead(b)
	if !res.ok {
		t.Fatalf("decodeHead(float64 zero) failed: %v", res.kind)
	}
	if res.minor != simpleFloat64 || res.argument != 0 {
		t.Fatalf("decodeHead(float64 zero) = %+v", res)
	}
}

func TestDecodeHeadUnexpectedEndOfInput(t *testing.T) {
	cases := [][]byte{
		{},
		{0x18},
		{0x19, 0x01},
		{0x1a, 0x01, 0x02, 0x03},
		{0x1b, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07},
	}
	for _, b := range cases {
		res := decodeHead(b)
		if res.ok || res.kind != DecodeErrUnexpectedEndOfInput {
			t.Fatalf("decodeHead(%x) = %+v, want UnexpectedEndOfInput", b, res)
		}
	}
}
