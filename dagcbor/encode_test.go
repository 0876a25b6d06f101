package dagcbor

import (
	"encoding/hex"
	"math"
	"testing"
)

func mustEncode(t *testing.T, v Value) []byte {
	t.Helper()
	b, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return b
}

func TestEncodeMapOfTwoStringKeys(t *testing.T) {
	v := NewMapEntries([]MapEntry{
		{Key: "a", Value: NewInt(12)},
		{Key: "b", Value: NewString("hello!")},
	})
	got := mustEncode(t, v)
	want := "a2" + "6161" + "0c" + "6162" + "6668656c6c6f21"
	if hex.EncodeToString(got) != want {
		t.Fatalf("Encode(map) = %x, want %s", got, want)
	}
}

func TestEncodeReordersNonCanonicalInput(t *testing.T) {
	v := NewMapEntries([]MapEntry{
		{Key: "b", Value: NewInt(2)},
		{Key: "a", Value: NewInt(1)},
	})
	got := mustEncode(t, v)
	want := "a2" + "6161" + "01" + "6162" + "02"
	if hex.EncodeToString(got) != want {
		t.Fatalf("Encode(unsorted map) = %x, want %s", got, want)
	}
}

func TestEncodeDuplicateMapKeyFails(t *testing.T) {
	v := NewMapEntries([]MapEntry{
		{Key: "a", Value: NewInt(1)},
		{Key: "a", Value: NewInt(2)},
	})
	_, err := Encode(v)
	ee, ok := err.(*EncodeError)
	if !ok || ee.Kind != EncodeErrDuplicateMapKey {
		t.Fatalf("Encode(duplicate keys) err = %v, want EncodeErrDuplicateMapKey", err)
	}
}

func TestEncodeRejectsNaNAndInfinity(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Encode(NewFloat(f))
		ee, ok := err.(*EncodeError)
		if !ok || ee.Kind != EncodeErrDisallowedFloat {
			t.Fatalf("Encode(%v) err = %v, want EncodeErrDisallowedFloat", f, err)
		}
	}
}

func TestEncodeIntegers(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{NewInt(0), "00"},
		{NewInt(23), "17"},
		{NewInt(24), "1818"},
		{NewInt(-1), "20"},
		{NewInt(-24), "37"},
		{NewInt(-25), "3818"},
	}
	for _, c := range cases {
		got := mustEncode(t, c.v)
		if hex.EncodeToString(got) != c.want {
			t.Fatalf("Encode(%v) = %x, want %s", c.v, got, c.want)
		}
	}
}

func TestEncodeFloat64(t *testing.T) {
	got := mustEncode(t, NewFloat(1.0))
	want := "fb3ff0000000000000"
	if hex.EncodeToString(got) != want {
		t.Fatalf("Encode(1.0) = %x, want %s", got, want)
	}
}

func TestEncodeBytesAndString(t *testing.T) {
	if hex.EncodeToString(mustEncode(t, NewBytes([]byte{1, 2, 3}))) != "43010203" {
		t.Fatalf("Encode(bytes) mismatch")
	}
	if hex.EncodeToString(mustEncode(t, NewString("a"))) != "6161" {
		t.Fatalf("Encode(\"a\") mismatch")
	}
}

func TestEncodeList(t *testing.T) {
	v := NewList([]Value{NewInt(1), NewInt(2), NewInt(3)})
	if hex.EncodeToString(mustEncode(t, v)) != "83010203" {
		t.Fatalf("Encode([1,2,3]) mismatch")
	}
}

func TestEncodeNestingTooDeep(t *testing.T) {
	inner := NewList(nil)
	for i := 0; i < 5; i++ {
		inner = NewList([]Value{inner})
	}
	_, err := (&Encoder{MaxDepth: 3}).Encode(inner)
	ee, ok := err.(*EncodeError)
	if !ok || ee.Kind != EncodeErrNestingTooDeep {
		t.Fatalf("Encode(deep list) err = %v, want EncodeErrNestingTooDeep", err)
	}
}
