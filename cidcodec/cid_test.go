package cidcodec

import "testing"

func TestFromBytesRoundTrip(t *testing.T) {
	raw := []byte{0xde, 0xad, 0xbe, 0xef}
	c := FromBytes(raw)
	if string(c.Bytes()) != string(raw) {
		t.Fatalf("FromBytes(%x).Bytes() = %x", raw, c.Bytes())
	}
}

func TestBase32RoundTrip(t *testing.T) {
	c := FromBytes([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
	encoded := Base32(c)
	got, err := FromBase32(encoded)
	if err != nil {
		t.Fatalf("FromBase32(%q): %v", encoded, err)
	}
	if !c.Equal(got) {
		t.Fatalf("round trip mismatch: %x != %x", c.Bytes(), got.Bytes())
	}
}

func TestFromBase32RejectsEmptyString(t *testing.T) {
	if _, err := FromBase32(""); err == nil {
		t.Fatalf("FromBase32(\"\") should fail")
	}
}

func TestEqual(t *testing.T) {
	a := FromBytes([]byte{1, 2, 3})
	b := FromBytes([]byte{1, 2, 3})
	c := FromBytes([]byte{1, 2, 4})
	if !a.Equal(b) {
		t.Fatalf("identical byte CIDs should be Equal")
	}
	if a.Equal(c) {
		t.Fatalf("differing byte CIDs should not be Equal")
	}
}
