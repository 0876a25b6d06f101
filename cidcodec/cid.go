// Package cidcodec treats content identifiers as an opaque external
// collaborator: dagcbor only ever needs a byte-string view of a CID
// (to emit/validate the tag-42 multibase-identity wrapper) and never
// parses or interprets CID internals itself.
package cidcodec

import (
	"bytes"
	"errors"

	"github.com/thehowl/cford32"
)

// CID is the narrow interface dagcbor.Value depends on. Any content
// identifier implementation that can produce its binary form satisfies it.
type CID interface {
	Bytes() []byte
}

// Opaque is a minimal CID implementation that stores the exact bytes
// handed to it, with no multicodec/multihash parsing. It exists so
// callers without a richer CID library can still round-trip values
// through dagcbor.
type Opaque struct {
	raw []byte
}

// FromBytes wraps raw CID bytes (the multihash/multicodec payload,
// without the multibase-identity prefix or tag) as an opaque CID.
func FromBytes(raw []byte) Opaque {
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return Opaque{raw: cp}
}

// Bytes returns the wrapped raw CID bytes.
func (o Opaque) Bytes() []byte { return o.raw }

// Equal reports whether two opaque CIDs carry identical bytes.
func (o Opaque) Equal(other Opaque) bool { return bytes.Equal(o.raw, other.raw) }

var errEmptyCID = errors.New("cidcodec: empty CID string")

// Base32 renders a CID's raw bytes as lowercase Crockford base32, the
// human-readable form used by the CLI's JSON mapping. Diagnostic notation
// (dagcbor.RenderDiagnostic) renders CIDs as hex instead.
func Base32(c CID) string {
	return cford32.EncodeToStringLower(c.Bytes())
}

// FromBase32 parses a lowercase (or uppercase) Crockford base32 string
// back into an opaque CID.
func FromBase32(s string) (Opaque, error) {
	if s == "" {
		return Opaque{}, errEmptyCID
	}
	raw, err := cford32.DecodeString(s)
	if err != nil {
		return Opaque{}, err
	}
	return Opaque{raw: raw}, nil
}
