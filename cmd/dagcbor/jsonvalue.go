package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/synadia-labs/dagcbor/cidcodec"
	"github.com/synadia-labs/dagcbor/dagcbor"
)

// cidLinkKey is the IPLD DAG-JSON convention for rendering a CID as JSON:
// a single-key object whose key is "/" and whose value is the CID's
// string form. It is ambiguous with a genuine one-key map whose key
// happens to be "/", which dag-json accepts as a known, documented
// limitation rather than one this CLI tries to work around.
const cidLinkKey = "/"

var errCIDLinkNotString = errors.New(`dagcbor: "/" link value must be a string`)

// valueFromJSON converts parsed JSON (as produced by encoding/json's
// generic any decoding) into a Value. JSON numbers without a fractional
// or exponent part that fit in an int64 become Int; every other number
// becomes Float. A single-key {"/": "<base32>"} object becomes a CID.
func valueFromJSON(raw json.RawMessage) (dagcbor.Value, error) {
	var generic any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return dagcbor.Value{}, err
	}
	return convertJSON(generic)
}

func convertJSON(generic any) (dagcbor.Value, error) {
	switch x := generic.(type) {
	case nil:
		return dagcbor.Null(), nil
	case bool:
		return dagcbor.NewBool(x), nil
	case string:
		return dagcbor.NewString(x), nil
	case json.Number:
		if isIntegerLiteral(string(x)) {
			i, err := x.Int64()
			if err == nil {
				return dagcbor.NewInt(i), nil
			}
		}
		f, err := x.Float64()
		if err != nil {
			return dagcbor.Value{}, fmt.Errorf("dagcbor: number %q: %w", x, err)
		}
		return dagcbor.NewFloat(f), nil
	case []any:
		items := make([]dagcbor.Value, len(x))
		for i, el := range x {
			v, err := convertJSON(el)
			if err != nil {
				return dagcbor.Value{}, err
			}
			items[i] = v
		}
		return dagcbor.NewList(items), nil
	case map[string]any:
		if len(x) == 1 {
			if link, ok := x[cidLinkKey]; ok {
				s, ok := link.(string)
				if !ok {
					return dagcbor.Value{}, errCIDLinkNotString
				}
				c, err := cidcodec.FromBase32(s)
				if err != nil {
					return dagcbor.Value{}, fmt.Errorf("dagcbor: decoding CID link: %w", err)
				}
				return dagcbor.NewCID(c), nil
			}
		}
		entries := make([]dagcbor.MapEntry, 0, len(x))
		for k, el := range x {
			v, err := convertJSON(el)
			if err != nil {
				return dagcbor.Value{}, err
			}
			entries = append(entries, dagcbor.MapEntry{Key: k, Value: v})
		}
		return dagcbor.NewMapEntries(entries), nil
	default:
		return dagcbor.Value{}, fmt.Errorf("dagcbor: unsupported JSON value %T", x)
	}
}

func isIntegerLiteral(s string) bool {
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'E' {
			return false
		}
	}
	return true
}

// valueToJSON renders a Value into a JSON-marshalable tree, using the
// same {"/": "<base32>"} convention for CID on the way out.
func valueToJSON(v dagcbor.Value) (any, error) {
	switch v.Kind() {
	case dagcbor.KindNull:
		return nil, nil
	case dagcbor.KindBool:
		b, _ := v.Bool()
		return b, nil
	case dagcbor.KindInt:
		if i, ok := v.Int64(); ok {
			return i, nil
		}
		u, _ := v.Uint64()
		return u, nil
	case dagcbor.KindFloat:
		f, _ := v.Float()
		return f, nil
	case dagcbor.KindBytes:
		b, _ := v.Bytes()
		return b, nil
	case dagcbor.KindString:
		s, _ := v.Str()
		return s, nil
	case dagcbor.KindList:
		items, _ := v.List()
		out := make([]any, len(items))
		for i, item := range items {
			converted, err := valueToJSON(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	case dagcbor.KindMap:
		entries, _ := v.MapEntries()
		out := make(map[string]any, len(entries))
		for _, entry := range entries {
			converted, err := valueToJSON(entry.Value)
			if err != nil {
				return nil, err
			}
			out[entry.Key] = converted
		}
		return out, nil
	case dagcbor.KindCID:
		c, _ := v.CID()
		return map[string]any{cidLinkKey: cidcodec.Base32(c)}, nil
	default:
		return nil, fmt.Errorf("dagcbor: value has no recognized kind")
	}
}
