package main

import (
	"encoding/json"
	"testing"

	"github.com/synadia-labs/dagcbor/cidcodec"
	"github.com/synadia-labs/dagcbor/dagcbor"
)

func TestValueFromJSONScalarsAndContainers(t *testing.T) {
	v, err := valueFromJSON([]byte(`{"a": 1, "b": [true, null, "x"]}`))
	if err != nil {
		t.Fatalf("valueFromJSON: %v", err)
	}
	entries, ok := v.MapEntries()
	if !ok || len(entries) != 2 {
		t.Fatalf("valueFromJSON result = %+v", v)
	}
}

func TestValueFromJSONIntegerVsFloat(t *testing.T) {
	v, err := valueFromJSON([]byte(`42`))
	if err != nil {
		t.Fatalf("valueFromJSON(42): %v", err)
	}
	if _, ok := v.Int64(); !ok {
		t.Fatalf("valueFromJSON(42) should be an Int, got %v", v.Kind())
	}

	v, err = valueFromJSON([]byte(`4.5`))
	if err != nil {
		t.Fatalf("valueFromJSON(4.5): %v", err)
	}
	if _, ok := v.Float(); !ok {
		t.Fatalf("valueFromJSON(4.5) should be a Float, got %v", v.Kind())
	}
}

func TestValueFromJSONCIDLinkConvention(t *testing.T) {
	c := cidcodec.FromBytes([]byte{1, 2, 3})
	encoded := cidcodec.Base32(c)
	raw, err := json.Marshal(map[string]string{"/": encoded})
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	v, err := valueFromJSON(raw)
	if err != nil {
		t.Fatalf("valueFromJSON(cid link): %v", err)
	}
	got, ok := v.CID()
	if !ok || !got.(cidcodec.Opaque).Equal(c) {
		t.Fatalf("valueFromJSON(cid link) = %+v", v)
	}
}

func TestValueToJSONRendersCIDLink(t *testing.T) {
	c := cidcodec.FromBytes([]byte{1, 2, 3})
	rendered, err := valueToJSON(dagcbor.NewCID(c))
	if err != nil {
		t.Fatalf("valueToJSON: %v", err)
	}
	m, ok := rendered.(map[string]any)
	if !ok || m["/"] == nil {
		t.Fatalf("valueToJSON(cid) = %v", rendered)
	}
}

func TestRoundTripJSONThroughValue(t *testing.T) {
	v, err := valueFromJSON([]byte(`{"k": [1, "two", false]}`))
	if err != nil {
		t.Fatalf("valueFromJSON: %v", err)
	}
	rendered, err := valueToJSON(v)
	if err != nil {
		t.Fatalf("valueToJSON: %v", err)
	}
	out, err := json.Marshal(rendered)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	var back any
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
}
