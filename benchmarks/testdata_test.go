package benchmarks

import (
	"testing"

	msgp "github.com/tinylib/msgp/msgp"

	"github.com/synadia-labs/dagcbor/dagcbor"
)

// TestData is a representative payload shape (scalars, a list, a map)
// used to compare this package's Value-based canonical encoding against
// tinylib/msgp's reflection-free Append/Read primitives on equivalent
// data.
type TestData struct {
	Name    string
	Age     int64
	Email   string
	Active  bool
	Balance float64
	Tags    []string
	Scores  map[string]int64
}

func encodeMsgpTestData(data TestData) []byte {
	var buf []byte
	buf = msgp.AppendString(buf, data.Name)
	buf = msgp.AppendInt64(buf, data.Age)
	buf = msgp.AppendString(buf, data.Email)
	buf = msgp.AppendBool(buf, data.Active)
	buf = msgp.AppendFloat64(buf, data.Balance)

	buf = msgp.AppendArrayHeader(buf, uint32(len(data.Tags)))
	for _, tag := range data.Tags {
		buf = msgp.AppendString(buf, tag)
	}

	buf = msgp.AppendMapHeader(buf, uint32(len(data.Scores)))
	for k, v := range data.Scores {
		buf = msgp.AppendString(buf, k)
		buf = msgp.AppendInt64(buf, v)
	}

	return buf
}

func decodeMsgpTestData(b []byte) error {
	buf := b
	var err error

	_, buf, err = msgp.ReadStringBytes(buf)
	if err != nil {
		return err
	}
	_, buf, err = msgp.ReadInt64Bytes(buf)
	if err != nil {
		return err
	}
	_, buf, err = msgp.ReadStringBytes(buf)
	if err != nil {
		return err
	}
	_, buf, err = msgp.ReadBoolBytes(buf)
	if err != nil {
		return err
	}
	_, buf, err = msgp.ReadFloat64Bytes(buf)
	if err != nil {
		return err
	}

	var arrSize uint32
	arrSize, buf, err = msgp.ReadArrayHeaderBytes(buf)
	if err != nil {
		return err
	}
	for j := uint32(0); j < arrSize; j++ {
		_, buf, err = msgp.ReadStringBytes(buf)
		if err != nil {
			return err
		}
	}

	var mapSize uint32
	mapSize, buf, err = msgp.ReadMapHeaderBytes(buf)
	if err != nil {
		return err
	}
	for j := uint32(0); j < mapSize; j++ {
		_, buf, err = msgp.ReadStringBytes(buf)
		if err != nil {
			return err
		}
		_, buf, err = msgp.ReadInt64Bytes(buf)
		if err != nil {
			return err
		}
	}

	return nil
}

// testDataValue builds the Value tree equivalent to data, in
// already-canonical key order so encoding never has to re-sort.
func testDataValue(data TestData) dagcbor.Value {
	tags := make([]dagcbor.Value, len(data.Tags))
	for i, tag := range data.Tags {
		tags[i] = dagcbor.NewString(tag)
	}
	scoreKeys := dagcbor.CanonicalOrder(mapKeys(data.Scores))
	scores := make([]dagcbor.MapEntry, len(scoreKeys))
	for i, k := range scoreKeys {
		scores[i] = dagcbor.MapEntry{Key: k, Value: dagcbor.NewInt(data.Scores[k])}
	}

	entries := []dagcbor.MapEntry{
		{Key: "age", Value: dagcbor.NewInt(data.Age)},
		{Key: "name", Value: dagcbor.NewString(data.Name)},
		{Key: "tags", Value: dagcbor.NewList(tags)},
		{Key: "email", Value: dagcbor.NewString(data.Email)},
		{Key: "active", Value: dagcbor.NewBool(data.Active)},
		{Key: "scores", Value: dagcbor.NewMapEntries(scores)},
		{Key: "balance", Value: dagcbor.NewFloat(data.Balance)},
	}
	return dagcbor.NewMapEntries(entries)
}

func mapKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func encodeDagCBORTestData(data TestData) ([]byte, error) {
	return dagcbor.Encode(testDataValue(data))
}

func decodeDagCBORTestData(b []byte) error {
	_, err := dagcbor.Decode(b)
	return err
}

func TestTestDataPrimitivePathsParity(t *testing.T) {
	data := TestData{
		Name:    "Alice Johnson",
		Age:     30,
		Email:   "alice@example.com",
		Active:  true,
		Balance: 12345.67,
		Tags:    []string{"premium", "verified", "active"},
		Scores:  map[string]int64{"math": 95, "science": 88, "history": 92},
	}

	t.Run("msgp", func(t *testing.T) {
		b := encodeMsgpTestData(data)
		if len(b) == 0 {
			t.Fatalf("empty encoding")
		}
		if err := decodeMsgpTestData(b); err != nil {
			t.Fatalf("decode err: %v", err)
		}
	})

	t.Run("dagcbor", func(t *testing.T) {
		b, err := encodeDagCBORTestData(data)
		if err != nil {
			t.Fatalf("encode err: %v", err)
		}
		if len(b) == 0 {
			t.Fatalf("empty encoding")
		}
		if err := decodeDagCBORTestData(b); err != nil {
			t.Fatalf("decode err: %v", err)
		}
	})
}
