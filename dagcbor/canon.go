package dagcbor

// canonicalLess implements the DAG-CBOR map-key ordering rule: shorter
// UTF-8 byte length sorts first; ties break by bytewise lexicographic
// comparison of the encoded bytes. This is equivalent to sorting by each
// key's CBOR text-string head followed by its bytes (the teacher's
// AppendMapDeterministic approach of sorting encoded-key bytes), because
// a text-string head's byte value is monotonic in the string's length for
// every length this codec can represent.
func canonicalLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// CanonicalOrder returns keys sorted per canonicalLess, leaving the input
// slice untouched.
func CanonicalOrder(keys []string) []string {
	return sortedKeys(keys)
}

// CheckKeyCompliance reports whether keys are pairwise distinct -- the
// standalone form of the uniqueness half of canonicalMapEntries, for
// callers that want to validate a key set before ever building a Map
// value. Every Go string is already valid UTF-8-or-not by construction,
// so the only compliance question left at this layer is uniqueness.
func CheckKeyCompliance(keys []string) error {
	sorted := CanonicalOrder(keys)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1] == sorted[i] {
			return &EncodeError{Kind: EncodeErrDuplicateMapKey, Msg: "duplicate map key " + quoteKey(sorted[i])}
		}
	}
	return nil
}

// canonicalMapEntries returns entries in canonical key order. When the
// input is already in canonical order it is returned as-is (spec §4.2:
// "If the input mapping provides keys in already-canonical order ... no
// re-sort is needed"); otherwise a stable-sorted copy is produced. A
// duplicate key (equal length and bytes) is reported as an error naming
// the offending key.
func canonicalMapEntries(entries []MapEntry) ([]MapEntry, error) {
	inOrder := true
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1].Key, entries[i].Key
		if prev == cur {
			return nil, &EncodeError{Kind: EncodeErrDuplicateMapKey, Msg: "duplicate map key " + quoteKey(cur)}
		}
		if !canonicalLess(prev, cur) {
			inOrder = false
		}
	}
	if inOrder {
		return entries, nil
	}

	sorted := make([]MapEntry, len(entries))
	copy(sorted, entries)
	insertionSortEntries(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Key == sorted[i].Key {
			return nil, &EncodeError{Kind: EncodeErrDuplicateMapKey, Msg: "duplicate map key " + quoteKey(sorted[i].Key)}
		}
	}
	return sorted, nil
}

// insertionSortEntries sorts small maps without pulling in sort.Slice's
// interface overhead; map key counts in practice are small and this keeps
// the canonical ordering pass allocation-free beyond the output copy.
func insertionSortEntries(entries []MapEntry) {
	for i := 1; i < len(entries); i++ {
		j := i
		for j > 0 && canonicalLess(entries[j].Key, entries[j-1].Key) {
			entries[j], entries[j-1] = entries[j-1], entries[j]
			j--
		}
	}
}

func quoteKey(k string) string {
	return "\"" + k + "\""
}
