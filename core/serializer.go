package core

import "strconv"

// UnsetSentinel encodes "clear this collection" on the wire, distinct from
// omitting the field entirely.
const UnsetSentinel = ""

// ChangedParams walks a record graph and returns the minimal parameter
// payload covering only what changed since load or last save. The top-level
// mapping is returned even when empty; nested mappings are included only when
// non-empty.
func ChangedParams(record *Record) map[string]any {
	return serializeRecord(record)
}

func serializeRecord(record *Record) map[string]any {
	out := map[string]any{}
	if record == nil {
		return out
	}
	for _, name := range record.FieldNames() {
		value := record.values[name]
		assigned := record.IsDirty(name)

		switch typed := value.(type) {
		case *Record:
			if assigned {
				// Replaced wholesale: the current snapshot is
				// authoritative, not a diff.
				out[name] = SnapshotParams(typed)
				continue
			}
			if nested := serializeRecord(typed); len(nested) > 0 {
				out[name] = nested
			}
		case []*Record:
			if assigned && len(typed) == 0 {
				out[name] = UnsetSentinel
				continue
			}
			indexed := serializeSequence(typed)
			if assigned || len(indexed) > 0 {
				out[name] = indexed
			}
		case nil:
			if assigned {
				out[name] = UnsetSentinel
			}
		default:
			if assigned {
				out[name] = typed
			}
		}
	}
	return out
}

// serializeSequence keys elements by position. Fresh elements emit their full
// snapshot; materialized elements emit their own dirty diff and are omitted
// when unchanged.
func serializeSequence(elements []*Record) map[string]any {
	out := map[string]any{}
	for index, element := range elements {
		if element == nil {
			continue
		}
		key := strconv.Itoa(index)
		if element.Fresh() {
			out[key] = SnapshotParams(element)
			continue
		}
		if diff := serializeRecord(element); len(diff) > 0 {
			out[key] = diff
		}
	}
	return out
}

// SnapshotParams returns the record's full current field values as a
// parameter mapping, recursing into nested records and index-keying
// sequences.
func SnapshotParams(record *Record) map[string]any {
	out := map[string]any{}
	if record == nil {
		return out
	}
	for _, name := range record.FieldNames() {
		switch typed := record.values[name].(type) {
		case *Record:
			out[name] = SnapshotParams(typed)
		case []*Record:
			indexed := map[string]any{}
			for index, element := range typed {
				if element == nil {
					continue
				}
				indexed[strconv.Itoa(index)] = SnapshotParams(element)
			}
			out[name] = indexed
		case nil:
			out[name] = UnsetSentinel
		default:
			out[name] = typed
		}
	}
	return out
}
