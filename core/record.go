package core

import (
	"sort"
	"strings"
)

// Record is a mutable node in an API resource graph. It holds the last known
// field values together with the set of field names assigned since the record
// was loaded or last saved. Values are scalars, nested *Record, or ordered
// []*Record sequences.
//
// A record is either fresh (constructed locally by the caller) or loaded
// (materialized from response data). Freshness decides whether serialization
// emits the full snapshot or only the dirty diff.
type Record struct {
	tag       string
	values    map[string]any
	dirty     map[string]struct{}
	protected map[string]struct{}
	fresh     bool
}

// NewRecord builds a locally constructed record. Fields provided here count
// as assigned by the caller.
func NewRecord(tag string, values map[string]any) *Record {
	record := newBlankRecord(tag)
	record.fresh = true
	for name, value := range values {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		record.values[trimmed] = value
		record.dirty[trimmed] = struct{}{}
	}
	return record
}

func newBlankRecord(tag string) *Record {
	return &Record{
		tag:       strings.TrimSpace(tag),
		values:    map[string]any{},
		dirty:     map[string]struct{}{},
		protected: map[string]struct{}{},
	}
}

// Tag reports the record's type discriminator, e.g. "account" or
// "bank_account". Empty for untyped records.
func (r *Record) Tag() string {
	if r == nil {
		return ""
	}
	return r.tag
}

// Fresh reports whether the record was constructed locally rather than
// materialized from response data.
func (r *Record) Fresh() bool {
	return r != nil && r.fresh
}

// Get returns the current value for name, post-mutation.
func (r *Record) Get(name string) (any, error) {
	trimmed := strings.TrimSpace(name)
	if r == nil {
		return nil, NewAttributeNotFoundError(trimmed, "")
	}
	value, ok := r.values[trimmed]
	if !ok {
		return nil, NewAttributeNotFoundError(trimmed, r.tag)
	}
	return value, nil
}

// GetString returns the value for name coerced to a string. Missing fields
// fail the same way Get does; non-string values return the empty string.
func (r *Record) GetString(name string) (string, error) {
	value, err := r.Get(name)
	if err != nil {
		return "", err
	}
	text, _ := value.(string)
	return text, nil
}

// GetRecord returns the nested record stored under name, or nil when the
// field holds a scalar.
func (r *Record) GetRecord(name string) (*Record, error) {
	value, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	nested, _ := value.(*Record)
	return nested, nil
}

// GetSequence returns the record sequence stored under name, or nil when the
// field holds something else.
func (r *Record) GetSequence(name string) ([]*Record, error) {
	value, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	sequence, _ := value.([]*Record)
	return sequence, nil
}

// Set stores value under name and marks the field dirty. Protected composite
// fields reject wholesale assignment; their leaves must be assigned on the
// nested record instead.
func (r *Record) Set(name string, value any) error {
	trimmed := strings.TrimSpace(name)
	if r == nil || trimmed == "" {
		return NewBadInputError("core: field name is required")
	}
	if _, guarded := r.protected[trimmed]; guarded {
		return NewImmutableAssignmentError(trimmed, r.tag)
	}
	r.values[trimmed] = value
	r.dirty[trimmed] = struct{}{}
	return nil
}

// Protect marks composite fields that must not be replaced wholesale.
func (r *Record) Protect(names ...string) {
	if r == nil {
		return
	}
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		r.protected[trimmed] = struct{}{}
	}
}

// Has reports whether name is present in the snapshot or was assigned.
func (r *Record) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.values[strings.TrimSpace(name)]
	return ok
}

// IsDirty reports whether name was assigned since load or last save.
func (r *Record) IsDirty(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.dirty[strings.TrimSpace(name)]
	return ok
}

// Dirty returns the assigned field names in deterministic order.
func (r *Record) Dirty() []string {
	if r == nil || len(r.dirty) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.dirty))
	for name := range r.dirty {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FieldNames returns every known field name in deterministic order.
func (r *Record) FieldNames() []string {
	if r == nil || len(r.values) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// markSaved clears the dirty set after a successful save or load. A saved
// record is no longer fresh: its snapshot now reflects remote state.
func (r *Record) markSaved() {
	if r == nil {
		return
	}
	r.dirty = map[string]struct{}{}
	r.fresh = false
}
