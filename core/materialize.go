package core

import "strings"

// DiscriminatorField is the response field carrying the resource type tag.
const DiscriminatorField = "object"

// Materializer converts decoded response data into record graphs. Every
// nested mapping becomes a Record, every sequence of mappings becomes an
// ordered []*Record, and scalars pass through unchanged.
type Materializer struct {
	registry *TypeRegistry
}

func NewMaterializer(registry *TypeRegistry) *Materializer {
	if registry == nil {
		registry = NewTypeRegistry()
	}
	return &Materializer{registry: registry}
}

// Materialize builds a loaded record from raw response data. Loading marks
// zero fields dirty; only post-load assignment dirties fields.
func (m *Materializer) Materialize(data map[string]any) *Record {
	tag := discriminatorTag(data)
	record := m.newTypedRecord(tag)
	for name, value := range data {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		record.values[trimmed] = m.convert(value)
	}
	return record
}

// Refresh re-materializes data over an existing record: the snapshot is
// replaced, the dirty set cleared, and the record is no longer fresh.
// Structural policy such as protected composites is kept.
func (m *Materializer) Refresh(record *Record, data map[string]any) {
	if record == nil {
		return
	}
	if tag := discriminatorTag(data); tag != "" {
		record.tag = tag
	}
	record.values = map[string]any{}
	for name, value := range data {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		record.values[trimmed] = m.convert(value)
	}
	record.markSaved()
}

func (m *Materializer) newTypedRecord(tag string) *Record {
	if m != nil && m.registry != nil {
		if factory, ok := m.registry.Resolve(tag); ok {
			if record := factory(tag); record != nil {
				record.markSaved()
				return record
			}
		}
	}
	return newBlankRecord(tag)
}

func (m *Materializer) convert(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return m.Materialize(typed)
	case []any:
		return m.convertSequence(typed)
	default:
		return value
	}
}

// convertSequence turns a uniform sequence of mappings into []*Record. Mixed
// or scalar sequences pass through untouched.
func (m *Materializer) convertSequence(elements []any) any {
	if len(elements) == 0 {
		return elements
	}
	records := make([]*Record, 0, len(elements))
	for _, element := range elements {
		data, ok := element.(map[string]any)
		if !ok {
			return elements
		}
		records = append(records, m.Materialize(data))
	}
	return records
}

func discriminatorTag(data map[string]any) string {
	tag, _ := data[DiscriminatorField].(string)
	return strings.TrimSpace(tag)
}
