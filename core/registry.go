package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// RecordFactory builds a typed record shell for a discriminator tag. The
// materializer fills the shell from response data, so factories only set
// structural policy such as protected composites.
type RecordFactory func(tag string) *Record

// TypeRegistry maps discriminator tags to record factories. Materialization
// resolves a tag once; unregistered tags fall back to an untyped record.
type TypeRegistry struct {
	mu        sync.RWMutex
	factories map[string]RecordFactory
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{factories: map[string]RecordFactory{}}
}

func (r *TypeRegistry) Register(tag string, factory RecordFactory) error {
	if r == nil {
		return fmt.Errorf("core: type registry is nil")
	}
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return fmt.Errorf("core: record type tag is required")
	}
	if factory == nil {
		return fmt.Errorf("core: record factory is required for tag %q", trimmed)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[trimmed]; exists {
		return fmt.Errorf("core: record type %q is already registered", trimmed)
	}
	r.factories[trimmed] = factory
	return nil
}

func (r *TypeRegistry) Resolve(tag string) (RecordFactory, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[strings.TrimSpace(tag)]
	return factory, ok
}

// Tags returns registered discriminator tags in deterministic order.
func (r *TypeRegistry) Tags() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.factories))
	for tag := range r.factories {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
