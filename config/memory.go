// Package config provides a layered configuration view over an ordered sequence of sources.
package config

import (
	"context"
	"strings"
	"sync"
)

// InMemory is a map-backed Source. A Composite installs one automatically as
// its write overlay, and it doubles as the seed store for file-backed sources.
//
// Keys preserve insertion order, so Keys returns a deterministic sequence.
// Adding a property under an existing key turns the stored value into a list
// and appends to it.
type InMemory struct {
	mutex *sync.RWMutex

	// order tracks key insertion order for deterministic Keys output.
	order []string
	props map[string]any
}

// NewInMemory creates an empty in-memory source.
func NewInMemory() *InMemory {
	return &InMemory{
		mutex: new(sync.RWMutex),
		order: make([]string, 0),
		props: make(map[string]any),
	}
}

// Contains reports whether the source holds a value for key.
func (m *InMemory) Contains(ctx context.Context, key string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.props[key]
	return ok
}

// Value returns the value stored under key. List-valued keys return the full
// stored list.
func (m *InMemory) Value(ctx context.Context, key string) (any, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	v, ok := m.props[key]
	return v, ok
}

// Keys returns all key names in insertion order.
func (m *InMemory) Keys(ctx context.Context) []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// KeysWithPrefix returns the key names starting with prefix, in insertion order.
func (m *InMemory) KeysWithPrefix(ctx context.Context, prefix string) []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	out := make([]string, 0)
	for _, k := range m.order {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

// List returns the list value stored under key. A scalar value is wrapped in
// a single-element list; a missing key yields an empty list.
func (m *InMemory) List(ctx context.Context, key string) []any {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	v, ok := m.props[key]
	if !ok {
		return []any{}
	}
	if l, ok := v.([]any); ok {
		out := make([]any, len(l))
		copy(out, l)
		return out
	}
	return []any{v}
}

// ListOr behaves like List, substituting def when the result is empty.
func (m *InMemory) ListOr(ctx context.Context, key string, def []any) []any {
	l := m.List(ctx, key)
	if len(l) == 0 {
		return def
	}
	return l
}

// IsEmpty reports whether the source holds no keys.
func (m *InMemory) IsEmpty(ctx context.Context) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.props) == 0
}

// ClearProperty removes key from the source. Removing an absent key is a no-op.
func (m *InMemory) ClearProperty(ctx context.Context, key string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.props[key]; !ok {
		return
	}
	delete(m.props, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// AddProperty inserts value under key. When the key already holds a value,
// the existing value becomes a list and the new value is appended to it.
func (m *InMemory) AddProperty(ctx context.Context, key string, value any) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	old, ok := m.props[key]
	if !ok {
		m.props[key] = value
		m.order = append(m.order, key)
		return
	}
	if l, ok := old.([]any); ok {
		m.props[key] = append(l, value)
		return
	}
	m.props[key] = []any{old, value}
}
