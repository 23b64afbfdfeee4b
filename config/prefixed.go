// Package config provides a layered configuration view over an ordered sequence of sources.
package config

import (
	"context"
	"fmt"
	"strings"
)

type (
	// Prefixed is a wrapper around any Source that scopes all operations to a
	// namespace prefix. Clients access configuration values without repeating
	// the prefix, which keeps key paths short and reduces the risk of typos.
	//
	// A Prefixed wrapping a source with keys "database.host" and
	// "database.port" under the namespace "database" exposes them as "host"
	// and "port". It satisfies Source, so prefixed views can be added to a
	// Composite like any other source.
	Prefixed struct {
		prefixJoiner

		// source is the underlying configuration source.
		source Source
		// name is the namespace prefix added to all keys.
		name string
	}

	// prefixJoiner provides key joining under a namespace prefix.
	prefixJoiner struct {
		nmspc string
	}
)

// NewPrefixed creates a Source exposing the sub-namespace `name` of the given
// source.
//
// Parameters:
//   - name: The namespace prefix to add to all keys
//   - src: The underlying configuration source
//
// Returns:
//   - A new Prefixed view over src
func NewPrefixed(name string, src Source) *Prefixed {
	return &Prefixed{
		prefixJoiner: prefixJoiner{nmspc: name},
		source:       src,
		name:         name,
	}
}

// At creates a Prefixed view nested one namespace deeper, so
// NewPrefixed("database", src).At("replica") exposes "database.replica.*".
func (p *Prefixed) At(inner string) *Prefixed {
	return NewPrefixed(inner, p)
}

// Namespace returns the namespace prefix this view uses.
func (p *Prefixed) Namespace() string {
	return p.name
}

// Contains reports whether the underlying source holds the namespaced key.
func (p *Prefixed) Contains(ctx context.Context, key string) bool {
	return p.source.Contains(ctx, p.join(key))
}

// Value returns the value the underlying source holds for the namespaced key.
func (p *Prefixed) Value(ctx context.Context, key string) (any, bool) {
	return p.source.Value(ctx, p.join(key))
}

// Keys returns every key of the underlying source living inside the
// namespace, with the namespace prefix stripped.
func (p *Prefixed) Keys(ctx context.Context) []string {
	return p.strip(p.source.KeysWithPrefix(ctx, p.nmspc+"."))
}

// KeysWithPrefix returns the namespaced keys starting with prefix, with the
// namespace stripped.
func (p *Prefixed) KeysWithPrefix(ctx context.Context, prefix string) []string {
	return p.strip(p.source.KeysWithPrefix(ctx, p.join(prefix)))
}

// List returns the list value the underlying source holds for the namespaced key.
func (p *Prefixed) List(ctx context.Context, key string) []any {
	return p.source.List(ctx, p.join(key))
}

// ListOr behaves like List, substituting def when the result is empty.
func (p *Prefixed) ListOr(ctx context.Context, key string, def []any) []any {
	return p.source.ListOr(ctx, p.join(key), def)
}

// IsEmpty reports whether the namespace holds no keys in the underlying source.
func (p *Prefixed) IsEmpty(ctx context.Context) bool {
	return len(p.source.KeysWithPrefix(ctx, p.nmspc+".")) == 0
}

// ClearProperty removes the namespaced key from the underlying source.
func (p *Prefixed) ClearProperty(ctx context.Context, key string) {
	p.source.ClearProperty(ctx, p.join(key))
}

// AddProperty writes value under the namespaced key in the underlying source.
func (p *Prefixed) AddProperty(ctx context.Context, key string, value any) {
	p.source.AddProperty(ctx, p.join(key), value)
}

// strip removes the namespace prefix from keys reported by the underlying source.
func (p *Prefixed) strip(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, p.nmspc+"."))
	}
	return out
}

// join combines the namespace prefix with a key. An empty key resolves to the
// namespace itself.
func (j prefixJoiner) join(key string) string {
	if len(key) == 0 {
		return j.nmspc
	}
	return fmt.Sprintf("%s.%s", j.nmspc, key)
}
