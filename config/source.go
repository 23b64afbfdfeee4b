// Package config provides a layered configuration view over an ordered sequence of sources.
// It offers a unified key space for accessing configuration values from heterogeneous sources
// (files, environment variables, in-memory overrides) with first-match-wins precedence,
// a dedicated mutable overlay for runtime changes, and change notification.
package config

import "context"

type (
	// Source is the capability set every configuration source must expose to
	// participate in a Composite. Implementations may be file-backed, environment-backed,
	// in-memory, or composites themselves; the resolver never inspects concrete types.
	Source interface {
		// Contains reports whether the source holds a value for the given key.
		// It is a pure query with no side effects.
		Contains(ctx context.Context, key string) bool

		// Value returns the value stored under key. The second return value
		// reports presence and must be consistent with Contains.
		Value(ctx context.Context, key string) (any, bool)

		// Keys returns the key names held by the source.
		Keys(ctx context.Context) []string

		// KeysWithPrefix returns the key names held by the source that start
		// with the given prefix.
		KeysWithPrefix(ctx context.Context, prefix string) []string

		// List returns the list value stored under key. A scalar value is
		// returned as a single-element list; a missing key yields an empty list.
		List(ctx context.Context, key string) []any

		// ListOr behaves like List but substitutes def when the result is empty.
		ListOr(ctx context.Context, key string, def []any) []any

		// IsEmpty reports whether the source holds no keys at all.
		IsEmpty(ctx context.Context) bool

		// ClearProperty removes key from the source. Removing an absent key
		// is a no-op, not an error.
		ClearProperty(ctx context.Context, key string)

		// AddProperty inserts value under key, or appends it to the existing
		// value when the key is already present.
		AddProperty(ctx context.Context, key string, value any)
	}

	// equaler may be implemented by a Source to define its own logical
	// equality contract. It is consulted by Composite when deduplicating
	// sources on insertion and matching them on removal.
	equaler interface {
		Equal(Source) bool
	}
)

var (
	_ Source = (*Composite)(nil)
	_ Source = (*InMemory)(nil)
	_ Source = (*FileSource)(nil)
	_ Source = (*EnvSource)(nil)
	_ Source = (*Prefixed)(nil)
	_ Source = (*Logged)(nil)
)

// sameSource reports whether two sources refer to the same logical source.
// A source defining its own equality contract is asked first; otherwise
// plain interface identity is used, which for pointer-backed sources means
// the same instance.
func sameSource(a, b Source) bool {
	if e, ok := a.(equaler); ok {
		return e.Equal(b)
	}
	if e, ok := b.(equaler); ok {
		return e.Equal(a)
	}
	return a == b
}
