// Package config provides a layered configuration view over an ordered sequence of sources.
package config

import (
	"context"
	"strconv"
	"time"
)

type (
	// Composite resolves configuration reads across an ordered sequence of sources.
	// Insertion order is precedence order: the first source containing a key wins.
	// One distinguished in-memory overlay is always the last member of the sequence;
	// it receives every write made through the composite and can never be removed.
	//
	// A Composite itself satisfies Source, so composites can be nested inside
	// other composites.
	//
	// The sequence is mutated in place and is not guarded by a lock. Callers that
	// mutate the sequence (AddSource, RemoveSource, Clear) concurrently with reads
	// must serialize access externally; the sources themselves carry their own,
	// independent thread-safety guarantees.
	Composite struct {
		*notifier

		// sources is the precedence-ordered sequence. The overlay is always
		// its last element.
		sources []Source
		// overlay is the single mutable source receiving all writes.
		overlay Source
	}

	// CompositeOption configures Composite construction using the functional
	// options pattern.
	CompositeOption func(*compositeConfig)

	// compositeConfig holds construction options for a Composite.
	compositeConfig struct {
		overlay Source
	}
)

// WithOverlay supplies the overlay source the composite should use for writes
// instead of a freshly created in-memory one. The given source becomes the
// permanent last member of the sequence.
func WithOverlay(s Source) CompositeOption {
	return func(cc *compositeConfig) {
		cc.overlay = s
	}
}

// NewComposite creates a composite resolver containing only its overlay.
// Further sources are appended with AddSource and are checked before the
// overlay on reads, while writes always land in the overlay.
//
// Example:
//
//	comp := config.NewComposite()
//	comp.AddSource(fileSource)
//	comp.AddSource(envSource)
//	v, ok := comp.Value(ctx, "database.host")
func NewComposite(opts ...CompositeOption) *Composite {
	cc := compositeConfig{
		overlay: nil,
	}
	for _, o := range opts {
		o(&cc)
	}
	if cc.overlay == nil {
		cc.overlay = NewInMemory()
	}

	return &Composite{
		notifier: newNotifier(),
		sources:  []Source{cc.overlay},
		overlay:  cc.overlay,
	}
}

// AddSource appends src to the sequence immediately before the overlay, so it
// has lower read priority than all previously added sources but higher than
// the overlay. Adding a source already present in the sequence is a no-op.
func (c *Composite) AddSource(ctx context.Context, src Source) {
	if c.containsSource(src) {
		return
	}
	c.insert(src)
	c.notify(ctx)
}

// RemoveSource removes src from the sequence. Removal of the overlay is
// silently refused; it is not an error condition.
func (c *Composite) RemoveSource(ctx context.Context, src Source) {
	if sameSource(src, c.overlay) {
		return
	}
	for i, s := range c.sources {
		if sameSource(s, src) {
			c.sources = append(c.sources[:i], c.sources[i+1:]...)
			c.notify(ctx)
			return
		}
	}
}

// Clear discards the entire sequence and installs a freshly constructed,
// empty overlay as its sole member. All previously added sources and all
// overlay-held values are gone after this call.
func (c *Composite) Clear(ctx context.Context) {
	c.overlay = NewInMemory()
	c.sources = []Source{c.overlay}
	c.notify(ctx)
}

// Value returns the value from the first source in sequence order that
// contains the key. It never merges values across sources for scalar reads.
// The second return value is false when no source contains the key.
func (c *Composite) Value(ctx context.Context, key string) (any, bool) {
	for _, s := range c.sources {
		if s.Contains(ctx, key) {
			return s.Value(ctx, key)
		}
	}
	return nil, false
}

// Contains reports whether any source in the sequence contains the key.
func (c *Composite) Contains(ctx context.Context, key string) bool {
	for _, s := range c.sources {
		if s.Contains(ctx, key) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether every source in the sequence is empty.
func (c *Composite) IsEmpty(ctx context.Context) bool {
	for _, s := range c.sources {
		if !s.IsEmpty(ctx) {
			return false
		}
	}
	return true
}

// Keys returns the union of keys across all sources in sequence order,
// deduplicated by first occurrence. The result follows first-occurrence
// order, not a global sort.
func (c *Composite) Keys(ctx context.Context) []string {
	return c.unionKeys(func(s Source) []string {
		return s.Keys(ctx)
	})
}

// KeysWithPrefix behaves like Keys, restricting each per-source contribution
// to keys starting with the given prefix before unioning.
func (c *Composite) KeysWithPrefix(ctx context.Context, prefix string) []string {
	return c.unionKeys(func(s Source) []string {
		return s.KeysWithPrefix(ctx, prefix)
	})
}

// SetProperty replaces any previously visible value for key. It is implicitly
// a ClearProperty(key) followed by AddProperty(key, value): the key is removed
// from every source in the sequence, then the new value is written into the
// overlay. Callers should be aware this is destructive across the whole
// layered view, not purely additive to the overlay: a value living in a
// non-overlay source is deleted if that source permits mutation.
func (c *Composite) SetProperty(ctx context.Context, key string, value any) {
	c.clearAll(ctx, key)
	c.overlay.AddProperty(ctx, key, value)
	c.notify(ctx)
}

// AddProperty writes value under key into the overlay. No other source is
// touched; this is the only path by which new values enter the composite.
func (c *Composite) AddProperty(ctx context.Context, key string, value any) {
	c.overlay.AddProperty(ctx, key, value)
	c.notify(ctx)
}

// ClearProperty removes key from every source in the sequence. A source that
// does not hold the key treats the call as a no-op.
func (c *Composite) ClearProperty(ctx context.Context, key string) {
	c.clearAll(ctx, key)
	c.notify(ctx)
}

// List merges the list value for key across the layered view: the first
// non-overlay source containing the key contributes its full list, then the
// overlay's list for the key is always appended, whether or not a non-overlay
// match was found. Sources after the first match never contribute; the merge
// models a base list plus local additions, not a union.
func (c *Composite) List(ctx context.Context, key string) []any {
	out := make([]any, 0)

	for _, s := range c.sources {
		if sameSource(s, c.overlay) {
			continue
		}
		if s.Contains(ctx, key) {
			out = append(out, s.List(ctx, key)...)
			break
		}
	}

	return append(out, c.overlay.List(ctx, key)...)
}

// ListOr behaves like List, substituting def when the merged result is empty.
func (c *Composite) ListOr(ctx context.Context, key string, def []any) []any {
	l := c.List(ctx, key)
	if len(l) == 0 {
		return def
	}
	return l
}

// StringArray returns the merged list for key converted to strings. It fails
// with a ListTypeError when any element of the merged list is not a string.
func (c *Composite) StringArray(ctx context.Context, key string) ([]string, error) {
	l := c.List(ctx, key)
	out := make([]string, len(l))
	for i, v := range l {
		s, ok := v.(string)
		if !ok {
			return nil, ListTypeError{
				Key:   key,
				Index: i,
				Value: v,
			}
		}
		out[i] = s
	}
	return out, nil
}

// SourceCount returns the number of sources in the sequence, overlay included.
func (c *Composite) SourceCount() int {
	return len(c.sources)
}

// SourceAt returns the source at the given precedence position. It fails with
// a SourceIndexError for out-of-range indices.
func (c *Composite) SourceAt(index int) (Source, error) {
	if index < 0 || index >= len(c.sources) {
		return nil, SourceIndexError{
			Index: index,
			Count: len(c.sources),
		}
	}
	return c.sources[index], nil
}

// Overlay returns the overlay source receiving all writes.
func (c *Composite) Overlay() Source {
	return c.overlay
}

// String returns the string value resolved for key, or def when the key is
// absent or the value cannot be represented as a string.
func (c *Composite) String(ctx context.Context, key string, def string) string {
	v, ok := c.Value(ctx, key)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return def
	}
}

// Int returns the int value resolved for key, or def when the key is absent
// or the value is not representable as an int.
func (c *Composite) Int(ctx context.Context, key string, def int) int {
	v, ok := c.Value(ctx, key)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		i, err := strconv.Atoi(t)
		if err != nil {
			return def
		}
		return i
	default:
		return def
	}
}

// Bool returns the bool value resolved for key, or def when the key is absent
// or the value is not representable as a bool.
func (c *Composite) Bool(ctx context.Context, key string, def bool) bool {
	v, ok := c.Value(ctx, key)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(t)
		if err != nil {
			return def
		}
		return b
	default:
		return def
	}
}

// Float returns the float64 value resolved for key, or def when the key is
// absent or the value is not representable as a float64.
func (c *Composite) Float(ctx context.Context, key string, def float64) float64 {
	v, ok := c.Value(ctx, key)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return def
		}
		return f
	default:
		return def
	}
}

// Duration returns the time.Duration value resolved for key, or def when the
// key is absent or the value does not parse as a duration.
func (c *Composite) Duration(ctx context.Context, key string, def time.Duration) time.Duration {
	v, ok := c.Value(ctx, key)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case time.Duration:
		return t
	case string:
		d, err := time.ParseDuration(t)
		if err != nil {
			return def
		}
		return d
	default:
		return def
	}
}

// insert places src immediately before the overlay. This is the single
// routine maintaining the "overlay is last" invariant; no other code performs
// positional arithmetic on the sequence.
func (c *Composite) insert(src Source) {
	n := len(c.sources)
	c.sources = append(c.sources[:n-1], src, c.overlay)
}

// containsSource reports whether an equal source already lives in the sequence.
func (c *Composite) containsSource(src Source) bool {
	for _, s := range c.sources {
		if sameSource(s, src) {
			return true
		}
	}
	return false
}

// clearAll removes key from every source without notifying subscribers.
func (c *Composite) clearAll(ctx context.Context, key string) {
	for _, s := range c.sources {
		s.ClearProperty(ctx, key)
	}
}

// unionKeys builds the first-occurrence-ordered union of per-source keys.
func (c *Composite) unionKeys(fn func(Source) []string) []string {
	seen := make(map[string]struct{})
	keys := make([]string, 0)
	for _, s := range c.sources {
		for _, k := range fn(s) {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys
}
