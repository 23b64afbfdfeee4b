package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seeded builds an in-memory source holding the given scalar values.
func seeded(t *testing.T, values map[string]any) *InMemory {
	t.Helper()
	m := NewInMemory()
	for k, v := range values {
		m.AddProperty(context.Background(), k, v)
	}
	return m
}

func TestCompositeFirstMatchPrecedence(t *testing.T) {
	ctx := context.Background()
	comp := NewComposite()

	first := seeded(t, map[string]any{"shared": "from-first", "only.first": 1})
	second := seeded(t, map[string]any{"shared": "from-second", "only.second": 2})
	comp.AddSource(ctx, first)
	comp.AddSource(ctx, second)

	v, ok := comp.Value(ctx, "shared")
	require.True(t, ok)
	assert.Equal(t, "from-first", v)

	v, ok = comp.Value(ctx, "only.second")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = comp.Value(ctx, "missing")
	assert.False(t, ok)
}

func TestCompositeAddPropertyRoutesToOverlay(t *testing.T) {
	ctx := context.Background()
	comp := NewComposite()

	comp.AddProperty(ctx, "runtime.key", "v")

	v, ok := comp.Value(ctx, "runtime.key")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	// The overlay holds the value; no other source was touched.
	assert.True(t, comp.Overlay().Contains(ctx, "runtime.key"))

	// A source added afterwards shadows the overlay.
	shadow := seeded(t, map[string]any{"runtime.key": "shadowed"})
	comp.AddSource(ctx, shadow)
	v, _ = comp.Value(ctx, "runtime.key")
	assert.Equal(t, "shadowed", v)
}

func TestCompositeSetPropertyClearsEverywhere(t *testing.T) {
	ctx := context.Background()
	comp := NewComposite()

	src := seeded(t, map[string]any{"k": "old"})
	comp.AddSource(ctx, src)

	comp.SetProperty(ctx, "k", "new")

	v, ok := comp.Value(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "new", v)
	assert.True(t, comp.Contains(ctx, "k"))

	// The prior value was removed from the non-overlay source as well.
	assert.False(t, src.Contains(ctx, "k"))
	assert.True(t, comp.Overlay().Contains(ctx, "k"))
}

func TestCompositeClearResetsEverything(t *testing.T) {
	ctx := context.Background()
	comp := NewComposite()
	comp.AddSource(ctx, seeded(t, map[string]any{"a": 1}))
	comp.AddProperty(ctx, "b", 2)

	oldOverlay := comp.Overlay()
	comp.Clear(ctx)

	assert.Empty(t, comp.Keys(ctx))
	assert.True(t, comp.IsEmpty(ctx))
	assert.Equal(t, 1, comp.SourceCount())
	assert.NotSame(t, oldOverlay, comp.Overlay())
}

func TestCompositeRemoveSourceRefusesOverlay(t *testing.T) {
	ctx := context.Background()
	comp := NewComposite()
	comp.AddProperty(ctx, "k", "v")

	before := comp.SourceCount()
	comp.RemoveSource(ctx, comp.Overlay())

	assert.Equal(t, before, comp.SourceCount())
	v, ok := comp.Value(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestCompositeRemoveSource(t *testing.T) {
	ctx := context.Background()
	comp := NewComposite()
	src := seeded(t, map[string]any{"k": "v"})
	comp.AddSource(ctx, src)
	require.True(t, comp.Contains(ctx, "k"))

	comp.RemoveSource(ctx, src)

	assert.False(t, comp.Contains(ctx, "k"))
	assert.Equal(t, 1, comp.SourceCount())
}

// Scenario: file-like and env-like sources layered over an overlay, exercising
// precedence, shadowing, and the destructive nature of SetProperty.
func TestCompositeLayeredScenario(t *testing.T) {
	ctx := context.Background()
	comp := NewComposite()

	fileSource := seeded(t, map[string]any{"a": 1, "b": 2})
	envSource := seeded(t, map[string]any{"b": 3, "c": 4})
	comp.AddSource(ctx, fileSource)
	comp.AddSource(ctx, envSource)

	assert.Equal(t, 1, comp.Int(ctx, "a", -1))
	assert.Equal(t, 2, comp.Int(ctx, "b", -1), "fileSource wins for b")
	assert.Equal(t, 4, comp.Int(ctx, "c", -1))
	_, ok := comp.Value(ctx, "d")
	assert.False(t, ok)

	// addProperty lands in the overlay, which fileSource still shadows.
	comp.AddProperty(ctx, "b", 9)
	assert.Equal(t, 2, comp.Int(ctx, "b", -1))

	// setProperty removes b from every source, then writes the overlay.
	comp.SetProperty(ctx, "b", 9)
	assert.Equal(t, 9, comp.Int(ctx, "b", -1))
	assert.False(t, fileSource.Contains(ctx, "b"))
	assert.False(t, envSource.Contains(ctx, "b"))
}

func TestCompositeAddSourceDeduplicates(t *testing.T) {
	ctx := context.Background()
	comp := NewComposite()
	src := seeded(t, map[string]any{"k": "v"})

	comp.AddSource(ctx, src)
	comp.AddSource(ctx, src)

	assert.Equal(t, 2, comp.SourceCount(), "source and overlay")

	// Two distinct sources with identical content are both admitted.
	twin := seeded(t, map[string]any{"k": "v"})
	comp.AddSource(ctx, twin)
	assert.Equal(t, 3, comp.SourceCount())
}

func TestCompositeKeysUnionFirstOccurrence(t *testing.T) {
	ctx := context.Background()
	comp := NewComposite()
	a := NewInMemory()
	a.AddProperty(ctx, "x", 1)
	a.AddProperty(ctx, "y", 2)
	b := NewInMemory()
	b.AddProperty(ctx, "y", 3)
	b.AddProperty(ctx, "z", 4)
	comp.AddSource(ctx, a)
	comp.AddSource(ctx, b)
	comp.AddProperty(ctx, "x", 5) // overlay; already seen via a

	assert.Equal(t, []string{"x", "y", "z"}, comp.Keys(ctx))
}

func TestCompositeKeysWithPrefix(t *testing.T) {
	ctx := context.Background()
	comp := NewComposite()
	a := NewInMemory()
	a.AddProperty(ctx, "db.host", "h")
	a.AddProperty(ctx, "db.port", 5432)
	a.AddProperty(ctx, "cache.ttl", "5s")
	comp.AddSource(ctx, a)
	comp.AddProperty(ctx, "db.user", "u")

	assert.Equal(t, []string{"db.host", "db.port", "db.user"}, comp.KeysWithPrefix(ctx, "db."))
}

func TestCompositeIsEmpty(t *testing.T) {
	ctx := context.Background()
	comp := NewComposite()
	assert.True(t, comp.IsEmpty(ctx))

	comp.AddSource(ctx, NewInMemory())
	assert.True(t, comp.IsEmpty(ctx))

	comp.AddProperty(ctx, "k", "v")
	assert.False(t, comp.IsEmpty(ctx))
}

// The list merge takes the first non-overlay match only, then always appends
// the overlay's contribution.
func TestCompositeListMerge(t *testing.T) {
	ctx := context.Background()
	comp := NewComposite()

	a := NewInMemory()
	a.AddProperty(ctx, "listKey", "x")
	a.AddProperty(ctx, "listKey", "y")
	b := NewInMemory()
	b.AddProperty(ctx, "listKey", "z")
	comp.AddSource(ctx, a)
	comp.AddSource(ctx, b)
	comp.AddProperty(ctx, "listKey", "w")

	assert.Equal(t, []any{"x", "y", "w"}, comp.List(ctx, "listKey"),
		"only the first non-overlay match contributes, plus the overlay")
}

func TestCompositeListOverlayOnly(t *testing.T) {
	ctx := context.Background()
	comp := NewComposite()
	comp.AddSource(ctx, NewInMemory())
	comp.AddProperty(ctx, "k", "w")

	assert.Equal(t, []any{"w"}, comp.List(ctx, "k"),
		"overlay contribution is appended even with no non-overlay match")
	assert.Empty(t, comp.List(ctx, "missing"))
}

func TestCompositeListOr(t *testing.T) {
	ctx := context.Background()
	comp := NewComposite()

	def := []any{"fallback"}
	assert.Equal(t, def, comp.ListOr(ctx, "missing", def))

	comp.AddProperty(ctx, "k", "v")
	assert.Equal(t, []any{"v"}, comp.ListOr(ctx, "k", def))
}

func TestCompositeStringArray(t *testing.T) {
	ctx := context.Background()
	comp := NewComposite()
	comp.AddProperty(ctx, "strs", "a")
	comp.AddProperty(ctx, "strs", "b")

	got, err := comp.StringArray(ctx, "strs")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	comp.AddProperty(ctx, "strs", 3)
	_, err = comp.StringArray(ctx, "strs")
	var terr ListTypeError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "strs", terr.Key)
	assert.Equal(t, 2, terr.Index)
	assert.Equal(t, 3, terr.Value)
}

func TestCompositeSourceAt(t *testing.T) {
	ctx := context.Background()
	comp := NewComposite()
	src := seeded(t, map[string]any{"k": "v"})
	comp.AddSource(ctx, src)

	got, err := comp.SourceAt(0)
	require.NoError(t, err)
	assert.Same(t, src, got)

	got, err = comp.SourceAt(1)
	require.NoError(t, err)
	assert.Same(t, comp.Overlay(), got)

	_, err = comp.SourceAt(2)
	var ierr SourceIndexError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, 2, ierr.Index)
	assert.Equal(t, 2, ierr.Count)

	_, err = comp.SourceAt(-1)
	assert.Error(t, err)
}

func TestCompositeWithOverlay(t *testing.T) {
	ctx := context.Background()
	overlay := NewInMemory()
	comp := NewComposite(WithOverlay(overlay))

	assert.Same(t, overlay, comp.Overlay())

	comp.AddProperty(ctx, "k", "v")
	assert.True(t, overlay.Contains(ctx, "k"))

	// The supplied overlay still sits behind added sources.
	comp.AddSource(ctx, seeded(t, map[string]any{"k": "shadow"}))
	v, _ := comp.Value(ctx, "k")
	assert.Equal(t, "shadow", v)
}

// A composite satisfies Source, so it can participate in a bigger composite.
func TestCompositeNesting(t *testing.T) {
	ctx := context.Background()

	inner := NewComposite()
	inner.AddSource(ctx, seeded(t, map[string]any{"inner.k": "iv", "shared": "inner"}))

	outer := NewComposite()
	outer.AddSource(ctx, seeded(t, map[string]any{"shared": "outer"}))
	outer.AddSource(ctx, inner)

	v, ok := outer.Value(ctx, "inner.k")
	require.True(t, ok)
	assert.Equal(t, "iv", v)

	v, _ = outer.Value(ctx, "shared")
	assert.Equal(t, "outer", v, "earlier source wins over the nested composite")
}

func TestCompositeTypedGetters(t *testing.T) {
	ctx := context.Background()
	comp := NewComposite()
	comp.AddSource(ctx, seeded(t, map[string]any{
		"str":      "hello",
		"int":      42,
		"int.str":  "17",
		"float":    1.5,
		"bool":     true,
		"bool.str": "true",
		"dur":      "250ms",
	}))

	assert.Equal(t, "hello", comp.String(ctx, "str", "def"))
	assert.Equal(t, "def", comp.String(ctx, "missing", "def"))
	assert.Equal(t, "42", comp.String(ctx, "int", "def"))

	assert.Equal(t, 42, comp.Int(ctx, "int", -1))
	assert.Equal(t, 17, comp.Int(ctx, "int.str", -1))
	assert.Equal(t, -1, comp.Int(ctx, "str", -1))

	assert.Equal(t, 1.5, comp.Float(ctx, "float", 0))
	assert.Equal(t, 42.0, comp.Float(ctx, "int", 0))

	assert.True(t, comp.Bool(ctx, "bool", false))
	assert.True(t, comp.Bool(ctx, "bool.str", false))
	assert.False(t, comp.Bool(ctx, "missing", false))

	assert.Equal(t, 250*time.Millisecond, comp.Duration(ctx, "dur", time.Second))
	assert.Equal(t, time.Second, comp.Duration(ctx, "missing", time.Second))
}

func TestCompositeClearPropertyAllSources(t *testing.T) {
	ctx := context.Background()
	comp := NewComposite()
	a := seeded(t, map[string]any{"k": 1})
	b := seeded(t, map[string]any{"k": 2})
	comp.AddSource(ctx, a)
	comp.AddSource(ctx, b)
	comp.AddProperty(ctx, "k", 3)

	comp.ClearProperty(ctx, "k")

	assert.False(t, comp.Contains(ctx, "k"))
	assert.False(t, a.Contains(ctx, "k"))
	assert.False(t, b.Contains(ctx, "k"))

	// Clearing an absent key is a no-op, not an error.
	comp.ClearProperty(ctx, "k")
}
