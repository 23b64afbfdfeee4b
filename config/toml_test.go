package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTOML(t *testing.T) {
	ctx := context.Background()
	f := writeFile(t, "conf.toml", `
debug = true

[database]
host = "toml-host"
port = 5432

[cache]
backends = ["redis", "memory"]
`)

	src, err := NewTOML(SetFiles(f))
	require.NoError(t, err)

	v, ok := src.Value(ctx, "database.host")
	require.True(t, ok)
	assert.Equal(t, "toml-host", v)

	port, ok := src.Value(ctx, "database.port")
	require.True(t, ok)
	assert.Equal(t, int64(5432), port)
	assert.Equal(t, []any{"redis", "memory"}, src.List(ctx, "cache.backends"))
	assert.True(t, src.Contains(ctx, "debug"))
}

func TestNewTOMLLaterFileOverrides(t *testing.T) {
	ctx := context.Background()
	base := writeFile(t, "base.toml", `
[database]
host = "localhost"
port = 5432
`)
	override := writeFile(t, "override.toml", `
[database]
host = "prod-db"
`)

	src, err := NewTOML(SetFiles(base, override))
	require.NoError(t, err)

	v, _ := src.Value(ctx, "database.host")
	assert.Equal(t, "prod-db", v)
	assert.True(t, src.Contains(ctx, "database.port"), "sibling keys survive the override")
}

func TestNewTOMLParseError(t *testing.T) {
	bad := writeFile(t, "bad.toml", `= not toml`)

	_, err := NewTOML(SetFiles(bad))
	var perr FileCantParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, bad, perr.File)
}

func TestNewTOMLNoFilesLoaded(t *testing.T) {
	_, err := NewTOML(SetFiles(filepath.Join(t.TempDir(), "absent.toml")))
	assert.Error(t, err)
}
