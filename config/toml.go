// Package config provides a layered configuration view over an ordered sequence of sources.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// NewTOML creates a file source that reads from TOML files. Files are merged
// in order with later files overriding earlier ones, table by table; missing
// files are skipped. Default file discovery behaves exactly like NewJSON,
// with a ".toml" extension.
//
// Example:
//
//	src, err := config.NewTOML(config.SetFiles("base.toml", "local.toml"))
func NewTOML(opts ...FileOption) (*FileSource, error) {
	fc := FileConfiguration{
		Files: nil,
	}
	for _, o := range opts {
		o(&fc)
	}
	if len(fc.Files) == 0 {
		fc.Files = defaultFiles("toml")
	}

	var tree map[string]any
	loaded := make([]string, 0, len(fc.Files))

	for _, file := range fc.Files {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			continue
		}

		var raw map[string]any
		if _, err := toml.DecodeFile(file, &raw); err != nil {
			return nil, FileCantParseError{
				File: file,
				Err:  err,
			}
		}

		if tree == nil {
			tree = raw
		} else {
			tree = mergeTree(tree, raw)
		}
		loaded = append(loaded, file)
	}

	if tree == nil {
		return nil, errNoConfigFileLoaded
	}

	s := &FileSource{
		InMemory: NewInMemory(),
		files:    loaded,
	}
	seedTree(s.InMemory, "", tree)
	return s, nil
}

// mergeTree merges override into base, recursing into tables so sibling keys
// survive. Non-table values from override replace base values outright.
func mergeTree(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		om, ook := v.(map[string]any)
		bm, bok := out[k].(map[string]any)
		if ook && bok {
			out[k] = mergeTree(bm, om)
			continue
		}
		out[k] = v
	}
	return out
}
