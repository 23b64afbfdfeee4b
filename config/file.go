// Package config provides a layered configuration view over an ordered sequence of sources.
package config

import (
	"context"
	"fmt"
	"os"
	"path"
	"sort"

	fileConfig "github.com/olebedev/config"

	"configstack/env"
)

type (
	// FileSource is a Source seeded from local configuration files. The parsed
	// tree is flattened into dot-notation keys and held in memory, so the
	// source supports the full capability set including mutation; changes made
	// through ClearProperty or AddProperty affect only the in-memory view,
	// never the files on disk.
	FileSource struct {
		*InMemory

		// files are the paths the source was loaded from.
		files []string
	}

	// FileOption configures file source construction using the functional
	// options pattern.
	FileOption func(*FileConfiguration)

	// FileConfiguration holds construction options for file sources.
	FileConfiguration struct {
		Files []string
	}
)

// SetFiles configures which files should be loaded by a file source
// constructor. Later files extend and override earlier ones.
func SetFiles(f ...string) FileOption {
	return func(fc *FileConfiguration) {
		fc.Files = f
	}
}

// NewJSON creates a file source that reads from JSON files. Files are merged
// in order, with later files overriding values from earlier files; missing
// files are skipped so optional overrides can be listed unconditionally.
//
// If no files are specified via options, default paths are derived from the
// CONF_DIR, APP_ENV and APP_SCOPE environment variables:
//   - {CONF_DIR}/{APP_ENV}.json            (e.g. "production.json")
//   - {CONF_DIR}/{APP_ENV}_{APP_SCOPE}.json (e.g. "production_us.json")
//
// Example:
//
//	src, err := config.NewJSON(config.SetFiles("base.json", "local.json"))
func NewJSON(opts ...FileOption) (*FileSource, error) {
	return newFileSource("json", fileConfig.ParseJsonFile, opts...)
}

// NewYAML creates a file source that reads from YAML files. Merge order and
// default file discovery behave exactly like NewJSON, with a ".yml" extension.
func NewYAML(opts ...FileOption) (*FileSource, error) {
	return newFileSource("yml", fileConfig.ParseYamlFile, opts...)
}

// Files returns the paths the source was loaded from.
func (s *FileSource) Files() []string {
	out := make([]string, len(s.files))
	copy(out, s.files)
	return out
}

// newFileSource parses and merges the configured files with the given parser
// and seeds the flattened result into an in-memory store.
func newFileSource(ext string, parse func(string) (*fileConfig.Config, error), opts ...FileOption) (*FileSource, error) {
	fc := FileConfiguration{
		Files: nil,
	}
	for _, o := range opts {
		o(&fc)
	}
	if len(fc.Files) == 0 {
		fc.Files = defaultFiles(ext)
	}

	var conf *fileConfig.Config
	loaded := make([]string, 0, len(fc.Files))

	for _, file := range fc.Files {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			continue // don't fail, fall back to the others
		}

		nc, err := parse(file)
		if err != nil {
			return nil, FileCantParseError{
				File: file,
				Err:  err,
			}
		}

		if conf == nil {
			conf = nc
		} else {
			conf, err = conf.Extend(nc)
			if err != nil {
				return nil, FileCantExtendError{
					File: file,
					Err:  err,
				}
			}
		}
		loaded = append(loaded, file)
	}

	if conf == nil {
		return nil, errNoConfigFileLoaded
	}

	s := &FileSource{
		InMemory: NewInMemory(),
		files:    loaded,
	}
	seedTree(s.InMemory, "", conf.Root)
	return s, nil
}

// defaultFiles returns the default file paths to load configuration from,
// constructed from the CONF_DIR, APP_ENV and APP_SCOPE environment variables.
func defaultFiles(ext string) []string {
	confDir := env.ConfDir()
	e := env.Get()

	files := []string{
		path.Join(confDir, fmt.Sprintf("%s.%s", e.Env(), ext)),
	}
	if !e.IsDefaultScope() {
		files = append(files, path.Join(confDir, fmt.Sprintf("%s_%s.%s", e.Env(), e.Scope(), ext)))
	}
	return files
}

// seedTree flattens a parsed configuration tree into the store, joining
// nested map keys with dots. Leaf values, including whole lists, are stored
// as-is so List reads return the original elements. Map keys are visited in
// sorted order so Keys output stays deterministic across loads.
func seedTree(mem *InMemory, prefix string, node any) {
	m, ok := node.(map[string]any)
	if !ok {
		mem.AddProperty(context.Background(), prefix, node)
		return
	}

	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)

	for _, k := range ks {
		key := k
		if len(prefix) > 0 {
			key = fmt.Sprintf("%s.%s", prefix, k)
		}
		seedTree(mem, key, m[k])
	}
}
