// Package config provides a layered configuration view over an ordered sequence of sources.
package config

import (
	"context"
	"os"
	"strings"
)

// EnvSource is a Source seeded from a snapshot of the process environment.
// Variables matching the given prefix are captured at construction time with
// the prefix stripped and the remainder lowercased, underscores becoming
// dots: with prefix "APP_", APP_DATABASE_HOST is exposed as "database.host".
//
// Mutations through ClearProperty and AddProperty affect the snapshot only,
// never the actual process environment.
type EnvSource struct {
	*InMemory

	prefix string
}

// NewEnv creates an environment-backed source from the variables currently
// set with the given prefix. An empty prefix captures the whole environment.
func NewEnv(prefix string) *EnvSource {
	s := &EnvSource{
		InMemory: NewInMemory(),
		prefix:   prefix,
	}

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, prefix) {
			continue
		}
		s.InMemory.AddProperty(context.Background(), envKey(strings.TrimPrefix(k, prefix)), v)
	}
	return s
}

// Prefix returns the environment variable prefix the source was built with.
func (s *EnvSource) Prefix() string {
	return s.prefix
}

// envKey converts an environment variable name into a configuration key.
func envKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", "."))
}
