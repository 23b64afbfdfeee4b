// Package config provides a layered configuration view over an ordered sequence of sources.
package config

import (
	"context"

	"go.uber.org/zap"
)

// Logged is a wrapper around any Source that records lookups through a
// structured logger. It gives transparency into how a layered view resolves
// keys, which helps when debugging precedence between sources.
//
// Logging is strictly opt-in through this wrapper; the resolver itself never
// logs. Logged satisfies Source, so it can wrap individual sources inside a
// Composite or the Composite as a whole.
//
// Example:
//
//	base, _ := config.NewJSON(config.SetFiles("config.json"))
//	src := config.NewLogged("file", logger, base)
type Logged struct {
	// name identifies the wrapped source in log records.
	name string
	// log is the structured logger lookups are recorded with.
	log *zap.Logger
	// delegate is the wrapped source providing the actual values.
	delegate Source
}

// NewLogged wraps delegate so every lookup is recorded at debug level with
// the given name attached.
func NewLogged(name string, log *zap.Logger, delegate Source) *Logged {
	return &Logged{
		name:     name,
		log:      log,
		delegate: delegate,
	}
}

// Contains reports whether the wrapped source holds the key, logging the outcome.
func (l *Logged) Contains(ctx context.Context, key string) bool {
	ok := l.delegate.Contains(ctx, key)
	l.hit("contains", key, ok)
	return ok
}

// Value returns the value the wrapped source holds for key, logging the outcome.
func (l *Logged) Value(ctx context.Context, key string) (any, bool) {
	v, ok := l.delegate.Value(ctx, key)
	l.hit("value", key, ok)
	return v, ok
}

// Keys returns the wrapped source's keys.
func (l *Logged) Keys(ctx context.Context) []string {
	keys := l.delegate.Keys(ctx)
	l.log.Debug("config keys",
		zap.String("source", l.name),
		zap.Int("count", len(keys)),
	)
	return keys
}

// KeysWithPrefix returns the wrapped source's keys matching prefix.
func (l *Logged) KeysWithPrefix(ctx context.Context, prefix string) []string {
	keys := l.delegate.KeysWithPrefix(ctx, prefix)
	l.log.Debug("config keys",
		zap.String("source", l.name),
		zap.String("prefix", prefix),
		zap.Int("count", len(keys)),
	)
	return keys
}

// List returns the wrapped source's list value for key, logging the outcome.
func (l *Logged) List(ctx context.Context, key string) []any {
	out := l.delegate.List(ctx, key)
	l.hit("list", key, len(out) > 0)
	return out
}

// ListOr behaves like List, substituting def when the result is empty.
func (l *Logged) ListOr(ctx context.Context, key string, def []any) []any {
	out := l.delegate.ListOr(ctx, key, def)
	l.hit("list", key, len(out) > 0)
	return out
}

// IsEmpty reports whether the wrapped source is empty.
func (l *Logged) IsEmpty(ctx context.Context) bool {
	return l.delegate.IsEmpty(ctx)
}

// ClearProperty removes key from the wrapped source, logging the mutation.
func (l *Logged) ClearProperty(ctx context.Context, key string) {
	l.delegate.ClearProperty(ctx, key)
	l.log.Debug("config clear",
		zap.String("source", l.name),
		zap.String("key", key),
	)
}

// AddProperty writes value under key into the wrapped source, logging the mutation.
func (l *Logged) AddProperty(ctx context.Context, key string, value any) {
	l.delegate.AddProperty(ctx, key, value)
	l.log.Debug("config add",
		zap.String("source", l.name),
		zap.String("key", key),
	)
}

func (l *Logged) hit(op, key string, ok bool) {
	l.log.Debug("config lookup",
		zap.String("source", l.name),
		zap.String("op", op),
		zap.String("key", key),
		zap.Bool("hit", ok),
	)
}
