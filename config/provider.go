// Package config provides a layered configuration view over an ordered sequence of sources.
package config

import (
	"context"
	"time"

	"go.uber.org/atomic"
)

type (
	// valueProvider is the base structure for all typed value providers.
	// It uses atomic.Value to provide thread-safe access to the stored value.
	valueProvider struct {
		v atomic.Value
	}

	// StringProvider provides access to a string configuration value that is
	// re-resolved whenever the composite mutates.
	StringProvider valueProvider
	// IntProvider provides access to an int configuration value that is
	// re-resolved whenever the composite mutates.
	IntProvider valueProvider
	// BoolProvider provides access to a bool configuration value that is
	// re-resolved whenever the composite mutates.
	BoolProvider valueProvider
	// DurationProvider provides access to a time.Duration configuration value
	// that is re-resolved whenever the composite mutates.
	DurationProvider valueProvider
	// ListProvider provides access to a merged list configuration value that
	// is re-resolved whenever the composite mutates.
	ListProvider valueProvider

	// providerConfig is the base interface for configuration views usable
	// with value providers: they must announce their own mutations.
	providerConfig interface {
		Subscribe(func(context.Context))
	}

	// stringProviderConfig is the interface for views that can provide string values.
	stringProviderConfig interface {
		providerConfig
		String(ctx context.Context, key string, def string) string
	}

	// intProviderConfig is the interface for views that can provide int values.
	intProviderConfig interface {
		providerConfig
		Int(ctx context.Context, key string, def int) int
	}

	// boolProviderConfig is the interface for views that can provide bool values.
	boolProviderConfig interface {
		providerConfig
		Bool(ctx context.Context, key string, def bool) bool
	}

	// durationProviderConfig is the interface for views that can provide duration values.
	durationProviderConfig interface {
		providerConfig
		Duration(ctx context.Context, key string, def time.Duration) time.Duration
	}

	// listProviderConfig is the interface for views that can provide merged list values.
	listProviderConfig interface {
		providerConfig
		ListOr(ctx context.Context, key string, def []any) []any
	}
)

// NewStringProvider creates a StringProvider bound to the given key. The
// initial value is resolved immediately; afterwards the provider re-resolves
// on every mutation of the underlying view.
//
// Parameters:
//   - ctx: The context for the initial resolution
//   - conf: The configuration view to resolve against
//   - key: The key of the configuration value
//   - def: The default returned while the key is absent
func NewStringProvider(ctx context.Context, conf stringProviderConfig, key string, def string) *StringProvider {
	p := &StringProvider{}
	p.v.Store(conf.String(ctx, key, def))

	conf.Subscribe(func(c context.Context) {
		p.v.Store(conf.String(c, key, def))
	})
	return p
}

// NewIntProvider creates an IntProvider bound to the given key. See
// NewStringProvider for resolution semantics.
func NewIntProvider(ctx context.Context, conf intProviderConfig, key string, def int) *IntProvider {
	p := &IntProvider{}
	p.v.Store(conf.Int(ctx, key, def))

	conf.Subscribe(func(c context.Context) {
		p.v.Store(conf.Int(c, key, def))
	})
	return p
}

// NewBoolProvider creates a BoolProvider bound to the given key. See
// NewStringProvider for resolution semantics.
func NewBoolProvider(ctx context.Context, conf boolProviderConfig, key string, def bool) *BoolProvider {
	p := &BoolProvider{}
	p.v.Store(conf.Bool(ctx, key, def))

	conf.Subscribe(func(c context.Context) {
		p.v.Store(conf.Bool(c, key, def))
	})
	return p
}

// NewDurationProvider creates a DurationProvider bound to the given key. See
// NewStringProvider for resolution semantics.
func NewDurationProvider(ctx context.Context, conf durationProviderConfig, key string, def time.Duration) *DurationProvider {
	p := &DurationProvider{}
	p.v.Store(conf.Duration(ctx, key, def))

	conf.Subscribe(func(c context.Context) {
		p.v.Store(conf.Duration(c, key, def))
	})
	return p
}

// NewListProvider creates a ListProvider bound to the given key. See
// NewStringProvider for resolution semantics.
func NewListProvider(ctx context.Context, conf listProviderConfig, key string, def []any) *ListProvider {
	p := &ListProvider{}
	p.store(conf.ListOr(ctx, key, def))

	conf.Subscribe(func(c context.Context) {
		p.store(conf.ListOr(c, key, def))
	})
	return p
}

// store normalizes nil lists before storing; atomic.Value rejects nil values.
func (p *ListProvider) store(v []any) {
	if v == nil {
		v = []any{}
	}
	p.v.Store(v)
}

// Get returns the current string value stored in the provider.
// This method is thread-safe and can be called concurrently.
func (p *StringProvider) Get() string {
	return p.v.Load().(string)
}

// Get returns the current int value stored in the provider.
// This method is thread-safe and can be called concurrently.
func (p *IntProvider) Get() int {
	return p.v.Load().(int)
}

// Get returns the current bool value stored in the provider.
// This method is thread-safe and can be called concurrently.
func (p *BoolProvider) Get() bool {
	return p.v.Load().(bool)
}

// Get returns the current time.Duration value stored in the provider.
// This method is thread-safe and can be called concurrently.
func (p *DurationProvider) Get() time.Duration {
	return p.v.Load().(time.Duration)
}

// Get returns the current list value stored in the provider.
// This method is thread-safe and can be called concurrently.
func (p *ListProvider) Get() []any {
	return p.v.Load().([]any)
}
