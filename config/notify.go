// Package config provides a layered configuration view over an ordered sequence of sources.
package config

import (
	"context"
	"sync"
)

// notifier manages subscription handling for composite mutations. It is
// embedded in Composite to provide Subscribe and to fan out notifications
// after any operation that can change the resolved view.
type notifier struct {
	// mutex protects the subscribers list from concurrent access.
	mutex *sync.RWMutex
	// subscribers is the list of functions called after each mutation.
	subscribers []func(context.Context)
}

// newNotifier creates an empty notifier.
func newNotifier() *notifier {
	return &notifier{
		mutex:       new(sync.RWMutex),
		subscribers: make([]func(context.Context), 0),
	}
}

// Subscribe adds a handler to be invoked whenever the composite mutates:
// property writes and removals, source additions and removals, and Clear.
// A panicking handler is recovered so the remaining handlers still run.
func (n *notifier) Subscribe(fn func(context.Context)) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.subscribers = append(n.subscribers, fn)
}

// notify invokes all subscribers with the given context.
func (n *notifier) notify(ctx context.Context) {
	for _, handler := range n.subs() {
		safeCall(ctx, handler)
	}
}

// safeCall invokes the handler, recovering from any panic so one misbehaving
// subscriber cannot break the mutation path or starve other subscribers.
func safeCall(ctx context.Context, h func(context.Context)) {
	defer func() {
		_ = recover()
	}()
	h(ctx)
}

// subs returns the subscribers list under a read lock, so notification can
// iterate without holding the lock across callbacks.
func (n *notifier) subs() []func(context.Context) {
	n.mutex.RLock()
	defer n.mutex.RUnlock()
	return n.subscribers
}
