// Package livesync keeps a local read model consistent with a remote row
// set: one bulk fetch, then incremental change events applied in arrival
// order. Every panel in the dashboard owns one collection per table it
// renders.
package livesync

import (
	"context"
	"sync"
)

type EventType string

const (
	Insert EventType = "INSERT"
	Update EventType = "UPDATE"
	Delete EventType = "DELETE"
)

// Event is one typed change notification. Item is set for inserts and
// updates; Key is always set.
type Event[T any] struct {
	Type EventType
	Item T
	Key  string
}

type Mode int

const (
	// Append keeps set-style collections in fetch order, new items last.
	Append Mode = iota
	// Prepend keeps feed-style collections newest first.
	Prepend
)

type FetchFunc[T any] func(ctx context.Context) ([]T, error)

type Option[T any] func(*Collection[T])

// WithCap drops the oldest entries after each insert so the collection
// never holds more than n items.
func WithCap[T any](n int) Option[T] {
	return func(c *Collection[T]) {
		c.cap = n
	}
}

func WithMode[T any](m Mode) Option[T] {
	return func(c *Collection[T]) {
		c.mode = m
	}
}

// Collection is the local snapshot of one remote row set. It is owned by
// exactly one view mount; the mutex only protects reads from the
// diagnostics endpoint, all mutation happens on the UI loop.
type Collection[T any] struct {
	key  func(T) string
	mode Mode
	cap  int

	mu          sync.RWMutex
	items       []T
	loading     bool
	err         error
	initialized bool
	torndown    bool
	unsubscribe func()
}

func New[T any](key func(T) string, opts ...Option[T]) *Collection[T] {
	c := &Collection[T]{
		key:     key,
		loading: true,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Initialize performs the one bulk read and replaces the snapshot
// wholesale. A fetch failure is terminal for this mount: the error sticks,
// the snapshot stays empty and there is no retry. Initialize is a no-op if
// called twice, or after Teardown.
func (c *Collection[T]) Initialize(ctx context.Context, fetch FetchFunc[T]) error {
	c.mu.Lock()
	if c.initialized || c.torndown {
		c.mu.Unlock()
		return nil
	}
	c.initialized = true
	c.mu.Unlock()

	items, err := fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	// the mount may have gone away while the fetch was in flight
	if c.torndown {
		return nil
	}

	c.loading = false

	if err != nil {
		c.err = err
		return err
	}

	c.items = items
	return nil
}

// OnEvent applies one change event. Events are applied strictly in arrival
// order; an update or delete for an unknown key is a no-op (the source of
// truth is the bulk fetch plus subsequent events, never a synthesized
// insert). Events arriving after teardown are not applied.
func (c *Collection[T]) OnEvent(ev Event[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.torndown {
		return
	}

	switch ev.Type {
	case Insert:
		if c.mode == Prepend {
			c.items = append([]T{ev.Item}, c.items...)
		} else {
			c.items = append(c.items, ev.Item)
		}
		if c.cap > 0 && len(c.items) > c.cap {
			if c.mode == Prepend {
				c.items = c.items[:c.cap]
			} else {
				c.items = c.items[len(c.items)-c.cap:]
			}
		}
	case Update:
		for i := range c.items {
			if c.key(c.items[i]) == ev.Key {
				c.items[i] = ev.Item
				break
			}
		}
	case Delete:
		for i := range c.items {
			if c.key(c.items[i]) == ev.Key {
				c.items = append(c.items[:i], c.items[i+1:]...)
				break
			}
		}
	}
}

// SetUnsubscribe registers the subscription release that Teardown calls.
func (c *Collection[T]) SetUnsubscribe(fn func()) {
	c.mu.Lock()
	if c.torndown {
		c.mu.Unlock()
		// teardown already happened, release immediately
		fn()
		return
	}
	c.unsubscribe = fn
	c.mu.Unlock()
}

// Teardown releases the subscription and freezes the snapshot. It is
// idempotent and safe to call before Initialize completed.
func (c *Collection[T]) Teardown() {
	c.mu.Lock()
	if c.torndown {
		c.mu.Unlock()
		return
	}
	c.torndown = true
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Snapshot returns a copy of the current items.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]T, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Collection[T]) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
