package export

import "sync"

// Proxy is implemented by lazy references. The Exporter replaces a Proxy
// by the value it loads before doing anything else with it.
type Proxy interface {
	Unproxy() (any, error)
}

// Lazy is a Proxy that loads its value once, on first use.
type Lazy[T any] struct {
	once  sync.Once
	load  func() (T, error)
	value T
	err   error
}

// NewLazy returns a Lazy calling load on first use.
func NewLazy[T any](load func() (T, error)) *Lazy[T] {
	return &Lazy[T]{load: load}
}

// Get returns the loaded value.
func (l *Lazy[T]) Get() (T, error) {
	l.once.Do(func() {
		l.value, l.err = l.load()
	})
	return l.value, l.err
}

// Unproxy implements Proxy.
func (l *Lazy[T]) Unproxy() (any, error) {
	return l.Get()
}
