// Package registry provides keyed factory registration for pluggable
// pipeline pieces. Strategies and renderers register themselves at init
// time under the key the CLI exposes; new implementations plug in without
// touching existing code.
package registry

import (
	"sort"
	"strings"

	"github.com/example/svchef/internal/errors"
)

// Registry maps keys to factories for one kind of component.
type Registry[T any] struct {
	name  string
	items map[string]func() T
}

// New creates an empty registry. The name appears in error messages.
func New[T any](name string) *Registry[T] {
	return &Registry[T]{
		name:  name,
		items: make(map[string]func() T),
	}
}

// Register adds a factory under the given key. Registration happens at
// init time, so a duplicate key is a programming error and panics.
func (r *Registry[T]) Register(key string, factory func() T) {
	if _, ok := r.items[key]; ok {
		panic(r.name + " registry: duplicate key " + key)
	}
	r.items[key] = factory
}

// Create instantiates the component registered under key.
func (r *Registry[T]) Create(key string) (T, error) {
	factory, ok := r.items[key]
	if !ok {
		var zero T
		return zero, errors.Newf("unknown %s %q (available: %s)",
			r.name, key, strings.Join(r.Keys(), ", "))
	}
	return factory(), nil
}

// Keys returns the registered keys in sorted order, suitable for flag
// usage text.
func (r *Registry[T]) Keys() []string {
	keys := make([]string, 0, len(r.items))
	for k := range r.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Contains reports whether key is registered.
func (r *Registry[T]) Contains(key string) bool {
	_, ok := r.items[key]
	return ok
}
