// Package pool provides a generic, thread-safe pool of growable slices,
// sharded by element type. It backs both the symbol buffers writers rent
// and the scratch containers array decoders use while accumulating
// elements, grounded on the sync.Pool-with-typed-constructor pattern used
// for bucket buffers in the retrieval pack's data-lake query engine.
package pool

import (
	"reflect"
	"sync"
)

var registry sync.Map // map[reflect.Type]*sync.Pool

func poolFor[T any]() *sync.Pool {
	var zero T
	key := reflect.TypeOf(&zero).Elem()
	if v, ok := registry.Load(key); ok {
		return v.(*sync.Pool)
	}
	p := &sync.Pool{
		New: func() any { return make([]T, 0, 4) },
	}
	actual, _ := registry.LoadOrStore(key, p)
	return actual.(*sync.Pool)
}

// Rent returns a zero-length slice of T with capacity at least n, reusing a
// previously released backing array when one of sufficient size is
// available.
func Rent[T any](n int) []T {
	p := poolFor[T]()
	s := p.Get().([]T)
	if cap(s) < n {
		return make([]T, 0, n)
	}
	return s[:0]
}

// Double rents a new slice with twice the capacity of old, copies old's
// contents into it, and releases old back to the pool. Used by the array
// decoder's scratch-buffer growth step.
func Double[T any](old []T) []T {
	next := Rent[T](max(cap(old)*2, 4))
	next = append(next, old...)
	Release(old)
	return next
}

// Release returns s to the shared pool for its element type. Safe to call
// with a nil slice.
func Release[T any](s []T) {
	if s == nil {
		return
	}
	poolFor[T]().Put(s[:0])
}
