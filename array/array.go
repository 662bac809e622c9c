// Package array implements the Array Formatter: a composite that
// serializes and deserializes a homogeneous ordered sequence of T, per the
// Array Formatter protocol.
package array

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/go-jcodec/jcodec/formatter"
	"github.com/go-jcodec/jcodec/pool"
	"github.com/go-jcodec/jcodec/recursion"
	"github.com/go-jcodec/jcodec/symbol"
)

var emptySingletons sync.Map // map[reflect.Type]any

// emptyFor returns the shared, zero-allocation empty-sequence singleton for
// T, so every deserialize of "[]" for the same T returns the identical
// slice value rather than a fresh allocation.
func emptyFor[T any]() []T {
	var zero T
	key := reflect.TypeOf(&zero).Elem()
	if v, ok := emptySingletons.Load(key); ok {
		return v.([]T)
	}
	e := []T{}
	actual, _ := emptySingletons.LoadOrStore(key, e)
	return actual.([]T)
}

// arrayFormatter implements formatter.Formatter[[]T, S]; it is the per-(T,S)
// top-level singleton the sticky size hint lives on.
type arrayFormatter[T any, S symbol.Symbol] struct {
	elem        formatter.Formatter[T, S]
	isCand      bool
	maxNesting  int
	sizeHint    atomic.Int64
}

// New builds the Array Formatter for []T over wire symbols S, composing the
// element formatter obtained from the resolver. The recursion-candidate bit
// for T is computed once here, not per element. maxNesting of 0 selects
// recursion.DefaultMaxNesting.
func New[T any, S symbol.Symbol](elem formatter.Formatter[T, S], maxNesting int) formatter.Formatter[[]T, S] {
	if maxNesting <= 0 {
		maxNesting = recursion.DefaultMaxNesting
	}
	f := &arrayFormatter[T, S]{elem: elem, isCand: recursion.IsCandidate[T](), maxNesting: maxNesting}
	f.sizeHint.Store(256)
	return f
}

// SizeHint returns the last observed serialized/deserialized symbol count
// for this (T, S) pair.
func (f *arrayFormatter[T, S]) SizeHint() int { return int(f.sizeHint.Load()) }

// UpdateSizeHint overwrites the sticky size hint with ordinary,
// last-writer-wins semantics.
func (f *arrayFormatter[T, S]) UpdateSizeHint(n int) { f.sizeHint.Store(int64(n)) }

func (f *arrayFormatter[T, S]) Serialize(w *symbol.Writer[S], v []T, nesting int) error {
	if v == nil {
		w.WriteNull()
		return nil
	}
	next := nesting
	if f.isCand {
		next++
		if next > f.maxNesting {
			return nestingExceeded(next)
		}
	}
	w.WriteBeginArray()
	for i, el := range v {
		if i > 0 {
			w.WriteValueSeparator()
		}
		if err := f.elem.Serialize(w, el, next); err != nil {
			return err
		}
	}
	w.WriteEndArray()
	return nil
}

func (f *arrayFormatter[T, S]) Deserialize(r *symbol.Reader[S]) ([]T, error) {
	if r.ReadIsNull() {
		return nil, nil
	}
	if err := r.ReadBeginArray(); err != nil {
		return nil, err
	}

	scratch := pool.Rent[T](4)
	count := 0
	defer func() {
		pool.Release(scratch)
	}()

	first := true
	for {
		more, err := r.ReadEndArrayOrValueSeparator(first)
		if err != nil {
			return nil, err
		}
		first = false
		if !more {
			break
		}
		count++
		if count > cap(scratch) {
			scratch = pool.Double(scratch)
		}
		el, err := f.elem.Deserialize(r)
		if err != nil {
			return nil, err
		}
		if count > len(scratch) {
			scratch = scratch[:count]
		}
		scratch[count-1] = el
	}

	if count == 0 {
		return emptyFor[T](), nil
	}
	out := make([]T, count)
	copy(out, scratch[:count])
	return out, nil
}

func nestingExceeded(n int) error {
	return symbol.NewError(symbol.ErrNestingExceeded, 0, "nesting depth %d exceeds limit", n)
}
