// Package nullable implements the Nullable Formatter: "optional T" for a
// value-typed T that has no built-in absent representation of its own.
package nullable

import (
	"github.com/go-jcodec/jcodec/formatter"
	"github.com/go-jcodec/jcodec/symbol"
)

// Optional wraps a value-typed T with an explicit presence flag, the way
// database/sql.NullString wraps a string. Unlike a pointer, the zero value
// Optional[T]{} is the well-defined absent state without an allocation.
type Optional[T any] struct {
	Value   T
	Present bool
}

// Some wraps v as present.
func Some[T any](v T) Optional[T] { return Optional[T]{Value: v, Present: true} }

// None is the absent Optional[T].
func None[T any]() Optional[T] { return Optional[T]{} }

// IsAbsent reports whether o holds no value. It lets reflection-driven
// callers (package resolver/aggregate) recognize "this field serializes as
// null" generically, without knowing T.
func (o Optional[T]) IsAbsent() bool { return !o.Present }

type nullableFormatter[T any, S symbol.Symbol] struct {
	inner formatter.Formatter[T, S]
}

// New builds the Nullable Formatter wrapping inner. It does not bump the
// nesting counter itself — a nullable wrapper is not a recursion candidate
// in isolation; the inner type carries that property, and inner's own
// Serialize/Deserialize accounts for it.
func New[T any, S symbol.Symbol](inner formatter.Formatter[T, S]) formatter.Formatter[Optional[T], S] {
	return nullableFormatter[T, S]{inner: inner}
}

func (f nullableFormatter[T, S]) Serialize(w *symbol.Writer[S], v Optional[T], nesting int) error {
	if !v.Present {
		w.WriteNull()
		return nil
	}
	return f.inner.Serialize(w, v.Value, nesting)
}

func (f nullableFormatter[T, S]) Deserialize(r *symbol.Reader[S]) (Optional[T], error) {
	if r.ReadIsNull() {
		return None[T](), nil
	}
	v, err := f.inner.Deserialize(r)
	if err != nil {
		return Optional[T]{}, err
	}
	return Some(v), nil
}
