// Package formatter defines the Formatter Contract (FC): the abstract,
// stateless encoder/decoder pair every primitive and composite formatter in
// this module implements, parameterized by the value type T and the wire
// symbol type S.
package formatter

import "github.com/go-jcodec/jcodec/symbol"

// Formatter is a stateless, reentrant encoder/decoder pair for values of
// type T over the wire symbol type S. A Formatter never retains a
// reference to the reader or writer after a call returns, and holds no
// mutable state of its own beyond the process-wide sticky size hint a
// top-level formatter may carry.
type Formatter[T any, S symbol.Symbol] interface {
	// Serialize writes the JSON representation of v to w. nesting is the
	// current nesting counter, passed on to any child formatter; composites
	// bump it only when recursing into a recursion-candidate child type.
	Serialize(w *symbol.Writer[S], v T, nesting int) error

	// Deserialize consumes one JSON value from r and returns it as a T.
	Deserialize(r *symbol.Reader[S]) (T, error)
}

// Func adapts a pair of plain functions to the Formatter interface, mirroring
// the standard library's http.HandlerFunc idiom for simple, stateless
// formatters that don't need their own named type (used by the primitive
// package).
type Func[T any, S symbol.Symbol] struct {
	SerializeFn   func(w *symbol.Writer[S], v T, nesting int) error
	DeserializeFn func(r *symbol.Reader[S]) (T, error)
}

func (f Func[T, S]) Serialize(w *symbol.Writer[S], v T, nesting int) error {
	return f.SerializeFn(w, v, nesting)
}

func (f Func[T, S]) Deserialize(r *symbol.Reader[S]) (T, error) {
	return f.DeserializeFn(r)
}

// SizeHinter is implemented by top-level formatters (array, aggregate) that
// carry the process-wide sticky size hint a session façade uses to pre-size
// the next operation's buffer for the same (T, S, Resolver) triple.
type SizeHinter interface {
	SizeHint() int
	UpdateSizeHint(n int)
}
