package resolver

import (
	"fmt"

	"github.com/go-jcodec/jcodec/array"
	"github.com/go-jcodec/jcodec/enum"
	"github.com/go-jcodec/jcodec/formatter"
	"github.com/go-jcodec/jcodec/nullable"
	"github.com/go-jcodec/jcodec/symbol"
)

// RegisterArray registers and returns the Array Formatter for []T, composing
// the element Formatter for T that must already be registered (a primitive,
// or a type registered via one of these Register* helpers). Idempotent
// across concurrent first use.
func RegisterArray[T any, S symbol.Symbol](r *Resolver[S]) formatter.Formatter[[]T, S] {
	return GetOrBuild[[]T, S](r, func() formatter.Formatter[[]T, S] {
		elem, ok := Get[T, S](r)
		if !ok {
			panic(fmt.Sprintf("resolver: no formatter registered for element type %s", typeKey[T]()))
		}
		return array.New[T, S](elem, r.policy.MaxNesting)
	})
}

// RegisterNullable registers and returns the Nullable Formatter for
// nullable.Optional[T], composing the already-registered inner Formatter
// for T.
func RegisterNullable[T any, S symbol.Symbol](r *Resolver[S]) formatter.Formatter[nullable.Optional[T], S] {
	return GetOrBuild[nullable.Optional[T], S](r, func() formatter.Formatter[nullable.Optional[T], S] {
		inner, ok := Get[T, S](r)
		if !ok {
			panic(fmt.Sprintf("resolver: no formatter registered for inner type %s", typeKey[T]()))
		}
		return nullable.New[T, S](inner)
	})
}

// RegisterEnum registers and returns the Enumeration Formatter for T from
// its declared members.
func RegisterEnum[T enum.Integer, S symbol.Symbol](r *Resolver[S], members []enum.Member[T]) formatter.Formatter[T, S] {
	return GetOrBuild[T, S](r, func() formatter.Formatter[T, S] {
		return enum.New[T, S](members)
	})
}
