// Package primitive supplies Formatter implementations for built-in scalar
// types. The composite formatters in array/nullable/enum obtain these from
// a Resolver exactly as they would any other child formatter.
//
// Scalar accumulation buffers characters and converts once with strconv,
// rather than parsing numerically as each character arrives.
package primitive

import (
	"github.com/go-jcodec/jcodec/formatter"
	"github.com/go-jcodec/jcodec/symbol"
)

// Bool is the Formatter for bool.
func Bool[S symbol.Symbol]() formatter.Formatter[bool, S] {
	return formatter.Func[bool, S]{
		SerializeFn: func(w *symbol.Writer[S], v bool, _ int) error {
			w.WriteBool(v)
			return nil
		},
		DeserializeFn: func(r *symbol.Reader[S]) (bool, error) {
			return r.ReadBool()
		},
	}
}

// String is the Formatter for string.
func String[S symbol.Symbol]() formatter.Formatter[string, S] {
	return formatter.Func[string, S]{
		SerializeFn: func(w *symbol.Writer[S], v string, _ int) error {
			w.WriteString(v)
			return nil
		},
		DeserializeFn: func(r *symbol.Reader[S]) (string, error) {
			return r.ReadString()
		},
	}
}

// Float64 is the Formatter for float64.
func Float64[S symbol.Symbol]() formatter.Formatter[float64, S] {
	return formatter.Func[float64, S]{
		SerializeFn: func(w *symbol.Writer[S], v float64, _ int) error {
			return w.WriteFloat64(v)
		},
		DeserializeFn: func(r *symbol.Reader[S]) (float64, error) {
			return r.ReadFloat64()
		},
	}
}

// Float32 is the Formatter for float32.
func Float32[S symbol.Symbol]() formatter.Formatter[float32, S] {
	return formatter.Func[float32, S]{
		SerializeFn: func(w *symbol.Writer[S], v float32, _ int) error {
			return w.WriteFloat64(float64(v))
		},
		DeserializeFn: func(r *symbol.Reader[S]) (float32, error) {
			v, err := r.ReadFloat64()
			return float32(v), err
		},
	}
}

func signed[T ~int | ~int8 | ~int16 | ~int32 | ~int64, S symbol.Symbol](bits int) formatter.Formatter[T, S] {
	return formatter.Func[T, S]{
		SerializeFn: func(w *symbol.Writer[S], v T, _ int) error {
			w.WriteInt64(int64(v))
			return nil
		},
		DeserializeFn: func(r *symbol.Reader[S]) (T, error) {
			v, err := r.ReadIntN(bits)
			return T(v), err
		},
	}
}

func unsigned[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64, S symbol.Symbol](bits int) formatter.Formatter[T, S] {
	return formatter.Func[T, S]{
		SerializeFn: func(w *symbol.Writer[S], v T, _ int) error {
			w.WriteUint64(uint64(v))
			return nil
		},
		DeserializeFn: func(r *symbol.Reader[S]) (T, error) {
			v, err := r.ReadUintN(bits)
			return T(v), err
		},
	}
}

// Int is the Formatter for int (treated as 64-bit, matching Go's common
// platform word size and encoding/json's own behavior).
func Int[S symbol.Symbol]() formatter.Formatter[int, S] { return signed[int, S](64) }

// Int8 is the Formatter for int8.
func Int8[S symbol.Symbol]() formatter.Formatter[int8, S] { return signed[int8, S](8) }

// Int16 is the Formatter for int16.
func Int16[S symbol.Symbol]() formatter.Formatter[int16, S] { return signed[int16, S](16) }

// Int32 is the Formatter for int32.
func Int32[S symbol.Symbol]() formatter.Formatter[int32, S] { return signed[int32, S](32) }

// Int64 is the Formatter for int64.
func Int64[S symbol.Symbol]() formatter.Formatter[int64, S] { return signed[int64, S](64) }

// Uint is the Formatter for uint.
func Uint[S symbol.Symbol]() formatter.Formatter[uint, S] { return unsigned[uint, S](64) }

// Uint8 is the Formatter for uint8.
func Uint8[S symbol.Symbol]() formatter.Formatter[uint8, S] { return unsigned[uint8, S](8) }

// Uint16 is the Formatter for uint16.
func Uint16[S symbol.Symbol]() formatter.Formatter[uint16, S] { return unsigned[uint16, S](16) }

// Uint32 is the Formatter for uint32.
func Uint32[S symbol.Symbol]() formatter.Formatter[uint32, S] { return unsigned[uint32, S](32) }

// Uint64 is the Formatter for uint64.
func Uint64[S symbol.Symbol]() formatter.Formatter[uint64, S] { return unsigned[uint64, S](64) }
