// Package jutf8 is the UTF-8 Session Façade surface: Marshal/Unmarshal
// entry points that fix the wire symbol type S to byte, built on top of the
// shared engine in package facade.
package jutf8

import (
	"context"
	"io"

	"github.com/go-jcodec/jcodec/facade"
	"github.com/go-jcodec/jcodec/resolver"
	"github.com/go-jcodec/jcodec/symbol"
)

// NewResolver builds a Resolver fixed to the UTF-8 symbol type (byte), with
// the default policy (exclude-nulls, original-case) as amended by opts.
// Register primitive/array/nullable/enum/aggregate formatters on it before
// passing it to this package's Marshal/Unmarshal functions.
func NewResolver(opts ...resolver.Option) *resolver.Resolver[byte] {
	return resolver.New(symbol.UTF8Codec(), opts...)
}

// Marshal serializes v to a freshly allocated byte slice holding UTF-8 JSON
// text.
func Marshal[T any](r *resolver.Resolver[byte], v T) ([]byte, error) {
	return facade.Marshal[T](symbol.UTF8Codec(), r, v)
}

// MarshalTo serializes v and writes the UTF-8 JSON text to w.
func MarshalTo[T any](ctx context.Context, r *resolver.Resolver[byte], w io.Writer, v T) error {
	return facade.MarshalTo[T](ctx, symbol.UTF8Codec(), r, w, v, identity)
}

// Unmarshal parses data as UTF-8 JSON text into a T.
func Unmarshal[T any](r *resolver.Resolver[byte], data []byte) (T, error) {
	return facade.Unmarshal[T](symbol.UTF8Codec(), r, data)
}

// UnmarshalFrom reads UTF-8 JSON text from src and parses it into a T. If
// src is a random-access, length-known reader (e.g. *bytes.Reader,
// *strings.Reader), a single appropriately sized read is used instead of a
// growing chunked buffer.
func UnmarshalFrom[T any](ctx context.Context, r *resolver.Resolver[byte], src io.Reader) (T, error) {
	return facade.UnmarshalFrom[T](ctx, symbol.UTF8Codec(), r, src, identityErr)
}

func identity(b []byte) []byte { return b }

func identityErr(b []byte) ([]byte, error) { return b, nil }
