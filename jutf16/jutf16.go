// Package jutf16 is the UTF-16 Session Façade surface: Marshal/Unmarshal
// entry points that fix the wire symbol type S to uint16, built on top of
// the shared engine in package facade.
//
// A Go string cannot hold raw UTF-16 code units (it is always UTF-8), so
// where a UTF-16-native façade would return a string of UTF-16 characters,
// this package materializes to []uint16 instead and additionally offers
// MarshalString/UnmarshalString, which transcode through
// golang.org/x/text/encoding/unicode for callers who want a normal Go
// string without hand-rolling the conversion themselves.
package jutf16

import (
	"context"
	"encoding/binary"
	"io"

	"golang.org/x/text/encoding/unicode"

	"github.com/go-jcodec/jcodec/facade"
	"github.com/go-jcodec/jcodec/resolver"
	"github.com/go-jcodec/jcodec/symbol"
)

// NewResolver builds a Resolver fixed to the UTF-16 symbol type (uint16),
// with the default policy (exclude-nulls, original-case) as amended by
// opts.
func NewResolver(opts ...resolver.Option) *resolver.Resolver[uint16] {
	return resolver.New(symbol.UTF16Codec(), opts...)
}

// Marshal serializes v to a freshly allocated slice of UTF-16 code units
// holding JSON text.
func Marshal[T any](r *resolver.Resolver[uint16], v T) ([]uint16, error) {
	return facade.Marshal[T](symbol.UTF16Codec(), r, v)
}

// MarshalString serializes v and transcodes the result to a UTF-8 Go string.
func MarshalString[T any](r *resolver.Resolver[uint16], v T) (string, error) {
	units, err := Marshal[T](r, v)
	if err != nil {
		return "", err
	}
	return unitsToUTF8(units)
}

// MarshalTo serializes v and writes the UTF-16LE bytes to w.
func MarshalTo[T any](ctx context.Context, r *resolver.Resolver[uint16], w io.Writer, v T) error {
	return facade.MarshalTo[T](ctx, symbol.UTF16Codec(), r, w, v, unitsToLEBytes)
}

// Unmarshal parses units as UTF-16 JSON text into a T.
func Unmarshal[T any](r *resolver.Resolver[uint16], units []uint16) (T, error) {
	return facade.Unmarshal[T](symbol.UTF16Codec(), r, units)
}

// UnmarshalString transcodes s from UTF-8 to UTF-16 and parses it into a T.
func UnmarshalString[T any](r *resolver.Resolver[uint16], s string) (T, error) {
	var zero T
	units, err := utf8ToUnits(s)
	if err != nil {
		return zero, err
	}
	return Unmarshal[T](r, units)
}

// UnmarshalFrom reads UTF-16LE bytes from src and parses them into a T. If
// src is a random-access, length-known reader, a single appropriately sized
// read is used instead of a growing chunked buffer.
func UnmarshalFrom[T any](ctx context.Context, r *resolver.Resolver[uint16], src io.Reader) (T, error) {
	return facade.UnmarshalFrom[T](ctx, symbol.UTF16Codec(), r, src, leBytesToUnits)
}

func unitsToLEBytes(units []uint16) []byte {
	b := make([]byte, len(units)*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(b[i*2:], u)
	}
	return b
}

func leBytesToUnits(b []byte) ([]uint16, error) {
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return units, nil
}

func unitsToUTF8(units []uint16) (string, error) {
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(unitsToLEBytes(units))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func utf8ToUnits(s string) ([]uint16, error) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	b, err := enc.Bytes([]byte(s))
	if err != nil {
		return nil, err
	}
	return leBytesToUnits(b)
}
