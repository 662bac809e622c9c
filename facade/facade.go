// Package facade implements the Session Façade (SF): the shared,
// encoding-agnostic engine that instantiates a writer or reader, looks up
// the top-level Formatter from a Resolver, drives one full serialize or
// deserialize operation, and materializes the result. Packages jutf8 and
// jutf16 are thin, symbol-type-fixed wrappers over this engine, so the
// pooling/cancellation/logging logic is written once and every entry point
// funnels into the same parser/writer core.
package facade

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/go-jcodec/jcodec/formatter"
	"github.com/go-jcodec/jcodec/pool"
	"github.com/go-jcodec/jcodec/resolver"
	"github.com/go-jcodec/jcodec/symbol"
)

// chunkSize is how much is read per iteration of the chunked fallback path
// in UnmarshalFrom, when the source isn't a random-access, length-known
// reader.
const chunkSize = 4096

// Marshal drives a full serialize of v, returning the produced symbol
// buffer with ownership transferred to the caller.
func Marshal[T any, S symbol.Symbol](codec symbol.Codec[S], r *resolver.Resolver[S], v T) ([]S, error) {
	f, ok := resolver.Get[T, S](r)
	if !ok {
		return nil, fmt.Errorf("jcodec: no formatter registered for %T", v)
	}
	return serialize(codec, f, v)
}

// MarshalTo drives a full serialize of v and writes the result to sink,
// then returns the writer's buffer to the shared pool. It takes a
// context.Context for cancellation, per the project's convention of using
// context on any I/O-performing operation (there is no separate async/await
// surface in Go). Cancellation is honored before the scratch buffer is
// rented and again before the sink write; every sink write is logged at
// slog.Debug with a correlation id so a long streaming write can be traced.
func MarshalTo[T any, S symbol.Symbol](ctx context.Context, codec symbol.Codec[S], r *resolver.Resolver[S], sink io.Writer, v T, toBytes func([]S) []byte) error {
	if err := ctx.Err(); err != nil {
		return symbol.NewError(symbol.ErrCancelled, 0, "cancelled before serialize: %v", err)
	}
	f, ok := resolver.Get[T, S](r)
	if !ok {
		return fmt.Errorf("jcodec: no formatter registered for %T", v)
	}
	opID := uuid.New()
	buf, err := serialize(codec, f, v)
	if err != nil {
		return err
	}
	defer pool.Release(buf)

	if err := ctx.Err(); err != nil {
		return symbol.NewError(symbol.ErrCancelled, 0, "cancelled before sink write: %v", err)
	}
	slog.Debug("jcodec: writing to sink", "op", opID, "symbols", len(buf))
	_, err = sink.Write(toBytes(buf))
	return err
}

func serialize[T any, S symbol.Symbol](codec symbol.Codec[S], f formatter.Formatter[T, S], v T) ([]S, error) {
	hint := 256
	hinter, hasHint := f.(formatter.SizeHinter)
	if hasHint {
		if h := hinter.SizeHint(); h > 0 {
			hint = h
		}
	}
	w := symbol.NewWriter(codec, hint)
	if err := f.Serialize(w, v, 0); err != nil {
		w.Release()
		return nil, err
	}
	n := w.Len()
	if hasHint {
		hinter.UpdateSizeHint(n)
	}
	return w.Take(), nil
}

// Unmarshal drives a full deserialize of view. The sticky size hint for
// (T, S) is updated to view's consumed length.
func Unmarshal[T any, S symbol.Symbol](codec symbol.Codec[S], r *resolver.Resolver[S], view []S) (T, error) {
	var zero T
	f, ok := resolver.Get[T, S](r)
	if !ok {
		return zero, fmt.Errorf("jcodec: no formatter registered for %T", zero)
	}
	rdr := symbol.NewReader(codec, view)
	v, err := f.Deserialize(rdr)
	if err != nil {
		return zero, err
	}
	if hinter, ok := f.(formatter.SizeHinter); ok {
		hinter.UpdateSizeHint(rdr.Offset())
	}
	return v, nil
}

// lenReader is satisfied by random-access, length-known sources such as
// *bytes.Reader and *strings.Reader.
type lenReader interface {
	Len() int
}

// UnmarshalFrom reads and deserializes from src, taking a context.Context
// per the project's I/O convention rather than a separate async surface.
// If src is a random-access, length-known reader (it implements Len() int,
// as *bytes.Reader and *strings.Reader do), the fast path reads it in one
// shot into a newly allocated buffer sized exactly to Len(), and skips the
// chunked growth loop entirely; the input is still copied once.
// Otherwise the fallback path rents a pool buffer sized by the sticky
// deserialization hint and doubles it as needed while reading in chunks.
// Cancellation is checked before the first read and between chunks; the
// synchronous formatter engine itself never inspects ctx.
func UnmarshalFrom[T any, S symbol.Symbol](ctx context.Context, codec symbol.Codec[S], r *resolver.Resolver[S], src io.Reader, fromBytes func([]byte) ([]S, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, symbol.NewError(symbol.ErrCancelled, 0, "cancelled before read: %v", err)
	}
	f, ok := resolver.Get[T, S](r)
	if !ok {
		return zero, fmt.Errorf("jcodec: no formatter registered for %T", zero)
	}
	opID := uuid.New()

	if lr, ok := src.(lenReader); ok {
		slog.Debug("jcodec: length-known fast path", "op", opID, "len", lr.Len())
		raw := make([]byte, lr.Len())
		if _, err := io.ReadFull(src, raw); err != nil {
			return zero, err
		}
		units, err := fromBytes(raw)
		if err != nil {
			return zero, err
		}
		return Unmarshal[T, S](codec, r, units)
	}

	slog.Debug("jcodec: chunked read fallback", "op", opID)
	hint := 256
	if hinter, ok := f.(formatter.SizeHinter); ok {
		if h := hinter.SizeHint(); h > 0 {
			hint = h
		}
	}
	scratch := pool.Rent[byte](hint)
	defer func() { pool.Release(scratch) }()
	chunk := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return zero, symbol.NewError(symbol.ErrCancelled, 0, "cancelled mid-read: %v", err)
		}
		n, err := src.Read(chunk)
		if n > 0 {
			if len(scratch)+n > cap(scratch) {
				scratch = pool.Double(scratch)
			}
			scratch = append(scratch, chunk[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return zero, err
		}
	}
	units, err := fromBytes(scratch)
	if err != nil {
		return zero, err
	}
	return Unmarshal[T, S](codec, r, units)
}
