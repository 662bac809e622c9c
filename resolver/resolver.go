// Package resolver implements the Resolver (R): a static registry mapping a
// value type to its canonical Formatter for a given wire symbol type and
// policy identity.
//
// The resolver's own construction concerns — reflecting over user
// aggregate fields, applying a case or null-exclusion policy — are kept
// separate from the formatter engine, which only consumes Get. Automatic,
// reflection-driven discovery of an arbitrary T's shape
// is additionally out of reach of Go's generics: a generic function cannot
// be instantiated with a type argument computed at runtime, so there is no
// way to go from a runtime reflect.Type back to a static Formatter[T, S]
// for a type this package hasn't already been told how to build. The
// Resolver therefore auto-registers the finite set of built-in primitive
// types at construction time, and exposes GetOrBuild for every composite
// shape (arrays, optionals, enums, aggregates), which the caller registers
// once, up front, the same way any of this package's own Register* helpers
// do.
package resolver

import (
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/go-jcodec/jcodec/formatter"
	"github.com/go-jcodec/jcodec/primitive"
	"github.com/go-jcodec/jcodec/recursion"
	"github.com/go-jcodec/jcodec/symbol"
)

// CaseStyle selects the property-name casing policy a user-aggregate
// formatter consults when no explicit field tag overrides it.
type CaseStyle int

const (
	// OriginalCase uses the Go field name verbatim. This is the resolver's
	// default policy.
	OriginalCase CaseStyle = iota
	// CamelCase lower-cases the first letter of the field name (e.g.
	// "UserID" -> "userID"), the conventional JSON wire casing.
	CamelCase
)

// Policy is the policy identity a Resolver is parameterized by, forming the
// third axis of the (T, S, policy) triple a Formatter is specialized for.
type Policy struct {
	CaseStyle    CaseStyle
	ExcludeNulls bool
	MaxNesting   int
}

// Option configures a Resolver at construction time.
type Option func(*Policy)

// WithCaseStyle overrides the default OriginalCase policy.
func WithCaseStyle(c CaseStyle) Option { return func(p *Policy) { p.CaseStyle = c } }

// WithIncludeNulls disables the default exclude-nulls policy for
// aggregate fields.
func WithIncludeNulls() Option { return func(p *Policy) { p.ExcludeNulls = false } }

// WithMaxNesting overrides recursion.DefaultMaxNesting for this resolver.
func WithMaxNesting(n int) Option { return func(p *Policy) { p.MaxNesting = n } }

// Resolver is the static registry consumed by the formatter engine. The
// zero value is not usable; construct with New.
type Resolver[S symbol.Symbol] struct {
	policy Policy
	cache  map[reflect.Type]any
	dyn    map[reflect.Type]DynFormatter[S]
	mu     sync.RWMutex
	group  singleflight.Group
}

// New builds a Resolver with the default policy (exclude-nulls,
// original-case), as amended by opts, and pre-registers every built-in
// primitive Formatter.
func New[S symbol.Symbol](codec symbol.Codec[S], opts ...Option) *Resolver[S] {
	p := Policy{CaseStyle: OriginalCase, ExcludeNulls: true, MaxNesting: recursion.DefaultMaxNesting}
	for _, opt := range opts {
		opt(&p)
	}
	r := &Resolver[S]{
		policy: p,
		cache:  make(map[reflect.Type]any),
		dyn:    make(map[reflect.Type]DynFormatter[S]),
	}
	registerPrimitives(r, codec)
	return r
}

// Policy returns the resolver's policy identity.
func (r *Resolver[S]) Policy() Policy { return r.policy }

func typeKey[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(&zero).Elem()
}

// Get returns the cached Formatter for T, if one has already been
// registered or built. This is the only lookup the formatter engine itself
// ever calls into a Resolver for.
func Get[T any, S symbol.Symbol](r *Resolver[S]) (formatter.Formatter[T, S], bool) {
	r.mu.RLock()
	v, ok := r.cache[typeKey[T]()]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return v.(formatter.Formatter[T, S]), true
}

// Register publishes f as the canonical Formatter for T. Intended for
// composing formatters (arrays, optionals, enums, aggregates) once, at
// setup time, the way this package's registry is populated.
func Register[T any, S symbol.Symbol](r *Resolver[S], f formatter.Formatter[T, S]) {
	r.mu.Lock()
	r.cache[typeKey[T]()] = f
	r.dyn[typeKey[T]()] = typedDyn[T, S]{f: f}
	r.mu.Unlock()
}

// DynFormatter is a reflect.Value-shaped view of a Formatter[T, S], used by
// package resolver/aggregate to drive a struct field's formatter when the
// field's static type isn't known until reflection time. Go generics cannot
// be instantiated with a runtime type argument, so a struct-field formatter
// lookup keyed by reflect.Type has no way to hand back a statically typed
// Formatter[T, S]; this narrow reflect.Value-based interface is the
// realization of that lookup instead.
type DynFormatter[S symbol.Symbol] interface {
	SerializeValue(w *symbol.Writer[S], v reflect.Value, nesting int) error
	DeserializeValue(r *symbol.Reader[S]) (reflect.Value, error)
}

type typedDyn[T any, S symbol.Symbol] struct {
	f formatter.Formatter[T, S]
}

func (d typedDyn[T, S]) SerializeValue(w *symbol.Writer[S], v reflect.Value, nesting int) error {
	return d.f.Serialize(w, v.Interface().(T), nesting)
}

func (d typedDyn[T, S]) DeserializeValue(r *symbol.Reader[S]) (reflect.Value, error) {
	v, err := d.f.Deserialize(r)
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(v), nil
}

// GetDynamic returns the reflect.Value-shaped formatter registered for t, if
// any. It is consumed by package resolver/aggregate to serialize/deserialize
// struct fields whose static type is only known via reflection.
func GetDynamic[S symbol.Symbol](r *Resolver[S], t reflect.Type) (DynFormatter[S], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dyn[t]
	return d, ok
}

// GetOrBuild returns the cached Formatter for T if present, otherwise runs
// build exactly once — including under concurrent first use, via
// singleflight — caches the result, and returns it. This is the Go
// realization of "idempotent first-use construction; a second racing
// construction is discarded without publishing": with singleflight the
// race is avoided rather than merely cleaned up after, since only one
// caller ever invokes build.
func GetOrBuild[T any, S symbol.Symbol](r *Resolver[S], build func() formatter.Formatter[T, S]) formatter.Formatter[T, S] {
	if f, ok := Get[T, S](r); ok {
		return f
	}
	key := typeKey[T]()
	v, _, _ := r.group.Do(key.String(), func() (any, error) {
		if f, ok := Get[T, S](r); ok {
			return f, nil
		}
		f := build()
		Register[T, S](r, f)
		return f, nil
	})
	return v.(formatter.Formatter[T, S])
}

func registerPrimitives[S symbol.Symbol](r *Resolver[S], _ symbol.Codec[S]) {
	Register[bool](r, primitive.Bool[S]())
	Register[string](r, primitive.String[S]())
	Register[int](r, primitive.Int[S]())
	Register[int8](r, primitive.Int8[S]())
	Register[int16](r, primitive.Int16[S]())
	Register[int32](r, primitive.Int32[S]())
	Register[int64](r, primitive.Int64[S]())
	Register[uint](r, primitive.Uint[S]())
	Register[uint8](r, primitive.Uint8[S]())
	Register[uint16](r, primitive.Uint16[S]())
	Register[uint32](r, primitive.Uint32[S]())
	Register[uint64](r, primitive.Uint64[S]())
	Register[float32](r, primitive.Float32[S]())
	Register[float64](r, primitive.Float64[S]())
}
