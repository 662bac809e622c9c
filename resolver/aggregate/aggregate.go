// Package aggregate builds Formatters for user-defined struct types by
// reflecting over their exported fields once, at registration time, and
// composing each field's already-registered Formatter from a Resolver.
//
// This is deliberately the least-polished package in the module: field
// discovery, case conversion, and null-exclusion are construction-time
// policy, kept separate from the formatter engine's own dispatch contract.
// Go generics cannot be instantiated with a type argument computed at
// runtime, so unlike array/nullable/enum this package drives formatters
// through resolver.DynFormatter's reflect.Value-shaped methods rather than
// their static Formatter[T, S] form.
package aggregate

import (
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/go-jcodec/jcodec/formatter"
	"github.com/go-jcodec/jcodec/recursion"
	"github.com/go-jcodec/jcodec/resolver"
	"github.com/go-jcodec/jcodec/symbol"
)

var lowerFirst = cases.Lower(language.Und)

type fieldPlan[S symbol.Symbol] struct {
	name      string
	index     int
	fmt       resolver.DynFormatter[S]
	omitEmpty bool
}

type aggregateFormatter[T any, S symbol.Symbol] struct {
	typ          reflect.Type
	fields       []fieldPlan[S]
	byName       map[string]int // wire name -> index into fields
	excludeNulls bool
	isCand       bool
	maxNesting   int
	sizeHint     atomic.Int64
}

// SizeHint returns the last observed serialized/deserialized symbol count
// for this (T, S) pair, implementing formatter.SizeHinter the same way
// package array does.
func (f *aggregateFormatter[T, S]) SizeHint() int { return int(f.sizeHint.Load()) }

// UpdateSizeHint overwrites the sticky size hint with ordinary,
// last-writer-wins semantics.
func (f *aggregateFormatter[T, S]) UpdateSizeHint(n int) { f.sizeHint.Store(int64(n)) }

// New reflects over T's exported fields and builds a Formatter for it.
// Every field's own Formatter must already be registered with r — via a
// primitive, resolver.RegisterArray, resolver.RegisterNullable,
// resolver.RegisterEnum, or a prior aggregate.New call for a nested struct
// — the same "registered once, up front" discipline the rest of this
// module's composites follow.
//
// Field wire names follow r's CaseStyle policy (resolver.OriginalCase uses
// the Go field name verbatim; resolver.CamelCase lower-cases its leading
// letter), overridable per field with a `json:"name"` tag — reusing the
// standard library's encoding/json tag syntax rather than inventing a
// parallel convention, per the Go idiom for this. A tag name of "-" omits
// the field entirely; ",omitempty" omits the field when its value is the
// zero value for its type. Independent of any tag, r's ExcludeNulls policy
// (the resolver's default) omits a field whenever its value would serialize
// as the JSON literal null.
func New[T any, S symbol.Symbol](r *resolver.Resolver[S]) (formatter.Formatter[T, S], error) {
	var zero T
	t := reflect.TypeOf(&zero).Elem()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("aggregate: %s is not a struct", t)
	}

	policy := r.Policy()
	maxNesting := policy.MaxNesting
	if maxNesting <= 0 {
		maxNesting = recursion.DefaultMaxNesting
	}
	af := &aggregateFormatter[T, S]{
		typ:          t,
		byName:       make(map[string]int),
		excludeNulls: policy.ExcludeNulls,
		isCand:       recursion.IsCandidate[T](),
		maxNesting:   maxNesting,
	}
	af.sizeHint.Store(256)

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" { // unexported field
			continue
		}
		name, omitEmpty, skip := fieldName(sf, policy.CaseStyle)
		if skip {
			continue
		}
		dyn, ok := resolver.GetDynamic[S](r, sf.Type)
		if !ok {
			return nil, fmt.Errorf("aggregate: no formatter registered for field %s.%s (%s)", t.Name(), sf.Name, sf.Type)
		}
		af.byName[name] = len(af.fields)
		af.fields = append(af.fields, fieldPlan[S]{name: name, index: i, fmt: dyn, omitEmpty: omitEmpty})
	}
	return af, nil
}

// Register builds the aggregate Formatter for T via New and publishes it as
// T's canonical Formatter on r, idempotently across concurrent first use —
// mirroring resolver.RegisterArray/RegisterNullable/RegisterEnum, kept in
// this package rather than resolver's to avoid an import cycle (aggregate
// already imports resolver for DynFormatter/GetDynamic).
func Register[T any, S symbol.Symbol](r *resolver.Resolver[S]) (formatter.Formatter[T, S], error) {
	if f, ok := resolver.Get[T, S](r); ok {
		return f, nil
	}
	f, err := New[T, S](r)
	if err != nil {
		return nil, err
	}
	return resolver.GetOrBuild[T, S](r, func() formatter.Formatter[T, S] { return f }), nil
}

func fieldName(sf reflect.StructField, style resolver.CaseStyle) (name string, omitEmpty bool, skip bool) {
	tag, hasTag := sf.Tag.Lookup("json")
	if hasTag {
		parts := strings.Split(tag, ",")
		for _, p := range parts[1:] {
			if p == "omitempty" {
				omitEmpty = true
			}
		}
		if parts[0] == "-" {
			return "", false, true
		}
		if parts[0] != "" {
			return parts[0], omitEmpty, false
		}
	}
	if style == resolver.CamelCase {
		return camelCase(sf.Name), omitEmpty, false
	}
	return sf.Name, omitEmpty, false
}

// camelCase lower-cases a Go exported field's leading letter ("UserID" ->
// "userID"), the conventional JSON wire casing. It deliberately doesn't
// attempt acronym detection beyond the first letter; fields needing a
// different wire name use a `json` tag instead.
func camelCase(name string) string {
	if name == "" {
		return name
	}
	return lowerFirst.String(name[:1]) + name[1:]
}

func (f *aggregateFormatter[T, S]) Serialize(w *symbol.Writer[S], v T, nesting int) error {
	next := nesting
	if f.isCand {
		next++
		if next > f.maxNesting {
			return symbol.NewError(symbol.ErrNestingExceeded, 0, "nesting depth %d exceeds limit", next)
		}
	}

	rv := reflect.ValueOf(v)
	w.WriteBeginObject()
	wrote := false
	for _, fp := range f.fields {
		fv := rv.Field(fp.index)
		if f.excludeNulls && wouldBeNull(fv) {
			continue
		}
		if fp.omitEmpty && fv.IsZero() {
			continue
		}
		if wrote {
			w.WriteValueSeparator()
		}
		w.WriteFieldName(fp.name)
		if err := fp.fmt.SerializeValue(w, fv, next); err != nil {
			return err
		}
		wrote = true
	}
	w.WriteEndObject()
	return nil
}

func (f *aggregateFormatter[T, S]) Deserialize(r *symbol.Reader[S]) (T, error) {
	var zero T
	if r.ReadIsNull() {
		return zero, nil
	}
	if err := r.ReadBeginObject(); err != nil {
		return zero, err
	}

	out := reflect.New(f.typ).Elem()
	first := true
	for {
		more, err := r.ReadEndObjectOrValueSeparator(first)
		if err != nil {
			return zero, err
		}
		first = false
		if !more {
			break
		}
		key, err := r.ReadKey()
		if err != nil {
			return zero, err
		}
		if err := r.ReadKeySeparator(); err != nil {
			return zero, err
		}
		idx, ok := f.byName[key]
		if !ok {
			if err := r.SkipValue(); err != nil {
				return zero, err
			}
			continue
		}
		fp := f.fields[idx]
		fv, err := fp.fmt.DeserializeValue(r)
		if err != nil {
			return zero, err
		}
		out.Field(fp.index).Set(fv)
	}
	return out.Interface().(T), nil
}

// wouldBeNull reports whether v, left as-is, would serialize as the JSON
// literal null: a nil pointer/slice/map/interface, or a nullable.Optional[T]
// holding no value.
func wouldBeNull(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return v.IsNil()
	}
	if v.CanInterface() {
		if ia, ok := v.Interface().(interface{ IsAbsent() bool }); ok {
			return ia.IsAbsent()
		}
	}
	return false
}
