// Package enum implements the Enumeration Formatter: a closed set of named
// symbolic integer values, serialized and deserialized as their textual
// JSON string name.
//
// Go has no runtime reflection over a type's declared named constants (no
// equivalent of a C#-style Enum.GetValues), so unlike the other formatters
// in this module the member list here is supplied explicitly by the caller
// once, at Resolver registration time, rather than discovered by
// reflecting over T. That one list is then used to build both dispatch
// tables a single time; per-type idempotent caching of the constructed
// Formatter is the Resolver's responsibility (see package resolver).
package enum

import (
	"github.com/dchest/siphash"

	"github.com/go-jcodec/jcodec/formatter"
	"github.com/go-jcodec/jcodec/symbol"
)

// Integer is the constraint satisfied by an enumeration's underlying type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Member declares one named value of an enumeration.
type Member[T Integer] struct {
	Value T
	Name  string
}

type enumFormatter[T Integer, S symbol.Symbol] struct {
	dense    []string // indexed by int64(value)-denseMin; nil if not used
	denseMin int64
	sparse   map[int64]string // used when dense is nil
	names    *nameTable[T]
}

// New builds the Enumeration Formatter for T over wire symbols S from its
// declared members. Both the serialize dispatcher (a dense array when
// member values are reasonably contiguous, a map otherwise) and the
// deserialize dispatcher (a siphash-seeded open-addressing table) are built
// once, here.
func New[T Integer, S symbol.Symbol](members []Member[T]) formatter.Formatter[T, S] {
	f := &enumFormatter[T, S]{names: newNameTable(members)}

	if len(members) == 0 {
		f.sparse = map[int64]string{}
		return f
	}

	minV, maxV := int64(members[0].Value), int64(members[0].Value)
	for _, m := range members[1:] {
		v := int64(m.Value)
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	span := maxV - minV + 1
	if span > 0 && span <= int64(len(members))*4 {
		arr := make([]string, span)
		for _, m := range members {
			arr[int64(m.Value)-minV] = m.Name
		}
		f.dense = arr
		f.denseMin = minV
		return f
	}

	f.sparse = make(map[int64]string, len(members))
	for _, m := range members {
		f.sparse[int64(m.Value)] = m.Name
	}
	return f
}

func (f *enumFormatter[T, S]) lookupName(v T) (string, bool) {
	iv := int64(v)
	if f.dense != nil {
		idx := iv - f.denseMin
		if idx < 0 || idx >= int64(len(f.dense)) {
			return "", false
		}
		n := f.dense[idx]
		return n, n != ""
	}
	n, ok := f.sparse[iv]
	return n, ok
}

func (f *enumFormatter[T, S]) Serialize(w *symbol.Writer[S], v T, _ int) error {
	name, ok := f.lookupName(v)
	if !ok {
		return symbol.NewError(symbol.ErrInvalidEnum, 0, "value %v is not a declared enum member", int64(v))
	}
	w.WriteString(name)
	return nil
}

func (f *enumFormatter[T, S]) Deserialize(r *symbol.Reader[S]) (T, error) {
	start := r.Offset()
	name, err := r.ReadString()
	if err != nil {
		var zero T
		return zero, err
	}
	v, ok := f.names.lookup(name)
	if !ok {
		var zero T
		return zero, symbol.NewError(symbol.ErrInvalidEnumName, start, "no enum member named %q", name)
	}
	return v, nil
}

// nameTable is a fixed-size open-addressing hash table keyed by
// siphash.Hash of the member name, mapping enum name -> value. A fixed seed
// is used so that every enum with the same member count gets an
// identically shaped table.
type nameTable[T Integer] struct {
	seed uint64
	keys []string
	vals []T
	used []bool
}

const tableSeed = 0x9e3779b97f4a7c15

func newNameTable[T Integer](members []Member[T]) *nameTable[T] {
	size := nextPow2(len(members)*2 + 1)
	if size < 4 {
		size = 4
	}
	t := &nameTable[T]{
		seed: tableSeed,
		keys: make([]string, size),
		vals: make([]T, size),
		used: make([]bool, size),
	}
	for _, m := range members {
		t.insert(m.Name, m.Value)
	}
	return t
}

func (t *nameTable[T]) hash(name string) uint64 {
	return siphash.Hash(0, t.seed, []byte(name))
}

func (t *nameTable[T]) insert(name string, v T) {
	mask := uint64(len(t.keys) - 1)
	h := t.hash(name) & mask
	for t.used[h] {
		h = (h + 1) & mask
	}
	t.used[h] = true
	t.keys[h] = name
	t.vals[h] = v
}

func (t *nameTable[T]) lookup(name string) (T, bool) {
	mask := uint64(len(t.keys) - 1)
	h := t.hash(name) & mask
	for t.used[h] {
		if t.keys[h] == name {
			return t.vals[h], true
		}
		h = (h + 1) & mask
	}
	var zero T
	return zero, false
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
