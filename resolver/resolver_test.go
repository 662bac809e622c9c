package resolver

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-jcodec/jcodec/formatter"
	"github.com/go-jcodec/jcodec/symbol"
)

func TestNewRegistersPrimitives(t *testing.T) {
	r := New(symbol.UTF8Codec())
	if _, ok := Get[int, byte](r); !ok {
		t.Error("int should be pre-registered")
	}
	if _, ok := Get[string, byte](r); !ok {
		t.Error("string should be pre-registered")
	}
	if _, ok := Get[bool, byte](r); !ok {
		t.Error("bool should be pre-registered")
	}
}

func TestDefaultPolicy(t *testing.T) {
	r := New(symbol.UTF8Codec())
	p := r.Policy()
	if p.CaseStyle != OriginalCase {
		t.Errorf("CaseStyle = %v, want OriginalCase", p.CaseStyle)
	}
	if !p.ExcludeNulls {
		t.Error("ExcludeNulls should default to true")
	}
}

func TestOptionsOverridePolicy(t *testing.T) {
	r := New(symbol.UTF8Codec(), WithCaseStyle(CamelCase), WithIncludeNulls(), WithMaxNesting(10))
	p := r.Policy()
	if p.CaseStyle != CamelCase {
		t.Error("CaseStyle should be CamelCase")
	}
	if p.ExcludeNulls {
		t.Error("ExcludeNulls should be false")
	}
	if p.MaxNesting != 10 {
		t.Errorf("MaxNesting = %d, want 10", p.MaxNesting)
	}
}

type widget struct{ N int }

func TestGetOrBuildConstructsOnce(t *testing.T) {
	r := New(symbol.UTF8Codec())
	var built atomic.Int64
	build := func() formatterStub { built.Add(1); return formatterStub{} }

	f1 := GetOrBuild[widget, byte](r, func() formatterFace { return build() })
	f2 := GetOrBuild[widget, byte](r, func() formatterFace { return build() })
	if built.Load() != 1 {
		t.Errorf("build ran %d times, want 1", built.Load())
	}
	if f1 != f2 {
		t.Error("GetOrBuild should return the same cached instance on second call")
	}
}

func TestGetOrBuildIdempotentUnderConcurrency(t *testing.T) {
	r := New(symbol.UTF8Codec())
	var built atomic.Int64
	var wg sync.WaitGroup
	results := make([]formatterFace, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = GetOrBuild[widget, byte](r, func() formatterFace {
				built.Add(1)
				return formatterStub{}
			})
		}(i)
	}
	wg.Wait()
	if built.Load() != 1 {
		t.Errorf("build ran %d times under concurrent first use, want 1", built.Load())
	}
	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent GetOrBuild callers received different instances")
		}
	}
}

type formatterFace = formatter.Formatter[widget, byte]

type formatterStub struct{}

func (formatterStub) Serialize(w *symbol.Writer[byte], v widget, nesting int) error { return nil }
func (formatterStub) Deserialize(r *symbol.Reader[byte]) (widget, error)            { return widget{}, nil }
