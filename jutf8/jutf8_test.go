package jutf8

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/go-jcodec/jcodec/resolver"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	r := NewResolver()
	resolver.RegisterArray[int64, byte](r)

	out, err := Marshal(r, []int64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "[1,2,3]" {
		t.Fatalf("got %q", out)
	}

	got, err := Unmarshal[[]int64](r, out)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("got %v", got)
	}
}

func TestMarshalToAndUnmarshalFrom(t *testing.T) {
	r := NewResolver()
	resolver.RegisterArray[int64, byte](r)

	var buf bytes.Buffer
	if err := MarshalTo(context.Background(), r, &buf, []int64{4, 5, 6}); err != nil {
		t.Fatal(err)
	}

	got, err := UnmarshalFrom[[]int64](context.Background(), r, strings.NewReader(buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 4 || got[2] != 6 {
		t.Fatalf("got %v", got)
	}
}

func TestEmptyArraySingleton(t *testing.T) {
	r := NewResolver()
	resolver.RegisterArray[int64, byte](r)

	got, err := Unmarshal[[]int64](r, []byte("[]"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}

func TestDefaultPolicyIsExcludeNullsOriginalCase(t *testing.T) {
	r := NewResolver()
	p := r.Policy()
	if p.CaseStyle != resolver.OriginalCase || !p.ExcludeNulls {
		t.Fatalf("got %+v, want exclude-nulls + original-case defaults", p)
	}
}
