package facade

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/go-jcodec/jcodec/resolver"
	"github.com/go-jcodec/jcodec/symbol"
)

func newIntArrayResolver() *resolver.Resolver[byte] {
	r := resolver.New(symbol.UTF8Codec())
	resolver.RegisterArray[int64, byte](r)
	return r
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	r := newIntArrayResolver()
	out, err := Marshal[[]int64, byte](symbol.UTF8Codec(), r, []int64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "[1,2,3]" {
		t.Fatalf("got %q", out)
	}

	got, err := Unmarshal[[]int64, byte](symbol.UTF8Codec(), r, out)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("got %v", got)
	}
}

func TestMarshalUnknownTypeErrors(t *testing.T) {
	r := resolver.New(symbol.UTF8Codec())
	if _, err := Marshal[[]int64, byte](symbol.UTF8Codec(), r, []int64{1}); err == nil {
		t.Fatal("expected error: []int64 was never registered on this resolver")
	}
}

func TestStickyHintIdempotence(t *testing.T) {
	r := newIntArrayResolver()
	f, _ := resolver.Get[[]int64, byte](r)
	hinter := f.(interface{ SizeHint() int })

	in := []int64{1, 2, 3, 4, 5}
	out1, err := Marshal[[]int64, byte](symbol.UTF8Codec(), r, in)
	if err != nil {
		t.Fatal(err)
	}
	hintAfterFirst := hinter.SizeHint()
	if hintAfterFirst != len(out1) {
		t.Fatalf("sticky hint = %d, want %d (final write position)", hintAfterFirst, len(out1))
	}

	out2, err := Marshal[[]int64, byte](symbol.UTF8Codec(), r, in)
	if err != nil {
		t.Fatal(err)
	}
	if string(out1) != string(out2) {
		t.Fatalf("repeated serialize of the same value produced different output: %q vs %q", out1, out2)
	}
	if hinter.SizeHint() != len(out2) {
		t.Fatalf("sticky hint after second run = %d, want %d", hinter.SizeHint(), len(out2))
	}
}

func TestMarshalToWritesToSink(t *testing.T) {
	r := newIntArrayResolver()
	var buf bytes.Buffer
	err := MarshalTo[[]int64, byte](context.Background(), symbol.UTF8Codec(), r, &buf, []int64{9, 8}, identity)
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != "[9,8]" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestMarshalToHonorsCancellationBeforeSerialize(t *testing.T) {
	r := newIntArrayResolver()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	err := MarshalTo[[]int64, byte](ctx, symbol.UTF8Codec(), r, &buf, []int64{1}, identity)
	if !errors.Is(err, symbol.ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("sink should not have been written to after cancellation, got %q", buf.String())
	}
}

func TestUnmarshalFromLengthKnownFastPath(t *testing.T) {
	r := newIntArrayResolver()
	src := strings.NewReader("[1,2,3,4,5]") // *strings.Reader implements Len()
	got, err := UnmarshalFrom[[]int64, byte](context.Background(), symbol.UTF8Codec(), r, src, identityErr)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 || got[4] != 5 {
		t.Fatalf("got %v", got)
	}
}

// chunkedReader delivers its payload across two reads, to exercise
// UnmarshalFrom's chunked fallback path (it implements neither Len() nor
// the fast-path interface).
type chunkedReader struct {
	chunks [][]byte
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	c.chunks[0] = c.chunks[0][n:]
	if len(c.chunks[0]) == 0 {
		c.chunks = c.chunks[1:]
	}
	return n, nil
}

func TestUnmarshalFromChunkedFallbackMatchesSynchronous(t *testing.T) {
	r := newIntArrayResolver()
	src := &chunkedReader{chunks: [][]byte{[]byte("[1,2,"), []byte("3,4,5]")}}
	got, err := UnmarshalFrom[[]int64, byte](context.Background(), symbol.UTF8Codec(), r, src, identityErr)
	if err != nil {
		t.Fatal(err)
	}
	want, err := Unmarshal[[]int64, byte](symbol.UTF8Codec(), r, []byte("[1,2,3,4,5]"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestUnmarshalSurfacesElementFormatterFailure(t *testing.T) {
	r := newIntArrayResolver()
	// Malformed input: the element formatter fails mid-array, after the
	// scratch buffer has already been rented; array.Deserialize's own defer
	// still releases it back to the pool on this path (see array package).
	_, err := Unmarshal[[]int64, byte](symbol.UTF8Codec(), r, []byte(`[1,"x"]`))
	if err == nil {
		t.Fatal("expected a deserialize error for a non-numeric array element")
	}
}

func TestConcurrentMarshalUnmarshalOnSharedResolver(t *testing.T) {
	r := newIntArrayResolver()
	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < 32; i++ {
		i := i
		g.Go(func() error {
			in := []int64{int64(i), int64(i) + 1}
			out, err := Marshal[[]int64, byte](symbol.UTF8Codec(), r, in)
			if err != nil {
				return err
			}
			got, err := Unmarshal[[]int64, byte](symbol.UTF8Codec(), r, out)
			if err != nil {
				return err
			}
			if len(got) != 2 || got[0] != in[0] || got[1] != in[1] {
				return fmt.Errorf("goroutine %d: got %v, want %v", i, got, in)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

func identity(b []byte) []byte             { return b }
func identityErr(b []byte) ([]byte, error) { return b, nil }
