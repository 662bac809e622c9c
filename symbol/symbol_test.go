package symbol

import (
	"errors"
	"testing"
)

func TestUTF8RoundTripScalars(t *testing.T) {
	codec := UTF8Codec()
	for _, test := range []struct {
		name string
		in   string
	}{
		{"empty", `""`},
		{"escapes", `"a\n\t\r\"\\b"`},
		{"surrogate", `"\ud83d\ude00"`}, // 😀
		{"plain unicode", `"héllo"`},
	} {
		t.Run(test.name, func(t *testing.T) {
			r := NewReader(codec, []byte(test.in))
			if _, err := r.ReadString(); err != nil {
				t.Fatalf("ReadString(%q): %v", test.in, err)
			}
			if r.Offset() != len(test.in) {
				t.Errorf("offset = %d, want %d", r.Offset(), len(test.in))
			}
		})
	}
}

func TestWriteStringEscapesAndRoundTrips(t *testing.T) {
	codec := UTF8Codec()
	w := NewWriter(codec, 0)
	w.WriteString("a\n\t\"\\b")
	out := w.Take()

	r := NewReader(codec, out)
	got, err := r.ReadString()
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if got != "a\n\t\"\\b" {
		t.Errorf("got %q", got)
	}
}

func TestReadEndArrayOrValueSeparator(t *testing.T) {
	codec := UTF8Codec()

	t.Run("empty array", func(t *testing.T) {
		r := NewReader(codec, []byte("[]"))
		if err := r.ReadBeginArray(); err != nil {
			t.Fatal(err)
		}
		more, err := r.ReadEndArrayOrValueSeparator(true)
		if err != nil || more {
			t.Fatalf("more=%v err=%v, want false, nil", more, err)
		}
	})

	t.Run("trailing comma rejected", func(t *testing.T) {
		r := NewReader(codec, []byte("[1,]"))
		if err := r.ReadBeginArray(); err != nil {
			t.Fatal(err)
		}
		more, err := r.ReadEndArrayOrValueSeparator(true)
		if err != nil || !more {
			t.Fatalf("first call: more=%v err=%v", more, err)
		}
		if _, err := r.ReadInt64(); err != nil {
			t.Fatal(err)
		}
		_, err = r.ReadEndArrayOrValueSeparator(false)
		if !errors.Is(err, ErrUnexpectedToken) {
			t.Fatalf("err = %v, want ErrUnexpectedToken", err)
		}
	})

	t.Run("leading comma rejected", func(t *testing.T) {
		r := NewReader(codec, []byte("[,1]"))
		if err := r.ReadBeginArray(); err != nil {
			t.Fatal(err)
		}
		_, err := r.ReadEndArrayOrValueSeparator(true)
		if !errors.Is(err, ErrUnexpectedToken) {
			t.Fatalf("err = %v, want ErrUnexpectedToken", err)
		}
	})
}

func TestReadIntOutOfRange(t *testing.T) {
	r := NewReader(UTF8Codec(), []byte("99999"))
	_, err := r.ReadIntN(8)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("err = %v, want ErrOutOfRange", err)
	}
}

func TestUnexpectedEnd(t *testing.T) {
	r := NewReader(UTF8Codec(), []byte("[1,"))
	if err := r.ReadBeginArray(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ReadEndArrayOrValueSeparator(true); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ReadInt64(); err != nil {
		t.Fatal(err)
	}
	_, err := r.ReadEndArrayOrValueSeparator(false)
	if !errors.Is(err, ErrUnexpectedEnd) {
		t.Fatalf("err = %v, want ErrUnexpectedEnd", err)
	}
}

func TestSkipValue(t *testing.T) {
	for _, in := range []string{
		`null`, `true`, `false`, `123`, `-1.5e10`, `"str"`,
		`[1,2,[3,4],{"a":5}]`, `{"x":[1,null,"y"],"z":{}}`,
	} {
		r := NewReader(UTF8Codec(), []byte(in))
		if err := r.SkipValue(); err != nil {
			t.Errorf("SkipValue(%q): %v", in, err)
		}
		if r.Offset() != len(in) {
			t.Errorf("SkipValue(%q) offset = %d, want %d", in, r.Offset(), len(in))
		}
	}
}

func TestOffsetErrorCarriesOffset(t *testing.T) {
	r := NewReader(UTF8Codec(), []byte("   x"))
	err := r.ReadBeginArray()
	var oe *OffsetError
	if !errors.As(err, &oe) {
		t.Fatalf("expected *OffsetError, got %T", err)
	}
	if oe.Offset() != 3 {
		t.Errorf("offset = %d, want 3 (whitespace skipped)", oe.Offset())
	}
}

func TestUTF16RoundTrip(t *testing.T) {
	codec := UTF16Codec()
	w := NewWriter(codec, 0)
	w.WriteString("hi \U0001F600") // emoji forces a surrogate pair
	units := w.Take()

	r := NewReader(codec, units)
	got, err := r.ReadString()
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if got != "hi \U0001F600" {
		t.Errorf("got %q", got)
	}
}
