package symbol

import (
	"strconv"

	"github.com/go-jcodec/jcodec/pool"
)

// Writer is a flat, non-escaping cursor over an owned, growable buffer of
// symbols. It exclusively owns buf until Take is called; callers must not
// retain a Writer across calls into user code that might also write to one
// (formatters never do).
type Writer[S Symbol] struct {
	buf   []S
	codec Codec[S]
}

// NewWriter allocates a writer whose backing buffer is rented from the
// shared pool with the given capacity hint.
func NewWriter[S Symbol](codec Codec[S], capHint int) *Writer[S] {
	if capHint <= 0 {
		capHint = 256
	}
	return &Writer[S]{buf: pool.Rent[S](capHint), codec: codec}
}

// Len reports the number of symbols written so far.
func (w *Writer[S]) Len() int { return len(w.buf) }

// Take transfers ownership of the written buffer to the caller. The writer
// must not be used again afterward.
func (w *Writer[S]) Take() []S {
	b := w.buf
	w.buf = nil
	return b
}

// Release returns the writer's buffer to the shared pool without
// materializing it. Used on the error path, where nothing is produced.
func (w *Writer[S]) Release() {
	pool.Release(w.buf)
	w.buf = nil
}

func (w *Writer[S]) appendASCII(s string) {
	for i := 0; i < len(s); i++ {
		w.buf = append(w.buf, sym[S](s[i]))
	}
}

func (w *Writer[S]) appendASCIIBytes(b []byte) {
	for _, c := range b {
		w.buf = append(w.buf, sym[S](c))
	}
}

// WriteBeginArray writes '['.
func (w *Writer[S]) WriteBeginArray() { w.buf = append(w.buf, sym[S]('[')) }

// WriteEndArray writes ']'.
func (w *Writer[S]) WriteEndArray() { w.buf = append(w.buf, sym[S](']')) }

// WriteValueSeparator writes ','.
func (w *Writer[S]) WriteValueSeparator() { w.buf = append(w.buf, sym[S](',')) }

// WriteBeginObject writes '{'.
func (w *Writer[S]) WriteBeginObject() { w.buf = append(w.buf, sym[S]('{')) }

// WriteEndObject writes '}'.
func (w *Writer[S]) WriteEndObject() { w.buf = append(w.buf, sym[S]('}')) }

// WriteKeySeparator writes ':'.
func (w *Writer[S]) WriteKeySeparator() { w.buf = append(w.buf, sym[S](':')) }

// WriteFieldName writes name as a quoted JSON string followed by the key
// separator, the shape every object field needs before its value.
func (w *Writer[S]) WriteFieldName(name string) {
	w.WriteString(name)
	w.WriteKeySeparator()
}

// WriteNull writes the literal null.
func (w *Writer[S]) WriteNull() { w.appendASCII("null") }

// WriteBool writes the literal true or false.
func (w *Writer[S]) WriteBool(v bool) {
	if v {
		w.appendASCII("true")
	} else {
		w.appendASCII("false")
	}
}

// WriteInt64 writes a signed integer literal.
func (w *Writer[S]) WriteInt64(v int64) {
	w.appendASCIIBytes(strconv.AppendInt(nil, v, 10))
}

// WriteUint64 writes an unsigned integer literal.
func (w *Writer[S]) WriteUint64(v uint64) {
	w.appendASCIIBytes(strconv.AppendUint(nil, v, 10))
}

// WriteFloat64 writes a floating point literal using the shortest
// round-trippable representation, per RFC-8259. NaN and +/-Inf have no JSON
// number representation; rather than silently writing something that would
// decode back to a different value, WriteFloat64 fails fast with
// ErrOutOfRange, the same way the reader rejects a numeric literal it can't
// represent.
func (w *Writer[S]) WriteFloat64(v float64) error {
	if v != v || v > maxFloat64Repr || v < -maxFloat64Repr {
		return offsetErr(ErrOutOfRange, len(w.buf), "%v has no JSON representation", v)
	}
	w.appendASCIIBytes(strconv.AppendFloat(nil, v, 'g', -1, 64))
	return nil
}

const maxFloat64Repr = 1.7976931348623157e+308

// WriteString writes a JSON-quoted, escaped string.
func (w *Writer[S]) WriteString(s string) {
	w.buf = append(w.buf, sym[S]('"'))
	for _, r := range s {
		switch r {
		case '"':
			w.appendASCII(`\"`)
		case '\\':
			w.appendASCII(`\\`)
		case '\n':
			w.appendASCII(`\n`)
		case '\r':
			w.appendASCII(`\r`)
		case '\t':
			w.appendASCII(`\t`)
		default:
			if r < 0x20 {
				w.appendASCIIBytes([]byte(`\u`))
				w.appendASCII(hex4(uint16(r)))
			} else {
				w.buf = w.codec.AppendRune(w.buf, r)
			}
		}
	}
	w.buf = append(w.buf, sym[S]('"'))
}

func hex4(v uint16) string {
	const digits = "0123456789abcdef"
	b := [4]byte{
		digits[(v>>12)&0xf],
		digits[(v>>8)&0xf],
		digits[(v>>4)&0xf],
		digits[v&0xf],
	}
	return string(b[:])
}
