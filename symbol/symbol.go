// Package symbol implements the low-level scalar reader/writer primitives
// the formatter engine drives. It is the concrete (but deliberately
// swappable) realization of the "Symbol Buffer & Scalar Codec" collaborator:
// the formatter engine never inspects a symbol buffer directly, only through
// the Reader/Writer contracts exported here.
package symbol

// Symbol is the compile-time choice of wire unit: a UTF-8 byte or a UTF-16
// code unit. Every buffer, reader, and writer type in this package and in
// the formatter/array/nullable/enum packages is generic over Symbol.
type Symbol interface {
	~byte | ~uint16
}

// sym converts an ASCII structural character into the chosen symbol type.
// Structural JSON characters ('[', ']', ',', '"', digits, etc.) occupy a
// single code unit under both UTF-8 and UTF-16, so this conversion is exact
// for every character this package uses it for.
func sym[S Symbol](c byte) S {
	return S(c)
}

// Codec supplies the one piece of behavior that genuinely differs between
// UTF-8 bytes and UTF-16 code units: how a rune outside the ASCII range is
// appended to, or decoded from, a symbol buffer. Everything else (structural
// tokens, digits, escapes) is identical across both encodings.
type Codec[S Symbol] interface {
	// AppendRune appends the wire encoding of r to buf and returns the result.
	AppendRune(buf []S, r rune) []S
	// DecodeRune decodes the rune starting at view[pos] and returns it along
	// with the number of symbols consumed. ok is false if view[pos:] does not
	// begin with a valid encoding of a rune.
	DecodeRune(view []S, pos int) (r rune, size int, ok bool)
}
