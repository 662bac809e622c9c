package symbol

import "unicode/utf8"

// utf8Codec realizes Codec[byte]: runes are appended/decoded as their
// standard UTF-8 byte sequence.
type utf8Codec struct{}

func (utf8Codec) AppendRune(buf []byte, r rune) []byte {
	return utf8.AppendRune(buf, r)
}

func (utf8Codec) DecodeRune(view []byte, pos int) (rune, int, bool) {
	if pos >= len(view) {
		return 0, 0, false
	}
	r, size := utf8.DecodeRune(view[pos:])
	if r == utf8.RuneError && size <= 1 {
		return 0, 0, false
	}
	return r, size, true
}

// UTF8Codec is the Codec for the UTF-8 symbol type (byte).
func UTF8Codec() Codec[byte] { return utf8Codec{} }
