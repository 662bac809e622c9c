package symbol

import (
	"unicode/utf16"
	"unicode/utf8"
)

// utf16Codec realizes Codec[uint16]: runes outside the basic multilingual
// plane are appended/decoded as surrogate pairs.
type utf16Codec struct{}

func (utf16Codec) AppendRune(buf []uint16, r rune) []uint16 {
	r1, r2 := utf16.EncodeRune(r)
	if r1 == utf8.RuneError && r2 == utf8.RuneError {
		return append(buf, uint16(r))
	}
	return append(buf, uint16(r1), uint16(r2))
}

func (utf16Codec) DecodeRune(view []uint16, pos int) (rune, int, bool) {
	if pos >= len(view) {
		return 0, 0, false
	}
	u1 := rune(view[pos])
	if !utf16.IsSurrogate(u1) {
		return u1, 1, true
	}
	if pos+1 >= len(view) {
		return 0, 0, false
	}
	u2 := rune(view[pos+1])
	dec := utf16.DecodeRune(u1, u2)
	if dec == utf8.RuneError {
		return 0, 0, false
	}
	return dec, 2, true
}

// UTF16Codec is the Codec for the UTF-16 symbol type (uint16).
func UTF16Codec() Codec[uint16] { return utf16Codec{} }
