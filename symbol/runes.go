package symbol

import (
	"unicode/utf16"
	"unicode/utf8"
)

// appendUTF8Rune appends r to out as UTF-8. ReadString always materializes
// its result as a Go (UTF-8) string regardless of the wire symbol type.
func appendUTF8Rune(out []byte, r rune) []byte {
	return utf8.AppendRune(out, r)
}

func utf16IsHighSurrogate(r rune) bool {
	return r >= 0xD800 && r <= 0xDBFF
}

func utf16Combine(hi, lo rune) (rune, bool) {
	if !utf16.IsSurrogate(hi) {
		return 0, false
	}
	r := utf16.DecodeRune(hi, lo)
	if r == utf8.RuneError {
		return 0, false
	}
	return r, true
}
