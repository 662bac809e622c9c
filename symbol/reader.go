package symbol

import "strconv"

// Reader is a non-owning, immutable view over input symbols plus a mutable
// read cursor. The view must outlive the Reader; the cursor only advances,
// never rewinds, within one deserialize call.
type Reader[S Symbol] struct {
	view  []S
	pos   int
	codec Codec[S]
}

// NewReader wraps view for reading. view is not copied or retained beyond
// the lifetime the caller guarantees.
func NewReader[S Symbol](codec Codec[S], view []S) *Reader[S] {
	return &Reader[S]{view: view, codec: codec}
}

// Offset returns the current read cursor position.
func (r *Reader[S]) Offset() int { return r.pos }

// Len returns the total number of symbols in the view.
func (r *Reader[S]) Len() int { return len(r.view) }

func (r *Reader[S]) skipWS() {
	for r.pos < len(r.view) {
		switch r.view[r.pos] {
		case sym[S](' '), sym[S]('\t'), sym[S]('\n'), sym[S]('\r'):
			r.pos++
		default:
			return
		}
	}
}

// peek returns the next non-whitespace symbol without consuming it.
func (r *Reader[S]) peek() (S, bool) {
	r.skipWS()
	if r.pos >= len(r.view) {
		return 0, false
	}
	return r.view[r.pos], true
}

func (r *Reader[S]) errEnd() error {
	return offsetErr(ErrUnexpectedEnd, r.pos, "input ended while reading a value")
}

func (r *Reader[S]) errToken(got S) error {
	return offsetErr(ErrUnexpectedToken, r.pos, "unexpected character %q", rune(got))
}

// ReadBeginArray consumes a leading '['.
func (r *Reader[S]) ReadBeginArray() error {
	c, ok := r.peek()
	if !ok {
		return r.errEnd()
	}
	if c != sym[S]('[') {
		return r.errToken(c)
	}
	r.pos++
	return nil
}

// ReadEndArrayOrValueSeparator implements the combined step from the array
// decode protocol: on the first call (first == true) it expects either the
// closing ']' of an empty array (consumed, returns false) or the lead
// character of a value (not consumed, returns true, meaning "read a value
// next"). On every subsequent call it expects either ',' (consumed, returns
// true, meaning "read another value") or ']' (consumed, returns false).
func (r *Reader[S]) ReadEndArrayOrValueSeparator(first bool) (more bool, err error) {
	c, ok := r.peek()
	if !ok {
		return false, r.errEnd()
	}
	if first {
		if c == sym[S](']') {
			r.pos++
			return false, nil
		}
		if c == sym[S](',') {
			return false, r.errToken(c)
		}
		return true, nil
	}
	switch c {
	case sym[S](']'):
		r.pos++
		return false, nil
	case sym[S](','):
		r.pos++
		// A comma must be followed by a value, not the closing bracket; a
		// ']' right after the comma is rejected here as UnexpectedToken.
		c2, ok := r.peek()
		if !ok {
			return false, r.errEnd()
		}
		if c2 == sym[S](']') {
			return false, r.errToken(c2)
		}
		return true, nil
	default:
		return false, r.errToken(c)
	}
}

// ReadBeginObject consumes a leading '{'.
func (r *Reader[S]) ReadBeginObject() error {
	c, ok := r.peek()
	if !ok {
		return r.errEnd()
	}
	if c != sym[S]('{') {
		return r.errToken(c)
	}
	r.pos++
	return nil
}

// ReadEndObjectOrValueSeparator mirrors ReadEndArrayOrValueSeparator for
// object member lists: '}' ends the object, ',' separates two members, and
// the first call expects either '}' (empty object) or the lead '"' of a
// member's key, with no leading separator.
func (r *Reader[S]) ReadEndObjectOrValueSeparator(first bool) (more bool, err error) {
	c, ok := r.peek()
	if !ok {
		return false, r.errEnd()
	}
	if first {
		if c == sym[S]('}') {
			r.pos++
			return false, nil
		}
		if c == sym[S](',') {
			return false, r.errToken(c)
		}
		return true, nil
	}
	switch c {
	case sym[S]('}'):
		r.pos++
		return false, nil
	case sym[S](','):
		r.pos++
		c2, ok := r.peek()
		if !ok {
			return false, r.errEnd()
		}
		if c2 == sym[S]('}') {
			return false, r.errToken(c2)
		}
		return true, nil
	default:
		return false, r.errToken(c)
	}
}

// ReadKey reads an object member's quoted key, identical in wire shape to
// any JSON string.
func (r *Reader[S]) ReadKey() (string, error) { return r.ReadString() }

// ReadKeySeparator consumes the ':' between an object member's key and its
// value.
func (r *Reader[S]) ReadKeySeparator() error {
	c, ok := r.peek()
	if !ok {
		return r.errEnd()
	}
	if c != sym[S](':') {
		return r.errToken(c)
	}
	r.pos++
	return nil
}

// SkipValue consumes and discards exactly one JSON value at the cursor
// without constructing a typed representation of it, recursing into nested
// arrays and objects. It is used by the aggregate formatter to tolerate
// object keys the destination struct doesn't declare, the same way
// encoding/json silently ignores unrecognized fields by default.
func (r *Reader[S]) SkipValue() error {
	c, ok := r.peek()
	if !ok {
		return r.errEnd()
	}
	switch c {
	case sym[S]('{'):
		if err := r.ReadBeginObject(); err != nil {
			return err
		}
		first := true
		for {
			more, err := r.ReadEndObjectOrValueSeparator(first)
			if err != nil {
				return err
			}
			first = false
			if !more {
				break
			}
			if _, err := r.ReadKey(); err != nil {
				return err
			}
			if err := r.ReadKeySeparator(); err != nil {
				return err
			}
			if err := r.SkipValue(); err != nil {
				return err
			}
		}
		return nil
	case sym[S]('['):
		if err := r.ReadBeginArray(); err != nil {
			return err
		}
		first := true
		for {
			more, err := r.ReadEndArrayOrValueSeparator(first)
			if err != nil {
				return err
			}
			first = false
			if !more {
				break
			}
			if err := r.SkipValue(); err != nil {
				return err
			}
		}
		return nil
	case sym[S]('"'):
		_, err := r.ReadString()
		return err
	case sym[S]('t'), sym[S]('f'):
		_, err := r.ReadBool()
		return err
	case sym[S]('n'):
		if r.ReadIsNull() {
			return nil
		}
		return offsetErr(ErrInvalidLiteral, r.pos, "invalid literal")
	default:
		_, err := r.readLiteralSpan()
		return err
	}
}

// ReadIsNull peeks for the null literal. If present, it consumes it and
// returns true; otherwise it consumes nothing and returns false.
func (r *Reader[S]) ReadIsNull() bool {
	if !r.hasLiteralAt("null") {
		return false
	}
	r.pos += 4
	return true
}

func (r *Reader[S]) hasLiteralAt(lit string) bool {
	r.skipWS()
	if r.pos+len(lit) > len(r.view) {
		return false
	}
	for i := 0; i < len(lit); i++ {
		if r.view[r.pos+i] != sym[S](lit[i]) {
			return false
		}
	}
	return true
}

// ReadBool reads the literal true or false.
func (r *Reader[S]) ReadBool() (bool, error) {
	r.skipWS()
	if r.hasLiteralAt("true") {
		r.pos += 4
		return true, nil
	}
	if r.hasLiteralAt("false") {
		r.pos += 5
		return false, nil
	}
	if r.pos >= len(r.view) {
		return false, r.errEnd()
	}
	return false, offsetErr(ErrInvalidLiteral, r.pos, "expected true or false")
}

// literalClass reports whether c can start or continue a bare JSON literal
// (number, true, false, null) — used to find where a literal ends.
func literalClass[S Symbol](c S) bool {
	switch {
	case c >= sym[S]('0') && c <= sym[S]('9'):
		return true
	case c == sym[S]('-') || c == sym[S]('+') || c == sym[S]('.'):
		return true
	case c == sym[S]('e') || c == sym[S]('E'):
		return true
	case c >= sym[S]('a') && c <= sym[S]('z'):
		return true
	}
	return false
}

func (r *Reader[S]) readLiteralSpan() (string, error) {
	r.skipWS()
	start := r.pos
	for r.pos < len(r.view) && literalClass(r.view[r.pos]) {
		r.pos++
	}
	if r.pos == start {
		if r.pos >= len(r.view) {
			return "", r.errEnd()
		}
		return "", r.errToken(r.view[r.pos])
	}
	buf := make([]byte, r.pos-start)
	for i := start; i < r.pos; i++ {
		buf[i-start] = byte(r.view[i])
	}
	return string(buf), nil
}

// ReadInt64 reads a signed integer literal.
func (r *Reader[S]) ReadInt64() (int64, error) {
	return r.ReadIntN(64)
}

// ReadIntN reads a signed integer literal that must fit in bitSize bits,
// reporting OutOfRange otherwise.
func (r *Reader[S]) ReadIntN(bitSize int) (int64, error) {
	start := r.pos
	lit, err := r.readLiteralSpan()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(lit, 10, bitSize)
	if err != nil {
		return 0, offsetErr(ErrOutOfRange, start, "integer %q out of range", lit)
	}
	return v, nil
}

// ReadUint64 reads an unsigned integer literal.
func (r *Reader[S]) ReadUint64() (uint64, error) {
	return r.ReadUintN(64)
}

// ReadUintN reads an unsigned integer literal that must fit in bitSize bits,
// reporting OutOfRange otherwise.
func (r *Reader[S]) ReadUintN(bitSize int) (uint64, error) {
	start := r.pos
	lit, err := r.readLiteralSpan()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(lit, 10, bitSize)
	if err != nil {
		return 0, offsetErr(ErrOutOfRange, start, "integer %q out of range", lit)
	}
	return v, nil
}

// ReadFloat64 reads a floating point (or integer) literal.
func (r *Reader[S]) ReadFloat64() (float64, error) {
	start := r.pos
	lit, err := r.readLiteralSpan()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, offsetErr(ErrOutOfRange, start, "number %q out of range", lit)
	}
	return v, nil
}

// ReadString reads a JSON-quoted, escaped string and returns it as a Go
// (UTF-8) string regardless of the wire symbol type.
func (r *Reader[S]) ReadString() (string, error) {
	c, ok := r.peek()
	if !ok {
		return "", r.errEnd()
	}
	if c != sym[S]('"') {
		return "", r.errToken(c)
	}
	r.pos++

	var out []byte
	for {
		if r.pos >= len(r.view) {
			return "", r.errEnd()
		}
		c := r.view[r.pos]
		if c == sym[S]('"') {
			r.pos++
			return string(out), nil
		}
		if c == sym[S]('\\') {
			r.pos++
			if r.pos >= len(r.view) {
				return "", r.errEnd()
			}
			esc := r.view[r.pos]
			switch esc {
			case sym[S]('"'):
				out = append(out, '"')
				r.pos++
			case sym[S]('\\'):
				out = append(out, '\\')
				r.pos++
			case sym[S]('/'):
				out = append(out, '/')
				r.pos++
			case sym[S]('n'):
				out = append(out, '\n')
				r.pos++
			case sym[S]('t'):
				out = append(out, '\t')
				r.pos++
			case sym[S]('r'):
				out = append(out, '\r')
				r.pos++
			case sym[S]('b'):
				out = append(out, '\b')
				r.pos++
			case sym[S]('f'):
				out = append(out, '\f')
				r.pos++
			case sym[S]('u'):
				r.pos++
				v, err := r.readHex4()
				if err != nil {
					return "", err
				}
				if utf16IsHighSurrogate(v) && r.pos+1 < len(r.view) &&
					r.view[r.pos] == sym[S]('\\') && r.view[r.pos+1] == sym[S]('u') {
					save := r.pos
					r.pos += 2
					v2, err := r.readHex4()
					if err != nil {
						return "", err
					}
					if combined, ok := utf16Combine(v, v2); ok {
						out = appendUTF8Rune(out, combined)
						continue
					}
					r.pos = save
				}
				out = appendUTF8Rune(out, v)
			default:
				return "", offsetErr(ErrInvalidLiteral, r.pos, "invalid escape %q", rune(esc))
			}
			continue
		}
		rn, size, ok := r.codec.DecodeRune(r.view, r.pos)
		if !ok {
			return "", offsetErr(ErrInvalidLiteral, r.pos, "invalid encoding in string")
		}
		out = appendUTF8Rune(out, rn)
		r.pos += size
	}
}

func (r *Reader[S]) readHex4() (rune, error) {
	if r.pos+4 > len(r.view) {
		return 0, r.errEnd()
	}
	var v rune
	for i := 0; i < 4; i++ {
		c := r.view[r.pos+i]
		var d rune
		switch {
		case c >= sym[S]('0') && c <= sym[S]('9'):
			d = rune(c) - '0'
		case c >= sym[S]('a') && c <= sym[S]('f'):
			d = rune(c) - 'a' + 10
		case c >= sym[S]('A') && c <= sym[S]('F'):
			d = rune(c) - 'A' + 10
		default:
			return 0, offsetErr(ErrInvalidLiteral, r.pos+i, "invalid hex digit %q", rune(c))
		}
		v = v<<4 | d
	}
	r.pos += 4
	return v, nil
}
