package intexpr

import (
	"math"
	"unicode"
	"unicode/utf8"
)

// cursor is the scan position within an expression. The position only moves
// forward. It may move one past the end of the source when a grammar level
// consumes the end of input as a token.
type cursor struct {
	src string
	pos int
}

// end reports whether the cursor is at or past the end of the source.
func (c *cursor) end() bool {
	return c.pos >= len(c.src)
}

// peek returns the byte k bytes past the cursor, or 0 if that is beyond the
// end of the source.
func (c *cursor) peek(k int) byte {
	if c.pos+k >= len(c.src) {
		return 0
	}
	return c.src[c.pos+k]
}

// skip advances the cursor past one character. At the end of input, the
// cursor moves past the end.
func (c *cursor) skip() {
	if c.end() {
		c.pos = len(c.src) + 1
		return
	}
	if c.src[c.pos] < utf8.RuneSelf {
		c.pos++
		return
	}
	_, sz := utf8.DecodeRuneInString(c.src[c.pos:])
	c.pos += sz
}

// skipspace advances the cursor past any whitespace.
func (c *cursor) skipspace() {
	for !c.end() {
		r, sz := rune(c.src[c.pos]), 1
		if r >= utf8.RuneSelf {
			r, sz = utf8.DecodeRuneInString(c.src[c.pos:])
		}
		if !unicode.IsSpace(r) {
			return
		}
		c.pos += sz
	}
}

// col is the 1-based rune column of the cursor.
func (c *cursor) col() int {
	if c.pos > len(c.src) {
		return utf8.RuneCountInString(c.src) + 1
	}
	return utf8.RuneCountInString(c.src[:c.pos]) + 1
}

// rest is the unconsumed source text.
func (c *cursor) rest() string {
	if c.end() {
		return ""
	}
	return c.src[c.pos:]
}

// scanNum scans the longest numeric literal at the cursor. The cursor must be
// at a decimal digit.
func (c *cursor) scanNum() uint64 {
	v, n := ParseUint(c.src[c.pos:])
	if n == 0 {
		panic("intexpr: scanNum at non-digit " + c.rest())
	}
	c.pos += n
	return v
}

// ParseUint scans the longest unsigned integer literal at the start of s and
// returns its value and the number of bytes it occupies. The base follows C
// conventions: a 0x or 0X prefix followed by a hex digit selects base 16, a
// leading 0 selects base 8, and anything else is decimal. Literals too large
// for a uint64 saturate to math.MaxUint64. If s does not start with a decimal
// digit, the result is 0, 0.
func ParseUint(s string) (uint64, int) {
	if len(s) == 0 || !isdigit(s[0]) {
		return 0, 0
	}
	base, i := uint64(10), 0
	if s[0] == '0' {
		base, i = 8, 1
		if len(s) > 2 && (s[1] == 'x' || s[1] == 'X') && digitval(s[2]) < 16 {
			base, i = 16, 2
		}
	}
	var v uint64
	sat := false
	for ; i < len(s); i++ {
		d := uint64(digitval(s[i]))
		if d >= base {
			break
		}
		if v > (math.MaxUint64-d)/base {
			sat = true
		}
		v = v*base + d
	}
	if sat {
		return math.MaxUint64, i
	}
	return v, i
}

func isdigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func isalpha(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

// digitval is the value of b as a digit in base 36, or 36 if b is not a digit.
func digitval(b byte) int {
	switch {
	case '0' <= b && b <= '9':
		return int(b - '0')
	case 'a' <= b && b <= 'z':
		return int(b-'a') + 10
	case 'A' <= b && b <= 'Z':
		return int(b-'A') + 10
	default:
		return 36
	}
}
