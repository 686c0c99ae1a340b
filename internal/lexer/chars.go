package lexer

import (
	"unicode"

	"github.com/smasher164/xid"
)

// IsWhitespace reports whether r is Pattern_White_Space. The set is frozen
// by Unicode, so it does not drift with the host's Unicode tables.
func IsWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u0085',           // NEXT LINE
		'\u200E', '\u200F', // LEFT-TO-RIGHT MARK, RIGHT-TO-LEFT MARK
		'\u2028', '\u2029': // LINE SEPARATOR, PARAGRAPH SEPARATOR
		return true
	}
	return false
}

// IsIDStart reports whether r may begin an identifier: XID_Start or '_'.
func IsIDStart(r rune) bool {
	if r < utf8RuneSelf {
		return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
	}
	return xid.Start(r)
}

// IsIDContinue reports whether r may continue an identifier (XID_Continue).
func IsIDContinue(r rune) bool {
	if r < utf8RuneSelf {
		return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
	}
	return xid.Continue(r)
}

const utf8RuneSelf = 0x80

// isEmoji reports whether r carries the Unicode Emoji property outside ASCII.
func isEmoji(r rune) bool {
	return r >= utf8RuneSelf && unicode.Is(emojiTable, r)
}

// emojiTable approximates Emoji=Yes above U+007F: the pictographic blocks
// are taken whole, the scattered BMP symbols individually.
var emojiTable = &unicode.RangeTable{
	LatinOffset: 1,
	R16: []unicode.Range16{
		{Lo: 0x00a9, Hi: 0x00ae, Stride: 5},
		{Lo: 0x203c, Hi: 0x2049, Stride: 13},
		{Lo: 0x2122, Hi: 0x2139, Stride: 23},
		{Lo: 0x2194, Hi: 0x2199, Stride: 1},
		{Lo: 0x21a9, Hi: 0x21aa, Stride: 1},
		{Lo: 0x231a, Hi: 0x231b, Stride: 1},
		{Lo: 0x2328, Hi: 0x23cf, Stride: 167},
		{Lo: 0x23e9, Hi: 0x23f3, Stride: 1},
		{Lo: 0x23f8, Hi: 0x23fa, Stride: 1},
		{Lo: 0x24c2, Hi: 0x24c2, Stride: 1},
		{Lo: 0x25aa, Hi: 0x25ab, Stride: 1},
		{Lo: 0x25b6, Hi: 0x25c0, Stride: 10},
		{Lo: 0x25fb, Hi: 0x25fe, Stride: 1},
		{Lo: 0x2600, Hi: 0x27bf, Stride: 1},
		{Lo: 0x2934, Hi: 0x2935, Stride: 1},
		{Lo: 0x2b05, Hi: 0x2b07, Stride: 1},
		{Lo: 0x2b1b, Hi: 0x2b1c, Stride: 1},
		{Lo: 0x2b50, Hi: 0x2b55, Stride: 5},
		{Lo: 0x3030, Hi: 0x303d, Stride: 13},
		{Lo: 0x3297, Hi: 0x3299, Stride: 2},
	},
	R32: []unicode.Range32{
		{Lo: 0x1f004, Hi: 0x1f0cf, Stride: 203},
		{Lo: 0x1f170, Hi: 0x1f251, Stride: 1},
		{Lo: 0x1f300, Hi: 0x1f64f, Stride: 1},
		{Lo: 0x1f680, Hi: 0x1f6ff, Stride: 1},
		{Lo: 0x1f7e0, Hi: 0x1f7f0, Stride: 1},
		{Lo: 0x1f90c, Hi: 0x1f9ff, Stride: 1},
		{Lo: 0x1fa70, Hi: 0x1faff, Stride: 1},
	},
}
