package lexer

import "unicode/utf8"

// EOFChar is returned by the peek methods past the end of input. A literal
// NUL in the source is told apart from the end with IsEOF.
const EOFChar rune = 0

// Cursor is a forward-only scanner over a UTF-8 string. It offers up to three
// characters of lookahead and counts the bytes consumed since the last reset.
// It never allocates.
type Cursor struct {
	src        string
	pos        int // byte offset of the next unread character
	tokenStart int // byte offset of the current token
}

// NewCursor returns a cursor positioned at the start of input.
func NewCursor(input string) *Cursor {
	return &Cursor{src: input}
}

// Rest returns the unread part of the input.
func (c *Cursor) Rest() string { return c.src[c.pos:] }

// Offset returns the byte offset of the next unread character.
func (c *Cursor) Offset() int { return c.pos }

// IsEOF reports whether all input has been consumed.
func (c *Cursor) IsEOF() bool { return c.pos >= len(c.src) }

// Bump consumes one character. ok is false at the end of input.
func (c *Cursor) Bump() (r rune, ok bool) {
	if c.pos >= len(c.src) {
		return EOFChar, false
	}
	r, size := utf8.DecodeRuneInString(c.src[c.pos:])
	c.pos += size
	return r, true
}

// First peeks at the next character without consuming it.
func (c *Cursor) First() rune { return c.nth(0) }

// Second peeks one character past First.
func (c *Cursor) Second() rune { return c.nth(1) }

// Third peeks two characters past First.
func (c *Cursor) Third() rune { return c.nth(2) }

func (c *Cursor) nth(n int) rune {
	off := c.pos
	for {
		if off >= len(c.src) {
			return EOFChar
		}
		r, size := utf8.DecodeRuneInString(c.src[off:])
		if n == 0 {
			return r
		}
		off += size
		n--
	}
}

// EatWhile consumes characters while pred holds and input remains.
func (c *Cursor) EatWhile(pred func(rune) bool) {
	for !c.IsEOF() && pred(c.First()) {
		c.Bump()
	}
}

// PosWithinToken returns the number of bytes consumed since the last reset.
func (c *Cursor) PosWithinToken() uint32 { return uint32(c.pos - c.tokenStart) }

// ResetPosWithinToken marks the current position as the start of a token.
func (c *Cursor) ResetPosWithinToken() { c.tokenStart = c.pos }

// TokenStart returns the byte offset where the current token began.
func (c *Cursor) TokenStart() int { return c.tokenStart }
