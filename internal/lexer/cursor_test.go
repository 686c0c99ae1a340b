package lexer

import "testing"

func TestCursorPeekAndBump(t *testing.T) {
	c := NewCursor("aé$")

	if c.First() != 'a' || c.Second() != 'é' || c.Third() != '$' {
		t.Fatalf("unexpected lookahead %q %q %q", c.First(), c.Second(), c.Third())
	}

	r, ok := c.Bump()
	if !ok || r != 'a' {
		t.Fatalf("expected 'a', got %q (ok=%v)", r, ok)
	}
	if c.Third() != EOFChar {
		t.Fatalf("expected EOF char past the end, got %q", c.Third())
	}

	c.Bump()
	if got := c.PosWithinToken(); got != 3 {
		t.Fatalf("expected 3 bytes consumed, got %d", got)
	}
	c.ResetPosWithinToken()
	if got := c.PosWithinToken(); got != 0 {
		t.Fatalf("expected 0 after reset, got %d", got)
	}

	c.Bump()
	if !c.IsEOF() {
		t.Fatalf("expected EOF")
	}
	if _, ok := c.Bump(); ok {
		t.Fatalf("expected Bump to fail at EOF")
	}
}

func TestCursorEatWhile(t *testing.T) {
	c := NewCursor("aaab")
	c.EatWhile(func(r rune) bool { return r == 'a' })
	if c.Rest() != "b" {
		t.Fatalf("expected rest %q, got %q", "b", c.Rest())
	}

	// A NUL byte in the input is not the end of input.
	c = NewCursor("\x00\x00x")
	c.EatWhile(func(r rune) bool { return r == EOFChar })
	if c.Rest() != "x" {
		t.Fatalf("expected rest %q, got %q", "x", c.Rest())
	}
}
