package lexer

import "strings"

// StripShebang reports the byte length of a leading `#!` line. Input that
// starts with `#![`, possibly with whitespace or comments between `#!` and
// `[`, is an inner attribute and not a shebang.
func StripShebang(input string) (int, bool) {
	rest, ok := strings.CutPrefix(input, "#!")
	if !ok {
		return 0, false
	}

	c := NewCursor(rest)
	for {
		tok, _ := c.NextToken()
		if tok.Kind.IsTrivia() {
			continue
		}
		if tok.Kind == LBRACKET {
			return 0, false
		}
		break
	}

	if i := strings.IndexByte(input, '\n'); i >= 0 {
		return i, true
	}
	return len(input), true
}
