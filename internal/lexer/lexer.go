package lexer

// NextToken consumes exactly one raw token. The token is always usable; a
// non-nil error describes a problem inside it (an unterminated literal, an
// empty digit run, an unhandled prefix) and is located relative to the start
// of the cursor's input.
func (c *Cursor) NextToken() (Token, error) {
	start := c.Offset()
	tok, kind, hasErr := c.scan()
	tok.Len = c.PosWithinToken()
	c.ResetPosWithinToken()
	if hasErr {
		return tok, newError(kind, start, start+int(tok.Len))
	}
	return tok, nil
}

func (c *Cursor) scan() (tok Token, errKind ErrorKind, hasErr bool) {
	first, ok := c.Bump()
	if !ok {
		return Token{Kind: EOF}, 0, false
	}

	switch {
	case first == '/' && c.First() == '/':
		c.lineComment()
		return Token{Kind: LINE_COMMENT}, 0, false
	case first == '/' && c.First() == '*':
		if !c.blockComment() {
			return Token{Kind: BLOCK_COMMENT}, ErrUnterminatedBlockComment, true
		}
		return Token{Kind: BLOCK_COMMENT}, 0, false
	case IsWhitespace(first):
		c.EatWhile(IsWhitespace)
		return Token{Kind: WHITESPACE}, 0, false
	case IsIDStart(first):
		return c.identOrUnhandledPrefix()
	case isDigit(first):
		return c.number(first)
	case first == '\'':
		tok = Token{Kind: LITERAL, Lit: LitChar}
		if !c.singleQuotedString() {
			return tok, ErrUnterminatedChar, true
		}
		return tok, 0, false
	case first == '"':
		tok = Token{Kind: LITERAL, Lit: LitStr}
		if !c.doubleQuotedString() {
			return tok, ErrUnterminatedString, true
		}
		return tok, 0, false
	}

	if kind, ok := LookupPunct(first); ok {
		return Token{Kind: kind}, 0, false
	}
	return Token{Kind: UNKNOWN}, 0, false
}

// lineComment consumes up to, not including, the next newline.
func (c *Cursor) lineComment() {
	c.Bump()
	c.EatWhile(func(r rune) bool { return r != '\n' })
}

// blockComment consumes a nested block comment. It reports false when the
// input ends before every opened comment is closed.
func (c *Cursor) blockComment() bool {
	c.Bump()
	depth := 1
	for {
		r, ok := c.Bump()
		if !ok {
			return false
		}
		switch {
		case r == '/' && c.First() == '*':
			c.Bump()
			depth++
		case r == '*' && c.First() == '/':
			c.Bump()
			depth--
			if depth == 0 {
				return true
			}
		}
	}
}

func (c *Cursor) identOrUnhandledPrefix() (Token, ErrorKind, bool) {
	c.EatWhile(IsIDContinue)

	switch next := c.First(); {
	case next == '#' || next == '"' || next == '\'':
		return Token{Kind: IDENT}, ErrUnhandledPrefix, true
	case isEmoji(next):
		c.EatWhile(func(r rune) bool { return IsIDContinue(r) || isEmoji(r) || r == '\u200d' })
		return Token{Kind: IDENT}, ErrEmojiIdent, true
	}
	return Token{Kind: IDENT}, 0, false
}

func (c *Cursor) number(firstDigit rune) (Token, ErrorKind, bool) {
	tok := Token{Kind: LITERAL, Lit: LitInt, Base: Decimal}

	if firstDigit == '0' {
		switch c.First() {
		case 'b':
			tok.Base = Binary
			c.Bump()
			if !c.eatDecimalDigits() {
				return tok, ErrEmptyInt, true
			}
		case 'o':
			tok.Base = Octal
			c.Bump()
			if !c.eatDecimalDigits() {
				return tok, ErrEmptyInt, true
			}
		case 'x':
			tok.Base = Hex
			c.Bump()
			if !c.eatHexDigits() {
				return tok, ErrEmptyInt, true
			}
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '_':
			c.eatDecimalDigits()
		case '.', 'e', 'E':
			// fraction or exponent follows
		default:
			// a lone 0
			return tok, 0, false
		}
	} else {
		c.eatDecimalDigits()
	}

	switch c.First() {
	case '.':
		// `1..2` is a range and `1.foo` a field access, not floats.
		if second := c.Second(); second == '.' || IsIDStart(second) {
			return tok, 0, false
		}
		c.Bump()
		tok.Lit = LitFloat
		if isDigit(c.First()) {
			c.eatDecimalDigits()
			if r := c.First(); r == 'e' || r == 'E' {
				c.Bump()
				if !c.eatFloatExponent() {
					return tok, ErrEmptyExponent, true
				}
			}
		}
	case 'e', 'E':
		c.Bump()
		tok.Lit = LitFloat
		if !c.eatFloatExponent() {
			return tok, ErrEmptyExponent, true
		}
	}
	return tok, 0, false
}

// singleQuotedString consumes the rest of a character literal after the
// opening quote. It stops without success at an unescaped newline that is
// not immediately followed by a quote, or at end of input.
func (c *Cursor) singleQuotedString() bool {
	if c.Second() == '\'' && c.First() != '\\' {
		c.Bump()
		c.Bump()
		return true
	}

	for {
		switch c.First() {
		case '\'':
			c.Bump()
			return true
		case '\n':
			if c.Second() != '\'' {
				return false
			}
			c.Bump()
		case '\\':
			c.Bump()
			c.Bump()
		default:
			if c.IsEOF() {
				return false
			}
			c.Bump()
		}
	}
}

// doubleQuotedString consumes the rest of a string literal after the
// opening quote.
func (c *Cursor) doubleQuotedString() bool {
	for {
		r, ok := c.Bump()
		if !ok {
			return false
		}
		switch r {
		case '"':
			return true
		case '\\':
			if next := c.First(); next == '\\' || next == '"' {
				c.Bump()
			}
		}
	}
}

// eatDecimalDigits consumes digits and `_` separators and reports whether
// at least one digit was seen.
func (c *Cursor) eatDecimalDigits() bool {
	hasDigits := false
	for {
		switch r := c.First(); {
		case r == '_':
			c.Bump()
		case isDigit(r):
			hasDigits = true
			c.Bump()
		default:
			return hasDigits
		}
	}
}

func (c *Cursor) eatHexDigits() bool {
	hasDigits := false
	for {
		switch r := c.First(); {
		case r == '_':
			c.Bump()
		case isHexDigit(r):
			hasDigits = true
			c.Bump()
		default:
			return hasDigits
		}
	}
}

func (c *Cursor) eatFloatExponent() bool {
	if r := c.First(); r == '-' || r == '+' {
		c.Bump()
	}
	return c.eatDecimalDigits()
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}

// isHexDigit checks if a rune is a hexadecimal digit
func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') ||
		(ch >= 'a' && ch <= 'f') ||
		(ch >= 'A' && ch <= 'F')
}

// Tokenize runs the cursor over input until EOF and returns every raw token,
// EOF included, together with the errors found along the way.
func Tokenize(input string) ([]Token, []*Error) {
	c := NewCursor(input)
	var toks []Token
	var errs []*Error
	for {
		tok, err := c.NextToken()
		if err != nil {
			errs = append(errs, err.(*Error))
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, errs
		}
	}
}
