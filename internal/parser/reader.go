package parser

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/Emmmmllll/Slang/internal/ast"
	"github.com/Emmmmllll/Slang/internal/lexer"
	"github.com/Emmmmllll/Slang/internal/source"
)

// StringReader turns raw tokens from a lexer.Cursor into ast tokens with
// absolute spans. Whitespace is dropped but remembered, literals are
// validated and identifiers are normalized and interned.
//
// Invariants:
//   - pos is the absolute position of the cursor; src[0] sits at startPos.
//   - Diagnostics are reported as they are found and never stop the reader.
//     Only EOF ends the token sequence.
type StringReader struct {
	cursor   *lexer.Cursor
	src      string
	pos      source.Pos
	startPos source.Pos

	interner *source.Interner
	rep      *reporter
}

func newStringReader(src string, startPos source.Pos, interner *source.Interner, rep *reporter) *StringReader {
	return &StringReader{
		cursor:   lexer.NewCursor(src),
		src:      src,
		pos:      startPos,
		startPos: startPos,
		interner: interner,
		rep:      rep,
	}
}

// NextToken returns the next ast token and whether whitespace, or a skipped
// unknown character, came before it.
func (r *StringReader) NextToken() (ast.Token, bool) {
	precededByWhitespace := false
	for {
		raw, err := r.cursor.NextToken()
		start := r.pos
		r.pos += source.Pos(raw.Len)
		span := source.NewSpan(start, r.pos)

		var lexErr *lexer.Error
		if err != nil {
			lexErr = err.(*lexer.Error).Rebase(r.startPos)
			r.rep.lexError(lexErr)
		}

		switch raw.Kind {
		case lexer.WHITESPACE:
			precededByWhitespace = true
			continue
		case lexer.LINE_COMMENT:
			return ast.NewComment(ast.LineComment, span), precededByWhitespace
		case lexer.BLOCK_COMMENT:
			return ast.NewComment(ast.BlockComment, span), precededByWhitespace
		case lexer.IDENT:
			return ast.NewIdent(r.ident(start), span), precededByWhitespace
		case lexer.LITERAL:
			kind, sym := r.literal(start, r.pos, raw, lexErr)
			return ast.NewLit(kind, sym, span), precededByWhitespace
		case lexer.EOF:
			return ast.NewToken(ast.EOF, span), precededByWhitespace
		}

		if tok, ok := punctToken(raw.Kind, span); ok {
			return tok, precededByWhitespace
		}

		// UNKNOWN: report, drop, and keep the neighbours apart.
		e := lexer.NewError(lexer.ErrUnknownChar, span)
		e.Message = fmt.Sprintf("unknown start of token: %q", r.strFromTo(start, r.pos))
		r.rep.lexError(e)
		precededByWhitespace = true
	}
}

func punctToken(kind lexer.TokenKind, span source.Span) (ast.Token, bool) {
	switch kind {
	case lexer.SEMICOLON:
		return ast.NewToken(ast.Semi, span), true
	case lexer.COMMA:
		return ast.NewToken(ast.Comma, span), true
	case lexer.DOT:
		return ast.NewToken(ast.Dot, span), true
	case lexer.LPAREN:
		return ast.NewOpenDelim(ast.Parenthesis, span), true
	case lexer.RPAREN:
		return ast.NewCloseDelim(ast.Parenthesis, span), true
	case lexer.LBRACE:
		return ast.NewOpenDelim(ast.Brace, span), true
	case lexer.RBRACE:
		return ast.NewCloseDelim(ast.Brace, span), true
	case lexer.LBRACKET:
		return ast.NewOpenDelim(ast.Bracket, span), true
	case lexer.RBRACKET:
		return ast.NewCloseDelim(ast.Bracket, span), true
	case lexer.AT:
		return ast.NewToken(ast.At, span), true
	case lexer.POUND:
		return ast.NewToken(ast.Pound, span), true
	case lexer.TILDE:
		return ast.NewToken(ast.Tilde, span), true
	case lexer.QUESTION:
		return ast.NewToken(ast.Question, span), true
	case lexer.COLON:
		return ast.NewToken(ast.Colon, span), true
	case lexer.DOLLAR:
		return ast.NewToken(ast.Dollar, span), true
	case lexer.ASSIGN:
		return ast.NewToken(ast.Eq, span), true
	case lexer.BANG:
		return ast.NewToken(ast.Not, span), true
	case lexer.LT:
		return ast.NewToken(ast.Lt, span), true
	case lexer.GT:
		return ast.NewToken(ast.Gt, span), true
	case lexer.MINUS:
		return ast.NewBinOp(ast.Minus, span), true
	case lexer.AMPERSAND:
		return ast.NewBinOp(ast.And, span), true
	case lexer.PIPE:
		return ast.NewBinOp(ast.Or, span), true
	case lexer.PLUS:
		return ast.NewBinOp(ast.Plus, span), true
	case lexer.ASTERISK:
		return ast.NewBinOp(ast.Star, span), true
	case lexer.SLASH:
		return ast.NewBinOp(ast.Slash, span), true
	case lexer.CARET:
		return ast.NewBinOp(ast.Caret, span), true
	case lexer.PERCENT:
		return ast.NewBinOp(ast.Percent, span), true
	}
	return ast.Token{}, false
}

func (r *StringReader) srcIndex(p source.Pos) int { return int(p - r.startPos) }

func (r *StringReader) strFromTo(start, end source.Pos) string {
	return r.src[r.srcIndex(start):r.srcIndex(end)]
}

func (r *StringReader) symbolFromTo(start, end source.Pos) source.Symbol {
	return r.interner.Intern(r.strFromTo(start, end))
}

// ident interns the identifier ending at the reader's position, in NFC.
func (r *StringReader) ident(start source.Pos) source.Symbol {
	s := r.strFromTo(start, r.pos)
	if norm.NFC.QuickSpanString(s) != len(s) {
		s = norm.NFC.String(s)
	}
	return r.interner.Intern(s)
}

// literal validates the literal in [start, end) and returns its kind and
// symbol. A literal the raw lexer already flagged as malformed is an error
// literal holding its full text.
func (r *StringReader) literal(start, end source.Pos, raw lexer.Token, lexErr *lexer.Error) (ast.LitKind, source.Symbol) {
	if lexErr != nil && lexErr.Kind.Structural() {
		return ast.LitErr, r.symbolFromTo(start, end)
	}

	switch raw.Lit {
	case lexer.LitChar:
		return r.quoted(ast.LitChar, lexer.ModeChar, start, end)
	case lexer.LitStr:
		return r.quoted(ast.LitStr, lexer.ModeStr, start, end)
	case lexer.LitInt:
		kind := ast.LitInt
		if raw.Base == lexer.Binary || raw.Base == lexer.Octal {
			if !r.checkDigits(start+2, end, raw.Base) {
				kind = ast.LitErr
			}
		}
		return kind, r.symbolFromTo(start, end)
	case lexer.LitFloat:
		kind := ast.LitFloat
		if raw.Base != lexer.Decimal {
			e := lexer.NewError(lexer.ErrUnsupportedFloatBase, source.NewSpan(start, end))
			e.Message = fmt.Sprintf("%s float literal is not supported", baseName(raw.Base))
			r.rep.lexError(e)
			kind = ast.LitErr
		}
		return kind, r.symbolFromTo(start, end)
	}
	return ast.LitErr, r.symbolFromTo(start, end)
}

// checkDigits reports every digit in [start, end) that is not valid in base.
func (r *StringReader) checkDigits(start, end source.Pos, base lexer.Base) bool {
	ok := true
	for i, c := range r.strFromTo(start, end) {
		if c == '_' || digitValue(c) < int(base) {
			continue
		}
		lo := start + source.PosFromInt(i)
		e := lexer.NewError(lexer.ErrInvalidDigit, source.NewSpan(lo, lo+source.Pos(len(string(c)))))
		e.Message = fmt.Sprintf("invalid digit for a base %d literal", base)
		r.rep.lexError(e)
		ok = false
	}
	return ok
}

func digitValue(c rune) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	}
	return 1 << 8
}

func baseName(b lexer.Base) string {
	switch b {
	case lexer.Binary:
		return "binary"
	case lexer.Octal:
		return "octal"
	case lexer.Hex:
		return "hexadecimal"
	}
	return "decimal"
}

// quoted validates the inner text of a char or string literal. Escape
// errors are reported; a fatal one turns the literal into an error literal.
func (r *StringReader) quoted(kind ast.LitKind, mode lexer.Mode, start, end source.Pos) (ast.LitKind, source.Symbol) {
	contentStart, contentEnd := start+1, end-1
	content := r.strFromTo(contentStart, contentEnd)

	lexer.Unescape(content, mode, func(lo, hi int, _ rune, err error) {
		if err == nil {
			return
		}
		esc := err.(lexer.EscapeError)
		span := source.NewSpan(contentStart+source.PosFromInt(lo), contentStart+source.PosFromInt(hi))
		r.rep.lexError(lexer.NewEscapeError(esc, span))
		if esc.IsFatal() {
			kind = ast.LitErr
		}
	})

	if kind == ast.LitErr {
		return kind, r.symbolFromTo(start, end)
	}
	return kind, r.interner.Intern(content)
}
