package lexer

// TokenKind classifies a raw token. Raw tokens carry no text, only a kind
// and a length; the reader slices the source to recover it.
type TokenKind string

// Base is the radix of a numeric literal.
type Base uint8

const (
	Binary  Base = 2
	Octal   Base = 8
	Decimal Base = 10
	Hex     Base = 16
)

// LiteralKind is the subkind of a LITERAL token.
type LiteralKind uint8

const (
	LitNone LiteralKind = iota
	LitInt
	LitFloat
	LitChar
	LitStr
)

func (k LiteralKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitChar:
		return "char"
	case LitStr:
		return "string"
	default:
		return "none"
	}
}

// Token is one raw lexeme.
type Token struct {
	Kind TokenKind
	Lit  LiteralKind // set for LITERAL
	Base Base        // set for LitInt and LitFloat
	Len  uint32
}

// Token kind constants
const (
	// Special tokens
	UNKNOWN TokenKind = "UNKNOWN"
	EOF     TokenKind = "EOF"

	// Trivia
	LINE_COMMENT  TokenKind = "LINE_COMMENT"  // // ...
	BLOCK_COMMENT TokenKind = "BLOCK_COMMENT" // /* ... */
	WHITESPACE    TokenKind = "WHITESPACE"

	// Identifiers and literals
	IDENT   TokenKind = "IDENT"
	LITERAL TokenKind = "LITERAL"

	// One-character punctuation
	SEMICOLON TokenKind = ";"
	COMMA     TokenKind = ","
	DOT       TokenKind = "."
	LPAREN    TokenKind = "("
	RPAREN    TokenKind = ")"
	LBRACE    TokenKind = "{"
	RBRACE    TokenKind = "}"
	LBRACKET  TokenKind = "["
	RBRACKET  TokenKind = "]"
	AT        TokenKind = "@"
	POUND     TokenKind = "#"
	TILDE     TokenKind = "~"
	QUESTION  TokenKind = "?"
	COLON     TokenKind = ":"
	DOLLAR    TokenKind = "$"
	ASSIGN    TokenKind = "="
	BANG      TokenKind = "!"
	LT        TokenKind = "<"
	GT        TokenKind = ">"
	MINUS     TokenKind = "-"
	AMPERSAND TokenKind = "&"
	PIPE      TokenKind = "|"
	PLUS      TokenKind = "+"
	ASTERISK  TokenKind = "*"
	SLASH     TokenKind = "/"
	CARET     TokenKind = "^"
	PERCENT   TokenKind = "%"
)

var punctuation = map[rune]TokenKind{
	';': SEMICOLON,
	',': COMMA,
	'.': DOT,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
	'@': AT,
	'#': POUND,
	'~': TILDE,
	'?': QUESTION,
	':': COLON,
	'$': DOLLAR,
	'=': ASSIGN,
	'!': BANG,
	'<': LT,
	'>': GT,
	'-': MINUS,
	'&': AMPERSAND,
	'|': PIPE,
	'+': PLUS,
	'*': ASTERISK,
	'/': SLASH,
	'^': CARET,
	'%': PERCENT,
}

// LookupPunct returns the one-character token kind for r.
func LookupPunct(r rune) (TokenKind, bool) {
	k, ok := punctuation[r]
	return k, ok
}

// IsTrivia reports whether k is whitespace or a comment.
func (k TokenKind) IsTrivia() bool {
	return k == WHITESPACE || k == LINE_COMMENT || k == BLOCK_COMMENT
}
