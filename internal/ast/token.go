// Package ast defines the token-level syntax tree produced by the front end:
// compound operator tokens, delimited groups and the spacing between them.
package ast

import (
	"fmt"

	"github.com/Emmmmllll/Slang/internal/source"
)

// Kind identifies the syntactic class of a Token. Kinds that carry a payload
// (BinOp, BinOpEq, OpenDelim, CloseDelim, Literal, Comment, Ident) keep it in
// the corresponding Token field.
type Kind uint8

const (
	// Expression operators.
	Eq      Kind = iota // =
	Lt                  // <
	Le                  // <=
	EqEq                // ==
	Ne                  // !=
	Ge                  // >=
	Gt                  // >
	AndAnd              // &&
	OrOr                // ||
	Not                 // !
	Tilde               // ~
	BinOp               // + - * / % ^ & | << >>
	BinOpEq             // += -= *= /= %= ^= &= |= <<= >>=

	// Structural symbols.
	At          // @
	Dot         // .
	DotDot      // ..
	DotDotDot   // ...
	DotDotEq    // ..=
	Comma       // ,
	Semi        // ;
	Colon       // :
	DoubleColon // ::
	RArrow      // ->
	LArrow      // <-
	FatArrow    // =>
	Pound       // #
	Dollar      // $
	Question    // ?
	SingleQuote // '

	OpenDelim
	CloseDelim
	Literal
	Comment
	Ident
	EOF

	numKinds
)

var kindNames = [numKinds]string{
	Eq:          "Eq",
	Lt:          "Lt",
	Le:          "Le",
	EqEq:        "EqEq",
	Ne:          "Ne",
	Ge:          "Ge",
	Gt:          "Gt",
	AndAnd:      "AndAnd",
	OrOr:        "OrOr",
	Not:         "Not",
	Tilde:       "Tilde",
	BinOp:       "BinOp",
	BinOpEq:     "BinOpEq",
	At:          "At",
	Dot:         "Dot",
	DotDot:      "DotDot",
	DotDotDot:   "DotDotDot",
	DotDotEq:    "DotDotEq",
	Comma:       "Comma",
	Semi:        "Semi",
	Colon:       "Colon",
	DoubleColon: "DoubleColon",
	RArrow:      "RArrow",
	LArrow:      "LArrow",
	FatArrow:    "FatArrow",
	Pound:       "Pound",
	Dollar:      "Dollar",
	Question:    "Question",
	SingleQuote: "SingleQuote",
	OpenDelim:   "OpenDelim",
	CloseDelim:  "CloseDelim",
	Literal:     "Literal",
	Comment:     "Comment",
	Ident:       "Ident",
	EOF:         "EOF",
}

var kindSpellings = [numKinds]string{
	Eq:          "=",
	Lt:          "<",
	Le:          "<=",
	EqEq:        "==",
	Ne:          "!=",
	Ge:          ">=",
	Gt:          ">",
	AndAnd:      "&&",
	OrOr:        "||",
	Not:         "!",
	Tilde:       "~",
	At:          "@",
	Dot:         ".",
	DotDot:      "..",
	DotDotDot:   "...",
	DotDotEq:    "..=",
	Comma:       ",",
	Semi:        ";",
	Colon:       ":",
	DoubleColon: "::",
	RArrow:      "->",
	LArrow:      "<-",
	FatArrow:    "=>",
	Pound:       "#",
	Dollar:      "$",
	Question:    "?",
	SingleQuote: "'",
}

// String returns the name of the kind, e.g. "DotDot".
func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Spelling returns the fixed source text of a payload-free operator or
// symbol kind, or "" for kinds whose text depends on the token.
func (k Kind) Spelling() string {
	if k < numKinds {
		return kindSpellings[k]
	}
	return ""
}

// BinOpToken is the operator wrapped by BinOp and BinOpEq tokens.
type BinOpToken uint8

const (
	Plus BinOpToken = iota
	Minus
	Star
	Slash
	Percent
	Caret
	And
	Or
	Shl
	Shr

	numBinOps
)

var binOpSpellings = [numBinOps]string{
	Plus:    "+",
	Minus:   "-",
	Star:    "*",
	Slash:   "/",
	Percent: "%",
	Caret:   "^",
	And:     "&",
	Or:      "|",
	Shl:     "<<",
	Shr:     ">>",
}

func (op BinOpToken) String() string {
	if op < numBinOps {
		return binOpSpellings[op]
	}
	return fmt.Sprintf("BinOpToken(%d)", uint8(op))
}

// Delimiter is the kind of bracket that opens or closes a group.
type Delimiter uint8

const (
	Parenthesis Delimiter = iota // ( ... )
	Brace                        // { ... }
	Bracket                      // [ ... ]
	Invisible                    // synthesized grouping with no source text
)

// Open returns the opening spelling of d; it is empty for Invisible.
func (d Delimiter) Open() string {
	switch d {
	case Parenthesis:
		return "("
	case Brace:
		return "{"
	case Bracket:
		return "["
	}
	return ""
}

// Close returns the closing spelling of d; it is empty for Invisible.
func (d Delimiter) Close() string {
	switch d {
	case Parenthesis:
		return ")"
	case Brace:
		return "}"
	case Bracket:
		return "]"
	}
	return ""
}

func (d Delimiter) String() string {
	switch d {
	case Parenthesis:
		return "Parenthesis"
	case Brace:
		return "Brace"
	case Bracket:
		return "Bracket"
	case Invisible:
		return "Invisible"
	}
	return fmt.Sprintf("Delimiter(%d)", uint8(d))
}

// LitKind classifies a literal token. LitErr marks a literal that failed
// validation; its symbol then holds the complete source text.
type LitKind uint8

const (
	LitChar LitKind = iota
	LitStr
	LitFloat
	LitInt
	LitErr
)

func (k LitKind) String() string {
	switch k {
	case LitChar:
		return "Char"
	case LitStr:
		return "Str"
	case LitFloat:
		return "Float"
	case LitInt:
		return "Int"
	case LitErr:
		return "Err"
	}
	return fmt.Sprintf("LitKind(%d)", uint8(k))
}

// Lit is the payload of a Literal token. For valid char and string literals
// Symbol excludes the quotes.
type Lit struct {
	Kind   LitKind
	Symbol source.Symbol
}

// CommentType distinguishes line comments from block comments.
type CommentType uint8

const (
	LineComment CommentType = iota
	BlockComment
)

func (c CommentType) String() string {
	if c == BlockComment {
		return "Block"
	}
	return "Line"
}

// Token is a single lexical token with its source span. Tokens are small
// comparable values; only the payload field matching Kind is set.
type Token struct {
	Kind    Kind
	BinOp   BinOpToken    // BinOp, BinOpEq
	Delim   Delimiter     // OpenDelim, CloseDelim
	Lit     Lit           // Literal
	Comment CommentType   // Comment
	Ident   source.Symbol // Ident
	Span    source.Span
}

// NewToken returns a payload-free token of the given kind.
func NewToken(kind Kind, span source.Span) Token {
	return Token{Kind: kind, Span: span}
}

// NewBinOp returns a binary operator token such as `+`.
func NewBinOp(op BinOpToken, span source.Span) Token {
	return Token{Kind: BinOp, BinOp: op, Span: span}
}

// NewBinOpEq returns a compound assignment token such as `+=`.
func NewBinOpEq(op BinOpToken, span source.Span) Token {
	return Token{Kind: BinOpEq, BinOp: op, Span: span}
}

// NewOpenDelim returns an opening delimiter token.
func NewOpenDelim(d Delimiter, span source.Span) Token {
	return Token{Kind: OpenDelim, Delim: d, Span: span}
}

// NewCloseDelim returns a closing delimiter token.
func NewCloseDelim(d Delimiter, span source.Span) Token {
	return Token{Kind: CloseDelim, Delim: d, Span: span}
}

// NewLit returns a literal token.
func NewLit(kind LitKind, sym source.Symbol, span source.Span) Token {
	return Token{Kind: Literal, Lit: Lit{Kind: kind, Symbol: sym}, Span: span}
}

// NewIdent returns an identifier token carrying an interned name.
func NewIdent(sym source.Symbol, span source.Span) Token {
	return Token{Kind: Ident, Ident: sym, Span: span}
}

// NewComment returns a comment token.
func NewComment(typ CommentType, span source.Span) Token {
	return Token{Kind: Comment, Comment: typ, Span: span}
}

// IsPunct reports whether t is an operator or structural symbol, i.e. a
// token that a following punctuation token may glue onto.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case OpenDelim, CloseDelim, Literal, Comment, Ident, EOF:
		return false
	}
	return t.Kind < numKinds
}

// IsBinOp reports whether t is the binary operator op.
func (t Token) IsBinOp(op BinOpToken) bool {
	return t.Kind == BinOp && t.BinOp == op
}

// SameKind reports whether t and other have the same kind and payload,
// ignoring their spans.
func (t Token) SameKind(other Token) bool {
	other.Span = t.Span
	return t == other
}

// String returns the source spelling of t. Identifiers and literals are
// resolved through the default interner.
func (t Token) String() string {
	return t.Text(source.DefaultInterner())
}

// Text is String with an explicit interner; nil means the default one.
func (t Token) Text(in *source.Interner) string {
	if in == nil {
		in = source.DefaultInterner()
	}
	switch t.Kind {
	case BinOp:
		return t.BinOp.String()
	case BinOpEq:
		return t.BinOp.String() + "="
	case OpenDelim:
		return t.Delim.Open()
	case CloseDelim:
		return t.Delim.Close()
	case Literal:
		sym := in.Lookup(t.Lit.Symbol)
		switch t.Lit.Kind {
		case LitChar:
			return "'" + sym + "'"
		case LitStr:
			return `"` + sym + `"`
		}
		return sym
	case Comment:
		if t.Comment == BlockComment {
			return "/**/"
		}
		return "//"
	case Ident:
		return in.Lookup(t.Ident)
	case EOF:
		return ""
	}
	return t.Kind.Spelling()
}
