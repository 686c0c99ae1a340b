package lexer

import (
	"fmt"

	"github.com/Emmmmllll/Slang/internal/diag"
	"github.com/Emmmmllll/Slang/internal/source"
)

type ErrorKind int

const (
	ErrUnterminatedBlockComment ErrorKind = iota
	ErrUnterminatedChar
	ErrUnterminatedString
	ErrEmptyInt
	ErrEmptyExponent
	ErrUnhandledPrefix
	ErrEmojiIdent
	ErrUnknownChar
	ErrInvalidDigit
	ErrUnsupportedFloatBase
	ErrEscape
)

var errorMessages = map[ErrorKind]string{
	ErrUnterminatedBlockComment: "unterminated block comment",
	ErrUnterminatedChar:         "unterminated character literal",
	ErrUnterminatedString:       "unterminated string literal",
	ErrEmptyInt:                 "no valid digits found for number",
	ErrEmptyExponent:            "expected at least one digit in exponent",
	ErrUnhandledPrefix:          "prefix is unknown",
	ErrEmojiIdent:               "identifiers cannot contain emoji",
	ErrUnknownChar:              "unknown start of token",
	ErrInvalidDigit:             "invalid digit for the literal's base",
	ErrUnsupportedFloatBase:     "float literals only support decimal notation",
	ErrEscape:                   "invalid escape in literal",
}

func (k ErrorKind) String() string {
	if msg, ok := errorMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnterminatedBlockComment:
		return diag.CodeLexerUnterminatedBlockComment
	case ErrUnterminatedChar:
		return diag.CodeLexerUnterminatedChar
	case ErrUnterminatedString:
		return diag.CodeLexerUnterminatedString
	case ErrEmptyInt:
		return diag.CodeLexerEmptyInt
	case ErrEmptyExponent:
		return diag.CodeLexerEmptyExponent
	case ErrUnhandledPrefix:
		return diag.CodeLexerUnhandledPrefix
	case ErrEmojiIdent:
		return diag.CodeLexerEmojiIdent
	case ErrUnknownChar:
		return diag.CodeLexerUnknownChar
	case ErrInvalidDigit:
		return diag.CodeLexerInvalidDigit
	case ErrUnsupportedFloatBase:
		return diag.CodeLexerUnsupportedFloatBase
	case ErrEscape:
		return diag.CodeLexerEscape
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// Structural reports whether the error leaves the token without a usable
// shape (an unterminated construct or an empty digit run).
func (k ErrorKind) Structural() bool {
	return k.diagnosticCode().Structural()
}

// Error is a lexical error located by a span. Raw tokenizer errors carry
// offsets relative to the cursor's input; the reader rebases them.
type Error struct {
	Kind    ErrorKind
	Message string
	Span    source.Span
	Escape  EscapeError // set when Kind == ErrEscape
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Span)
}

// Unwrap exposes the escape error, if any, to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	if e.Kind == ErrEscape {
		return e.Escape
	}
	return nil
}

func newError(kind ErrorKind, lo, hi int) *Error {
	return NewError(kind, source.NewSpan(source.PosFromInt(lo), source.PosFromInt(hi)))
}

// NewError returns an error of the given kind with its default message.
func NewError(kind ErrorKind, span source.Span) *Error {
	return &Error{Kind: kind, Message: kind.String(), Span: span}
}

// NewEscapeError wraps an escape problem found inside a literal.
func NewEscapeError(esc EscapeError, span source.Span) *Error {
	return &Error{Kind: ErrEscape, Message: esc.Error(), Span: span, Escape: esc}
}

// Rebase returns a copy of e with its span shifted by base.
func (e *Error) Rebase(base source.Pos) *Error {
	out := *e
	out.Span.Lo += base
	out.Span.Hi += base
	return &out
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
// file may be nil, in which case no line information is attached.
func (e *Error) ToDiagnostic(file *source.File) diag.Diagnostic {
	severity := diag.SeverityError
	if e.Kind == ErrEscape && !e.Escape.IsFatal() {
		severity = diag.SeverityWarning
	}

	d := diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: severity,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span:     diag.SpanOf(file, e.Span),
	}
	switch e.Kind {
	case ErrUnhandledPrefix:
		d = d.WithNote("prefixed identifiers and literals are reserved")
	case ErrUnterminatedBlockComment:
		d = d.WithHelp("nested `/*` must be closed by a matching `*/`")
	}
	return d
}
