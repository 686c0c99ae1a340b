package diag

import (
	"fmt"

	"github.com/Emmmmllll/Slang/internal/source"
)

// Stage identifies which front-end phase produced the diagnostic.
type Stage string

const (
	StageLexer     Stage = "lexer"
	StageTokenTree Stage = "tokentree"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// LabeledSpan represents a span with an optional label.
type LabeledSpan struct {
	Span  Span
	Label string // Optional label (e.g., "unclosed delimiter")
	Style string // "primary" or "secondary" - primary spans are emphasized
}

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Raw tokenizer errors
	CodeLexerUnterminatedBlockComment Code = "LEXER_UNTERMINATED_BLOCK_COMMENT"
	CodeLexerUnterminatedChar         Code = "LEXER_UNTERMINATED_CHAR"
	CodeLexerUnterminatedString       Code = "LEXER_UNTERMINATED_STRING"
	CodeLexerEmptyInt                 Code = "LEXER_EMPTY_INT"
	CodeLexerEmptyExponent            Code = "LEXER_EMPTY_EXPONENT"
	CodeLexerUnhandledPrefix          Code = "LEXER_UNHANDLED_PREFIX"
	CodeLexerEmojiIdent               Code = "LEXER_EMOJI_IDENT"

	// Token reader errors
	CodeLexerUnknownChar          Code = "LEXER_UNKNOWN_CHAR"
	CodeLexerInvalidDigit         Code = "LEXER_INVALID_DIGIT"
	CodeLexerUnsupportedFloatBase Code = "LEXER_UNSUPPORTED_FLOAT_BASE"
	CodeLexerEscape               Code = "LEXER_ESCAPE"

	// Token tree errors
	CodeTreeUnclosedDelimiter   Code = "TOKENTREE_UNCLOSED_DELIMITER"
	CodeTreeMismatchedDelimiter Code = "TOKENTREE_MISMATCHED_DELIMITER"
	CodeTreeUnexpectedCloser    Code = "TOKENTREE_UNEXPECTED_CLOSE_DELIMITER"
	CodeTreeTooDeep             Code = "TOKENTREE_TOO_DEEP"
)

// Structural reports whether diagnostics with this code prevent a token
// stream from being produced. The remaining codes only mark tokens as errors.
func (c Code) Structural() bool {
	switch c {
	case CodeLexerUnterminatedBlockComment,
		CodeLexerUnterminatedChar,
		CodeLexerUnterminatedString,
		CodeLexerEmptyInt,
		CodeLexerEmptyExponent,
		CodeTreeUnclosedDelimiter,
		CodeTreeMismatchedDelimiter,
		CodeTreeUnexpectedCloser,
		CodeTreeTooDeep:
		return true
	}
	return false
}

// Span represents a location in source code. Start and End are byte
// positions, Line and Column describe Start.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// SpanOf converts a source span to a diagnostic span. Line and column are
// only filled in when file is non-nil.
func SpanOf(file *source.File, s source.Span) Span {
	span := Span{Start: int(s.Lo), End: int(s.Hi)}
	if file != nil {
		span.Filename = file.Name
		span.Line, span.Column = file.LineCol(s.Lo)
	}
	return span
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a compiler diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span // Primary span
	// LabeledSpans allows multiple spans with labels. The first span is
	// treated as primary, others as secondary.
	LabeledSpans []LabeledSpan
	Notes        []string
	Help         string
}

// Structural reports whether d is fatal to token stream construction.
func (d Diagnostic) Structural() bool {
	return d.Severity == SeverityError && d.Code.Structural()
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s[%s]: %s", d.Span, d.Severity, d.Code, d.Message)
}

// WithLabeledSpan adds a labeled span to the diagnostic.
func (d Diagnostic) WithLabeledSpan(span Span, label string, style string) Diagnostic {
	if style == "" {
		style = "primary"
	}
	d.LabeledSpans = append(d.LabeledSpans, LabeledSpan{
		Span:  span,
		Label: label,
		Style: style,
	})
	return d
}

// WithPrimarySpan adds a primary labeled span.
func (d Diagnostic) WithPrimarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "primary")
}

// WithSecondarySpan adds a secondary labeled span.
func (d Diagnostic) WithSecondarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "secondary")
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}
