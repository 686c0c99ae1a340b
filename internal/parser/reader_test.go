package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/text/unicode/norm"

	"github.com/Emmmmllll/Slang/internal/ast"
	"github.com/Emmmmllll/Slang/internal/diag"
	"github.com/Emmmmllll/Slang/internal/source"
)

// readTokens runs a StringReader to EOF and returns the tokens before EOF
// with their preceded-by-whitespace flags.
func readTokens(src string) ([]ast.Token, []bool, *diag.Bag, *source.Interner) {
	in := source.NewInterner()
	rep := &reporter{bag: diag.NewBag()}
	r := newStringReader(src, 0, in, rep)

	var toks []ast.Token
	var ws []bool
	for {
		tok, preceded := r.NextToken()
		if tok.Kind == ast.EOF {
			return toks, ws, rep.bag, in
		}
		toks = append(toks, tok)
		ws = append(ws, preceded)
	}
}

func TestStringReader_Literals(t *testing.T) {
	tests := []struct {
		input  string
		kind   ast.LitKind
		symbol string
		codes  []diag.Code
	}{
		{"0x1A", ast.LitInt, "0x1A", nil},
		{"1_000", ast.LitInt, "1_000", nil},
		{"0o17", ast.LitInt, "0o17", nil},
		{"0b1012", ast.LitErr, "0b1012", []diag.Code{diag.CodeLexerInvalidDigit}},
		{"0o78", ast.LitErr, "0o78", []diag.Code{diag.CodeLexerInvalidDigit}},
		{"0b", ast.LitErr, "0b", []diag.Code{diag.CodeLexerEmptyInt}},
		{"1.0e-4", ast.LitFloat, "1.0e-4", nil},
		{"2.", ast.LitFloat, "2.", nil},
		{"0b1.0", ast.LitErr, "0b1.0", []diag.Code{diag.CodeLexerUnsupportedFloatBase}},
		{"0x1.5", ast.LitErr, "0x1.5", []diag.Code{diag.CodeLexerUnsupportedFloatBase}},
		{"1e", ast.LitErr, "1e", []diag.Code{diag.CodeLexerEmptyExponent}},
		{`'x'`, ast.LitChar, "x", nil},
		{`'\u{E9}'`, ast.LitChar, `\u{E9}`, nil},
		{`'ab'`, ast.LitErr, `'ab'`, []diag.Code{diag.CodeLexerEscape}},
		{`"a\nb"`, ast.LitStr, `a\nb`, nil},
		{`"a\qb"`, ast.LitErr, `"a\qb"`, []diag.Code{diag.CodeLexerEscape}},
		{`"abc`, ast.LitErr, `"abc`, []diag.Code{diag.CodeLexerUnterminatedString}},
		{"'ab\n", ast.LitErr, "'ab", []diag.Code{diag.CodeLexerUnterminatedChar}},
	}

	for _, tt := range tests {
		toks, _, bag, in := readTokens(tt.input)
		if len(toks) == 0 || toks[0].Kind != ast.Literal {
			t.Fatalf("input %q: expected a literal first, got %v", tt.input, toks)
		}
		lit := toks[0].Lit
		if lit.Kind != tt.kind {
			t.Fatalf("input %q: expected kind %s, got %s", tt.input, tt.kind, lit.Kind)
		}
		if got := in.Lookup(lit.Symbol); got != tt.symbol {
			t.Fatalf("input %q: expected symbol %q, got %q", tt.input, tt.symbol, got)
		}
		if diff := cmp.Diff(tt.codes, bag.Codes(), cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("input %q: diagnostics mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestStringReader_InvalidDigitSpans(t *testing.T) {
	_, _, bag, _ := readTokens("0b1022")
	ds := bag.Diagnostics()
	if len(ds) != 2 {
		t.Fatalf("expected one diagnostic per invalid digit, got %d", len(ds))
	}
	if ds[0].Span.Start != 4 || ds[0].Span.End != 5 || ds[1].Span.Start != 5 {
		t.Fatalf("unexpected spans %+v and %+v", ds[0].Span, ds[1].Span)
	}
}

func TestStringReader_EscapeWarningKeepsLiteral(t *testing.T) {
	toks, _, bag, in := readTokens("\"a\\\n\n  b\"")
	if toks[0].Lit.Kind != ast.LitStr {
		t.Fatalf("expected a valid string, got %s", toks[0].Lit.Kind)
	}
	if got := in.Lookup(toks[0].Lit.Symbol); got != "a\\\n\n  b" {
		t.Fatalf("unexpected symbol %q", got)
	}
	if bag.WarningCount() != 1 || bag.ErrorCount() != 0 {
		t.Fatalf("expected exactly one warning, got %d warnings and %d errors", bag.WarningCount(), bag.ErrorCount())
	}
}

func TestStringReader_EscapeSpanIsAbsolute(t *testing.T) {
	_, _, bag, _ := readTokens(`x "ab\q"`)
	ds := bag.Diagnostics()
	if len(ds) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(ds))
	}
	if ds[0].Span.Start != 5 || ds[0].Span.End != 7 {
		t.Fatalf("expected the escape at 5..7, got %d..%d", ds[0].Span.Start, ds[0].Span.End)
	}
}

func TestStringReader_WhitespaceAndComments(t *testing.T) {
	toks, ws, _, _ := readTokens("a b/* c */\n// d\ne")

	var kinds []ast.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	wantKinds := []ast.Kind{ast.Ident, ast.Ident, ast.Comment, ast.Comment, ast.Ident}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false, true, false, true, true}, ws); diff != "" {
		t.Fatalf("whitespace flags mismatch (-want +got):\n%s", diff)
	}
	if toks[2].Comment != ast.BlockComment || toks[3].Comment != ast.LineComment {
		t.Fatalf("expected a block comment then a line comment")
	}
}

func TestStringReader_UnknownCharIsSkipped(t *testing.T) {
	toks, ws, bag, _ := readTokens("a€b")
	if len(toks) != 2 {
		t.Fatalf("expected the unknown character to be dropped, got %d tokens", len(toks))
	}
	if !ws[1] {
		t.Fatalf("expected the token after an unknown character to count as separated")
	}
	ds := bag.Diagnostics()
	if len(ds) != 1 || ds[0].Code != diag.CodeLexerUnknownChar {
		t.Fatalf("expected one unknown-char diagnostic, got %v", bag.Codes())
	}
	if ds[0].Span.Start != 1 || ds[0].Span.End != 4 {
		t.Fatalf("expected span 1..4, got %d..%d", ds[0].Span.Start, ds[0].Span.End)
	}
	if ds[0].Structural() {
		t.Fatalf("expected an unknown character to be recoverable")
	}
}

func TestStringReader_UnhandledPrefix(t *testing.T) {
	toks, _, bag, in := readTokens(`r"x"`)
	if len(toks) != 2 || toks[0].Kind != ast.Ident || toks[1].Kind != ast.Literal {
		t.Fatalf("expected an identifier and a string, got %v", toks)
	}
	if in.Lookup(toks[0].Ident) != "r" {
		t.Fatalf("expected identifier r")
	}
	if codes := bag.Codes(); len(codes) != 1 || codes[0] != diag.CodeLexerUnhandledPrefix {
		t.Fatalf("expected an unhandled prefix diagnostic, got %v", codes)
	}
}

func TestStringReader_IdentifierNormalization(t *testing.T) {
	decomposed := "cafe\u0301"
	composed := "caf\u00e9"

	toks, _, _, in := readTokens(decomposed + " " + composed)
	if toks[0].Ident != toks[1].Ident {
		t.Fatalf("expected both spellings to intern to one symbol")
	}
	if got := in.Lookup(toks[0].Ident); got != composed {
		t.Fatalf("expected the NFC form %q, got %q", composed, got)
	}
	if toks[0].Span.Len() != len(decomposed) {
		t.Fatalf("expected the span to cover the source bytes, got %v", toks[0].Span)
	}

	// Interning the normalized form again yields the same identity.
	if in.Intern(norm.NFC.String(decomposed)) != toks[0].Ident {
		t.Fatalf("expected normalization to be idempotent under interning")
	}
}

func TestStringReader_Punctuation(t *testing.T) {
	toks, _, _, _ := readTokens(";,.(){}[]@#~?:$=!<>-&|+*/^%")
	want := []ast.Token{
		{Kind: ast.Semi}, {Kind: ast.Comma}, {Kind: ast.Dot},
		{Kind: ast.OpenDelim, Delim: ast.Parenthesis}, {Kind: ast.CloseDelim, Delim: ast.Parenthesis},
		{Kind: ast.OpenDelim, Delim: ast.Brace}, {Kind: ast.CloseDelim, Delim: ast.Brace},
		{Kind: ast.OpenDelim, Delim: ast.Bracket}, {Kind: ast.CloseDelim, Delim: ast.Bracket},
		{Kind: ast.At}, {Kind: ast.Pound}, {Kind: ast.Tilde}, {Kind: ast.Question},
		{Kind: ast.Colon}, {Kind: ast.Dollar}, {Kind: ast.Eq}, {Kind: ast.Not},
		{Kind: ast.Lt}, {Kind: ast.Gt},
		{Kind: ast.BinOp, BinOp: ast.Minus}, {Kind: ast.BinOp, BinOp: ast.And},
		{Kind: ast.BinOp, BinOp: ast.Or}, {Kind: ast.BinOp, BinOp: ast.Plus},
		{Kind: ast.BinOp, BinOp: ast.Star}, {Kind: ast.BinOp, BinOp: ast.Slash},
		{Kind: ast.BinOp, BinOp: ast.Caret}, {Kind: ast.BinOp, BinOp: ast.Percent},
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(toks))
	}
	for i := range want {
		if !toks[i].SameKind(want[i]) {
			t.Fatalf("token %d: expected %s, got %s", i, ast.Describe(want[i], nil), ast.Describe(toks[i], nil))
		}
		if toks[i].Span != source.NewSpan(source.PosFromInt(i), source.PosFromInt(i+1)) {
			t.Fatalf("token %d: unexpected span %v", i, toks[i].Span)
		}
	}
}
