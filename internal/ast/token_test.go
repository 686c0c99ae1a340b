package ast

import (
	"testing"

	"github.com/Emmmmllll/Slang/internal/source"
)

func TestToken_IsPunct(t *testing.T) {
	for _, tok := range allTokenShapes() {
		want := true
		switch tok.Kind {
		case OpenDelim, CloseDelim, Literal, Comment, Ident, EOF:
			want = false
		}
		if got := tok.IsPunct(); got != want {
			t.Fatalf("%s: expected IsPunct=%v, got %v", Describe(tok, nil), want, got)
		}
	}
}

func TestToken_String(t *testing.T) {
	in := source.NewInterner()
	tests := []struct {
		tok  Token
		want string
	}{
		{NewToken(DotDotEq, source.DummySpan), "..="},
		{NewToken(Pound, source.DummySpan), "#"},
		{NewToken(SingleQuote, source.DummySpan), "'"},
		{NewBinOp(Caret, source.DummySpan), "^"},
		{NewBinOpEq(Shr, source.DummySpan), ">>="},
		{NewOpenDelim(Bracket, source.DummySpan), "["},
		{NewCloseDelim(Brace, source.DummySpan), "}"},
		{NewOpenDelim(Invisible, source.DummySpan), ""},
		{NewIdent(in.Intern("héllo"), source.DummySpan), "héllo"},
		{NewLit(LitStr, in.Intern(`a\n`), source.DummySpan), `"a\n"`},
		{NewLit(LitChar, in.Intern("x"), source.DummySpan), "'x'"},
		{NewLit(LitInt, in.Intern("0x1A"), source.DummySpan), "0x1A"},
		{NewLit(LitErr, in.Intern("0b12"), source.DummySpan), "0b12"},
		{NewToken(EOF, source.DummySpan), ""},
	}

	for _, tt := range tests {
		if got := tt.tok.Text(in); got != tt.want {
			t.Fatalf("%s: expected %q, got %q", Describe(tt.tok, in), tt.want, got)
		}
	}
}

func TestToken_SameKind(t *testing.T) {
	a := NewBinOp(Plus, source.NewSpan(0, 1))
	b := NewBinOp(Plus, source.NewSpan(7, 8))
	c := NewBinOp(Minus, source.NewSpan(0, 1))

	if !a.SameKind(b) {
		t.Fatalf("expected tokens differing only in span to be the same kind")
	}
	if a.SameKind(c) {
		t.Fatalf("expected + and - to differ")
	}
}

func TestKind_String(t *testing.T) {
	if got := DoubleColon.String(); got != "DoubleColon" {
		t.Fatalf("expected DoubleColon, got %q", got)
	}
	if got := Kind(200).String(); got != "Kind(200)" {
		t.Fatalf("expected Kind(200), got %q", got)
	}
	if got := Ident.Spelling(); got != "" {
		t.Fatalf("expected no fixed spelling for Ident, got %q", got)
	}
}
