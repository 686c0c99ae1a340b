package ast

import (
	"fmt"
	"strings"

	"github.com/Emmmmllll/Slang/internal/source"
)

// Render reconstructs source text from ts. Each leaf is written as its
// original text when file is non-nil, or as its spelling otherwise, followed
// by a space if it is Alone. A line comment that is Alone is followed by a
// newline instead. Re-lexing the result yields the same tokens.
func Render(ts *TokenStream, file *source.File) string {
	var b strings.Builder
	text := func(tok Token) string {
		if file != nil && tok.Kind != EOF {
			return file.Slice(tok.Span)
		}
		return tok.String()
	}
	sep := func(tok Token, s Spacing) {
		if s != Alone {
			return
		}
		if tok.Kind == Comment && tok.Comment == LineComment {
			b.WriteByte('\n')
			return
		}
		b.WriteByte(' ')
	}

	var render func(*TokenStream)
	render = func(ts *TokenStream) {
		for _, tree := range ts.Trees() {
			switch t := tree.(type) {
			case *Leaf:
				b.WriteString(text(t.Token))
				sep(t.Token, t.Spacing)
			case *Group:
				if t.Delim == Invisible {
					render(t.Stream)
					continue
				}
				openTok, closeTok := t.OpenToken(), t.CloseToken()
				b.WriteString(text(openTok))
				sep(openTok, t.Spacing.Open)
				render(t.Stream)
				b.WriteString(text(closeTok))
				sep(closeTok, t.Spacing.Close)
			}
		}
	}
	render(ts)
	return strings.TrimRight(b.String(), " ")
}

// Dump returns an indented, deterministic description of ts, one tree per
// line. Symbols are resolved through in, or the default interner if nil.
func Dump(ts *TokenStream, in *source.Interner) string {
	if in == nil {
		in = source.DefaultInterner()
	}
	var b strings.Builder
	var dump func(*TokenStream, int)
	dump = func(ts *TokenStream, depth int) {
		indent := strings.Repeat("  ", depth)
		for _, tree := range ts.Trees() {
			switch t := tree.(type) {
			case *Leaf:
				fmt.Fprintf(&b, "%s%s %s %s\n", indent, Describe(t.Token, in), t.Token.Span, t.Spacing)
			case *Group:
				fmt.Fprintf(&b, "%sGroup(%s) %s open=%s close=%s\n", indent, t.Delim, t.Span(), t.Spacing.Open, t.Spacing.Close)
				dump(t.Stream, depth+1)
			}
		}
	}
	dump(ts, 0)
	return b.String()
}

// Describe returns the kind of tok together with its payload, e.g.
// `Ident "x"` or `BinOpEq(+)`.
func Describe(tok Token, in *source.Interner) string {
	if in == nil {
		in = source.DefaultInterner()
	}
	switch tok.Kind {
	case BinOp, BinOpEq:
		return fmt.Sprintf("%s(%s)", tok.Kind, tok.BinOp)
	case OpenDelim, CloseDelim:
		return fmt.Sprintf("%s(%s)", tok.Kind, tok.Delim)
	case Literal:
		return fmt.Sprintf("Literal(%s) %q", tok.Lit.Kind, in.Lookup(tok.Lit.Symbol))
	case Comment:
		return fmt.Sprintf("Comment(%s)", tok.Comment)
	case Ident:
		return fmt.Sprintf("Ident %q", in.Lookup(tok.Ident))
	}
	return tok.Kind.String()
}
