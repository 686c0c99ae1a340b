package parser

import (
	"fmt"

	"github.com/Emmmmllll/Slang/internal/ast"
	"github.com/Emmmmllll/Slang/internal/diag"
	"github.com/Emmmmllll/Slang/internal/source"
)

// TokenTreesReader groups the tokens of a StringReader into delimited token
// trees, gluing adjacent punctuation and recording spacing as it goes.
//
// Invariants:
//   - token is the one-token lookahead: the token to be finalized next. It
//     only changes through nextToken.
//   - depth is the number of groups currently open; it never exceeds
//     maxDepth. Reaching the limit sets aborted and every frame returns.
//   - A closing delimiter that does not match the innermost group closes
//     that group without being consumed, so an enclosing group can still
//     claim it. mismatched remembers it so it is only reported once.
type TokenTreesReader struct {
	reader *StringReader
	token  ast.Token
	rep    *reporter

	depth    int
	maxDepth int
	aborted  bool

	mismatched    source.Span
	hasMismatched bool
}

func newTokenTreesReader(reader *StringReader, rep *reporter, maxDepth int) *TokenTreesReader {
	return &TokenTreesReader{
		reader:   reader,
		token:    ast.NewToken(ast.Question, source.DummySpan),
		rep:      rep,
		maxDepth: maxDepth,
	}
}

// parseAll reads the whole input. The stream is only meaningful when no
// structural diagnostic was reported.
func (tr *TokenTreesReader) parseAll() *ast.TokenStream {
	_, stream := tr.parseTokenTrees(false)
	return stream
}

// parseTokenTrees reads trees until EOF, or until a closing delimiter when
// inGroup is set. It returns the spacing of the token that was current on
// entry (a group's opening delimiter) along with the trees.
func (tr *TokenTreesReader) parseTokenTrees(inGroup bool) (ast.Spacing, *ast.TokenStream) {
	_, openSpacing := tr.nextToken(false)

	var buf []ast.TokenTree
	for !tr.aborted {
		switch tr.token.Kind {
		case ast.OpenDelim:
			buf = append(buf, tr.parseOpenDelim(tr.token.Delim))
		case ast.CloseDelim:
			if inGroup {
				return openSpacing, ast.NewTokenStream(buf)
			}
			tr.unexpectedCloser()
		case ast.EOF:
			return openSpacing, ast.NewTokenStream(buf)
		default:
			tok, spacing := tr.nextToken(true)
			buf = append(buf, &ast.Leaf{Token: tok, Spacing: spacing})
		}
	}
	return openSpacing, ast.NewTokenStream(buf)
}

// parseOpenDelim reads a group whose opening delimiter is the current token.
func (tr *TokenTreesReader) parseOpenDelim(delim ast.Delimiter) *ast.Group {
	open := tr.token
	if tr.depth >= tr.maxDepth {
		tr.rep.report(tr.rep.treeError(diag.CodeTreeTooDeep,
			fmt.Sprintf("delimiters nested deeper than %d levels", tr.maxDepth),
			open.Span, "this delimiter exceeds the limit"))
		tr.aborted = true
		return &ast.Group{DelimSpan: source.GroupSpan{Open: open.Span, Close: open.Span}, Delim: delim, Stream: ast.NewTokenStream(nil)}
	}

	tr.depth++
	openSpacing, stream := tr.parseTokenTrees(true)
	tr.depth--

	group := &ast.Group{Delim: delim, Stream: stream}
	group.Spacing.Open = openSpacing
	if tr.aborted {
		group.DelimSpan = source.GroupSpan{Open: open.Span, Close: open.Span}
		return group
	}

	closer := tr.token
	switch {
	case closer.Kind == ast.CloseDelim && closer.Delim == delim:
		group.DelimSpan = source.GroupSpan{Open: open.Span, Close: closer.Span}
		_, group.Spacing.Close = tr.nextToken(false)
	case closer.Kind == ast.CloseDelim:
		tr.mismatchedCloser(open, closer)
		group.DelimSpan = source.GroupSpan{Open: open.Span, Close: emptyAt(closer.Span.Lo)}
		group.Spacing.Close = ast.Alone
	default:
		tr.unclosed(open)
		group.DelimSpan = source.GroupSpan{Open: open.Span, Close: emptyAt(closer.Span.Lo)}
		group.Spacing.Close = ast.Alone
	}
	return group
}

func emptyAt(p source.Pos) source.Span { return source.NewSpan(p, p) }

// nextToken finalizes the current token and loads the next one. With glue
// set, following tokens that are not separated by whitespace are glued onto
// the current token for as long as a fusion exists.
func (tr *TokenTreesReader) nextToken(glue bool) (ast.Token, ast.Spacing) {
	var next ast.Token
	var spacing ast.Spacing
	for {
		tok, precededByWhitespace := tr.reader.NextToken()
		next = tok
		if precededByWhitespace {
			spacing = ast.Alone
			break
		}
		if glue {
			if glued, ok := ast.Glue(tr.token, next); ok {
				tr.token = glued
				continue
			}
		}
		switch {
		case next.IsPunct():
			spacing = ast.Joint
		case next.Kind == ast.EOF || next.Kind == ast.Comment:
			spacing = ast.Alone
		default:
			spacing = ast.JointHidden
		}
		break
	}

	this := tr.token
	tr.token = next
	return this, spacing
}

func (tr *TokenTreesReader) mismatchedCloser(open, closer ast.Token) {
	if tr.hasMismatched && tr.mismatched == closer.Span {
		tr.unclosed(open)
		return
	}
	tr.mismatched, tr.hasMismatched = closer.Span, true

	d := tr.rep.treeError(diag.CodeTreeMismatchedDelimiter,
		fmt.Sprintf("mismatched closing delimiter: `%s`", closer.Delim.Close()),
		closer.Span, "mismatched closing delimiter")
	d = d.WithSecondarySpan(tr.rep.span(open.Span), "unclosed delimiter")
	tr.rep.report(d)
}

func (tr *TokenTreesReader) unclosed(open ast.Token) {
	d := tr.rep.treeError(diag.CodeTreeUnclosedDelimiter,
		fmt.Sprintf("unclosed delimiter: `%s`", open.Delim.Open()),
		open.Span, "unclosed delimiter")
	tr.rep.report(d.WithHelp(fmt.Sprintf("close it with `%s`", open.Delim.Close())))
}

// unexpectedCloser skips a closing delimiter found outside of any group.
// A closer that already closed groups as a mismatch is not reported again.
func (tr *TokenTreesReader) unexpectedCloser() {
	closer := tr.token
	if !tr.hasMismatched || tr.mismatched != closer.Span {
		tr.rep.report(tr.rep.treeError(diag.CodeTreeUnexpectedCloser,
			fmt.Sprintf("unexpected closing delimiter: `%s`", closer.Delim.Close()),
			closer.Span, "unexpected closing delimiter"))
	}
	tr.nextToken(false)
}
