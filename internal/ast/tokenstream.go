package ast

import (
	"fmt"

	"github.com/Emmmmllll/Slang/internal/source"
)

// Spacing records what immediately follows a token.
type Spacing uint8

const (
	// Alone: whitespace, a comment or the end of input follows.
	Alone Spacing = iota
	// Joint: another punctuation token follows with nothing in between, so
	// a consumer may glue the two.
	Joint
	// JointHidden: a non-punctuation token (identifier, literal, delimiter)
	// follows with nothing in between.
	JointHidden
)

func (s Spacing) String() string {
	switch s {
	case Alone:
		return "Alone"
	case Joint:
		return "Joint"
	case JointHidden:
		return "JointHidden"
	}
	return fmt.Sprintf("Spacing(%d)", uint8(s))
}

// GroupSpacing holds the spacing of a group's opening and closing
// delimiters independently.
type GroupSpacing struct {
	Open  Spacing
	Close Spacing
}

// TokenTree is either a *Leaf or a *Group.
type TokenTree interface {
	// Span returns the source range of the whole tree.
	Span() source.Span
	tokenTree()
}

// Leaf is a single token together with its spacing.
type Leaf struct {
	Token   Token
	Spacing Spacing
}

// Span returns the token span.
func (l *Leaf) Span() source.Span { return l.Token.Span }

func (*Leaf) tokenTree() {}

// Group is a delimited sequence of token trees. DelimSpan keeps the spans of
// the two delimiters apart; Span unions them.
type Group struct {
	DelimSpan source.GroupSpan
	Spacing   GroupSpacing
	Delim     Delimiter
	Stream    *TokenStream
}

// Span returns the span from the opening through the closing delimiter.
func (g *Group) Span() source.Span { return g.DelimSpan.Entire() }

func (*Group) tokenTree() {}

// OpenToken returns the group's opening delimiter as a token.
func (g *Group) OpenToken() Token { return NewOpenDelim(g.Delim, g.DelimSpan.Open) }

// CloseToken returns the group's closing delimiter as a token.
func (g *Group) CloseToken() Token { return NewCloseDelim(g.Delim, g.DelimSpan.Close) }

// TokenStream is an immutable sequence of token trees. Streams are shared
// by pointer: every holder of a *TokenStream sees the same backing trees,
// so a subtree can be reused in many places without copying.
type TokenStream struct {
	trees []TokenTree
}

// NewTokenStream takes ownership of trees.
func NewTokenStream(trees []TokenTree) *TokenStream {
	return &TokenStream{trees: trees}
}

// Len returns the number of top-level trees. A nil stream is empty.
func (ts *TokenStream) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.trees)
}

// At returns the i-th top-level tree.
func (ts *TokenStream) At(i int) TokenTree { return ts.trees[i] }

// Trees returns the top-level trees. The slice must not be modified.
func (ts *TokenStream) Trees() []TokenTree {
	if ts == nil {
		return nil
	}
	return ts.trees
}

// Walk traverses the trees of ts in source order, calling fn for each tree.
// If fn returns false for a group, Walk does not descend into it.
func Walk(ts *TokenStream, fn func(TokenTree) bool) {
	for _, tree := range ts.Trees() {
		if !fn(tree) {
			continue
		}
		if g, ok := tree.(*Group); ok {
			Walk(g.Stream, fn)
		}
	}
}

// Tokens flattens ts back into a token sequence, delimiters included.
func Tokens(ts *TokenStream) []Token {
	var out []Token
	var visit func(*TokenStream)
	visit = func(ts *TokenStream) {
		for _, tree := range ts.Trees() {
			switch t := tree.(type) {
			case *Leaf:
				out = append(out, t.Token)
			case *Group:
				out = append(out, t.OpenToken())
				visit(t.Stream)
				out = append(out, t.CloseToken())
			}
		}
	}
	visit(ts)
	return out
}
