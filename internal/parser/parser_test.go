package parser

import (
	"errors"
	"os"
	"os/exec"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/Emmmmllll/Slang/internal/ast"
	"github.com/Emmmmllll/Slang/internal/diag"
	"github.com/Emmmmllll/Slang/internal/source"
)

func TestParseTokenTrees_Shebang(t *testing.T) {
	in := source.NewInterner()
	ts, err := ParseTokenTrees("#!/usr/bin/env slang\nmain", WithInterner(in))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if ts.Len() != 1 {
		t.Fatalf("expected the shebang line to be dropped, got %d trees", ts.Len())
	}
	leaf := ts.At(0).(*ast.Leaf)
	if in.Lookup(leaf.Token.Ident) != "main" {
		t.Fatalf("expected identifier main, got %s", ast.Describe(leaf.Token, in))
	}
	if leaf.Token.Span != source.NewSpan(21, 25) {
		t.Fatalf("expected spans to keep counting from the file start, got %v", leaf.Token.Span)
	}
}

func TestParseTokenTrees_InnerAttributeIsNotShebang(t *testing.T) {
	ts, err := ParseTokenTrees("#![feature]")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	kinds := []ast.Kind{}
	for _, tree := range ts.Trees() {
		if leaf, ok := tree.(*ast.Leaf); ok {
			kinds = append(kinds, leaf.Token.Kind)
		}
	}
	if len(kinds) != 2 || kinds[0] != ast.Pound || kinds[1] != ast.Not || ts.Len() != 3 {
		t.Fatalf("expected `#`, `!` and a group, got %v", kinds)
	}
}

func TestParseTokenTrees_StartPos(t *testing.T) {
	p := New("ab\n (c)", WithStartPos(100), WithFilename("lib.sl"))
	ts, err := p.ParseTokenTrees()
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	g := ts.At(1).(*ast.Group)
	if g.DelimSpan.Open != source.NewSpan(104, 105) || g.DelimSpan.Close != source.NewSpan(106, 107) {
		t.Fatalf("unexpected group spans %+v", g.DelimSpan)
	}
	if line, col := p.File().LineCol(g.Span().Lo); line != 2 || col != 2 {
		t.Fatalf("expected 2:2, got %d:%d", line, col)
	}
}

func TestParser_SingleUse(t *testing.T) {
	p := New("(a")
	_, err1 := p.ParseTokenTrees()
	_, err2 := p.ParseTokenTrees()
	if err1 == nil || err1 != err2 {
		t.Fatalf("expected the same error twice, got %v and %v", err1, err2)
	}
	if len(p.Errors()) != 1 {
		t.Fatalf("expected diagnostics to be collected once, got %d", len(p.Errors()))
	}
	if !strings.Contains(err1.Error(), "1 error") {
		t.Fatalf("expected the error count in %q", err1)
	}
}

func TestParseTokenTrees_SinkReceivesEverything(t *testing.T) {
	bag := diag.NewBag()
	_, err := ParseTokenTrees("0b2 € (", WithSink(bag))
	if !errors.Is(err, ErrStructural) {
		t.Fatalf("expected ErrStructural, got %v", err)
	}
	if bag.ErrorCount() != 3 || bag.StructuralCount() != 1 {
		t.Fatalf("expected 3 errors with 1 structural, got %d and %d", bag.ErrorCount(), bag.StructuralCount())
	}
}

func TestParseTokenTrees_InternerIsShared(t *testing.T) {
	in := source.NewInterner()
	a, _ := ParseTokenTrees("name", WithInterner(in))
	b, _ := ParseTokenTrees("  name", WithInterner(in))

	sa := a.At(0).(*ast.Leaf).Token.Ident
	sb := b.At(0).(*ast.Leaf).Token.Ident
	if sa != sb {
		t.Fatalf("expected equal identifiers to share a symbol across calls")
	}
}

func TestParseTokenTreesDoesNotOverflowStackOnDeepNesting(t *testing.T) {
	if os.Getenv("PARSER_DEEP_NESTING_HELPER") == "1" {
		runDeepNestingHelper()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestParseTokenTreesDoesNotOverflowStackOnDeepNesting")
	cmd.Env = append(os.Environ(), "PARSER_DEEP_NESTING_HELPER=1")

	if err := cmd.Run(); err != nil {
		t.Fatalf("token tree reader failed on deeply nested input: %v", err)
	}
}

func runDeepNestingHelper() {
	// Unbounded recursion over this input needs far more than 4MB of stack.
	debug.SetMaxStack(1 << 22)

	const depth = 200000
	src := strings.Repeat("(", depth) + strings.Repeat(")", depth)

	p := New(src)
	_, err := p.ParseTokenTrees()
	if !errors.Is(err, ErrStructural) {
		os.Exit(3)
	}
	codes := p.Bag().Codes()
	if len(codes) != 1 || codes[0] != diag.CodeTreeTooDeep {
		os.Exit(4)
	}
	os.Exit(0)
}
