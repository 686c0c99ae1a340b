package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/Emmmmllll/Slang/internal/ast"
	"github.com/Emmmmllll/Slang/internal/diag"
	"github.com/Emmmmllll/Slang/internal/parser"
	"github.com/Emmmmllll/Slang/internal/source"
)

const (
	historyFile = ".slang_history"
	promptMain  = "slang> "
	promptCont  = "  ...> "
)

func runRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	maxDepth := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	// One interner for the session so symbols stay stable between inputs.
	in := source.NewInterner()
	opts := []parser.Option{
		parser.WithFilename("<repl>"),
		parser.WithMaxDepth(*maxDepth),
		parser.WithInterner(in),
	}

	for {
		src, ok := readByParseProbe(ln, promptMain, promptCont, opts)
		if !ok {
			fmt.Println()
			return 0
		}

		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit", ":q":
			return 0
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		p := parser.New(src, opts...)
		ts, err := p.ParseTokenTrees()
		f := diag.NewFormatter(os.Stderr)
		f.AddSource("<repl>", src)
		f.FormatAll(p.Bag().Sorted())
		if err != nil {
			debugf("%v", err)
			continue
		}
		fmt.Print(ast.Dump(ts, in))
	}
}

// readByParseProbe reads lines until the accumulated input no longer ends
// inside an open delimiter, string or block comment.
func readByParseProbe(ln *liner.State, prompt, cont string, opts []parser.Option) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		p := parser.New(src, opts...)
		if _, err := p.ParseTokenTrees(); err == nil {
			return src, true
		}
		if isIncomplete(p.Errors()) {
			continue
		}
		return src, true
	}
}

// isIncomplete reports whether every structural diagnostic could be fixed
// by typing more input.
func isIncomplete(ds []diag.Diagnostic) bool {
	incomplete := false
	for _, d := range ds {
		if !d.Structural() {
			continue
		}
		switch d.Code {
		case diag.CodeTreeUnclosedDelimiter,
			diag.CodeLexerUnterminatedString,
			diag.CodeLexerUnterminatedBlockComment:
			incomplete = true
		default:
			return false
		}
	}
	return incomplete
}
