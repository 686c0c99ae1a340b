package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Emmmmllll/Slang/internal/ast"
	"github.com/Emmmmllll/Slang/internal/diag"
	"github.com/Emmmmllll/Slang/internal/parser"
)

// sourceExt is the extension check looks for when walking directories.
const sourceExt = ".sl"

// fileResult is the outcome of scanning one file.
type fileResult struct {
	Path        string
	Source      string
	Parser      *parser.Parser
	Stream      *ast.TokenStream
	Err         error
	Diagnostics []diag.Diagnostic
}

func scanFile(path string, maxDepth int) (*fileResult, error) {
	src, err := readSource(path)
	if err != nil {
		return nil, err
	}
	debugf("scanning %s (%d bytes)", path, len(src))

	p := parser.New(src, parser.WithFilename(path), parser.WithMaxDepth(maxDepth))
	ts, err := p.ParseTokenTrees()
	res := &fileResult{
		Path:        path,
		Source:      src,
		Parser:      p,
		Stream:      ts,
		Err:         err,
		Diagnostics: p.Bag().Sorted(),
	}
	debugf("%s: %d diagnostic(s), %d top-level tree(s)", path, len(res.Diagnostics), ts.Len())
	return res, nil
}

func printDiagnostics(w io.Writer, res *fileResult) {
	f := diag.NewFormatter(w)
	f.AddSource(res.Path, res.Source)
	f.FormatAll(res.Diagnostics)
}

func runLex(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lex", flag.ContinueOnError)
	fs.SetOutput(stderr)
	maxDepth := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(stderr, "Usage: slang lex [options] <file>...\n")
		return 1
	}

	code := 0
	for _, path := range fs.Args() {
		res, err := scanFile(path, *maxDepth)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading %s: %v\n", path, err)
			code = 1
			continue
		}
		printDiagnostics(stderr, res)
		if res.Err != nil {
			code = 1
			continue
		}
		if fs.NArg() > 1 {
			fmt.Fprintf(stdout, "== %s\n", path)
		}
		fmt.Fprint(stdout, ast.Dump(res.Stream, nil))
	}
	return code
}

// jsonDiagnostic is the -json output of check.
type jsonDiagnostic struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Stage    string `json:"stage"`
	Message  string `json:"message"`
}

func runCheck(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	maxDepth := commonFlags(fs)
	asJSON := fs.Bool("json", false, "print diagnostics as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var files []string
	for _, path := range paths {
		found, err := findSourceFiles(path)
		if err != nil {
			fmt.Fprintf(stderr, "Error accessing path %s: %v\n", path, err)
			return 1
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		fmt.Fprintf(stderr, "No %s files found in %s\n", sourceExt, strings.Join(paths, " "))
		return 0
	}

	var all []jsonDiagnostic
	var failed, structural int
	for _, path := range files {
		res, err := scanFile(path, *maxDepth)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading %s: %v\n", path, err)
			return 1
		}
		if errors.Is(res.Err, parser.ErrStructural) {
			structural++
		}
		if res.Parser.Bag().HasErrors() {
			failed++
		}
		if !*asJSON {
			printDiagnostics(stdout, res)
			continue
		}
		for _, d := range res.Diagnostics {
			all = append(all, jsonDiagnostic{
				File:     d.Span.Filename,
				Line:     d.Span.Line,
				Column:   d.Span.Column,
				Start:    d.Span.Start,
				End:      d.Span.End,
				Severity: string(d.Severity),
				Code:     string(d.Code),
				Stage:    string(d.Stage),
				Message:  d.Message,
			})
		}
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if all == nil {
			all = []jsonDiagnostic{}
		}
		if err := enc.Encode(all); err != nil {
			fmt.Fprintf(stderr, "Error writing JSON: %v\n", err)
			return 1
		}
	} else {
		fmt.Fprintf(stdout, "Checked %d file(s): %d with errors, %d without a token stream\n", len(files), failed, structural)
	}

	if failed > 0 {
		return 1
	}
	return 0
}

// findSourceFiles returns path itself if it is a file, or every source file
// below it if it is a directory. Hidden directories are skipped.
func findSourceFiles(path string) ([]string, error) {
	if path == "-" {
		return []string{path}, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && p != path && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		if !info.IsDir() && strings.HasSuffix(p, sourceExt) {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

func runFmt(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	maxDepth := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "Usage: slang fmt [options] <file>\n")
		return 1
	}

	res, err := scanFile(fs.Arg(0), *maxDepth)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading %s: %v\n", fs.Arg(0), err)
		return 1
	}
	if res.Err != nil {
		printDiagnostics(stderr, res)
		return 1
	}
	fmt.Fprintln(stdout, ast.Render(res.Stream, res.Parser.File()))
	return 0
}
