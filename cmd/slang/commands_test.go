package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Emmmmllll/Slang/internal/diag"
	"github.com/Emmmmllll/Slang/internal/parser"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunLex(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.sl", "f(x)")
	var stdout, stderr bytes.Buffer

	if code := runLex([]string{path}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr %q)", code, stderr.String())
	}
	want := `Ident "f" 0..1 JointHidden
Group(Parenthesis) 1..4 open=JointHidden close=Alone
  Ident "x" 2..3 JointHidden
`
	if stdout.String() != want {
		t.Fatalf("expected dump %q, got %q", want, stdout.String())
	}
}

func TestRunLex_StructuralError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.sl", "f(x")
	var stdout, stderr bytes.Buffer

	if code := runLex([]string{path}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected no dump, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "TOKENTREE_UNCLOSED_DELIMITER") {
		t.Fatalf("expected the diagnostic on stderr, got %q", stderr.String())
	}
}

func TestRunCheck_WalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.sl", "let x = 1;")
	writeFile(t, dir, "sub/bad.sl", "let y = 0b12;")
	writeFile(t, dir, ".hidden/skipped.sl", "(")
	writeFile(t, dir, "notes.txt", "(")

	var stdout, stderr bytes.Buffer
	code := runCheck([]string{"-json", dir}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d (stderr %q)", code, stderr.String())
	}

	var got []jsonDiagnostic
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(got))
	}
	if got[0].Code != string(diag.CodeLexerInvalidDigit) || got[0].Line != 1 || got[0].Column != 12 {
		t.Fatalf("unexpected diagnostic %+v", got[0])
	}
	if !strings.HasSuffix(got[0].File, filepath.Join("sub", "bad.sl")) {
		t.Fatalf("expected the file name to be recorded, got %q", got[0].File)
	}
}

func TestRunCheck_Summary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.sl", "a + b")

	var stdout, stderr bytes.Buffer
	if code := runCheck([]string{dir}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(stdout.String(), "Checked 1 file(s): 0 with errors") {
		t.Fatalf("unexpected summary %q", stdout.String())
	}
}

func TestRunFmt(t *testing.T) {
	path := writeFile(t, t.TempDir(), "f.sl", "fn  main ( ) {\n\tx  =a+1 ; // c\n}")
	var stdout, stderr bytes.Buffer

	if code := runFmt([]string{path}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr %q)", code, stderr.String())
	}
	want := "fn main ( ) { x =a+1 ; // c\n}\n"
	if stdout.String() != want {
		t.Fatalf("expected %q, got %q", want, stdout.String())
	}
}

func TestIsIncomplete(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"fn f() {", true},
		{`let s = "abc`, true},
		{"/* still", true},
		{"f(x)", false},
		{"f(x]", false},
		{"(0x", false},
	}

	for _, tt := range tests {
		p := parser.New(tt.input)
		_, _ = p.ParseTokenTrees()
		if got := isIncomplete(p.Errors()); got != tt.want {
			t.Fatalf("input %q: expected %v, got %v", tt.input, tt.want, got)
		}
	}
}
