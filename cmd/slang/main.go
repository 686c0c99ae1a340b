package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

// verbose enables debug logging; set by -v on every subcommand.
var verbose bool

func debugf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

func main() {
	log.SetPrefix("slang: ")
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: slang <command> [options]\n")
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  lex <file>...           Print the token trees of source files\n")
		fmt.Fprintf(os.Stderr, "  check <file|dir>...     Report lexical diagnostics\n")
		fmt.Fprintf(os.Stderr, "  fmt <file>              Print a file rebuilt from its token trees\n")
		fmt.Fprintf(os.Stderr, "  repl                    Read token trees interactively\n")
		fmt.Fprintf(os.Stderr, "  lsp                     Serve diagnostics over the language server protocol\n")
		fmt.Fprintf(os.Stderr, "\nUse \"slang <command> -h\" for command options.\n")
	}

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	var code int
	switch command {
	case "lex":
		code = runLex(args, os.Stdout, os.Stderr)
	case "check":
		code = runCheck(args, os.Stdout, os.Stderr)
	case "fmt":
		code = runFmt(args, os.Stdout, os.Stderr)
	case "repl":
		code = runRepl(args)
	case "lsp":
		code = runLSP(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		code = 1
	}
	os.Exit(code)
}

// commonFlags registers the flags shared by the file-based subcommands.
func commonFlags(fs *flag.FlagSet) *int {
	maxDepth := fs.Int("max-depth", 0, "maximum delimiter nesting (0 uses the default)")
	fs.BoolVar(&verbose, "v", false, "log progress to stderr")
	return maxDepth
}

// readSource reads path, or standard input when path is "-".
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
