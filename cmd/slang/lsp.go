package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/Emmmmllll/Slang/internal/lsp"
)

// runLSP serves the language server protocol over stdio. Logs go to
// stderr so they never interleave with protocol frames.
func runLSP(args []string) int {
	fs := flag.NewFlagSet("lsp", flag.ContinueOnError)
	fs.BoolVar(&verbose, "v", false, "log progress to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	debugf("language server listening on stdio")
	if err := lsp.NewServer(os.Stdin, os.Stdout).Run(ctx); err != nil && ctx.Err() == nil {
		log.Printf("lsp: %v", err)
		return 1
	}
	return 0
}
