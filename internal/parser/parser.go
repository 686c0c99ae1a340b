// Package parser turns source text into a token stream: a StringReader
// produces ast tokens from raw lexemes and a TokenTreesReader groups them
// into delimited trees.
package parser

import (
	"fmt"

	"github.com/Emmmmllll/Slang/internal/ast"
	"github.com/Emmmmllll/Slang/internal/diag"
	"github.com/Emmmmllll/Slang/internal/lexer"
	"github.com/Emmmmllll/Slang/internal/source"
)

// DefaultMaxDepth bounds delimiter nesting unless WithMaxDepth says otherwise.
const DefaultMaxDepth = 256

type Option func(*options)

type options struct {
	filename string
	sink     diag.Sink
	maxDepth int
	interner *source.Interner
	startPos source.Pos
}

// WithFilename configures the parser to attribute all emitted spans to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithSink forwards every diagnostic to sink in addition to the parser's own
// collection.
func WithSink(sink diag.Sink) Option {
	return func(o *options) {
		o.sink = sink
	}
}

// WithMaxDepth limits how deeply delimiters may nest. Values below 1 keep
// the default.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// WithInterner interns identifiers and literals in the given table instead
// of the process-wide one.
func WithInterner(in *source.Interner) Option {
	return func(o *options) {
		if in != nil {
			o.interner = in
		}
	}
}

// WithStartPos places the first byte of the input at p, for inputs that are
// part of a larger, concatenated source map.
func WithStartPos(p source.Pos) Option {
	return func(o *options) {
		o.startPos = p
	}
}

// Parser builds the token stream of one source buffer.
// Invariants:
//   - A Parser is single use: ParseTokenTrees runs the scan once and later
//     calls return the same result.
//   - Diagnostics: Errors() lists every diagnostic of the scan in report
//     order, structural or not, whether or not a stream was produced.
type Parser struct {
	src  string
	opts options
	file *source.File
	rep  *reporter

	done   bool
	stream *ast.TokenStream
	err    error
}

// New returns a parser for input.
func New(input string, opts ...Option) *Parser {
	cfg := options{
		maxDepth: DefaultMaxDepth,
		interner: source.DefaultInterner(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	file := source.NewFile(cfg.filename, cfg.startPos, input)
	return &Parser{
		src:  input,
		opts: cfg,
		file: file,
		rep:  &reporter{file: file, bag: diag.NewBag(), sink: cfg.sink},
	}
}

// ParseTokenTrees strips a leading shebang line and reads the rest of the
// input into a token stream. If any structural error was reported the
// stream is nil and the error wraps ErrStructural; recoverable diagnostics
// alone still yield a stream, with the affected literals marked as errors.
func (p *Parser) ParseTokenTrees() (*ast.TokenStream, error) {
	if p.done {
		return p.stream, p.err
	}
	p.done = true

	src, start := p.src, p.opts.startPos
	if n, ok := lexer.StripShebang(src); ok {
		src = src[n:]
		start += source.PosFromInt(n)
	}

	reader := newStringReader(src, start, p.opts.interner, p.rep)
	tr := newTokenTreesReader(reader, p.rep, p.opts.maxDepth)
	stream := tr.parseAll()

	if n := p.rep.structural; n > 0 {
		p.err = fmt.Errorf("%w: %d error(s)", ErrStructural, n)
		return nil, p.err
	}
	p.stream = stream
	return stream, nil
}

// Errors returns the diagnostics reported so far.
func (p *Parser) Errors() []diag.Diagnostic {
	return p.rep.bag.Diagnostics()
}

// Bag returns the parser's diagnostic collection.
func (p *Parser) Bag() *diag.Bag { return p.rep.bag }

// File returns the line index of the parsed input.
func (p *Parser) File() *source.File { return p.file }

// ParseTokenTrees parses input in one call. Use New and Parser.Errors to see
// the diagnostics, or pass WithSink.
func ParseTokenTrees(input string, opts ...Option) (*ast.TokenStream, error) {
	return New(input, opts...).ParseTokenTrees()
}
