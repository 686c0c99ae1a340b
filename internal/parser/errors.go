package parser

import (
	"errors"

	"github.com/Emmmmllll/Slang/internal/diag"
	"github.com/Emmmmllll/Slang/internal/lexer"
	"github.com/Emmmmllll/Slang/internal/source"
)

// ErrStructural is returned, wrapped, when the input could not be turned
// into a token stream: an unterminated literal or comment, an empty digit
// run, or unbalanced or too deeply nested delimiters.
var ErrStructural = errors.New("structural error in token stream")

// reporter is the single diagnostics channel of one ParseTokenTrees call.
// Every diagnostic goes to the call's own bag and, when configured, to the
// caller's sink. The structural count decides whether a stream is returned.
type reporter struct {
	file       *source.File
	bag        *diag.Bag
	sink       diag.Sink
	structural int
}

func (rp *reporter) report(d diag.Diagnostic) {
	if d.Structural() {
		rp.structural++
	}
	rp.bag.Report(d)
	if rp.sink != nil {
		rp.sink.Report(d)
	}
}

func (rp *reporter) lexError(e *lexer.Error) {
	rp.report(e.ToDiagnostic(rp.file))
}

func (rp *reporter) span(s source.Span) diag.Span {
	return diag.SpanOf(rp.file, s)
}

// treeError builds a token-tree diagnostic whose primary span is labeled.
func (rp *reporter) treeError(code diag.Code, msg string, primary source.Span, label string) diag.Diagnostic {
	d := diag.Diagnostic{
		Stage:    diag.StageTokenTree,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  msg,
		Span:     rp.span(primary),
	}
	if label != "" {
		d = d.WithPrimarySpan(rp.span(primary), label)
	}
	return d
}
