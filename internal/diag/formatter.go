package diag

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Formatter renders diagnostics with annotated source snippets.
type Formatter struct {
	w       io.Writer
	sources map[string]string // source text by filename
}

// NewFormatter creates a formatter writing to w.
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{
		w:       w,
		sources: make(map[string]string),
	}
}

// AddSource registers the text of filename so snippets can be shown.
func (f *Formatter) AddSource(filename, src string) {
	f.sources[filename] = src
}

// FormatAll formats every diagnostic in order.
func (f *Formatter) FormatAll(ds []Diagnostic) {
	for i, d := range ds {
		if i > 0 {
			fmt.Fprintln(f.w)
		}
		f.Format(d)
	}
}

// Format writes one diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	spans := f.collectSpans(d)
	if len(spans) == 0 {
		f.formatSimple(d)
		return
	}

	spansByFile := make(map[string][]LabeledSpan)
	var files []string
	for _, span := range spans {
		name := span.Span.Filename
		if _, seen := spansByFile[name]; !seen {
			files = append(files, name)
		}
		spansByFile[name] = append(spansByFile[name], span)
	}

	f.printHeader(d)
	for _, name := range files {
		src, ok := f.sources[name]
		if !ok {
			fmt.Fprintf(f.w, "  --> %s\n", spansByFile[name][0].Span.String())
			continue
		}
		f.printFileSpans(name, src, spansByFile[name])
	}
	f.printHelp(d)
}

// collectSpans collects all spans from the diagnostic, prioritizing LabeledSpans.
func (f *Formatter) collectSpans(d Diagnostic) []LabeledSpan {
	if len(d.LabeledSpans) > 0 {
		return d.LabeledSpans
	}
	if d.Span.IsValid() {
		return []LabeledSpan{{Span: d.Span, Style: "primary"}}
	}
	return nil
}

// printHeader prints the header (error[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}

	if d.Code != "" {
		fmt.Fprintf(f.w, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.w, "%s: %s\n", severity, d.Message)
	}
}

// printFileSpans prints source lines with underlines for spans in a file.
func (f *Formatter) printFileSpans(filename string, src string, spans []LabeledSpan) {
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Span.Line != spans[j].Span.Line {
			return spans[i].Span.Line < spans[j].Span.Line
		}
		return spans[i].Span.Column < spans[j].Span.Column
	})

	lines := strings.Split(src, "\n")
	spansByLine := make(map[int][]LabeledSpan)
	for _, span := range spans {
		line := span.Span.Line
		if line > 0 && line <= len(lines) {
			spansByLine[line] = append(spansByLine[line], span)
		}
	}
	if len(spansByLine) == 0 {
		return
	}

	lineNumbers := make([]int, 0, len(spansByLine))
	for line := range spansByLine {
		lineNumbers = append(lineNumbers, line)
	}
	sort.Ints(lineNumbers)

	lineNumWidth := len(fmt.Sprintf("%d", lineNumbers[len(lineNumbers)-1]))
	gutter := strings.Repeat(" ", lineNumWidth)

	if filename == "" {
		filename = "<input>"
	}
	fmt.Fprintf(f.w, "  --> %s:%d:%d\n", filename, spans[0].Span.Line, spans[0].Span.Column)
	fmt.Fprintf(f.w, " %s |\n", gutter)

	for i, lineNum := range lineNumbers {
		if i > 0 && lineNum > lineNumbers[i-1]+1 {
			fmt.Fprintf(f.w, " %s...\n", gutter)
		}
		content := strings.TrimRight(lines[lineNum-1], "\r")
		fmt.Fprintf(f.w, " %*d | %s\n", lineNumWidth, lineNum, content)
		f.printUnderlines(gutter, content, spansByLine[lineNum])
	}
	fmt.Fprintf(f.w, " %s |\n", gutter)
}

// printUnderlines prints ^ (primary) and ~ (secondary) under a line.
func (f *Formatter) printUnderlines(gutter string, content string, spans []LabeledSpan) {
	width := len([]rune(content)) + 1
	underline := []rune(strings.Repeat(" ", width))

	mark := func(span LabeledSpan, ch rune, overwrite bool) {
		start := max(0, span.Span.Column-1)
		end := min(width, start+max(1, span.Span.End-span.Span.Start))
		for i := start; i < end; i++ {
			if overwrite || underline[i] == ' ' {
				underline[i] = ch
			}
		}
	}
	for _, span := range spans {
		if span.Style != "secondary" {
			mark(span, '^', true)
		}
	}
	for _, span := range spans {
		if span.Style == "secondary" {
			mark(span, '~', false)
		}
	}

	var labels []string
	for _, span := range spans {
		if span.Label != "" {
			labels = append(labels, span.Label)
		}
	}

	line := strings.TrimRight(string(underline), " ")
	if len(labels) > 0 {
		line += " " + strings.Join(labels, ", ")
	}
	fmt.Fprintf(f.w, " %s | %s\n", gutter, line)
}

// printHelp prints notes and help text.
func (f *Formatter) printHelp(d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.w, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.w, "help: %s\n", d.Help)
	}
}

// formatSimple formats a diagnostic without source code.
func (f *Formatter) formatSimple(d Diagnostic) {
	f.printHeader(d)
	if d.Span.IsValid() {
		fmt.Fprintf(f.w, "  --> %s\n", d.Span.String())
	}
	f.printHelp(d)
}
