package diag

import (
	"sort"
	"sync"
)

// Sink receives diagnostics as they are produced. Every soft and structural
// error of the front end flows through one Sink.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Bag collects diagnostics during a pass. It is safe for concurrent use.
type Bag struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
	errorCount  int
	warnCount   int
	structural  int
}

// NewBag creates an empty diagnostic bag.
func NewBag() *Bag {
	return &Bag{}
}

// Report adds a diagnostic to the bag.
func (b *Bag) Report(d Diagnostic) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.diagnostics = append(b.diagnostics, d)
	switch d.Severity {
	case SeverityError:
		b.errorCount++
		if d.Code.Structural() {
			b.structural++
		}
	case SeverityWarning:
		b.warnCount++
	}
}

// HasErrors returns true if there are any errors.
func (b *Bag) HasErrors() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount > 0
}

// ErrorCount returns the number of errors.
func (b *Bag) ErrorCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount
}

// WarningCount returns the number of warnings.
func (b *Bag) WarningCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.warnCount
}

// StructuralCount returns the number of errors that block stream construction.
func (b *Bag) StructuralCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.structural
}

// Diagnostics returns a copy of all diagnostics in report order.
func (b *Bag) Diagnostics() []Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Diagnostic, len(b.diagnostics))
	copy(out, b.diagnostics)
	return out
}

// Codes returns the code of every diagnostic in report order.
func (b *Bag) Codes() []Code {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Code, len(b.diagnostics))
	for i, d := range b.diagnostics {
		out[i] = d.Code
	}
	return out
}

// Sorted returns the diagnostics ordered by file and start offset. Ties keep
// report order.
func (b *Bag) Sorted() []Diagnostic {
	out := b.Diagnostics()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Span.Filename != out[j].Span.Filename {
			return out[i].Span.Filename < out[j].Span.Filename
		}
		return out[i].Span.Start < out[j].Span.Start
	})
	return out
}

// Reset drops all collected diagnostics.
func (b *Bag) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.diagnostics = nil
	b.errorCount = 0
	b.warnCount = 0
	b.structural = 0
}

// Discard is a Sink that drops everything.
var Discard Sink = SinkFunc(func(Diagnostic) {})
