// Package source holds the position model shared by every front-end stage:
// byte positions, spans, expansion contexts, interned symbols and the line
// index used to attribute diagnostics.
package source

import "fmt"

// Pos is a byte offset into the current source buffer. Positions from
// different buffers must be rebased before they are compared.
type Pos uint32

// PosFromInt converts a Go slice index to a Pos.
func PosFromInt(n int) Pos { return Pos(uint32(n)) }

// Add returns p advanced by n bytes.
func (p Pos) Add(n Pos) Pos { return p + n }

// Sub returns the distance from q to p.
func (p Pos) Sub(q Pos) Pos { return p - q }

// Int returns p as a Go slice index.
func (p Pos) Int() int { return int(p) }

// SyntaxContext identifies a macro-expansion frame. Only the root context is
// produced by the lexer; other values are opaque to this package.
type SyntaxContext uint32

// RootContext is the context of tokens read directly from a source buffer.
const RootContext SyntaxContext = 0

// Span is the half-open byte range [Lo, Hi) plus the expansion context it
// was produced in.
type Span struct {
	Lo   Pos
	Hi   Pos
	Ctxt SyntaxContext
}

// DummySpan is the zero span, used for synthesized tokens.
var DummySpan = Span{}

// NewSpan returns a span in the root context. Arguments are swapped when
// given out of order so that Lo <= Hi always holds.
func NewSpan(lo, hi Pos) Span {
	if hi < lo {
		lo, hi = hi, lo
	}
	return Span{Lo: lo, Hi: hi, Ctxt: RootContext}
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int { return int(s.Hi - s.Lo) }

// IsEmpty reports whether s covers no bytes.
func (s Span) IsEmpty() bool { return s.Lo == s.Hi }

// Contains reports whether p lies inside s.
func (s Span) Contains(p Pos) bool { return p >= s.Lo && p < s.Hi }

// Combine returns the smallest span covering both s and other. The context
// of s wins.
func (s Span) Combine(other Span) Span {
	lo, hi := s.Lo, s.Hi
	if other.Lo < lo {
		lo = other.Lo
	}
	if other.Hi > hi {
		hi = other.Hi
	}
	return Span{Lo: lo, Hi: hi, Ctxt: s.Ctxt}
}

// WithLo returns s with its lower bound replaced.
func (s Span) WithLo(lo Pos) Span {
	s.Lo = lo
	return s
}

// WithHi returns s with its upper bound replaced.
func (s Span) WithHi(hi Pos) Span {
	s.Hi = hi
	return s
}

func (s Span) String() string {
	if s.Ctxt != RootContext {
		return fmt.Sprintf("%d..%d#%d", s.Lo, s.Hi, s.Ctxt)
	}
	return fmt.Sprintf("%d..%d", s.Lo, s.Hi)
}

// GroupSpan keeps the spans of a group's opening and closing delimiters.
// They are not unioned until Entire is called.
type GroupSpan struct {
	Open  Span
	Close Span
}

// Entire returns the span from the opening through the closing delimiter.
func (g GroupSpan) Entire() Span { return g.Open.Combine(g.Close) }
