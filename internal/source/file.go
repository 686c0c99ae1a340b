package source

import (
	"sort"
	"unicode/utf8"
)

// File couples a source buffer with its starting position and a line index
// so byte positions can be turned into 1-based line/column pairs.
type File struct {
	Name  string
	Base  Pos
	Text  string
	lines []int
}

// NewFile indexes text, which starts at base in the global position space.
func NewFile(name string, base Pos, text string) *File {
	f := &File{Name: name, Base: base, Text: text}
	f.lines = append(f.lines, 0)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			f.lines = append(f.lines, i+1)
		}
	}
	return f
}

// End returns the position one past the last byte of the file.
func (f *File) End() Pos { return f.Base + PosFromInt(len(f.Text)) }

// Contains reports whether p falls inside the file (the end position included).
func (f *File) Contains(p Pos) bool { return p >= f.Base && p <= f.End() }

// Offset converts p to an index into Text, clamped to the buffer.
func (f *File) Offset(p Pos) int {
	if p < f.Base {
		return 0
	}
	off := int(p - f.Base)
	if off > len(f.Text) {
		return len(f.Text)
	}
	return off
}

// LineCol returns the 1-based line and column of p. Columns count runes.
func (f *File) LineCol(p Pos) (line, col int) {
	off := f.Offset(p)
	idx := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > off }) - 1
	if idx < 0 {
		idx = 0
	}
	start := f.lines[idx]
	return idx + 1, utf8.RuneCountInString(f.Text[start:off]) + 1
}

// Slice returns the source text covered by s.
func (f *File) Slice(s Span) string {
	return f.Text[f.Offset(s.Lo):f.Offset(s.Hi)]
}

// Line returns the text of the 1-based line n without its newline.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lines) {
		return ""
	}
	start := f.lines[n-1]
	end := len(f.Text)
	if n < len(f.lines) {
		end = f.lines[n] - 1
	}
	if end > start && f.Text[end-1] == '\r' {
		end--
	}
	return f.Text[start:end]
}

// LineCount returns the number of lines in the file.
func (f *File) LineCount() int { return len(f.lines) }
