package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type piece struct {
	Start, End int
	Ch         rune
	Err        error
}

func unescapeAll(src string, mode Mode) []piece {
	var out []piece
	Unescape(src, mode, func(start, end int, ch rune, err error) {
		out = append(out, piece{start, end, ch, err})
	})
	return out
}

func TestUnescapeChar(t *testing.T) {
	tests := []struct {
		input string
		want  piece
	}{
		{"a", piece{0, 1, 'a', nil}},
		{"é", piece{0, 2, 'é', nil}},
		{`\n`, piece{0, 2, '\n', nil}},
		{`\'`, piece{0, 2, '\'', nil}},
		{`\0`, piece{0, 2, 0, nil}},
		{`\x41`, piece{0, 4, 'A', nil}},
		{`\u{1F600}`, piece{0, 9, '\U0001F600', nil}},
		{`\u{1_0}`, piece{0, 7, 0x10, nil}},
		{"", piece{0, 0, 0, EscapeZeroChars}},
		{"\n", piece{0, 1, 0, EscapeOnlyChar}},
		{"\t", piece{0, 1, 0, EscapeOnlyChar}},
		{"'", piece{0, 1, 0, EscapeOnlyChar}},
		{"\r", piece{0, 1, 0, EscapeBareCarriageReturn}},
		{"ab", piece{0, 2, 'a', EscapeMoreThanOneChar}},
		{`\`, piece{0, 1, 0, EscapeLoneBackslash}},
		{`\x4`, piece{0, 3, 0, EscapeTooShortHex}},
		{`\xg1`, piece{0, 2, 0, EscapeInvalidCharInHex}},
		{`\q`, piece{0, 2, 0, EscapeInvalid}},
		{`\u41`, piece{0, 2, 0, EscapeNoBraceInUnicode}},
		{`\u{41`, piece{0, 5, 0, EscapeUnclosedUnicode}},
		{`\u{}`, piece{0, 4, 0, EscapeEmptyUnicode}},
		{`\u{_1}`, piece{0, 4, 0, EscapeLeadingUnderscoreUnicode}},
		{`\u{1234567}`, piece{0, 11, 0, EscapeOverlongUnicode}},
		{`\u{D800}`, piece{0, 8, 0, EscapeLoneSurrogateUnicode}},
		{`\u{110000}`, piece{0, 10, 0, EscapeOutOfRangeUnicode}},
		{`\u{4g}`, piece{0, 5, 0, EscapeInvalidCharInUnicode}},
	}

	for _, tt := range tests {
		got := unescapeAll(tt.input, ModeChar)
		if len(got) != 1 {
			t.Fatalf("input %q: expected exactly one callback, got %d", tt.input, len(got))
		}
		if diff := cmp.Diff(tt.want, got[0], cmp.Comparer(func(a, b error) bool { return a == b })); diff != "" {
			t.Fatalf("input %q: mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestUnescapeStr(t *testing.T) {
	got := unescapeAll(`a\tb"`+"\r", ModeStr)
	want := []piece{
		{0, 1, 'a', nil},
		{1, 3, '\t', nil},
		{3, 4, 'b', nil},
		{4, 5, 0, EscapeOnlyChar},
		{5, 6, 0, EscapeBareCarriageReturn},
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b error) bool { return a == b })); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestUnescapeStrAllowsRawNewlineAndTab(t *testing.T) {
	for _, p := range unescapeAll("a\n\tb'", ModeStr) {
		if p.Err != nil {
			t.Fatalf("unexpected error %v at %d..%d", p.Err, p.Start, p.End)
		}
	}
}

func TestUnescapeLineContinuation(t *testing.T) {
	got := unescapeAll("a\\\n    b", ModeStr)
	want := []piece{
		{0, 1, 'a', nil},
		{7, 8, 'b', nil},
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b error) bool { return a == b })); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestUnescapeLineContinuationSkippingLines(t *testing.T) {
	got := unescapeAll("a\\\n\n  b", ModeStr)
	want := []piece{
		{0, 1, 'a', nil},
		{1, 6, 0, EscapeMultipleSkippedLines},
		{6, 7, 'b', nil},
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b error) bool { return a == b })); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if EscapeMultipleSkippedLines.IsFatal() {
		t.Fatalf("expected skipped lines to be a warning")
	}
}

func TestUnescapeContinuationIsStringOnly(t *testing.T) {
	got := unescapeAll("\\\n", ModeChar)
	if len(got) != 1 || got[0].Err != EscapeInvalid {
		t.Fatalf("expected an invalid escape in char mode, got %+v", got)
	}
}

func TestUnescapeByteModes(t *testing.T) {
	if got := unescapeAll("é", ModeByte); got[0].Err != EscapeNonASCIIInByte {
		t.Fatalf("expected non-ASCII error, got %+v", got)
	}
	if got := unescapeAll(`\u{41}`, ModeByte); got[0].Err != EscapeUnicodeInByte {
		t.Fatalf("expected unicode-in-byte error, got %+v", got)
	}
	if got := unescapeAll(`\xff`, ModeByte); got[0].Err != nil || got[0].Ch != 0xff {
		t.Fatalf("expected byte 0xff, got %+v", got)
	}

	got := unescapeAll("aé", ModeByteStr)
	if len(got) != 2 || got[0].Err != nil || got[1].Err != EscapeNonASCIIInByte {
		t.Fatalf("unexpected byte string result %+v", got)
	}
}

func TestUnescapeCoversInput(t *testing.T) {
	input := `x\n\u{E9}\\y\"`
	next := 0
	Unescape(input, ModeStr, func(start, end int, ch rune, err error) {
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if start != next {
			t.Fatalf("expected piece to start at %d, got %d", next, start)
		}
		next = end
	})
	if next != len(input) {
		t.Fatalf("expected pieces to cover %d bytes, got %d", len(input), next)
	}
}
