package lexer

import "testing"

func TestIsWhitespace(t *testing.T) {
	for _, r := range []rune{'\t', '\n', '\v', '\f', '\r', ' ', '\u0085', '\u200E', '\u200F', '\u2028', '\u2029'} {
		if !IsWhitespace(r) {
			t.Fatalf("expected %U to be whitespace", r)
		}
	}
	// Unicode spaces that are not Pattern_White_Space.
	for _, r := range []rune{'\u00A0', '\u3000', '\u2003', 'a'} {
		if IsWhitespace(r) {
			t.Fatalf("expected %U not to be whitespace", r)
		}
	}
}

func TestIdentifierClasses(t *testing.T) {
	for _, r := range []rune{'_', 'a', 'Z', 'é', 'Ω', '日'} {
		if !IsIDStart(r) {
			t.Fatalf("expected %U to start an identifier", r)
		}
	}
	for _, r := range []rune{'0', '9', '$', '-', '\u0301'} {
		if IsIDStart(r) {
			t.Fatalf("expected %U not to start an identifier", r)
		}
	}
	for _, r := range []rune{'0', '_', '\u0301', '٣'} {
		if !IsIDContinue(r) {
			t.Fatalf("expected %U to continue an identifier", r)
		}
	}
}

func TestIsEmoji(t *testing.T) {
	for _, r := range []rune{'\U0001F600', '❤', '\U0001F680', '©'} {
		if !isEmoji(r) {
			t.Fatalf("expected %U to be an emoji", r)
		}
	}
	for _, r := range []rune{'#', '*', '1', 'é', '日'} {
		if isEmoji(r) {
			t.Fatalf("expected %U not to be an emoji", r)
		}
	}
}
