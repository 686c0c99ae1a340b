package lexer

import (
	"strings"
	"unicode/utf8"
)

// Mode selects the quoting rules of the literal being unescaped.
type Mode uint8

const (
	ModeChar Mode = iota
	ModeStr
	ModeByte
	ModeByteStr
)

// IsByte reports whether the literal must only contain ASCII.
func (m Mode) IsByte() bool { return m == ModeByte || m == ModeByteStr }

// IsSingle reports whether the literal must contain exactly one character.
func (m Mode) IsSingle() bool { return m == ModeChar || m == ModeByte }

// EscapeError describes why a piece of a char or string literal is invalid.
type EscapeError uint8

const (
	EscapeZeroChars EscapeError = iota + 1
	EscapeOnlyChar
	EscapeBareCarriageReturn
	EscapeMoreThanOneChar
	EscapeLoneBackslash
	EscapeTooShortHex
	EscapeInvalidCharInHex
	EscapeInvalid
	EscapeNoBraceInUnicode
	EscapeUnclosedUnicode
	EscapeEmptyUnicode
	EscapeLeadingUnderscoreUnicode
	EscapeOverlongUnicode
	EscapeLoneSurrogateUnicode
	EscapeOutOfRangeUnicode
	EscapeInvalidCharInUnicode
	EscapeUnicodeInByte
	EscapeNonASCIIInByte
	EscapeMultipleSkippedLines
)

var escapeMessages = [...]string{
	EscapeZeroChars:                "empty character literal",
	EscapeOnlyChar:                 "character must be escaped",
	EscapeBareCarriageReturn:       "bare CR not allowed in literal",
	EscapeMoreThanOneChar:          "character literal may only contain one codepoint",
	EscapeLoneBackslash:            "lone backslash at end of literal",
	EscapeTooShortHex:              "numeric character escape is too short",
	EscapeInvalidCharInHex:         "invalid character in numeric character escape",
	EscapeInvalid:                  "unknown character escape",
	EscapeNoBraceInUnicode:         "incorrect unicode escape sequence: missing `{`",
	EscapeUnclosedUnicode:          "unterminated unicode escape: missing `}`",
	EscapeEmptyUnicode:             "empty unicode escape",
	EscapeLeadingUnderscoreUnicode: "invalid start of unicode escape: `_`",
	EscapeOverlongUnicode:          "overlong unicode escape: must have at most 6 hex digits",
	EscapeLoneSurrogateUnicode:     "invalid unicode character escape: must not be a surrogate",
	EscapeOutOfRangeUnicode:        "invalid unicode character escape: must be at most 10FFFF",
	EscapeInvalidCharInUnicode:     "invalid character in unicode escape",
	EscapeUnicodeInByte:            "unicode escape in byte literal",
	EscapeNonASCIIInByte:           "non-ASCII character in byte literal",
	EscapeMultipleSkippedLines:     "multiple lines skipped by escaped newline",
}

func (e EscapeError) Error() string {
	if int(e) < len(escapeMessages) && escapeMessages[e] != "" {
		return escapeMessages[e]
	}
	return "invalid escape"
}

// IsFatal reports whether the literal is invalid. A skipped-lines escape is
// only a warning.
func (e EscapeError) IsFatal() bool { return e != EscapeMultipleSkippedLines }

// UnescapeFunc receives one decoded piece of a literal. start and end are
// byte offsets into the unescaped text; err is nil or an EscapeError.
type UnescapeFunc func(start, end int, ch rune, err error)

// Unescape walks the inner text of a char, string, byte or byte string
// literal and calls fn for every character it produces or rejects, in order.
// An escaped newline produces no character and is only reported when it
// swallows more than one line.
func Unescape(src string, mode Mode, fn UnescapeFunc) {
	if mode.IsSingle() {
		rest, ch, err := unescapeSingle(src, mode)
		end := len(src) - len(rest)
		if err == EscapeMoreThanOneChar {
			end = len(src)
		}
		fn(0, end, ch, errOrNil(err))
		return
	}
	unescapeString(src, mode, fn)
}

func errOrNil(e EscapeError) error {
	if e == 0 {
		return nil
	}
	return e
}

func unescapeSingle(src string, mode Mode) (string, rune, EscapeError) {
	if src == "" {
		return src, 0, EscapeZeroChars
	}
	c, size := utf8.DecodeRuneInString(src)
	rest := src[size:]

	var ch rune
	var err EscapeError
	switch c {
	case '\\':
		rest, ch, err = scanEscape(rest, mode)
	case '\n', '\t', '\'':
		err = EscapeOnlyChar
	case '\r':
		err = EscapeBareCarriageReturn
	default:
		ch, err = asciiCheck(c, mode)
	}
	if err != 0 {
		return rest, ch, err
	}
	if rest != "" {
		return rest, ch, EscapeMoreThanOneChar
	}
	return rest, ch, 0
}

func asciiCheck(c rune, mode Mode) (rune, EscapeError) {
	if mode.IsByte() && c >= utf8.RuneSelf {
		return c, EscapeNonASCIIInByte
	}
	return c, 0
}

// scanEscape decodes the escape sequence that follows a backslash.
func scanEscape(rest string, mode Mode) (string, rune, EscapeError) {
	if rest == "" {
		return rest, 0, EscapeLoneBackslash
	}
	c, size := utf8.DecodeRuneInString(rest)
	rest = rest[size:]

	switch c {
	case '"':
		return rest, '"', 0
	case 'n':
		return rest, '\n', 0
	case 'r':
		return rest, '\r', 0
	case 't':
		return rest, '\t', 0
	case '\\':
		return rest, '\\', 0
	case '\'':
		return rest, '\'', 0
	case '0':
		return rest, 0, 0
	case 'x':
		var value rune
		for i := 0; i < 2; i++ {
			if rest == "" {
				return rest, 0, EscapeTooShortHex
			}
			d, size := utf8.DecodeRuneInString(rest)
			v, ok := hexValue(d)
			if !ok {
				return rest, 0, EscapeInvalidCharInHex
			}
			rest = rest[size:]
			value = value<<4 | v
		}
		return rest, value, 0
	case 'u':
		return scanUnicode(rest, mode)
	}
	return rest, 0, EscapeInvalid
}

// scanUnicode decodes the `{XXXXXX}` part of a `\u` escape.
func scanUnicode(rest string, mode Mode) (string, rune, EscapeError) {
	if !strings.HasPrefix(rest, "{") {
		return rest, 0, EscapeNoBraceInUnicode
	}
	rest = rest[1:]

	if rest == "" {
		return rest, 0, EscapeUnclosedUnicode
	}
	switch rest[0] {
	case '_':
		return rest[1:], 0, EscapeLeadingUnderscoreUnicode
	case '}':
		return rest[1:], 0, EscapeEmptyUnicode
	}

	var value rune
	digits := 0
	for {
		if rest == "" {
			return rest, 0, EscapeUnclosedUnicode
		}
		c, size := utf8.DecodeRuneInString(rest)
		rest = rest[size:]

		switch {
		case c == '_':
			continue
		case c == '}':
			switch {
			case digits > 6:
				return rest, 0, EscapeOverlongUnicode
			case mode.IsByte():
				return rest, 0, EscapeUnicodeInByte
			case value >= 0xD800 && value <= 0xDFFF:
				return rest, 0, EscapeLoneSurrogateUnicode
			case value > utf8.MaxRune:
				return rest, 0, EscapeOutOfRangeUnicode
			}
			return rest, value, 0
		}

		v, ok := hexValue(c)
		if !ok {
			return rest, 0, EscapeInvalidCharInUnicode
		}
		digits++
		if digits <= 6 {
			value = value<<4 | v
		}
	}
}

func unescapeString(src string, mode Mode, fn UnescapeFunc) {
	rest := src
	for rest != "" {
		start := len(src) - len(rest)
		c, size := utf8.DecodeRuneInString(rest)
		rest = rest[size:]

		var ch rune
		var err EscapeError
		switch c {
		case '\\':
			if strings.HasPrefix(rest, "\n") {
				rest = skipContinuation(start, rest, fn)
				continue
			}
			rest, ch, err = scanEscape(rest, mode)
		case '"':
			err = EscapeOnlyChar
		case '\r':
			err = EscapeBareCarriageReturn
		default:
			ch, err = asciiCheck(c, mode)
		}
		fn(start, len(src)-len(rest), ch, errOrNil(err))
	}
}

// skipContinuation drops the newline after a backslash and all ASCII
// whitespace following it. tail starts at that newline.
func skipContinuation(start int, tail string, fn UnescapeFunc) string {
	skip := 0
	for skip < len(tail) && isASCIISpace(tail[skip]) {
		skip++
	}
	if strings.Contains(tail[1:skip], "\n") {
		fn(start, start+1+skip, 0, EscapeMultipleSkippedLines)
	}
	return tail[skip:]
}

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

func hexValue(c rune) (rune, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
