package ast

import "github.com/Emmmmllll/Slang/internal/source"

// Glue fuses two adjacent tokens into one compound token, e.g. `=` and `=`
// into `==`, or `<` and `<=` into `<<=`. It reports false for every pair
// that has no fusion. The result spans both inputs and keeps a's context.
func Glue(a, b Token) (Token, bool) {
	kind, op, ok := glueKinds(a, b)
	if !ok {
		return Token{}, false
	}
	return Token{Kind: kind, BinOp: op, Span: a.Span.Combine(b.Span)}, true
}

func glueKinds(a, b Token) (Kind, BinOpToken, bool) {
	switch a.Kind {
	case Eq:
		switch b.Kind {
		case Eq:
			return EqEq, 0, true
		case Gt:
			return FatArrow, 0, true
		}
	case Lt:
		switch {
		case b.Kind == Eq:
			return Le, 0, true
		case b.Kind == Lt:
			return BinOp, Shl, true
		case b.Kind == Le:
			return BinOpEq, Shl, true
		case b.IsBinOp(Minus):
			return LArrow, 0, true
		}
	case Gt:
		switch b.Kind {
		case Eq:
			return Ge, 0, true
		case Gt:
			return BinOp, Shr, true
		case Ge:
			return BinOpEq, Shr, true
		}
	case Not:
		if b.Kind == Eq {
			return Ne, 0, true
		}
	case BinOp:
		switch {
		case b.Kind == Eq:
			return BinOpEq, a.BinOp, true
		case a.BinOp == And && b.IsBinOp(And):
			return AndAnd, 0, true
		case a.BinOp == Or && b.IsBinOp(Or):
			return OrOr, 0, true
		case a.BinOp == Minus && b.Kind == Gt:
			return RArrow, 0, true
		}
	case Dot:
		switch b.Kind {
		case Dot:
			return DotDot, 0, true
		case DotDot:
			return DotDotDot, 0, true
		}
	case DotDot:
		switch b.Kind {
		case Dot:
			return DotDotDot, 0, true
		case Eq:
			return DotDotEq, 0, true
		}
	case Colon:
		if b.Kind == Colon {
			return DoubleColon, 0, true
		}
	}
	return 0, 0, false
}

// Split breaks a compound token back into the two tokens that glue into it,
// e.g. `>>` into `>` and `>`. The first part's span covers its spelling and
// the second part gets the rest. Split reports false for tokens that are not
// compound.
func (t Token) Split() (Token, Token, bool) {
	first, second, ok := splitKinds(t)
	if !ok {
		return Token{}, Token{}, false
	}
	n := source.PosFromInt(len(first.String()))
	mid := t.Span.Lo + n
	if mid > t.Span.Hi {
		mid = t.Span.Hi
	}
	first.Span = t.Span.WithHi(mid)
	second.Span = t.Span.WithLo(mid)
	return first, second, true
}

func splitKinds(t Token) (Token, Token, bool) {
	tok := func(k Kind) Token { return Token{Kind: k} }
	bin := func(op BinOpToken) Token { return Token{Kind: BinOp, BinOp: op} }

	switch t.Kind {
	case Le:
		return tok(Lt), tok(Eq), true
	case EqEq:
		return tok(Eq), tok(Eq), true
	case Ne:
		return tok(Not), tok(Eq), true
	case Ge:
		return tok(Gt), tok(Eq), true
	case AndAnd:
		return bin(And), bin(And), true
	case OrOr:
		return bin(Or), bin(Or), true
	case BinOp:
		switch t.BinOp {
		case Shl:
			return tok(Lt), tok(Lt), true
		case Shr:
			return tok(Gt), tok(Gt), true
		}
	case BinOpEq:
		return bin(t.BinOp), tok(Eq), true
	case DotDot:
		return tok(Dot), tok(Dot), true
	case DotDotDot:
		return tok(Dot), tok(DotDot), true
	case DotDotEq:
		return tok(DotDot), tok(Eq), true
	case DoubleColon:
		return tok(Colon), tok(Colon), true
	case RArrow:
		return bin(Minus), tok(Gt), true
	case LArrow:
		return tok(Lt), bin(Minus), true
	case FatArrow:
		return tok(Eq), tok(Gt), true
	}
	return Token{}, Token{}, false
}
