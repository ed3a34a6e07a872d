package mathexpr

var (
	// multiplicative and additive are the operator sets of each precedence
	// level, most binding first.
	multiplicative = []tokenKind{tokTimes, tokDivide}
	additive       = []tokenKind{tokPlus, tokMinus}
)

// precedence nests every binary operation of a validated token tree into its
// own three-element group.
func precedence[T any](t token[T]) token[T] {
	t = restructure(t, multiplicative...)
	return restructure(t, additive...)
}

// restructure folds each operator in ops together with the operands on either
// side into a group of three, left to right. Other operators are left in
// place. Nested groups, negations, and call arguments are restructured
// recursively, including right operands before they are folded. t must be
// validated.
func restructure[T any](t token[T], ops ...tokenKind) token[T] {
	switch t.kind {
	case tokNeg, tokCall:
		arg := restructure(*t.arg, ops...)
		t.arg = &arg
		return t
	case tokGroup:
		// handled below
	default:
		return t
	}
	out := make([]token[T], 0, len(t.sub))
	for i := 0; i < len(t.sub); i++ {
		c := t.sub[i]
		if !in(c.kind, ops) {
			out = append(out, restructure(c, ops...))
			continue
		}
		left := out[len(out)-1]
		out = out[:len(out)-1]
		i++
		right := restructure(t.sub[i], ops...)
		fold := token[T]{
			kind: tokGroup,
			text: left.text,
			pos:  left.pos,
			end:  right.end,
			sub:  []token[T]{left, c, right},
		}
		out = append(out, fold)
	}
	t.sub = out
	return t
}

func in(k tokenKind, ops []tokenKind) bool {
	for _, op := range ops {
		if k == op {
			return true
		}
	}
	return false
}
