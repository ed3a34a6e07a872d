package mathexpr

// validate checks that every group in t alternates between operands and
// operators, starting and ending with an operand.
func validate[T any](t *token[T]) error {
	switch t.kind {
	case tokValue, tokVariable:
		return nil
	case tokNeg, tokCall:
		return validate(t.arg)
	case tokGroup:
		// handled below
	default:
		return &ExpressionError{Col: t.pos, Token: t.text, Want: "operand"}
	}
	operand := true
	for i := range t.sub {
		c := &t.sub[i]
		if c.isOperator() {
			if operand {
				return &ExpressionError{Col: c.pos, Token: c.text, Want: "operand"}
			}
			operand = true
			continue
		}
		if !operand {
			return &ExpressionError{Col: c.pos, Token: c.text, Want: "operator"}
		}
		if err := validate(c); err != nil {
			return err
		}
		operand = false
	}
	if operand {
		// Either the group is empty or it ends with an operator.
		err := &ExpressionError{Col: t.end, Want: "operand"}
		if t.text == "(" {
			err.Token = ")"
		}
		return err
	}
	return nil
}
