package mathexpr

import (
	"strconv"
	"strings"
)

// token is one syntactic unit between lexing and building the AST.
type token[T any] struct {
	kind tokenKind
	// text is the source text of the token, used for names and in errors.
	text string
	// pos is the column of the token's first rune. For groups it is the
	// column of the open bracket, or 1 for the whole input.
	pos int
	// end is the column of a group's close bracket or the end of input.
	end int

	val T
	// sub is the elements of a group.
	sub []token[T]
	// arg is the operand of a negation or the argument group of a call.
	arg *token[T]
}

type tokenKind int8

const (
	tokNone tokenKind = iota

	tokValue    // literal in val
	tokVariable // name in text
	tokCall     // function name in text, argument group in arg
	tokNeg      // unary minus of arg
	tokGroup    // sequence in sub

	tokPlus
	tokMinus
	tokTimes
	tokDivide
)

func (k tokenKind) String() string {
	switch k {
	case tokNone:
		return "None"
	case tokValue:
		return "Value"
	case tokVariable:
		return "Variable"
	case tokCall:
		return "Call"
	case tokNeg:
		return "Neg"
	case tokGroup:
		return "Group"
	case tokPlus:
		return "Plus"
	case tokMinus:
		return "Minus"
	case tokTimes:
		return "Times"
	case tokDivide:
		return "Divide"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// isOperator returns whether the token is one of the binary operator markers.
func (t *token[T]) isOperator() bool {
	switch t.kind {
	case tokPlus, tokMinus, tokTimes, tokDivide:
		return true
	}
	return false
}

// String formats the token tree for debugging, with groups in brackets.
func (t *token[T]) String() string {
	var b strings.Builder
	t.fmt(&b)
	return b.String()
}

func (t *token[T]) fmt(b *strings.Builder) {
	switch t.kind {
	case tokGroup:
		b.WriteByte('[')
		for i := range t.sub {
			if i > 0 {
				b.WriteByte(' ')
			}
			t.sub[i].fmt(b)
		}
		b.WriteByte(']')
	case tokNeg:
		b.WriteByte('-')
		t.arg.fmt(b)
	case tokCall:
		b.WriteString(t.text)
		t.arg.fmt(b)
	default:
		b.WriteString(t.text)
	}
}

// builder converts fragments into a tree of groups.
type builder[T any] struct {
	frags []fragment
	// i is the index of the next fragment.
	i int
	// opens holds the columns of the brackets not yet closed. Its length is
	// the bracket depth.
	opens []int
	// end is the column just past the input.
	end   int
	arith Arith[T]
}

// tokenize builds the token tree of a whole input. The result is always a
// group.
func tokenize[T any](frags []fragment, arith Arith[T]) (token[T], error) {
	b := builder[T]{frags: frags, arith: arith, end: 1}
	if len(frags) > 0 {
		last := frags[len(frags)-1]
		b.end = last.pos + len([]rune(last.text))
	}
	g, err := b.group(1)
	if err != nil {
		return token[T]{}, err
	}
	if len(b.opens) != 0 {
		return token[T]{}, &BracketError{Col: b.opens[len(b.opens)-1], Left: "(", Right: ""}
	}
	return g, nil
}

// group builds tokens until the close bracket of the current group or the end
// of input. The close bracket is consumed.
func (b *builder[T]) group(pos int) (token[T], error) {
	g := token[T]{kind: tokGroup, pos: pos}
	for b.i < len(b.frags) {
		f := b.frags[b.i]
		switch f.text {
		case ")":
			if len(b.opens) == 0 {
				return token[T]{}, &BracketError{Col: f.pos, Left: "", Right: ")"}
			}
			b.opens = b.opens[:len(b.opens)-1]
			b.i++
			g.end = f.pos
			return g, nil
		case "-":
			if len(g.sub) != 0 {
				b.i++
				g.sub = append(g.sub, token[T]{kind: tokMinus, text: f.text, pos: f.pos})
				continue
			}
			// Minus is unary only as the first token of a group.
			t, err := b.negation()
			if err != nil {
				return token[T]{}, err
			}
			g.sub = append(g.sub, t)
		case "+":
			b.i++
			g.sub = append(g.sub, token[T]{kind: tokPlus, text: f.text, pos: f.pos})
		case "*":
			b.i++
			g.sub = append(g.sub, token[T]{kind: tokTimes, text: f.text, pos: f.pos})
		case "/":
			b.i++
			g.sub = append(g.sub, token[T]{kind: tokDivide, text: f.text, pos: f.pos})
		default:
			t, err := b.operand()
			if err != nil {
				return token[T]{}, err
			}
			g.sub = append(g.sub, t)
		}
	}
	g.end = b.end
	return g, nil
}

// negation builds a unary minus applied to the single operand following it.
func (b *builder[T]) negation() (token[T], error) {
	f := b.frags[b.i]
	b.i++
	if b.i >= len(b.frags) {
		return token[T]{}, &ExpressionError{Col: b.end, Want: "operand"}
	}
	var arg token[T]
	var err error
	switch next := b.frags[b.i]; next.text {
	case "-":
		arg, err = b.negation()
	case "+", "*", "/", ")":
		return token[T]{}, &ExpressionError{Col: next.pos, Token: next.text, Want: "operand"}
	default:
		arg, err = b.operand()
	}
	if err != nil {
		return token[T]{}, err
	}
	return token[T]{kind: tokNeg, text: f.text, pos: f.pos, arg: &arg}, nil
}

// operand builds a bracketed group, a number, a variable, or a function call
// starting at the current fragment, which must not be an operator or a close
// bracket.
func (b *builder[T]) operand() (token[T], error) {
	f := b.frags[b.i]
	b.i++
	if f.text == "(" {
		b.opens = append(b.opens, f.pos)
		g, err := b.group(f.pos)
		g.text = f.text
		return g, err
	}
	v, err := b.arith.Parse(f.text)
	if err == nil {
		return token[T]{kind: tokValue, text: f.text, pos: f.pos, val: v}, nil
	}
	if numeric(f.text) {
		return token[T]{}, &NumberError{Col: f.pos, Text: f.text, Err: err}
	}
	if b.i < len(b.frags) && b.frags[b.i].text == "(" {
		open := b.frags[b.i]
		b.i++
		b.opens = append(b.opens, open.pos)
		arg, err := b.group(open.pos)
		if err != nil {
			return token[T]{}, err
		}
		arg.text = open.text
		return token[T]{kind: tokCall, text: f.text, pos: f.pos, arg: &arg}, nil
	}
	return token[T]{kind: tokVariable, text: f.text, pos: f.pos}, nil
}

// numeric returns whether a word looks like it is meant to be a number.
func numeric(s string) bool {
	return s != "" && (s[0] == '.' || '0' <= s[0] && s[0] <= '9')
}
