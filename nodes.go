package mathexpr

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node[T any] struct {
	kind nodeKind

	// name is the variable or function name, or the source text of a number.
	name string
	val  T

	left  *node[T]
	right *node[T]
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // val
	nodeName // lookup(name)
	nodeCall // funcs[name](left)

	nodeNeg // evaluate left, then negate
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeName:
		return "Name"
	case nodeCall:
		return "Call"
	case nodeNeg:
		return "Neg"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// binops maps operator tokens to the nodes they build.
var binops = map[tokenKind]nodeKind{
	tokPlus:   nodeAdd,
	tokMinus:  nodeSub,
	tokTimes:  nodeMul,
	tokDivide: nodeDiv,
}

// collapse replaces every group of one element with that element.
func collapse[T any](t token[T]) token[T] {
	switch t.kind {
	case tokNeg, tokCall:
		arg := collapse(*t.arg)
		t.arg = &arg
	case tokGroup:
		if len(t.sub) == 1 {
			return collapse(t.sub[0])
		}
		sub := make([]token[T], len(t.sub))
		for i, c := range t.sub {
			sub[i] = collapse(c)
		}
		t.sub = sub
	}
	return t
}

// build converts a restructured and collapsed token tree to an AST. Panics if
// the tree has a shape that restructuring cannot produce from valid input.
func build[T any](t *token[T]) *node[T] {
	switch t.kind {
	case tokValue:
		return &node[T]{kind: nodeNum, name: t.text, val: t.val}
	case tokVariable:
		return &node[T]{kind: nodeName, name: t.text}
	case tokNeg:
		return &node[T]{kind: nodeNeg, left: build(t.arg)}
	case tokCall:
		return &node[T]{kind: nodeCall, name: t.text, left: build(t.arg)}
	case tokGroup:
		if len(t.sub) != 3 {
			panic("mathexpr: restructured group has " + strconv.Itoa(len(t.sub)) + " elements: " + t.String())
		}
		k, ok := binops[t.sub[1].kind]
		if !ok {
			panic("mathexpr: restructured group has no operator: " + t.String())
		}
		return &node[T]{kind: k, left: build(&t.sub[0]), right: build(&t.sub[2])}
	default:
		panic("mathexpr: unexpected " + t.kind.String() + " token " + strconv.Quote(t.text))
	}
}

func (n *node[T]) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the node with every binary operation in parentheses.
func (n *node[T]) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNum, nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeNeg:
		// A negation starts its own group so that it parses back wherever it
		// appears.
		b.WriteString("(-(")
		n.left.fmt(b)
		b.WriteString("))")
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString(opstrs[n.kind])
		n.right.fmt(b)
		b.WriteByte(')')
	default:
		panic("mathexpr: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

var opstrs = map[nodeKind]string{
	nodeAdd: " + ",
	nodeSub: " - ",
	nodeMul: " * ",
	nodeDiv: " / ",
}

// equal reports whether two trees have the same shape, names, and values.
func (n *node[T]) equal(m *node[T], arith Arith[T]) bool {
	if n == nil || m == nil {
		return n == m
	}
	if n.kind != m.kind {
		return false
	}
	switch n.kind {
	case nodeNum:
		return arith.Equal(n.val, m.val)
	case nodeName:
		return n.name == m.name
	case nodeCall:
		return n.name == m.name && n.left.equal(m.left, arith)
	default:
		return n.left.equal(m.left, arith) && n.right.equal(m.right, arith)
	}
}

// names adds the names of variables and functions used in n to vars and
// funcs, respectively.
func (n *node[T]) names(vars, funcs map[string]bool) {
	if n == nil {
		return
	}
	switch n.kind {
	case nodeName:
		vars[n.name] = true
	case nodeCall:
		funcs[n.name] = true
	}
	n.left.names(vars, funcs)
	n.right.names(vars, funcs)
}
