package mathexpr

import (
	"io"
	"strings"
)

// Expr = Operand { Op Operand }
// Operand = num | name | Call | Neg | '(' Expr ')'
// Call = name '(' Expr ')'
// Neg = '-' ( Operand | Neg ), only as the first token of an Expr
// Op = '+' | '-' | '*' | '/'

// Expr is a parsed expression that can be evaluated with variable and
// function tables. An Expr is immutable and safe for concurrent use.
type Expr[T any] struct {
	// n is the root node of the expression.
	n *node[T]
	// vars and funcs are the sorted names of the variables and functions
	// used in the expression.
	vars  []string
	funcs []string
	arith Arith[T]
}

// Parse parses an expression from src using arith for numbers. The given
// options are applied in order.
//
// Unless StopOn is given, Parse reads until EOF. Parse stages run to
// completion one after another: the whole input is lexed, then built into
// bracketed groups, validated, nested by operator precedence, and finally
// converted to an AST.
func Parse[T any](src io.RuneScanner, arith Arith[T], opts ...ParseOption) (*Expr[T], error) {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	frags, err := lex(src, p.stop)
	if err != nil {
		return nil, err
	}
	tokens, err := tokenize(frags, arith)
	if err != nil {
		return nil, err
	}
	if err := validate(&tokens); err != nil {
		return nil, err
	}
	tokens = collapse(precedence(tokens))
	ex := Expr[T]{
		n:     build(&tokens),
		arith: arith,
	}
	vars, funcs := make(map[string]bool), make(map[string]bool)
	ex.n.names(vars, funcs)
	ex.vars = sorted(vars)
	ex.funcs = sorted(funcs)
	return &ex, nil
}

// ParseString parses an expression from a string.
func ParseString[T any](src string, arith Arith[T], opts ...ParseOption) (*Expr[T], error) {
	return Parse(strings.NewReader(src), arith, opts...)
}

func sorted(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	names := make([]string, 0, len(set))
	for k := range set {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// Vars returns the variable names used when evaluating the expression.
func (e *Expr[T]) Vars() []string {
	return append(([]string)(nil), e.vars...)
}

// Funcs returns the function names used when evaluating the expression.
func (e *Expr[T]) Funcs() []string {
	return append(([]string)(nil), e.funcs...)
}

// String creates a string representation of the parsed expression with every
// binary operation in parentheses, e.g. "((2 - 3) + ((4 * 3) / 3))".
func (e *Expr[T]) String() string {
	return e.n.String()
}

// Equal returns whether two expressions have the same structure, names, and
// constant values. Constants are compared with e's Arith.
func (e *Expr[T]) Equal(other *Expr[T]) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.n.equal(other.n, e.arith)
}
