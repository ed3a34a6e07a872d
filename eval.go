package mathexpr

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
)

// Vars is a table of variable values used to evaluate expressions.
type Vars[T any] map[string]T

// Func is a function of one scalar. A function which cannot accept an argument
// may panic with a *DomainError or big.ErrNaN, which evaluation reports as an
// error. Other panics are not recovered.
type Func[T any] func(x T) T

// Funcs is a table of functions used to evaluate expressions.
type Funcs[T any] map[string]Func[T]

// Eval evaluates the expression with the given variables and functions. Either
// table may be nil, in which case any reference to a variable or function
// respectively is an error. Evaluation stops at the first error, which is
// returned as the result of Eval along with the zero value of the Arith.
//
// Eval does not modify e, so it is safe to evaluate the same expression
// concurrently, and each evaluation looks up names again in the tables given.
func (e *Expr[T]) Eval(vars Vars[T], funcs Funcs[T]) (T, error) {
	r, err := e.n.eval(e.arith, vars, funcs)
	if err != nil {
		return e.arith.Zero(), err
	}
	return r, nil
}

// eval computes the value of the node, left to right and depth first.
func (n *node[T]) eval(a Arith[T], vars Vars[T], funcs Funcs[T]) (r T, err error) {
	var x, y T
	switch n.kind {
	case nodeNum:
		return n.val, nil
	case nodeName:
		v, ok := vars[n.name]
		if !ok {
			return r, &NameError{Name: n.name}
		}
		return v, nil
	case nodeCall:
		if x, err = n.left.eval(a, vars, funcs); err != nil {
			return r, err
		}
		f := funcs[n.name]
		if f == nil {
			return r, &FuncError{Name: n.name}
		}
		return call(n.name, f, x)
	case nodeNeg:
		if x, err = n.left.eval(a, vars, funcs); err != nil {
			return r, err
		}
		return a.Neg(x), nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		if x, err = n.left.eval(a, vars, funcs); err != nil {
			return r, err
		}
		if y, err = n.right.eval(a, vars, funcs); err != nil {
			return r, err
		}
	default:
		panic("mathexpr: invalid AST node " + n.kind.String())
	}
	switch n.kind {
	case nodeAdd:
		return a.Add(x, y), nil
	case nodeSub:
		return a.Sub(x, y), nil
	case nodeMul:
		return a.Mul(x, y), nil
	default:
		return a.Div(x, y), nil
	}
}

// call applies a function, converting domain panics into errors.
func call[T any](name string, f Func[T], x T) (r T, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		e, ok := p.(error)
		if !ok {
			panic(p)
		}
		var de *DomainError
		if errors.As(e, &de) {
			if de.Func == "" {
				de.Func = name
			}
			err = de
			return
		}
		var nan big.ErrNaN
		if errors.As(e, &nan) {
			err = &DomainError{X: x, Func: name, Err: e}
			return
		}
		panic(p)
	}()
	return f(x), nil
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString[T any](src string, arith Arith[T], vars Vars[T], funcs Funcs[T]) (T, error) {
	a, err := ParseString(src, arith)
	if err != nil {
		return arith.Zero(), err
	}
	return a.Eval(vars, funcs)
}

// NameError is an error from a lookup for a variable that is missing from the
// variable table.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// FuncError is an error from a lookup for a function that is missing from the
// function table.
type FuncError struct {
	// Name is the name that was missing.
	Name string
}

func (err *FuncError) Error() string {
	return "undefined function: " + strconv.Quote(err.Name)
}

// DomainError is an error returned when a function is called on an argument
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X any
	// Func is a name identifying the function.
	Func string
	// Err is the underlying error, if any.
	Err error
}

func (err *DomainError) Error() string {
	r := fmt.Sprint(err.X) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}

func (err *DomainError) Unwrap() error {
	return err.Err
}
