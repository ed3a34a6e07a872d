package mathexpr

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// FloatFuncs returns a new table of common functions of floats. Functions
// outside their domains return NaN rather than failing.
func FloatFuncs[T Float]() Funcs[T] {
	wrap := func(f func(float64) float64) Func[T] {
		return func(x T) T { return T(f(float64(x))) }
	}
	return Funcs[T]{
		"abs":   wrap(math.Abs),
		"sqrt":  wrap(math.Sqrt),
		"exp":   wrap(math.Exp),
		"ln":    wrap(math.Log),
		"log":   wrap(math.Log10),
		"sin":   wrap(math.Sin),
		"cos":   wrap(math.Cos),
		"tan":   wrap(math.Tan),
		"floor": wrap(math.Floor),
		"ceil":  wrap(math.Ceil),
		"round": wrap(math.Round),
	}
}

// IntFuncs returns a new table of common functions of integers.
func IntFuncs[T Integer]() Funcs[T] {
	return Funcs[T]{
		"abs": func(x T) T {
			if x < 0 {
				return -x
			}
			return x
		},
		"sign": func(x T) T {
			switch {
			case x < 0:
				return -1
			case x > 0:
				return 1
			default:
				return 0
			}
		},
		"sqrt": isqrt[T],
	}
}

// isqrt computes the floor of the square root of x by Newton's method. Panics
// with a *DomainError if x is negative.
func isqrt[T Integer](x T) T {
	if x < 0 {
		panic(&DomainError{X: x, Func: "sqrt"})
	}
	if x < 2 {
		return x
	}
	r := x
	s := x - x/2
	for s < r {
		r = s
		s = (r + x/r) / 2
	}
	return r
}

// BigFuncs returns a new table of common functions of arbitrary-precision
// floats, computing results with the given precision in bits. If prec is 0,
// it defaults to 64. Arguments outside a function's domain cause a
// *DomainError.
func BigFuncs(prec uint) Funcs[*big.Float] {
	if prec == 0 {
		prec = 64
	}
	num := func() *big.Float { return new(big.Float).SetPrec(prec) }
	ln := func(x *big.Float) *big.Float {
		switch x.Sign() {
		case -1:
			panic(&DomainError{X: x, Func: "ln"})
		case 0:
			return num().SetInf(true)
		}
		if x.IsInf() {
			return num().SetInf(false)
		}
		return bigfloat.Log(num(), x)
	}
	return Funcs[*big.Float]{
		"abs": func(x *big.Float) *big.Float {
			return num().Abs(x)
		},
		"sqrt": func(x *big.Float) *big.Float {
			if x.Sign() < 0 {
				panic(&DomainError{X: x, Func: "sqrt"})
			}
			return num().Sqrt(x)
		},
		"exp": func(x *big.Float) *big.Float {
			return bigfloat.Exp(num(), x)
		},
		"ln": ln,
		"log": func(x *big.Float) *big.Float {
			if x.Sign() < 0 {
				panic(&DomainError{X: x, Func: "log"})
			}
			r := ln(x)
			if r.IsInf() {
				return r
			}
			ten := bigfloat.Log(num(), num().SetInt64(10))
			return r.Quo(r, ten)
		},
	}
}
