package mathexpr

import (
	"math"
	"math/big"
	"strconv"
)

// Arith is the set of scalar operations an expression needs. Parsing and
// evaluation are written once against Arith and instantiated per scalar type.
//
// Implementations must not modify their arguments. Add, Sub, Mul, Div, and Neg
// must return values that do not share memory with their inputs when T is a
// pointer type.
type Arith[T any] interface {
	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Div(a, b T) T
	Neg(a T) T
	// Parse parses a numeric literal. Parse is called on every identifier in
	// an expression; an error means the identifier is a name rather than a
	// number, unless it begins with a digit or a dot.
	Parse(s string) (T, error)
	// Zero returns the default value of T.
	Zero() T
	Equal(a, b T) bool
}

// Integer is the set of types usable with Ints.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Float is the set of types usable with Floats.
type Float interface {
	~float32 | ~float64
}

// Ints is the Arith of Go integer types. Division truncates toward zero, and
// division by zero panics exactly as the / operator does.
type Ints[T Integer] struct{}

func (Ints[T]) Add(a, b T) T      { return a + b }
func (Ints[T]) Sub(a, b T) T      { return a - b }
func (Ints[T]) Mul(a, b T) T      { return a * b }
func (Ints[T]) Div(a, b T) T      { return a / b }
func (Ints[T]) Neg(a T) T         { return -a }
func (Ints[T]) Zero() T           { return 0 }
func (Ints[T]) Equal(a, b T) bool { return a == b }

// Parse parses a base 10 integer that fits in T.
func (Ints[T]) Parse(s string) (T, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if int64(T(v)) != v {
		return 0, &strconv.NumError{Func: "ParseInt", Num: s, Err: strconv.ErrRange}
	}
	return T(v), nil
}

// Floats is the Arith of Go floating-point types, with IEEE 754 semantics.
type Floats[T Float] struct{}

func (Floats[T]) Add(a, b T) T      { return a + b }
func (Floats[T]) Sub(a, b T) T      { return a - b }
func (Floats[T]) Mul(a, b T) T      { return a * b }
func (Floats[T]) Div(a, b T) T      { return a / b }
func (Floats[T]) Neg(a T) T         { return -a }
func (Floats[T]) Zero() T           { return 0 }
func (Floats[T]) Equal(a, b T) bool { return a == b }

// Parse parses a decimal number rounded to the precision of T. As with
// strconv.ParseFloat, the spellings of infinity and NaN are numbers.
func (Floats[T]) Parse(s string) (T, error) {
	v, err := strconv.ParseFloat(s, floatbits[T]())
	if err != nil {
		return 0, err
	}
	return T(v), nil
}

// floatbits returns 32 if T has the range of float32 and 64 otherwise.
func floatbits[T Float]() int {
	m := math.MaxFloat64
	if float64(T(m)) != m {
		return 32
	}
	return 64
}

// BigFloat is the Arith of arbitrary-precision floats. Every result is a new
// *big.Float with precision Prec, or 64 if Prec is 0.
//
// The result of evaluating a lone constant or variable is the value held by
// the expression or the variable table. Copy it before modifying it.
type BigFloat struct {
	Prec uint
}

func (b BigFloat) prec() uint {
	if b.Prec == 0 {
		return 64
	}
	return b.Prec
}

func (b BigFloat) num() *big.Float {
	return new(big.Float).SetPrec(b.prec())
}

func (b BigFloat) Add(x, y *big.Float) *big.Float { return b.num().Add(x, y) }
func (b BigFloat) Sub(x, y *big.Float) *big.Float { return b.num().Sub(x, y) }
func (b BigFloat) Mul(x, y *big.Float) *big.Float { return b.num().Mul(x, y) }

// Div divides x by y. Like big.Float.Quo, it panics with big.ErrNaN when both
// are zero or both are infinite.
func (b BigFloat) Div(x, y *big.Float) *big.Float { return b.num().Quo(x, y) }
func (b BigFloat) Neg(x *big.Float) *big.Float    { return b.num().Neg(x) }
func (b BigFloat) Zero() *big.Float               { return b.num() }
func (b BigFloat) Equal(x, y *big.Float) bool     { return x.Cmp(y) == 0 }

// Parse parses a decimal number, or inf or Inf, to the precision of b.
func (b BigFloat) Parse(s string) (*big.Float, error) {
	r, _, err := b.num().Parse(s, 10)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Big returns the Arith of arbitrary-precision floats with the given
// precision in bits.
func Big(prec uint) Arith[*big.Float] {
	return BigFloat{Prec: prec}
}

var (
	Int     Arith[int]     = Ints[int]{}
	Int32   Arith[int32]   = Ints[int32]{}
	Int64   Arith[int64]   = Ints[int64]{}
	Float32 Arith[float32] = Floats[float32]{}
	Float64 Arith[float64] = Floats[float64]{}
)
