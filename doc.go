// Package mathexpr parses and evaluates arithmetic expressions over any scalar
// type.
//
// Expressions contain numbers, variables, calls of one-argument functions,
// the binary operators + - * / with the usual precedence and left
// associativity, and parentheses. A minus sign at the start of an expression
// or of a parenthesized group negates the operand after it, so "-x * 2" and
// "3 * (-x)" are valid, but "3 * -x" is not.
//
// The scalar type is chosen by an Arith, which provides the arithmetic and
// the parsing of numbers. Ints, Floats, and BigFloat cover Go's integer and
// floating-point types and *big.Float.
//
// Variables and functions are looked up by name each time an expression is
// evaluated, so you can parse an expression once and evaluate it for many
// inputs.
package mathexpr
