// Package calculator implements an embeddable single-precision calculator.
//
// Each call to Evaluate tokenizes, parses, and evaluates one line at once
// against an Environment of named constants and functions. Precedence runs
// from + and - (loosest) through *, /, and % to ** (power) and // (root),
// with signs and function application binding tightest. All binary operators
// fold left to right, so "2 ** 3 ** 2" is 64.
//
// "let x = 4" binds a constant, and "$" is the result of the previous
// successful evaluation. Functions take no brackets; each argument is one
// atomic term, so "max 10 4 + 2" is max(10, 4) + 2. Host functions of one to
// three operands are registered with Environment.RegisterFunction, and any
// Func can pull operands itself through the Operands it is given.
package calculator
