// Package calc implements an arbitrary-precision calculator for infix
// arithmetic on + - * / and parentheses.
//
// An expression goes through four stages: Tokenize splits the text into
// numbers and operators, Negate folds unary minus into the following number,
// Postfix reorders the tokens by precedence, and a Context evaluates the
// postfix sequence with an operand stack. Compile runs the first three stages
// once so that the result can be evaluated with several contexts, e.g. at
// different precisions or with the decimal backend.
//
// A "-" is unary at the start of the input or directly after any operator
// other than ")". "3*-2" is -6; "(1+2)-3" is 0. Characters that are neither
// digits, '.', nor operators are ignored, so "x = 1 + 2" is 3.
//
package calc
