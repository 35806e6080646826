// Package semantic defines the expression trees the step checker works on.
//
// Nodes are immutable values. Every node carries an integer id assigned at
// construction; ids correlate positions between two trees and are never
// consulted by DeepEquals. Variadic operators (Add, Mul, Eq) hold two or more
// arguments; the builders panic with an *ArityError otherwise.
//
// Two presentation flags are semantically significant for equality:
// Neg.Subtraction (a - b versus a + -b) and Mul.Implicit (2x versus 2*x).
package semantic
