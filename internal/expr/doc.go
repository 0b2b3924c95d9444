// Package expr builds expression trees over structured numbers and reduces
// them.
//
// A tree is made of Literal, Variable, Unary, Binary and Func nodes. Parents
// own their children. Each node also carries a parent link for navigation
// only; nothing is freed or copied through it.
//
// Quantition reduces a tree to a number.Number. It never substitutes
// variables, and a divisor whose whole value is zero yields DivisionMarker
// instead of an error. Simplify rewrites additive and multiplicative
// identities into a fresh tree.
package expr
