/*
Package ansatz provides the basis-function evaluation and differentiation core
used to approximate functions over bounded domains with parametrized families
of basis functions (orthogonal polynomials, trigonometric series, power
series), for use in constrained-expression and least-squares methods.

The engine is exposed through two interchangeable backends sharing a single
contract: a bounded backend restricted to float64 and per-family derivative
order caps but compiled to straight-line code, and a generic backend with no
order cap that is parametric over the numeric element type (float64,
complex128, *big.Float). Both produce, for a given basis specification, point
set and derivative order, the same matrix of basis values within floating
tolerance.

The jit subpackage provides the compile-time constant cache used to splice
basis-matrix-dependent sub-computations as literals into closures handed to an
external tracing compiler.
*/
package ansatz
