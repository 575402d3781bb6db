// Package basis implements the dual-backend basis-function evaluation and
// differentiation engine: domain mapping, the closed set of basis families
// with their recurrence relations, and the construction of points-by-orders
// matrices of basis values and derivatives of any order.
//
// Everything in this package is a pure function over immutable inputs and is
// safe to call concurrently without coordination.
package basis

import "fmt"

// Kind selects one of the two backend implementations. The choice is made
// once at evaluator construction and fixed thereafter.
type Kind int

const (
	// Bounded is the float64 backend with fixed recurrence tables and a
	// per-family derivative-order cap.
	Bounded Kind = iota
	// Generic is the element-type generic backend with no order cap.
	Generic
)

func (k Kind) String() string {
	switch k {
	case Bounded:
		return "Bounded"
	case Generic:
		return "Generic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Backend is the float64 contract shared by the two implementations: the
// value of the n-th basis function at a canonical coordinate, and its k-th
// derivative. For any family and any order within the bounded cap both
// implementations agree within floating tolerance.
type Backend interface {
	ValueAt(z float64, n int) float64
	DerivativeAt(z float64, n, k int) (float64, error)
}

// NewBackend returns the float64 backend of the given kind for a family.
func NewBackend(kind Kind, family Family) (Backend, error) {
	if !family.valid() {
		return nil, fmt.Errorf("cannot NewBackend: unknown family %s: %w", family, ErrInvalidSpec)
	}
	switch kind {
	case Bounded:
		return newBoundedBackend(family), nil
	case Generic:
		return &genericBackend{family: family}, nil
	default:
		return nil, fmt.Errorf("cannot NewBackend: unknown kind %s: %w", kind, ErrInvalidSpec)
	}
}

// genericBackend adapts the generic engine at T = float64 to the Backend
// contract.
type genericBackend struct {
	family Family
}

func (b *genericBackend) ValueAt(z float64, n int) float64 {
	v, _ := derivativeAt[float64](Float64Arithmetic{}, b.family, z, n, 0)
	return v
}

func (b *genericBackend) DerivativeAt(z float64, n, k int) (float64, error) {
	return derivativeAt[float64](Float64Arithmetic{}, b.family, z, n, k)
}

// Evaluator builds basis matrices over float64 points with the backend chosen
// at construction.
type Evaluator struct {
	spec    Spec
	dm      DomainMap
	backend Backend
}

// NewEvaluator validates the spec and the backend choice. maxOrder declares
// the highest derivative order the caller intends to request; for the bounded
// backend an order above the family cap is rejected here, before any
// evaluation occurs.
func NewEvaluator(spec Spec, kind Kind, maxOrder int) (*Evaluator, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("cannot NewEvaluator: %w", err)
	}
	if maxOrder < 0 {
		return nil, fmt.Errorf("cannot NewEvaluator: max order %d: %w", maxOrder, ErrUnsupportedOrder)
	}
	if kind == Bounded && maxOrder > spec.Family.MaxBoundedOrder() {
		return nil, fmt.Errorf("cannot NewEvaluator: max order %d for family %s with cap %d: %w",
			maxOrder, spec.Family, spec.Family.MaxBoundedOrder(), ErrUnsupportedOrder)
	}
	backend, err := NewBackend(kind, spec.Family)
	if err != nil {
		return nil, fmt.Errorf("cannot NewEvaluator: %w", err)
	}
	dm, err := spec.DomainMap()
	if err != nil {
		return nil, fmt.Errorf("cannot NewEvaluator: %w", err)
	}
	return &Evaluator{spec: spec, dm: dm, backend: backend}, nil
}

// Spec returns the specification the evaluator was built from.
func (e *Evaluator) Spec() Spec { return e.spec }

// DomainMap returns the evaluator's affine domain map.
func (e *Evaluator) DomainMap() DomainMap { return e.dm }

// Matrix evaluates the k-th derivative of every retained basis function at
// every point: rows follow the point order, columns the retained orders in
// ascending original index, each entry rescaled by Scale^k. The matrix is a
// pure function of (spec, points, k); calling Matrix never mutates the
// evaluator.
func (e *Evaluator) Matrix(points []float64, k int) (Matrix[float64], error) {
	if k < 0 {
		return Matrix[float64]{}, fmt.Errorf("cannot Matrix: order %d: %w", k, ErrUnsupportedOrder)
	}
	ck := powScale(e.dm.Scale(), k)
	orders := e.spec.Retained()
	m := newMatrix[float64](len(points), len(orders))
	for i, x := range points {
		z := e.dm.Forward(x)
		for j, n := range orders {
			v, err := e.backend.DerivativeAt(z, n, k)
			if err != nil {
				return Matrix[float64]{}, fmt.Errorf("cannot Matrix: %w", err)
			}
			m.set(i, j, v*ck)
		}
	}
	return m, nil
}

// Derivative returns the k-th derivative operator as a function over point
// sets, the contract consumed by constrained-expression builders and solvers.
// Unsupported orders are rejected here rather than at first call.
func (e *Evaluator) Derivative(k int) (func(points []float64) (Matrix[float64], error), error) {
	if k < 0 {
		return nil, fmt.Errorf("cannot Derivative: order %d: %w", k, ErrUnsupportedOrder)
	}
	if _, ok := e.backend.(*boundedBackend); ok && k > e.spec.Family.MaxBoundedOrder() {
		return nil, fmt.Errorf("cannot Derivative: order %d for family %s with cap %d: %w",
			k, e.spec.Family, e.spec.Family.MaxBoundedOrder(), ErrUnsupportedOrder)
	}
	return func(points []float64) (Matrix[float64], error) {
		return e.Matrix(points, k)
	}, nil
}
