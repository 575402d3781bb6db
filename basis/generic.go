package basis

import "fmt"

// GenericEvaluator is the element-type generic backend. It applies the
// family's derivative recurrence iteratively, so there is no cap on the
// derivative order; the cost grows proportionally with it. Because of its
// data-dependent control flow it is not natively traceable by an external
// compiler — the jit package's constant cache exists to bridge that gap.
type GenericEvaluator[T any] struct {
	spec  Spec
	dm    DomainMap
	arith Arithmetic[T]
}

// NewGenericEvaluator validates spec and returns an evaluator producing
// matrices with element type T.
func NewGenericEvaluator[T any](spec Spec, arith Arithmetic[T]) (*GenericEvaluator[T], error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("cannot NewGenericEvaluator: %w", err)
	}
	dm, err := spec.DomainMap()
	if err != nil {
		return nil, fmt.Errorf("cannot NewGenericEvaluator: %w", err)
	}
	return &GenericEvaluator[T]{spec: spec, dm: dm, arith: arith}, nil
}

// Spec returns the specification the evaluator was built from.
func (e *GenericEvaluator[T]) Spec() Spec { return e.spec }

// ValueAt returns the n-th basis function at canonical coordinate z.
func (e *GenericEvaluator[T]) ValueAt(z T, n int) T {
	v, _ := derivativeAt(e.arith, e.spec.Family, z, n, 0)
	return v
}

// DerivativeAt returns the k-th derivative of the n-th basis function at
// canonical coordinate z, for any k >= 0.
func (e *GenericEvaluator[T]) DerivativeAt(z T, n, k int) (T, error) {
	return derivativeAt(e.arith, e.spec.Family, z, n, k)
}

// Matrix evaluates the k-th derivative of every retained basis function at
// every point, rescaled by Scale^k. Points are user-domain values of the
// element type; the domain map is applied in T arithmetic.
func (e *GenericEvaluator[T]) Matrix(points []T, k int) (Matrix[T], error) {
	if k < 0 {
		return Matrix[T]{}, fmt.Errorf("cannot Matrix: order %d: %w", k, ErrUnsupportedOrder)
	}
	ar := e.arith
	z0 := ar.FromFloat64(e.dm.z0)
	x0 := ar.FromFloat64(e.dm.x0)
	scale := ar.FromFloat64(e.dm.scale)
	ck := powT(ar, scale, k)

	orders := e.spec.Retained()
	m := newMatrix[T](len(points), len(orders))
	for i, x := range points {
		z := ar.Add(z0, ar.Mul(scale, ar.Sub(x, x0)))
		for j, n := range orders {
			v, err := derivativeAt(ar, e.spec.Family, z, n, k)
			if err != nil {
				return Matrix[T]{}, fmt.Errorf("cannot Matrix: %w", err)
			}
			m.set(i, j, ar.Mul(v, ck))
		}
	}
	return m, nil
}

// powT returns x^k, through the arithmetic's native integer power when it has
// one and by repeated multiplication otherwise. The float64 fallback performs
// the exact multiplication sequence of the bounded backend.
func powT[T any](ar Arithmetic[T], x T, k int) T {
	if p, ok := ar.(powIntArithmetic[T]); ok {
		return p.PowInt(x, k)
	}
	y := ar.FromFloat64(1)
	for i := 0; i < k; i++ {
		y = ar.Mul(y, x)
	}
	return y
}

// derivativeAt is the iterative form of the differentiated recurrence shared
// by every polynomial family, plus the rotation form of the trigonometric
// derivative for the Fourier family.
func derivativeAt[T any](ar Arithmetic[T], f Family, z T, n, k int) (T, error) {
	var zero T
	if n < 0 {
		panic(fmt.Sprintf("cannot derivativeAt: negative basis order %d", n))
	}
	if k < 0 {
		return zero, fmt.Errorf("cannot derivativeAt: order %d: %w", k, ErrUnsupportedOrder)
	}
	rec, isPoly := f.recurrence()
	if !isPoly {
		return fourierDerivativeT(ar, z, n, k), nil
	}

	// prev and curr hold derivative orders 0..k of p_{i-1} and p_i; the three
	// buffers rotate so each step allocates nothing new.
	prev := make([]T, k+1)
	curr := make([]T, k+1)
	next := make([]T, k+1)
	for d := 0; d <= k; d++ {
		prev[d] = ar.FromFloat64(0)
		curr[d] = ar.FromFloat64(0)
	}
	prev[0] = ar.FromFloat64(1)
	if n == 0 {
		return prev[k], nil
	}
	p1a := ar.FromFloat64(rec.p1a)
	curr[0] = ar.Add(ar.Mul(p1a, z), ar.FromFloat64(rec.p1b))
	if k >= 1 {
		curr[1] = p1a
	}
	for i := 1; i < n; i++ {
		a, b, c := rec.step(i)
		aT := ar.FromFloat64(a)
		cT := ar.FromFloat64(c)
		az := ar.Add(ar.Mul(aT, z), ar.FromFloat64(b))
		next[0] = ar.Sub(ar.Mul(az, curr[0]), ar.Mul(cT, prev[0]))
		for d := 1; d <= k; d++ {
			t := ar.Add(ar.Mul(az, curr[d]), ar.Mul(ar.Mul(ar.FromFloat64(float64(d)), aT), curr[d-1]))
			next[d] = ar.Sub(t, ar.Mul(cT, prev[d]))
		}
		prev, curr, next = curr, next, prev
	}
	return curr[k], nil
}

// fourierDerivativeT differentiates the n-th trigonometric basis function k
// times by iterating the angle-addition rotation
// (A, B) -> (j*B, -j*A) on the representation A*cos(jz) + B*sin(jz).
func fourierDerivativeT[T any](ar Arithmetic[T], z T, n, k int) T {
	if n == 0 {
		if k == 0 {
			return ar.FromFloat64(1)
		}
		return ar.FromFloat64(0)
	}
	j, isCos := fourierWave(n)
	jT := ar.FromFloat64(float64(j))
	arg := ar.Mul(jT, z)

	A, B := ar.FromFloat64(1), ar.FromFloat64(0)
	if !isCos {
		A, B = B, A
	}
	minusJ := ar.FromFloat64(-float64(j))
	for i := 0; i < k; i++ {
		A, B = ar.Mul(jT, B), ar.Mul(minusJ, A)
	}
	return ar.Add(ar.Mul(A, ar.Cos(arg)), ar.Mul(B, ar.Sin(arg)))
}
