package basis

import (
	"fmt"
	"math"
)

// maxBoundedOrder is the size bound of the bounded backend's rolling
// derivative tables and the cap it declares for every polynomial family.
const maxBoundedOrder = 8

// boundedBackend evaluates basis functions in float64 with fixed-size
// derivative recurrence tables. It is the fast, natively compilable backend;
// the price is the per-family derivative-order cap.
type boundedBackend struct {
	family Family
	rec    recurrence
	isPoly bool
}

func newBoundedBackend(f Family) *boundedBackend {
	rec, ok := f.recurrence()
	return &boundedBackend{family: f, rec: rec, isPoly: ok}
}

// ValueAt returns the n-th basis function of the family at canonical
// coordinate z.
func (b *boundedBackend) ValueAt(z float64, n int) float64 {
	v, _ := b.DerivativeAt(z, n, 0)
	return v
}

// DerivativeAt returns the k-th derivative of the n-th basis function at
// canonical coordinate z, by k-fold differentiation of the family recurrence.
// Orders above the family cap return an error wrapping ErrUnsupportedOrder.
func (b *boundedBackend) DerivativeAt(z float64, n, k int) (float64, error) {
	if n < 0 {
		panic(fmt.Sprintf("cannot DerivativeAt: negative basis order %d", n))
	}
	if k < 0 || k > b.family.MaxBoundedOrder() {
		return 0, fmt.Errorf("cannot DerivativeAt: order %d for family %s with cap %d: %w",
			k, b.family, b.family.MaxBoundedOrder(), ErrUnsupportedOrder)
	}
	if !b.isPoly {
		return fourierDerivative(z, n, k), nil
	}

	// Rolling columns of the differentiated three-term recurrence: prev and
	// curr hold derivative orders 0..k of p_{i-1} and p_i.
	var prev, curr, next [maxBoundedOrder + 1]float64

	prev[0] = 1
	if n == 0 {
		return prev[k], nil
	}
	curr[0] = b.rec.p1a*z + b.rec.p1b
	if k >= 1 {
		curr[1] = b.rec.p1a
	}
	for i := 1; i < n; i++ {
		a, bn, c := b.rec.step(i)
		az := a*z + bn
		next[0] = az*curr[0] - c*prev[0]
		for d := 1; d <= k; d++ {
			next[d] = az*curr[d] + float64(d)*a*curr[d-1] - c*prev[d]
		}
		prev, curr = curr, next
	}
	return curr[k], nil
}

// fourierDerivative evaluates d^k/dz^k of the n-th trigonometric basis
// function through the exact quarter-turn identity
// d^k cos(jz)/dz^k = j^k cos(jz + k*pi/2), avoiding any phase arithmetic.
func fourierDerivative(z float64, n, k int) float64 {
	if n == 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	j, isCos := fourierWave(n)
	arg := float64(j) * z
	jk := powScale(float64(j), k)
	cos, sin := math.Cos(arg), math.Sin(arg)
	if isCos {
		switch k % 4 {
		case 0:
			return jk * cos
		case 1:
			return -jk * sin
		case 2:
			return -jk * cos
		default:
			return jk * sin
		}
	}
	switch k % 4 {
	case 0:
		return jk * sin
	case 1:
		return jk * cos
	case 2:
		return -jk * sin
	default:
		return -jk * cos
	}
}
