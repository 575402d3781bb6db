package basis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoundedBoundaryValues(t *testing.T) {
	t.Run("ChebyshevT", func(t *testing.T) {
		b, err := NewBackend(Bounded, ChebyshevT)
		require.NoError(t, err)
		for n := 0; n <= 10; n++ {
			require.InDelta(t, 1, b.ValueAt(1, n), 1e-12)
			require.InDelta(t, math.Pow(-1, float64(n)), b.ValueAt(-1, n), 1e-12)
		}
	})

	t.Run("ChebyshevU", func(t *testing.T) {
		b, err := NewBackend(Bounded, ChebyshevU)
		require.NoError(t, err)
		for n := 0; n <= 10; n++ {
			require.InDelta(t, float64(n+1), b.ValueAt(1, n), 1e-12)
		}
	})

	t.Run("Legendre", func(t *testing.T) {
		b, err := NewBackend(Bounded, Legendre)
		require.NoError(t, err)
		for n := 0; n <= 10; n++ {
			require.InDelta(t, 1, b.ValueAt(1, n), 1e-12)
			require.InDelta(t, math.Pow(-1, float64(n)), b.ValueAt(-1, n), 1e-12)
		}
	})

	t.Run("Laguerre", func(t *testing.T) {
		b, err := NewBackend(Bounded, Laguerre)
		require.NoError(t, err)
		for n := 0; n <= 10; n++ {
			require.InDelta(t, 1, b.ValueAt(0, n), 1e-12)
		}
	})

	t.Run("HermitePhys", func(t *testing.T) {
		b, err := NewBackend(Bounded, HermitePhys)
		require.NoError(t, err)
		// H_n(0): 1, 0, -2, 0, 12, 0, -120.
		want := []float64{1, 0, -2, 0, 12, 0, -120}
		for n, w := range want {
			require.InDelta(t, w, b.ValueAt(0, n), 1e-12)
		}
	})

	t.Run("HermiteProb", func(t *testing.T) {
		b, err := NewBackend(Bounded, HermiteProb)
		require.NoError(t, err)
		// He_n(0): 1, 0, -1, 0, 3, 0, -15.
		want := []float64{1, 0, -1, 0, 3, 0, -15}
		for n, w := range want {
			require.InDelta(t, w, b.ValueAt(0, n), 1e-12)
		}
	})

	t.Run("Fourier", func(t *testing.T) {
		b, err := NewBackend(Bounded, Fourier)
		require.NoError(t, err)
		// 1, cos(0), sin(0), cos(0), sin(0), ...
		want := []float64{1, 1, 0, 1, 0, 1, 0}
		for n, w := range want {
			require.InDelta(t, w, b.ValueAt(0, n), 1e-12)
		}
	})

	t.Run("Monomial", func(t *testing.T) {
		b, err := NewBackend(Bounded, Monomial)
		require.NoError(t, err)
		for n := 0; n <= 10; n++ {
			require.InDelta(t, math.Pow(0.5, float64(n)), b.ValueAt(0.5, n), 1e-12)
		}
	})
}

// The first retained column of the Chebyshev scenario below is pinned from
// the recurrence by hand: with [0, 1] mapped onto [-1, 1] the scale is 2, and
// d/dx T_2 = 4z * 2 = 8z = 8(2x-1).
func TestBoundedChebyshevGolden(t *testing.T) {
	spec, err := NewSpec(ChebyshevT, 6, []int{0, 1}, 0, 1)
	require.NoError(t, err)

	e, err := NewEvaluator(spec, Bounded, 1)
	require.NoError(t, err)

	points := []float64{0, 0.2, 0.4, 0.6, 0.8, 1.0}
	m, err := e.Matrix(points, 1)
	require.NoError(t, err)

	require.Equal(t, 6, m.Rows())
	require.Equal(t, 5, m.Cols())

	golden := []float64{-8, -4.8, -1.6, 1.6, 4.8, 8}
	for i, w := range golden {
		require.InDelta(t, w, m.At(i, 0), 1e-12)
	}
}

// T'_n = n * U_{n-1} ties the two Chebyshev kinds' recurrences together.
func TestBoundedChebyshevDerivativeIdentity(t *testing.T) {
	bt, err := NewBackend(Bounded, ChebyshevT)
	require.NoError(t, err)
	bu, err := NewBackend(Bounded, ChebyshevU)
	require.NoError(t, err)

	for _, z := range []float64{-0.9, -0.35, 0, 0.1, 0.77, 1} {
		for n := 1; n <= 8; n++ {
			d, err := bt.DerivativeAt(z, n, 1)
			require.NoError(t, err)
			require.InDelta(t, float64(n)*bu.ValueAt(z, n-1), d, 1e-10)
		}
	}
}

// (2n+1) P_n = P'_{n+1} - P'_{n-1}.
func TestBoundedLegendreDerivativeIdentity(t *testing.T) {
	b, err := NewBackend(Bounded, Legendre)
	require.NoError(t, err)

	for _, z := range []float64{-1, -0.6, -0.123, 0, 0.4, 0.9, 1} {
		for n := 1; n <= 8; n++ {
			dNext, err := b.DerivativeAt(z, n+1, 1)
			require.NoError(t, err)
			dPrev, err := b.DerivativeAt(z, n-1, 1)
			require.NoError(t, err)
			require.InDelta(t, float64(2*n+1)*b.ValueAt(z, n), dNext-dPrev, 1e-9)
		}
	}
}

func TestBoundedMonomialClosedForm(t *testing.T) {
	b, err := NewBackend(Bounded, Monomial)
	require.NoError(t, err)

	fact := func(n int) float64 {
		f := 1.0
		for i := 2; i <= n; i++ {
			f *= float64(i)
		}
		return f
	}

	for _, z := range []float64{-1.5, -0.2, 0.3, 1.1} {
		for n := 0; n <= 7; n++ {
			for k := 0; k <= 8; k++ {
				want := 0.0
				if k <= n {
					want = fact(n) / fact(n-k) * math.Pow(z, float64(n-k))
				}
				got, err := b.DerivativeAt(z, n, k)
				require.NoError(t, err)
				require.InDelta(t, want, got, 1e-9*math.Max(1, math.Abs(want)))
			}
		}
	}
}

func TestBoundedFourierDerivatives(t *testing.T) {
	b, err := NewBackend(Bounded, Fourier)
	require.NoError(t, err)

	z := 0.37
	for j := 1; j <= 3; j++ {
		jf := float64(j)
		cosIdx, sinIdx := 2*j-1, 2*j
		for k := 0; k <= 12; k++ {
			jk := math.Pow(jf, float64(k))
			wantCos := jk * math.Cos(jf*z+float64(k)*math.Pi/2)
			wantSin := jk * math.Sin(jf*z+float64(k)*math.Pi/2)

			gotCos, err := b.DerivativeAt(z, cosIdx, k)
			require.NoError(t, err)
			gotSin, err := b.DerivativeAt(z, sinIdx, k)
			require.NoError(t, err)

			tol := 1e-9 * math.Max(1, jk)
			require.InDelta(t, wantCos, gotCos, tol)
			require.InDelta(t, wantSin, gotSin, tol)
		}
	}
}

// Central differences of order k must approximate order k+1: requesting a
// higher order directly agrees with chaining single differentiations.
func TestBoundedDerivativeChaining(t *testing.T) {
	const h = 1e-5
	for f := ChebyshevT; f <= Monomial; f++ {
		b, err := NewBackend(Bounded, f)
		require.NoError(t, err)
		for _, z := range []float64{-0.5, 0.25, 0.65} {
			for n := 0; n <= 6; n++ {
				for k := 0; k <= 2; k++ {
					lo, err := b.DerivativeAt(z-h, n, k)
					require.NoError(t, err)
					hi, err := b.DerivativeAt(z+h, n, k)
					require.NoError(t, err)
					want, err := b.DerivativeAt(z, n, k+1)
					require.NoError(t, err)
					fd := (hi - lo) / (2 * h)
					require.InDelta(t, want, fd, 1e-4*math.Max(1, math.Abs(want)),
						"family %s n=%d k=%d z=%v", f, n, k, z)
				}
			}
		}
	}
}

func TestBoundedOrderCap(t *testing.T) {
	b, err := NewBackend(Bounded, ChebyshevT)
	require.NoError(t, err)

	_, err = b.DerivativeAt(0.5, 3, ChebyshevT.MaxBoundedOrder())
	require.NoError(t, err)
	_, err = b.DerivativeAt(0.5, 3, ChebyshevT.MaxBoundedOrder()+1)
	require.ErrorIs(t, err, ErrUnsupportedOrder)
	_, err = b.DerivativeAt(0.5, 3, -1)
	require.ErrorIs(t, err, ErrUnsupportedOrder)

	// The Fourier cap is higher: the quarter-turn identity has no table.
	bf, err := NewBackend(Bounded, Fourier)
	require.NoError(t, err)
	_, err = bf.DerivativeAt(0.5, 3, 12)
	require.NoError(t, err)
	_, err = bf.DerivativeAt(0.5, 3, 13)
	require.ErrorIs(t, err, ErrUnsupportedOrder)
}

func TestEvaluatorRejectsOrderAtConstruction(t *testing.T) {
	spec, err := NewSpec(Legendre, 4, nil, 0, 2)
	require.NoError(t, err)

	_, err = NewEvaluator(spec, Bounded, Legendre.MaxBoundedOrder()+1)
	require.ErrorIs(t, err, ErrUnsupportedOrder)

	// The generic backend has no cap to validate against.
	_, err = NewEvaluator(spec, Generic, Legendre.MaxBoundedOrder()+1)
	require.NoError(t, err)
}

func TestEvaluatorDerivativeOperator(t *testing.T) {
	spec, err := NewSpec(ChebyshevT, 6, []int{0, 1}, 0, 1)
	require.NoError(t, err)
	e, err := NewEvaluator(spec, Bounded, 2)
	require.NoError(t, err)

	op, err := e.Derivative(1)
	require.NoError(t, err)

	points := []float64{0, 0.25, 0.5, 1}
	got, err := op(points)
	require.NoError(t, err)
	want, err := e.Matrix(points, 1)
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = e.Derivative(ChebyshevT.MaxBoundedOrder() + 1)
	require.ErrorIs(t, err, ErrUnsupportedOrder)
	_, err = e.Derivative(-1)
	require.ErrorIs(t, err, ErrUnsupportedOrder)
}
