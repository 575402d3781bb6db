package verify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ansatzlab/ansatz/basis"
)

func TestSweepAllFamilies(t *testing.T) {
	points, err := SamplePoints([]byte("ansatz/verify"), 25, -0.5, 1.75)
	require.NoError(t, err)

	for f := basis.ChebyshevT; f <= basis.Monomial; f++ {
		t.Run(f.String(), func(t *testing.T) {
			spec, err := basis.NewSpec(f, 6, []int{0, 2}, -0.5, 1.75)
			require.NoError(t, err)
			require.NoError(t, Sweep(spec, points, 1e-10))
		})
	}
}

func TestEquivalenceGoldenScenario(t *testing.T) {
	spec, err := basis.NewSpec(basis.ChebyshevT, 6, []int{0, 1}, 0, 1)
	require.NoError(t, err)
	points := []float64{0, 0.2, 0.4, 0.6, 0.8, 1.0}
	require.NoError(t, Equivalence(spec, points, 1, 1e-10))
}

func TestEquivalenceRejectsUncappedOrder(t *testing.T) {
	spec, err := basis.NewSpec(basis.Legendre, 6, nil, 0, 1)
	require.NoError(t, err)
	err = Equivalence(spec, []float64{0.5}, basis.Legendre.MaxBoundedOrder()+1, 1e-10)
	require.ErrorIs(t, err, basis.ErrUnsupportedOrder)
}

func TestSamplePointsDeterministic(t *testing.T) {
	a, err := SamplePoints([]byte("key"), 50, 0, 1)
	require.NoError(t, err)
	b, err := SamplePoints([]byte("key"), 50, 0, 1)
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := SamplePoints([]byte("other"), 50, 0, 1)
	require.NoError(t, err)
	require.NotEqual(t, a, c)

	for _, x := range a {
		require.GreaterOrEqual(t, x, 0.0)
		require.Less(t, x, 1.0)
	}
}

func TestMismatchErrorMessage(t *testing.T) {
	err := &MismatchError{
		Family:  basis.Fourier,
		Order:   3,
		Tol:     1e-10,
		MaxAbs:  2.5e-7,
		MeanAbs: 1e-8,
		Diff:    "(diff)",
	}
	require.Contains(t, err.Error(), "Fourier")
	require.Contains(t, err.Error(), "order 3")
	require.Contains(t, err.Error(), "2.500e-07")
}
