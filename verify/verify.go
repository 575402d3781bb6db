// Package verify implements cross-backend equivalence checking for the basis
// engine. It is verification tooling: a MismatchError coming out of this
// package means one of the two backends is wrong, never that a caller misused
// the API.
package verify

import (
	"fmt"
	"math"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/montanaflynn/stats"

	"github.com/ansatzlab/ansatz/basis"
	"github.com/ansatzlab/ansatz/utils/sampling"
)

// MismatchError reports a divergence between the bounded and generic backends
// beyond tolerance for one (spec, order) pair.
type MismatchError struct {
	Family  basis.Family
	Order   int
	Tol     float64
	MaxAbs  float64
	MeanAbs float64
	Diff    string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("backend mismatch: family %s order %d: max |diff| %.3e, mean |diff| %.3e, tolerance %.3e\n%s",
		e.Family, e.Order, e.MaxAbs, e.MeanAbs, e.Tol, e.Diff)
}

// Equivalence evaluates spec at derivative order k over points with both
// backends and returns a *MismatchError if any element differs by more than
// tol, taken both as an absolute margin and as a fraction of the larger
// magnitude. nil means the matrices agree.
func Equivalence(spec basis.Spec, points []float64, k int, tol float64) error {
	bounded, err := basis.NewEvaluator(spec, basis.Bounded, k)
	if err != nil {
		return fmt.Errorf("cannot Equivalence: %w", err)
	}
	generic, err := basis.NewGenericEvaluator[float64](spec, basis.Float64Arithmetic{})
	if err != nil {
		return fmt.Errorf("cannot Equivalence: %w", err)
	}

	mb, err := bounded.Matrix(points, k)
	if err != nil {
		return fmt.Errorf("cannot Equivalence: %w", err)
	}
	mg, err := generic.Matrix(points, k)
	if err != nil {
		return fmt.Errorf("cannot Equivalence: %w", err)
	}

	diffs := make([]float64, 0, mb.Rows()*mb.Cols())
	exceeded := false
	for i := 0; i < mb.Rows(); i++ {
		for j := 0; j < mb.Cols(); j++ {
			vb, vg := mb.At(i, j), mg.At(i, j)
			d := math.Abs(vb - vg)
			diffs = append(diffs, d)
			if d > tol && d > tol*math.Max(math.Abs(vb), math.Abs(vg)) {
				exceeded = true
			}
		}
	}
	if !exceeded {
		return nil
	}

	maxAbs, _ := stats.Max(diffs)
	meanAbs, _ := stats.Mean(diffs)
	return &MismatchError{
		Family:  spec.Family,
		Order:   k,
		Tol:     tol,
		MaxAbs:  maxAbs,
		MeanAbs: meanAbs,
		Diff:    cmp.Diff(rows(mb), rows(mg), cmpopts.EquateApprox(tol, tol)),
	}
}

// Sweep runs Equivalence for every derivative order from 0 up to the bounded
// cap of spec's family, returning the first mismatch.
func Sweep(spec basis.Spec, points []float64, tol float64) error {
	for k := 0; k <= spec.Family.MaxBoundedOrder(); k++ {
		if err := Equivalence(spec, points, k, tol); err != nil {
			return err
		}
	}
	return nil
}

// SamplePoints draws n deterministic points in [x0, xf] from a blake2b-keyed
// stream, so equivalence sweeps are reproducible across runs and platforms.
func SamplePoints(key []byte, n int, x0, xf float64) ([]float64, error) {
	prng, err := sampling.NewKeyedPRNG(key)
	if err != nil {
		return nil, fmt.Errorf("cannot SamplePoints: %w", err)
	}
	points := make([]float64, n)
	for i := range points {
		if points[i], err = prng.Float64(x0, xf); err != nil {
			return nil, fmt.Errorf("cannot SamplePoints: %w", err)
		}
	}
	return points, nil
}

func rows(m basis.Matrix[float64]) [][]float64 {
	r := make([][]float64, m.Rows())
	for i := range r {
		r[i] = m.Row(i)
	}
	return r
}
