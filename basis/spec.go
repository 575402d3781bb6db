package basis

import (
	"fmt"

	"github.com/ansatzlab/ansatz/utils"
)

// Spec describes one univariate basis expansion: a family, the highest basis
// order Degree, the set of removed orders and the user domain. A Spec is
// immutable once built by NewSpec; evaluators recompute matrices from it on
// every call and never write back into it.
type Spec struct {
	Family  Family
	Degree  int
	Removed []int
	X0, XF  float64
}

// NewSpec validates and canonicalizes a specification. The removed-order set
// is copied and stored sorted. Errors wrap ErrInvalidSpec for degree or
// removed-order violations and ErrDomain for degenerate bounds; invalid specs
// are rejected here, never silently corrected.
func NewSpec(family Family, degree int, removed []int, x0, xf float64) (Spec, error) {
	s := Spec{
		Family:  family,
		Degree:  degree,
		Removed: append([]int{}, removed...),
		X0:      x0,
		XF:      xf,
	}
	utils.SortSlice(s.Removed)
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// Validate checks the specification invariants. It is called by NewSpec and
// again by evaluator constructors, so hand-built Spec literals cannot bypass
// validation.
func (s Spec) Validate() error {
	if !s.Family.valid() {
		return fmt.Errorf("cannot Validate: unknown family %s: %w", s.Family, ErrInvalidSpec)
	}
	if s.Degree < 1 {
		return fmt.Errorf("cannot Validate: degree %d < 1: %w", s.Degree, ErrInvalidSpec)
	}
	if len(utils.GetDistincts(s.Removed)) != len(s.Removed) {
		return fmt.Errorf("cannot Validate: duplicate removed orders %v: %w", s.Removed, ErrInvalidSpec)
	}
	for _, n := range s.Removed {
		if n < 0 || n > s.Degree {
			return fmt.Errorf("cannot Validate: removed order %d outside [0, %d]: %w", n, s.Degree, ErrInvalidSpec)
		}
	}
	if s.Columns() < 1 {
		return fmt.Errorf("cannot Validate: %d retained basis functions: %w", s.Columns(), ErrInvalidSpec)
	}
	if s.X0 == s.XF {
		return fmt.Errorf("cannot Validate: [%v, %v]: %w", s.X0, s.XF, ErrDomain)
	}
	return nil
}

// Columns returns the number of retained basis functions, Degree+1-|Removed|.
func (s Spec) Columns() int {
	return s.Degree + 1 - len(s.Removed)
}

// Retained returns the retained basis orders in ascending original index.
// Column j of any matrix built from s holds the basis function of order
// Retained()[j]; indices are never renumbered after removal.
func (s Spec) Retained() []int {
	removed := make(map[int]bool, len(s.Removed))
	for _, n := range s.Removed {
		removed[n] = true
	}
	orders := make([]int, 0, s.Columns())
	for n := 0; n <= s.Degree; n++ {
		if !removed[n] {
			orders = append(orders, n)
		}
	}
	return orders
}

// DomainMap returns the affine map from the spec's domain onto the family's
// canonical domain.
func (s Spec) DomainMap() (DomainMap, error) {
	return NewDomainMap(s.Family, s.X0, s.XF)
}
