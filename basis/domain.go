package basis

import "fmt"

// DomainMap is the affine transform between a user domain [x0, xf] and a
// family's canonical evaluation domain [z0, zf]:
//
//	z = z0 + (zf-z0)*(x-x0)/(xf-x0).
//
// Its derivative dz/dx is constant and rescales k-th derivatives by Scale^k.
type DomainMap struct {
	x0, xf float64
	z0, zf float64
	scale  float64
}

// NewDomainMap builds the affine map from [x0, xf] onto the canonical domain
// of the family. Degenerate bounds x0 == xf return an error wrapping
// ErrDomain.
func NewDomainMap(f Family, x0, xf float64) (DomainMap, error) {
	if !f.valid() {
		return DomainMap{}, fmt.Errorf("cannot NewDomainMap: unknown family %s: %w", f, ErrInvalidSpec)
	}
	if x0 == xf {
		return DomainMap{}, fmt.Errorf("cannot NewDomainMap: [%v, %v]: %w", x0, xf, ErrDomain)
	}
	z0, zf := f.CanonicalDomain()
	return DomainMap{
		x0: x0, xf: xf,
		z0: z0, zf: zf,
		scale: (zf - z0) / (xf - x0),
	}, nil
}

// Forward maps a user-domain point to its canonical coordinate.
func (m DomainMap) Forward(x float64) float64 {
	return m.z0 + m.scale*(x-m.x0)
}

// Inverse maps a canonical coordinate back to the user domain.
func (m DomainMap) Inverse(z float64) float64 {
	return m.x0 + (z-m.z0)/m.scale
}

// Scale returns dz/dx, the constant derivative of the map.
func (m DomainMap) Scale() float64 {
	return m.scale
}

// Canonical returns the canonical domain [z0, zf] the map targets.
func (m DomainMap) Canonical() (z0, zf float64) {
	return m.z0, m.zf
}
