package basis

import "errors"

var (
	// ErrDomain is returned when the user domain bounds are degenerate,
	// i.e. x0 == xf, and no affine map to the canonical domain exists.
	ErrDomain = errors.New("degenerate domain bounds")

	// ErrInvalidSpec is returned when the degree and removed-order set of a
	// specification would retain fewer than one basis function, or when the
	// removed-order set contains duplicate or out-of-range indices.
	ErrInvalidSpec = errors.New("invalid basis specification")

	// ErrUnsupportedOrder is returned when a requested derivative order is
	// negative or exceeds the bounded backend's cap for the family.
	// The generic backend only returns it for negative orders.
	ErrUnsupportedOrder = errors.New("unsupported derivative order")
)
