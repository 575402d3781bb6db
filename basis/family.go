package basis

import (
	"fmt"
	"math"
)

// Family is a closed enumeration of the supported basis-function families.
// Each family carries its own canonical evaluation domain, recurrence
// relation and bounded-backend derivative-order cap. Adding a family means
// adding a variant here together with its recurrence description; dispatch
// logic elsewhere is untouched.
type Family int

const (
	// ChebyshevT is the Chebyshev polynomials of the first kind on [-1, 1].
	ChebyshevT Family = iota
	// ChebyshevU is the Chebyshev polynomials of the second kind on [-1, 1].
	ChebyshevU
	// Legendre is the Legendre polynomials on [-1, 1].
	Legendre
	// Laguerre is the Laguerre polynomials, evaluated on the window [0, 1].
	Laguerre
	// HermitePhys is the physicists' Hermite polynomials on the window [-1, 1].
	HermitePhys
	// HermiteProb is the probabilists' Hermite polynomials on the window [-1, 1].
	HermiteProb
	// Fourier is the trigonometric basis 1, cos(z), sin(z), cos(2z), sin(2z), ...
	// on [-pi, pi].
	Fourier
	// Monomial is the plain power basis 1, z, z^2, ... on [-1, 1].
	Monomial
)

// familyCount bounds the valid Family values.
const familyCount = int(Monomial) + 1

func (f Family) String() string {
	switch f {
	case ChebyshevT:
		return "ChebyshevT"
	case ChebyshevU:
		return "ChebyshevU"
	case Legendre:
		return "Legendre"
	case Laguerre:
		return "Laguerre"
	case HermitePhys:
		return "HermitePhys"
	case HermiteProb:
		return "HermiteProb"
	case Fourier:
		return "Fourier"
	case Monomial:
		return "Monomial"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

func (f Family) valid() bool {
	return f >= 0 && int(f) < familyCount
}

// CanonicalDomain returns the fixed evaluation domain [z0, zf] of the family.
func (f Family) CanonicalDomain() (z0, zf float64) {
	switch f {
	case Laguerre:
		return 0, 1
	case Fourier:
		return -math.Pi, math.Pi
	default:
		return -1, 1
	}
}

// MaxBoundedOrder returns the highest derivative order the bounded backend
// supports for the family. The generic backend has no such cap.
func (f Family) MaxBoundedOrder() int {
	if f == Fourier {
		// Quarter-turn phase identity, no recurrence table involved.
		return 12
	}
	return maxBoundedOrder
}

// recurrence describes a family as a three-term recurrence
//
//	p_0(z) = 1
//	p_1(z) = p1a*z + p1b
//	p_{n+1}(z) = (a_n*z + b_n) * p_n(z) - c_n * p_{n-1}(z), n >= 1,
//
// which differentiates term by term into
//
//	p_{n+1}^(k) = (a_n*z + b_n) * p_n^(k) + k*a_n * p_n^(k-1) - c_n * p_{n-1}^(k).
//
// Every polynomial family is fully determined by its initial terms and the
// step coefficients; the Fourier family is the one non-polynomial variant and
// is handled by its phase identity instead.
type recurrence struct {
	p1a, p1b float64
	step     func(n int) (a, b, c float64)
}

// recurrence returns the three-term recurrence of the family, or ok = false
// for the Fourier family.
func (f Family) recurrence() (r recurrence, ok bool) {
	switch f {
	case ChebyshevT:
		return recurrence{p1a: 1, step: func(int) (float64, float64, float64) {
			return 2, 0, 1
		}}, true
	case ChebyshevU:
		return recurrence{p1a: 2, step: func(int) (float64, float64, float64) {
			return 2, 0, 1
		}}, true
	case Legendre:
		return recurrence{p1a: 1, step: func(n int) (float64, float64, float64) {
			return float64(2*n+1) / float64(n+1), 0, float64(n) / float64(n+1)
		}}, true
	case Laguerre:
		return recurrence{p1a: -1, p1b: 1, step: func(n int) (float64, float64, float64) {
			return -1 / float64(n+1), float64(2*n+1) / float64(n+1), float64(n) / float64(n+1)
		}}, true
	case HermitePhys:
		return recurrence{p1a: 2, step: func(n int) (float64, float64, float64) {
			return 2, 0, float64(2 * n)
		}}, true
	case HermiteProb:
		return recurrence{p1a: 1, step: func(n int) (float64, float64, float64) {
			return 1, 0, float64(n)
		}}, true
	case Monomial:
		return recurrence{p1a: 1, step: func(int) (float64, float64, float64) {
			return 1, 0, 0
		}}, true
	default:
		return recurrence{}, false
	}
}

// fourierWave returns the harmonic index and phase of the n-th Fourier basis
// function: n = 0 is the constant, odd n are cos(j*z) and even n > 0 are
// sin(j*z) with j = (n+1)/2.
func fourierWave(n int) (j int, isCos bool) {
	return (n + 1) / 2, n%2 == 1
}
