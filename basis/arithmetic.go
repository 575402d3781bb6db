package basis

import (
	"math"
	"math/big"
	"math/cmplx"

	"github.com/ansatzlab/ansatz/utils/bignum"
)

// Arithmetic defines the scalar operations the generic backend needs on an
// element type T. Implementations must be stateless value types safe for
// concurrent use; the element type of a matrix is fixed by the Arithmetic
// chosen at evaluator construction.
type Arithmetic[T any] interface {
	FromFloat64(x float64) T
	Add(x, y T) T
	Sub(x, y T) T
	Mul(x, y T) T
	Cos(x T) T
	Sin(x T) T
}

// powIntArithmetic is implemented by arithmetics that provide a native
// integer power; the generic backend falls back to repeated multiplication.
type powIntArithmetic[T any] interface {
	PowInt(x T, k int) T
}

// Float64Arithmetic evaluates in float64. It mirrors the bounded backend's
// operation order exactly, which is what makes cross-backend verification
// meaningful down to the last bit.
type Float64Arithmetic struct{}

func (Float64Arithmetic) FromFloat64(x float64) float64 { return x }
func (Float64Arithmetic) Add(x, y float64) float64      { return x + y }
func (Float64Arithmetic) Sub(x, y float64) float64      { return x - y }
func (Float64Arithmetic) Mul(x, y float64) float64      { return x * y }
func (Float64Arithmetic) Cos(x float64) float64         { return math.Cos(x) }
func (Float64Arithmetic) Sin(x float64) float64         { return math.Sin(x) }

// Complex128Arithmetic evaluates in complex128, for basis expansions over
// points continued into the complex plane.
type Complex128Arithmetic struct{}

func (Complex128Arithmetic) FromFloat64(x float64) complex128 { return complex(x, 0) }
func (Complex128Arithmetic) Add(x, y complex128) complex128   { return x + y }
func (Complex128Arithmetic) Sub(x, y complex128) complex128   { return x - y }
func (Complex128Arithmetic) Mul(x, y complex128) complex128   { return x * y }
func (Complex128Arithmetic) Cos(x complex128) complex128      { return cmplx.Cos(x) }
func (Complex128Arithmetic) Sin(x complex128) complex128      { return cmplx.Sin(x) }

// BigFloatArithmetic evaluates in *big.Float at a fixed working precision.
// Inputs of any precision are accepted; every result carries Prec bits.
type BigFloatArithmetic struct {
	Prec uint
}

// NewBigFloatArithmetic returns an arithmetic with prec bits of working
// precision. prec = 0 defaults to 128.
func NewBigFloatArithmetic(prec uint) BigFloatArithmetic {
	if prec == 0 {
		prec = 128
	}
	return BigFloatArithmetic{Prec: prec}
}

func (a BigFloatArithmetic) FromFloat64(x float64) *big.Float {
	return bignum.NewFloat(x, a.Prec)
}

func (a BigFloatArithmetic) Add(x, y *big.Float) *big.Float {
	return new(big.Float).SetPrec(a.Prec).Add(x, y)
}

func (a BigFloatArithmetic) Sub(x, y *big.Float) *big.Float {
	return new(big.Float).SetPrec(a.Prec).Sub(x, y)
}

func (a BigFloatArithmetic) Mul(x, y *big.Float) *big.Float {
	return new(big.Float).SetPrec(a.Prec).Mul(x, y)
}

func (a BigFloatArithmetic) Cos(x *big.Float) *big.Float {
	return bignum.Cos(new(big.Float).SetPrec(a.Prec).Set(x))
}

func (a BigFloatArithmetic) Sin(x *big.Float) *big.Float {
	return bignum.Sin(new(big.Float).SetPrec(a.Prec).Set(x))
}

// PowInt returns x^k for k >= 0.
func (a BigFloatArithmetic) PowInt(x *big.Float, k int) *big.Float {
	if k == 0 {
		return bignum.NewFloat(1, a.Prec)
	}
	if x.Sign() == 0 {
		return bignum.NewFloat(0, a.Prec)
	}
	// bignum.Pow requires a positive base; restore the sign afterwards.
	abs := new(big.Float).SetPrec(a.Prec).Abs(x)
	y := bignum.Pow(abs, bignum.NewFloat(k, a.Prec))
	if x.Signbit() && k&1 == 1 {
		y.Neg(y)
	}
	return y.SetPrec(a.Prec)
}
