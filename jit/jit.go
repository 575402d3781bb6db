// Package jit implements the compile-time constant cache bridging basis
// evaluation and an external tracing compiler.
//
// Some basis computations, in particular the generic backend's data-dependent
// recurrences, cannot be expressed inside a traced computation graph. A Cache
// lets the caller mark arguments of a staged Target as compile-time
// constants: the constant-dependent stage runs once, its result is spliced as
// a literal into the closure handed to the Compiler, and only the variable
// arguments flow through compiled code.
package jit

import (
	"encoding/binary"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/zeebo/blake3"
)

// Compiler lowers a closure over variable arguments for repeated execution.
// It abstracts the external JIT/tracing toolchain, which this package treats
// as opaque.
type Compiler interface {
	Compile(f func(vars []float64) []float64) (func(vars []float64) []float64, error)
}

// CompilerFunc adapts a plain function to the Compiler interface.
type CompilerFunc func(f func(vars []float64) []float64) (func(vars []float64) []float64, error)

// Compile implements Compiler.
func (cf CompilerFunc) Compile(f func(vars []float64) []float64) (func(vars []float64) []float64, error) {
	return cf(f)
}

// Interpreter is a pass-through Compiler that executes closures directly, for
// callers without an external toolchain.
type Interpreter struct{}

// Compile implements Compiler by returning f unchanged.
func (Interpreter) Compile(f func(vars []float64) []float64) (func(vars []float64) []float64, error) {
	return f, nil
}

// Target is a staged computation. Eval computes the constant-dependent part
// from the arguments marked constant; it runs at most once per (call site,
// constant fingerprint). Apply combines the spliced literal with the variable
// arguments and is the only stage the external compiler sees.
type Target struct {
	Eval  func(consts []any) ([]float64, error)
	Apply func(lit []float64, vars []float64) []float64
}

type cacheKey struct {
	site uintptr
	fp   [32]byte
}

type entry struct {
	lit []float64
	fn  func(vars []float64) []float64
}

// Cache memoizes compiled closures keyed by call-site identity and the
// fingerprint of the constant arguments. Entries live until the Cache is
// dropped; invalidation is manual, by re-invoking Wrap.
//
// The cache performs no staleness detection: a caller that changes a value
// bound as constant and keeps using a previously returned closure silently
// gets results computed against the stale constant. Debug mode exists to
// catch exactly that during testing.
type Cache struct {
	compiler Compiler
	debug    bool

	mu      sync.Mutex
	entries map[cacheKey]*entry
}

// NewCache returns an empty cache compiling through compiler.
func NewCache(compiler Compiler) *Cache {
	return &Cache{
		compiler: compiler,
		entries:  map[cacheKey]*entry{},
	}
}

// EnableDebug makes every closure returned by subsequent Wrap calls re-run
// Eval on each invocation and panic if the result no longer matches the
// spliced literal, i.e. if the caller changed a bound constant without
// re-wrapping. Meant for tests; it forfeits the caching the package is for.
func (c *Cache) EnableDebug() {
	c.debug = true
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Wrap binds consts as the compile-time constants of target and returns the
// compiled closure over the variable arguments. The first Wrap for a given
// (call site, constant fingerprint) runs target.Eval and compiles
// target.Apply around the resulting literal; later Wraps with equal constants
// from the same call site return the cached closure without re-evaluating.
//
// The returned closure embeds the literal computed now. Callers must not
// change the values bound here and reuse the closure; re-wrap instead.
func (c *Cache) Wrap(target Target, consts ...any) (func(vars []float64) []float64, error) {
	pc, _, _, _ := runtime.Caller(1)
	fp, err := fingerprint(consts)
	if err != nil {
		return nil, fmt.Errorf("cannot Wrap: %w", err)
	}
	key := cacheKey{site: pc, fp: fp}

	// The lock spans Eval and Compile so concurrent wraps through the same
	// call site cannot insert duplicate or torn entries.
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		lit, err := target.Eval(consts)
		if err != nil {
			return nil, fmt.Errorf("cannot Wrap: constant stage: %w", err)
		}
		lit = append([]float64{}, lit...)
		fn, err := c.compiler.Compile(func(vars []float64) []float64 {
			return target.Apply(lit, vars)
		})
		if err != nil {
			return nil, fmt.Errorf("cannot Wrap: compile stage: %w", err)
		}
		e = &entry{lit: lit, fn: fn}
		c.entries[key] = e
	}

	if c.debug {
		return c.debugClosure(target, consts, e), nil
	}
	return e.fn, nil
}

func (c *Cache) debugClosure(target Target, consts []any, e *entry) func(vars []float64) []float64 {
	return func(vars []float64) []float64 {
		fresh, err := target.Eval(consts)
		if err != nil {
			panic(fmt.Errorf("jit: debug re-evaluation failed: %w", err))
		}
		if !equalFloat64s(fresh, e.lit) {
			panic(fmt.Sprintf("jit: constant changed without re-wrapping: cached %v, recomputed %v", e.lit, fresh))
		}
		return e.fn(vars)
	}
}

func equalFloat64s(x, y []float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// fingerprint hashes the constant arguments with blake3. Type tags and
// lengths are folded in so that e.g. the int 1 and the float 1.0 cannot
// collide.
func fingerprint(consts []any) (fp [32]byte, err error) {
	h := blake3.New()
	var buf [8]byte

	writeUint64 := func(tag byte, u uint64) {
		binary.LittleEndian.PutUint64(buf[:], u)
		h.Write([]byte{tag})
		h.Write(buf[:])
	}

	for _, cst := range consts {
		switch v := cst.(type) {
		case float64:
			writeUint64('f', math.Float64bits(v))
		case int:
			writeUint64('i', uint64(v))
		case bool:
			u := uint64(0)
			if v {
				u = 1
			}
			writeUint64('b', u)
		case string:
			writeUint64('s', uint64(len(v)))
			h.Write([]byte(v))
		case []float64:
			writeUint64('F', uint64(len(v)))
			for _, x := range v {
				binary.LittleEndian.PutUint64(buf[:], math.Float64bits(x))
				h.Write(buf[:])
			}
		case []int:
			writeUint64('I', uint64(len(v)))
			for _, x := range v {
				binary.LittleEndian.PutUint64(buf[:], uint64(x))
				h.Write(buf[:])
			}
		case nil:
			h.Write([]byte{'n'})
		default:
			return fp, fmt.Errorf("unsupported constant type %T", cst)
		}
	}
	copy(fp[:], h.Sum(nil))
	return fp, nil
}
