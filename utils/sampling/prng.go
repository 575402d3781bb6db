// Package sampling implements a keyed deterministic pseudo-random stream used
// to draw reproducible evaluation-point samples for backend verification.
package sampling

import (
	"encoding/binary"
	"io"

	"golang.org/x/crypto/blake2b"
)

// PRNG is an interface for the generation of pseudo-random bytes.
type PRNG interface {
	io.Reader
}

// KeyedPRNG is a deterministic byte stream expanded from a key with the
// blake2b XOF: two instances built from the same key produce the same
// sequence. It is not safe for concurrent use, which would destroy the
// determinism it exists for.
type KeyedPRNG struct {
	key []byte
	xof blake2b.XOF
}

// NewKeyedPRNG creates a new KeyedPRNG from key. A nil key is treated as
// []byte{}.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	if err != nil {
		return nil, err
	}
	return &KeyedPRNG{key: append([]byte{}, key...), xof: xof}, nil
}

// Key returns a copy of the key the stream was expanded from.
func (prng *KeyedPRNG) Key() (key []byte) {
	key = make([]byte, len(prng.key))
	copy(key, prng.key)
	return
}

// Read fills sum with the next bytes of the stream.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	return prng.xof.Read(sum)
}

// Float64 draws the next value uniformly from [a, b).
func (prng *KeyedPRNG) Float64(a, b float64) (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(prng, buf[:]); err != nil {
		return 0, err
	}
	// 53 uniform bits scaled into [0, 1).
	u := float64(binary.LittleEndian.Uint64(buf[:])>>11) / (1 << 53)
	return a + (b-a)*u, nil
}
