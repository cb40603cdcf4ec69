// Package scramble implements the keyed byte-permutation OpenPuff applies
// as an outer layer around the multi-cipher cascade.
//
// The reference implementation is a pure FFI wrapper around an external C
// library (Scramble_seed/Scramble_scramble/Scramble_descramble are declared
// extern "C" with no available source). This package derives its
// permutation from internal/obfuscate/csprng instead, so it is internally
// consistent and round-trips correctly but is not bit-compatible with the
// upstream binary — see DESIGN.md.
package scramble

import (
	"fmt"

	"github.com/halfwave/puffextract/internal/obfuscate/csprng"
)

// Scrambler permutes and un-permutes fixed-size blocks under a password
// and nonce fixed at construction time.
type Scrambler struct {
	blockSize int
	perm      []int // perm[i] is the source index for output position i
	inverse   []int
}

// Seed derives a scrambler for blocks of exactly blockSize bytes from a
// password and a nonce. The password bytes are used as given, at any
// length.
func Seed(blockSize int, password []byte, nonce uint32) *Scrambler {
	perm := make([]int, blockSize)
	csprng.NewWithSeed(csprng.Skein512, password, nonce).RandomizePermutation(perm)

	inverse := make([]int, blockSize)
	for i, src := range perm {
		inverse[src] = i
	}

	return &Scrambler{blockSize: blockSize, perm: perm, inverse: inverse}
}

// BlockSize returns the fixed block size this scrambler was seeded for.
func (s *Scrambler) BlockSize() int {
	return s.blockSize
}

// Scramble permutes buf in place. len(buf) must equal BlockSize().
func (s *Scrambler) Scramble(buf []byte) error {
	return s.apply(buf, s.perm)
}

// Descramble reverses Scramble. len(buf) must equal BlockSize().
func (s *Scrambler) Descramble(buf []byte) error {
	return s.apply(buf, s.inverse)
}

func (s *Scrambler) apply(buf []byte, perm []int) error {
	if len(buf) != s.blockSize {
		return fmt.Errorf("scramble: block size mismatch: got %d bytes, seeded for %d", len(buf), s.blockSize)
	}
	out := make([]byte, s.blockSize)
	for i, src := range perm {
		out[i] = buf[src]
	}
	copy(buf, out)
	return nil
}

// End releases the scrambler's internal state. There is nothing to free in
// this Go implementation; the method exists to mirror the reference
// contract's explicit scoped-release lifecycle.
func (s *Scrambler) End() {
	s.perm = nil
	s.inverse = nil
}
