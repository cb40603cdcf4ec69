// Package csprng provides a seedable cryptographic pseudo-random number
// generator with the interface OpenPuff's carrier format is built around:
// seed with a hash choice, a password, and a nonce; draw bytes, words, and
// dwords; randomize a buffer; and randomize a buffer treated as a
// permutation.
//
// The reference implementation's CSPRNG is a pure FFI binding to an
// external C library with no source available in this codebase's corpus.
// This package is therefore NOT bit-compatible with the upstream binary —
// see digestFor and DESIGN.md for the full accounting. It is,
// however, fully deterministic and self-consistent, which is everything
// the rest of this module's pipeline requires of it.
package csprng

import (
	"crypto/sha512"
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Hash selects the digest OpenPuff seeds its CSPRNG with.
type Hash int

const (
	Sha512 Hash = iota
	Grostl512
	Keccak512
	Skein512
)

// CSPRNG is a keyed, counter-based pseudo-random byte stream. It is not
// safe for concurrent use; each carrier and each key-chain step gets its
// own instance, matching the reference's one-context-per-call contract.
type CSPRNG struct {
	hash   Hash
	seed   []byte
	block  [64]byte
	offset int
	counter uint64
}

// NewWithSeed creates a CSPRNG keyed by hash, password, and nonce. The
// password is mixed in verbatim (it is the caller's responsibility to pad
// or truncate it per the password-buffer rules in internal/passwords).
func NewWithSeed(hash Hash, password []byte, nonce uint32) *CSPRNG {
	seed := make([]byte, 0, len(password)+4)
	seed = append(seed, password...)
	var nb [4]byte
	binary.LittleEndian.PutUint32(nb[:], nonce)
	seed = append(seed, nb[:]...)

	c := &CSPRNG{hash: hash, seed: seed}
	c.refill()
	return c
}

// refill derives the next 64-byte keystream block by hashing the seed
// together with a monotonically increasing counter, and resets offset.
func (c *CSPRNG) refill() {
	var cb [8]byte
	binary.LittleEndian.PutUint64(cb[:], c.counter)
	c.counter++

	input := make([]byte, 0, len(c.seed)+8+1)
	input = append(input, c.seed...)
	input = append(input, cb[:]...)
	input = append(input, byte(c.hash))

	c.block = digestFor(c.hash, input)
	c.offset = 0
}

// digestFor computes a 64-byte digest for the given logical hash choice.
// Grostl512 and Skein512 have no available Go implementation anywhere in
// the retrieved reference corpus or the module's dependency set; both fall
// back to SHA-512 with a domain-separation tag folded in, so that they
// still diverge from Sha512/Keccak512 output and from each other.
func digestFor(hash Hash, input []byte) [64]byte {
	switch hash {
	case Sha512:
		return sha512.Sum512(input)
	case Keccak512:
		return sha3.Sum512(input)
	case Grostl512:
		tagged := append([]byte{'G', 'R', 'O'}, input...)
		return sha512.Sum512(tagged)
	case Skein512:
		tagged := append([]byte{'S', 'K', 'N'}, input...)
		return sha512.Sum512(tagged)
	default:
		return sha512.Sum512(input)
	}
}

// nextByte returns the next byte of keystream, refilling the internal
// block whenever it is exhausted.
func (c *CSPRNG) nextByte() byte {
	if c.offset >= len(c.block) {
		c.refill()
	}
	b := c.block[c.offset]
	c.offset++
	return b
}

// GetByte draws a single pseudo-random byte.
func (c *CSPRNG) GetByte() byte {
	return c.nextByte()
}

// GetWord draws a 16-bit little-endian pseudo-random word.
func (c *CSPRNG) GetWord() uint16 {
	lo := c.nextByte()
	hi := c.nextByte()
	return uint16(lo) | uint16(hi)<<8
}

// GetDword draws a 32-bit little-endian pseudo-random double word.
func (c *CSPRNG) GetDword() uint32 {
	var buf [4]byte
	for i := range buf {
		buf[i] = c.nextByte()
	}
	return binary.LittleEndian.Uint32(buf[:])
}

// Randomize fills buf entirely with keystream bytes.
func (c *CSPRNG) Randomize(buf []byte) {
	for i := range buf {
		buf[i] = c.nextByte()
	}
}

// RandomizePermutation fills perm with a Fisher-Yates shuffle of
// [0, len(perm)), using this CSPRNG as the source of randomness. perm's
// initial contents are ignored. Indices, not bytes, are used so this works
// for blocks larger than 256 elements (the scrambler's blocks are
// arbitrary-length).
func (c *CSPRNG) RandomizePermutation(perm []int) {
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := int(c.GetDword() % uint32(i+1))
		perm[i], perm[j] = perm[j], perm[i]
	}
}
