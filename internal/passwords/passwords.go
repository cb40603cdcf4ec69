// Package passwords validates and normalizes the (A, B, C) password triple
// used throughout extraction.
package passwords

import (
	"bytes"
	"errors"
	"fmt"
	"math/bits"

	"github.com/halfwave/puffextract/internal/sink"
)

// MaxPasswordSize is the fixed buffer width every password is padded to
// before use by the cryptographic primitives.
const MaxPasswordSize = 32

var (
	// ErrPasswordTooLong is returned when a password exceeds MaxPasswordSize bytes.
	ErrPasswordTooLong = errors.New("password is longer than 32 bytes")
	// ErrContainsNulByte is returned when a password contains an interior NUL byte.
	ErrContainsNulByte = errors.New("password contains an interior NUL byte")
)

// Passwords holds the three passwords OpenPuff accepts: A and B key the
// multi-cipher cascade, C keys the scrambler. B and C default to A when
// not supplied.
type Passwords struct {
	A []byte
	B []byte
	C []byte
}

// FromFields validates a, b, and c (b and c may be nil, meaning "not
// supplied"; a non-nil empty string counts as supplied) and returns the normalized Passwords triple, warning via s on
// any non-fatal weakness and failing on length or NUL-byte violations.
func FromFields(a string, b, c *string, s sink.Sink) (Passwords, error) {
	if c != nil && b == nil {
		s.Warnf("password C given without password B; OpenPuff would reject this")
	}

	if b != nil {
		if len(*b) < 8 {
			s.Warnf("password B is shorter than 8 bytes; OpenPuff would reject this")
		}
		if len(*b) > MaxPasswordSize {
			return Passwords{}, ErrPasswordTooLong
		}
	}
	if c != nil {
		if len(*c) < 8 {
			s.Warnf("password C is shorter than 8 bytes; OpenPuff would reject this")
		}
		if len(*c) > MaxPasswordSize {
			return Passwords{}, ErrPasswordTooLong
		}
	}

	effectiveB := a
	if b != nil {
		effectiveB = *b
	}
	effectiveC := a
	if c != nil {
		effectiveC = *c
	}

	if b != nil {
		if d := ComputeHammingDistance([]byte(a), []byte(effectiveB)); d < 25 {
			s.Warnf("passwords A and B are too correlated (distance %d%% < 25%%); OpenPuff would reject this", d)
		}
	}
	if c != nil {
		if d := ComputeHammingDistance([]byte(a), []byte(effectiveC)); d < 25 {
			s.Warnf("passwords A and C are too correlated (distance %d%% < 25%%); OpenPuff would reject this", d)
		}
	}
	if b != nil && c != nil {
		if d := ComputeHammingDistance([]byte(effectiveB), []byte(effectiveC)); d < 25 {
			s.Warnf("passwords B and C are too correlated (distance %d%% < 25%%); OpenPuff would reject this", d)
		}
	}

	bufA, err := toPasswordBuffer(a)
	if err != nil {
		return Passwords{}, err
	}
	bufB, err := toPasswordBuffer(effectiveB)
	if err != nil {
		return Passwords{}, err
	}
	bufC, err := toPasswordBuffer(effectiveC)
	if err != nil {
		return Passwords{}, err
	}

	return Passwords{A: bufA, B: bufB, C: bufC}, nil
}

// toPasswordBuffer rejects interior NUL bytes and right-pads password to
// exactly MaxPasswordSize bytes with zeroes.
func toPasswordBuffer(password string) ([]byte, error) {
	if bytes.IndexByte([]byte(password), 0) >= 0 {
		return nil, ErrContainsNulByte
	}
	if len(password) > MaxPasswordSize {
		return nil, ErrPasswordTooLong
	}
	buf := make([]byte, MaxPasswordSize)
	copy(buf, password)
	return buf, nil
}

// ComputeHammingDistance returns the normalized Hamming distance between p1
// and p2 as an integer percentage: the shorter operand is zero-padded to
// the longer's length, then the popcount of the XOR is scaled by
// 100/(total*8). 100 means maximally different.
func ComputeHammingDistance(p1, p2 []byte) int {
	total := len(p1)
	if len(p2) > total {
		total = len(p2)
	}
	if total == 0 {
		return 0
	}

	var differences int
	for i := 0; i < total; i++ {
		var c1, c2 byte
		if i < len(p1) {
			c1 = p1[i]
		}
		if i < len(p2) {
			c2 = p2[i]
		}
		differences += bits.OnesCount8(c1 ^ c2)
	}

	return (differences * 100) / (total * 8)
}

// Zero overwrites all three password buffers, for callers that want to
// scrub key material once extraction has finished.
func (p Passwords) Zero() {
	for _, buf := range [][]byte{p.A, p.B, p.C} {
		for i := range buf {
			buf[i] = 0
		}
	}
}

func (p Passwords) String() string {
	return fmt.Sprintf("Passwords{A: %d bytes, B: %d bytes, C: %d bytes}", len(p.A), len(p.B), len(p.C))
}
