package ciphers

import (
	"crypto/cipher"
	"crypto/sha512"
)

// cipherBlock is a local alias so rijndael.go and twofish.go can name the
// return type without importing crypto/cipher.
type cipherBlock = cipher.Block

// keyOfLen expands or truncates key to exactly n bytes using repeated
// SHA-512 hashing, for the two slots (rijndael, twofish) whose real
// library constructors require an exact key length.
func keyOfLen(key []byte, n int) []byte {
	out := make([]byte, 0, n)
	counter := byte(0)
	for len(out) < n {
		h := sha512.New()
		h.Write(key)
		h.Write([]byte{counter})
		out = append(out, h.Sum(nil)...)
		counter++
	}
	return out[:n]
}
