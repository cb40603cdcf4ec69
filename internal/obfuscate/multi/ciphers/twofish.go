package ciphers

import "golang.org/x/crypto/twofish"

// NewTwofish returns the twofish cascade slot, backed by a real library
// implementation of the exact named AES-finalist cipher.
func NewTwofish(key []byte) (cipherBlock, error) {
	return twofish.NewCipher(keyOfLen(key, 32))
}
