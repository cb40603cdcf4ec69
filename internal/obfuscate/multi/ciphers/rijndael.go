package ciphers

import "crypto/aes"

// NewRijndael returns the rijndael cascade slot. Rijndael with a 128-bit
// block and a 128/192/256-bit key is AES; this slot binds to the standard
// library's AES implementation rather than a placeholder, since it is the
// historically correct algorithm, not a stdlib fallback of convenience.
func NewRijndael(key []byte) (cipherBlock, error) {
	return aes.NewCipher(keyOfLen(key, 32))
}
