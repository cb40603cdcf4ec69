package ciphers

import "crypto/cipher"

// NewSaferP returns a keyed-Feistel stand-in for the SaferP cascade slot (see
// feistel.go's package doc for why this is a placeholder, not a port).
func NewSaferP(key []byte) (cipher.Block, error) {
	return newKeyedFeistel("saferp", key), nil
}
