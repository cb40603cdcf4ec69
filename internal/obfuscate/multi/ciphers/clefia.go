package ciphers

import "crypto/cipher"

// NewClefia returns a keyed-Feistel stand-in for the Clefia cascade slot (see
// feistel.go's package doc for why this is a placeholder, not a port).
func NewClefia(key []byte) (cipher.Block, error) {
	return newKeyedFeistel("clefia", key), nil
}
