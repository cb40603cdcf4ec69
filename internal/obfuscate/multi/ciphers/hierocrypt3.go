package ciphers

import "crypto/cipher"

// NewHierocrypt3 returns a keyed-Feistel stand-in for the Hierocrypt3 cascade slot (see
// feistel.go's package doc for why this is a placeholder, not a port).
func NewHierocrypt3(key []byte) (cipher.Block, error) {
	return newKeyedFeistel("hierocrypt3", key), nil
}
