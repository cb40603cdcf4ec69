package ciphers

import "crypto/cipher"

// NewCast256 returns a keyed-Feistel stand-in for the Cast256 cascade slot (see
// feistel.go's package doc for why this is a placeholder, not a port).
func NewCast256(key []byte) (cipher.Block, error) {
	return newKeyedFeistel("cast256", key), nil
}
