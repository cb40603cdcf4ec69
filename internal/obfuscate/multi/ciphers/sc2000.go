package ciphers

import "crypto/cipher"

// NewSc2000 returns a keyed-Feistel stand-in for the Sc2000 cascade slot (see
// feistel.go's package doc for why this is a placeholder, not a port).
func NewSc2000(key []byte) (cipher.Block, error) {
	return newKeyedFeistel("sc2000", key), nil
}
