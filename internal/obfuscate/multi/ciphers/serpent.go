package ciphers

import "crypto/cipher"

// NewSerpent returns a keyed-Feistel stand-in for the Serpent cascade slot (see
// feistel.go's package doc for why this is a placeholder, not a port).
func NewSerpent(key []byte) (cipher.Block, error) {
	return newKeyedFeistel("serpent", key), nil
}
