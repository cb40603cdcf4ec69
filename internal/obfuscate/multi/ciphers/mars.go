package ciphers

import "crypto/cipher"

// NewMars returns a keyed-Feistel stand-in for the Mars cascade slot (see
// feistel.go's package doc for why this is a placeholder, not a port).
func NewMars(key []byte) (cipher.Block, error) {
	return newKeyedFeistel("mars", key), nil
}
