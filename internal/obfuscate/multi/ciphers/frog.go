package ciphers

import "crypto/cipher"

// NewFrog returns a keyed-Feistel stand-in for the Frog cascade slot (see
// feistel.go's package doc for why this is a placeholder, not a port).
func NewFrog(key []byte) (cipher.Block, error) {
	return newKeyedFeistel("frog", key), nil
}
