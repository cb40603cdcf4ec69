package ciphers

import "crypto/cipher"

// NewSpeed returns a keyed-Feistel stand-in for the Speed cascade slot (see
// feistel.go's package doc for why this is a placeholder, not a port).
func NewSpeed(key []byte) (cipher.Block, error) {
	return newKeyedFeistel("speed", key), nil
}
