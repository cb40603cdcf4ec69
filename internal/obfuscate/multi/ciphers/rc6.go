package ciphers

import "crypto/cipher"

// NewRc6 returns a keyed-Feistel stand-in for the Rc6 cascade slot (see
// feistel.go's package doc for why this is a placeholder, not a port).
func NewRc6(key []byte) (cipher.Block, error) {
	return newKeyedFeistel("rc6", key), nil
}
