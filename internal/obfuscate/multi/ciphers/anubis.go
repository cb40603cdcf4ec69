package ciphers

import "crypto/cipher"

// NewAnubis returns a keyed-Feistel stand-in for the Anubis cascade slot (see
// feistel.go's package doc for why this is a placeholder, not a port).
func NewAnubis(key []byte) (cipher.Block, error) {
	return newKeyedFeistel("anubis", key), nil
}
