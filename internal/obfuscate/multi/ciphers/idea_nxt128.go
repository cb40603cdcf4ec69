package ciphers

import "crypto/cipher"

// NewIdeaNxt128 returns a keyed-Feistel stand-in for the IdeaNxt128 cascade slot (see
// feistel.go's package doc for why this is a placeholder, not a port).
func NewIdeaNxt128(key []byte) (cipher.Block, error) {
	return newKeyedFeistel("idea_nxt128", key), nil
}
