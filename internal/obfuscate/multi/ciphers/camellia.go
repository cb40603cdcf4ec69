package ciphers

import "crypto/cipher"

// NewCamellia returns a keyed-Feistel stand-in for the Camellia cascade slot (see
// feistel.go's package doc for why this is a placeholder, not a port).
func NewCamellia(key []byte) (cipher.Block, error) {
	return newKeyedFeistel("camellia", key), nil
}
