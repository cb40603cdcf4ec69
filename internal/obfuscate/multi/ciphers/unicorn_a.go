package ciphers

import "crypto/cipher"

// NewUnicornA returns a keyed-Feistel stand-in for the UnicornA cascade slot (see
// feistel.go's package doc for why this is a placeholder, not a port).
func NewUnicornA(key []byte) (cipher.Block, error) {
	return newKeyedFeistel("unicorn_a", key), nil
}
