// Package chain derives each carrier's decryption key from the carriers
// that preceded it, and decrypts a carrier's IV block, data stream, and
// decoy stream in sequence.
package chain

import (
	"fmt"

	"github.com/halfwave/puffextract/internal/carrier"
	"github.com/halfwave/puffextract/internal/obfuscate/multi"
	"github.com/halfwave/puffextract/internal/obfuscate/scramble"
	"github.com/halfwave/puffextract/internal/passwords"
	"github.com/halfwave/puffextract/internal/sink"
)

// fixedIvTable is used solely to decrypt each carrier's 256-byte encrypted
// IV block; it is the same for every carrier and every password. Its
// provenance is not documented upstream; the bytes are preserved verbatim.
var fixedIvTable = multi.Ivs{
	Anubis:      [16]byte{0xcd, 0xa0, 0x11, 0xe5, 0x83, 0x82, 0xe5, 0xb2, 0x84, 0x63, 0x9e, 0xc6, 0x49, 0x54, 0xdd, 0xd7},
	Camellia:    [16]byte{0x2f, 0xf4, 0x8b, 0x66, 0x58, 0xf7, 0x4b, 0x66, 0x19, 0x10, 0xf2, 0x05, 0x86, 0x51, 0x07, 0x64},
	Cast256:     [16]byte{0x0e, 0x81, 0xa1, 0x07, 0x19, 0xd1, 0x9e, 0x96, 0x51, 0xc7, 0x5a, 0xf3, 0xca, 0x72, 0x4a, 0x43},
	Clefia:      [16]byte{0x75, 0xd3, 0x57, 0xc7, 0x62, 0x97, 0x26, 0xb4, 0x07, 0x85, 0x3f, 0xf4, 0x99, 0xf4, 0x88, 0x71},
	Frog:        [16]byte{0xa7, 0x87, 0x66, 0xd7, 0x67, 0xc4, 0x87, 0x74, 0xdc, 0x85, 0x1f, 0xc2, 0xf8, 0xa2, 0x74, 0xc4},
	Hierocrypt3: [16]byte{0x98, 0x74, 0x7b, 0xe0, 0xb1, 0x00, 0x49, 0xc0, 0xce, 0x46, 0xa8, 0x34, 0xee, 0xd0, 0x47, 0x46},
	IdeaNxt128:  [16]byte{0x85, 0xe7, 0x8b, 0xd1, 0xba, 0xa1, 0x98, 0x04, 0x8f, 0xe2, 0x10, 0x16, 0x59, 0xa3, 0x2c, 0x76},
	Mars:        [16]byte{0xcd, 0x64, 0x90, 0x46, 0x94, 0xd5, 0x0a, 0x85, 0x00, 0x56, 0x4a, 0x96, 0x1a, 0xf2, 0x16, 0xe2},
	Rc6:         [16]byte{0xa6, 0xd1, 0xfe, 0x45, 0xe0, 0xd6, 0x65, 0x10, 0x18, 0x42, 0xb2, 0x97, 0xe1, 0x66, 0x52, 0xe2},
	Rijndael:    [16]byte{0x2d, 0xa3, 0xb3, 0x64, 0x3e, 0xc3, 0x4f, 0x52, 0x69, 0xc7, 0x46, 0x81, 0x94, 0x62, 0xb5, 0x75},
	SaferP:      [16]byte{0xd8, 0x30, 0xee, 0x85, 0xd0, 0x21, 0xbd, 0x24, 0xe1, 0x44, 0x3c, 0xc4, 0x73, 0x77, 0x0a, 0xd2},
	Sc2000:      [16]byte{0x3a, 0xc0, 0x63, 0xd1, 0xa1, 0x22, 0x58, 0x90, 0x13, 0x36, 0x9d, 0xf0, 0x98, 0x06, 0x07, 0xf1},
	Serpent:     [16]byte{0x1c, 0x43, 0x55, 0xf5, 0xf6, 0xf7, 0x21, 0xd0, 0x40, 0x27, 0x09, 0x25, 0x2f, 0x71, 0xd2, 0x31},
	Speed:       [16]byte{0xa5, 0x22, 0x6a, 0xc6, 0x91, 0x47, 0x66, 0xc3, 0xe7, 0x25, 0xc6, 0x26, 0x17, 0xe1, 0x7a, 0xf3},
	Twofish:     [16]byte{0xd7, 0xd5, 0xc0, 0x06, 0xa9, 0x21, 0xf6, 0x14, 0x7e, 0x14, 0x64, 0x83, 0x1c, 0x15, 0xab, 0x32},
	UnicornA:    [16]byte{0xc0, 0x66, 0xb8, 0x23, 0xc0, 0xf6, 0xdf, 0x62, 0xa7, 0xc7, 0x60, 0x37, 0x88, 0xd1, 0xef, 0x95},
}

const keyConstant uint32 = 0x502239c3

// deriveNextPrekey folds the previous carrier's decrypted IV into the
// running prekey: g(b) = b<<8 for odd bytes, b otherwise, summed with
// 16-bit wraparound.
func deriveNextPrekey(previousPrekey uint16, previousIV [256]byte) uint16 {
	var sum uint16
	for _, b := range previousIV {
		if b&1 == 1 {
			sum += uint16(b) << 8
		} else {
			sum += uint16(b)
		}
	}
	return previousPrekey + sum
}

// deriveKey combines the carrier's position and running prekey into this
// carrier's 32-bit key, with 32-bit wraparound.
func deriveKey(carrierPosition int, prekey uint16) uint32 {
	return uint32(prekey)*0x10000 + keyConstant + uint32(carrierPosition)
}

// keyToPassword renders a key as its ten-digit zero-padded decimal
// representation, the password OpenPuff uses to decrypt each carrier's IV
// block.
func keyToPassword(key uint32) []byte {
	return []byte(fmt.Sprintf("%010d", key))
}

func decryptIV(iv *[256]byte, key uint32) error {
	password := keyToPassword(key)

	s := scramble.Seed(len(iv), password, key)
	buf := iv[:]
	if err := s.Descramble(buf); err != nil {
		return fmt.Errorf("chain: descrambling IV block: %w", err)
	}

	m, err := multi.New(fixedIvTable, password, password, key)
	if err != nil {
		return fmt.Errorf("chain: keying IV cascade: %w", err)
	}
	if err := m.CBCDecrypt(buf); err != nil {
		return fmt.Errorf("chain: decrypting IV block: %w", err)
	}
	return nil
}

func decryptContent(content []byte, ivs multi.Ivs, key uint32, pw passwords.Passwords) error {
	s := scramble.Seed(len(content), pw.C, key)
	if err := s.Descramble(content); err != nil {
		return fmt.Errorf("chain: descrambling content: %w", err)
	}

	m, err := multi.New(ivs, pw.A, pw.B, key)
	if err != nil {
		return fmt.Errorf("chain: keying content cascade: %w", err)
	}
	if err := m.CBCDecrypt(content); err != nil {
		return fmt.Errorf("chain: decrypting content: %w", err)
	}
	return nil
}

// Embeddings holds one carrier's decrypted data and decoy streams.
type Embeddings struct {
	Data  []byte
	Decoy []byte
}

// DecryptChain walks carriers strictly left to right, deriving each
// carrier's key from every carrier that preceded it, and returns the
// decrypted data and decoy streams for each carrier in order. A failure
// decrypting carrier i is fatal for every carrier after it, since their
// keys depend on it; DecryptChain returns as many Embeddings as it
// successfully produced along with the error.
func DecryptChain(carriers []*carrier.EncryptedCarrier, pw passwords.Passwords, s sink.Sink) ([]Embeddings, error) {
	embeddings := make([]Embeddings, 0, len(carriers))

	var prekey uint16
	var previousIV [256]byte
	haveHistory := false

	for i, c := range carriers {
		if haveHistory {
			prekey = deriveNextPrekey(prekey, previousIV)
		}
		key := deriveKey(i, prekey)

		iv := c.IV
		if err := decryptIV(&iv, key); err != nil {
			return embeddings, fmt.Errorf("chain: carrier %d: %w", i, err)
		}

		ivs, err := multi.FromBytes(iv[:])
		if err != nil {
			return embeddings, fmt.Errorf("chain: carrier %d: reinterpreting IV block: %w", i, err)
		}

		data := append([]byte(nil), c.Data...)
		if err := decryptContent(data, ivs, key, pw); err != nil {
			return embeddings, fmt.Errorf("chain: carrier %d: data stream: %w", i, err)
		}

		decoy := append([]byte(nil), c.Decoy...)
		if err := decryptContent(decoy, ivs, key, pw); err != nil {
			return embeddings, fmt.Errorf("chain: carrier %d: decoy stream: %w", i, err)
		}

		embeddings = append(embeddings, Embeddings{Data: data, Decoy: decoy})
		s.Infof("carrier %d: decrypted (key=%010d)", i, key)

		previousIV = iv
		haveHistory = true
	}

	return embeddings, nil
}
