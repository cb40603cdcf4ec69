// Package multi implements the 16-cipher CBC cascade OpenPuff uses to
// encrypt each carrier's IV block, data stream, and decoy stream.
//
// The reference implementation is a pure FFI wrapper around an external C
// library (Multi_setkey/Multi_CBC_encrypt/Multi_CBC_decrypt are declared
// extern "C" with no available source). This package reproduces the
// documented *shape* of the cascade — sixteen independently-keyed 128-bit
// block ciphers, each run in CBC mode with its own IV, chained output to
// input in a fixed order — using real library ciphers where one is
// available (rijndael, twofish) and keyed-Feistel stand-ins otherwise; see
// internal/obfuscate/multi/ciphers and DESIGN.md.
package multi

import (
	"crypto/cipher"
	"encoding/binary"
	"fmt"

	"github.com/halfwave/puffextract/internal/obfuscate/multi/ciphers"
)

// Ivs holds the sixteen 16-byte initialization vectors used by the
// cascade, one per cipher, in the fixed declared order. The field order
// here is load-bearing: it is the layout of the 256-byte plaintext IV
// block once decrypted (see internal/chain).
type Ivs struct {
	Anubis      [16]byte
	Camellia    [16]byte
	Cast256     [16]byte
	Clefia      [16]byte
	Frog        [16]byte
	Hierocrypt3 [16]byte
	IdeaNxt128  [16]byte
	Mars        [16]byte
	Rc6         [16]byte
	Rijndael    [16]byte
	SaferP      [16]byte
	Sc2000      [16]byte
	Serpent     [16]byte
	Speed       [16]byte
	Twofish     [16]byte
	UnicornA    [16]byte
}

const IvsSize = 16 * 16

// AsBytes serializes the sixteen IVs in declared order into a 256-byte
// slice.
func (ivs Ivs) AsBytes() []byte {
	out := make([]byte, 0, IvsSize)
	for _, iv := range ivs.ordered() {
		out = append(out, iv[:]...)
	}
	return out
}

// FromBytes parses a 256-byte slice into an Ivs record. It is the inverse
// of AsBytes: FromBytes(ivs.AsBytes()) == ivs.
func FromBytes(b []byte) (Ivs, error) {
	if len(b) != IvsSize {
		return Ivs{}, fmt.Errorf("multi: IV block must be %d bytes, got %d", IvsSize, len(b))
	}
	var ivs Ivs
	dsts := ivs.orderedPtrs()
	for i, dst := range dsts {
		copy(dst[:], b[i*16:(i+1)*16])
	}
	return ivs, nil
}

func (ivs *Ivs) ordered() [16][16]byte {
	return [16][16]byte{
		ivs.Anubis, ivs.Camellia, ivs.Cast256, ivs.Clefia, ivs.Frog, ivs.Hierocrypt3,
		ivs.IdeaNxt128, ivs.Mars, ivs.Rc6, ivs.Rijndael, ivs.SaferP, ivs.Sc2000,
		ivs.Serpent, ivs.Speed, ivs.Twofish, ivs.UnicornA,
	}
}

func (ivs *Ivs) orderedPtrs() [16]*[16]byte {
	return [16]*[16]byte{
		&ivs.Anubis, &ivs.Camellia, &ivs.Cast256, &ivs.Clefia, &ivs.Frog, &ivs.Hierocrypt3,
		&ivs.IdeaNxt128, &ivs.Mars, &ivs.Rc6, &ivs.Rijndael, &ivs.SaferP, &ivs.Sc2000,
		&ivs.Serpent, &ivs.Speed, &ivs.Twofish, &ivs.UnicornA,
	}
}

type cipherSlot struct {
	name string
	ctor func(key []byte) (cipher.Block, error)
}

// cascadeOrder is the fixed cipher order the reference documents (§4.5,
// §6.5): anubis, camellia, cast256, clefia, frog, hierocrypt3,
// idea_nxt128, mars, rc6, rijndael, saferp, sc2000, serpent, speed,
// twofish, unicorn_a.
var cascadeOrder = []cipherSlot{
	{"anubis", ciphers.NewAnubis},
	{"camellia", ciphers.NewCamellia},
	{"cast256", ciphers.NewCast256},
	{"clefia", ciphers.NewClefia},
	{"frog", ciphers.NewFrog},
	{"hierocrypt3", ciphers.NewHierocrypt3},
	{"idea_nxt128", ciphers.NewIdeaNxt128},
	{"mars", ciphers.NewMars},
	{"rc6", ciphers.NewRc6},
	{"rijndael", ciphers.NewRijndael},
	{"saferp", ciphers.NewSaferP},
	{"sc2000", ciphers.NewSc2000},
	{"serpent", ciphers.NewSerpent},
	{"speed", ciphers.NewSpeed},
	{"twofish", ciphers.NewTwofish},
	{"unicorn_a", ciphers.NewUnicornA},
}

// Multi is a keyed instance of the 16-cipher CBC cascade. A Multi is
// single-use per direction: the cascade's CBC chaining state advances as
// bytes are processed, so decrypting after encrypting on the same
// instance does not recover the original data (matching the reference's
// explicitly documented destructive-decryption contract). Callers must
// construct a fresh Multi per call, as internal/chain does.
type Multi struct {
	blocks []cipher.Block
	ivs    [][]byte
}

// New keys a Multi cascade from the 16 per-cipher IVs and two passwords.
// Each cipher's key material is derived independently from both passwords
// and the nonce, domain-separated by cipher name, so that every cascade
// slot uses distinct key schedule even though all share the same inputs.
func New(ivs Ivs, passwordA, passwordB []byte, nonce uint32) (*Multi, error) {
	ordered := ivs.ordered()

	m := &Multi{
		blocks: make([]cipher.Block, len(cascadeOrder)),
		ivs:    make([][]byte, len(cascadeOrder)),
	}

	for i, slot := range cascadeOrder {
		key := deriveCipherKey(slot.name, passwordA, passwordB, nonce)
		block, err := slot.ctor(key)
		if err != nil {
			return nil, fmt.Errorf("multi: constructing cipher %q: %w", slot.name, err)
		}
		m.blocks[i] = block
		iv := ordered[i]
		m.ivs[i] = iv[:]
	}

	return m, nil
}

func deriveCipherKey(name string, passwordA, passwordB []byte, nonce uint32) []byte {
	var nb [4]byte
	binary.LittleEndian.PutUint32(nb[:], nonce)

	material := make([]byte, 0, len(name)+len(passwordA)+len(passwordB)+4)
	material = append(material, name...)
	material = append(material, passwordA...)
	material = append(material, passwordB...)
	material = append(material, nb[:]...)
	return material
}

// CBCEncrypt encrypts buf in place through the full 16-cipher cascade, in
// cascadeOrder, each stage's ciphertext feeding the next stage's
// plaintext. len(buf) must be a non-zero multiple of 16 bytes.
func (m *Multi) CBCEncrypt(buf []byte) error {
	if len(buf) == 0 || len(buf)%16 != 0 {
		return fmt.Errorf("multi: buffer length %d is not a positive multiple of 16", len(buf))
	}
	for i, block := range m.blocks {
		cipher.NewCBCEncrypter(block, m.ivs[i]).CryptBlocks(buf, buf)
		m.ivs[i] = append([]byte(nil), buf[len(buf)-16:]...)
	}
	return nil
}

// CBCDecrypt reverses CBCEncrypt: it runs the cascade in reverse stage
// order, each stage undoing one cipher's CBC encryption.
func (m *Multi) CBCDecrypt(buf []byte) error {
	if len(buf) == 0 || len(buf)%16 != 0 {
		return fmt.Errorf("multi: buffer length %d is not a positive multiple of 16", len(buf))
	}
	for i := len(m.blocks) - 1; i >= 0; i-- {
		last := append([]byte(nil), buf[len(buf)-16:]...)
		cipher.NewCBCDecrypter(m.blocks[i], m.ivs[i]).CryptBlocks(buf, buf)
		m.ivs[i] = last
	}
	return nil
}
