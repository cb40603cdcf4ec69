// Package carrier turns a container file into an EncryptedCarrier: the
// still-encrypted IV block, data stream, and decoy stream recovered from
// a carrier's statistically-selected samples after dewhitening.
package carrier

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/halfwave/puffextract/internal/bitselection"
	"github.com/halfwave/puffextract/internal/carriertype"
	"github.com/halfwave/puffextract/internal/sink"
	"github.com/halfwave/puffextract/internal/wavparser"
	"github.com/halfwave/puffextract/internal/whitening"
)

// magicValue is the minimum number of dewhitened bits any carrier must
// produce: 2048 bits for the encrypted IV block plus 936 bits of
// undocumented reserved slack. Its exact origin is not documented
// upstream and must be preserved bit-exactly.
const magicValue = 2984

// ivBits is the number of bits the encrypted IV block occupies: 8*256.
const ivBits = 8 * 256

// ErrCarrierTooSmall is returned when a carrier's dewhitened bit stream is
// shorter than magicValue bits and therefore cannot hold even an IV block.
var ErrCarrierTooSmall = errors.New("carrier: carrier is too small to contain an encrypted payload")

// EncryptedCarrier holds the three bit-packed byte streams recovered from
// one carrier file, still encrypted: the 256-byte IV block, the data
// stream, and the decoy stream. It exclusively owns its buffers.
type EncryptedCarrier struct {
	IV    [256]byte
	Data  []byte
	Decoy []byte
}

// containerParser exposes the container-agnostic contract every format
// plugs into: read a stream, return its raw (still-whitened) bit vector.
type containerParser func(r io.Reader, s sink.Sink) ([]bool, error)

var parsers = map[carriertype.CarrierType]containerParser{
	carriertype.WAV: wavparser.Parse,
}

// FromFile opens path, resolves its carrier type from its extension, and
// builds an EncryptedCarrier from its contents at the given bit-selection
// level. I/O errors (including a nonexistent path) propagate unchanged.
func FromFile(path string, level bitselection.BitSelection, s sink.Sink) (*EncryptedCarrier, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ext := filepath.Ext(path)
	fileType, err := carriertype.FromExtension(ext)
	if err != nil {
		return nil, fmt.Errorf("carrier: %s: %w", path, err)
	}

	c, err := FromReader(f, fileType, level, s)
	if err != nil {
		return nil, fmt.Errorf("carrier: %s: %w", path, err)
	}
	return c, nil
}

// FromReader parses r as a container of the given type and reconstructs
// the encrypted IV, data, and decoy streams hidden in its selected
// samples.
func FromReader(r io.Reader, fileType carriertype.CarrierType, level bitselection.BitSelection, s sink.Sink) (*EncryptedCarrier, error) {
	parse, ok := parsers[fileType]
	if !ok {
		return nil, fmt.Errorf("carrier: %w: no parser registered for %s", carriertype.ErrUnknownFiletype, fileType)
	}

	raw, err := parse(r, s)
	if err != nil {
		return nil, err
	}

	unwhitened := whitening.Dewhiten(raw)
	if len(unwhitened) < magicValue {
		return nil, ErrCarrierTooSmall
	}

	divisor := level.Divisor()
	selectedBitCount := ((len(unwhitened) - magicValue) / divisor) &^ 0b1111111

	var ivBitsStream []bool
	ivBitsStream, unwhitened = unwhitened[:ivBits], unwhitened[ivBits:]

	c := &EncryptedCarrier{}
	packBits(c.IV[:], ivBitsStream)

	needed := (selectedBitCount-1)*divisor + 2
	if needed < 0 {
		needed = 0
	}
	if needed > len(unwhitened) {
		needed = len(unwhitened)
	}

	dataBits := make([]bool, 0, selectedBitCount)
	decoyBits := make([]bool, 0, selectedBitCount)
	for i := 0; i < needed; i++ {
		switch i % divisor {
		case 0:
			dataBits = append(dataBits, unwhitened[i])
		case 1:
			decoyBits = append(decoyBits, unwhitened[i])
		}
	}

	c.Data = packBitsNew(dataBits)
	c.Decoy = packBitsNew(decoyBits)

	return c, nil
}

// SelectedBitCount reports the number of data (equivalently, decoy) bits
// this carrier contributes.
func (c *EncryptedCarrier) SelectedBitCount() int {
	return len(c.Data) * 8
}

// packBits packs bits MSB-first into dst, which must be exactly
// len(bits)/8 bytes long.
func packBits(dst []byte, bits []bool) {
	for i, bit := range bits {
		if bit {
			dst[i/8] |= 1 << uint(7-i%8)
		}
	}
}

func packBitsNew(bits []bool) []byte {
	out := make([]byte, len(bits)/8)
	packBits(out, bits[:len(out)*8])
	return out
}
