// Package embeddedfile parses the length/CRC-framed payload carried by a
// decrypted, concatenated carrier stream.
package embeddedfile

import (
	"encoding/binary"

	"github.com/halfwave/puffextract/internal/crc32x"
)

// HeaderSize is the fixed width of the filename-length, content-size, and
// CRC32 fields preceding every embedded file's filename and content.
const HeaderSize = 10

// EmbeddedFile is a successfully parsed and CRC-verified payload.
type EmbeddedFile struct {
	Filename []byte
	Content  []byte
	CRC32    uint32

	// RemainingBytes is whatever followed the parsed file in the input,
	// for callers that pack more than one file per stream.
	RemainingBytes []byte
}

// FromBits parses a 10-byte header (u16 filename length, u32 content
// size, u32 crc32, all little-endian) followed by the filename and
// content it describes, and reports whether the custom CRC32 of the
// content matches the stored value. A short buffer, a header describing
// more bytes than are present, or a CRC mismatch all yield ok == false:
// there is no embedded file to recover from this stream.
func FromBits(bits []byte) (EmbeddedFile, bool) {
	if len(bits) < HeaderSize {
		return EmbeddedFile{}, false
	}

	filenameLength := int(binary.LittleEndian.Uint16(bits[0:2]))
	contentSize := int(binary.LittleEndian.Uint32(bits[2:6]))
	crc := binary.LittleEndian.Uint32(bits[6:10])

	sizeNeeded := HeaderSize + contentSize + filenameLength
	if sizeNeeded > len(bits) {
		return EmbeddedFile{}, false
	}

	filenameOffset := HeaderSize
	filename := bits[filenameOffset : filenameOffset+filenameLength]

	contentOffset := filenameOffset + filenameLength
	content := bits[contentOffset : contentOffset+contentSize]

	if computed := crc32x.Compute(content); computed != crc {
		return EmbeddedFile{}, false
	}

	return EmbeddedFile{
		Filename:       filename,
		Content:        content,
		CRC32:          crc,
		RemainingBytes: bits[contentOffset+contentSize:],
	}, true
}
