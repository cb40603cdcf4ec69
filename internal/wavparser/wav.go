// Package wavparser walks a RIFF/WAVE container and extracts the raw bit
// stream carried by its statistically-selected PCM samples.
package wavparser

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/halfwave/puffextract/internal/sink"
)

// ErrInvalidFormat is returned for any structural or field-level
// violation of the restricted WAVE profile this parser accepts: PCM,
// 16 bits per sample, at least one channel, no oversized or malformed
// chunk headers.
var ErrInvalidFormat = errors.New("wavparser: invalid or unsupported WAVE format")

type metadata struct {
	audioFormat   uint16
	numChannels   uint16
	sampleRate    uint32
	byteRate      uint32
	blockAlign    uint16
	bitsPerSample uint16
}

// shouldChooseSample reports whether a 16-bit sample carries a hidden bit
// in its least-significant position. A sample is chosen when the number
// of set bits in the sample shifted right by firstRelevantBit-1 (ignoring
// the sign bit) is nonzero and at most 14-firstRelevantBit.
func shouldChooseSample(sample uint16, firstRelevantBit uint) bool {
	sample &^= 1 << 15
	ones := popcount16(sample >> (firstRelevantBit - 1))
	return ones > 0 && ones <= uint(14-firstRelevantBit)
}

func popcount16(v uint16) uint {
	var n uint
	for v != 0 {
		n += uint(v & 1)
		v >>= 1
	}
	return n
}

func extractBitsFromData(r io.Reader, samplesCount uint32) ([]bool, error) {
	bits := make([]bool, 0, samplesCount)
	var buf [2]byte
	for i := uint32(0); i < samplesCount; i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		sample := binary.LittleEndian.Uint16(buf[:])
		if shouldChooseSample(sample, 4) {
			bits = append(bits, sample&1 == 1)
		}
	}
	return bits, nil
}

// Parse walks a RIFF/WAVE stream and returns the raw, still-whitened bit
// stream carried by the file's 'data' subchunk. A file without a 'data'
// subchunk is considered valid and yields an empty bit stream, matching
// OpenPuff's own tolerance.
func Parse(r io.Reader, s sink.Sink) ([]bool, error) {
	var chunkID [4]byte
	if _, err := io.ReadFull(r, chunkID[:]); err != nil {
		return nil, classifyErr(err)
	}
	if !equalFold4(chunkID, [4]byte{'R', 'I', 'F', 'F'}) {
		s.Warnf("expected ChunkID to be 'RIFF', got %q", chunkID[:])
		return nil, ErrInvalidFormat
	}

	chunkSize, err := readU32(r)
	if err != nil {
		return nil, classifyErr(err)
	}
	if chunkSize&0x80000000 != 0 {
		s.Warnf("expected the 32nd bit of ChunkSize to be zero, for compatibility with OpenPuff")
		return nil, ErrInvalidFormat
	}
	if chunkSize < 4 {
		s.Warnf("expected ChunkSize to be at least 4")
		return nil, ErrInvalidFormat
	}

	var format [4]byte
	if _, err := io.ReadFull(r, format[:]); err != nil {
		return nil, classifyErr(err)
	}
	if !equalFold4(format, [4]byte{'W', 'A', 'V', 'E'}) {
		s.Warnf("expected Format to be 'WAVE', got %q", format[:])
		return nil, ErrInvalidFormat
	}

	dataSize := chunkSize - 4
	var dataRead uint32

	// Never read past the RIFF chunk's declared size: a subchunk that
	// claims more bytes than remain ends in a short read.
	r = io.LimitReader(r, int64(dataSize))

	var meta metadata
	var processedFmt, processedData bool
	var bitStorage []bool
	haveBitStorage := false

	for dataRead < dataSize {
		var subchunkID [4]byte
		if _, err := io.ReadFull(r, subchunkID[:]); err != nil {
			return nil, classifyErr(err)
		}
		dataRead += 4

		switch {
		case equalFold4(subchunkID, [4]byte{'f', 'm', 't', ' '}):
			if processedFmt {
				s.Warnf("file cannot have multiple 'fmt ' headers")
				return nil, ErrInvalidFormat
			}
			processedFmt = true

			subchunkSize, err := readU32(r)
			if err != nil {
				return nil, classifyErr(err)
			}
			if subchunkSize&0x80000000 != 0 {
				s.Warnf("expected the 32nd bit of the 'fmt ' SubchunkSize to be zero, for compatibility with OpenPuff")
				return nil, ErrInvalidFormat
			}

			var hdr [16]byte
			if _, err := io.ReadFull(r, hdr[:]); err != nil {
				return nil, classifyErr(err)
			}
			meta.audioFormat = binary.LittleEndian.Uint16(hdr[0:2])
			meta.numChannels = binary.LittleEndian.Uint16(hdr[2:4])
			meta.sampleRate = binary.LittleEndian.Uint32(hdr[4:8])
			meta.byteRate = binary.LittleEndian.Uint32(hdr[8:12])
			meta.blockAlign = binary.LittleEndian.Uint16(hdr[12:14])
			meta.bitsPerSample = binary.LittleEndian.Uint16(hdr[14:16])

			if meta.numChannels == 0 {
				s.Warnf("'fmt ' header declares zero channels")
				return nil, ErrInvalidFormat
			}
			computedBitsPerSample := meta.blockAlign / meta.numChannels * 8

			if computedBitsPerSample != meta.bitsPerSample {
				s.Warnf("discrepancy between BlockAlign and BitsPerSample in the 'fmt ' header")
			}
			if subchunkSize != 16 {
				s.Warnf("'fmt ' header contains trailing data")
			}

			if meta.audioFormat != 1 || computedBitsPerSample != 16 {
				s.Warnf("for compatibility with OpenPuff, only PCM WAVE files with 16 bits per sample and at least one channel are accepted")
				return nil, ErrInvalidFormat
			}

			dataRead += 4 + 16
			if err := skipBytes(r, dataRead, subchunkSize-16, dataSize); err != nil {
				return nil, classifyErr(err)
			}
			dataRead += subchunkSize - 16

		case equalFold4(subchunkID, [4]byte{'d', 'a', 't', 'a'}):
			if processedData || !processedFmt {
				if processedData {
					s.Warnf("file cannot have multiple 'data' headers")
				} else {
					s.Warnf("'fmt ' header must be read before the 'data' header")
				}
				return nil, ErrInvalidFormat
			}
			processedData = true

			subchunkSize, err := readU32(r)
			if err != nil {
				return nil, classifyErr(err)
			}
			dataRead += 4
			if subchunkSize == 0 {
				s.Warnf("expected the data SubchunkSize to be non-zero")
				return nil, ErrInvalidFormat
			}

			numSamplesPerChannel := subchunkSize / uint32(meta.blockAlign)
			numSamples := numSamplesPerChannel * uint32(meta.numChannels)
			if numSamples == 0 {
				s.Warnf("expected the WAVE file to contain at least one sample")
				return nil, ErrInvalidFormat
			}

			bits, err := extractBitsFromData(r, numSamples)
			if err != nil {
				return nil, classifyErr(err)
			}
			bitStorage = bits
			haveBitStorage = true

			dataRead += subchunkSize

		default:
			subchunkSize, err := readU32(r)
			if err != nil {
				return nil, classifyErr(err)
			}
			dataRead += 4
			if subchunkSize&0x80000000 != 0 {
				s.Warnf("expected the 32nd bit of SubchunkSize to be zero, for compatibility with OpenPuff")
				return nil, ErrInvalidFormat
			}
			if err := skipBytes(r, dataRead, subchunkSize, dataSize); err != nil {
				return nil, classifyErr(err)
			}
			dataRead += subchunkSize
		}
	}

	if !haveBitStorage {
		return []bool{}, nil
	}
	return bitStorage, nil
}

func skipBytes(r io.Reader, dataRead, subchunkSize, dataSize uint32) error {
	end := dataRead + subchunkSize
	if end > dataSize {
		end = dataSize
	}
	if end <= dataRead {
		return nil
	}
	_, err := io.CopyN(io.Discard, r, int64(end-dataRead))
	return err
}

func readU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func equalFold4(a, b [4]byte) bool {
	for i := 0; i < 4; i++ {
		ac, bc := a[i], b[i]
		if 'A' <= ac && ac <= 'Z' {
			ac += 'a' - 'A'
		}
		if 'A' <= bc && bc <= 'Z' {
			bc += 'a' - 'A'
		}
		if ac != bc {
			return false
		}
	}
	return true
}

// classifyErr reclassifies an unexpected end of stream as ErrInvalidFormat,
// matching the propagation policy that distinguishes truncated containers
// from genuine I/O failures. io.EOF (a read that got no bytes at all) is
// treated the same way; every other error propagates unchanged.
func classifyErr(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return err
}
