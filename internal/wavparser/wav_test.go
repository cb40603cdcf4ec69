package wavparser

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/halfwave/puffextract/internal/sink"
)

func buildMinimalWav(samples []uint16) []byte {
	var data bytes.Buffer
	for _, s := range samples {
		binary.Write(&data, binary.LittleEndian, s)
	}

	var fmtChunk bytes.Buffer
	binary.Write(&fmtChunk, binary.LittleEndian, uint16(1))  // PCM
	binary.Write(&fmtChunk, binary.LittleEndian, uint16(1))  // mono
	binary.Write(&fmtChunk, binary.LittleEndian, uint32(44100))
	binary.Write(&fmtChunk, binary.LittleEndian, uint32(44100*2))
	binary.Write(&fmtChunk, binary.LittleEndian, uint16(2)) // block align
	binary.Write(&fmtChunk, binary.LittleEndian, uint16(16))

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	var riffSize uint32 = 4 + (8 + uint32(fmtChunk.Len())) + (8 + uint32(data.Len()))
	binary.Write(&buf, binary.LittleEndian, riffSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(fmtChunk.Len()))
	buf.Write(fmtChunk.Bytes())

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(data.Len()))
	buf.Write(data.Bytes())

	return buf.Bytes()
}

func TestParseValidFile(t *testing.T) {
	raw := buildMinimalWav([]uint16{0x0001, 0x0002, 0x7FFF, 0x0000})
	bits, err := Parse(bytes.NewReader(raw), sink.Discard())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_ = bits
}

func TestParseRejectsBadMagic(t *testing.T) {
	raw := []byte("NOPE0000WAVE")
	_, err := Parse(bytes.NewReader(raw), sink.Discard())
	if err == nil {
		t.Fatal("expected an error for a non-RIFF file")
	}
}

func TestParseRejectsNonPcm(t *testing.T) {
	raw := buildMinimalWav([]uint16{1, 2, 3})
	// corrupt the audio format field (first u16 of the fmt payload) to non-PCM
	idx := bytes.Index(raw, []byte("fmt "))
	binary.LittleEndian.PutUint16(raw[idx+8:idx+10], 2)
	_, err := Parse(bytes.NewReader(raw), sink.Discard())
	if err == nil {
		t.Fatal("expected an error for a non-PCM format")
	}
}

func TestParseWithoutDataChunkIsEmpty(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(4))
	buf.WriteString("WAVE")

	bits, err := Parse(bytes.NewReader(buf.Bytes()), sink.Discard())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(bits) != 0 {
		t.Fatalf("expected an empty bit stream, got %d bits", len(bits))
	}
}

func TestShouldChooseSample(t *testing.T) {
	if shouldChooseSample(0, 4) {
		t.Fatal("all-zero sample should not be chosen")
	}
}
