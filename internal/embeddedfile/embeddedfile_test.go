package embeddedfile

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/halfwave/puffextract/internal/crc32x"
)

func buildFrame(name, content []byte) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint16(len(name)))
	binary.Write(&buf, binary.LittleEndian, uint32(len(content)))
	binary.Write(&buf, binary.LittleEndian, crc32x.Compute(content))
	buf.Write(name)
	buf.Write(content)
	return buf.Bytes()
}

func TestFromBitsRoundTrip(t *testing.T) {
	frame := buildFrame([]byte("test"), []byte("abc"))

	f, ok := FromBits(frame)
	if !ok {
		t.Fatal("FromBits reported no file found for a well-formed frame")
	}
	if string(f.Filename) != "test" {
		t.Fatalf("Filename = %q, want %q", f.Filename, "test")
	}
	if string(f.Content) != "abc" {
		t.Fatalf("Content = %q, want %q", f.Content, "abc")
	}
}

func TestFromBitsRejectsCorruptedContent(t *testing.T) {
	frame := buildFrame([]byte("test"), []byte("abc"))
	frame[len(frame)-1] ^= 0xFF

	if _, ok := FromBits(frame); ok {
		t.Fatal("FromBits accepted a frame with corrupted content")
	}
}

func TestFromBitsRejectsShortBuffer(t *testing.T) {
	if _, ok := FromBits([]byte{1, 2, 3}); ok {
		t.Fatal("FromBits accepted a buffer shorter than the header")
	}
}

func TestFromBitsRejectsTruncatedContent(t *testing.T) {
	frame := buildFrame([]byte("test"), []byte("abc"))
	if _, ok := FromBits(frame[:len(frame)-1]); ok {
		t.Fatal("FromBits accepted a frame missing trailing content bytes")
	}
}
