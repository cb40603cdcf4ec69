package carrier

import (
	"errors"
	"os"
	"testing"

	"github.com/halfwave/puffextract/internal/bitselection"
	"github.com/halfwave/puffextract/internal/sink"
)

func TestFromFileNotFound(t *testing.T) {
	_, err := FromFile("/nonexistent/path/to/carrier.wav", bitselection.Default(), sink.Discard())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("FromFile error = %v, want a not-exist error", err)
	}
}

func TestFromFileUnknownExtension(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "carrier-*.xyz")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()

	_, err = FromFile(f.Name(), bitselection.Default(), sink.Discard())
	if err == nil {
		t.Fatal("expected an error for an unrecognized extension")
	}
}

func TestPackBitsMsbFirst(t *testing.T) {
	bits := []bool{true, false, true, false, false, false, false, true}
	out := make([]byte, 1)
	packBits(out, bits)
	if out[0] != 0b10100001 {
		t.Fatalf("packBits = %08b, want %08b", out[0], 0b10100001)
	}
}
