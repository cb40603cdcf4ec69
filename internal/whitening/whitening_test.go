package whitening

import "testing"

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate(2984)
	b := Generate(2984)
	if *a != *b {
		t.Fatal("Generate(seed) is not deterministic")
	}
}

func TestGenerateVariesBySeed(t *testing.T) {
	a := Generate(2984)
	b := Generate(2985)
	if *a == *b {
		t.Fatal("Generate produced identical tables for different seeds")
	}
}

func TestLookupWithinSixBits(t *testing.T) {
	tbl := Generate(4096)
	for i := 0; i < TableSize; i++ {
		if v := tbl.Lookup(uint16(i)); v&^0b111111 != 0 {
			t.Fatalf("entry %d has bits set above position 5: %08b", i, v)
		}
	}
}

func TestDewhitenLength(t *testing.T) {
	raw := make([]bool, 13*10)
	out := Dewhiten(raw)
	if len(out) != 10*6 {
		t.Fatalf("Dewhiten produced %d bits, want %d", len(out), 10*6)
	}
}

func TestDewhitenDiscardsTrailingRemainder(t *testing.T) {
	raw := make([]bool, 13*3+7)
	out := Dewhiten(raw)
	if len(out) != 3*6 {
		t.Fatalf("Dewhiten produced %d bits, want %d (remainder should be discarded)", len(out), 3*6)
	}
}
