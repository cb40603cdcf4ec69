package scramble

import (
	"bytes"
	"testing"
)

func TestScrambleDescrambleRoundTrip(t *testing.T) {
	original := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	buf := append([]byte(nil), original...)

	s := Seed(len(buf), []byte("testpassword1"), 13)
	if err := s.Scramble(buf); err != nil {
		t.Fatalf("Scramble: %v", err)
	}
	if bytes.Equal(buf, original) {
		t.Fatalf("Scramble left the buffer unchanged")
	}

	if err := s.Descramble(buf); err != nil {
		t.Fatalf("Descramble: %v", err)
	}
	if !bytes.Equal(buf, original) {
		t.Fatalf("Descramble(Scramble(x)) = %v, want %v", buf, original)
	}
}

func TestScrambleRejectsWrongSize(t *testing.T) {
	s := Seed(10, []byte("pw"), 1)
	if err := s.Scramble(make([]byte, 5)); err == nil {
		t.Fatal("expected an error for a mismatched block size")
	}
}

func TestScrambleIsAPermutation(t *testing.T) {
	buf := make([]byte, 64)
	for i := range buf {
		buf[i] = byte(i)
	}
	s := Seed(len(buf), []byte("pw"), 99)
	_ = s.Scramble(buf)

	seen := make([]bool, len(buf))
	for _, v := range buf {
		if seen[v] {
			t.Fatalf("scrambled output is not a permutation: duplicate value %d", v)
		}
		seen[v] = true
	}
}
