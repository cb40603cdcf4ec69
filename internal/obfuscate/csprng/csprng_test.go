package csprng

import "testing"

// The reference CSPRNG's seed test (spec.md §8 scenario 1) cannot be
// reproduced: the upstream generator is a pure FFI wrapper around a C
// library whose source is not present in this codebase's corpus. These
// tests instead pin the properties the rest of the pipeline actually
// relies on: determinism and well-formed permutations.

func TestRandomizeIsDeterministic(t *testing.T) {
	a := make([]byte, 32)
	b := make([]byte, 32)

	NewWithSeed(Sha512, []byte("password"), 0x1234).Randomize(a)
	NewWithSeed(Sha512, []byte("password"), 0x1234).Randomize(b)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Randomize not deterministic at byte %d: %d != %d", i, a[i], b[i])
		}
	}
}

func TestRandomizeVariesBySeed(t *testing.T) {
	a := make([]byte, 32)
	b := make([]byte, 32)

	NewWithSeed(Sha512, []byte("password"), 0x1234).Randomize(a)
	NewWithSeed(Sha512, []byte("password"), 0x5678).Randomize(b)

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("Randomize produced identical output for different nonces")
	}
}

func TestRandomizePermutationIsAPermutation(t *testing.T) {
	perm := make([]int, 50)
	NewWithSeed(Skein512, []byte("p"), 7).RandomizePermutation(perm)

	seen := make([]bool, len(perm))
	for _, v := range perm {
		if v < 0 || v >= len(perm) || seen[v] {
			t.Fatalf("RandomizePermutation produced an invalid permutation: %v", perm)
		}
		seen[v] = true
	}
}

func TestAllHashChoicesProduceOutput(t *testing.T) {
	for _, h := range []Hash{Sha512, Grostl512, Keccak512, Skein512} {
		buf := make([]byte, 16)
		NewWithSeed(h, []byte("password"), 1).Randomize(buf)
		allZero := true
		for _, b := range buf {
			if b != 0 {
				allZero = false
				break
			}
		}
		if allZero {
			t.Errorf("hash %d produced an all-zero buffer", h)
		}
	}
}
