// Package whitening builds the CSPRNG-seeded 13-bit-to-6-bit lookup table
// used to reverse the whitening step applied to a carrier's raw extracted
// bit stream before it is interpreted.
package whitening

import (
	"fmt"

	"github.com/halfwave/puffextract/internal/crc32x"
	"github.com/halfwave/puffextract/internal/obfuscate/csprng"
)

// TableSize is the number of 13-bit inputs the table covers.
const TableSize = 1 << 13

// bitAssemblyOrder is the fixed set of twenty candidate output-bit
// selections; one row is chosen per table, keyed by the seed. Each entry
// is six single-bit masks applied to the 32-bit CRC computed over a
// table row's 13 input bits. Reproduced verbatim; do not reformat into a
// derived expression.
var bitAssemblyOrder = [20][6]uint32{
	{1 << 0, 1 << 2, 1 << 13, 1 << 17, 1 << 19, 1 << 28},
	{1 << 0, 1 << 4, 1 << 11, 1 << 16, 1 << 18, 1 << 28},
	{1 << 0, 1 << 4, 1 << 12, 1 << 18, 1 << 26, 1 << 28},
	{1 << 0, 1 << 7, 1 << 11, 1 << 12, 1 << 14, 1 << 16},
	{1 << 1, 1 << 4, 1 << 11, 1 << 15, 1 << 26, 1 << 28},
	{1 << 1, 1 << 4, 1 << 11, 1 << 15, 1 << 26, 1 << 30},
	{1 << 1, 1 << 4, 1 << 11, 1 << 15, 1 << 27, 1 << 30},
	{1 << 1, 1 << 4, 1 << 11, 1 << 26, 1 << 27, 1 << 30},
	{1 << 1, 1 << 12, 1 << 16, 1 << 18, 1 << 26, 1 << 31},
	{1 << 2, 1 << 3, 1 << 10, 1 << 12, 1 << 27, 1 << 31},
	{1 << 2, 1 << 8, 1 << 10, 1 << 12, 1 << 27, 1 << 31},
	{1 << 2, 1 << 13, 1 << 16, 1 << 17, 1 << 27, 1 << 30},
	{1 << 3, 1 << 10, 1 << 12, 1 << 17, 1 << 27, 1 << 31},
	{1 << 4, 1 << 11, 1 << 15, 1 << 18, 1 << 26, 1 << 28},
	{1 << 4, 1 << 11, 1 << 15, 1 << 26, 1 << 27, 1 << 30},
	{1 << 8, 1 << 10, 1 << 14, 1 << 15, 1 << 23, 1 << 27},
	{1 << 8, 1 << 12, 1 << 20, 1 << 22, 1 << 24, 1 << 31},
	{1 << 10, 1 << 14, 1 << 15, 1 << 23, 1 << 26, 1 << 29},
	{1 << 11, 1 << 15, 1 << 18, 1 << 26, 1 << 27, 1 << 29},
	{1 << 11, 1 << 17, 1 << 19, 1 << 27, 1 << 28, 1 << 30},
}

// Table is a generated 13-to-6-bit dewhitening lookup table, indexed by
// the 13-bit big-endian value assembled from one chunk of the carrier's
// raw bit stream.
type Table struct {
	entries [TableSize]byte
}

// Lookup returns the 6-bit (in the low 6 bits of the returned byte)
// dewhitened value for a 13-bit chunk value in [0, TableSize).
func (t *Table) Lookup(chunk uint16) byte {
	return t.entries[chunk]
}

// Generate seeds a CSPRNG with Skein512, password equal to the ten-digit
// zero-padded decimal rendering of seed, and nonce equal to seed truncated
// to 32 bits, then builds the dewhitening table that seed produces.
//
// The bit-selection mask and assembly-row draws below mirror the
// reference generator exactly: thirteen distinct mod-13 draws populate
// bit_mask, and a single mod-20 draw selects the output-assembly row.
func Generate(seed uint64) *Table {
	password := []byte(fmt.Sprintf("%010d", seed))
	c := csprng.NewWithSeed(csprng.Skein512, password, uint32(seed))

	var bitMask [13]uint32
	var filled [13]bool
	for index := 0; index < 13; {
		idx := c.GetDword() % 13
		if filled[idx] {
			continue
		}
		filled[idx] = true
		bitMask[idx] = 1 << uint(index&0b11111)
		index++
	}

	row := bitAssemblyOrder[c.GetByte()%20]

	t := &Table{}
	for i := 0; i < TableSize; i++ {
		w := crc32x.NewBitWriter()
		for j := 0; j < 13; j++ {
			w.WriteBit(uint32(i)&bitMask[j] != 0)
		}
		crc := w.State()

		var out byte
		for k := 0; k < 6; k++ {
			if crc&row[k] != 0 {
				out |= 1 << uint(k)
			}
		}
		t.entries[i] = out
	}

	return t
}

// Dewhiten assembles raw into non-overlapping 13-bit big-endian chunks
// (the final N mod 13 trailing bits, if any, are discarded), looks each
// chunk up in the table generated for len(raw), and returns the
// concatenation of the resulting 6-bit groups packed MSB-first.
func Dewhiten(raw []bool) []bool {
	table := Generate(uint64(len(raw)))

	chunks := len(raw) / 13
	out := make([]bool, 0, chunks*6)
	for c := 0; c < chunks; c++ {
		var value uint16
		for b := 0; b < 13; b++ {
			value <<= 1
			if raw[c*13+b] {
				value |= 1
			}
		}
		six := table.Lookup(value)
		for k := 5; k >= 0; k-- {
			out = append(out, (six>>uint(k))&1 != 0)
		}
	}
	return out
}
