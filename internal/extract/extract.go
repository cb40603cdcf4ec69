// Package extract orchestrates the full recovery pipeline: parsing every
// carrier, decrypting the key chain across them, and recovering the
// embedded data or decoy file from the concatenated decrypted streams.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/halfwave/puffextract/internal/bitselection"
	"github.com/halfwave/puffextract/internal/carrier"
	"github.com/halfwave/puffextract/internal/carriertype"
	"github.com/halfwave/puffextract/internal/chain"
	"github.com/halfwave/puffextract/internal/embeddedfile"
	"github.com/halfwave/puffextract/internal/passwords"
	"github.com/halfwave/puffextract/internal/sink"
)

// ErrNoFileFound is returned when neither the concatenated data stream
// nor the concatenated decoy stream across every carrier parses as a
// valid, CRC-verified embedded file.
var ErrNoFileFound = errors.New("extract: could not extract a data or decoy file using the given passwords")

// maxRecommendedCarriers mirrors the reference CLI's advisory ceiling:
// OpenPuff itself rejects inputs at or above this many carriers.
const maxRecommendedCarriers = 65535

// Result is the successfully recovered embedded file, tagged with which
// of the two streams (data or its decoy) produced it.
type Result struct {
	Filename  []byte
	Content   []byte
	FromDecoy bool
}

// CarrierPath names one carrier input by filesystem path, in the order it
// must be processed.
type CarrierPath = string

// Run parses every carrier in order, decrypts the key chain across them,
// and returns the recovered embedded file. Carriers are opened and
// decrypted strictly in order because each carrier's key depends on every
// carrier that preceded it; ctx is checked between carriers so a caller
// can abort a long-running extraction.
func Run(ctx context.Context, paths []CarrierPath, level bitselection.BitSelection, pw passwords.Passwords, s sink.Sink) (*Result, error) {
	warnAboutCarrierSet(paths, s)

	carriers := make([]*carrier.EncryptedCarrier, 0, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c, err := carrier.FromFile(path, level, s)
		if err != nil {
			return nil, fmt.Errorf("extract: carrier %d (%s): %w", i, path, err)
		}
		carriers = append(carriers, c)
	}

	warnAboutBitOverflow(carriers, s)

	return recoverFromChain(carriers, pw, s)
}

// NamedCarrier is one in-memory carrier source, identified by the name
// its type is resolved from (typically an uploaded filename). It is the
// in-memory analogue of CarrierPath for callers that do not have the
// carriers on disk (for instance, an HTTP handler holding multipart
// uploads).
type NamedCarrier struct {
	Name string
	Type carriertype.CarrierType
	R    io.Reader
}

// RunReaders is the reader-based counterpart of Run: it parses every
// carrier from its already-open reader instead of a filesystem path, but
// otherwise follows the identical sequential-fold pipeline (parse in
// order, decrypt the chain, recover data-then-decoy).
func RunReaders(ctx context.Context, carriers []NamedCarrier, level bitselection.BitSelection, pw passwords.Passwords, s sink.Sink) (*Result, error) {
	names := make([]string, len(carriers))
	for i, c := range carriers {
		names[i] = c.Name
	}
	warnAboutCarrierSet(names, s)

	parsed := make([]*carrier.EncryptedCarrier, 0, len(carriers))
	for i, nc := range carriers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c, err := carrier.FromReader(nc.R, nc.Type, level, s)
		if err != nil {
			return nil, fmt.Errorf("extract: carrier %d (%s): %w", i, nc.Name, err)
		}
		parsed = append(parsed, c)
	}

	warnAboutBitOverflow(parsed, s)

	return recoverFromChain(parsed, pw, s)
}

func recoverFromChain(carriers []*carrier.EncryptedCarrier, pw passwords.Passwords, s sink.Sink) (*Result, error) {
	embeddings, err := chain.DecryptChain(carriers, pw, s)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	var dataStream, decoyStream []byte
	for _, e := range embeddings {
		dataStream = append(dataStream, e.Data...)
		decoyStream = append(decoyStream, e.Decoy...)
	}

	if f, ok := embeddedfile.FromBits(dataStream); ok {
		s.Infof("successfully extracted data file: %q", f.Filename)
		return &Result{Filename: f.Filename, Content: f.Content}, nil
	}

	if f, ok := embeddedfile.FromBits(decoyStream); ok {
		s.Infof("successfully extracted decoy file: %q", f.Filename)
		return &Result{Filename: f.Filename, Content: f.Content, FromDecoy: true}, nil
	}

	s.Errorf("could not extract a data or decoy file using the given passwords")
	return nil, ErrNoFileFound
}

func warnAboutCarrierSet(paths []CarrierPath, s sink.Sink) {
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if seen[p] {
			s.Warnf("duplicate carriers used, OpenPuff would complain")
			break
		}
		seen[p] = true
	}

	if len(paths) >= maxRecommendedCarriers {
		s.Warnf("%d or more carriers used, OpenPuff would complain", maxRecommendedCarriers)
	}
}

func warnAboutBitOverflow(carriers []*carrier.EncryptedCarrier, s sink.Sink) {
	var total uint32
	for _, c := range carriers {
		n := c.SelectedBitCount()
		if n < 0 || uint32(n) > ^uint32(0)-total {
			s.Warnf("too many carriers (the total number of selected bits overflows 32 bits), OpenPuff would complain")
			return
		}
		total += uint32(n)
	}
}
