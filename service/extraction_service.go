package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/halfwave/puffextract/internal/bitselection"
	"github.com/halfwave/puffextract/internal/carriertype"
	"github.com/halfwave/puffextract/internal/extract"
	"github.com/halfwave/puffextract/internal/passwords"
	"github.com/halfwave/puffextract/internal/sink"
)

// extractionService implements ExtractionService on top of the
// internal/extract orchestrator, adapting HTTP-layer multipart uploads
// into the reader-based pipeline entry point.
type extractionService struct {
	sink sink.Sink
}

// NewExtractionService returns an ExtractionService that logs through the
// default, log.Printf-backed sink.
func NewExtractionService() ExtractionService {
	return &extractionService{sink: sink.Default()}
}

func (e *extractionService) Extract(ctx context.Context, carriers []CarrierUpload, bitSelection string, pwFields PasswordFields) (*ExtractedFile, []string, error) {
	if len(carriers) == 0 {
		return nil, nil, fmt.Errorf("service: no carriers given")
	}

	level, err := bitselection.Parse(bitSelection)
	if err != nil {
		return nil, nil, err
	}

	warnings := sink.Collecting()

	pw, err := passwords.FromFields(pwFields.A, pwFields.B, pwFields.C, warnings)
	if err != nil {
		return nil, append([]string(nil), warnings.Warns...), err
	}
	defer pw.Zero()

	named := make([]extract.NamedCarrier, len(carriers))
	for i, c := range carriers {
		ext := filepath.Ext(c.Filename)
		fileType, err := carriertype.FromExtension(ext)
		if err != nil {
			return nil, append([]string(nil), warnings.Warns...), fmt.Errorf("service: carrier %d (%s): %w", i, c.Filename, err)
		}
		named[i] = extract.NamedCarrier{Name: c.Filename, Type: fileType, R: c.File}
	}

	result, err := extract.RunReaders(ctx, named, level, pw, warnings)
	if err != nil {
		return nil, append([]string(nil), warnings.Warns...), err
	}

	return &ExtractedFile{
		Filename:  string(result.Filename),
		Content:   result.Content,
		FromDecoy: result.FromDecoy,
	}, append([]string(nil), warnings.Warns...), nil
}
