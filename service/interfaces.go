package service

import (
	"context"
	"mime/multipart"
)

// CarrierUpload is one uploaded carrier file, in the order it must be
// processed.
type CarrierUpload struct {
	Filename string
	File     multipart.File
}

// ExtractedFile is the recovered embedded payload.
type ExtractedFile struct {
	Filename  string
	Content   []byte
	FromDecoy bool
}

// PasswordFields mirrors the three optional/required password form
// fields the HTTP API accepts.
type PasswordFields struct {
	A string
	B *string
	C *string
}

// ExtractionService recovers an embedded file from an ordered set of
// watermarked carrier uploads.
type ExtractionService interface {
	Extract(ctx context.Context, carriers []CarrierUpload, bitSelection string, passwords PasswordFields) (*ExtractedFile, []string, error)
}
