package extractor

import (
	"context"

	"github.com/BerylCAtieno/document-validator-api/internal/models"
)

// Extractor turns stored PDF bytes into text for the validator.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (*models.ExtractionResult, error)
}

// ExtractionError is the single failure kind of an extraction. It keeps
// the library's message so it can be shown to the client.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return "Failed to extract text: " + e.Err.Error()
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

type pdfExtractor struct{}

func NewPDFExtractor() Extractor {
	return &pdfExtractor{}
}

func (e *pdfExtractor) Extract(ctx context.Context, data []byte) (*models.ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := ExtractPDF(data)
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	// Page count is informational; pdfcpu rejects some files ledongthuc reads.
	pages, err := PageCount(data)
	if err != nil {
		pages = 0
	}

	return &models.ExtractionResult{
		Text:  cleanText(text),
		Pages: pages,
	}, nil
}
