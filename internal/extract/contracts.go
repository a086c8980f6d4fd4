package extract

import (
	"context"
	"time"

	"github.com/joseph-ayodele/resume-extractor/internal/fields"
)

// TextExtractor is Stage 1: file -> text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // "PDF"
	Method     string // "gopdf" | "pdftotext" | "docconv"
	Duration   time.Duration
	Warnings   []string
}

// FieldExtractor is Stage 2: text -> fields, plus the filename as a secondary source.
type FieldExtractor interface {
	ExtractAll(text string) fields.Fields
	ParseFilename(filename string) fields.FilenameInfo
	// Fingerprint changes whenever ExtractAll could return different fields.
	Fingerprint() string
}

var _ FieldExtractor = (*fields.Extractor)(nil)
