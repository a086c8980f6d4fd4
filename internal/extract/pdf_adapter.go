package extract

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/resume-extractor/internal/pdftext"
)

type PDFAdapter struct {
	e      *pdftext.Extractor
	logger *slog.Logger
}

func NewPDFAdapter(e *pdftext.Extractor, logger *slog.Logger) *PDFAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFAdapter{e: e, logger: logger}
}

func (a *PDFAdapter) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	r, err := a.e.Extract(ctx, path)
	if len(r.Warnings) > 0 {
		a.logger.Debug("text extraction warnings", "path", path, "warnings", r.Warnings)
	}
	return TextExtractionResult{
		Text:       r.Text,
		Pages:      r.Pages,
		SourceType: r.SourceType,
		Method:     r.Method,
		Duration:   r.Duration,
		Warnings:   r.Warnings,
	}, err
}
