// Package pdftext reads plain text out of the first pages of a PDF, trying an ordered
// chain of backends until one yields non-blank text.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
)

// Backend names accepted in Config.Backends.
const (
	BackendGoPDF     = "gopdf"
	BackendPdftotext = "pdftotext"
	BackendDocconv   = "docconv"
)

type Config struct {
	Backends  []string      // tried in order; empty -> gopdf, pdftotext
	Pdftotext string        // binary name or absolute path; if empty -> "pdftotext"
	MaxPages  int           // default constants.MaxPages
	Timeout   time.Duration // per backend attempt; 0 = no limit
}

type ExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF
	Method     string // backend that produced Text
	Duration   time.Duration
	Warnings   []string
}

// Backend is one way of turning a PDF into text.
type Backend interface {
	Name() string
	// Extract returns the text of at most maxPages leading pages and how many pages it read.
	Extract(ctx context.Context, path string, maxPages int) (text string, pages int, err error)
}

type Extractor struct {
	cfg      Config
	backends []Backend
	logger   *slog.Logger
}

// NewExtractor builds the backend chain named in cfg.
func NewExtractor(cfg Config, logger *slog.Logger) (*Extractor, error) {
	cfg = withDefaults(cfg)
	if logger == nil {
		logger = slog.Default()
	}
	runner := execRunner{logger: logger}
	backends := make([]Backend, 0, len(cfg.Backends))
	for _, name := range cfg.Backends {
		b, err := newBackend(name, cfg, runner)
		if err != nil {
			return nil, err
		}
		if name == BackendDocconv {
			logger.Warn("pdftext.docconv.whole_document", "max_pages", cfg.MaxPages)
		}
		backends = append(backends, b)
	}
	return NewExtractorWithBackends(cfg, logger, backends...), nil
}

// NewExtractorWithBackends uses the given backends instead of cfg.Backends.
func NewExtractorWithBackends(cfg Config, logger *slog.Logger, backends ...Backend) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{cfg: withDefaults(cfg), backends: backends, logger: logger}
}

func withDefaults(cfg Config) Config {
	if len(cfg.Backends) == 0 {
		cfg.Backends = []string{BackendGoPDF, BackendPdftotext}
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = constants.MaxPages
	}
	return cfg
}

func newBackend(name string, cfg Config, r Runner) (Backend, error) {
	switch name {
	case BackendGoPDF:
		return GoPDFBackend{}, nil
	case BackendPdftotext:
		return PdftotextBackend{Bin: cfg.Pdftotext, Runner: r}, nil
	case BackendDocconv:
		return DocconvBackend{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown pdf backend %q", common.ErrInvalidInput, name)
	}
}

// Extract returns the normalized text of path from the first backend that produces any.
// When every backend fails or yields only whitespace the error matches
// common.ErrExtractionFailed.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	if constants.MapExtToFormat(ext) != constants.PDF {
		e.logger.Error("unsupported extension", "path", path, "extension", ext)
		return ExtractionResult{}, fmt.Errorf("%w: unsupported extension %q", common.ErrInvalidInput, ext)
	}

	res := ExtractionResult{SourceType: constants.PDF}
	var errs []error
	for _, b := range e.backends {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		e.logger.Debug("starting text extraction", "path", path, "method", b.Name(), "max_pages", e.cfg.MaxPages)

		text, pages, err := e.run(ctx, b, path)
		if err != nil {
			e.logger.Warn("pdf backend failed", "path", path, "method", b.Name(), "error", err)
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %v", b.Name(), err))
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}
		text = Normalize(text)
		if text == "" {
			e.logger.Warn("pdf backend returned no text", "path", path, "method", b.Name())
			res.Warnings = append(res.Warnings, b.Name()+": empty text")
			continue
		}

		res.Text = text
		res.Pages = pages
		res.Method = b.Name()
		res.Duration = time.Since(start)
		return res, nil
	}

	res.Duration = time.Since(start)
	return res, common.ExtractionFailed(path, errors.Join(errs...))
}

func (e *Extractor) run(ctx context.Context, b Backend, path string) (string, int, error) {
	ctx, cancel := common.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()
	return b.Extract(ctx, path, e.cfg.MaxPages)
}

// joinPages concatenates page texts with newlines, skipping blank pages.
func joinPages(pages []string) string {
	var b strings.Builder
	for _, p := range pages {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(p)
	}
	return b.String()
}
