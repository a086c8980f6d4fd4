package extraction

import (
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/export"
	"github.com/joseph-ayodele/resume-extractor/internal/extract"
	"github.com/joseph-ayodele/resume-extractor/internal/fields"
	"github.com/joseph-ayodele/resume-extractor/internal/ingest"
	"github.com/joseph-ayodele/resume-extractor/internal/pdftext"
	"github.com/joseph-ayodele/resume-extractor/internal/pipeline"
	repo "github.com/joseph-ayodele/resume-extractor/internal/repository"
)

// Components are the collaborators built from one configuration.
type Components struct {
	Files     repo.ResumeFileRepository
	Jobs      repo.ExtractJobRepository
	PDF       *pdftext.Extractor
	Fields    *fields.Extractor
	Processor *pipeline.Processor
	Exporter  *export.Service
	Service   *Service
}

// Build wires repositories, the text backend chain, the field extractor and the run service.
func Build(cfg *common.Config, db *repo.DB, logger *slog.Logger) (*Components, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pdf, err := pdftext.NewExtractor(pdftext.Config{
		Backends:  cfg.Extract.Backends,
		Pdftotext: cfg.Extract.Pdftotext,
		MaxPages:  cfg.Extract.MaxPages,
		Timeout:   cfg.Extract.Timeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("text extractor: %w", err)
	}
	fe := NewFieldExtractor(cfg.Fields)

	c := &Components{
		Files:  repo.NewResumeFileRepository(db, logger),
		Jobs:   repo.NewExtractJobRepository(db, logger),
		PDF:    pdf,
		Fields: fe,
	}
	text := pipeline.NewTextStage(c.Files, c.Jobs, extract.NewPDFAdapter(pdf, logger), logger)
	parse := pipeline.NewParseStage(c.Jobs, fe, logger)
	c.Processor = pipeline.NewProcessor(logger, text, parse, c.Jobs, fe)
	c.Exporter = export.NewService(cfg.Export.Sheet, cfg.Export.FailuresSheet, logger)
	c.Service = NewService(ingest.NewFSIngestor(c.Files, logger), c.Processor, c.Exporter, Options{
		Workers:        cfg.Workers.Count,
		QueueSize:      cfg.Workers.QueueSize,
		ProcessTimeout: cfg.Workers.ProcessTimeout,
	}, logger)
	return c, nil
}

// NewFieldExtractor applies the fields section of the configuration.
func NewFieldExtractor(cfg common.FieldsConfig) *fields.Extractor {
	return fields.New(
		fields.WithNameWindow(cfg.NameWindow),
		fields.WithExtraCities(cfg.ExtraCities...),
		fields.WithExtraTitleWords(cfg.ExtraTitleWords...),
	)
}
