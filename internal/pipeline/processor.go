package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/entity"
	"github.com/joseph-ayodele/resume-extractor/internal/extract"
	"github.com/joseph-ayodele/resume-extractor/internal/fields"
	"github.com/joseph-ayodele/resume-extractor/internal/repository"
)

// Input identifies one discovered résumé.
type Input struct {
	FileID       uuid.UUID
	Path         string
	Deduplicated bool // content already known to the store
	Force        bool // re-extract even when stored fields exist
}

// Outcome is the result of processing one résumé.
type Outcome struct {
	Path     string
	Filename string
	JobID    uuid.UUID
	Method   string
	Reused   bool // fields came from an earlier run
	Fields   fields.Fields
	FromName fields.FilenameInfo
	Record   entity.Record
	Err      error
}

// Processor coordinates text extraction then field parsing for one file.
type Processor struct {
	Logger    *slog.Logger
	Text      *TextStage
	Parse     *ParseStage
	JobsRepo  repository.ExtractJobRepository
	Extractor extract.FieldExtractor
}

func NewProcessor(logger *slog.Logger, text *TextStage, parse *ParseStage, jobs repository.ExtractJobRepository, fe extract.FieldExtractor) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Text: text, Parse: parse, JobsRepo: jobs, Extractor: fe}
}

// ProcessFile extracts and merges the fields of one résumé. A document whose text cannot
// be read is returned with Err set and no record; the error is also returned.
func (p *Processor) ProcessFile(ctx context.Context, in Input) (Outcome, error) {
	logger := common.LoggerFromContext(ctx, p.Logger)
	out := Outcome{Path: in.Path, Filename: filepath.Base(in.Path)}
	out.FromName = p.Extractor.ParseFilename(out.Filename)

	if in.Deduplicated && !in.Force {
		if f, jobID, ok := p.reuse(ctx, in.FileID); ok {
			out.Fields, out.JobID, out.Reused = f, jobID, true
			out.Record = Assemble(out.Filename, out.Fields, out.FromName)
			logger.Info("pipeline.reuse.ok", "path", in.Path, "file_id", in.FileID, "job_id", jobID)
			return out, nil
		}
	}

	// 1) text stage → creates job + stores text
	jobID, res, err := p.Text.Run(ctx, in.FileID, in.Path)
	out.JobID = jobID
	if err != nil {
		logger.Error("pipeline.text.failed", "path", in.Path, "file_id", in.FileID, "err", err)
		out.Err = err
		return out, err
	}
	out.Method = res.Method
	logger.Info("pipeline.text.ok",
		"path", in.Path,
		"job_id", jobID,
		"method", res.Method,
		"pages", res.Pages,
		"duration_ms", res.Duration.Milliseconds(),
	)

	// 2) parse stage → reads job text, stores fields
	f, err := p.Parse.Run(ctx, jobID)
	if err != nil {
		logger.Error("pipeline.parse.failed", "job_id", jobID, "err", err)
		out.Err = err
		return out, err
	}
	out.Fields = f
	out.Record = Assemble(out.Filename, f, out.FromName)
	logger.Info("pipeline.parse.ok", "job_id", jobID, "found", f.Found())
	return out, nil
}

// reuse loads the fields of the latest parsed job for fileID. Fields produced under a
// different extractor configuration are stale and never reused.
func (p *Processor) reuse(ctx context.Context, fileID uuid.UUID) (fields.Fields, uuid.UUID, bool) {
	job, err := p.JobsRepo.LatestParsed(ctx, fileID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			p.Logger.Warn("lookup of stored fields failed", "file_id", fileID, "error", err)
		}
		return fields.Fields{}, uuid.Nil, false
	}
	if want := p.Extractor.Fingerprint(); job.FieldsRules == nil || *job.FieldsRules != want {
		p.Logger.Info("pipeline.reuse.stale", "file_id", fileID, "job_id", job.ID, "rules", want)
		return fields.Fields{}, uuid.Nil, false
	}
	var f fields.Fields
	if err := json.Unmarshal(job.Fields, &f); err != nil {
		p.Logger.Warn("stored fields unreadable", "job_id", job.ID, "error", fmt.Errorf("%w: %w", common.ErrDatabase, err))
		return fields.Fields{}, uuid.Nil, false
	}
	return f, job.ID, true
}
