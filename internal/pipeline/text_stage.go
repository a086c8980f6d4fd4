package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/extract"
	"github.com/joseph-ayodele/resume-extractor/internal/repository"
)

type TextStage struct {
	FilesRepo     repository.ResumeFileRepository
	JobsRepo      repository.ExtractJobRepository
	TextExtractor extract.TextExtractor
	Logger        *slog.Logger
}

func NewTextStage(files repository.ResumeFileRepository, jobs repository.ExtractJobRepository, tx extract.TextExtractor, logger *slog.Logger) *TextStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextStage{FilesRepo: files, JobsRepo: jobs, TextExtractor: tx, Logger: logger}
}

// Run starts an extract_job for fileID, extracts the text of path and stores it on the job.
// path is passed separately because identical content may live at several paths.
// The field parse stage is NOT called.
func (s *TextStage) Run(ctx context.Context, fileID uuid.UUID, path string) (uuid.UUID, extract.TextExtractionResult, error) {
	row, err := s.FilesRepo.GetByID(ctx, fileID)
	if err != nil {
		return uuid.Nil, extract.TextExtractionResult{}, fmt.Errorf("get file: %w", err)
	}
	if path == "" {
		path = row.SourcePath
	}

	format := constants.MapExtToFormat(row.FileExt)
	if format == "" {
		return uuid.Nil, extract.TextExtractionResult{}, fmt.Errorf("unsupported format: %s", row.FileExt)
	}

	job, err := s.JobsRepo.Start(ctx, row.ID, format)
	if err != nil {
		return uuid.Nil, extract.TextExtractionResult{}, err
	}

	res, err := s.TextExtractor.Extract(ctx, path)
	if err != nil {
		if ferr := s.JobsRepo.FinishFailure(ctx, job.ID, err.Error()); ferr != nil {
			s.Logger.Error("failed to record extraction failure", "job_id", job.ID, "error", ferr)
		}
		return job.ID, res, err
	}

	out := repository.TextOutcome{
		Text:   res.Text,
		Method: res.Method,
		Pages:  res.Pages,
	}
	if err := s.JobsRepo.FinishText(ctx, job.ID, out); err != nil {
		return job.ID, res, err
	}
	return job.ID, res, nil
}
