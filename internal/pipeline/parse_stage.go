package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/extract"
	"github.com/joseph-ayodele/resume-extractor/internal/fields"
	"github.com/joseph-ayodele/resume-extractor/internal/repository"
)

type ParseStage struct {
	JobsRepo  repository.ExtractJobRepository
	Extractor extract.FieldExtractor
	Logger    *slog.Logger
}

func NewParseStage(jobs repository.ExtractJobRepository, fe extract.FieldExtractor, logger *slog.Logger) *ParseStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParseStage{JobsRepo: jobs, Extractor: fe, Logger: logger}
}

// Run extracts the résumé fields from the text stored on jobID.
// Preconditions: job is TEXT_OK with stored text.
// Effects: writes the fields JSON with the extractor fingerprint and marks the job PARSED.
func (s *ParseStage) Run(ctx context.Context, jobID uuid.UUID) (fields.Fields, error) {
	job, err := s.JobsRepo.GetByID(ctx, jobID)
	if err != nil {
		return fields.Fields{}, fmt.Errorf("load job: %w", err)
	}
	if job.Status != string(constants.JobStatusTextOK) || job.Text == nil {
		return fields.Fields{}, fmt.Errorf("job not ready for parse: status=%s text_empty=%t", job.Status, job.Text == nil)
	}

	f := s.Extractor.ExtractAll(*job.Text)
	if err := s.JobsRepo.FinishParsed(ctx, job.ID, f, s.Extractor.Fingerprint()); err != nil {
		if ferr := s.JobsRepo.FinishFailure(ctx, job.ID, err.Error()); ferr != nil {
			s.Logger.Error("failed to record parse failure", "job_id", job.ID, "error", ferr)
		}
		return f, err
	}

	s.Logger.Debug("parsed fields",
		"job_id", job.ID,
		"text_chars", len([]rune(*job.Text)),
		"found", f.Found(),
	)
	return f, nil
}
