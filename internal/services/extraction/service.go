package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/resume-extractor/internal/async"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/entity"
	"github.com/joseph-ayodele/resume-extractor/internal/ingest"
	"github.com/joseph-ayodele/resume-extractor/internal/pipeline"
)

// Exporter writes the final workbook.
type Exporter interface {
	WriteFile(ctx context.Context, path string, records []entity.Record, failures []entity.Failure) error
}

// Options size the per-run worker queue.
type Options struct {
	Workers        int
	QueueSize      int
	ProcessTimeout time.Duration
}

// Service runs one directory through ingest, extraction and export.
type Service struct {
	ingestor  ingest.Ingestor
	processor async.FileProcessor
	exporter  Exporter
	opts      Options
	logger    *slog.Logger
}

func NewService(ing ingest.Ingestor, proc async.FileProcessor, exp Exporter, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{ingestor: ing, processor: proc, exporter: exp, opts: opts, logger: logger}
}

// RunRequest represents one processing run.
type RunRequest struct {
	Root       string
	SkipHidden bool
	Force      bool   // re-extract files whose fields are already stored
	Output     string // workbook path; empty skips export
}

// RunResult is the ordered output of a run.
type RunResult struct {
	RunID    string
	Records  []entity.Record
	Stats    pipeline.Stats
	Ingest   ingest.DirStats
	Output   string
	Duration time.Duration
}

// Run discovers every résumé under req.Root, processes them in parallel and, when
// req.Output is set, writes the workbook. Unreadable documents never abort the run;
// they are reported in Stats.FailedFiles.
func (s *Service) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	start := time.Now()
	root := strings.TrimSpace(req.Root)
	if root == "" {
		return nil, fmt.Errorf("%w: root is required", common.ErrInvalidInput)
	}

	runID := uuid.NewString()
	ctx = common.WithRunID(ctx, runID)
	logger := s.logger.With("run_id", runID)

	logger.Info("run.start", "root", root, "skip_hidden", req.SkipHidden, "force", req.Force)
	results, dirStats, err := s.ingestor.IngestDirectory(ctx, root, req.SkipHidden)
	if err != nil {
		return nil, fmt.Errorf("ingest directory: %w", err)
	}

	var (
		mu       sync.Mutex
		outcomes []pipeline.Outcome
	)
	queue := async.NewProcessorQueue(s.processor, logger,
		async.WithWorkers(s.opts.Workers),
		async.WithQueueSize(s.opts.QueueSize),
		async.WithProcessTimeout(s.opts.ProcessTimeout),
		async.WithResultHandler(func(_ async.Job, out pipeline.Outcome) {
			mu.Lock()
			defer mu.Unlock()
			outcomes = append(outcomes, out)
		}),
	)

	var ingestFailures []entity.Failure
	for _, r := range results {
		if r.Err != "" {
			ingestFailures = append(ingestFailures, entity.Failure{Filename: r.Filename, Path: r.SourcePath, Error: r.Err})
			continue
		}
		if err := s.enqueue(ctx, queue, r, req.Force, runID); err != nil {
			ingestFailures = append(ingestFailures, entity.Failure{Filename: r.Filename, Path: r.SourcePath, Error: err.Error()})
		}
	}
	if err := queue.Shutdown(ctx); err != nil {
		return nil, fmt.Errorf("drain queue: %w", err)
	}

	records, stats := pipeline.BuildReport(outcomes)
	if len(ingestFailures) > 0 {
		stats.Total += len(ingestFailures)
		stats.Failed += len(ingestFailures)
		stats.FailedFiles = append(stats.FailedFiles, ingestFailures...)
		sort.SliceStable(stats.FailedFiles, func(i, j int) bool { return stats.FailedFiles[i].Path < stats.FailedFiles[j].Path })
	}

	res := &RunResult{RunID: runID, Records: records, Stats: stats, Ingest: dirStats}
	if req.Output != "" {
		if err := s.exporter.WriteFile(ctx, req.Output, records, stats.FailedFiles); err != nil {
			return res, err
		}
		res.Output = req.Output
	}
	res.Duration = time.Since(start)

	logger.Info("run.complete",
		"total", stats.Total,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"reused", stats.Reused,
		"output", res.Output,
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	for _, f := range stats.FailedFiles {
		logger.Warn("run.file.failed", "path", f.Path, "error", f.Error)
	}
	return res, nil
}

func (s *Service) enqueue(ctx context.Context, q async.Queue, r ingest.IngestionResult, force bool, runID string) error {
	fileID, err := uuid.Parse(r.FileID)
	if err != nil {
		s.logger.Error("invalid file_id: cannot enqueue", "file_id", r.FileID, "error", err)
		return fmt.Errorf("%w: invalid file_id %q", common.ErrInvalidInput, r.FileID)
	}
	if err := q.Enqueue(ctx, async.Job{
		FileID:       fileID,
		Path:         r.SourcePath,
		Deduplicated: r.Deduplicated,
		Force:        force,
		SubmittedAt:  time.Now(),
		RunID:        runID,
	}); err != nil {
		s.logger.Error("enqueue failed for file", "file_id", r.FileID, "err", err)
		return fmt.Errorf("enqueue: %w", err)
	}
	return nil
}
