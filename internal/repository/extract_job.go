package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/entity"
)

// TextOutcome is what the text stage records on a job.
type TextOutcome struct {
	Text   string
	Method string
	Pages  int
}

type ExtractJobRepository interface {
	Start(ctx context.Context, fileID uuid.UUID, format string) (*entity.ExtractJob, error)
	GetByID(ctx context.Context, jobID uuid.UUID) (*entity.ExtractJob, error)
	FinishText(ctx context.Context, jobID uuid.UUID, out TextOutcome) error
	FinishParsed(ctx context.Context, jobID uuid.UUID, fields any, rules string) error
	FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error
	LatestParsed(ctx context.Context, fileID uuid.UUID) (*entity.ExtractJob, error)
	CountByStatus(ctx context.Context) (map[constants.JobStatus]int, error)
}

type extractJobRepo struct {
	db  *DB
	log *slog.Logger
}

func NewExtractJobRepository(db *DB, log *slog.Logger) ExtractJobRepository {
	if log == nil {
		log = slog.Default()
	}
	return &extractJobRepo{db: db, log: log}
}

const jobColumns = `id, file_id, format, status, method, pages, text, fields, fields_rules, error_message, started_at, finished_at`

func (r *extractJobRepo) Start(ctx context.Context, fileID uuid.UUID, format string) (*entity.ExtractJob, error) {
	job := &entity.ExtractJob{
		ID:        uuid.New(),
		FileID:    fileID,
		Format:    format,
		Status:    string(constants.JobStatusRunning),
		StartedAt: time.Now().UTC(),
	}
	_, err := r.db.SQL.ExecContext(ctx,
		r.db.rebind(`INSERT INTO extract_job (id, file_id, format, status, started_at) VALUES (?, ?, ?, ?, ?)`),
		job.ID.String(), fileID.String(), format, job.Status, formatTime(job.StartedAt),
	)
	if err != nil {
		r.log.Error("extract_job start failed", "file_id", fileID, "err", err)
		return nil, dbError(err)
	}
	r.log.Debug("extract_job started", "job_id", job.ID, "file_id", fileID, "format", format)
	return job, nil
}

func (r *extractJobRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*entity.ExtractJob, error) {
	row := r.db.SQL.QueryRowContext(ctx, r.db.rebind(`SELECT `+jobColumns+` FROM extract_job WHERE id = ?`), jobID.String())
	return scanJob(row)
}

func (r *extractJobRepo) FinishText(ctx context.Context, jobID uuid.UUID, out TextOutcome) error {
	err := r.update(ctx, jobID,
		`UPDATE extract_job SET text = ?, method = ?, pages = ?, status = ? WHERE id = ?`,
		out.Text, out.Method, out.Pages, string(constants.JobStatusTextOK), jobID.String(),
	)
	if err != nil {
		r.log.Error("extract_job finish(TEXT_OK) failed", "job_id", jobID, "err", err)
		return err
	}
	r.log.Debug("extract_job text stored", "job_id", jobID, "method", out.Method, "pages", out.Pages)
	return nil
}

// FinishParsed stores fields with the fingerprint of the rules that produced them.
func (r *extractJobRepo) FinishParsed(ctx context.Context, jobID uuid.UUID, fields any, rules string) error {
	b, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}
	err = r.update(ctx, jobID,
		`UPDATE extract_job SET fields = ?, fields_rules = ?, status = ?, finished_at = ? WHERE id = ?`,
		string(b), rules, string(constants.JobStatusParsed), formatTime(time.Now()), jobID.String(),
	)
	if err != nil {
		r.log.Error("extract_job finish(PARSED) failed", "job_id", jobID, "err", err)
		return err
	}
	r.log.Debug("extract_job finished (PARSED)", "job_id", jobID)
	return nil
}

func (r *extractJobRepo) FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error {
	err := r.update(ctx, jobID,
		`UPDATE extract_job SET status = ?, error_message = ?, finished_at = ? WHERE id = ?`,
		string(constants.JobStatusFailed), message, formatTime(time.Now()), jobID.String(),
	)
	if err != nil {
		r.log.Error("extract_job finish(FAILED) failed", "job_id", jobID, "err", err)
		return err
	}
	r.log.Warn("extract_job finished (FAILED)", "job_id", jobID, "error", message)
	return nil
}

func (r *extractJobRepo) update(ctx context.Context, jobID uuid.UUID, query string, args ...any) error {
	res, err := r.db.SQL.ExecContext(ctx, r.db.rebind(query), args...)
	if err != nil {
		return dbError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return dbError(err)
	}
	if n == 0 {
		return fmt.Errorf("extract_job %s: %w", jobID, common.ErrNotFound)
	}
	return nil
}

// LatestParsed returns the most recent PARSED job for a file, or common.ErrNotFound.
func (r *extractJobRepo) LatestParsed(ctx context.Context, fileID uuid.UUID) (*entity.ExtractJob, error) {
	row := r.db.SQL.QueryRowContext(ctx,
		r.db.rebind(`SELECT `+jobColumns+` FROM extract_job WHERE file_id = ? AND status = ? ORDER BY started_at DESC LIMIT 1`),
		fileID.String(), string(constants.JobStatusParsed),
	)
	return scanJob(row)
}

func (r *extractJobRepo) CountByStatus(ctx context.Context) (map[constants.JobStatus]int, error) {
	rows, err := r.db.SQL.QueryContext(ctx, `SELECT status, COUNT(*) FROM extract_job GROUP BY status`)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	out := make(map[constants.JobStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, dbError(err)
		}
		out[constants.JobStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err)
	}
	return out, nil
}

func scanJob(s scanner) (*entity.ExtractJob, error) {
	var (
		j                        entity.ExtractJob
		id, fileID, started      string
		method, text, fieldsJSON sql.NullString
		rules, errMsg, finished  sql.NullString
	)
	if err := s.Scan(&id, &fileID, &j.Format, &j.Status, &method, &j.Pages, &text, &fieldsJSON, &rules, &errMsg, &started, &finished); err != nil {
		return nil, dbError(err)
	}
	var err error
	if j.ID, err = uuid.Parse(id); err != nil {
		return nil, dbError(err)
	}
	if j.FileID, err = uuid.Parse(fileID); err != nil {
		return nil, dbError(err)
	}
	if j.StartedAt, err = parseTime(started); err != nil {
		return nil, dbError(err)
	}
	if finished.Valid {
		t, err := parseTime(finished.String)
		if err != nil {
			return nil, dbError(err)
		}
		j.FinishedAt = &t
	}
	j.Method = nullString(method)
	j.Text = nullString(text)
	j.ErrorMessage = nullString(errMsg)
	j.FieldsRules = nullString(rules)
	if fieldsJSON.Valid {
		j.Fields = json.RawMessage(fieldsJSON.String)
	}
	return &j, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
