package repository

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/entity"
)

type ResumeFileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ResumeFile, error)
	GetByHash(ctx context.Context, hash []byte) (*entity.ResumeFile, error)
	Create(ctx context.Context, sourcePath, filename, ext string, size int64, hash []byte, ingestedAt time.Time) (*entity.ResumeFile, error)
	UpsertByHash(ctx context.Context, sourcePath, filename, ext string, size int64, hash []byte, ingestedAt time.Time) (*entity.ResumeFile, bool, error)
	List(ctx context.Context) ([]*entity.ResumeFile, error)
	Count(ctx context.Context) (int, error)
}

type resumeFileRepo struct {
	db     *DB
	logger *slog.Logger
}

func NewResumeFileRepository(db *DB, logger *slog.Logger) ResumeFileRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &resumeFileRepo{
		db:     db,
		logger: logger,
	}
}

const fileColumns = `id, source_path, filename, file_ext, file_size, content_hash, ingested_at`

func (r *resumeFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ResumeFile, error) {
	row := r.db.SQL.QueryRowContext(ctx, r.db.rebind(`SELECT `+fileColumns+` FROM resume_file WHERE id = ?`), id.String())
	return scanFile(row)
}

func (r *resumeFileRepo) GetByHash(ctx context.Context, hash []byte) (*entity.ResumeFile, error) {
	row := r.db.SQL.QueryRowContext(ctx, r.db.rebind(`SELECT `+fileColumns+` FROM resume_file WHERE content_hash = ?`), hex.EncodeToString(hash))
	f, err := scanFile(row)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		r.logger.Error("failed to get resume file by hash", "hash", hex.EncodeToString(hash), "error", err)
	}
	return f, err
}

func (r *resumeFileRepo) Create(ctx context.Context, sourcePath, filename, ext string, size int64, hash []byte, ingestedAt time.Time) (*entity.ResumeFile, error) {
	f := &entity.ResumeFile{
		ID:          uuid.New(),
		SourcePath:  sourcePath,
		ContentHash: hash,
		Filename:    filename,
		FileExt:     ext,
		FileSize:    size,
		IngestedAt:  ingestedAt.UTC(),
	}
	_, err := r.db.SQL.ExecContext(ctx,
		r.db.rebind(`INSERT INTO resume_file (`+fileColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		f.ID.String(), f.SourcePath, f.Filename, f.FileExt, f.FileSize, hex.EncodeToString(f.ContentHash), formatTime(f.IngestedAt),
	)
	if err != nil {
		r.logger.Error("failed to create resume file", "source_path", sourcePath, "filename", filename, "error", err)
		return nil, dbError(err)
	}
	return f, nil
}

// UpsertByHash returns the stored file with this content hash, creating it when new.
// The bool is true when the file already existed.
func (r *resumeFileRepo) UpsertByHash(ctx context.Context, sourcePath, filename, ext string, size int64, hash []byte, ingestedAt time.Time) (*entity.ResumeFile, bool, error) {
	existing, err := r.GetByHash(ctx, hash)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, false, err
	}
	row, err := r.Create(ctx, sourcePath, filename, ext, size, hash, ingestedAt)
	if err != nil {
		r.logger.Error("failed to upsert resume file by hash", "source_path", sourcePath, "filename", filename, "error", err)
		return nil, false, err
	}
	return row, false, nil
}

func (r *resumeFileRepo) List(ctx context.Context) ([]*entity.ResumeFile, error) {
	rows, err := r.db.SQL.QueryContext(ctx, `SELECT `+fileColumns+` FROM resume_file ORDER BY source_path`)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	var out []*entity.ResumeFile
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err)
	}
	return out, nil
}

func (r *resumeFileRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.SQL.QueryRowContext(ctx, `SELECT COUNT(*) FROM resume_file`).Scan(&n); err != nil {
		return 0, dbError(err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(s scanner) (*entity.ResumeFile, error) {
	var (
		f                     entity.ResumeFile
		id, hashHex, ingested string
	)
	if err := s.Scan(&id, &f.SourcePath, &f.Filename, &f.FileExt, &f.FileSize, &hashHex, &ingested); err != nil {
		return nil, dbError(err)
	}
	var err error
	if f.ID, err = uuid.Parse(id); err != nil {
		return nil, dbError(err)
	}
	if f.ContentHash, err = hex.DecodeString(hashHex); err != nil {
		return nil, dbError(err)
	}
	if f.IngestedAt, err = parseTime(ingested); err != nil {
		return nil, dbError(err)
	}
	return &f, nil
}

var _ scanner = (*sql.Row)(nil)
