package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory(context.Background(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { Close(db, nil) })
	return db
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "mysql"}, nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Migrate(context.Background(), db))
}

func TestRebind(t *testing.T) {
	q := `UPDATE t SET a = ?, b = ? WHERE id = ?`
	assert.Equal(t, q, (&DB{Driver: DriverSQLite}).rebind(q))
	assert.Equal(t, `UPDATE t SET a = $1, b = $2 WHERE id = $3`, (&DB{Driver: DriverPgx}).rebind(q))
}

func TestResumeFileRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewResumeFileRepository(newTestDB(t), nil)
	hash := []byte{0xde, 0xad, 0xbe, 0xef}
	now := time.Date(2024, 5, 20, 8, 30, 0, 0, time.UTC)

	f, existed, err := repo.UpsertByHash(ctx, "/data/b/张三.pdf", "张三.pdf", "pdf", 1024, hash, now)
	require.NoError(t, err)
	assert.False(t, existed)

	again, existed, err := repo.UpsertByHash(ctx, "/data/copy/张三.pdf", "张三.pdf", "pdf", 1024, hash, now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, f.ID, again.ID)
	assert.Equal(t, "/data/b/张三.pdf", again.SourcePath)
	assert.True(t, now.Equal(again.IngestedAt))

	got, err := repo.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, hash, got.ContentHash)
	assert.Equal(t, int64(1024), got.FileSize)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = repo.Create(ctx, "/data/a/李四.pdf", "李四.pdf", "pdf", 10, []byte{1}, now)
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "/data/a/李四.pdf", list[0].SourcePath)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = repo.Create(ctx, "/dup.pdf", "dup.pdf", "pdf", 1, hash, now)
	assert.ErrorIs(t, err, common.ErrDatabase)
}

func TestExtractJobRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	files := NewResumeFileRepository(db, nil)
	jobs := NewExtractJobRepository(db, nil)

	f, err := files.Create(ctx, "/data/张三.pdf", "张三.pdf", "pdf", 1, []byte{9}, time.Now())
	require.NoError(t, err)

	_, err = jobs.LatestParsed(ctx, f.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	job, err := jobs.Start(ctx, f.ID, constants.PDF)
	require.NoError(t, err)
	assert.Equal(t, string(constants.JobStatusRunning), job.Status)

	require.NoError(t, jobs.FinishText(ctx, job.ID, TextOutcome{Text: "姓名:张三", Method: "gopdf", Pages: 2}))
	got, err := jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, string(constants.JobStatusTextOK), got.Status)
	require.NotNil(t, got.Text)
	assert.Equal(t, "姓名:张三", *got.Text)
	require.NotNil(t, got.Method)
	assert.Equal(t, "gopdf", *got.Method)
	assert.Equal(t, 2, got.Pages)
	assert.Nil(t, got.FinishedAt)

	require.NoError(t, jobs.FinishParsed(ctx, job.ID, map[string]string{"name": "张三"}, "rules-a"))
	latest, err := jobs.LatestParsed(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, latest.ID)
	assert.NotNil(t, latest.FinishedAt)
	require.NotNil(t, latest.FieldsRules)
	assert.Equal(t, "rules-a", *latest.FieldsRules)
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(latest.Fields, &decoded))
	assert.Equal(t, "张三", decoded["name"])

	failed, err := jobs.Start(ctx, f.ID, constants.PDF)
	require.NoError(t, err)
	require.NoError(t, jobs.FinishFailure(ctx, failed.ID, "no text"))

	counts, err := jobs.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[constants.JobStatus]int{constants.JobStatusParsed: 1, constants.JobStatusFailed: 1}, counts)

	latest, err = jobs.LatestParsed(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, latest.ID, "a later failure does not hide the parsed job")

	assert.ErrorIs(t, jobs.FinishFailure(ctx, uuid.New(), "x"), common.ErrNotFound)
}
