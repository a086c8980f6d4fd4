package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/repository"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func newIngestor(t *testing.T) *FSIngestor {
	t.Helper()
	db, err := repository.OpenInMemory(context.Background(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { repository.Close(db, nil) })
	return NewFSIngestor(repository.NewResumeFileRepository(db, nil), nil)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b", "张三.pdf"), "1")
	writeFile(t, filepath.Join(root, "a.PDF"), "2")
	writeFile(t, filepath.Join(root, "notes.txt"), "3")
	writeFile(t, filepath.Join(root, ".cache", "old.pdf"), "4")
	writeFile(t, filepath.Join(root, ".hidden.pdf"), "5")

	paths, failed, stats, err := Discover(root, true, nil)
	require.NoError(t, err)
	assert.Empty(t, failed)
	assert.Equal(t, []string{filepath.Join(root, "a.PDF"), filepath.Join(root, "b", "张三.pdf")}, paths)
	assert.Equal(t, uint32(2), stats.Matched)

	paths, _, _, err = Discover(root, false, nil)
	require.NoError(t, err)
	assert.Len(t, paths, 4)
}

func TestDiscover_CreatesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "datas")
	paths, _, _, err := Discover(root, true, nil)
	require.NoError(t, err)
	assert.Empty(t, paths)
	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDiscover_EmptyRoot(t *testing.T) {
	_, _, _, err := Discover("  ", true, nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestIngestDirectory_Dedup(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "张三.pdf"), "same bytes")
	writeFile(t, filepath.Join(root, "b", "张三-副本.pdf"), "same bytes")
	writeFile(t, filepath.Join(root, "c", "李四.pdf"), "other bytes")

	i := newIngestor(t)
	results, stats, err := i.IngestDirectory(context.Background(), root, true)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, uint32(3), stats.Succeeded)
	assert.Equal(t, uint32(1), stats.Deduplicated)

	assert.False(t, results[0].Deduplicated)
	assert.True(t, results[1].Deduplicated)
	assert.Equal(t, results[0].FileID, results[1].FileID)
	assert.Equal(t, results[0].HashHex, results[1].HashHex)
	assert.Equal(t, "张三-副本.pdf", results[1].Filename)
	assert.NotEqual(t, results[0].FileID, results[2].FileID)
	assert.Len(t, results[0].HashHex, 64)
}

func TestIngestPath_Errors(t *testing.T) {
	i := newIngestor(t)
	_, err := i.IngestPath(context.Background(), filepath.Join(t.TempDir(), "cv.docx"))
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = i.IngestPath(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestIsHidden(t *testing.T) {
	assert.True(t, IsHidden("/x/.git"))
	assert.False(t, IsHidden("."))
	assert.False(t, IsHidden("/x/cv.pdf"))
	assert.True(t, AllowedExt(".PDF"))
	assert.False(t, AllowedExt("docx"))
}
