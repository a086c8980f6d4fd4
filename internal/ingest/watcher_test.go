package ingest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartWatcher_NoRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{})
	assert.Error(t, err)
}

func TestStartWatcher_InitialScanAndEvents(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "z.pdf"), "1")
	writeFile(t, filepath.Join(root, "a.pdf"), "2")
	writeFile(t, filepath.Join(root, "skip.txt"), "3")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}, InitialScan: true, SkipHidden: true, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)

	select {
	case batch := <-events:
		assert.Equal(t, []string{filepath.Join(root, "a.pdf"), filepath.Join(root, "z.pdf")}, batch)
	case <-time.After(2 * time.Second):
		t.Fatal("no initial batch")
	}

	created := filepath.Join(root, "new.pdf")
	writeFile(t, created, "4")
	writeFile(t, filepath.Join(root, "ignored.txt"), "5")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case batch := <-events:
			if assert.NotEmpty(t, batch) && contains(batch, created) {
				for _, p := range batch {
					assert.Equal(t, ".pdf", filepath.Ext(p))
				}
				cancel()
				return
			}
		case <-deadline:
			t.Fatal("no event for new file")
		}
	}
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
