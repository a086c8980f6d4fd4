package pdftext

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	out, errb []byte
	err       error
	name      string
	args      []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.name, f.args = name, args
	return f.out, f.errb, f.err
}

func TestPdftotextBackend(t *testing.T) {
	r := &fakeRunner{out: []byte("第一页\f\f第三页\f")}
	b := PdftotextBackend{Bin: "/usr/bin/pdftotext", Runner: r}

	text, pages, err := b.Extract(context.Background(), "cv.pdf", 3)
	require.NoError(t, err)
	assert.Equal(t, "第一页\n第三页", text)
	assert.Equal(t, 3, pages)
	assert.Equal(t, "/usr/bin/pdftotext", r.name)
	assert.Equal(t, []string{"-f", "1", "-l", "3", "-layout", "-enc", "UTF-8", "-eol", "unix", "cv.pdf", "-"}, r.args)
}

func TestPdftotextBackend_NoPageLimit(t *testing.T) {
	r := &fakeRunner{out: []byte("x")}
	_, pages, err := PdftotextBackend{Bin: "pdftotext", Runner: r}.Extract(context.Background(), "cv.pdf", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
	assert.NotContains(t, r.args, "-l")
}

func TestPdftotextBackend_Error(t *testing.T) {
	r := &fakeRunner{errb: []byte("Syntax Error: Couldn't read xref table\n"), err: errors.New("exit status 1")}
	_, _, err := PdftotextBackend{Bin: "pdftotext", Runner: r}.Extract(context.Background(), "cv.pdf", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xref table")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...(truncated)", truncate("abc", 2))
}
