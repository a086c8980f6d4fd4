package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/pdftext"
)

type stubBackend struct {
	text string
}

func (stubBackend) Name() string { return "stub" }

func (s stubBackend) Extract(context.Context, string, int) (string, int, error) {
	return s.text, 1, nil
}

func TestPDFAdapter(t *testing.T) {
	e := pdftext.NewExtractorWithBackends(pdftext.Config{}, nil, stubBackend{text: "姓名：王五"})
	var tx TextExtractor = NewPDFAdapter(e, nil)

	res, err := tx.Extract(context.Background(), "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "姓名:王五", res.Text)
	assert.Equal(t, "stub", res.Method)
	assert.Equal(t, "PDF", res.SourceType)
	assert.Equal(t, 1, res.Pages)
}

func TestPDFAdapter_Failure(t *testing.T) {
	e := pdftext.NewExtractorWithBackends(pdftext.Config{}, nil, stubBackend{text: "\n"})
	res, err := NewPDFAdapter(e, nil).Extract(context.Background(), "a.pdf")
	assert.True(t, common.IsExtractionFailure(err))
	assert.NotEmpty(t, res.Warnings)
}
