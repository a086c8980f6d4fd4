package pdftext

import (
	"context"
	"fmt"

	"code.sajari.com/docconv"
)

// DocconvBackend converts through code.sajari.com/docconv. It cannot stop early, so
// the whole document is read; Pages is reported as 0.
type DocconvBackend struct{}

func (DocconvBackend) Name() string { return BackendDocconv }

func (DocconvBackend) Extract(ctx context.Context, path string, _ int) (string, int, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", 0, fmt.Errorf("docconv: %w", err)
	}
	return res.Body, 0, nil
}
