package pdftext

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// PdftotextBackend shells out to poppler's pdftotext.
type PdftotextBackend struct {
	Bin    string
	Runner Runner
}

func (PdftotextBackend) Name() string { return BackendPdftotext }

func (b PdftotextBackend) Extract(ctx context.Context, path string, maxPages int) (string, int, error) {
	// pdftotext -f 1 -l <n> -layout -enc UTF-8 -eol unix <path> -
	args := []string{"-f", "1"}
	if maxPages > 0 {
		args = append(args, "-l", strconv.Itoa(maxPages))
	}
	args = append(args, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")

	out, errb, err := b.Runner.Run(ctx, b.Bin, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(errb)); msg != "" {
			return "", 0, fmt.Errorf("pdftotext: %w: %s", err, truncate(msg, 512))
		}
		return "", 0, fmt.Errorf("pdftotext: %w", err)
	}

	// a form-feed ends every page
	pages := strings.Split(strings.TrimSuffix(string(out), "\f"), "\f")
	return joinPages(pages), len(pages), nil
}
