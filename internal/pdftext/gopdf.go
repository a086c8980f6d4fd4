package pdftext

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// GoPDFBackend reads the content streams directly with github.com/ledongthuc/pdf.
type GoPDFBackend struct{}

func (GoPDFBackend) Name() string { return BackendGoPDF }

func (GoPDFBackend) Extract(ctx context.Context, path string, maxPages int) (text string, pages int, err error) {
	// the parser panics on some malformed streams
	defer func() {
		if r := recover(); r != nil {
			text, pages, err = "", 0, fmt.Errorf("gopdf: malformed pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("gopdf open: %w", err)
	}
	defer f.Close()

	n := r.NumPage()
	if maxPages > 0 && n > maxPages {
		n = maxPages
	}
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		s, err := p.GetPlainText(nil)
		if err != nil {
			return "", 0, fmt.Errorf("gopdf page %d: %w", i, err)
		}
		out = append(out, s)
	}
	return joinPages(out), len(out), nil
}
