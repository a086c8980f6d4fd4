package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/entity"
)

// Service renders extraction results as an XLSX workbook.
type Service struct {
	sheet         string
	failuresSheet string
	logger        *slog.Logger
}

func NewService(sheet, failuresSheet string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if sheet == "" {
		sheet = constants.ResultSheet
	}
	if failuresSheet == "" {
		failuresSheet = constants.FailureSheet
	}
	return &Service{sheet: sheet, failuresSheet: failuresSheet, logger: logger}
}

// WorkbookXLSX returns the workbook bytes. The failures sheet is only added when
// there are failures.
func (s *Service) WorkbookXLSX(ctx context.Context, records []entity.Record, failures []entity.Failure) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// rename the default sheet rather than leaving an empty "Sheet1"
	if err := f.SetSheetName(f.GetSheetName(0), s.sheet); err != nil {
		return nil, exportError("rename sheet", err)
	}
	if err := writeRows(f, s.sheet, constants.Columns, len(records), func(i int) []any {
		return records[i].Values()
	}); err != nil {
		return nil, exportError("write results", err)
	}
	_ = f.SetColWidth(s.sheet, "A", "A", 6)   // index
	_ = f.SetColWidth(s.sheet, "B", "E", 12)  // name..date
	_ = f.SetColWidth(s.sheet, "F", "F", 16)  // phone
	_ = f.SetColWidth(s.sheet, "G", "H", 18)  // position, location
	_ = f.SetColWidth(s.sheet, "I", "I", 14)  // salary
	_ = f.SetColWidth(s.sheet, "J", "J", 28)  // email
	_ = f.SetColWidth(s.sheet, "K", "K", 48)  // filename

	if len(failures) > 0 {
		if s.failuresSheet == s.sheet {
			return nil, exportError("add failures sheet", fmt.Errorf("sheet %q already holds results", s.sheet))
		}
		if _, err := f.NewSheet(s.failuresSheet); err != nil {
			return nil, exportError("add failures sheet", err)
		}
		if err := writeRows(f, s.failuresSheet, constants.FailureColumns, len(failures), func(i int) []any {
			return []any{i + 1, failures[i].Filename, failures[i].Path, truncate(failures[i].Error, 300)}
		}); err != nil {
			return nil, exportError("write failures", err)
		}
		_ = f.SetColWidth(s.failuresSheet, "B", "B", 40)
		_ = f.SetColWidth(s.failuresSheet, "C", "C", 60)
		_ = f.SetColWidth(s.failuresSheet, "D", "D", 80)
	}
	f.SetActiveSheet(0)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, exportError("xlsx write", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(records),
		"failures", len(failures),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// WriteFile writes the workbook to path, creating parent directories. The file is
// replaced atomically so a watcher never sees a half-written workbook.
func (s *Service) WriteFile(ctx context.Context, path string, records []entity.Record, failures []entity.Failure) error {
	data, err := s.WorkbookXLSX(ctx, records, failures)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportError("create output dir", err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.xlsx")
	if err != nil {
		return exportError("create temp file", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := bytes.NewReader(data).WriteTo(tmp); err != nil {
		_ = tmp.Close()
		return exportError("write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return exportError("close temp file", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return exportError("replace output", err)
	}
	s.logger.Info("export.file.ok", "path", path, "bytes", len(data))
	return nil
}

func writeRows(f *excelize.File, sheet string, headers []string, n int, row func(i int) []any) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for i := 0; i < n; i++ {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		vals := row(i)
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return err
		}
	}
	return nil
}

func exportError(op string, err error) error {
	return common.NewAppError(common.CodeExport, op, fmt.Errorf("%w: %w", common.ErrExport, err))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
