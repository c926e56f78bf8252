package sheets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/youvit/gramedia-display-backend/pkg/logger"
)

// Workbook implements Client over a local xlsx workbook. A new workbook is
// created on first start. The mutex guards file integrity only; the
// read-then-append sequences in the repositories still race across
// concurrent submissions, matching the documented catalog limitation.
type Workbook struct {
	mu   sync.Mutex
	path string
	file *excelize.File
}

// OpenWorkbook opens the workbook at path, creating it (and any parent
// directories) when it does not exist yet.
func OpenWorkbook(path string) (*Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create workbook directory: %w", err)
			}
		}
		file := excelize.NewFile()
		if err := file.SaveAs(path); err != nil {
			return nil, fmt.Errorf("create workbook %s: %w", path, err)
		}
		logger.Info("Created new workbook", map[string]interface{}{
			"path": path,
		})
		return &Workbook{path: path, file: file}, nil
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{path: path, file: file}, nil
}

func (w *Workbook) ReadAll(ctx context.Context, sheet string) ([][]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func (w *Workbook) AppendRow(ctx context.Context, sheet string, values []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return fmt.Errorf("locate append row: %w", err)
	}

	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := w.file.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("append to sheet %q: %w", sheet, err)
	}
	if err := w.file.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (w *Workbook) EnsureSheet(ctx context.Context, sheet string, headers []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	index, err := w.file.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("look up sheet %q: %w", sheet, err)
	}
	if index == -1 {
		if _, err := w.file.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet, err)
		}
	}

	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) > 0 {
		return nil
	}

	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := w.file.SetSheetRow(sheet, "A1", &row); err != nil {
		return fmt.Errorf("write headers to sheet %q: %w", sheet, err)
	}
	if err := w.file.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	logger.Info("Sheet headers configured", map[string]interface{}{
		"sheet": sheet,
	})
	return nil
}

// Ping reports whether the workbook is still usable.
func (w *Workbook) Ping(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return fmt.Errorf("workbook %s is closed", w.path)
	}
	if _, err := w.file.GetSheetIndex(w.file.GetSheetName(0)); err != nil {
		return fmt.Errorf("workbook %s unusable: %w", w.path, err)
	}
	return nil
}

func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
