// Package export renders extracted transaction tables as XLSX workbooks for
// direct download.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/gargnikhil/statement-extractor/internal/domain/statement"
)

// Workbook accumulates one sheet per statement period.
type Workbook struct {
	file   *excelize.File
	sheets int
}

// NewWorkbook creates an empty workbook. The default sheet is replaced by the
// first period sheet added.
func NewWorkbook() *Workbook {
	return &Workbook{file: excelize.NewFile()}
}

// AddSheet writes the fixed 6-column table for one period. Sheet names are
// period labels, e.g. "July 2025".
func (w *Workbook) AddSheet(period string, records []statement.TransactionRecord) error {
	if w.sheets == 0 {
		// Rename the default sheet instead of leaving an empty "Sheet1" behind.
		if err := w.file.SetSheetName(w.file.GetSheetName(0), period); err != nil {
			return fmt.Errorf("failed to name sheet %q: %w", period, err)
		}
	} else if _, err := w.file.NewSheet(period); err != nil {
		return fmt.Errorf("failed to add sheet %q: %w", period, err)
	}
	w.sheets++

	header := make([]interface{}, len(statement.SheetHeader))
	for i, h := range statement.SheetHeader {
		header[i] = h
	}
	if err := w.file.SetSheetRow(period, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		cols := rec.Columns()
		row := make([]interface{}, len(cols))
		for j, c := range cols {
			row[j] = c
		}
		if err := w.file.SetSheetRow(period, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return nil
}

// WriteTo streams the workbook. A workbook with no sheets still produces a
// valid empty file.
func (w *Workbook) WriteTo(out io.Writer) (int64, error) {
	n, err := w.file.WriteTo(out)
	if err != nil {
		return n, fmt.Errorf("failed to write workbook: %w", err)
	}
	return n, nil
}

// Close releases the underlying file resources.
func (w *Workbook) Close() error { return w.file.Close() }
