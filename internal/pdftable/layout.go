package pdftable

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/gargnikhil/statement-extractor/internal/domain/statement"
)

// Layout tuning, in PDF points.
const (
	// rowTolerance is the Y spread within which characters belong to the
	// same visual row.
	rowTolerance = 3.0
	// cellGapMinimum is the horizontal gap past which a new cell starts.
	cellGapMinimum = 12.0
	// wordSpaceRatio of the font size is the gap that separates words
	// inside a cell.
	wordSpaceRatio = 0.3
)

// buildTable reconstructs a positional table from a page's character boxes.
// Characters group into visual rows by Y proximity, rows sort top to bottom,
// and within a row a horizontal gap wider than cellGapMinimum starts a new
// cell. Pages without positional spread come back as single-cell rows, which
// the caller collapses into a blob.
func buildTable(chars []pdf.Text) statement.Table {
	var table statement.Table
	for _, row := range groupIntoRows(chars) {
		if cells := splitCells(row); len(cells) > 0 {
			table = append(table, cells)
		}
	}
	return table
}

// groupIntoRows buckets characters by Y coordinate within rowTolerance. PDF
// Y grows upward, so buckets sort descending to read top to bottom.
func groupIntoRows(chars []pdf.Text) [][]pdf.Text {
	type bucket struct {
		yMin, yMax float64
		chars      []pdf.Text
	}
	var buckets []bucket

	for _, c := range chars {
		if strings.TrimSpace(c.S) == "" {
			continue
		}
		placed := false
		for i := range buckets {
			if c.Y >= buckets[i].yMin-rowTolerance && c.Y <= buckets[i].yMax+rowTolerance {
				buckets[i].chars = append(buckets[i].chars, c)
				if c.Y < buckets[i].yMin {
					buckets[i].yMin = c.Y
				}
				if c.Y > buckets[i].yMax {
					buckets[i].yMax = c.Y
				}
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, bucket{yMin: c.Y, yMax: c.Y, chars: []pdf.Text{c}})
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].yMax > buckets[j].yMax
	})

	rows := make([][]pdf.Text, len(buckets))
	for i, b := range buckets {
		rows[i] = b.chars
	}
	return rows
}

// splitCells orders one row's characters left to right and joins them into
// cells, inserting a space for word-sized gaps and cutting a cell boundary
// for column-sized ones.
func splitCells(row []pdf.Text) []string {
	sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })

	var cells []string
	var cell strings.Builder
	flush := func() {
		if s := strings.TrimSpace(cell.String()); s != "" {
			cells = append(cells, s)
		}
		cell.Reset()
	}

	for i, c := range row {
		if i > 0 {
			prev := row[i-1]
			gap := c.X - (prev.X + prev.W)
			switch {
			case gap > cellGapMinimum:
				flush()
			case gap > wordGap(c):
				cell.WriteByte(' ')
			}
		}
		cell.WriteString(c.S)
	}
	flush()
	return cells
}

func wordGap(c pdf.Text) float64 {
	if c.FontSize > 0 {
		return c.FontSize * wordSpaceRatio
	}
	return 1.5
}

// hasColumns reports whether column reconstruction found any multi-cell row.
func hasColumns(table statement.Table) bool {
	for _, row := range table {
		if len(row) >= 2 {
			return true
		}
	}
	return false
}
