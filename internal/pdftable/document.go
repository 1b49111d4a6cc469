// Package pdftable opens PDF statements and reconstructs per-page plain text
// and positional tables for the extraction pipeline.
package pdftable

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/gargnikhil/statement-extractor/internal/domain/statement"
)

// Document is an opened PDF statement. Pages are materialized eagerly at
// Open time so reads never fail afterwards; Close releases the file handle.
type Document struct {
	file  *os.File
	pages []statement.Page
}

// Open reads the PDF at path and builds its pages. An unreadable or
// corrupted file is the one fatal condition of the pipeline.
func Open(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", filepath.Base(path), err)
	}

	doc := &Document{file: f}
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		plain, _ := p.GetPlainText(nil)
		doc.pages = append(doc.pages, buildPage(plain, p.Content().Text))
	}
	return doc, nil
}

func (d *Document) Close() error { return d.file.Close() }

// Pages returns the document's pages in order.
func (d *Document) Pages() []statement.Page { return d.pages }

type page struct {
	text   string
	tables []statement.Table
}

func (p page) Text() string              { return p.text }
func (p page) Tables() []statement.Table { return p.tables }

// buildPage reconstructs one page. When column detection finds no structure
// at all, the page's plain text is handed over as a single oversized cell so
// the blob heuristics can take a pass at it.
func buildPage(plain string, chars []pdf.Text) statement.Page {
	table := buildTable(chars)
	if !hasColumns(table) {
		table = nil
		if s := strings.TrimSpace(plain); s != "" {
			table = statement.Table{{s}}
		}
	}

	var tables []statement.Table
	if len(table) > 0 {
		tables = append(tables, table)
	}
	return page{text: plain, tables: tables}
}
