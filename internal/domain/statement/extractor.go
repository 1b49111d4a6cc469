package statement

import (
	"log/slog"
)

// ExtractResult is the output of one extraction pass: the canonical records
// in document order plus the best-effort period label ("" when undetected).
type ExtractResult struct {
	Records []TransactionRecord
	Period  string
	// RowsSkipped counts rows and fragments that failed qualification.
	RowsSkipped int
}

// Extractor orchestrates the extraction heuristics over a document: for every
// table of every page it dispatches to the blob segmenter or the row
// classifier and accumulates records in encounter order. Failure isolation is
// per row; no table or page is skipped because an earlier one misbehaved, and
// nothing in here raises for data-shape reasons.
type Extractor struct {
	classifier      *Classifier
	strictBlobLines bool
	logger          *slog.Logger
}

// NewExtractor creates an extractor with the default layout registry.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		classifier: NewClassifier(),
		logger:     logger,
	}
}

// WithStrictBlobLines switches blob segmentation to the newline-splitting
// variant, for extractors that preserve line breaks but merge transactions
// within a line.
func (e *Extractor) WithStrictBlobLines() *Extractor {
	e.strictBlobLines = true
	return e
}

// Extract folds over the document's pages, tables, and rows, producing the
// ordered record sequence and the detected period. The same document bytes
// always yield an identical sequence: the fold carries no state beyond the
// accumulator.
func (e *Extractor) Extract(doc Document) *ExtractResult {
	result := &ExtractResult{Period: DetectPeriod(doc)}

	for pageIdx, page := range doc.Pages() {
		for tableIdx, table := range page.Tables() {
			before := len(result.Records)
			if IsBlobTable(table) {
				e.extractBlob(table[0][0], result)
			} else {
				e.extractRows(table, result)
			}
			e.logger.Debug("table processed",
				slog.Int("page", pageIdx+1),
				slog.Int("table", tableIdx+1),
				slog.Int("records", len(result.Records)-before),
			)
		}
	}

	return result
}

func (e *Extractor) extractRows(table Table, result *ExtractResult) {
	for _, row := range table {
		rec, ok := e.classifier.Classify(row)
		if !ok {
			result.RowsSkipped++
			continue
		}
		result.Records = append(result.Records, rec)
	}
}

func (e *Extractor) extractBlob(blob string, result *ExtractResult) {
	var fragments [][]string
	if e.strictBlobLines {
		fragments = SegmentBlobLines(blob)
	} else {
		fragments = SegmentBlob(blob)
	}
	for _, cells := range fragments {
		result.Records = append(result.Records, e.classifier.ClassifyFragment(cells))
	}
}
