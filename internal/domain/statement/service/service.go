// Package service orchestrates statement processing: open the document,
// extract transactions, aggregate, and deliver to the spreadsheet webhook.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gargnikhil/statement-extractor/internal/domain/statement"
	"github.com/gargnikhil/statement-extractor/internal/pdftable"
	"github.com/gargnikhil/statement-extractor/internal/sheets"
	"github.com/gargnikhil/statement-extractor/pkg/observability"
)

// ErrNoTransactions signals that extraction ran cleanly but found nothing.
// Callers present it as a client problem, not a server failure.
var ErrNoTransactions = errors.New("no transactions found in statement")

// ErrUnreadable signals that the uploaded document could not be opened. This
// is the one fatal condition of the extraction pipeline.
var ErrUnreadable = errors.New("unreadable statement")

// UnknownPeriod labels statements whose reporting month could not be detected.
const UnknownPeriod = "Unknown"

// Document is an opened statement the extractor can fold over.
type Document interface {
	statement.Document
	Close() error
}

// OpenDocumentFunc opens a statement document by path. Injected so tests can
// substitute fixtures for real PDFs.
type OpenDocumentFunc func(path string) (Document, error)

// OpenPDF is the production opener.
func OpenPDF(path string) (Document, error) {
	return pdftable.Open(path)
}

// ProcessResult is the full outcome of one statement upload.
type ProcessResult struct {
	Period        string                                `json:"period"`
	Transactions  []statement.TransactionRecord         `json:"transactions"`
	ByVendor      map[string]*statement.VendorBreakdown `json:"by_vendor"`
	MonthlyTotals map[string]statement.MonthTotals      `json:"monthly_totals"`
	RowsSkipped   int                                   `json:"rows_skipped"`
	Sheet         *sheets.AppendResult                  `json:"sheet,omitempty"`
}

// Service wires the extraction core to its collaborators.
type Service struct {
	openDocument OpenDocumentFunc
	sheets       *sheets.Client
	logger       *slog.Logger
}

// NewService builds the statement service. A nil opener defaults to the PDF
// opener; a nil logger defaults to slog.Default.
func NewService(open OpenDocumentFunc, sheetsClient *sheets.Client, logger *slog.Logger) *Service {
	if open == nil {
		open = OpenPDF
	}
	if logger == nil {
		logger = slog.Default()
	}
	if sheetsClient == nil {
		sheetsClient = sheets.NewClient("", logger)
	}
	return &Service{openDocument: open, sheets: sheetsClient, logger: logger}
}

// ProcessFile extracts, aggregates, and delivers one uploaded statement.
// Files ending in .csv take the CSV fallback path; everything else is opened
// as a PDF. Only an unopenable document or an empty extraction fail the call.
func (s *Service) ProcessFile(ctx context.Context, path string) (*ProcessResult, error) {
	start := time.Now()

	var (
		result *ProcessResult
		err    error
		source = "pdf"
	)
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		source = "csv"
		result, err = s.processCSV(path)
	} else {
		result, err = s.processPDF(path)
	}
	if err != nil {
		observability.DocumentsProcessed.WithLabelValues(source, "error").Inc()
		return nil, err
	}

	observability.DocumentsProcessed.WithLabelValues(source, "ok").Inc()
	observability.RowsExtracted.Add(float64(len(result.Transactions)))
	observability.RowsSkipped.Add(float64(result.RowsSkipped))
	observability.ExtractionDuration.Observe(time.Since(start).Seconds())

	result.ByVendor = statement.SegregateByVendor(result.Transactions)
	result.MonthlyTotals = statement.MonthlyTotals(result.Transactions)

	s.deliver(ctx, result)

	s.logger.Info("statement processed",
		slog.String("source", source),
		slog.String("period", result.Period),
		slog.Int("transactions", len(result.Transactions)),
		slog.Int("rows_skipped", result.RowsSkipped),
	)
	return result, nil
}

func (s *Service) processPDF(path string) (*ProcessResult, error) {
	doc, err := s.openDocument(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer doc.Close()

	extracted := statement.NewExtractor(s.logger).Extract(doc)
	if len(extracted.Records) == 0 {
		return nil, ErrNoTransactions
	}

	period := extracted.Period
	if period == "" {
		period = UnknownPeriod
	}
	return &ProcessResult{
		Period:       period,
		Transactions: extracted.Records,
		RowsSkipped:  extracted.RowsSkipped,
	}, nil
}

func (s *Service) processCSV(path string) (*ProcessResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	records, err := statement.ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if len(records) == 0 {
		return nil, ErrNoTransactions
	}

	return &ProcessResult{
		Period:       periodFromRecords(records),
		Transactions: records,
	}, nil
}

// periodFromRecords derives a period label from the first record's ISO date.
// CSV exports carry no header matter to scan.
func periodFromRecords(records []statement.TransactionRecord) string {
	for _, rec := range records {
		if t, err := time.Parse("2006-01-02", rec.Date); err == nil {
			return t.Format("January 2006")
		}
	}
	return UnknownPeriod
}

// deliver appends the table to the spreadsheet webhook. Delivery failure is
// logged, never fatal: the extraction result is already in hand.
func (s *Service) deliver(ctx context.Context, result *ProcessResult) {
	if !s.sheets.Enabled() {
		return
	}
	appended, err := s.sheets.AppendRows(ctx, result.Period,
		statement.SheetHeader, statement.SheetRows(result.Transactions))
	if err != nil {
		s.logger.Error("sheet delivery failed", slog.Any("error", err))
		return
	}
	result.Sheet = appended
}
