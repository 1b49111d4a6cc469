// Package statement implements the transaction-extraction engine for bank
// statement documents. It locates a statement's reporting period, discovers
// transaction rows inside PDF-derived table structures, and normalizes each
// row's date, description, and debit/credit amount into a canonical record,
// tolerating the wildly different table shapes produced by different banks.
package statement

import (
	"github.com/shopspring/decimal"
)

// TransactionRecord is the canonical output unit of the extraction engine.
// Date is ISO YYYY-MM-DD when the source token was parseable, otherwise the
// original token unchanged. DebitAmount and CreditAmount are non-negative;
// nil means absent. Under well-formed input exactly one side is set, but this
// is by construction, not enforced: malformed rows can leave both nil.
// Balance is passthrough text, never computed.
type TransactionRecord struct {
	Date         string           `json:"date"`
	Vendor       string           `json:"vendor"`
	Description  string           `json:"description"`
	DebitAmount  *decimal.Decimal `json:"debit_amount,omitempty"`
	CreditAmount *decimal.Decimal `json:"credit_amount,omitempty"`
	Balance      string           `json:"balance,omitempty"`
}

// SheetHeader is the fixed column set used when records are serialized for
// spreadsheet delivery or export.
var SheetHeader = []string{"Date", "Vendor", "Description", "Debit Amount", "Credit Amount", "Balance"}

// Columns renders the record as the fixed 6-column row shape, with empty
// strings standing in for absent fields.
func (r TransactionRecord) Columns() []string {
	debit := ""
	if r.DebitAmount != nil {
		debit = r.DebitAmount.String()
	}
	credit := ""
	if r.CreditAmount != nil {
		credit = r.CreditAmount.String()
	}
	return []string{r.Date, r.Vendor, r.Description, debit, credit, r.Balance}
}

// SheetRows serializes records into the fixed 6-column table handed to the
// downstream sheet-append collaborator. The header row is not included.
func SheetRows(records []TransactionRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Columns())
	}
	return rows
}

// Table is an ordered set of rows of text cells as produced by the PDF layout
// collaborator. Cells that the extractor could not populate are empty strings.
type Table [][]string

// Page is one page of a source document.
type Page interface {
	// Text returns the page's free text, used for statement-period detection.
	// May be empty when the page has no extractable text.
	Text() string
	// Tables returns the tables detected on the page, in reading order.
	Tables() []Table
}

// Document is the page-level view of a statement supplied by the PDF table
// extraction collaborator.
type Document interface {
	Pages() []Page
}
