package statement

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

// csvStatementRow is a raw CSV statement row unmarshaled by header name. The
// tag variants cover the column namings banks use in their CSV exports; the
// first non-empty variant wins per field.
type csvStatementRow struct {
	Date    string `csv:"date"`
	TxnDate string `csv:"transaction date"`

	Vendor   string `csv:"vendor"`
	Payee    string `csv:"payee"`
	Merchant string `csv:"merchant"`

	Description string `csv:"description"`
	Details     string `csv:"details"`
	Narration   string `csv:"narration"`

	Debit       string `csv:"debit"`
	DebitAmount string `csv:"debit amount"`

	Credit       string `csv:"credit"`
	CreditAmount string `csv:"credit amount"`

	Amount string `csv:"amount"`

	Balance string `csv:"balance"`
}

// ParseCSV is the fallback input path for statements uploaded as CSV exports
// rather than PDFs. Rows qualify under the same predicate as table rows (the
// date cell must hold a date token) and flow through the same date and amount
// normalizers, so both input shapes produce identical canonical records.
func ParseCSV(r io.Reader) ([]TransactionRecord, error) {
	var rows []csvStatementRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse CSV statement: %w", err)
	}

	records := make([]TransactionRecord, 0, len(rows))
	for _, row := range rows {
		dateToken := coalesce(row.Date, row.TxnDate)
		if !IsDateToken(dateToken) {
			continue
		}

		rec := TransactionRecord{
			Date:        NormalizeDate(dateToken),
			Vendor:      coalesce(row.Vendor, row.Payee, row.Merchant),
			Description: coalesce(row.Description, row.Details, row.Narration),
			Balance:     strings.TrimSpace(row.Balance),
		}

		if a := ParseAmount(coalesce(row.Debit, row.DebitAmount)); a.Debit != nil {
			rec.DebitAmount = a.Debit
		}
		if a := ParseAmount(coalesce(row.Credit, row.CreditAmount)); a.Credit != nil {
			rec.CreditAmount = a.Credit
		} else if a.Debit != nil {
			// An unmarked value in the credit column is still a credit.
			rec.CreditAmount = a.Debit
		}
		if rec.DebitAmount == nil && rec.CreditAmount == nil {
			if a := ParseAmount(row.Amount); !a.Empty() {
				rec.DebitAmount = a.Debit
				rec.CreditAmount = a.Credit
			}
		}

		records = append(records, rec)
	}

	return records, nil
}

// coalesce returns the first non-empty trimmed value.
func coalesce(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
