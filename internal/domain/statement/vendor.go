package statement

import (
	"regexp"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/shopspring/decimal"
)

// VendorEntry is one transaction as seen in a vendor breakdown.
type VendorEntry struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"desc"`
}

// VendorBreakdown splits a vendor's transactions by direction.
type VendorBreakdown struct {
	Credit []VendorEntry `json:"credit"`
	Debit  []VendorEntry `json:"debit"`
}

// vendorRefSuffix strips trailing terminal/reference numbers so that
// "AMAZON 4411" and "AMAZON 9902" fold into one vendor key.
var vendorRefSuffix = regexp.MustCompile(`\s+\d{3,}$`)

// SegregateByVendor groups records by vendor and direction. A record with a
// positive debit lands on the debit side; everything else lands on the credit
// side with the credit amount (or zero when both sides are absent), matching
// the downstream aggregation contract. Near-duplicate vendor names differing
// only by reference suffixes or minor variation are merged onto one key.
func SegregateByVendor(records []TransactionRecord) map[string]*VendorBreakdown {
	byVendor := make(map[string]*VendorBreakdown)
	var keys []string

	for _, rec := range records {
		key := mergeVendorKey(keys, rec.Vendor)
		breakdown, ok := byVendor[key]
		if !ok {
			breakdown = &VendorBreakdown{Credit: []VendorEntry{}, Debit: []VendorEntry{}}
			byVendor[key] = breakdown
			keys = append(keys, key)
		}

		entry := VendorEntry{Date: rec.Date, Description: rec.Description}
		if rec.DebitAmount != nil && rec.DebitAmount.IsPositive() {
			entry.Amount = *rec.DebitAmount
			breakdown.Debit = append(breakdown.Debit, entry)
			continue
		}
		if rec.CreditAmount != nil {
			entry.Amount = *rec.CreditAmount
		}
		breakdown.Credit = append(breakdown.Credit, entry)
	}

	return byVendor
}

// mergeVendorKey cleans the vendor name and folds it onto an existing key
// when the two are near-identical under case- and accent-insensitive fuzzy
// matching. Comparable lengths guard against "A" swallowing "Acme Corp".
func mergeVendorKey(existing []string, vendor string) string {
	key := strings.TrimSpace(vendorRefSuffix.ReplaceAllString(vendor, ""))
	if key == "" {
		key = vendor
	}
	for _, candidate := range existing {
		if strings.EqualFold(candidate, key) {
			return candidate
		}
		short, long := key, candidate
		if len(short) > len(long) {
			short, long = long, short
		}
		if len(short) >= 4 && len(long)-len(short) <= 3 && fuzzy.MatchNormalizedFold(short, long) {
			return candidate
		}
	}
	return key
}

// MonthTotals accumulates a calendar month's debit and credit volume.
type MonthTotals struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// MonthlyTotals sums record amounts per calendar month, keyed YYYY-MM.
// Records whose date never normalized to ISO are pooled under "unknown".
func MonthlyTotals(records []TransactionRecord) map[string]MonthTotals {
	totals := make(map[string]MonthTotals)
	for _, rec := range records {
		key := "unknown"
		if len(rec.Date) == 10 && rec.Date[4] == '-' && rec.Date[7] == '-' {
			key = rec.Date[:7]
		}
		t := totals[key]
		if rec.DebitAmount != nil {
			t.Debit = t.Debit.Add(*rec.DebitAmount)
		}
		if rec.CreditAmount != nil {
			t.Credit = t.Credit.Add(*rec.CreditAmount)
		}
		totals[key] = t
	}
	return totals
}

// VendorNames returns the breakdown's vendor keys in stable sorted order,
// for deterministic rendering.
func VendorNames(byVendor map[string]*VendorBreakdown) []string {
	names := make([]string, 0, len(byVendor))
	for name := range byVendor {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
