package statement

import "strings"

// ColumnLayout is one entry of the declarative layout registry: a positional
// mapping from table cells to record fields for a statement shape. Layouts
// are tried in priority order and the first whose MinCells requirement the
// row satisfies wins, which replaces per-bank positional special cases with
// an explicit, extensible table.
type ColumnLayout struct {
	Name     string
	MinCells int
	// DateCol must hold a date token for the row to qualify under any layout.
	DateCol   int
	VendorCol int
	DescCol   int
	// Amount cells are scanned left to right from AmountStart to the end of
	// the row.
	AmountStart int
	// BalanceCol passes through verbatim when its cell carries no explicit
	// direction marker; a marked cell there is still an amount. -1 when the
	// layout carries no balance column.
	BalanceCol int
}

// defaultLayouts covers the two tabular shapes seen across statement formats:
// a six-column table with a trailing balance, and a narrower table without
// one. blobLayout maps the pseudo-columns produced by blob segmentation,
// which never have a reliable balance column.
var (
	defaultLayouts = []ColumnLayout{
		{Name: "tabular-balance", MinCells: 6, DateCol: 0, VendorCol: 1, DescCol: 2, AmountStart: 3, BalanceCol: 5},
		{Name: "tabular", MinCells: 2, DateCol: 0, VendorCol: 1, DescCol: 2, AmountStart: 3, BalanceCol: -1},
	}

	blobLayout = ColumnLayout{Name: "blob-fragment", MinCells: 3, DateCol: 0, VendorCol: 1, DescCol: 2, AmountStart: 3, BalanceCol: -1}
)

// Classifier decides whether a raw row of cells represents a transaction and,
// if so, maps it into the canonical field set via the layout registry.
type Classifier struct {
	layouts []ColumnLayout
}

// NewClassifier returns a classifier using the default layout registry.
func NewClassifier() *Classifier {
	return &Classifier{layouts: defaultLayouts}
}

// Classify qualifies and maps one table row. Qualification is a pure function
// of the first cell: it must be a date token. Disqualified rows return false
// and are skipped, never treated as errors.
func (c *Classifier) Classify(cells []string) (TransactionRecord, bool) {
	if len(cells) < 2 || !IsDateToken(cellAt(cells, 0)) {
		return TransactionRecord{}, false
	}
	for _, layout := range c.layouts {
		if len(cells) >= layout.MinCells {
			return mapCells(layout, cells), true
		}
	}
	return TransactionRecord{}, false
}

// ClassifyFragment maps a blob pseudo-column fragment. The fragment has
// already been qualified by the segmenter; balance is always left unset.
func (c *Classifier) ClassifyFragment(cells []string) TransactionRecord {
	return mapCells(blobLayout, cells)
}

func mapCells(layout ColumnLayout, cells []string) TransactionRecord {
	rec := TransactionRecord{
		Date:        NormalizeDate(cellAt(cells, layout.DateCol)),
		Vendor:      cellAt(cells, layout.VendorCol),
		Description: cellAt(cells, layout.DescCol),
	}

	// Last-non-empty-wins per side: a later debit cell overwrites an earlier
	// debit value, which tolerates repeated or shifted amount columns. The
	// balance column only absorbs its cell when the cell is unmarked.
	for i := layout.AmountStart; i < len(cells); i++ {
		a, marked := parseAmountMarked(cells[i])
		if i == layout.BalanceCol && !marked {
			rec.Balance = strings.TrimSpace(cells[i])
			continue
		}
		if a.Debit != nil {
			rec.DebitAmount = a.Debit
		}
		if a.Credit != nil {
			rec.CreditAmount = a.Credit
		}
	}

	// Columns past the amount range resolved nothing; retry the first amount
	// cell on its own with looser cleaning before giving up on the row's
	// amounts entirely.
	if rec.DebitAmount == nil && rec.CreditAmount == nil && len(cells) > layout.AmountStart {
		a := parseAmountLoose(cells[layout.AmountStart])
		rec.DebitAmount = a.Debit
		rec.CreditAmount = a.Credit
	}

	return rec
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}
