package statement

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is the outcome of normalizing a single amount cell. At most one side
// is set; both nil means the cell was empty, whitespace, or unparsable. It is
// an explicit parse-result value: callers branch on the fields instead of
// recovering from errors.
type Amount struct {
	Debit  *decimal.Decimal
	Credit *decimal.Decimal
}

// Empty reports whether no amount was resolved from the cell.
func (a Amount) Empty() bool {
	return a.Debit == nil && a.Credit == nil
}

// amountCellPattern matches a numeric prefix immediately followed by an
// optional direction marker: a single letter D/C or the word suffix Dr/Cr,
// in either case.
var amountCellPattern = regexp.MustCompile(`(?i)^(-?[0-9]+(?:\.[0-9]+)?)\s*(cr|dr|c|d)?$`)

// ParseAmount normalizes one textual amount cell into a (debit, credit) pair.
// Thousands separators are stripped before matching. A credit marker (C, c,
// Cr) makes the value a credit; a debit marker (D, d, Dr) or no marker at all
// makes it a debit. Unmarked amounts defaulting to debit is a deliberate
// policy, and the sign of the cell is not read as direction: the absolute
// value is always taken. Non-numeric prefixes yield an empty Amount.
func ParseAmount(cell string) Amount {
	a, _ := parseAmountMarked(cell)
	return a
}

// parseAmountMarked additionally reports whether the cell carried an explicit
// direction marker. The row classifier uses this to tell a marked amount in
// the trailing column apart from an unmarked balance figure.
func parseAmountMarked(cell string) (Amount, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return Amount{}, false
	}
	s = strings.ReplaceAll(s, ",", "")

	m := amountCellPattern.FindStringSubmatch(s)
	if m == nil {
		return Amount{}, false
	}

	value, err := decimal.NewFromString(m[1])
	if err != nil {
		return Amount{}, false
	}
	value = value.Abs()

	switch strings.ToLower(m[2]) {
	case "c", "cr":
		return Amount{Credit: &value}, true
	case "d", "dr":
		return Amount{Debit: &value}, true
	default:
		return Amount{Debit: &value}, false
	}
}

// parseAmountLoose is the single-cell retry used when no amount column
// resolved: it discards currency symbols and any other non-numeric noise
// around the cell before reparsing, keeping a trailing direction marker if
// one survives.
func parseAmountLoose(cell string) Amount {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-':
			return r
		case r == 'C' || r == 'c' || r == 'D' || r == 'd' || r == 'r' || r == 'R':
			return r
		default:
			return -1
		}
	}, cell)
	return ParseAmount(cleaned)
}
