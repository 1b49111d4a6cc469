package statement

import (
	"regexp"
	"strings"
	"time"
)

// The two date shapes transaction rows are allowed to open with. The numeric
// form is tried first; the abbreviated-month form second.
const (
	layoutNumeric = "02/01/2006" // 15/07/2025
	layoutAbbrev  = "02 Jan 06"  // 05 Jan 24
)

var (
	dateNumericToken = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	dateAbbrevToken  = regexp.MustCompile(`^\d{1,2} [A-Za-z]{3} \d{2}$`)

	// dateAnchorPattern finds date tokens embedded anywhere in free text, for
	// blob segmentation and period detection. No word boundaries: in collapsed
	// blobs a date can butt directly against the previous transaction's amount.
	dateAnchorPattern = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}|\d{1,2} [A-Za-z]{3} \d{2}`)
)

// IsDateToken reports whether the trimmed token matches one of the accepted
// date shapes. This is the row-qualification predicate: rows whose first cell
// fails it are headers, footers, or noise.
func IsDateToken(token string) bool {
	s := strings.TrimSpace(token)
	return dateNumericToken.MatchString(s) || dateAbbrevToken.MatchString(s)
}

// NormalizeDate parses a date token against the accepted formats in order and
// renders the first success as YYYY-MM-DD. Tokens that match no format are
// returned unchanged; the row is never failed over a date, so downstream
// consumers must tolerate non-ISO strings.
func NormalizeDate(token string) string {
	s := strings.TrimSpace(token)
	for _, layout := range []string{layoutNumeric, layoutAbbrev} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return token
}

// parseDateToken parses a token against the accepted formats, reporting
// whether any matched.
func parseDateToken(token string) (time.Time, bool) {
	s := strings.TrimSpace(token)
	for _, layout := range []string{layoutNumeric, layoutAbbrev} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
