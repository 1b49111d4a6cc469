package statement

import (
	"regexp"
	"strings"
)

// periodScanPages bounds the period scan: the reporting month is printed in
// the header matter, never deep inside the transaction section.
const periodScanPages = 2

var (
	// A date range: two date tokens joined by a hyphen or the word "to".
	periodRangePattern = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4}|\d{1,2} [A-Za-z]{3} \d{2})\s*(?:-|–|[Tt][Oo])\s*(?:\d{1,2}/\d{1,2}/\d{4}|\d{1,2} [A-Za-z]{3} \d{2})`)
	// An "As on" stamp followed by a single date token.
	periodAsOnPattern = regexp.MustCompile(`As on:?\s*(\d{1,2}/\d{1,2}/\d{4}|\d{1,2} [A-Za-z]{3} \d{2})`)
	// A literal month name with a four-digit year.
	periodLiteralPattern = regexp.MustCompile(`(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{4})`)
)

// DetectPeriod scans the free text of the first two pages for the statement's
// reporting month. Three patterns are tried in fixed order, each against every
// scanned page, and the first hit wins: a date range (the range start names
// the month), an "As on" stamp, then a literal month-year. The result is
// rendered as full month name plus year, e.g. "July 2025". An empty string
// means no pattern matched anywhere; callers substitute their own label,
// absence is never an error.
func DetectPeriod(doc Document) string {
	pages := doc.Pages()
	if len(pages) > periodScanPages {
		pages = pages[:periodScanPages]
	}

	texts := make([]string, 0, len(pages))
	for _, p := range pages {
		texts = append(texts, p.Text())
	}
	return detectPeriodText(texts)
}

func detectPeriodText(pages []string) string {
	for _, text := range pages {
		if m := periodRangePattern.FindStringSubmatch(text); m != nil {
			if label, ok := monthLabel(m[1]); ok {
				return label
			}
		}
	}
	for _, text := range pages {
		if m := periodAsOnPattern.FindStringSubmatch(text); m != nil {
			if label, ok := monthLabel(m[1]); ok {
				return label
			}
		}
	}
	for _, text := range pages {
		if m := periodLiteralPattern.FindStringSubmatch(text); m != nil {
			return m[1] + " " + m[2]
		}
	}
	return ""
}

// monthLabel renders a date token as its full month name and year.
func monthLabel(token string) (string, bool) {
	t, ok := parseDateToken(strings.TrimSpace(token))
	if !ok {
		return "", false
	}
	return t.Format("January 2006"), true
}
