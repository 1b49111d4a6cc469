package statement

import (
	"regexp"
	"strings"
)

// blobMinLength is the cell size past which a one-row, one-cell table is
// assumed to be a failed column detection: the extractor returned the whole
// transaction section as unstructured text.
const blobMinLength = 100

// pseudoColumnSplit cuts a fragment into pseudo-columns on a tab or a run of
// two or more whitespace characters, the positional surrogate for the table
// columns the extractor failed to find.
var pseudoColumnSplit = regexp.MustCompile(`\t|\s{2,}`)

// IsBlobTable reports the blob trigger condition: exactly one row holding
// exactly one oversized cell.
func IsBlobTable(table Table) bool {
	return len(table) == 1 && len(table[0]) == 1 && len(table[0][0]) > blobMinLength
}

// SegmentBlob splits an unstructured transaction blob into one pseudo-column
// fragment per transaction. Every date-token occurrence anchors the start of
// a fragment, which runs to the next anchor or the end of the text. Fragments
// with fewer than 3 pseudo-columns, or whose first pseudo-column is not a
// date token, are discarded as noise.
func SegmentBlob(blob string) [][]string {
	anchors := dateAnchorPattern.FindAllStringIndex(blob, -1)
	if len(anchors) == 0 {
		return nil
	}

	var fragments [][]string
	for i, loc := range anchors {
		end := len(blob)
		if i+1 < len(anchors) {
			end = anchors[i+1][0]
		}
		if cells, ok := splitFragment(blob[loc[0]:end]); ok {
			fragments = append(fragments, cells)
		}
	}
	return fragments
}

// SegmentBlobLines is the stricter variant for blobs where the extractor
// preserved line breaks but merged multiple transactions per visual line: it
// splits on newlines first, then anchor-segments each line independently.
func SegmentBlobLines(blob string) [][]string {
	var fragments [][]string
	for _, line := range strings.Split(blob, "\n") {
		fragments = append(fragments, SegmentBlob(line)...)
	}
	return fragments
}

func splitFragment(fragment string) ([]string, bool) {
	cells := pseudoColumnSplit.Split(strings.TrimSpace(fragment), -1)
	// Splitting can leave empty cells around leading/trailing separators.
	cleaned := cells[:0]
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			cleaned = append(cleaned, strings.TrimSpace(c))
		}
	}
	if len(cleaned) < 3 || !IsDateToken(cleaned[0]) {
		return nil, false
	}
	return cleaned, true
}
