package statement

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePage struct {
	text   string
	tables []Table
}

func (p fakePage) Text() string    { return p.text }
func (p fakePage) Tables() []Table { return p.tables }

type fakeDocument []fakePage

func (d fakeDocument) Pages() []Page {
	pages := make([]Page, len(d))
	for i, p := range d {
		pages[i] = p
	}
	return pages
}

func TestExtractor_Extract(t *testing.T) {
	doc := fakeDocument{
		fakePage{
			text: "Statement Period: 01/07/2025 - 31/07/2025",
			tables: []Table{
				{
					{"Date", "Vendor", "Description", "Debit", "Credit", "Balance"},
					{"01/07/2025", "Acme", "Invoice", "500D", "", "1000"},
					{"02/07/2025", "Beta", "Refund", "", "200C", "1200"},
				},
			},
		},
	}

	result := NewExtractor(nil).Extract(doc)

	assert.Equal(t, "July 2025", result.Period)
	assert.Equal(t, 1, result.RowsSkipped, "header row is skipped, not an error")
	require.Len(t, result.Records, 2)

	assert.Equal(t, "2025-07-01", result.Records[0].Date)
	require.NotNil(t, result.Records[0].DebitAmount)
	assert.Equal(t, "500", result.Records[0].DebitAmount.String())
	assert.Nil(t, result.Records[0].CreditAmount)
	assert.Equal(t, "1000", result.Records[0].Balance)

	assert.Equal(t, "2025-07-02", result.Records[1].Date)
	assert.Nil(t, result.Records[1].DebitAmount)
	require.NotNil(t, result.Records[1].CreditAmount)
	assert.Equal(t, "200", result.Records[1].CreditAmount.String())
	assert.Equal(t, "1200", result.Records[1].Balance)
}

func TestExtractor_Extract_BlobTable(t *testing.T) {
	blob := "01/07/2025  VendorA  Desc1  100D01/08/2025  VendorB  Desc2  50C" +
		strings.Repeat(" ", blobMinLength)

	doc := fakeDocument{
		fakePage{tables: []Table{{{blob}}}},
	}

	result := NewExtractor(nil).Extract(doc)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "VendorA", result.Records[0].Vendor)
	require.NotNil(t, result.Records[0].DebitAmount)
	assert.Equal(t, "100", result.Records[0].DebitAmount.String())
	assert.Equal(t, "VendorB", result.Records[1].Vendor)
	require.NotNil(t, result.Records[1].CreditAmount)
	assert.Equal(t, "50", result.Records[1].CreditAmount.String())
}

func TestExtractor_Extract_OrderAndIsolation(t *testing.T) {
	doc := fakeDocument{
		fakePage{tables: []Table{
			{
				{"garbage row that qualifies nowhere"},
				{"01/07/2025", "First", "a", "1D"},
			},
			{
				{"02/07/2025", "Second", "b", "2D"},
			},
		}},
		fakePage{tables: []Table{
			{
				{"03/07/2025", "Third", "c", "3D"},
			},
		}},
	}

	result := NewExtractor(nil).Extract(doc)
	require.Len(t, result.Records, 3)
	assert.Equal(t, "First", result.Records[0].Vendor)
	assert.Equal(t, "Second", result.Records[1].Vendor)
	assert.Equal(t, "Third", result.Records[2].Vendor)
	assert.Equal(t, 1, result.RowsSkipped)

	// Same document, same sequence.
	again := NewExtractor(nil).Extract(doc)
	assert.Equal(t, result.Records, again.Records)
}

func TestExtractor_Extract_EmptyDocument(t *testing.T) {
	result := NewExtractor(nil).Extract(fakeDocument{})
	assert.Empty(t, result.Records)
	assert.Equal(t, "", result.Period)
}

func TestExtractor_WithStrictBlobLines(t *testing.T) {
	blob := "01/07/2025  VendorA  Desc1  100D\n01/08/2025  VendorB  Desc2  50C" +
		strings.Repeat(" ", blobMinLength)

	doc := fakeDocument{fakePage{tables: []Table{{{blob}}}}}

	result := NewExtractor(nil).WithStrictBlobLines().Extract(doc)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "VendorA", result.Records[0].Vendor)
	assert.Equal(t, "VendorB", result.Records[1].Vendor)
}
