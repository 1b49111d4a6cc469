package statement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return &d
}

func TestSegregateByVendor(t *testing.T) {
	records := []TransactionRecord{
		{Date: "2025-07-01", Vendor: "AMAZON 4411", Description: "order", DebitAmount: dec(t, "250")},
		{Date: "2025-07-03", Vendor: "AMAZON 9902", Description: "order", DebitAmount: dec(t, "120")},
		{Date: "2025-07-05", Vendor: "Employer", Description: "salary", CreditAmount: dec(t, "50000")},
		{Date: "2025-07-07", Vendor: "Pharmacy", Description: "pending"},
	}

	byVendor := SegregateByVendor(records)

	names := VendorNames(byVendor)
	assert.Equal(t, []string{"AMAZON", "Employer", "Pharmacy"}, names)

	amazon := byVendor["AMAZON"]
	require.NotNil(t, amazon)
	require.Len(t, amazon.Debit, 2, "reference suffixes fold into one vendor")
	assert.Empty(t, amazon.Credit)
	assert.Equal(t, "250", amazon.Debit[0].Amount.String())
	assert.Equal(t, "120", amazon.Debit[1].Amount.String())

	employer := byVendor["Employer"]
	require.NotNil(t, employer)
	require.Len(t, employer.Credit, 1)
	assert.Equal(t, "50000", employer.Credit[0].Amount.String())

	// Records with no amount at all land on the credit side with zero.
	pharmacy := byVendor["Pharmacy"]
	require.NotNil(t, pharmacy)
	require.Len(t, pharmacy.Credit, 1)
	assert.True(t, pharmacy.Credit[0].Amount.IsZero())
}

func TestMergeVendorKey(t *testing.T) {
	t.Run("case-insensitive fold", func(t *testing.T) {
		assert.Equal(t, "Amazon", mergeVendorKey([]string{"Amazon"}, "AMAZON"))
	})

	t.Run("minor spelling variation folds", func(t *testing.T) {
		assert.Equal(t, "Starbucks", mergeVendorKey([]string{"Starbucks"}, "Starbuck"))
	})

	t.Run("short names never swallow long ones", func(t *testing.T) {
		assert.Equal(t, "ACE", mergeVendorKey([]string{"Acme Corp"}, "ACE"))
	})

	t.Run("unrelated names stay separate", func(t *testing.T) {
		assert.Equal(t, "Walmart", mergeVendorKey([]string{"Target"}, "Walmart"))
	})
}

func TestMonthlyTotals(t *testing.T) {
	records := []TransactionRecord{
		{Date: "2025-07-01", DebitAmount: dec(t, "100")},
		{Date: "2025-07-15", DebitAmount: dec(t, "50"), CreditAmount: dec(t, "20")},
		{Date: "2025-08-01", CreditAmount: dec(t, "300")},
		{Date: "N/A", DebitAmount: dec(t, "5")},
	}

	totals := MonthlyTotals(records)
	require.Len(t, totals, 3)

	assert.Equal(t, "150", totals["2025-07"].Debit.String())
	assert.Equal(t, "20", totals["2025-07"].Credit.String())
	assert.Equal(t, "300", totals["2025-08"].Credit.String())
	assert.Equal(t, "5", totals["unknown"].Debit.String())
}
