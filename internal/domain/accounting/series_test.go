package accounting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMonthlySeries(t *testing.T) {
	cash := mustAccount(t, "Cash", AccountTypeAsset)
	sales := mustAccount(t, "Sales", AccountTypeRevenue)
	rent := mustAccount(t, "Rent", AccountTypeExpense)
	savings := mustAccount(t, "Savings", AccountTypeAsset)
	accounts := []Account{*cash, *sales, *rent, *savings}

	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)
	apr := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	t.Run("groups revenue and expenses by calendar month ascending", func(t *testing.T) {
		txns := []Transaction{
			mustTransaction(t, feb, 200, rent.ID, cash.ID),
			mustTransaction(t, jan, 1000, cash.ID, sales.ID),
			mustTransaction(t, jan, 300, rent.ID, cash.ID),
			mustTransaction(t, apr, 50, cash.ID, sales.ID),
		}

		series := BuildMonthlySeries(txns, accounts)
		require.Len(t, series, 3)

		assert.Equal(t, "2024-01", series[0].Month)
		assert.True(t, decimal.NewFromInt(1000).Equal(series[0].Revenue))
		assert.True(t, decimal.NewFromInt(300).Equal(series[0].Expenses))

		assert.Equal(t, "2024-02", series[1].Month)
		assert.True(t, decimal.Zero.Equal(series[1].Revenue))
		assert.True(t, decimal.NewFromInt(200).Equal(series[1].Expenses))

		// March has no transactions and is omitted, not zero-filled
		assert.Equal(t, "2024-04", series[2].Month)
	})

	t.Run("month boundary does not drift", func(t *testing.T) {
		endOfJan := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
		startOfFeb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		txns := []Transaction{
			mustTransaction(t, endOfJan, 100, cash.ID, sales.ID),
			mustTransaction(t, startOfFeb, 200, cash.ID, sales.ID),
		}

		series := BuildMonthlySeries(txns, accounts)
		require.Len(t, series, 2)
		assert.Equal(t, "2024-01", series[0].Month)
		assert.True(t, decimal.NewFromInt(100).Equal(series[0].Revenue))
		assert.Equal(t, "2024-02", series[1].Month)
		assert.True(t, decimal.NewFromInt(200).Equal(series[1].Revenue))
	})

	t.Run("asset-to-asset transfers contribute to neither bucket", func(t *testing.T) {
		txns := []Transaction{
			mustTransaction(t, jan, 5000, savings.ID, cash.ID),
		}
		series := BuildMonthlySeries(txns, accounts)
		assert.Empty(t, series)
	})

	t.Run("a transaction can feed both buckets", func(t *testing.T) {
		// Expense debited against revenue credited: contrived, but both
		// classified legs must count.
		txns := []Transaction{
			mustTransaction(t, jan, 75, rent.ID, sales.ID),
		}
		series := BuildMonthlySeries(txns, accounts)
		require.Len(t, series, 1)
		assert.True(t, decimal.NewFromInt(75).Equal(series[0].Revenue))
		assert.True(t, decimal.NewFromInt(75).Equal(series[0].Expenses))
	})

	t.Run("unusable dates are skipped silently", func(t *testing.T) {
		undated := mustTransaction(t, jan, 100, cash.ID, sales.ID)
		undated.Date = time.Time{}
		txns := []Transaction{
			undated,
			mustTransaction(t, feb, 40, cash.ID, sales.ID),
		}

		series := BuildMonthlySeries(txns, accounts)
		require.Len(t, series, 1)
		assert.Equal(t, "2024-02", series[0].Month)
	})

	t.Run("malformed amounts are skipped silently", func(t *testing.T) {
		bad := mustTransaction(t, jan, 100, cash.ID, sales.ID)
		bad.Amount = decimal.NewFromInt(-100)
		series := BuildMonthlySeries([]Transaction{bad}, accounts)
		assert.Empty(t, series)
	})

	t.Run("unresolvable accounts contribute nothing", func(t *testing.T) {
		txns := []Transaction{
			mustTransaction(t, jan, 100, cash.ID, sales.ID),
		}
		// empty chart: neither leg resolves
		series := BuildMonthlySeries(txns, nil)
		assert.Empty(t, series)
	})

	t.Run("accumulates at full precision and rounds once", func(t *testing.T) {
		txns := []Transaction{
			mustTransaction(t, jan, 0.333, cash.ID, sales.ID),
			mustTransaction(t, jan, 0.333, cash.ID, sales.ID),
			mustTransaction(t, jan, 0.333, cash.ID, sales.ID),
		}
		series := BuildMonthlySeries(txns, accounts)
		require.Len(t, series, 1)
		// 0.999 rounds to 1.00 once at the end; per-row rounding would
		// have produced 0.99
		assert.True(t, decimal.NewFromInt(1).Equal(series[0].Revenue))
	})

	t.Run("empty input yields empty series", func(t *testing.T) {
		assert.Empty(t, BuildMonthlySeries(nil, accounts))
	})
}
