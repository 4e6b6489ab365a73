package accounting

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyBucket is one point of the month-over-month revenue/expense series.
// Month is a YYYY-MM calendar key; Revenue and Expenses are rounded to two
// decimal places for display stability.
type MonthlyBucket struct {
	Month    string          `json:"month"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
}

// BuildMonthlySeries groups transactions into calendar-month buckets of
// revenue and expenses, ordered chronologically ascending. Only months with
// at least one contributing transaction appear; callers needing a dense
// series must interpolate the gaps themselves.
//
// A transaction contributes its amount to a month's expenses when its debit
// account is classified Expense, and to revenue when its credit account is
// classified Revenue. Both, one or neither side may count: a transfer
// between two Asset accounts lands in no bucket. Transactions with an
// unusable date, a malformed shape or an unresolvable account are skipped
// silently.
//
// Accumulation runs at full decimal precision; rounding to two places happens
// once per bucket at the end, so no cumulative rounding error can build up.
func BuildMonthlySeries(transactions []Transaction, accounts []Account) []MonthlyBucket {
	accountTypes := make(map[uuid.UUID]AccountType, len(accounts))
	for i := range accounts {
		accountTypes[accounts[i].ID] = accounts[i].Type
	}

	type accumulator struct {
		revenue  decimal.Decimal
		expenses decimal.Decimal
	}
	buckets := make(map[string]*accumulator)

	for i := range transactions {
		txn := &transactions[i]
		if !txn.HasUsableDate() || !txn.IsWellFormed() {
			continue
		}

		debitType, debitKnown := accountTypes[txn.DebitAccountID]
		creditType, creditKnown := accountTypes[txn.CreditAccountID]
		countsExpense := debitKnown && debitType == AccountTypeExpense
		countsRevenue := creditKnown && creditType == AccountTypeRevenue
		if !countsExpense && !countsRevenue {
			continue
		}

		key := txn.MonthKey()
		acc, ok := buckets[key]
		if !ok {
			acc = &accumulator{revenue: decimal.Zero, expenses: decimal.Zero}
			buckets[key] = acc
		}
		if countsExpense {
			acc.expenses = acc.expenses.Add(txn.Amount)
		}
		if countsRevenue {
			acc.revenue = acc.revenue.Add(txn.Amount)
		}
	}

	series := make([]MonthlyBucket, 0, len(buckets))
	for month, acc := range buckets {
		series = append(series, MonthlyBucket{
			Month:    month,
			Revenue:  acc.revenue.Round(2),
			Expenses: acc.expenses.Round(2),
		})
	}

	// YYYY-MM keys sort lexicographically in chronological order
	sort.Slice(series, func(i, j int) bool {
		return series[i].Month < series[j].Month
	})

	return series
}
