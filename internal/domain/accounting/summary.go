package accounting

import (
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum absolute difference between assets and
// liabilities plus equity for the books to count as balanced. One cent,
// matching currency minor-unit precision.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// FinancialSummary aggregates the whole chart of accounts into the figures a
// dashboard renders: group totals per account type, derived net profit, total
// equity including retained earnings, and the accounting equation check.
//
// Group totals are reported as accounting-convention magnitudes (each type's
// natural-polarity balance), not raw signed debit/credit deltas.
type FinancialSummary struct {
	TotalAssets      decimal.Decimal  `json:"total_assets"`
	TotalLiabilities decimal.Decimal  `json:"total_liabilities"`
	TotalEquity      decimal.Decimal  `json:"total_equity"`
	TotalRevenue     decimal.Decimal  `json:"total_revenue"`
	TotalExpenses    decimal.Decimal  `json:"total_expenses"`
	NetProfit        decimal.Decimal  `json:"net_profit"`
	IsBalanced       bool             `json:"is_balanced"`
	AccountBalances  []AccountBalance `json:"account_balances"`
	// SkippedTransactions counts malformed rows excluded across all
	// account aggregations, for data-quality auditing.
	SkippedTransactions int `json:"skipped_transactions,omitempty"`
}

// BuildFinancialSummary computes the financial summary for the given chart of
// accounts and transaction list. It returns nil (with no error) when accounts
// is empty so callers can distinguish "no data yet" from a legitimately
// all-zero summary.
//
// The function is pure and idempotent: identical inputs always produce a
// structurally equal summary and neither slice is ever mutated. A
// ClassificationError from any account aborts the summary; silently guessing
// a polarity would produce a materially wrong accounting equation.
func BuildFinancialSummary(accounts []Account, transactions []Transaction) (*FinancialSummary, error) {
	if len(accounts) == 0 {
		return nil, nil
	}

	summary := &FinancialSummary{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		TotalRevenue:     decimal.Zero,
		TotalExpenses:    decimal.Zero,
		AccountBalances:  make([]AccountBalance, 0, len(accounts)),
	}

	for i := range accounts {
		account := &accounts[i]
		balance, err := ComputeAccountBalance(account, transactions)
		if err != nil {
			return nil, err
		}
		summary.AccountBalances = append(summary.AccountBalances, *balance)
		summary.SkippedTransactions += balance.Skipped

		switch account.Type {
		case AccountTypeAsset:
			summary.TotalAssets = summary.TotalAssets.Add(balance.Balance)
		case AccountTypeLiability:
			summary.TotalLiabilities = summary.TotalLiabilities.Add(balance.Balance)
		case AccountTypeEquity:
			summary.TotalEquity = summary.TotalEquity.Add(balance.Balance)
		case AccountTypeRevenue:
			summary.TotalRevenue = summary.TotalRevenue.Add(balance.Balance)
		case AccountTypeExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(balance.Balance)
		}
	}

	// Retained earnings: period net profit rolls into equity before the
	// accounting equation is checked.
	summary.NetProfit = summary.TotalRevenue.Sub(summary.TotalExpenses)
	summary.TotalEquity = summary.TotalEquity.Add(summary.NetProfit)

	diff := summary.TotalAssets.Sub(summary.TotalLiabilities.Add(summary.TotalEquity))
	summary.IsBalanced = diff.Abs().LessThan(BalanceTolerance)

	return summary, nil
}
