package accounting

import (
	"github.com/shopspring/decimal"
)

// AccountBalance holds the aggregated totals for a single account.
// DebitTotal and CreditTotal are the raw sums of the transactions touching
// each side of the account; Balance is signed by the account's polarity:
// debit-normal accounts (Asset, Expense) carry DebitTotal - CreditTotal,
// credit-normal accounts (Liability, Equity, Revenue) the reverse.
type AccountBalance struct {
	AccountID   string          `json:"account_id"`
	AccountName string          `json:"account_name"`
	AccountType AccountType     `json:"account_type"`
	DebitTotal  decimal.Decimal `json:"debit_total"`
	CreditTotal decimal.Decimal `json:"credit_total"`
	Balance     decimal.Decimal `json:"balance"`
	// Skipped counts malformed transactions excluded from the totals,
	// reported so callers can audit data quality.
	Skipped int `json:"skipped,omitempty"`
}

// ComputeAccountBalance sums the debit and credit legs of every transaction
// referencing the account and derives the signed balance from the account's
// polarity. The computation is pure: it never mutates its inputs, and
// summation order cannot affect the result because amounts are decimals.
//
// Malformed transactions (negative amount, missing or identical account
// references) are excluded from the sums rather than aborting the report.
// An account whose type falls outside the closed enum yields a
// ClassificationError since its polarity cannot be determined.
func ComputeAccountBalance(account *Account, transactions []Transaction) (*AccountBalance, error) {
	if account == nil {
		return nil, &ClassificationError{RawType: ""}
	}
	if !account.Type.IsValid() {
		return nil, &ClassificationError{AccountID: account.ID, RawType: string(account.Type)}
	}

	debitTotal := decimal.Zero
	creditTotal := decimal.Zero
	skipped := 0

	for i := range transactions {
		txn := &transactions[i]
		touches := txn.Debits(account.ID) || txn.Credits(account.ID)
		if !touches {
			continue
		}
		if !txn.IsWellFormed() {
			skipped++
			continue
		}
		if txn.Debits(account.ID) {
			debitTotal = debitTotal.Add(txn.Amount)
		}
		if txn.Credits(account.ID) {
			creditTotal = creditTotal.Add(txn.Amount)
		}
	}

	balance := creditTotal.Sub(debitTotal)
	if account.Type.IsDebitNormal() {
		balance = debitTotal.Sub(creditTotal)
	}

	return &AccountBalance{
		AccountID:   account.ID.String(),
		AccountName: account.Name,
		AccountType: account.Type,
		DebitTotal:  debitTotal,
		CreditTotal: creditTotal,
		Balance:     balance,
		Skipped:     skipped,
	}, nil
}
