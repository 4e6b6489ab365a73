package accounting

import (
	"testing"
	"time"

	"github.com/finbooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTenantID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

func mustAccount(t *testing.T, name string, accountType AccountType) *Account {
	t.Helper()
	account, err := NewAccount(testTenantID, "", name, accountType)
	require.NoError(t, err)
	return account
}

func mustTransaction(t *testing.T, date time.Time, amount float64, debitID, creditID uuid.UUID) Transaction {
	t.Helper()
	txn, err := NewTransaction(testTenantID, date, decimal.NewFromFloat(amount), debitID, creditID, "")
	require.NoError(t, err)
	return *txn
}

func TestComputeAccountBalance(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("sums debit and credit legs separately", func(t *testing.T) {
		cash := mustAccount(t, "Cash", AccountTypeAsset)
		other := mustAccount(t, "Revenue", AccountTypeRevenue)

		txns := []Transaction{
			mustTransaction(t, day, 500, cash.ID, other.ID),
			mustTransaction(t, day, 200, other.ID, cash.ID),
			mustTransaction(t, day, 300, cash.ID, other.ID),
		}

		balance, err := ComputeAccountBalance(cash, txns)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(800).Equal(balance.DebitTotal))
		assert.True(t, decimal.NewFromInt(200).Equal(balance.CreditTotal))
	})

	t.Run("asset account is debit-normal", func(t *testing.T) {
		asset := mustAccount(t, "Cash", AccountTypeAsset)
		other := mustAccount(t, "Loan", AccountTypeLiability)

		txns := []Transaction{
			mustTransaction(t, day, 500, asset.ID, other.ID),
			mustTransaction(t, day, 200, other.ID, asset.ID),
		}

		balance, err := ComputeAccountBalance(asset, txns)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(300).Equal(balance.Balance),
			"asset with debit 500 / credit 200 must balance to 300, got %s", balance.Balance)
	})

	t.Run("liability account with same totals balances to the negative", func(t *testing.T) {
		liability := mustAccount(t, "Loan", AccountTypeLiability)
		other := mustAccount(t, "Cash", AccountTypeAsset)

		txns := []Transaction{
			mustTransaction(t, day, 500, liability.ID, other.ID),
			mustTransaction(t, day, 200, other.ID, liability.ID),
		}

		balance, err := ComputeAccountBalance(liability, txns)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(-300).Equal(balance.Balance),
			"liability with debit 500 / credit 200 must balance to -300, got %s", balance.Balance)
	})

	t.Run("unknown account type yields classification error", func(t *testing.T) {
		account := mustAccount(t, "Cash", AccountTypeAsset)
		account.Type = AccountType("SLUSH_FUND")

		_, err := ComputeAccountBalance(account, nil)
		var classErr *ClassificationError
		require.ErrorAs(t, err, &classErr)
		assert.Equal(t, account.ID, classErr.AccountID)
		assert.Equal(t, "SLUSH_FUND", classErr.RawType)
	})

	t.Run("malformed transactions are excluded, not fatal", func(t *testing.T) {
		cash := mustAccount(t, "Cash", AccountTypeAsset)
		other := mustAccount(t, "Revenue", AccountTypeRevenue)

		negative := mustTransaction(t, day, 100, cash.ID, other.ID)
		negative.Amount = decimal.NewFromInt(-50)
		selfRef := mustTransaction(t, day, 100, cash.ID, other.ID)
		selfRef.CreditAccountID = cash.ID

		txns := []Transaction{
			mustTransaction(t, day, 500, cash.ID, other.ID),
			negative,
			selfRef,
		}

		balance, err := ComputeAccountBalance(cash, txns)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(500).Equal(balance.DebitTotal))
		assert.True(t, decimal.Zero.Equal(balance.CreditTotal))
		assert.Equal(t, 2, balance.Skipped)
	})

	t.Run("does not mutate inputs", func(t *testing.T) {
		cash := mustAccount(t, "Cash", AccountTypeAsset)
		other := mustAccount(t, "Revenue", AccountTypeRevenue)
		txns := []Transaction{mustTransaction(t, day, 500, cash.ID, other.ID)}
		original := txns[0]

		_, err := ComputeAccountBalance(cash, txns)
		require.NoError(t, err)
		assert.Equal(t, original, txns[0])
	})

	t.Run("order independence", func(t *testing.T) {
		cash := mustAccount(t, "Cash", AccountTypeAsset)
		other := mustAccount(t, "Revenue", AccountTypeRevenue)

		forward := []Transaction{
			mustTransaction(t, day, 0.1, cash.ID, other.ID),
			mustTransaction(t, day, 0.2, cash.ID, other.ID),
			mustTransaction(t, day, 0.7, cash.ID, other.ID),
		}
		reversed := []Transaction{forward[2], forward[1], forward[0]}

		a, err := ComputeAccountBalance(cash, forward)
		require.NoError(t, err)
		b, err := ComputeAccountBalance(cash, reversed)
		require.NoError(t, err)
		assert.True(t, a.DebitTotal.Equal(b.DebitTotal))
		assert.True(t, decimal.NewFromInt(1).Equal(a.DebitTotal))
	})
}

func TestDoubleEntryConservation(t *testing.T) {
	// For any transaction set, the sum of debit totals across all accounts
	// must equal the sum of credit totals.
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	cash := mustAccount(t, "Cash", AccountTypeAsset)
	loan := mustAccount(t, "Loan", AccountTypeLiability)
	sales := mustAccount(t, "Sales", AccountTypeRevenue)
	rent := mustAccount(t, "Rent", AccountTypeExpense)
	accounts := []Account{*cash, *loan, *sales, *rent}

	txns := []Transaction{
		mustTransaction(t, day, 1000, cash.ID, loan.ID),
		mustTransaction(t, day, 750.25, cash.ID, sales.ID),
		mustTransaction(t, day, 320.75, rent.ID, cash.ID),
		mustTransaction(t, day, 99.99, rent.ID, cash.ID),
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for i := range accounts {
		balance, err := ComputeAccountBalance(&accounts[i], txns)
		require.NoError(t, err)
		totalDebits = totalDebits.Add(balance.DebitTotal)
		totalCredits = totalCredits.Add(balance.CreditTotal)
	}

	assert.True(t, totalDebits.Equal(totalCredits),
		"double-entry conservation violated: debits %s, credits %s", totalDebits, totalCredits)
}

func TestNewTransactionValidation(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	debit := uuid.New()
	credit := uuid.New()

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewTransaction(testTenantID, day, decimal.NewFromInt(-1), debit, credit, "")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("rejects identical debit and credit accounts", func(t *testing.T) {
		_, err := NewTransaction(testTenantID, day, decimal.NewFromInt(10), debit, debit, "")
		assert.Error(t, err)
	})

	t.Run("rejects zero date", func(t *testing.T) {
		_, err := NewTransaction(testTenantID, time.Time{}, decimal.NewFromInt(10), debit, credit, "")
		assert.Error(t, err)
	})

	t.Run("accepts zero amount", func(t *testing.T) {
		txn, err := NewTransaction(testTenantID, day, decimal.Zero, debit, credit, "memo entry")
		require.NoError(t, err)
		assert.True(t, txn.IsWellFormed())
	})
}
