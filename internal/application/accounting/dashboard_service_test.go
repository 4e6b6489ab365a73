package accounting

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks/backend/internal/domain/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboardFixture struct {
	svc          *DashboardService
	accounts     *AccountService
	transactions *TransactionService
	accountRepo  *fakeAccountRepo
	tenantID     uuid.UUID
}

func newDashboardFixture() *dashboardFixture {
	accountRepo := newFakeAccountRepo()
	transactionRepo := newFakeTransactionRepo()
	return &dashboardFixture{
		svc:          NewDashboardService(accountRepo, transactionRepo),
		accounts:     NewAccountService(accountRepo, transactionRepo),
		transactions: NewTransactionService(transactionRepo, accountRepo),
		accountRepo:  accountRepo,
		tenantID:     uuid.New(),
	}
}

func (f *dashboardFixture) createAccount(t *testing.T, code, name, accountType string) uuid.UUID {
	t.Helper()
	resp, err := f.accounts.CreateAccount(context.Background(), f.tenantID, CreateAccountRequest{
		Code: code, Name: name, Type: accountType,
	})
	require.NoError(t, err)
	return resp.ID
}

func (f *dashboardFixture) post(t *testing.T, date time.Time, amount string, debit, credit uuid.UUID) {
	t.Helper()
	_, err := f.transactions.CreateTransaction(context.Background(), f.tenantID, CreateTransactionRequest{
		Date:            date,
		Amount:          decimal.RequireFromString(amount),
		DebitAccountID:  debit,
		CreditAccountID: credit,
	})
	require.NoError(t, err)
}

func TestDashboardService_GetFinancialSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("empty response when tenant has no accounts", func(t *testing.T) {
		f := newDashboardFixture()

		resp, err := f.svc.GetFinancialSummary(ctx, f.tenantID)
		require.NoError(t, err)
		assert.True(t, resp.Empty)
		assert.Nil(t, resp.Summary)
	})

	t.Run("aggregates the full ledger", func(t *testing.T) {
		f := newDashboardFixture()
		cash := f.createAccount(t, "1000", "Cash", "ASSET")
		sales := f.createAccount(t, "4000", "Sales", "REVENUE")
		rent := f.createAccount(t, "5000", "Rent", "EXPENSE")

		day := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
		f.post(t, day, "500.00", cash, sales)
		f.post(t, day, "120.00", rent, cash)

		resp, err := f.svc.GetFinancialSummary(ctx, f.tenantID)
		require.NoError(t, err)
		require.False(t, resp.Empty)
		summary := resp.Summary

		assert.True(t, summary.TotalRevenue.Equal(decimal.RequireFromString("500")), "revenue %s", summary.TotalRevenue)
		assert.True(t, summary.TotalExpenses.Equal(decimal.RequireFromString("120")), "expenses %s", summary.TotalExpenses)
		assert.True(t, summary.NetProfit.Equal(decimal.RequireFromString("380")), "net profit %s", summary.NetProfit)
		assert.True(t, summary.TotalAssets.Equal(decimal.RequireFromString("380")), "assets %s", summary.TotalAssets)
		assert.Len(t, summary.AccountBalances, 3)
	})

	t.Run("unclassifiable stored account type fails the whole summary", func(t *testing.T) {
		f := newDashboardFixture()
		f.createAccount(t, "1000", "Cash", "ASSET")

		// Simulate a corrupt row written by an older schema version.
		corrupt := &accounting.Account{
			TenantID: f.tenantID,
			Code:     "9999",
			Name:     "Mystery",
			Type:     accounting.AccountType("GOODWILL"),
		}
		corrupt.ID = uuid.New()
		require.NoError(t, f.accountRepo.Save(ctx, corrupt))

		_, err := f.svc.GetFinancialSummary(ctx, f.tenantID)
		var classErr *accounting.ClassificationError
		require.ErrorAs(t, err, &classErr)
		assert.Equal(t, "GOODWILL", classErr.RawType)
	})
}

func TestDashboardService_GetMonthlySeries(t *testing.T) {
	ctx := context.Background()

	t.Run("empty slice for tenant with no activity", func(t *testing.T) {
		f := newDashboardFixture()

		resp, err := f.svc.GetMonthlySeries(ctx, f.tenantID)
		require.NoError(t, err)
		assert.NotNil(t, resp.Series)
		assert.Empty(t, resp.Series)
	})

	t.Run("buckets revenue and expenses by month", func(t *testing.T) {
		f := newDashboardFixture()
		cash := f.createAccount(t, "1000", "Cash", "ASSET")
		sales := f.createAccount(t, "4000", "Sales", "REVENUE")
		rent := f.createAccount(t, "5000", "Rent", "EXPENSE")

		f.post(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "200.00", cash, sales)
		f.post(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), "80.00", rent, cash)
		f.post(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), "300.00", cash, sales)

		resp, err := f.svc.GetMonthlySeries(ctx, f.tenantID)
		require.NoError(t, err)
		require.Len(t, resp.Series, 2)

		assert.Equal(t, "2024-01", resp.Series[0].Month)
		assert.True(t, resp.Series[0].Revenue.Equal(decimal.RequireFromString("200")))

		assert.Equal(t, "2024-03", resp.Series[1].Month)
		assert.True(t, resp.Series[1].Revenue.Equal(decimal.RequireFromString("300")))
		assert.True(t, resp.Series[1].Expenses.Equal(decimal.RequireFromString("80")))
	})
}

func TestDashboardService_GetAccountBalance(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture()
	cash := f.createAccount(t, "1000", "Cash", "ASSET")
	sales := f.createAccount(t, "4000", "Sales", "REVENUE")

	f.post(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "250.00", cash, sales)
	f.post(t, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), "100.00", sales, cash)

	t.Run("nets debits against credits by polarity", func(t *testing.T) {
		balance, err := f.svc.GetAccountBalance(ctx, f.tenantID, cash)
		require.NoError(t, err)
		assert.True(t, balance.DebitTotal.Equal(decimal.RequireFromString("250")))
		assert.True(t, balance.CreditTotal.Equal(decimal.RequireFromString("100")))
		assert.True(t, balance.Balance.Equal(decimal.RequireFromString("150")))
	})

	t.Run("unknown account yields not-found", func(t *testing.T) {
		_, err := f.svc.GetAccountBalance(ctx, f.tenantID, uuid.New())
		assert.Error(t, err)
	})
}
