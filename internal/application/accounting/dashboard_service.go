package accounting

import (
	"context"

	"github.com/finbooks/backend/internal/domain/accounting"
	"github.com/google/uuid"
)

// DashboardService assembles aggregate financial views from the tenant's
// full ledger
type DashboardService struct {
	accountRepo     accounting.AccountRepository
	transactionRepo accounting.TransactionRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	accountRepo accounting.AccountRepository,
	transactionRepo accounting.TransactionRepository,
) *DashboardService {
	return &DashboardService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// SummaryResponse wraps the financial summary for API responses.
// Empty reports true when the tenant has no accounts yet, so the
// front-end can render an onboarding state instead of zeros.
type SummaryResponse struct {
	Empty   bool                         `json:"empty"`
	Summary *accounting.FinancialSummary `json:"summary,omitempty"`
}

// MonthlySeriesResponse wraps the month-bucketed revenue and expense series
type MonthlySeriesResponse struct {
	Series []accounting.MonthlyBucket `json:"series"`
}

// GetFinancialSummary loads the tenant's full chart and ledger and builds
// the financial summary. A ClassificationError from the core surfaces
// unchanged so the transport layer can map it to a data-integrity failure.
func (s *DashboardService) GetFinancialSummary(ctx context.Context, tenantID uuid.UUID) (*SummaryResponse, error) {
	accounts, transactions, err := s.loadLedger(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	summary, err := accounting.BuildFinancialSummary(accounts, transactions)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return &SummaryResponse{Empty: true}, nil
	}

	return &SummaryResponse{Summary: summary}, nil
}

// GetMonthlySeries loads the tenant's ledger and buckets revenue and
// expenses by calendar month
func (s *DashboardService) GetMonthlySeries(ctx context.Context, tenantID uuid.UUID) (*MonthlySeriesResponse, error) {
	accounts, transactions, err := s.loadLedger(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	series := accounting.BuildMonthlySeries(transactions, accounts)
	if series == nil {
		series = []accounting.MonthlyBucket{}
	}

	return &MonthlySeriesResponse{Series: series}, nil
}

// GetAccountBalance computes the running balance of a single account
func (s *DashboardService) GetAccountBalance(ctx context.Context, tenantID, accountID uuid.UUID) (*accounting.AccountBalance, error) {
	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.FindByAccount(ctx, tenantID, accountID, accounting.TransactionFilter{})
	if err != nil {
		return nil, err
	}

	return accounting.ComputeAccountBalance(account, transactions)
}

// loadLedger fetches the complete chart of accounts and transaction log
// for a tenant. Aggregation happens in memory over the full ledger.
func (s *DashboardService) loadLedger(ctx context.Context, tenantID uuid.UUID) ([]accounting.Account, []accounting.Transaction, error) {
	accounts, err := s.accountRepo.FindAllForTenant(ctx, tenantID, accounting.AccountFilter{})
	if err != nil {
		return nil, nil, err
	}
	transactions, err := s.transactionRepo.FindAllForTenant(ctx, tenantID, accounting.TransactionFilter{})
	if err != nil {
		return nil, nil, err
	}
	return accounts, transactions, nil
}
