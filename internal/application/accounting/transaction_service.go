package accounting

import (
	"context"
	"time"

	"github.com/finbooks/backend/internal/domain/accounting"
	"github.com/finbooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionService provides application-level double-entry posting operations
type TransactionService struct {
	transactionRepo accounting.TransactionRepository
	accountRepo     accounting.AccountRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	transactionRepo accounting.TransactionRepository,
	accountRepo accounting.AccountRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	Date            time.Time       `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	DebitAccountID  uuid.UUID       `json:"debit_account_id"`
	CreditAccountID uuid.UUID       `json:"credit_account_id"`
	Description     string          `json:"description,omitempty"`
	Reference       string          `json:"reference,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateTransactionRequest represents a request to post a transaction
type CreateTransactionRequest struct {
	Date            time.Time       `json:"date" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	DebitAccountID  uuid.UUID       `json:"debit_account_id" binding:"required"`
	CreditAccountID uuid.UUID       `json:"credit_account_id" binding:"required"`
	Description     string          `json:"description"`
	Reference       string          `json:"reference"`
}

// TransactionListFilter defines filtering options for transaction list queries
type TransactionListFilter struct {
	Search    string     `form:"search"`
	AccountID *uuid.UUID `form:"account_id"`
	FromDate  *time.Time `form:"from_date"`
	ToDate    *time.Time `form:"to_date"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}

// CreateTransaction posts a new transaction. Both referenced accounts must
// exist in the tenant's chart.
func (s *TransactionService) CreateTransaction(ctx context.Context, tenantID uuid.UUID, req CreateTransactionRequest) (*TransactionResponse, error) {
	if _, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, req.DebitAccountID); err != nil {
		return nil, shared.NewDomainError("UNKNOWN_ACCOUNT", "Debit account does not exist")
	}
	if _, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, req.CreditAccountID); err != nil {
		return nil, shared.NewDomainError("UNKNOWN_ACCOUNT", "Credit account does not exist")
	}

	transaction, err := accounting.NewTransaction(
		tenantID,
		req.Date,
		req.Amount,
		req.DebitAccountID,
		req.CreditAccountID,
		req.Description,
	)
	if err != nil {
		return nil, err
	}
	if req.Reference != "" {
		transaction.SetReference(req.Reference)
	}

	if err := s.transactionRepo.Save(ctx, transaction); err != nil {
		return nil, err
	}

	return toTransactionResponse(transaction), nil
}

// GetTransactionByID gets a transaction by ID
func (s *TransactionService) GetTransactionByID(ctx context.Context, tenantID, id uuid.UUID) (*TransactionResponse, error) {
	transaction, err := s.transactionRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(transaction), nil
}

// ListTransactions lists transactions for a tenant with pagination
func (s *TransactionService) ListTransactions(ctx context.Context, tenantID uuid.UUID, filter TransactionListFilter) (*shared.Paginated[TransactionResponse], error) {
	domainFilter := accounting.TransactionFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			Search:   filter.Search,
			OrderBy:  "date",
			OrderDir: "desc",
		},
		AccountID: filter.AccountID,
		FromDate:  filter.FromDate,
		ToDate:    filter.ToDate,
	}
	if domainFilter.Page <= 0 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize <= 0 {
		domainFilter.PageSize = 20
	}

	transactions, err := s.transactionRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.transactionRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = *toTransactionResponse(&transactions[i])
	}

	paginated := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &paginated, nil
}

// ListTransactionsByAccount lists transactions touching an account on either side
func (s *TransactionService) ListTransactionsByAccount(ctx context.Context, tenantID, accountID uuid.UUID, filter TransactionListFilter) (*shared.Paginated[TransactionResponse], error) {
	if _, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, accountID); err != nil {
		return nil, err
	}
	filter.AccountID = &accountID
	return s.ListTransactions(ctx, tenantID, filter)
}

func toTransactionResponse(transaction *accounting.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              transaction.ID,
		TenantID:        transaction.TenantID,
		Date:            transaction.Date,
		Amount:          transaction.Amount,
		DebitAccountID:  transaction.DebitAccountID,
		CreditAccountID: transaction.CreditAccountID,
		Description:     transaction.Description,
		Reference:       transaction.Reference,
		CreatedAt:       transaction.CreatedAt,
		UpdatedAt:       transaction.UpdatedAt,
	}
}
