package accounting

import (
	"context"
	"errors"
	"time"

	"github.com/finbooks/backend/internal/domain/accounting"
	"github.com/finbooks/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountService provides application-level chart-of-accounts operations
type AccountService struct {
	accountRepo     accounting.AccountRepository
	transactionRepo accounting.TransactionRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(
	accountRepo accounting.AccountRepository,
	transactionRepo accounting.TransactionRepository,
) *AccountService {
	return &AccountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	TypeName    string    `json:"type_name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// CreateAccountRequest represents a request to create an account
type CreateAccountRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required,accounttype"`
	Description string `json:"description"`
}

// UpdateAccountRequest represents a request to update an account
type UpdateAccountRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required,accounttype"`
	Description string `json:"description"`
}

// AccountListFilter defines filtering options for account list queries
type AccountListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CreateAccount creates a new account. The account type is parsed strictly;
// unrecognized types are rejected rather than guessed.
func (s *AccountService) CreateAccount(ctx context.Context, tenantID uuid.UUID, req CreateAccountRequest) (*AccountResponse, error) {
	accountType, err := accounting.ParseAccountType(req.Type)
	if err != nil {
		return nil, err
	}

	if req.Code != "" {
		if _, err := s.accountRepo.FindByCode(ctx, tenantID, req.Code); err == nil {
			return nil, shared.NewDomainError("DUPLICATE_CODE", "An account with this code already exists")
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	account, err := accounting.NewAccount(tenantID, req.Code, req.Name, accountType)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		account.SetDescription(req.Description)
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	return toAccountResponse(account), nil
}

// GetAccountByID gets an account by ID
func (s *AccountService) GetAccountByID(ctx context.Context, tenantID, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// ListAccounts lists accounts for a tenant with pagination
func (s *AccountService) ListAccounts(ctx context.Context, tenantID uuid.UUID, filter AccountListFilter) (*shared.Paginated[AccountResponse], error) {
	domainFilter := accounting.AccountFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			Search:   filter.Search,
			OrderBy:  "code",
			OrderDir: "asc",
		},
	}
	if filter.Type != "" {
		accountType, err := accounting.ParseAccountType(filter.Type)
		if err != nil {
			return nil, err
		}
		domainFilter.Type = &accountType
	}
	if domainFilter.Page <= 0 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize <= 0 {
		domainFilter.PageSize = 20
	}

	accounts, err := s.accountRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.accountRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = *toAccountResponse(&accounts[i])
	}

	paginated := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &paginated, nil
}

// UpdateAccount updates an account's name, type and description
func (s *AccountService) UpdateAccount(ctx context.Context, tenantID, id uuid.UUID, req UpdateAccountRequest) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	accountType, err := accounting.ParseAccountType(req.Type)
	if err != nil {
		return nil, err
	}

	if err := account.Rename(req.Name); err != nil {
		return nil, err
	}
	if accountType != account.Type {
		// Reclassifying a posted account would flip the polarity of its
		// entire history, so the type is frozen once transactions exist.
		count, err := s.transactionRepo.CountByAccount(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, shared.NewDomainError("ACCOUNT_IN_USE", "Account has posted transactions and cannot be reclassified")
		}
	}
	if err := account.Reclassify(accountType); err != nil {
		return nil, err
	}
	account.SetDescription(req.Description)

	if err := s.accountRepo.SaveWithLock(ctx, account); err != nil {
		return nil, err
	}

	return toAccountResponse(account), nil
}

// DeleteAccount deletes an account if no transactions reference it
func (s *AccountService) DeleteAccount(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}

	count, err := s.transactionRepo.CountByAccount(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("ACCOUNT_IN_USE", "Account has posted transactions and cannot be deleted")
	}

	return s.accountRepo.DeleteForTenant(ctx, tenantID, id)
}

func toAccountResponse(account *accounting.Account) *AccountResponse {
	return &AccountResponse{
		ID:          account.ID,
		TenantID:    account.TenantID,
		Code:        account.Code,
		Name:        account.Name,
		Type:        string(account.Type),
		TypeName:    account.Type.DisplayName(),
		Description: account.Description,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
		Version:     account.Version,
	}
}
