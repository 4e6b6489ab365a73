package accounting

import (
	"context"
	"time"

	"github.com/finbooks/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountFilter defines filtering options for account queries
type AccountFilter struct {
	shared.Filter
	Type *AccountType // Filter by account type
}

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	// FindByID finds an account by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindByIDForTenant finds an account by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Account, error)

	// FindByCode finds an account by its chart code for a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Account, error)

	// FindAllForTenant finds all accounts for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter AccountFilter) ([]Account, error)

	// Save creates or updates an account
	Save(ctx context.Context, account *Account) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, account *Account) error

	// DeleteForTenant deletes an account for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts accounts for a tenant with optional filters
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter AccountFilter) (int64, error)
}

// TransactionFilter defines filtering options for transaction queries
type TransactionFilter struct {
	shared.Filter
	AccountID *uuid.UUID // Match either the debit or credit side
	FromDate  *time.Time // Filter by transaction date range start
	ToDate    *time.Time // Filter by transaction date range end
}

// TransactionRepository defines the interface for transaction persistence
type TransactionRepository interface {
	// FindByID finds a transaction by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// FindByIDForTenant finds a transaction by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Transaction, error)

	// FindAllForTenant finds all transactions for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter TransactionFilter) ([]Transaction, error)

	// FindByAccount finds transactions touching an account on either side
	FindByAccount(ctx context.Context, tenantID, accountID uuid.UUID, filter TransactionFilter) ([]Transaction, error)

	// Save creates a transaction; posted transactions are immutable
	Save(ctx context.Context, transaction *Transaction) error

	// CountForTenant counts transactions for a tenant with optional filters
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter TransactionFilter) (int64, error)

	// CountByAccount counts transactions referencing an account on either side
	CountByAccount(ctx context.Context, tenantID, accountID uuid.UUID) (int64, error)
}
