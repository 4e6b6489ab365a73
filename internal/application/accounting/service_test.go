package accounting

import (
	"context"
	"strings"

	"github.com/finbooks/backend/internal/domain/accounting"
	"github.com/finbooks/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// fakeAccountRepo is an in-memory AccountRepository for service tests
type fakeAccountRepo struct {
	accounts map[uuid.UUID]accounting.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]accounting.Account)}
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*accounting.Account, error) {
	if a, ok := r.accounts[id]; ok {
		copied := a
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeAccountRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*accounting.Account, error) {
	if a, ok := r.accounts[id]; ok && a.TenantID == tenantID {
		copied := a
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeAccountRepo) FindByCode(_ context.Context, tenantID uuid.UUID, code string) (*accounting.Account, error) {
	for _, a := range r.accounts {
		if a.TenantID == tenantID && a.Code == code {
			copied := a
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeAccountRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, filter accounting.AccountFilter) ([]accounting.Account, error) {
	var result []accounting.Account
	for _, a := range r.accounts {
		if a.TenantID != tenantID {
			continue
		}
		if filter.Type != nil && a.Type != *filter.Type {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(filter.Search)) {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (r *fakeAccountRepo) Save(_ context.Context, account *accounting.Account) error {
	r.accounts[account.ID] = *account
	return nil
}

func (r *fakeAccountRepo) SaveWithLock(ctx context.Context, account *accounting.Account) error {
	return r.Save(ctx, account)
}

func (r *fakeAccountRepo) DeleteForTenant(_ context.Context, tenantID, id uuid.UUID) error {
	if a, ok := r.accounts[id]; ok && a.TenantID == tenantID {
		delete(r.accounts, id)
		return nil
	}
	return shared.ErrNotFound
}

func (r *fakeAccountRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.AccountFilter) (int64, error) {
	accounts, _ := r.FindAllForTenant(ctx, tenantID, filter)
	return int64(len(accounts)), nil
}

// fakeTransactionRepo is an in-memory TransactionRepository for service tests
type fakeTransactionRepo struct {
	transactions map[uuid.UUID]accounting.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{transactions: make(map[uuid.UUID]accounting.Transaction)}
}

func (r *fakeTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*accounting.Transaction, error) {
	if t, ok := r.transactions[id]; ok {
		copied := t
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTransactionRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*accounting.Transaction, error) {
	if t, ok := r.transactions[id]; ok && t.TenantID == tenantID {
		copied := t
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTransactionRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, filter accounting.TransactionFilter) ([]accounting.Transaction, error) {
	var result []accounting.Transaction
	for _, t := range r.transactions {
		if t.TenantID != tenantID {
			continue
		}
		if filter.AccountID != nil && t.DebitAccountID != *filter.AccountID && t.CreditAccountID != *filter.AccountID {
			continue
		}
		if filter.FromDate != nil && t.Date.Before(*filter.FromDate) {
			continue
		}
		if filter.ToDate != nil && t.Date.After(*filter.ToDate) {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (r *fakeTransactionRepo) FindByAccount(ctx context.Context, tenantID, accountID uuid.UUID, filter accounting.TransactionFilter) ([]accounting.Transaction, error) {
	filter.AccountID = &accountID
	return r.FindAllForTenant(ctx, tenantID, filter)
}

func (r *fakeTransactionRepo) Save(_ context.Context, transaction *accounting.Transaction) error {
	r.transactions[transaction.ID] = *transaction
	return nil
}

func (r *fakeTransactionRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.TransactionFilter) (int64, error) {
	transactions, _ := r.FindAllForTenant(ctx, tenantID, filter)
	return int64(len(transactions)), nil
}

func (r *fakeTransactionRepo) CountByAccount(ctx context.Context, tenantID, accountID uuid.UUID) (int64, error) {
	transactions, _ := r.FindByAccount(ctx, tenantID, accountID, accounting.TransactionFilter{})
	return int64(len(transactions)), nil
}

var (
	_ accounting.AccountRepository     = (*fakeAccountRepo)(nil)
	_ accounting.TransactionRepository = (*fakeTransactionRepo)(nil)
)
