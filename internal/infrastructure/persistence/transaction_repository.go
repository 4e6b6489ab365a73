package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbooks/backend/internal/domain/accounting"
	"github.com/finbooks/backend/internal/domain/shared"
	"github.com/finbooks/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByID finds a transaction by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a transaction by ID for a specific tenant
func (r *GormTransactionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all transactions for a tenant with filtering
func (r *GormTransactionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.TransactionFilter) ([]accounting.Transaction, error) {
	var transactionModels []models.TransactionModel
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, err
	}
	transactions := make([]accounting.Transaction, len(transactionModels))
	for i, model := range transactionModels {
		transactions[i] = *model.ToDomain()
	}
	return transactions, nil
}

// FindByAccount finds transactions touching an account on either side
func (r *GormTransactionRepository) FindByAccount(ctx context.Context, tenantID, accountID uuid.UUID, filter accounting.TransactionFilter) ([]accounting.Transaction, error) {
	var transactionModels []models.TransactionModel
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("tenant_id = ?", tenantID).
		Where("(debit_account_id = ? OR credit_account_id = ?)", accountID, accountID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, err
	}
	transactions := make([]accounting.Transaction, len(transactionModels))
	for i, model := range transactionModels {
		transactions[i] = *model.ToDomain()
	}
	return transactions, nil
}

// Save creates a transaction. Posted transactions are immutable, so this
// only ever inserts.
func (r *GormTransactionRepository) Save(ctx context.Context, transaction *accounting.Transaction) error {
	model := models.TransactionModelFromDomain(transaction)
	return r.db.WithContext(ctx).Create(model).Error
}

// CountForTenant counts transactions for a tenant with filtering
func (r *GormTransactionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.TransactionFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByAccount counts transactions referencing an account on either side
func (r *GormTransactionRepository) CountByAccount(ctx context.Context, tenantID, accountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("tenant_id = ?", tenantID).
		Where("(debit_account_id = ? OR credit_account_id = ?)", accountID, accountID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter conditions to query
func (r *GormTransactionRepository) applyFilter(query *gorm.DB, filter accounting.TransactionFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Sorting goes through a whitelist to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, TransactionSortFields, "date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	return query
}

// applyFilterWithoutPagination applies filter conditions without pagination
func (r *GormTransactionRepository) applyFilterWithoutPagination(query *gorm.DB, filter accounting.TransactionFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(description ILIKE ? OR reference ILIKE ?)", searchPattern, searchPattern)
	}
	if filter.AccountID != nil {
		query = query.Where("(debit_account_id = ? OR credit_account_id = ?)", *filter.AccountID, *filter.AccountID)
	}
	if filter.FromDate != nil {
		query = query.Where("date >= ?", filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", filter.ToDate)
	}
	return query
}

var _ accounting.TransactionRepository = (*GormTransactionRepository)(nil)
