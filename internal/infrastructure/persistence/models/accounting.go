package models

import (
	"time"

	"github.com/finbooks/backend/internal/domain/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountModel is the persistence model for chart-of-accounts entries
type AccountModel struct {
	BaseModel
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_accounts_tenant_code"`
	Code        string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_accounts_tenant_code"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Type        string    `gorm:"type:varchar(20);not null;index"`
	Description string    `gorm:"type:text"`
	Version     int       `gorm:"not null;default:1"`
}

// TableName specifies the table name for AccountModel
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain account.
// The stored type string is carried over as-is; classification of
// unrecognized values is the domain layer's concern.
func (m *AccountModel) ToDomain() *accounting.Account {
	return &accounting.Account{
		BaseEntity:  m.BaseModel.ToDomain(),
		TenantID:    m.TenantID,
		Code:        m.Code,
		Name:        m.Name,
		Type:        accounting.AccountType(m.Type),
		Description: m.Description,
		Version:     m.Version,
	}
}

// AccountModelFromDomain converts a domain account to its persistence model
func AccountModelFromDomain(a *accounting.Account) *AccountModel {
	model := &AccountModel{
		TenantID:    a.TenantID,
		Code:        a.Code,
		Name:        a.Name,
		Type:        string(a.Type),
		Description: a.Description,
		Version:     a.Version,
	}
	model.FromDomainBaseEntity(a.BaseEntity)
	return model
}

// TransactionModel is the persistence model for double-entry transactions
type TransactionModel struct {
	BaseModel
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date            time.Time       `gorm:"not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DebitAccountID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreditAccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description     string          `gorm:"type:text"`
	Reference       string          `gorm:"type:varchar(100)"`
}

// TableName specifies the table name for TransactionModel
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain transaction
func (m *TransactionModel) ToDomain() *accounting.Transaction {
	return &accounting.Transaction{
		BaseEntity:      m.BaseModel.ToDomain(),
		TenantID:        m.TenantID,
		Date:            m.Date,
		Amount:          m.Amount,
		DebitAccountID:  m.DebitAccountID,
		CreditAccountID: m.CreditAccountID,
		Description:     m.Description,
		Reference:       m.Reference,
	}
}

// TransactionModelFromDomain converts a domain transaction to its persistence model
func TransactionModelFromDomain(t *accounting.Transaction) *TransactionModel {
	model := &TransactionModel{
		TenantID:        t.TenantID,
		Date:            t.Date,
		Amount:          t.Amount,
		DebitAccountID:  t.DebitAccountID,
		CreditAccountID: t.CreditAccountID,
		Description:     t.Description,
		Reference:       t.Reference,
	}
	model.FromDomainBaseEntity(t.BaseEntity)
	return model
}
