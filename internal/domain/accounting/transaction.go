package accounting

import (
	"strings"
	"time"

	"github.com/finbooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a posted double-entry journal line: one account is debited
// and another credited by the same non-negative amount. Direction is carried
// by which side an account sits on, never by the sign of the amount.
// Transactions are immutable once posted; there are no edit or void semantics.
type Transaction struct {
	shared.BaseEntity
	TenantID        uuid.UUID
	Date            time.Time
	Amount          decimal.Decimal
	DebitAccountID  uuid.UUID
	CreditAccountID uuid.UUID
	Description     string
	Reference       string
}

// NewTransaction creates a new transaction enforcing the double-entry shape:
// two distinct accounts, a non-negative amount and a usable date.
func NewTransaction(
	tenantID uuid.UUID,
	date time.Time,
	amount decimal.Decimal,
	debitAccountID, creditAccountID uuid.UUID,
	description string,
) (*Transaction, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tenant ID is required")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Transaction date is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Transaction amount cannot be negative")
	}
	if debitAccountID == uuid.Nil || creditAccountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Both debit and credit accounts are required")
	}
	if debitAccountID == creditAccountID {
		return nil, shared.NewDomainError("INVALID_INPUT", "Debit and credit accounts must be distinct")
	}

	return &Transaction{
		BaseEntity:      shared.NewBaseEntity(),
		TenantID:        tenantID,
		Date:            date,
		Amount:          amount,
		DebitAccountID:  debitAccountID,
		CreditAccountID: creditAccountID,
		Description:     strings.TrimSpace(description),
	}, nil
}

// SetReference attaches an external document reference
func (t *Transaction) SetReference(reference string) {
	t.Reference = strings.TrimSpace(reference)
	t.Touch()
}

// IsWellFormed reports whether a stored transaction can participate in
// aggregation. Rows that fail this check are skipped, never fatal: a single
// malformed record must not corrupt an entire report.
func (t *Transaction) IsWellFormed() bool {
	if t.Amount.IsNegative() {
		return false
	}
	if t.DebitAccountID == uuid.Nil || t.CreditAccountID == uuid.Nil {
		return false
	}
	return t.DebitAccountID != t.CreditAccountID
}

// HasUsableDate reports whether the transaction can be bucketed by month
func (t *Transaction) HasUsableDate() bool {
	return !t.Date.IsZero()
}

// MonthKey returns the YYYY-MM calendar bucket for the transaction date
func (t *Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}

// Debits reports whether the transaction debits the given account
func (t *Transaction) Debits(accountID uuid.UUID) bool {
	return t.DebitAccountID == accountID
}

// Credits reports whether the transaction credits the given account
func (t *Transaction) Credits(accountID uuid.UUID) bool {
	return t.CreditAccountID == accountID
}
