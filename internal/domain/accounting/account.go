package accounting

import (
	"fmt"
	"strings"

	"github.com/finbooks/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountType classifies an account within the chart of accounts.
// The set is closed: the accounting equation depends on exhaustive,
// correct classification, so unknown values are rejected at the boundary.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// AccountTypes lists all valid account types
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeRevenue,
	AccountTypeExpense,
}

// IsValid checks if the account type is one of the five recognized values
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity,
		AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// String returns the string representation
func (t AccountType) String() string {
	return string(t)
}

// IsDebitNormal returns true for accounts that increase with debits.
// Asset and Expense accounts are debit-normal; Liability, Equity and
// Revenue accounts are credit-normal.
func (t AccountType) IsDebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// DisplayName returns a human-readable label for the account type
func (t AccountType) DisplayName() string {
	switch t {
	case AccountTypeAsset:
		return "Asset"
	case AccountTypeLiability:
		return "Liability"
	case AccountTypeEquity:
		return "Equity"
	case AccountTypeRevenue:
		return "Revenue"
	case AccountTypeExpense:
		return "Expense"
	default:
		return "Unknown"
	}
}

// ParseAccountType parses a string into an AccountType, rejecting unknown variants
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", &ClassificationError{RawType: s}
	}
	return t, nil
}

// ClassificationError signals an account whose type falls outside the closed
// enum. It is fatal to any balance computation involving that account because
// the polarity rule cannot be determined; guessing would silently corrupt the
// accounting equation.
type ClassificationError struct {
	AccountID uuid.UUID
	RawType   string
}

// Error implements the error interface
func (e *ClassificationError) Error() string {
	if e.AccountID != uuid.Nil {
		return fmt.Sprintf("account %s has unrecognized type %q", e.AccountID, e.RawType)
	}
	return fmt.Sprintf("unrecognized account type %q", e.RawType)
}

// Account is a node in the chart of accounts. Accounts are read-only for the
// aggregation core; they are created and maintained through the accounts
// management service.
type Account struct {
	shared.BaseEntity
	TenantID    uuid.UUID
	Code        string
	Name        string
	Type        AccountType
	Description string
	Version     int
}

// NewAccount creates a new account after validating the closed type enum
func NewAccount(tenantID uuid.UUID, code, name string, accountType AccountType) (*Account, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tenant ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Account name is required")
	}
	if !accountType.IsValid() {
		return nil, &ClassificationError{RawType: string(accountType)}
	}

	return &Account{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		Code:       strings.TrimSpace(code),
		Name:       strings.TrimSpace(name),
		Type:       accountType,
		Version:    1,
	}, nil
}

// Rename updates the account's display name
func (a *Account) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Account name is required")
	}
	a.Name = strings.TrimSpace(name)
	a.Touch()
	return nil
}

// Reclassify changes the account type. Allowed only while no transactions
// reference the account; the application service enforces that precondition.
func (a *Account) Reclassify(accountType AccountType) error {
	if !accountType.IsValid() {
		return &ClassificationError{AccountID: a.ID, RawType: string(accountType)}
	}
	a.Type = accountType
	a.Touch()
	return nil
}

// SetDescription updates the free-form description
func (a *Account) SetDescription(description string) {
	a.Description = description
	a.Touch()
}

// Validate checks the account invariants, in particular the closed type enum.
// Used when hydrating accounts from storage so that a row written around the
// API cannot smuggle an unclassifiable type into the aggregators.
func (a *Account) Validate() error {
	if !a.Type.IsValid() {
		return &ClassificationError{AccountID: a.ID, RawType: string(a.Type)}
	}
	if a.TenantID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Tenant ID is required")
	}
	return nil
}
