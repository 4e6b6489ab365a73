package identity

import (
	"context"

	"github.com/finbooks/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserFilter defines filtering options for user queries
type UserFilter struct {
	shared.Filter
	Status *UserStatus
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByIDForTenant finds a user by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by username for a tenant
	FindByUsername(ctx context.Context, tenantID uuid.UUID, username string) (*User, error)

	// FindAllForTenant finds all users for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter UserFilter) ([]User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// DeleteForTenant deletes a user for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts users for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter UserFilter) (int64, error)
}
