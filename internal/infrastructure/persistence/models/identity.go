package models

import (
	"time"

	"github.com/finbooks/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// UserModel is the persistence model for users
type UserModel struct {
	BaseModel
	TenantID       uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_users_tenant_username"`
	Username       string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_users_tenant_username"`
	Email          string     `gorm:"type:varchar(255)"`
	PasswordHash   string     `gorm:"type:varchar(255);not null"`
	DisplayName    string     `gorm:"type:varchar(100)"`
	Role           string     `gorm:"type:varchar(50)"`
	Status         string     `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt    *time.Time `gorm:""`
	FailedAttempts int        `gorm:"not null;default:0"`
	Version        int        `gorm:"not null;default:1"`
}

// TableName specifies the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain user
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:     m.BaseModel.ToDomain(),
		TenantID:       m.TenantID,
		Username:       m.Username,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		DisplayName:    m.DisplayName,
		Role:           m.Role,
		Status:         identity.UserStatus(m.Status),
		LastLoginAt:    m.LastLoginAt,
		FailedAttempts: m.FailedAttempts,
		Version:        m.Version,
	}
}

// UserModelFromDomain converts a domain user to its persistence model
func UserModelFromDomain(u *identity.User) *UserModel {
	model := &UserModel{
		TenantID:       u.TenantID,
		Username:       u.Username,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		DisplayName:    u.DisplayName,
		Role:           u.Role,
		Status:         string(u.Status),
		LastLoginAt:    u.LastLoginAt,
		FailedAttempts: u.FailedAttempts,
		Version:        u.Version,
	}
	model.FromDomainBaseEntity(u.BaseEntity)
	return model
}
