package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/finbooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusLocked      UserStatus = "locked"
	UserStatusDeactivated UserStatus = "deactivated"
)

// Password cost for bcrypt
const bcryptCost = 12

const maxFailedAttempts = 5

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents an authenticated operator of the system
type User struct {
	shared.BaseEntity
	TenantID       uuid.UUID
	Username       string
	Email          string
	PasswordHash   string
	DisplayName    string
	Role           string
	Status         UserStatus
	LastLoginAt    *time.Time
	FailedAttempts int
	Version        int
}

// NewUser creates a new active user with a hashed password
func NewUser(tenantID uuid.UUID, username, email, password string) (*User, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tenant ID is required")
	}
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if email != "" && !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     tenantID,
		Username:     strings.ToLower(strings.TrimSpace(username)),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Status:       UserStatusActive,
		Version:      1,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword validates and replaces the user's password hash
func (u *User) ChangePassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.Version++
	u.Touch()
	return nil
}

// RecordLogin clears failed attempts and stamps the login time
func (u *User) RecordLogin(at time.Time) {
	u.FailedAttempts = 0
	u.LastLoginAt = &at
	u.Touch()
}

// RecordFailedAttempt increments the failure counter, locking the account
// once the threshold is reached
func (u *User) RecordFailedAttempt() {
	u.FailedAttempts++
	if u.FailedAttempts >= maxFailedAttempts {
		u.Status = UserStatusLocked
	}
	u.Touch()
}

// Unlock reactivates a locked account
func (u *User) Unlock() {
	u.FailedAttempts = 0
	u.Status = UserStatusActive
	u.Touch()
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.Status = UserStatusDeactivated
	u.Touch()
}

// CanLogin reports whether the user may sign in
func (u *User) CanLogin() bool {
	return u.Status == UserStatusActive
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 50 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be between 3 and 50 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	return nil
}
