package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/finbooks/backend/internal/domain/identity"
	"github.com/finbooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormUserRepository_FindByUsername(t *testing.T) {
	t.Run("finds existing user", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		tenantID := uuid.New()
		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "username", "email", "password_hash", "status", "failed_attempts", "version"}).
			AddRow(userID, tenantID, "alice", "alice@example.com", "$2a$12$hash", "active", 0, 1)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE tenant_id = \$1 AND username = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, "alice", 1).
			WillReturnRows(rows)

		user, err := repo.FindByUsername(context.Background(), tenantID, "alice")
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, identity.UserStatusActive, user.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing rows to not-found", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		tenantID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE tenant_id = \$1 AND username = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, "ghost", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByUsername(context.Background(), tenantID, "ghost")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormUserRepository_FindByIDForTenant(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormUserRepository(db)

	tenantID := uuid.New()
	userID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "tenant_id", "username", "status", "failed_attempts", "version"}).
		AddRow(userID, tenantID, "bob", "locked", 5, 2)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
		WithArgs(tenantID, userID, 1).
		WillReturnRows(rows)

	user, err := repo.FindByIDForTenant(context.Background(), tenantID, userID)
	require.NoError(t, err)
	assert.Equal(t, identity.UserStatusLocked, user.Status)
	assert.Equal(t, 5, user.FailedAttempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_DeleteForTenant(t *testing.T) {
	t.Run("deletes existing user", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		tenantID := uuid.New()
		userID := uuid.New()

		mock.ExpectExec(`DELETE FROM "users" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteForTenant(context.Background(), tenantID, userID))
	})

	t.Run("missing user yields not-found", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormUserRepository(db)

		tenantID := uuid.New()
		userID := uuid.New()

		mock.ExpectExec(`DELETE FROM "users" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteForTenant(context.Background(), tenantID, userID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormUserRepository_CountForTenant(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormUserRepository(db)

	tenantID := uuid.New()
	locked := identity.UserStatusLocked

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE tenant_id = \$1 AND status = \$2`).
		WithArgs(tenantID, "locked").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountForTenant(context.Background(), tenantID, identity.UserFilter{Status: &locked})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
