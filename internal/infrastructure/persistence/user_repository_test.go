package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM DB over a mocked SQL connection
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func userColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "version", "family_id",
		"email", "password_hash", "first_name", "last_name", "role",
		"email_verified", "is_active", "last_login_at",
	}
}

func TestGormUserRepository_FindByID(t *testing.T) {
	t.Run("finds existing user", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		repo := NewGormUserRepository(db)

		userID := uuid.New()
		familyID := uuid.New()

		rows := sqlmock.NewRows(userColumns()).
			AddRow(userID, nil, nil, 1, familyID,
				"parent@example.com", "hash", "Ada", "Lovelace", "parent",
				true, true, nil)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnRows(rows)

		user, err := repo.FindByID(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, familyID, user.FamilyID)
		assert.Equal(t, "parent@example.com", user.Email)
		assert.True(t, user.EmailVerified)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing user to ErrNotFound", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		repo := NewGormUserRepository(db)

		userID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.FindByID(context.Background(), userID)

		assert.Nil(t, user)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_FindByEmail(t *testing.T) {
	t.Run("matches case-insensitively", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		repo := NewGormUserRepository(db)

		userID := uuid.New()
		familyID := uuid.New()

		rows := sqlmock.NewRows(userColumns()).
			AddRow(userID, nil, nil, 1, familyID,
				"parent@example.com", "hash", "Ada", "Lovelace", "parent",
				false, true, nil)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE LOWER\(email\) = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("parent@example.com", 1).
			WillReturnRows(rows)

		user, err := repo.FindByEmail(context.Background(), "Parent@Example.COM")

		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty email short-circuits to ErrNotFound", func(t *testing.T) {
		db, _, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		repo := NewGormUserRepository(db)

		user, err := repo.FindByEmail(context.Background(), "")
		assert.Nil(t, user)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormUserRepository_Delete(t *testing.T) {
	t.Run("missing row maps to ErrNotFound", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		repo := NewGormUserRepository(db)

		userID := uuid.New()
		mock.ExpectExec(`DELETE FROM "users" WHERE id = \$1`).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), userID)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(assert.AnError))
	assert.True(t, isUniqueViolation(errors.New(`duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`)))
}
