package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormResourceRepository_List(t *testing.T) {
	t.Run("applies type and featured filters", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		repo := NewGormResourceRepository(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "resources" WHERE type = \$1 AND featured = \$2`).
			WithArgs("video", true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		resourceID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "title", "type", "url", "featured", "view_count"}).
			AddRow(resourceID, "Tummy time basics", "video", "https://example.com/v/1", true, 42)

		mock.ExpectQuery(`SELECT \* FROM "resources" WHERE type = \$1 AND featured = \$2 ORDER BY featured DESC, created_at DESC`).
			WithArgs("video", true).
			WillReturnRows(rows)

		filter := resource.Filter{}.WithType(resource.TypeVideo).WithFeatured(true)
		resources, total, err := repo.List(context.Background(), filter)

		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, resources, 1)
		assert.Equal(t, resourceID, resources[0].ID)
		assert.Equal(t, resource.TypeVideo, resources[0].Type)
		assert.EqualValues(t, 42, resources[0].ViewCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormResourceRepository_IncrementViews(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()
	repo := NewGormResourceRepository(db)

	resourceID := uuid.New()
	mock.ExpectExec(`UPDATE "resources" SET "view_count"=view_count \+ 1 WHERE id = \$1`).
		WithArgs(resourceID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncrementViews(context.Background(), resourceID)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBookmarkRepository_Create_Idempotent(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()
	repo := NewGormBookmarkRepository(db)

	b := resource.NewBookmark(uuid.New(), uuid.New())

	mock.ExpectExec(`INSERT INTO "bookmarks"`).
		WillReturnError(errors.New(`duplicate key value violates unique constraint "idx_bookmarks_user_resource" (SQLSTATE 23505)`))

	err := repo.Create(context.Background(), b)
	assert.NoError(t, err, "duplicate bookmark must not surface as an error")
}
