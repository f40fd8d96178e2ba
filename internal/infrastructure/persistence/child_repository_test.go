package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lifecurriculum/backend/internal/domain/child"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/persistence/models"
)

// newSQLiteDB opens an in-memory database with the child tables migrated.
// Unlike the sqlmock tests this exercises real SQL round trips.
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.ChildModel{},
		&models.ProgressRecordModel{},
	))
	return db
}

func newChild(t *testing.T, familyID uuid.UUID, name string) *child.Child {
	t.Helper()
	c, err := child.NewChild(familyID, name,
		time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	return c
}

func TestGormChildRepository_CreateAndFind(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormChildRepository(db)
	ctx := context.Background()

	familyID := uuid.New()
	c := newChild(t, familyID, "Mia")
	require.NoError(t, repo.Create(ctx, c))

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)
	assert.Equal(t, familyID, found.FamilyID)
	assert.Equal(t, "Mia", found.Name)
	assert.Nil(t, found.Gender)
}

func TestGormChildRepository_FindByIDNotFound(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormChildRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormChildRepository_ListByFamily(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormChildRepository(db)
	ctx := context.Background()

	familyID := uuid.New()

	older := newChild(t, familyID, "Noah")
	older.BirthDate = time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, older))

	younger := newChild(t, familyID, "Ada")
	require.NoError(t, repo.Create(ctx, younger))

	// Another family's child must not leak into the listing
	require.NoError(t, repo.Create(ctx, newChild(t, uuid.New(), "Stranger")))

	children, err := repo.ListByFamily(ctx, familyID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "Noah", children[0].Name)
	assert.Equal(t, "Ada", children[1].Name)
}

func TestGormChildRepository_Update(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormChildRepository(db)
	ctx := context.Background()

	c := newChild(t, uuid.New(), "Mia")
	require.NoError(t, repo.Create(ctx, c))

	c.SetAvatar("avatars/some-key.png")
	require.NoError(t, repo.Update(ctx, c))

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, found.AvatarKey)
	assert.Equal(t, "avatars/some-key.png", *found.AvatarKey)
}

func TestGormChildRepository_DeleteCascadesProgress(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormChildRepository(db)
	ctx := context.Background()

	c := newChild(t, uuid.New(), "Mia")
	require.NoError(t, repo.Create(ctx, c))

	record := models.ProgressRecordModel{}
	record.ID = uuid.New()
	record.ChildID = c.ID
	record.Status = "in_progress"
	require.NoError(t, db.Create(&record).Error)

	require.NoError(t, repo.Delete(ctx, c.ID))

	_, err := repo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.ProgressRecordModel{}).
		Where("child_id = ?", c.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGormChildRepository_DeleteNotFound(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormChildRepository(db)

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
