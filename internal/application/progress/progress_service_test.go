package progress

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lifecurriculum/backend/internal/domain/child"
	"github.com/lifecurriculum/backend/internal/domain/curriculum"
	"github.com/lifecurriculum/backend/internal/domain/progress"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/storage"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Upsert(ctx context.Context, r *progress.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockProgressRepository) FindByID(ctx context.Context, id uuid.UUID) (*progress.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*progress.Record), args.Error(1)
}

func (m *MockProgressRepository) FindByChildAndMilestone(ctx context.Context, childID, milestoneID uuid.UUID) (*progress.Record, error) {
	args := m.Called(ctx, childID, milestoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*progress.Record), args.Error(1)
}

func (m *MockProgressRepository) FindByChildAndActivity(ctx context.Context, childID, activityID uuid.UUID) (*progress.Record, error) {
	args := m.Called(ctx, childID, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*progress.Record), args.Error(1)
}

func (m *MockProgressRepository) ListByChild(ctx context.Context, childID uuid.UUID) ([]*progress.Record, error) {
	args := m.Called(ctx, childID)
	return args.Get(0).([]*progress.Record), args.Error(1)
}

func (m *MockProgressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProgressRepository) DeleteByChild(ctx context.Context, childID uuid.UUID) error {
	args := m.Called(ctx, childID)
	return args.Error(0)
}

type MockChildRepository struct {
	mock.Mock
}

func (m *MockChildRepository) Create(ctx context.Context, c *child.Child) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChildRepository) FindByID(ctx context.Context, id uuid.UUID) (*child.Child, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*child.Child), args.Error(1)
}

func (m *MockChildRepository) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*child.Child, error) {
	args := m.Called(ctx, familyID)
	return args.Get(0).([]*child.Child), args.Error(1)
}

func (m *MockChildRepository) Update(ctx context.Context, c *child.Child) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChildRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCurriculumRepository struct {
	mock.Mock
}

func (m *MockCurriculumRepository) ListStages(ctx context.Context) ([]*curriculum.AgeStage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*curriculum.AgeStage), args.Error(1)
}

func (m *MockCurriculumRepository) ListDomains(ctx context.Context) ([]*curriculum.DevelopmentDomain, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*curriculum.DevelopmentDomain), args.Error(1)
}

func (m *MockCurriculumRepository) FindStageByID(ctx context.Context, id uuid.UUID) (*curriculum.AgeStage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*curriculum.AgeStage), args.Error(1)
}

func (m *MockCurriculumRepository) FindDomainByID(ctx context.Context, id uuid.UUID) (*curriculum.DevelopmentDomain, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*curriculum.DevelopmentDomain), args.Error(1)
}

func (m *MockCurriculumRepository) ListMilestones(ctx context.Context, filter curriculum.MilestoneFilter) ([]*curriculum.Milestone, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*curriculum.Milestone), args.Error(1)
}

func (m *MockCurriculumRepository) FindMilestoneByID(ctx context.Context, id uuid.UUID) (*curriculum.Milestone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*curriculum.Milestone), args.Error(1)
}

func (m *MockCurriculumRepository) ListActivitiesByStage(ctx context.Context, stageID uuid.UUID) ([]*curriculum.Activity, error) {
	args := m.Called(ctx, stageID)
	return args.Get(0).([]*curriculum.Activity), args.Error(1)
}

func (m *MockCurriculumRepository) FindActivityByID(ctx context.Context, id uuid.UUID) (*curriculum.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*curriculum.Activity), args.Error(1)
}

// =============================================================================
// Helpers
// =============================================================================

type fixture struct {
	progressRepo   *MockProgressRepository
	childRepo      *MockChildRepository
	curriculumRepo *MockCurriculumRepository
	svc            *ProgressService
	familyID       uuid.UUID
	child          *child.Child
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	familyID := uuid.New()
	c, err := child.NewChild(familyID, "Milo", time.Now().AddDate(-2, 0, 0), nil)
	require.NoError(t, err)

	f := &fixture{
		progressRepo:   new(MockProgressRepository),
		childRepo:      new(MockChildRepository),
		curriculumRepo: new(MockCurriculumRepository),
		familyID:       familyID,
		child:          c,
	}
	f.childRepo.On("FindByID", mock.Anything, c.ID).Return(c, nil)
	f.svc = NewProgressService(f.progressRepo, f.childRepo, f.curriculumRepo, storage.NewStubObjectStorage(), zap.NewNop())
	return f
}

// =============================================================================
// Tests
// =============================================================================

func TestProgressService_RecordMilestone_CreatesNewRecord(t *testing.T) {
	f := newFixture(t)
	milestoneID := uuid.New()

	f.curriculumRepo.On("FindMilestoneByID", mock.Anything, milestoneID).
		Return(&curriculum.Milestone{BaseEntity: shared.NewBaseEntity()}, nil)
	f.progressRepo.On("FindByChildAndMilestone", mock.Anything, f.child.ID, milestoneID).
		Return(nil, shared.ErrNotFound)
	f.progressRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*progress.Record")).Return(nil)

	info, err := f.svc.RecordMilestone(context.Background(), RecordMilestoneInput{
		FamilyID:    f.familyID,
		ChildID:     f.child.ID,
		MilestoneID: milestoneID,
		Status:      "achieved",
		Notes:       "First steps in the garden",
	})
	require.NoError(t, err)
	assert.Equal(t, "achieved", info.Status)
	assert.NotNil(t, info.AchievedAt)
	require.NotNil(t, info.MilestoneID)
	assert.Equal(t, milestoneID, *info.MilestoneID)
}

func TestProgressService_RecordMilestone_UpdatesExistingRecord(t *testing.T) {
	f := newFixture(t)
	milestoneID := uuid.New()

	existing, err := progress.NewMilestoneRecord(f.familyID, f.child.ID, milestoneID, progress.StatusInProgress, "")
	require.NoError(t, err)

	f.curriculumRepo.On("FindMilestoneByID", mock.Anything, milestoneID).
		Return(&curriculum.Milestone{BaseEntity: shared.NewBaseEntity()}, nil)
	f.progressRepo.On("FindByChildAndMilestone", mock.Anything, f.child.ID, milestoneID).
		Return(existing, nil)
	f.progressRepo.On("Upsert", mock.Anything, existing).Return(nil)

	info, err := f.svc.RecordMilestone(context.Background(), RecordMilestoneInput{
		FamilyID:    f.familyID,
		ChildID:     f.child.ID,
		MilestoneID: milestoneID,
		Status:      "achieved",
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, info.ID)
	assert.Equal(t, progress.StatusAchieved, existing.Status)
}

func TestProgressService_RecordMilestone_UnknownMilestone(t *testing.T) {
	f := newFixture(t)
	milestoneID := uuid.New()

	f.curriculumRepo.On("FindMilestoneByID", mock.Anything, milestoneID).Return(nil, shared.ErrNotFound)

	_, err := f.svc.RecordMilestone(context.Background(), RecordMilestoneInput{
		FamilyID:    f.familyID,
		ChildID:     f.child.ID,
		MilestoneID: milestoneID,
		Status:      "achieved",
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.progressRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestProgressService_RequestPhotoUpload(t *testing.T) {
	f := newFixture(t)

	record, err := progress.NewMilestoneRecord(f.familyID, f.child.ID, uuid.New(), progress.StatusAchieved, "")
	require.NoError(t, err)
	f.progressRepo.On("FindByID", mock.Anything, record.ID).Return(record, nil)
	f.progressRepo.On("Upsert", mock.Anything, record).Return(nil)

	upload, err := f.svc.RequestPhotoUpload(context.Background(), PhotoUploadInput{
		FamilyID:    f.familyID,
		ChildID:     f.child.ID,
		RecordID:    record.ID,
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, storage.ProgressPhotoKey(f.child.ID, record.ID, ".jpg"), upload.Key)
	require.NotNil(t, record.PhotoKey)
	assert.Equal(t, upload.Key, *record.PhotoKey)
}

func TestProgressService_Summary(t *testing.T) {
	f := newFixture(t)

	motor := &curriculum.DevelopmentDomain{BaseEntity: shared.NewBaseEntity(), Name: "Gross Motor"}
	language := &curriculum.DevelopmentDomain{BaseEntity: shared.NewBaseEntity(), Name: "Language"}

	m1 := &curriculum.Milestone{BaseEntity: shared.NewBaseEntity(), DomainID: motor.ID}
	m2 := &curriculum.Milestone{BaseEntity: shared.NewBaseEntity(), DomainID: motor.ID}
	m3 := &curriculum.Milestone{BaseEntity: shared.NewBaseEntity(), DomainID: language.ID}

	r1, err := progress.NewMilestoneRecord(f.familyID, f.child.ID, m1.ID, progress.StatusAchieved, "")
	require.NoError(t, err)
	r2, err := progress.NewMilestoneRecord(f.familyID, f.child.ID, m2.ID, progress.StatusInProgress, "")
	require.NoError(t, err)

	f.curriculumRepo.On("ListDomains", mock.Anything).
		Return([]*curriculum.DevelopmentDomain{motor, language}, nil)
	f.curriculumRepo.On("ListMilestones", mock.Anything, curriculum.MilestoneFilter{}).
		Return([]*curriculum.Milestone{m1, m2, m3}, nil)
	f.progressRepo.On("ListByChild", mock.Anything, f.child.ID).
		Return([]*progress.Record{r1, r2}, nil)

	summary, err := f.svc.Summary(context.Background(), f.familyID, f.child.ID)
	require.NoError(t, err)

	require.Len(t, summary.Domains, 2)
	assert.Equal(t, 1, summary.Achieved)
	assert.Equal(t, 3, summary.Total)

	motorSummary := summary.Domains[0]
	assert.Equal(t, "Gross Motor", motorSummary.DomainName)
	assert.Equal(t, 1, motorSummary.Achieved)
	assert.Equal(t, 1, motorSummary.InProgress)
	assert.Equal(t, 2, motorSummary.Total)
	assert.InDelta(t, 50.0, motorSummary.Percent, 0.01)

	languageSummary := summary.Domains[1]
	assert.Equal(t, 0, languageSummary.Achieved)
	assert.Equal(t, 1, languageSummary.Total)
	assert.InDelta(t, 0.0, languageSummary.Percent, 0.01)
}
