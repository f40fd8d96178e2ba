package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/athletic"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSportRepository implements athletic.SportRepository using GORM
type GormSportRepository struct {
	db *gorm.DB
}

// NewGormSportRepository creates a new GormSportRepository
func NewGormSportRepository(db *gorm.DB) *GormSportRepository {
	return &GormSportRepository{db: db}
}

// List returns all sports alphabetically
func (r *GormSportRepository) List(ctx context.Context) ([]*athletic.Sport, error) {
	var sportModels []*models.SportModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&sportModels).Error; err != nil {
		return nil, err
	}

	sports := make([]*athletic.Sport, 0, len(sportModels))
	for _, m := range sportModels {
		sports = append(sports, m.ToDomain())
	}
	return sports, nil
}

// FindByID finds a sport by ID
func (r *GormSportRepository) FindByID(ctx context.Context, id uuid.UUID) (*athletic.Sport, error) {
	var model models.SportModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GormAthleteRepository implements athletic.AthleteRepository using GORM
type GormAthleteRepository struct {
	db *gorm.DB
}

// NewGormAthleteRepository creates a new GormAthleteRepository
func NewGormAthleteRepository(db *gorm.DB) *GormAthleteRepository {
	return &GormAthleteRepository{db: db}
}

// Create creates a new athlete profile
func (r *GormAthleteRepository) Create(ctx context.Context, a *athletic.Athlete) error {
	var model models.AthleteModel
	model.FromDomain(a)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID finds an athlete by ID
func (r *GormAthleteRepository) FindByID(ctx context.Context, id uuid.UUID) (*athletic.Athlete, error) {
	var model models.AthleteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByChild returns all athlete profiles of a child
func (r *GormAthleteRepository) ListByChild(ctx context.Context, childID uuid.UUID) ([]*athletic.Athlete, error) {
	return r.listAthletes(ctx, "child_id = ?", childID)
}

// ListByFamily returns all athlete profiles in a family
func (r *GormAthleteRepository) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*athletic.Athlete, error) {
	return r.listAthletes(ctx, "family_id = ?", familyID)
}

func (r *GormAthleteRepository) listAthletes(ctx context.Context, cond string, arg any) ([]*athletic.Athlete, error) {
	var athleteModels []*models.AthleteModel
	if err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at ASC").
		Find(&athleteModels).Error; err != nil {
		return nil, err
	}

	athletes := make([]*athletic.Athlete, 0, len(athleteModels))
	for _, m := range athleteModels {
		athletes = append(athletes, m.ToDomain())
	}
	return athletes, nil
}

// Update updates an athlete profile
func (r *GormAthleteRepository) Update(ctx context.Context, a *athletic.Athlete) error {
	var model models.AthleteModel
	model.FromDomain(a)

	result := r.db.WithContext(ctx).Save(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an athlete profile along with its logs and check-ins
func (r *GormAthleteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("athlete_id = ?", id).
			Delete(&models.ActivityLogModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("athlete_id = ?", id).
			Delete(&models.FunCheckInModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.AthleteModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GormActivityLogRepository implements athletic.ActivityLogRepository
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewGormActivityLogRepository creates a new GormActivityLogRepository
func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Create records a training session
func (r *GormActivityLogRepository) Create(ctx context.Context, log *athletic.ActivityLog) error {
	var model models.ActivityLogModel
	model.FromDomain(log)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID finds an activity log by ID
func (r *GormActivityLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*athletic.ActivityLog, error) {
	var model models.ActivityLogModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByAthlete returns logs since the given time, newest first
func (r *GormActivityLogRepository) ListByAthlete(ctx context.Context, athleteID uuid.UUID, since time.Time) ([]*athletic.ActivityLog, error) {
	query := r.db.WithContext(ctx).Where("athlete_id = ?", athleteID)
	if !since.IsZero() {
		query = query.Where("date >= ?", since)
	}

	var logModels []*models.ActivityLogModel
	if err := query.Order("date DESC").Find(&logModels).Error; err != nil {
		return nil, err
	}

	logs := make([]*athletic.ActivityLog, 0, len(logModels))
	for _, m := range logModels {
		logs = append(logs, m.ToDomain())
	}
	return logs, nil
}

// Delete removes an activity log
func (r *GormActivityLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ActivityLogModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormCheckInRepository implements athletic.CheckInRepository
type GormCheckInRepository struct {
	db *gorm.DB
}

// NewGormCheckInRepository creates a new GormCheckInRepository
func NewGormCheckInRepository(db *gorm.DB) *GormCheckInRepository {
	return &GormCheckInRepository{db: db}
}

// Create records a fun check-in
func (r *GormCheckInRepository) Create(ctx context.Context, c *athletic.FunCheckIn) error {
	var model models.FunCheckInModel
	model.FromDomain(c)
	return r.db.WithContext(ctx).Create(&model).Error
}

// ListByAthlete returns check-ins ordered by date ascending. A limit of 0
// returns everything.
func (r *GormCheckInRepository) ListByAthlete(ctx context.Context, athleteID uuid.UUID, limit int) ([]*athletic.FunCheckIn, error) {
	query := r.db.WithContext(ctx).
		Where("athlete_id = ?", athleteID).
		Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var checkinModels []*models.FunCheckInModel
	if err := query.Find(&checkinModels).Error; err != nil {
		return nil, err
	}

	// Reverse into chronological order for trend analysis.
	checkins := make([]*athletic.FunCheckIn, len(checkinModels))
	for i, m := range checkinModels {
		checkins[len(checkinModels)-1-i] = m.ToDomain()
	}
	return checkins, nil
}
