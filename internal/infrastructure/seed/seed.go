// Package seed loads the built-in curriculum reference data: age
// stages, development domains, milestones, activities, sports and the
// resource library. Each dataset is inserted only when its table is
// empty, so running the seeder repeatedly is safe.
package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lifecurriculum/backend/internal/infrastructure/persistence/models"
)

//go:embed data/*.json
var dataFS embed.FS

// Seeder inserts the embedded reference datasets
type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New creates a Seeder
func New(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{db: db, logger: logger}
}

// Seed loads every dataset. Datasets that are already present are
// skipped; the first failure aborts so later datasets never reference
// half-seeded parents.
func (s *Seeder) Seed(ctx context.Context) error {
	stages, err := s.seedAgeStages(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed age stages: %w", err)
	}

	domains, err := s.seedDevelopmentDomains(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed development domains: %w", err)
	}

	milestones, err := s.seedMilestones(ctx, stages, domains)
	if err != nil {
		return fmt.Errorf("failed to seed milestones: %w", err)
	}

	if err := s.seedActivities(ctx, stages, milestones); err != nil {
		return fmt.Errorf("failed to seed activities: %w", err)
	}

	if err := s.seedSports(ctx); err != nil {
		return fmt.Errorf("failed to seed sports: %w", err)
	}

	if err := s.seedResources(ctx, stages, domains); err != nil {
		return fmt.Errorf("failed to seed resources: %w", err)
	}

	return nil
}

func loadDataset[T any](name string) ([]T, error) {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", name, err)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", name, err)
	}
	return items, nil
}

// tableEmpty reports whether a table has no rows
func (s *Seeder) tableEmpty(ctx context.Context, model any) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(model).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func newBase() models.BaseModel {
	now := time.Now()
	return models.BaseModel{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

type ageStageData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MinMonths   int    `json:"min_months"`
	MaxMonths   int    `json:"max_months"`
	SortOrder   int    `json:"sort_order"`
}

// seedAgeStages inserts age stages and returns a name-to-id mapping,
// loading the existing rows when the table is already populated.
func (s *Seeder) seedAgeStages(ctx context.Context) (map[string]uuid.UUID, error) {
	byName := make(map[string]uuid.UUID)

	empty, err := s.tableEmpty(ctx, &models.AgeStageModel{})
	if err != nil {
		return nil, err
	}
	if !empty {
		s.logger.Debug("Age stages already seeded")
		var existing []models.AgeStageModel
		if err := s.db.WithContext(ctx).Find(&existing).Error; err != nil {
			return nil, err
		}
		for _, row := range existing {
			byName[row.Name] = row.ID
		}
		return byName, nil
	}

	items, err := loadDataset[ageStageData]("age_stages.json")
	if err != nil {
		return nil, err
	}

	rows := make([]models.AgeStageModel, 0, len(items))
	for _, item := range items {
		row := models.AgeStageModel{
			BaseModel:   newBase(),
			Name:        item.Name,
			Description: item.Description,
			MinMonths:   item.MinMonths,
			MaxMonths:   item.MaxMonths,
			SortOrder:   item.SortOrder,
		}
		rows = append(rows, row)
		byName[item.Name] = row.ID
	}

	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	s.logger.Info("Seeded age stages", zap.Int("count", len(rows)))
	return byName, nil
}

type developmentDomainData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	SortOrder   int    `json:"sort_order"`
}

func (s *Seeder) seedDevelopmentDomains(ctx context.Context) (map[string]uuid.UUID, error) {
	byName := make(map[string]uuid.UUID)

	empty, err := s.tableEmpty(ctx, &models.DevelopmentDomainModel{})
	if err != nil {
		return nil, err
	}
	if !empty {
		s.logger.Debug("Development domains already seeded")
		var existing []models.DevelopmentDomainModel
		if err := s.db.WithContext(ctx).Find(&existing).Error; err != nil {
			return nil, err
		}
		for _, row := range existing {
			byName[row.Name] = row.ID
		}
		return byName, nil
	}

	items, err := loadDataset[developmentDomainData]("development_domains.json")
	if err != nil {
		return nil, err
	}

	rows := make([]models.DevelopmentDomainModel, 0, len(items))
	for _, item := range items {
		row := models.DevelopmentDomainModel{
			BaseModel:   newBase(),
			Name:        item.Name,
			Description: item.Description,
			Icon:        item.Icon,
			SortOrder:   item.SortOrder,
		}
		rows = append(rows, row)
		byName[item.Name] = row.ID
	}

	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	s.logger.Info("Seeded development domains", zap.Int("count", len(rows)))
	return byName, nil
}

type milestoneData struct {
	Stage       string `json:"stage"`
	Domain      string `json:"domain"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

func (s *Seeder) seedMilestones(ctx context.Context, stages, domains map[string]uuid.UUID) (map[string]uuid.UUID, error) {
	byTitle := make(map[string]uuid.UUID)

	empty, err := s.tableEmpty(ctx, &models.MilestoneModel{})
	if err != nil {
		return nil, err
	}
	if !empty {
		s.logger.Debug("Milestones already seeded")
		var existing []models.MilestoneModel
		if err := s.db.WithContext(ctx).Find(&existing).Error; err != nil {
			return nil, err
		}
		for _, row := range existing {
			byTitle[row.Title] = row.ID
		}
		return byTitle, nil
	}

	items, err := loadDataset[milestoneData]("milestones.json")
	if err != nil {
		return nil, err
	}

	rows := make([]models.MilestoneModel, 0, len(items))
	for _, item := range items {
		stageID, ok := stages[item.Stage]
		if !ok {
			s.logger.Warn("Skipping milestone with unknown stage",
				zap.String("title", item.Title),
				zap.String("stage", item.Stage),
			)
			continue
		}
		domainID, ok := domains[item.Domain]
		if !ok {
			s.logger.Warn("Skipping milestone with unknown domain",
				zap.String("title", item.Title),
				zap.String("domain", item.Domain),
			)
			continue
		}

		row := models.MilestoneModel{
			BaseModel:   newBase(),
			DomainID:    domainID,
			StageID:     stageID,
			Title:       item.Title,
			Description: item.Description,
			SortOrder:   item.SortOrder,
		}
		rows = append(rows, row)
		byTitle[item.Title] = row.ID
	}

	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	s.logger.Info("Seeded milestones", zap.Int("count", len(rows)))
	return byTitle, nil
}

type activityData struct {
	Stage           string   `json:"stage"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Materials       []string `json:"materials"`
	DurationMinutes int      `json:"duration_minutes"`
	Milestones      []string `json:"milestones"`
}

func (s *Seeder) seedActivities(ctx context.Context, stages, milestones map[string]uuid.UUID) error {
	empty, err := s.tableEmpty(ctx, &models.ActivityModel{})
	if err != nil {
		return err
	}
	if !empty {
		s.logger.Debug("Activities already seeded")
		return nil
	}

	items, err := loadDataset[activityData]("activities.json")
	if err != nil {
		return err
	}

	rows := make([]models.ActivityModel, 0, len(items))
	for _, item := range items {
		stageID, ok := stages[item.Stage]
		if !ok {
			s.logger.Warn("Skipping activity with unknown stage",
				zap.String("title", item.Title),
				zap.String("stage", item.Stage),
			)
			continue
		}

		row := models.ActivityModel{
			BaseModel:       newBase(),
			StageID:         stageID,
			Title:           item.Title,
			Description:     item.Description,
			Materials:       pq.StringArray(item.Materials),
			DurationMinutes: item.DurationMinutes,
		}
		for _, title := range item.Milestones {
			milestoneID, ok := milestones[title]
			if !ok {
				s.logger.Warn("Skipping unknown milestone link",
					zap.String("activity", item.Title),
					zap.String("milestone", title),
				)
				continue
			}
			row.Milestones = append(row.Milestones, models.ActivityMilestoneModel{
				ActivityID:  row.ID,
				MilestoneID: milestoneID,
			})
		}
		rows = append(rows, row)
	}

	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}
	s.logger.Info("Seeded activities", zap.Int("count", len(rows)))
	return nil
}

type sportData struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

func (s *Seeder) seedSports(ctx context.Context) error {
	empty, err := s.tableEmpty(ctx, &models.SportModel{})
	if err != nil {
		return err
	}
	if !empty {
		s.logger.Debug("Sports already seeded")
		return nil
	}

	items, err := loadDataset[sportData]("sports.json")
	if err != nil {
		return err
	}

	rows := make([]models.SportModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.SportModel{
			BaseModel: newBase(),
			Name:      item.Name,
			Category:  item.Category,
			Icon:      item.Icon,
		})
	}

	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}
	s.logger.Info("Seeded sports", zap.Int("count", len(rows)))
	return nil
}

type resourceData struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Domain      string `json:"domain"`
	Stage       string `json:"stage"`
	Featured    bool   `json:"featured"`
}

func (s *Seeder) seedResources(ctx context.Context, stages, domains map[string]uuid.UUID) error {
	empty, err := s.tableEmpty(ctx, &models.ResourceModel{})
	if err != nil {
		return err
	}
	if !empty {
		s.logger.Debug("Resources already seeded")
		return nil
	}

	items, err := loadDataset[resourceData]("resources.json")
	if err != nil {
		return err
	}

	rows := make([]models.ResourceModel, 0, len(items))
	for _, item := range items {
		row := models.ResourceModel{
			BaseModel:   newBase(),
			Title:       item.Title,
			Type:        item.Type,
			URL:         item.URL,
			Description: item.Description,
			Featured:    item.Featured,
		}
		if id, ok := domains[item.Domain]; ok {
			domainID := id
			row.DomainID = &domainID
		}
		if id, ok := stages[item.Stage]; ok {
			stageID := id
			row.StageID = &stageID
		}
		rows = append(rows, row)
	}

	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}
	s.logger.Info("Seeded resources", zap.Int("count", len(rows)))
	return nil
}
