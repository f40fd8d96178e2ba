package curriculum

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lifecurriculum/backend/internal/domain/child"
	"github.com/lifecurriculum/backend/internal/domain/curriculum"
	"github.com/lifecurriculum/backend/internal/domain/shared"
)

// CurriculumService serves the seeded developmental reference data
type CurriculumService struct {
	curriculumRepo curriculum.Repository
	childRepo      child.Repository
	logger         *zap.Logger
}

// NewCurriculumService creates a curriculum service
func NewCurriculumService(curriculumRepo curriculum.Repository, childRepo child.Repository, logger *zap.Logger) *CurriculumService {
	return &CurriculumService{
		curriculumRepo: curriculumRepo,
		childRepo:      childRepo,
		logger:         logger,
	}
}

// ListStages returns all age stages ordered by sort order
func (s *CurriculumService) ListStages(ctx context.Context) ([]*StageInfo, error) {
	stages, err := s.curriculumRepo.ListStages(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]*StageInfo, 0, len(stages))
	for _, st := range stages {
		infos = append(infos, toStageInfo(st))
	}
	return infos, nil
}

// ListDomains returns all development domains ordered by sort order
func (s *CurriculumService) ListDomains(ctx context.Context) ([]*DomainInfo, error) {
	domains, err := s.curriculumRepo.ListDomains(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]*DomainInfo, 0, len(domains))
	for _, d := range domains {
		infos = append(infos, toDomainInfo(d))
	}
	return infos, nil
}

// ListMilestones returns milestones, optionally filtered by stage and domain
func (s *CurriculumService) ListMilestones(ctx context.Context, query MilestoneQuery) ([]*MilestoneInfo, error) {
	filter := curriculum.MilestoneFilter{}
	if query.StageID != nil {
		filter = filter.WithStage(*query.StageID)
	}
	if query.DomainID != nil {
		filter = filter.WithDomain(*query.DomainID)
	}

	milestones, err := s.curriculumRepo.ListMilestones(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]*MilestoneInfo, 0, len(milestones))
	for _, m := range milestones {
		infos = append(infos, toMilestoneInfo(m))
	}
	return infos, nil
}

// GetMilestone returns one milestone by id
func (s *CurriculumService) GetMilestone(ctx context.Context, id uuid.UUID) (*MilestoneInfo, error) {
	m, err := s.curriculumRepo.FindMilestoneByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMilestoneInfo(m), nil
}

// ListActivitiesByStage returns the suggested activities for one age stage
func (s *CurriculumService) ListActivitiesByStage(ctx context.Context, stageID uuid.UUID) ([]*ActivityInfo, error) {
	activities, err := s.curriculumRepo.ListActivitiesByStage(ctx, stageID)
	if err != nil {
		return nil, err
	}

	infos := make([]*ActivityInfo, 0, len(activities))
	for _, a := range activities {
		infos = append(infos, toActivityInfo(a))
	}
	return infos, nil
}

// GetActivity returns one activity by id
func (s *CurriculumService) GetActivity(ctx context.Context, id uuid.UUID) (*ActivityInfo, error) {
	a, err := s.curriculumRepo.FindActivityByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toActivityInfo(a), nil
}

// StageForChild resolves the child's current age stage and bundles the
// milestones and activities that belong to it
func (s *CurriculumService) StageForChild(ctx context.Context, familyID, childID uuid.UUID) (*ChildStage, error) {
	c, err := s.childRepo.FindByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if c.FamilyID != familyID {
		return nil, shared.ErrNotFound
	}

	stages, err := s.curriculumRepo.ListStages(ctx)
	if err != nil {
		return nil, err
	}

	ageMonths := c.AgeInMonths(time.Now())
	stage := curriculum.StageForAge(stages, ageMonths)
	if stage == nil {
		return nil, shared.NewDomainError("NO_MATCHING_STAGE", "No age stage covers this child's age")
	}

	milestones, err := s.curriculumRepo.ListMilestones(ctx, curriculum.MilestoneFilter{}.WithStage(stage.ID))
	if err != nil {
		return nil, err
	}

	activities, err := s.curriculumRepo.ListActivitiesByStage(ctx, stage.ID)
	if err != nil {
		return nil, err
	}

	result := &ChildStage{
		Stage:       toStageInfo(stage),
		AgeInMonths: ageMonths,
		Milestones:  make([]*MilestoneInfo, 0, len(milestones)),
		Activities:  make([]*ActivityInfo, 0, len(activities)),
	}
	for _, m := range milestones {
		result.Milestones = append(result.Milestones, toMilestoneInfo(m))
	}
	for _, a := range activities {
		result.Activities = append(result.Activities, toActivityInfo(a))
	}
	return result, nil
}

func toStageInfo(s *curriculum.AgeStage) *StageInfo {
	return &StageInfo{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		MinMonths:   s.MinMonths,
		MaxMonths:   s.MaxMonths,
		SortOrder:   s.SortOrder,
	}
}

func toDomainInfo(d *curriculum.DevelopmentDomain) *DomainInfo {
	return &DomainInfo{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Icon:        d.Icon,
		SortOrder:   d.SortOrder,
	}
}

func toMilestoneInfo(m *curriculum.Milestone) *MilestoneInfo {
	return &MilestoneInfo{
		ID:          m.ID,
		DomainID:    m.DomainID,
		StageID:     m.StageID,
		Title:       m.Title,
		Description: m.Description,
		SortOrder:   m.SortOrder,
	}
}

func toActivityInfo(a *curriculum.Activity) *ActivityInfo {
	return &ActivityInfo{
		ID:              a.ID,
		StageID:         a.StageID,
		Title:           a.Title,
		Description:     a.Description,
		Materials:       a.Materials,
		DurationMinutes: a.DurationMinutes,
		MilestoneIDs:    a.MilestoneIDs,
	}
}
