package athletic

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lifecurriculum/backend/internal/domain/athletic"
	"github.com/lifecurriculum/backend/internal/domain/child"
	"github.com/lifecurriculum/backend/internal/domain/shared"
)

// activityHistoryWindow is how far back training logs are listed by default
const activityHistoryWindow = 90 * 24 * time.Hour

// trendCheckInLimit caps how many check-ins feed the trend analysis
const trendCheckInLimit = 12

// AthleticService manages athlete profiles, training logs and enjoyment
// check-ins
type AthleticService struct {
	sportRepo   athletic.SportRepository
	athleteRepo athletic.AthleteRepository
	logRepo     athletic.ActivityLogRepository
	checkInRepo athletic.CheckInRepository
	childRepo   child.Repository
	logger      *zap.Logger
}

// NewAthleticService creates an athletic service
func NewAthleticService(
	sportRepo athletic.SportRepository,
	athleteRepo athletic.AthleteRepository,
	logRepo athletic.ActivityLogRepository,
	checkInRepo athletic.CheckInRepository,
	childRepo child.Repository,
	logger *zap.Logger,
) *AthleticService {
	return &AthleticService{
		sportRepo:   sportRepo,
		athleteRepo: athleteRepo,
		logRepo:     logRepo,
		checkInRepo: checkInRepo,
		childRepo:   childRepo,
		logger:      logger,
	}
}

// ListSports returns the seeded sport catalog
func (s *AthleticService) ListSports(ctx context.Context) ([]*SportInfo, error) {
	sports, err := s.sportRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]*SportInfo, 0, len(sports))
	for _, sp := range sports {
		infos = append(infos, &SportInfo{ID: sp.ID, Name: sp.Name, Category: sp.Category, Icon: sp.Icon})
	}
	return infos, nil
}

// CreateAthlete enrolls a child in a sport
func (s *AthleticService) CreateAthlete(ctx context.Context, input CreateAthleteInput) (*AthleteInfo, error) {
	c, err := s.childRepo.FindByID(ctx, input.ChildID)
	if err != nil {
		return nil, err
	}
	if c.FamilyID != input.FamilyID {
		return nil, shared.ErrNotFound
	}

	sport, err := s.sportRepo.FindByID(ctx, input.SportID)
	if err != nil {
		return nil, err
	}

	athlete, err := athletic.NewAthlete(input.FamilyID, input.ChildID, input.SportID,
		athletic.SkillLevel(input.SkillLevel), input.Goals)
	if err != nil {
		return nil, err
	}

	if err := s.athleteRepo.Create(ctx, athlete); err != nil {
		return nil, err
	}

	s.logger.Info("athlete enrolled",
		zap.String("athlete_id", athlete.ID.String()),
		zap.String("sport", sport.Name))
	return s.toAthleteInfo(ctx, athlete), nil
}

// ListAthletesByChild returns the child's athlete profiles
func (s *AthleticService) ListAthletesByChild(ctx context.Context, familyID, childID uuid.UUID) ([]*AthleteInfo, error) {
	c, err := s.childRepo.FindByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if c.FamilyID != familyID {
		return nil, shared.ErrNotFound
	}

	athletes, err := s.athleteRepo.ListByChild(ctx, childID)
	if err != nil {
		return nil, err
	}

	infos := make([]*AthleteInfo, 0, len(athletes))
	for _, a := range athletes {
		infos = append(infos, s.toAthleteInfo(ctx, a))
	}
	return infos, nil
}

// UpdateAthlete changes the athlete's skill level and goals
func (s *AthleticService) UpdateAthlete(ctx context.Context, input UpdateAthleteInput) (*AthleteInfo, error) {
	athlete, err := s.findOwnedAthlete(ctx, input.FamilyID, input.AthleteID)
	if err != nil {
		return nil, err
	}

	if err := athlete.UpdateProfile(athletic.SkillLevel(input.SkillLevel), input.Goals); err != nil {
		return nil, err
	}

	if err := s.athleteRepo.Update(ctx, athlete); err != nil {
		return nil, err
	}
	return s.toAthleteInfo(ctx, athlete), nil
}

// DeleteAthlete removes an athlete profile and its history
func (s *AthleticService) DeleteAthlete(ctx context.Context, familyID, athleteID uuid.UUID) error {
	athlete, err := s.findOwnedAthlete(ctx, familyID, athleteID)
	if err != nil {
		return err
	}
	return s.athleteRepo.Delete(ctx, athlete.ID)
}

// LogActivity records a training session for the athlete
func (s *AthleticService) LogActivity(ctx context.Context, input LogActivityInput) (*ActivityLogInfo, error) {
	if _, err := s.findOwnedAthlete(ctx, input.FamilyID, input.AthleteID); err != nil {
		return nil, err
	}

	log, err := athletic.NewActivityLog(input.FamilyID, input.AthleteID, input.Date,
		input.DurationMinutes, input.Intensity, input.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.logRepo.Create(ctx, log); err != nil {
		return nil, err
	}
	return toActivityLogInfo(log), nil
}

// ListActivity returns the athlete's training logs from the last 90 days
func (s *AthleticService) ListActivity(ctx context.Context, familyID, athleteID uuid.UUID) ([]*ActivityLogInfo, error) {
	if _, err := s.findOwnedAthlete(ctx, familyID, athleteID); err != nil {
		return nil, err
	}

	logs, err := s.logRepo.ListByAthlete(ctx, athleteID, time.Now().Add(-activityHistoryWindow))
	if err != nil {
		return nil, err
	}

	infos := make([]*ActivityLogInfo, 0, len(logs))
	for _, log := range logs {
		infos = append(infos, toActivityLogInfo(log))
	}
	return infos, nil
}

// CheckIn records an enjoyment pulse and returns the updated trend
func (s *AthleticService) CheckIn(ctx context.Context, input CheckInInput) (*CheckInInfo, *TrendInfo, error) {
	if _, err := s.findOwnedAthlete(ctx, input.FamilyID, input.AthleteID); err != nil {
		return nil, nil, err
	}

	checkin, err := athletic.NewFunCheckIn(input.FamilyID, input.AthleteID, input.Date,
		input.Enjoyment, input.MoodNote)
	if err != nil {
		return nil, nil, err
	}

	if err := s.checkInRepo.Create(ctx, checkin); err != nil {
		return nil, nil, err
	}

	trend, err := s.trend(ctx, input.AthleteID)
	if err != nil {
		return nil, nil, err
	}
	return toCheckInInfo(checkin), trend, nil
}

// Trend reports how the athlete's enjoyment is moving
func (s *AthleticService) Trend(ctx context.Context, familyID, athleteID uuid.UUID) (*TrendInfo, error) {
	if _, err := s.findOwnedAthlete(ctx, familyID, athleteID); err != nil {
		return nil, err
	}
	return s.trend(ctx, athleteID)
}

func (s *AthleticService) trend(ctx context.Context, athleteID uuid.UUID) (*TrendInfo, error) {
	checkins, err := s.checkInRepo.ListByAthlete(ctx, athleteID, trendCheckInLimit)
	if err != nil {
		return nil, err
	}

	trend := athletic.AnalyzeTrend(checkins)
	return &TrendInfo{
		Direction: string(trend.Direction),
		Delta:     trend.Delta,
		Message:   trend.Message,
	}, nil
}

func (s *AthleticService) findOwnedAthlete(ctx context.Context, familyID, athleteID uuid.UUID) (*athletic.Athlete, error) {
	athlete, err := s.athleteRepo.FindByID(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	if athlete.FamilyID != familyID {
		return nil, shared.ErrNotFound
	}
	return athlete, nil
}

func (s *AthleticService) toAthleteInfo(ctx context.Context, a *athletic.Athlete) *AthleteInfo {
	info := &AthleteInfo{
		ID:         a.ID,
		ChildID:    a.ChildID,
		SportID:    a.SportID,
		SkillLevel: string(a.SkillLevel),
		Goals:      a.Goals,
		CreatedAt:  a.CreatedAt,
	}
	if sport, err := s.sportRepo.FindByID(ctx, a.SportID); err == nil {
		info.SportName = sport.Name
	}
	return info
}

func toActivityLogInfo(log *athletic.ActivityLog) *ActivityLogInfo {
	return &ActivityLogInfo{
		ID:              log.ID,
		AthleteID:       log.AthleteID,
		Date:            log.Date,
		DurationMinutes: log.DurationMinutes,
		Intensity:       log.Intensity,
		Notes:           log.Notes,
	}
}

func toCheckInInfo(c *athletic.FunCheckIn) *CheckInInfo {
	return &CheckInInfo{
		ID:        c.ID,
		AthleteID: c.AthleteID,
		Date:      c.Date,
		Enjoyment: c.Enjoyment,
		MoodNote:  c.MoodNote,
	}
}
