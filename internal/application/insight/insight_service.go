package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lifecurriculum/backend/internal/domain/athletic"
	"github.com/lifecurriculum/backend/internal/domain/child"
	"github.com/lifecurriculum/backend/internal/domain/curriculum"
	"github.com/lifecurriculum/backend/internal/domain/insight"
	"github.com/lifecurriculum/backend/internal/domain/progress"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/ai"
)

const analysisSystemPrompt = `You are a child development analyst. Given a child's age, milestone
progress, logged activities and sports, identify what the child gravitates toward.
Respond with a JSON object with three string arrays: "interests", "strengths" and
"suggestions". Each array holds 3 to 5 short phrases.`

const roadmapSystemPrompt = `You are a child development planner. Build a 12-week activity plan
tailored to the child's age, interests and strengths. Respond with a JSON object holding a
"weeks" array of exactly 12 entries. Each entry has "week" (1-12), "focus" (one sentence),
"activities" (2-3 short phrases) and "goals" (1-2 short phrases).`

// InsightService derives AI analysis artifacts from a child's history
type InsightService struct {
	interestRepo   insight.InterestRepository
	roadmapRepo    insight.RoadmapRepository
	childRepo      child.Repository
	progressRepo   progress.Repository
	curriculumRepo curriculum.Repository
	athleteRepo    athletic.AthleteRepository
	checkInRepo    athletic.CheckInRepository
	aiClient       ai.Client
	logger         *zap.Logger
}

// NewInsightService creates an insight service
func NewInsightService(
	interestRepo insight.InterestRepository,
	roadmapRepo insight.RoadmapRepository,
	childRepo child.Repository,
	progressRepo progress.Repository,
	curriculumRepo curriculum.Repository,
	athleteRepo athletic.AthleteRepository,
	checkInRepo athletic.CheckInRepository,
	aiClient ai.Client,
	logger *zap.Logger,
) *InsightService {
	return &InsightService{
		interestRepo:   interestRepo,
		roadmapRepo:    roadmapRepo,
		childRepo:      childRepo,
		progressRepo:   progressRepo,
		curriculumRepo: curriculumRepo,
		athleteRepo:    athleteRepo,
		checkInRepo:    checkInRepo,
		aiClient:       aiClient,
		logger:         logger,
	}
}

// AnalyzeInterests asks the model to distill an interest profile from the
// child's history. A new analysis replaces the stored one.
func (s *InsightService) AnalyzeInterests(ctx context.Context, familyID, childID uuid.UUID) (*InterestProfileInfo, error) {
	c, err := s.findOwnedChild(ctx, familyID, childID)
	if err != nil {
		return nil, err
	}

	prompt, err := s.buildChildContext(ctx, c)
	if err != nil {
		return nil, err
	}

	raw, err := s.aiClient.CompleteJSON(ctx, analysisSystemPrompt, prompt)
	if err != nil {
		s.logger.Error("interest analysis failed",
			zap.String("child_id", childID.String()), zap.Error(err))
		return nil, shared.NewDomainError("ANALYSIS_UNAVAILABLE", "Interest analysis is unavailable right now")
	}

	var analysis interestAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		s.logger.Error("interest analysis returned malformed JSON", zap.Error(err))
		return nil, shared.NewDomainError("ANALYSIS_UNAVAILABLE", "Interest analysis is unavailable right now")
	}
	if len(analysis.Interests) == 0 {
		return nil, shared.NewDomainError("ANALYSIS_UNAVAILABLE", "Interest analysis returned no result")
	}

	profile := insight.NewInterestProfile(familyID, childID, analysis.Interests, analysis.Strengths, analysis.Suggestions)
	if err := s.interestRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return toProfileInfo(profile), nil
}

// GetInterestProfile returns the stored analysis for the child
func (s *InsightService) GetInterestProfile(ctx context.Context, familyID, childID uuid.UUID) (*InterestProfileInfo, error) {
	if _, err := s.findOwnedChild(ctx, familyID, childID); err != nil {
		return nil, err
	}

	profile, err := s.interestRepo.FindLatestByChild(ctx, childID)
	if err != nil {
		return nil, err
	}
	return toProfileInfo(profile), nil
}

// GenerateRoadmap asks the model for a 12-week plan grounded in the child's
// interest profile. Requires a prior interest analysis.
func (s *InsightService) GenerateRoadmap(ctx context.Context, familyID, childID uuid.UUID) (*RoadmapInfo, error) {
	c, err := s.findOwnedChild(ctx, familyID, childID)
	if err != nil {
		return nil, err
	}

	profile, err := s.interestRepo.FindLatestByChild(ctx, childID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("PROFILE_REQUIRED", "Run an interest analysis before generating a roadmap")
		}
		return nil, err
	}

	prompt := fmt.Sprintf(
		"Child age: %d months.\nInterests: %s.\nStrengths: %s.\nSuggestions so far: %s.",
		c.AgeInMonths(time.Now()),
		strings.Join(profile.Interests, "; "),
		strings.Join(profile.Strengths, "; "),
		strings.Join(profile.Suggestions, "; "),
	)

	raw, err := s.aiClient.CompleteJSON(ctx, roadmapSystemPrompt, prompt)
	if err != nil {
		s.logger.Error("roadmap generation failed",
			zap.String("child_id", childID.String()), zap.Error(err))
		return nil, shared.NewDomainError("ROADMAP_UNAVAILABLE", "Roadmap generation is unavailable right now")
	}

	var plan roadmapPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		s.logger.Error("roadmap generation returned malformed JSON", zap.Error(err))
		return nil, shared.NewDomainError("ROADMAP_UNAVAILABLE", "Roadmap generation is unavailable right now")
	}

	weeks := make([]insight.RoadmapWeek, 0, len(plan.Weeks))
	for _, w := range plan.Weeks {
		weeks = append(weeks, insight.RoadmapWeek{
			Week:       w.Week,
			Focus:      w.Focus,
			Activities: w.Activities,
			Goals:      w.Goals,
		})
	}

	roadmap, err := insight.NewRoadmap(familyID, childID, weeks)
	if err != nil {
		s.logger.Error("roadmap failed validation", zap.Error(err))
		return nil, shared.NewDomainError("ROADMAP_UNAVAILABLE", "Roadmap generation returned an invalid plan")
	}

	if err := s.roadmapRepo.Save(ctx, roadmap); err != nil {
		return nil, err
	}
	return toRoadmapInfo(roadmap), nil
}

// GetRoadmap returns the stored roadmap for the child
func (s *InsightService) GetRoadmap(ctx context.Context, familyID, childID uuid.UUID) (*RoadmapInfo, error) {
	if _, err := s.findOwnedChild(ctx, familyID, childID); err != nil {
		return nil, err
	}

	roadmap, err := s.roadmapRepo.FindLatestByChild(ctx, childID)
	if err != nil {
		return nil, err
	}
	return toRoadmapInfo(roadmap), nil
}

// buildChildContext flattens the child's history into a prompt for analysis
func (s *InsightService) buildChildContext(ctx context.Context, c *child.Child) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Child age: %d months.\n", c.AgeInMonths(time.Now()))

	records, err := s.progressRepo.ListByChild(ctx, c.ID)
	if err != nil {
		return "", err
	}
	var achieved, inProgress []string
	for _, r := range records {
		if !r.TargetsMilestone() {
			continue
		}
		m, err := s.curriculumRepo.FindMilestoneByID(ctx, *r.MilestoneID)
		if err != nil {
			continue
		}
		switch r.Status {
		case progress.StatusAchieved:
			achieved = append(achieved, m.Title)
		case progress.StatusInProgress:
			inProgress = append(inProgress, m.Title)
		}
	}
	if len(achieved) > 0 {
		fmt.Fprintf(&b, "Achieved milestones: %s.\n", strings.Join(achieved, "; "))
	}
	if len(inProgress) > 0 {
		fmt.Fprintf(&b, "Milestones in progress: %s.\n", strings.Join(inProgress, "; "))
	}

	athletes, err := s.athleteRepo.ListByChild(ctx, c.ID)
	if err != nil {
		return "", err
	}
	for _, a := range athletes {
		checkins, err := s.checkInRepo.ListByAthlete(ctx, a.ID, 6)
		if err != nil {
			return "", err
		}
		trend := athletic.AnalyzeTrend(checkins)
		fmt.Fprintf(&b, "Sport (skill %s, goals: %s), enjoyment trend: %s.\n",
			a.SkillLevel, a.Goals, trend.Direction)
	}

	return b.String(), nil
}

func (s *InsightService) findOwnedChild(ctx context.Context, familyID, childID uuid.UUID) (*child.Child, error) {
	c, err := s.childRepo.FindByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if c.FamilyID != familyID {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func toProfileInfo(p *insight.InterestProfile) *InterestProfileInfo {
	return &InterestProfileInfo{
		ID:          p.ID,
		ChildID:     p.ChildID,
		Interests:   p.Interests,
		Strengths:   p.Strengths,
		Suggestions: p.Suggestions,
		GeneratedAt: p.GeneratedAt,
	}
}

func toRoadmapInfo(r *insight.Roadmap) *RoadmapInfo {
	info := &RoadmapInfo{
		ID:          r.ID,
		ChildID:     r.ChildID,
		Weeks:       make([]*RoadmapWeekInfo, 0, len(r.Weeks)),
		GeneratedAt: r.GeneratedAt,
	}
	for i := range r.Weeks {
		w := r.Weeks[i]
		info.Weeks = append(info.Weeks, &RoadmapWeekInfo{
			Week:       w.Week,
			Focus:      w.Focus,
			Activities: w.Activities,
			Goals:      w.Goals,
		})
	}
	return info
}
