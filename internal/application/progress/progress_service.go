package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lifecurriculum/backend/internal/domain/child"
	"github.com/lifecurriculum/backend/internal/domain/curriculum"
	"github.com/lifecurriculum/backend/internal/domain/progress"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/storage"
)

const (
	photoUploadTTL   = 15 * time.Minute
	photoDownloadTTL = time.Hour
)

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ProgressService records and summarizes a child's developmental progress
type ProgressService struct {
	progressRepo   progress.Repository
	childRepo      child.Repository
	curriculumRepo curriculum.Repository
	storage        storage.ObjectStorage
	logger         *zap.Logger
}

// NewProgressService creates a progress service
func NewProgressService(
	progressRepo progress.Repository,
	childRepo child.Repository,
	curriculumRepo curriculum.Repository,
	objectStorage storage.ObjectStorage,
	logger *zap.Logger,
) *ProgressService {
	return &ProgressService{
		progressRepo:   progressRepo,
		childRepo:      childRepo,
		curriculumRepo: curriculumRepo,
		storage:        objectStorage,
		logger:         logger,
	}
}

// RecordMilestone records or updates the child's progress on a milestone.
// A second call for the same child and milestone updates the existing record.
func (s *ProgressService) RecordMilestone(ctx context.Context, input RecordMilestoneInput) (*RecordInfo, error) {
	if _, err := s.findOwnedChild(ctx, input.FamilyID, input.ChildID); err != nil {
		return nil, err
	}
	if _, err := s.curriculumRepo.FindMilestoneByID(ctx, input.MilestoneID); err != nil {
		return nil, err
	}

	existing, err := s.progressRepo.FindByChildAndMilestone(ctx, input.ChildID, input.MilestoneID)
	switch {
	case err == nil:
		if err := existing.UpdateStatus(progress.Status(input.Status), input.Notes); err != nil {
			return nil, err
		}
	case shared.IsNotFound(err):
		existing, err = progress.NewMilestoneRecord(input.FamilyID, input.ChildID, input.MilestoneID, progress.Status(input.Status), input.Notes)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.progressRepo.Upsert(ctx, existing); err != nil {
		return nil, err
	}
	return s.toRecordInfo(ctx, existing), nil
}

// RecordActivity records or updates the child's progress on an activity
func (s *ProgressService) RecordActivity(ctx context.Context, input RecordActivityInput) (*RecordInfo, error) {
	if _, err := s.findOwnedChild(ctx, input.FamilyID, input.ChildID); err != nil {
		return nil, err
	}
	if _, err := s.curriculumRepo.FindActivityByID(ctx, input.ActivityID); err != nil {
		return nil, err
	}

	existing, err := s.progressRepo.FindByChildAndActivity(ctx, input.ChildID, input.ActivityID)
	switch {
	case err == nil:
		if err := existing.UpdateStatus(progress.Status(input.Status), input.Notes); err != nil {
			return nil, err
		}
	case shared.IsNotFound(err):
		existing, err = progress.NewActivityRecord(input.FamilyID, input.ChildID, input.ActivityID, progress.Status(input.Status), input.Notes)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.progressRepo.Upsert(ctx, existing); err != nil {
		return nil, err
	}
	return s.toRecordInfo(ctx, existing), nil
}

// ListByChild returns all progress records for one child
func (s *ProgressService) ListByChild(ctx context.Context, familyID, childID uuid.UUID) ([]*RecordInfo, error) {
	if _, err := s.findOwnedChild(ctx, familyID, childID); err != nil {
		return nil, err
	}

	records, err := s.progressRepo.ListByChild(ctx, childID)
	if err != nil {
		return nil, err
	}

	infos := make([]*RecordInfo, 0, len(records))
	for _, r := range records {
		infos = append(infos, s.toRecordInfo(ctx, r))
	}
	return infos, nil
}

// RequestPhotoUpload issues a presigned PUT URL for a photo attached to a
// progress record
func (s *ProgressService) RequestPhotoUpload(ctx context.Context, input PhotoUploadInput) (*PhotoUpload, error) {
	if _, err := s.findOwnedChild(ctx, input.FamilyID, input.ChildID); err != nil {
		return nil, err
	}

	record, err := s.progressRepo.FindByID(ctx, input.RecordID)
	if err != nil {
		return nil, err
	}
	if record.ChildID != input.ChildID {
		return nil, shared.ErrNotFound
	}

	ext, ok := photoExtensions[input.ContentType]
	if !ok {
		return nil, shared.NewDomainError("UNSUPPORTED_CONTENT_TYPE", "Photo must be a JPEG, PNG or WebP image")
	}

	key := storage.ProgressPhotoKey(input.ChildID, record.ID, ext)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, input.ContentType, photoUploadTTL)
	if err != nil {
		return nil, err
	}

	record.AttachPhoto(key)
	if err := s.progressRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	return &PhotoUpload{UploadURL: url, Key: key, ExpiresAt: expiresAt}, nil
}

// Delete removes one progress record
func (s *ProgressService) Delete(ctx context.Context, familyID, childID, recordID uuid.UUID) error {
	if _, err := s.findOwnedChild(ctx, familyID, childID); err != nil {
		return err
	}

	record, err := s.progressRepo.FindByID(ctx, recordID)
	if err != nil {
		return err
	}
	if record.ChildID != childID {
		return shared.ErrNotFound
	}
	return s.progressRepo.Delete(ctx, record.ID)
}

// Summary aggregates the child's milestone progress per development domain.
// Total counts every milestone in the curriculum for the domain, so untouched
// milestones weigh against the percentage.
func (s *ProgressService) Summary(ctx context.Context, familyID, childID uuid.UUID) (*ChildSummary, error) {
	if _, err := s.findOwnedChild(ctx, familyID, childID); err != nil {
		return nil, err
	}

	domains, err := s.curriculumRepo.ListDomains(ctx)
	if err != nil {
		return nil, err
	}
	milestones, err := s.curriculumRepo.ListMilestones(ctx, curriculum.MilestoneFilter{})
	if err != nil {
		return nil, err
	}
	records, err := s.progressRepo.ListByChild(ctx, childID)
	if err != nil {
		return nil, err
	}

	statusByMilestone := make(map[uuid.UUID]progress.Status, len(records))
	for _, r := range records {
		if r.TargetsMilestone() {
			statusByMilestone[*r.MilestoneID] = r.Status
		}
	}

	milestoneDomain := make(map[uuid.UUID]uuid.UUID, len(milestones))
	totals := make(map[uuid.UUID]*DomainSummaryInfo, len(domains))
	for _, d := range domains {
		totals[d.ID] = &DomainSummaryInfo{DomainID: d.ID, DomainName: d.Name}
	}
	for _, m := range milestones {
		milestoneDomain[m.ID] = m.DomainID
		if summary, ok := totals[m.DomainID]; ok {
			summary.Total++
		}
	}

	summary := &ChildSummary{ChildID: childID}
	for id, status := range statusByMilestone {
		domainID, ok := milestoneDomain[id]
		if !ok {
			continue
		}
		ds := totals[domainID]
		switch status {
		case progress.StatusAchieved:
			ds.Achieved++
		case progress.StatusInProgress:
			ds.InProgress++
		}
	}

	for _, d := range domains {
		ds := totals[d.ID]
		if ds.Total > 0 {
			ds.Percent = float64(ds.Achieved) / float64(ds.Total) * 100
		}
		summary.Achieved += ds.Achieved
		summary.Total += ds.Total
		summary.Domains = append(summary.Domains, ds)
	}
	return summary, nil
}

func (s *ProgressService) findOwnedChild(ctx context.Context, familyID, childID uuid.UUID) (*child.Child, error) {
	c, err := s.childRepo.FindByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if c.FamilyID != familyID {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (s *ProgressService) toRecordInfo(ctx context.Context, r *progress.Record) *RecordInfo {
	info := &RecordInfo{
		ID:          r.ID,
		ChildID:     r.ChildID,
		MilestoneID: r.MilestoneID,
		ActivityID:  r.ActivityID,
		Status:      string(r.Status),
		AchievedAt:  r.AchievedAt,
		Notes:       r.Notes,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.PhotoKey != nil {
		url, _, err := s.storage.GenerateDownloadURL(ctx, *r.PhotoKey, photoDownloadTTL)
		if err != nil {
			s.logger.Warn("photo url generation failed",
				zap.String("record_id", r.ID.String()), zap.Error(err))
		} else {
			info.PhotoURL = &url
		}
	}
	return info
}
