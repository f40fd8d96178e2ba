package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lifecurriculum/backend/internal/application/progress"
)

// ProgressHandler handles milestone and activity progress requests
type ProgressHandler struct {
	BaseHandler
	progressService *progress.ProgressService
}

// NewProgressHandler creates a progress handler
func NewProgressHandler(progressService *progress.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// RecordMilestone records or updates progress against a milestone
func (h *ProgressHandler) RecordMilestone(c *gin.Context) {
	familyID, childID, ok := h.scope(c)
	if !ok {
		return
	}

	var input progress.RecordMilestoneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}
	input.FamilyID = familyID
	input.ChildID = childID

	record, err := h.progressService.RecordMilestone(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// RecordActivity records or updates progress against an activity
func (h *ProgressHandler) RecordActivity(c *gin.Context) {
	familyID, childID, ok := h.scope(c)
	if !ok {
		return
	}

	var input progress.RecordActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}
	input.FamilyID = familyID
	input.ChildID = childID

	record, err := h.progressService.RecordActivity(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// ListByChild returns all progress records for a child
func (h *ProgressHandler) ListByChild(c *gin.Context) {
	familyID, childID, ok := h.scope(c)
	if !ok {
		return
	}

	records, err := h.progressService.ListByChild(c.Request.Context(), familyID, childID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

// RequestPhotoUpload presigns a progress photo upload slot
func (h *ProgressHandler) RequestPhotoUpload(c *gin.Context) {
	familyID, childID, ok := h.scope(c)
	if !ok {
		return
	}
	recordID, err := pathUUID(c, "recordId")
	if err != nil {
		h.BadRequest(c, "Invalid record ID")
		return
	}

	var input progress.PhotoUploadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}
	input.FamilyID = familyID
	input.ChildID = childID
	input.RecordID = recordID

	upload, err := h.progressService.RequestPhotoUpload(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, upload)
}

// Delete removes a progress record
func (h *ProgressHandler) Delete(c *gin.Context) {
	familyID, childID, ok := h.scope(c)
	if !ok {
		return
	}
	recordID, err := pathUUID(c, "recordId")
	if err != nil {
		h.BadRequest(c, "Invalid record ID")
		return
	}

	if err := h.progressService.Delete(c.Request.Context(), familyID, childID, recordID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Summary returns the per-domain progress overview for a child
func (h *ProgressHandler) Summary(c *gin.Context) {
	familyID, childID, ok := h.scope(c)
	if !ok {
		return
	}

	summary, err := h.progressService.Summary(c.Request.Context(), familyID, childID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

func (h *ProgressHandler) scope(c *gin.Context) (familyID, childID uuid.UUID, ok bool) {
	familyID, err := getFamilyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	childID, err = pathUUID(c, "childId")
	if err != nil {
		h.BadRequest(c, "Invalid child ID")
		return uuid.Nil, uuid.Nil, false
	}
	return familyID, childID, true
}
