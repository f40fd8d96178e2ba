package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lifecurriculum/backend/internal/application/curriculum"
)

// CurriculumHandler serves the read-only curriculum catalog
type CurriculumHandler struct {
	BaseHandler
	curriculumService *curriculum.CurriculumService
}

// NewCurriculumHandler creates a curriculum handler
func NewCurriculumHandler(curriculumService *curriculum.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{curriculumService: curriculumService}
}

// ListStages returns all age stages in order
func (h *CurriculumHandler) ListStages(c *gin.Context) {
	stages, err := h.curriculumService.ListStages(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stages)
}

// ListDomains returns all development domains
func (h *CurriculumHandler) ListDomains(c *gin.Context) {
	domains, err := h.curriculumService.ListDomains(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, domains)
}

// ListMilestones returns milestones, optionally filtered by stage and domain
func (h *CurriculumHandler) ListMilestones(c *gin.Context) {
	var query curriculum.MilestoneQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	milestones, err := h.curriculumService.ListMilestones(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, milestones)
}

// GetMilestone returns one milestone
func (h *CurriculumHandler) GetMilestone(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid milestone ID")
		return
	}

	milestone, err := h.curriculumService.GetMilestone(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, milestone)
}

// ListActivitiesByStage returns the suggested activities for a stage
func (h *CurriculumHandler) ListActivitiesByStage(c *gin.Context) {
	stageID, err := pathUUID(c, "stageId")
	if err != nil {
		h.BadRequest(c, "Invalid stage ID")
		return
	}

	activities, err := h.curriculumService.ListActivitiesByStage(c.Request.Context(), stageID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, activities)
}

// GetActivity returns one activity
func (h *CurriculumHandler) GetActivity(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid activity ID")
		return
	}

	activity, err := h.curriculumService.GetActivity(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, activity)
}

// StageForChild returns the stage a child currently falls into along
// with that stage's milestones and activities
func (h *CurriculumHandler) StageForChild(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	childID, err := pathUUID(c, "childId")
	if err != nil {
		h.BadRequest(c, "Invalid child ID")
		return
	}

	stage, err := h.curriculumService.StageForChild(c.Request.Context(), familyID, childID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stage)
}
