package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lifecurriculum/backend/internal/application/insight"
)

// InsightHandler handles interest analysis and roadmap requests
type InsightHandler struct {
	BaseHandler
	insightService *insight.InsightService
}

// NewInsightHandler creates an insight handler
func NewInsightHandler(insightService *insight.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// AnalyzeInterests generates a fresh interest profile for a child
func (h *InsightHandler) AnalyzeInterests(c *gin.Context) {
	familyID, childID, ok := h.scope(c)
	if !ok {
		return
	}

	profile, err := h.insightService.AnalyzeInterests(c.Request.Context(), familyID, childID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, profile)
}

// GetInterestProfile returns the latest interest profile for a child
func (h *InsightHandler) GetInterestProfile(c *gin.Context) {
	familyID, childID, ok := h.scope(c)
	if !ok {
		return
	}

	profile, err := h.insightService.GetInterestProfile(c.Request.Context(), familyID, childID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// GenerateRoadmap builds a new 12-week plan from the latest interest profile
func (h *InsightHandler) GenerateRoadmap(c *gin.Context) {
	familyID, childID, ok := h.scope(c)
	if !ok {
		return
	}

	roadmap, err := h.insightService.GenerateRoadmap(c.Request.Context(), familyID, childID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, roadmap)
}

// GetRoadmap returns the latest roadmap for a child
func (h *InsightHandler) GetRoadmap(c *gin.Context) {
	familyID, childID, ok := h.scope(c)
	if !ok {
		return
	}

	roadmap, err := h.insightService.GetRoadmap(c.Request.Context(), familyID, childID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, roadmap)
}

func (h *InsightHandler) scope(c *gin.Context) (familyID, childID uuid.UUID, ok bool) {
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
