package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lifecurriculum/backend/internal/application/athletic"
)

// AthleticHandler handles sport enrollment and training requests
type AthleticHandler struct {
	BaseHandler
	athleticService *athletic.AthleticService
}

// NewAthleticHandler creates an athletic handler
func NewAthleticHandler(athleticService *athletic.AthleticService) *AthleticHandler {
	return &AthleticHandler{athleticService: athleticService}
}

// ListSports returns the seeded sport catalog
func (h *AthleticHandler) ListSports(c *gin.Context) {
	sports, err := h.athleticService.ListSports(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sports)
}

// CreateAthlete enrolls a child in a sport
func (h *AthleticHandler) CreateAthlete(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input athletic.CreateAthleteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}
	input.FamilyID = familyID

	info, err := h.athleticService.CreateAthlete(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, info)
}

// ListAthletesByChild returns a child's sport enrollments
func (h *AthleticHandler) ListAthletesByChild(c *gin.Context) {
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

	athletes, err := h.athleticService.ListAthletesByChild(c.Request.Context(), familyID, childID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, athletes)
}

// UpdateAthlete changes an athlete's skill level and goals
func (h *AthleticHandler) UpdateAthlete(c *gin.Context) {
	familyID, athleteID, ok := h.scope(c)
	if !ok {
		return
	}

	var input athletic.UpdateAthleteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}
	input.FamilyID = familyID
	input.AthleteID = athleteID

	info, err := h.athleticService.UpdateAthlete(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// DeleteAthlete removes a sport enrollment
func (h *AthleticHandler) DeleteAthlete(c *gin.Context) {
	familyID, athleteID, ok := h.scope(c)
	if !ok {
		return
	}

	if err := h.athleticService.DeleteAthlete(c.Request.Context(), familyID, athleteID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// LogActivity records a training session
func (h *AthleticHandler) LogActivity(c *gin.Context) {
	familyID, athleteID, ok := h.scope(c)
	if !ok {
		return
	}

	var input athletic.LogActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}
	input.FamilyID = familyID
	input.AthleteID = athleteID

	log, err := h.athleticService.LogActivity(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, log)
}

// ListActivity returns an athlete's recent training sessions
func (h *AthleticHandler) ListActivity(c *gin.Context) {
	familyID, athleteID, ok := h.scope(c)
	if !ok {
		return
	}

	logs, err := h.athleticService.ListActivity(c.Request.Context(), familyID, athleteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, logs)
}

// CheckIn records an enjoyment pulse and returns the updated trend
func (h *AthleticHandler) CheckIn(c *gin.Context) {
	familyID, athleteID, ok := h.scope(c)
	if !ok {
		return
	}

	var input athletic.CheckInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}
	input.FamilyID = familyID
	input.AthleteID = athleteID

	checkIn, trend, err := h.athleticService.CheckIn(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"check_in": checkIn, "trend": trend})
}

// Trend reports recent enjoyment movement for an athlete
func (h *AthleticHandler) Trend(c *gin.Context) {
	familyID, athleteID, ok := h.scope(c)
	if !ok {
		return
	}

	trend, err := h.athleticService.Trend(c.Request.Context(), familyID, athleteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, trend)
}

func (h *AthleticHandler) scope(c *gin.Context) (familyID, athleteID uuid.UUID, ok bool) {
	familyID, err := getFamilyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	athleteID, err = pathUUID(c, "athleteId")
	if err != nil {
		h.BadRequest(c, "Invalid athlete ID")
		return uuid.Nil, uuid.Nil, false
	}
	return familyID, athleteID, true
}
