package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lifecurriculum/backend/internal/application/family"
)

// FamilyHandler handles family account requests
type FamilyHandler struct {
	BaseHandler
	familyService *family.FamilyService
}

// NewFamilyHandler creates a family handler
func NewFamilyHandler(familyService *family.FamilyService) *FamilyHandler {
	return &FamilyHandler{familyService: familyService}
}

// Get returns the caller's family
func (h *FamilyHandler) Get(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.familyService.Get(c.Request.Context(), familyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// Rename updates the family display name
func (h *FamilyHandler) Rename(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input family.RenameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}
	input.FamilyID = familyID

	info, err := h.familyService.Rename(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// ChangeTier moves the family between subscription tiers
func (h *FamilyHandler) ChangeTier(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input family.ChangeTierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}
	input.FamilyID = familyID

	info, err := h.familyService.ChangeTier(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// ListMembers returns the family's user accounts
func (h *FamilyHandler) ListMembers(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	members, err := h.familyService.ListMembers(c.Request.Context(), familyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, members)
}
