package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lifecurriculum/backend/internal/application/child"
)

// ChildHandler handles child profile requests
type ChildHandler struct {
	BaseHandler
	childService *child.ChildService
}

// NewChildHandler creates a child handler
func NewChildHandler(childService *child.ChildService) *ChildHandler {
	return &ChildHandler{childService: childService}
}

// Create registers a new child in the caller's family
func (h *ChildHandler) Create(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input child.CreateChildInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}
	input.FamilyID = familyID

	info, err := h.childService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, info)
}

// List returns all children in the caller's family
func (h *ChildHandler) List(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	children, err := h.childService.List(c.Request.Context(), familyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, children)
}

// Get returns one child profile
func (h *ChildHandler) Get(c *gin.Context) {
	familyID, childID, ok := h.scope(c)
	if !ok {
		return
	}

	info, err := h.childService.Get(c.Request.Context(), familyID, childID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// Update changes a child's mutable profile fields
func (h *ChildHandler) Update(c *gin.Context) {
	familyID, childID, ok := h.scope(c)
	if !ok {
		return
	}

	var input child.UpdateChildInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}
	input.FamilyID = familyID
	input.ChildID = childID

	info, err := h.childService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// Delete removes a child profile
func (h *ChildHandler) Delete(c *gin.Context) {
	familyID, childID, ok := h.scope(c)
	if !ok {
		return
	}

	if err := h.childService.Delete(c.Request.Context(), familyID, childID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RequestAvatarUpload presigns an avatar upload slot
func (h *ChildHandler) RequestAvatarUpload(c *gin.Context) {
	familyID, childID, ok := h.scope(c)
	if !ok {
		return
	}

	var input child.AvatarUploadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}
	input.FamilyID = familyID
	input.ChildID = childID

	upload, err := h.childService.RequestAvatarUpload(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, upload)
}

func (h *ChildHandler) scope(c *gin.Context) (familyID, childID uuid.UUID, ok bool) {
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
