package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lifecurriculum/backend/internal/application/resource"
)

// ResourceHandler serves the parenting resource library
type ResourceHandler struct {
	BaseHandler
	resourceService *resource.ResourceService
}

// NewResourceHandler creates a resource handler
func NewResourceHandler(resourceService *resource.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// List returns resources matching the query filters
func (h *ResourceHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query resource.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	list, err := h.resourceService.List(c.Request.Context(), userID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, list.Resources, list.Total, list.Offset, list.Limit)
}

// Get returns one resource and counts the view
func (h *ResourceHandler) Get(c *gin.Context) {
	userID, resourceID, ok := h.scope(c)
	if !ok {
		return
	}

	info, err := h.resourceService.Get(c.Request.Context(), userID, resourceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// Bookmark saves a resource to the caller's bookmarks
func (h *ResourceHandler) Bookmark(c *gin.Context) {
	userID, resourceID, ok := h.scope(c)
	if !ok {
		return
	}

	if err := h.resourceService.Bookmark(c.Request.Context(), userID, resourceID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"bookmarked": true})
}

// Unbookmark removes a resource from the caller's bookmarks
func (h *ResourceHandler) Unbookmark(c *gin.Context) {
	userID, resourceID, ok := h.scope(c)
	if !ok {
		return
	}

	if err := h.resourceService.Unbookmark(c.Request.Context(), userID, resourceID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListBookmarks returns the caller's bookmarked resources
func (h *ResourceHandler) ListBookmarks(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resources, err := h.resourceService.ListBookmarks(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resources)
}

func (h *ResourceHandler) scope(c *gin.Context) (userID, resourceID uuid.UUID, ok bool) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	resourceID, err = pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid resource ID")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, resourceID, true
}
