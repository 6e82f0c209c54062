package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskman/taskman/internal/services"
	"github.com/taskman/taskman/pkg/response"
	"gorm.io/gorm"
)

type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
}

func NewAnnouncementHandler(db *gorm.DB) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: services.NewAnnouncementService(db),
	}
}

// List returns the latest active announcements
// GET /api/announcements
func (h *AnnouncementHandler) List(c *gin.Context) {
	anns, err := h.announcementService.ListActive()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, anns)
}

// ListByProject returns a project's active announcements
// GET /api/announcements/project/:projectId
func (h *AnnouncementHandler) ListByProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid project id")
		return
	}

	anns, err := h.announcementService.ListByProject(uint(projectID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, anns)
}

// Create publishes an announcement
// POST /api/announcements
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req services.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ann, err := h.announcementService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, ann)
}

// Delete removes an announcement
// DELETE /api/announcements/:id
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid announcement id")
		return
	}

	if err := h.announcementService.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "Announcement deleted successfully")
}
