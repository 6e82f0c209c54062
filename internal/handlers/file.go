package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskman/taskman/internal/middleware"
	"github.com/taskman/taskman/internal/services"
	"github.com/taskman/taskman/pkg/response"
	"gorm.io/gorm"
)

type FileHandler struct {
	fileService *services.FileService
}

func NewFileHandler(db *gorm.DB) *FileHandler {
	return &FileHandler{
		fileService: services.NewFileService(db),
	}
}

// ListByProject returns a project's files
// GET /api/files/project/:projectId
func (h *FileHandler) ListByProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid project id")
		return
	}

	files, err := h.fileService.ListByProject(uint(projectID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, files)
}

// GetByID returns a file record
// GET /api/files/:id
func (h *FileHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid file id")
		return
	}

	file, err := h.fileService.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, file)
}

// Create registers an uploaded file
// POST /api/files
func (h *FileHandler) Create(c *gin.Context) {
	var req services.CreateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	file, err := h.fileService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, file)
}

// Download streams stored content or redirects to the external URL
// GET /api/files/:id/download
func (h *FileHandler) Download(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid file id")
		return
	}

	result, err := h.fileService.Download(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.RedirectURL != "" {
		c.Redirect(http.StatusFound, result.RedirectURL)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Name))
	c.Data(http.StatusOK, result.MimeType, result.Data)
}

// Delete removes a file record
// DELETE /api/files/:id
func (h *FileHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid file id")
		return
	}

	if err := h.fileService.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "File deleted successfully")
}
