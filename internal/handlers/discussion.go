package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskman/taskman/internal/middleware"
	"github.com/taskman/taskman/internal/services"
	"github.com/taskman/taskman/pkg/response"
	"gorm.io/gorm"
)

type DiscussionHandler struct {
	discussionService *services.DiscussionService
}

func NewDiscussionHandler(db *gorm.DB) *DiscussionHandler {
	return &DiscussionHandler{
		discussionService: services.NewDiscussionService(db),
	}
}

// ListByProject returns discussions visible to the authenticated user
// GET /api/discussions/project/:projectId
func (h *DiscussionHandler) ListByProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid project id")
		return
	}

	discussions, err := h.discussionService.ListByProject(uint(projectID), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, discussions)
}

// GetByID returns a discussion if the requester may see it
// GET /api/discussions/:id
func (h *DiscussionHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid discussion id")
		return
	}

	discussion, err := h.discussionService.GetByID(uint(id), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, discussion)
}

// Chat returns the private thread between the requester and another user,
// marking the counterpart's messages read
// GET /api/discussions/chat/:projectId/:userId
func (h *DiscussionHandler) Chat(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid project id")
		return
	}

	otherID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}

	messages, err := h.discussionService.Chat(uint(projectID), middleware.GetUserID(c), uint(otherID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, messages)
}

// UnreadCounts returns unread private message counts grouped by sender
// GET /api/discussions/unread/:projectId/:userId
func (h *DiscussionHandler) UnreadCounts(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid project id")
		return
	}

	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}

	counts, err := h.discussionService.UnreadCounts(uint(projectID), uint(userID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, counts)
}

// Create posts a new discussion message
// POST /api/discussions
func (h *DiscussionHandler) Create(c *gin.Context) {
	var req services.CreateDiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	discussion, err := h.discussionService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, discussion)
}

// Reply appends a reply to a discussion
// POST /api/discussions/:id/reply
func (h *DiscussionHandler) Reply(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid discussion id")
		return
	}

	var req services.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	discussion, err := h.discussionService.AddReply(uint(id), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, discussion)
}

// Delete removes a discussion and its replies
// DELETE /api/discussions/:id
func (h *DiscussionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid discussion id")
		return
	}

	if err := h.discussionService.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "Discussion deleted successfully")
}
