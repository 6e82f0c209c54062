package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskman/taskman/internal/middleware"
	"github.com/taskman/taskman/internal/services"
	"github.com/taskman/taskman/pkg/response"
	"gorm.io/gorm"
)

type InvitationHandler struct {
	invitationService *services.InvitationService
}

func NewInvitationHandler(db *gorm.DB, dispatcher *services.Dispatcher) *InvitationHandler {
	projects := services.NewProjectService(db, dispatcher)
	return &InvitationHandler{
		invitationService: services.NewInvitationService(db, projects, dispatcher),
	}
}

// Create fans out invitations to a list of email addresses
// POST /api/invitations/create
func (h *InvitationHandler) Create(c *gin.Context) {
	var req services.CreateInvitationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.invitationService.CreateBatch(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, resp)
}

// ListForEmail returns pending invitations for an email address
// GET /api/invitations/user/:email
func (h *InvitationHandler) ListForEmail(c *gin.Context) {
	invitations, err := h.invitationService.ListPendingByEmail(c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, invitations)
}

// Accept accepts a pending invitation and joins the project
// POST /api/invitations/:id/accept
func (h *InvitationHandler) Accept(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid invitation id")
		return
	}

	resp, err := h.invitationService.Accept(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, resp)
}

// Reject declines a pending invitation
// POST /api/invitations/:id/reject
func (h *InvitationHandler) Reject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid invitation id")
		return
	}

	resp, err := h.invitationService.Reject(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, resp)
}
