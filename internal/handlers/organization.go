package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/planbase/planbase/internal/middleware"
	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/services"
	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/pkg/response"
)

type OrganizationHandler struct {
	store       storage.Store
	invitations *services.InvitationService
}

func NewOrganizationHandler(store storage.Store, invitations *services.InvitationService) *OrganizationHandler {
	return &OrganizationHandler{store: store, invitations: invitations}
}

// List returns the caller's organizations
// GET /api/organizations
func (h *OrganizationHandler) List(c *gin.Context) {
	orgs, err := h.store.ListOrganizationsByUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, orgs)
}

// GetByID returns one organization
// GET /api/organizations/:id
func (h *OrganizationHandler) GetByID(c *gin.Context) {
	orgID := c.Param("id")
	if !requireOrgMember(c, h.store, orgID, middleware.GetUserID(c)) {
		return
	}

	org, err := h.store.GetOrganization(c.Request.Context(), orgID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, org)
}

type createOrganizationRequest struct {
	Name         string `json:"name" binding:"required"`
	ContactEmail string `json:"contactEmail"`
	Address      string `json:"address"`
}

// Create creates an organization with the caller as admin
// POST /api/organizations
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req createOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	org := models.Organization{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		Address:      req.Address,
		OwnerID:      middleware.GetUserID(c),
	}
	if err := h.store.CreateOrganization(c.Request.Context(), &org); err != nil {
		fail(c, err)
		return
	}
	response.Created(c, org)
}

type updateOrganizationRequest struct {
	Name         *string `json:"name"`
	ContactEmail *string `json:"contactEmail"`
	Address      *string `json:"address"`
}

// Update modifies organization settings (admin only)
// PUT /api/organizations/:id
func (h *OrganizationHandler) Update(c *gin.Context) {
	orgID := c.Param("id")
	if !requireOrgAdmin(c, h.store, orgID, middleware.GetUserID(c)) {
		return
	}

	var req updateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	org, err := h.store.UpdateOrganization(c.Request.Context(), orgID, storage.OrganizationPatch{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		Address:      req.Address,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, org)
}

// ListMembers returns members with user info
// GET /api/organizations/:id/members
func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	orgID := c.Param("id")
	if !requireOrgMember(c, h.store, orgID, middleware.GetUserID(c)) {
		return
	}

	members, err := h.store.ListOrganizationMembers(c.Request.Context(), orgID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, members)
}

type addMemberRequest struct {
	UserID string `json:"userId" binding:"required"`
	Role   string `json:"role"`
}

// AddMember adds a user to the organization (admin only)
// POST /api/organizations/:id/members
func (h *OrganizationHandler) AddMember(c *gin.Context) {
	orgID := c.Param("id")
	if !requireOrgAdmin(c, h.store, orgID, middleware.GetUserID(c)) {
		return
	}

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	role := req.Role
	if role == "" {
		role = models.OrgRoleMember
	}
	member, err := h.store.AddOrganizationMember(c.Request.Context(), &models.OrganizationMember{
		OrganizationID: orgID,
		UserID:         req.UserID,
		Role:           role,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, member)
}

// RemoveMember removes a user from the organization (admin only)
// DELETE /api/organizations/:id/members/:userId
func (h *OrganizationHandler) RemoveMember(c *gin.Context) {
	orgID := c.Param("id")
	if !requireOrgAdmin(c, h.store, orgID, middleware.GetUserID(c)) {
		return
	}

	if err := h.store.RemoveOrganizationMember(c.Request.Context(), orgID, c.Param("userId")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"message": "member removed"})
}

// Invite creates an invitation (admin only)
// POST /api/organizations/:id/invitations
func (h *OrganizationHandler) Invite(c *gin.Context) {
	orgID := c.Param("id")
	userID := middleware.GetUserID(c)
	if !requireOrgAdmin(c, h.store, orgID, userID) {
		return
	}

	var req services.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	invitation, err := h.invitations.Invite(c.Request.Context(), orgID, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, invitation)
}

// ListInvitations returns the organization's invitations (admin only)
// GET /api/organizations/:id/invitations
func (h *OrganizationHandler) ListInvitations(c *gin.Context) {
	orgID := c.Param("id")
	if !requireOrgAdmin(c, h.store, orgID, middleware.GetUserID(c)) {
		return
	}

	invitations, err := h.store.ListInvitationsByOrganization(c.Request.Context(), orgID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, invitations)
}

type acceptInvitationRequest struct {
	Token string `json:"token" binding:"required"`
}

// AcceptInvitation redeems an invitation token for the caller
// POST /api/invitations/accept
func (h *OrganizationHandler) AcceptInvitation(c *gin.Context) {
	var req acceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	org, err := h.invitations.Accept(c.Request.Context(), middleware.GetUserID(c), req.Token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, org)
}
