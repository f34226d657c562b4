package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/planbase/planbase/internal/middleware"
	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/services"
	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/pkg/response"
)

type ProjectHandler struct {
	store  storage.Store
	notify *services.NotifyService
}

func NewProjectHandler(store storage.Store, notify *services.NotifyService) *ProjectHandler {
	return &ProjectHandler{store: store, notify: notify}
}

// List returns the caller's projects, optionally scoped to one organization
// GET /api/projects?organizationId=...
func (h *ProjectHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if orgID := c.Query("organizationId"); orgID != "" {
		if !requireOrgMember(c, h.store, orgID, userID) {
			return
		}
		projects, err := h.store.ListProjectsByOrganization(c.Request.Context(), orgID)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, projects)
		return
	}

	projects, err := h.store.ListProjectsByUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, projects)
}

// GetByID returns a project by ID
// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProjectAccess(c, h.store, projectID, middleware.GetUserID(c)) {
		return
	}

	project, err := h.store.GetProject(c.Request.Context(), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, project)
}

type createProjectRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	OrganizationID string `json:"organizationId" binding:"required"`
	IsPrivate      bool   `json:"isPrivate"`
}

// Create creates a new project in an organization the caller belongs to
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	if !requireOrgMember(c, h.store, req.OrganizationID, userID) {
		return
	}

	project := models.Project{
		Name:           req.Name,
		Description:    req.Description,
		OrganizationID: req.OrganizationID,
		IsPrivate:      req.IsPrivate,
		CreatedBy:      userID,
	}
	if err := h.store.CreateProject(c.Request.Context(), &project); err != nil {
		fail(c, err)
		return
	}

	// The creator is always a direct member, so private projects stay visible
	// to them.
	if _, err := h.store.AddProjectMember(c.Request.Context(), &models.ProjectMember{
		ProjectID: project.ID,
		UserID:    userID,
		Role:      models.OrgRoleAdmin,
	}); err != nil {
		fail(c, err)
		return
	}

	response.Created(c, project)
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPrivate   *bool   `json:"isPrivate"`
}

// Update modifies a project
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProjectAccess(c, h.store, projectID, middleware.GetUserID(c)) {
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.store.UpdateProject(c.Request.Context(), projectID, storage.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, project)
}

// Delete removes a project and everything under it
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID := c.Param("id")
	userID := middleware.GetUserID(c)

	project, err := h.store.GetProject(c.Request.Context(), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	if !requireOrgAdmin(c, h.store, project.OrganizationID, userID) {
		return
	}

	if err := h.store.DeleteProject(c.Request.Context(), projectID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"message": "project deleted"})
}

// ListMembers returns project members with user info
// GET /api/projects/:id/members
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProjectAccess(c, h.store, projectID, middleware.GetUserID(c)) {
		return
	}

	members, err := h.store.ListProjectMembers(c.Request.Context(), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, members)
}

// AddMember adds a user to the project
// POST /api/projects/:id/members
func (h *ProjectHandler) AddMember(c *gin.Context) {
	projectID := c.Param("id")
	actorID := middleware.GetUserID(c)
	if !requireProjectAccess(c, h.store, projectID, actorID) {
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
	member, err := h.store.AddProjectMember(c.Request.Context(), &models.ProjectMember{
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      role,
	})
	if err != nil {
		fail(c, err)
		return
	}

	if project, err := h.store.GetProject(c.Request.Context(), projectID); err == nil {
		h.notify.AddedToProject(project, req.UserID, actorID)
	}

	response.Created(c, member)
}

// RemoveMember removes a user from the project
// DELETE /api/projects/:id/members/:userId
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProjectAccess(c, h.store, projectID, middleware.GetUserID(c)) {
		return
	}

	if err := h.store.RemoveProjectMember(c.Request.Context(), projectID, c.Param("userId")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"message": "member removed"})
}
