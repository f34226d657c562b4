package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/planbase/planbase/internal/middleware"
	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/pkg/response"
)

type MilestoneHandler struct {
	store storage.Store
}

func NewMilestoneHandler(store storage.Store) *MilestoneHandler {
	return &MilestoneHandler{store: store}
}

// ListByProject returns a project's milestones
// GET /api/projects/:id/milestones
func (h *MilestoneHandler) ListByProject(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProjectAccess(c, h.store, projectID, middleware.GetUserID(c)) {
		return
	}

	milestones, err := h.store.ListMilestonesByProject(c.Request.Context(), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, milestones)
}

type createMilestoneRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	ProjectID   string     `json:"projectId" binding:"required"`
	DueDate     *time.Time `json:"dueDate"`
}

// Create creates a milestone
// POST /api/milestones
func (h *MilestoneHandler) Create(c *gin.Context) {
	var req createMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if !requireProjectAccess(c, h.store, req.ProjectID, middleware.GetUserID(c)) {
		return
	}

	milestone := models.Milestone{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		DueDate:     req.DueDate,
	}
	if err := h.store.CreateMilestone(c.Request.Context(), &milestone); err != nil {
		fail(c, err)
		return
	}
	response.Created(c, milestone)
}

type updateMilestoneRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
}

// Update modifies a milestone
// PUT /api/milestones/:id
func (h *MilestoneHandler) Update(c *gin.Context) {
	milestoneID := c.Param("id")

	milestone, err := h.store.GetMilestone(c.Request.Context(), milestoneID)
	if err != nil {
		fail(c, err)
		return
	}
	if !requireProjectAccess(c, h.store, milestone.ProjectID, middleware.GetUserID(c)) {
		return
	}

	var req updateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.store.UpdateMilestone(c.Request.Context(), milestoneID, storage.MilestonePatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, updated)
}

// Delete removes a milestone; its tasks are kept
// DELETE /api/milestones/:id
func (h *MilestoneHandler) Delete(c *gin.Context) {
	milestoneID := c.Param("id")

	milestone, err := h.store.GetMilestone(c.Request.Context(), milestoneID)
	if err != nil {
		fail(c, err)
		return
	}
	if !requireProjectAccess(c, h.store, milestone.ProjectID, middleware.GetUserID(c)) {
		return
	}

	if err := h.store.DeleteMilestone(c.Request.Context(), milestoneID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"message": "milestone deleted"})
}
