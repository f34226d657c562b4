package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/planbase/planbase/internal/middleware"
	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/services"
	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/pkg/response"
)

type TaskHandler struct {
	store  storage.Store
	notify *services.NotifyService
}

func NewTaskHandler(store storage.Store, notify *services.NotifyService) *TaskHandler {
	return &TaskHandler{store: store, notify: notify}
}

// ListByProject returns a project's tasks in board order
// GET /api/projects/:id/tasks
func (h *TaskHandler) ListByProject(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProjectAccess(c, h.store, projectID, middleware.GetUserID(c)) {
		return
	}

	tasks, err := h.store.ListTasksByProject(c.Request.Context(), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, tasks)
}

// GetByID returns a task by ID
// GET /api/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	taskID := c.Param("id")
	if !requireTaskAccess(c, h.store, taskID, middleware.GetUserID(c)) {
		return
	}

	task, err := h.store.GetTask(c.Request.Context(), taskID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, task)
}

type createTaskRequest struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	ProjectID    string     `json:"projectId" binding:"required"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	AssigneeID   *string    `json:"assigneeId"`
	ReviewerID   *string    `json:"reviewerId"`
	TesterID     *string    `json:"testerId"`
	StartDate    *time.Time `json:"startDate"`
	DueDate      *time.Time `json:"dueDate"`
	DeliveryRole string     `json:"deliveryRole"`
	MilestoneID  *string    `json:"milestoneId"`
	Order        int        `json:"order"`
	ParentID     *string    `json:"parentId"`
}

// Create creates a task
// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	if !requireProjectAccess(c, h.store, req.ProjectID, userID) {
		return
	}

	// A subtask's parent must be a root task in the same project.
	if req.ParentID != nil && *req.ParentID != "" {
		parent, err := h.store.GetTask(c.Request.Context(), *req.ParentID)
		if err != nil {
			fail(c, err)
			return
		}
		if parent.ProjectID != req.ProjectID {
			response.BadRequest(c, "parent task belongs to another project")
			return
		}
		if parent.ParentID != nil {
			response.BadRequest(c, "subtasks cannot be nested")
			return
		}
	}

	task := models.Task{
		Title:        req.Title,
		Description:  req.Description,
		ProjectID:    req.ProjectID,
		Status:       req.Status,
		Priority:     req.Priority,
		AssigneeID:   req.AssigneeID,
		ReviewerID:   req.ReviewerID,
		TesterID:     req.TesterID,
		StartDate:    req.StartDate,
		DueDate:      req.DueDate,
		DeliveryRole: req.DeliveryRole,
		MilestoneID:  req.MilestoneID,
		Order:        req.Order,
		ParentID:     req.ParentID,
	}
	if err := h.store.CreateTask(c.Request.Context(), &task); err != nil {
		fail(c, err)
		return
	}

	if task.AssigneeID != nil {
		h.notify.TaskAssigned(&task, *task.AssigneeID, userID)
	}

	response.Created(c, task)
}

type updateTaskRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"`
	Priority     *string    `json:"priority"`
	AssigneeID   *string    `json:"assigneeId"`
	ReviewerID   *string    `json:"reviewerId"`
	TesterID     *string    `json:"testerId"`
	StartDate    *time.Time `json:"startDate"`
	DueDate      *time.Time `json:"dueDate"`
	DeliveryRole *string    `json:"deliveryRole"`
	MilestoneID  *string    `json:"milestoneId"`
	Order        *int       `json:"order"`
	ParentID     *string    `json:"parentId"`
}

// Update applies a partial update. Omitted fields are unchanged; an explicit
// empty string clears an optional reference, a zero time clears a date.
// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	taskID := c.Param("id")
	userID := middleware.GetUserID(c)
	if !requireTaskAccess(c, h.store, taskID, userID) {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	before, err := h.store.GetTask(c.Request.Context(), taskID)
	if err != nil {
		fail(c, err)
		return
	}

	task, err := h.store.UpdateTask(c.Request.Context(), taskID, storage.TaskPatch{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		AssigneeID:   req.AssigneeID,
		ReviewerID:   req.ReviewerID,
		TesterID:     req.TesterID,
		StartDate:    req.StartDate,
		DueDate:      req.DueDate,
		DeliveryRole: req.DeliveryRole,
		MilestoneID:  req.MilestoneID,
		Order:        req.Order,
		ParentID:     req.ParentID,
	})
	if err != nil {
		fail(c, err)
		return
	}

	if req.AssigneeID != nil && *req.AssigneeID != "" && !sameRef(before.AssigneeID, req.AssigneeID) {
		h.notify.TaskAssigned(task, *req.AssigneeID, userID)
	}
	if req.Status != nil && before.Status != *req.Status {
		h.notify.StatusChanged(task, userID)
	}

	response.Success(c, task)
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Delete removes a task with its time logs and comments
// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID := c.Param("id")
	if !requireTaskAccess(c, h.store, taskID, middleware.GetUserID(c)) {
		return
	}

	if err := h.store.DeleteTask(c.Request.Context(), taskID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"message": "task deleted"})
}

type searchTasksRequest struct {
	ProjectIDs  []string   `form:"projectId"`
	Statuses    []string   `form:"status"`
	Priorities  []string   `form:"priority"`
	AssigneeIDs []string   `form:"assigneeId"`
	ParentID    *string    `form:"parentId"`
	Query       string     `form:"q"`
	DueFrom     *time.Time `form:"dueFrom" time_format:"2006-01-02T15:04:05Z07:00"`
	DueTo       *time.Time `form:"dueTo" time_format:"2006-01-02T15:04:05Z07:00"`
	SortBy      string     `form:"sortBy"`
	SortDesc    bool       `form:"sortDesc"`
	Limit       int        `form:"limit"`
	Offset      int        `form:"offset"`
}

// Search filters tasks across the caller's accessible projects
// GET /api/tasks/search
func (h *TaskHandler) Search(c *gin.Context) {
	var req searchTasksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	projects, err := h.store.ListProjectsByUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	accessible := make(map[string]bool, len(projects))
	scope := make([]string, 0, len(projects))
	for _, p := range projects {
		accessible[p.ID] = true
		scope = append(scope, p.ID)
	}

	// An explicit project filter narrows the scope but can never widen it.
	if len(req.ProjectIDs) > 0 {
		scope = scope[:0]
		for _, id := range req.ProjectIDs {
			if accessible[id] {
				scope = append(scope, id)
			}
		}
	}

	page, err := h.store.SearchTasks(c.Request.Context(), storage.TaskFilter{
		ProjectIDs:  scope,
		Statuses:    req.Statuses,
		Priorities:  req.Priorities,
		AssigneeIDs: req.AssigneeIDs,
		ParentID:    req.ParentID,
		Query:       req.Query,
		DueFrom:     req.DueFrom,
		DueTo:       req.DueTo,
		SortBy:      req.SortBy,
		SortDesc:    req.SortDesc,
		Limit:       req.Limit,
		Offset:      req.Offset,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, page)
}
