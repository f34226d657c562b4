package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/planbase/planbase/internal/middleware"
	"github.com/planbase/planbase/internal/services"
	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/pkg/response"
)

type TimeLogHandler struct {
	store storage.Store
	timer *services.TimerService
}

func NewTimeLogHandler(store storage.Store, timer *services.TimerService) *TimeLogHandler {
	return &TimeLogHandler{store: store, timer: timer}
}

type startTimerRequest struct {
	TaskID string `json:"taskId" binding:"required"`
}

// Start begins a timer on a task; only one may run per user
// POST /api/timelogs/start
func (h *TimeLogHandler) Start(c *gin.Context) {
	var req startTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	log, err := h.timer.Start(c.Request.Context(), middleware.GetUserID(c), req.TaskID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, log)
}

// Stop ends the caller's running timer
// POST /api/timelogs/stop
func (h *TimeLogHandler) Stop(c *gin.Context) {
	log, err := h.timer.Stop(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, log)
}

// Active returns the caller's running timer, or null
// GET /api/timelogs/active
func (h *TimeLogHandler) Active(c *gin.Context) {
	log, err := h.timer.Active(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, log)
}

// ListByTask returns a task's time logs
// GET /api/tasks/:id/timelogs
func (h *TimeLogHandler) ListByTask(c *gin.Context) {
	taskID := c.Param("id")
	if !requireTaskAccess(c, h.store, taskID, middleware.GetUserID(c)) {
		return
	}

	logs, err := h.store.ListTimeLogsByTask(c.Request.Context(), taskID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, logs)
}

// ListMine returns the caller's time logs
// GET /api/timelogs
func (h *TimeLogHandler) ListMine(c *gin.Context) {
	logs, err := h.store.ListTimeLogsByUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, logs)
}

type approveTimeLogRequest struct {
	Approved bool `json:"approved"`
}

// Approve marks a time log approved or not
// PUT /api/timelogs/:id/approve
func (h *TimeLogHandler) Approve(c *gin.Context) {
	logID := c.Param("id")

	log, err := h.store.GetTimeLog(c.Request.Context(), logID)
	if err != nil {
		fail(c, err)
		return
	}
	if !requireTaskAccess(c, h.store, log.TaskID, middleware.GetUserID(c)) {
		return
	}

	var req approveTimeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.store.UpdateTimeLog(c.Request.Context(), logID, storage.TimeLogPatch{
		Approved: &req.Approved,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, updated)
}

// Delete removes a time log; only its owner may delete it
// DELETE /api/timelogs/:id
func (h *TimeLogHandler) Delete(c *gin.Context) {
	logID := c.Param("id")
	userID := middleware.GetUserID(c)

	log, err := h.store.GetTimeLog(c.Request.Context(), logID)
	if err != nil {
		fail(c, err)
		return
	}
	if log.UserID != userID {
		response.Forbidden(c, "only the owner can delete a time log")
		return
	}

	if err := h.store.DeleteTimeLog(c.Request.Context(), logID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"message": "time log deleted"})
}
