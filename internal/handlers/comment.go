package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/planbase/planbase/internal/middleware"
	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/services"
	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/pkg/response"
)

type CommentHandler struct {
	store  storage.Store
	notify *services.NotifyService
}

func NewCommentHandler(store storage.Store, notify *services.NotifyService) *CommentHandler {
	return &CommentHandler{store: store, notify: notify}
}

// ListByTask returns a task's comments oldest first
// GET /api/tasks/:id/comments
func (h *CommentHandler) ListByTask(c *gin.Context) {
	taskID := c.Param("id")
	if !requireTaskAccess(c, h.store, taskID, middleware.GetUserID(c)) {
		return
	}

	comments, err := h.store.ListCommentsByTask(c.Request.Context(), taskID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, comments)
}

type createCommentRequest struct {
	Content  string   `json:"content" binding:"required"`
	Mentions []string `json:"mentions"`
}

// Create adds a comment to a task; mentioned users are notified
// POST /api/tasks/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	taskID := c.Param("id")
	userID := middleware.GetUserID(c)
	if !requireTaskAccess(c, h.store, taskID, userID) {
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment := models.Comment{
		TaskID:   taskID,
		AuthorID: userID,
		Content:  req.Content,
		Mentions: req.Mentions,
	}
	if err := h.store.CreateComment(c.Request.Context(), &comment); err != nil {
		fail(c, err)
		return
	}

	if len(comment.Mentions) > 0 {
		if task, err := h.store.GetTask(c.Request.Context(), taskID); err == nil {
			h.notify.Mentioned(&comment, task)
		}
	}

	response.Created(c, comment)
}
