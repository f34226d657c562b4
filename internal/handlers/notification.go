package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/planbase/planbase/internal/middleware"
	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/pkg/response"
)

type NotificationHandler struct {
	store storage.Store
}

func NewNotificationHandler(store storage.Store) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// List returns the caller's notifications, newest first
// GET /api/notifications?unread=true
func (h *NotificationHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.store.ListNotificationsByUser(c.Request.Context(), middleware.GetUserID(c), unreadOnly)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, notifications)
}

// MarkRead marks one notification read
// PUT /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID := c.Param("id")
	userID := middleware.GetUserID(c)

	// Ownership check before the write: the store has no single-notification
	// getter, so scan the caller's inbox.
	owned, err := h.store.ListNotificationsByUser(c.Request.Context(), userID, false)
	if err != nil {
		fail(c, err)
		return
	}
	mine := false
	for _, n := range owned {
		if n.ID == notificationID {
			mine = true
			break
		}
	}
	if !mine {
		response.NotFound(c, "not found")
		return
	}

	notification, err := h.store.MarkNotificationRead(c.Request.Context(), notificationID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, notification)
}

// MarkAllRead marks all of the caller's notifications read
// PUT /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.store.MarkAllNotificationsRead(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"message": "all notifications marked read"})
}
