package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/planbase/planbase/internal/middleware"
	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/pkg/response"
)

type DashboardHandler struct {
	store storage.Store
}

func NewDashboardHandler(store storage.Store) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// GetStats returns workload counters across the caller's projects
// GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.store.GetDashboardStats(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, stats)
}
