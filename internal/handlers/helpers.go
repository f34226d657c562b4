package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/pkg/response"
)

// fail maps storage sentinels and AppErrors onto HTTP responses; anything
// else is a 500.
func fail(c *gin.Context, err error) {
	switch {
	case storage.IsNotFound(err):
		response.NotFound(c, "not found")
	case storage.IsDuplicateKey(err):
		response.Conflict(c, "already exists")
	default:
		response.Error(c, err)
	}
}

// orgRole returns the caller's membership role in the organization, or
// ok=false when they are not a member.
func orgRole(ctx context.Context, store storage.Store, orgID, userID string) (string, bool, error) {
	members, err := store.ListOrganizationMembers(ctx, orgID)
	if err != nil {
		return "", false, err
	}
	for _, m := range members {
		if m.UserID == userID {
			return m.Role, true, nil
		}
	}
	return "", false, nil
}

// requireOrgAdmin aborts with 403 unless the caller is an admin of the
// organization. Returns false when the request was aborted.
func requireOrgAdmin(c *gin.Context, store storage.Store, orgID, userID string) bool {
	role, ok, err := orgRole(c.Request.Context(), store, orgID, userID)
	if err != nil {
		fail(c, err)
		return false
	}
	if !ok || role != models.OrgRoleAdmin {
		response.Forbidden(c, "organization admin required")
		return false
	}
	return true
}

// requireOrgMember aborts with 403 unless the caller belongs to the
// organization.
func requireOrgMember(c *gin.Context, store storage.Store, orgID, userID string) bool {
	_, ok, err := orgRole(c.Request.Context(), store, orgID, userID)
	if err != nil {
		fail(c, err)
		return false
	}
	if !ok {
		response.Forbidden(c, "not a member of this organization")
		return false
	}
	return true
}

// requireProjectAccess aborts with 403 unless the caller can see the project.
func requireProjectAccess(c *gin.Context, store storage.Store, projectID, userID string) bool {
	ok, err := store.IsUserInProject(c.Request.Context(), userID, projectID)
	if err != nil {
		fail(c, err)
		return false
	}
	if !ok {
		response.Forbidden(c, "no access to this project")
		return false
	}
	return true
}

// requireTaskAccess aborts with 403 unless the caller can see the task.
func requireTaskAccess(c *gin.Context, store storage.Store, taskID, userID string) bool {
	ok, err := store.CanUserAccessTask(c.Request.Context(), userID, taskID)
	if err != nil {
		fail(c, err)
		return false
	}
	if !ok {
		response.Forbidden(c, "no access to this task")
		return false
	}
	return true
}
