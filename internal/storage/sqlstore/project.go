package sqlstore

import (
	"context"
	"time"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
)

// CreateProject derives a unique slug from the project name before insert.
func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	slug, err := storage.UniqueSlug(project.Name, func(candidate string) (bool, error) {
		var count int64
		err := s.db.WithContext(ctx).Model(&models.Project{}).
			Where("slug = ?", candidate).Count(&count).Error
		return count > 0, err
	})
	if err != nil {
		return err
	}
	project.Slug = slug

	if err := s.db.WithContext(ctx).Create(project).Error; err != nil {
		return wrapDuplicate(err)
	}
	return nil
}

func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &project, nil
}

func (s *Store) ListProjectsByOrganization(ctx context.Context, orgID string) ([]models.Project, error) {
	projects := []models.Project{}
	if err := s.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListProjectsByUser resolves the user's organization memberships and returns
// every project in those organizations. This is the tenant scope used by
// search and dashboard queries.
func (s *Store) ListProjectsByUser(ctx context.Context, userID string) ([]models.Project, error) {
	orgs, err := s.ListOrganizationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	projects := []models.Project{}
	if len(orgs) == 0 {
		return projects, nil
	}
	orgIDs := make([]string, 0, len(orgs))
	for _, o := range orgs {
		orgIDs = append(orgIDs, o.ID)
	}
	if err := s.db.WithContext(ctx).
		Where("organization_id IN ?", orgIDs).
		Order("created_at ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *Store) UpdateProject(ctx context.Context, id string, patch storage.ProjectPatch) (*models.Project, error) {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.IsPrivate != nil {
		updates["is_private"] = *patch.IsPrivate
	}
	updates["updated_at"] = time.Now()

	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	if err := s.db.WithContext(ctx).Model(&project).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject cascades in application code so both backends behave the
// same: time logs and comments of the project's tasks first, then tasks,
// milestones and memberships, and finally the project itself. Children are
// deleted before the parent; there is no wrapping transaction (see
// DESIGN.md).
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	var taskIDs []string
	if err := s.db.WithContext(ctx).Model(&models.Task{}).
		Where("project_id = ?", id).
		Pluck("id", &taskIDs).Error; err != nil {
		return err
	}

	if len(taskIDs) > 0 {
		if err := s.db.WithContext(ctx).Where("task_id IN ?", taskIDs).
			Delete(&models.TimeLog{}).Error; err != nil {
			return err
		}
		if err := s.db.WithContext(ctx).Where("task_id IN ?", taskIDs).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := s.db.WithContext(ctx).Where("project_id = ?", id).
			Delete(&models.Task{}).Error; err != nil {
			return err
		}
	}
	if err := s.db.WithContext(ctx).Where("project_id = ?", id).
		Delete(&models.Milestone{}).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("project_id = ?", id).
		Delete(&models.ProjectMember{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("id = ?", id).
		Delete(&models.Project{}).Error
}

// AddProjectMember is idempotent per (project, user): adding an existing pair
// returns the original row.
func (s *Store) AddProjectMember(ctx context.Context, member *models.ProjectMember) (*models.ProjectMember, error) {
	var existing models.ProjectMember
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", member.ProjectID, member.UserID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !isRecordNotFound(err) {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(member).Error; err != nil {
		if storage.IsDuplicateKey(wrapDuplicate(err)) {
			if err := s.db.WithContext(ctx).
				Where("project_id = ? AND user_id = ?", member.ProjectID, member.UserID).
				First(&existing).Error; err == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return member, nil
}

func (s *Store) ListProjectMembers(ctx context.Context, projectID string) ([]models.ProjectMemberInfo, error) {
	var memberships []models.ProjectMember
	if err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("added_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.UserID)
	}
	users, err := s.ListUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	infos := make([]models.ProjectMemberInfo, 0, len(memberships))
	for _, m := range memberships {
		infos = append(infos, models.ProjectMemberInfo{
			ProjectMember: m,
			User:          byID[m.UserID],
		})
	}
	return infos, nil
}

func (s *Store) RemoveProjectMember(ctx context.Context, projectID, userID string) error {
	return s.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

// IsUserInProject reports membership: a direct project member, or any member
// of the owning organization when the project is not private.
func (s *Store) IsUserInProject(ctx context.Context, userID, projectID string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		if storage.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if project.IsPrivate {
		return false, nil
	}
	if err := s.db.WithContext(ctx).Model(&models.OrganizationMember{}).
		Where("organization_id = ? AND user_id = ?", project.OrganizationID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CanUserAccessTask resolves the task's project and delegates to the
// project-membership check.
func (s *Store) CanUserAccessTask(ctx context.Context, userID, taskID string) (bool, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		if storage.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return s.IsUserInProject(ctx, userID, task.ProjectID)
}
