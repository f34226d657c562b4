package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
)

// CreateTask derives a slug from the title, unique within the project.
func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}

	slug, err := storage.UniqueSlug(task.Title, func(candidate string) (bool, error) {
		var count int64
		err := s.db.WithContext(ctx).Model(&models.Task{}).
			Where("project_id = ? AND slug = ?", task.ProjectID, candidate).
			Count(&count).Error
		return count > 0, err
	})
	if err != nil {
		return err
	}
	task.Slug = slug

	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return wrapDuplicate(err)
	}
	return nil
}

func (s *Store) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &task, nil
}

// ListTasksByProject returns tasks ordered by their manual order, ties broken
// by id for determinism.
func (s *Store) ListTasksByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("task_order ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Store) UpdateTask(ctx context.Context, id string, patch storage.TaskPatch) (*models.Task, error) {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	applyRef(updates, "assignee_id", patch.AssigneeID)
	applyRef(updates, "reviewer_id", patch.ReviewerID)
	applyRef(updates, "tester_id", patch.TesterID)
	applyRef(updates, "milestone_id", patch.MilestoneID)
	applyRef(updates, "parent_id", patch.ParentID)
	applyDate(updates, "start_date", patch.StartDate)
	applyDate(updates, "due_date", patch.DueDate)
	if patch.DeliveryRole != nil {
		updates["delivery_role"] = *patch.DeliveryRole
	}
	if patch.Order != nil {
		updates["task_order"] = *patch.Order
	}
	updates["updated_at"] = time.Now()

	var task models.Task
	if err := s.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	if err := s.db.WithContext(ctx).Model(&task).Updates(updates).Error; err != nil {
		return nil, err
	}
	// Re-read so cleared fields come back as nil rather than stale values.
	return s.GetTask(ctx, id)
}

// applyRef sets an optional reference column; an empty string clears it.
func applyRef(updates map[string]interface{}, column string, value *string) {
	if value == nil {
		return
	}
	if *value == "" {
		updates[column] = nil
	} else {
		updates[column] = *value
	}
}

// applyDate sets an optional date column; a zero time clears it.
func applyDate(updates map[string]interface{}, column string, value *time.Time) {
	if value == nil {
		return
	}
	if value.IsZero() {
		updates[column] = nil
	} else {
		updates[column] = *value
	}
}

// DeleteTask deletes the task's time logs and comments before the task
// itself. Idempotent: a missing id is a no-op.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("task_id = ?", id).
		Delete(&models.TimeLog{}).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("task_id = ?", id).
		Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("id = ?", id).
		Delete(&models.Task{}).Error
}

// taskSortColumns maps public sort fields onto columns.
var taskSortColumns = map[string]string{
	storage.SortByCreatedAt: "created_at",
	storage.SortByDueDate:   "due_date",
	storage.SortByPriority:  "priority",
	storage.SortByStatus:    "status",
	storage.SortByOrder:     "task_order",
}

// SearchTasks filters, sorts and paginates within the caller-resolved project
// scope. Total counts matches before pagination.
func (s *Store) SearchTasks(ctx context.Context, filter storage.TaskFilter) (*storage.TaskPage, error) {
	page := &storage.TaskPage{Items: []models.Task{}}
	if len(filter.ProjectIDs) == 0 {
		return page, nil
	}

	q := s.db.WithContext(ctx).Model(&models.Task{}).
		Where("project_id IN ?", filter.ProjectIDs)

	if len(filter.Statuses) > 0 {
		q = q.Where("status IN ?", filter.Statuses)
	}
	if len(filter.Priorities) > 0 {
		q = q.Where("priority IN ?", filter.Priorities)
	}
	if len(filter.AssigneeIDs) > 0 {
		q = q.Where("assignee_id IN ?", filter.AssigneeIDs)
	}
	if filter.ParentID != nil {
		if *filter.ParentID == "" {
			q = q.Where("parent_id IS NULL")
		} else {
			q = q.Where("parent_id = ?", *filter.ParentID)
		}
	}
	if filter.Query != "" {
		// LOWER/LIKE instead of ILIKE so the query is portable across
		// postgres, mysql and sqlite.
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Query)+"%")
	}
	if filter.DueFrom != nil {
		q = q.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		q = q.Where("due_date <= ?", *filter.DueTo)
	}

	if err := q.Count(&page.Total).Error; err != nil {
		return nil, err
	}

	column, ok := taskSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	if err := q.Order(fmt.Sprintf("%s %s, id ASC", column, direction)).
		Offset(filter.Offset).
		Limit(limit).
		Find(&page.Items).Error; err != nil {
		return nil, err
	}
	return page, nil
}

// ListTasksDueBetween returns unfinished, assigned tasks with a due date in
// [from, to). Used by the due-reminder scheduler.
func (s *Store) ListTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := s.db.WithContext(ctx).
		Where("due_date >= ? AND due_date < ?", from, to).
		Where("status <> ?", models.TaskStatusDone).
		Where("assignee_id IS NOT NULL").
		Order("due_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
