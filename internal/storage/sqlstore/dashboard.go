package sqlstore

import (
	"context"
	"time"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
)

// GetDashboardStats aggregates over the user's accessible projects. A user
// with no projects gets all-zero stats, not an error.
func (s *Store) GetDashboardStats(ctx context.Context, userID string) (*storage.DashboardStats, error) {
	projects, err := s.ListProjectsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &storage.DashboardStats{ProjectCount: int64(len(projects))}
	if len(projects) == 0 {
		return stats, nil
	}

	projectIDs := make([]string, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
	}

	if err := s.db.WithContext(ctx).Model(&models.Task{}).
		Where("project_id IN ?", projectIDs).
		Count(&stats.TotalTasks).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Task{}).
		Where("project_id IN ? AND status = ?", projectIDs, models.TaskStatusDone).
		Count(&stats.CompletedTasks).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Task{}).
		Where("project_id IN ? AND status = ?", projectIDs, models.TaskStatusInProgress).
		Count(&stats.InProgressTasks).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Task{}).
		Where("project_id IN ? AND status <> ?", projectIDs, models.TaskStatusDone).
		Where("due_date IS NOT NULL AND due_date < ?", time.Now()).
		Count(&stats.OverdueTasks).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Table("time_logs").
		Joins("JOIN tasks ON tasks.id = time_logs.task_id").
		Where("time_logs.user_id = ?", userID).
		Where("tasks.project_id IN ?", projectIDs).
		Select("COALESCE(SUM(time_logs.duration), 0)").
		Scan(&stats.TotalTimeLogged).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
