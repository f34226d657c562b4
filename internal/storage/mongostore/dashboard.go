package mongostore

import (
	"context"
	"time"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
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
	scope := bson.M{"project_id": bson.M{"$in": projectIDs}}

	if stats.TotalTasks, err = s.tasks.CountDocuments(ctx, scope); err != nil {
		return nil, err
	}
	if stats.CompletedTasks, err = s.tasks.CountDocuments(ctx, bson.M{
		"project_id": bson.M{"$in": projectIDs},
		"status":     models.TaskStatusDone,
	}); err != nil {
		return nil, err
	}
	if stats.InProgressTasks, err = s.tasks.CountDocuments(ctx, bson.M{
		"project_id": bson.M{"$in": projectIDs},
		"status":     models.TaskStatusInProgress,
	}); err != nil {
		return nil, err
	}
	if stats.OverdueTasks, err = s.tasks.CountDocuments(ctx, bson.M{
		"project_id": bson.M{"$in": projectIDs},
		"status":     bson.M{"$ne": models.TaskStatusDone},
		"due_date":   bson.M{"$ne": nil, "$lt": time.Now()},
	}); err != nil {
		return nil, err
	}

	logged, err := s.sumTimeLogged(ctx, userID, projectIDs)
	if err != nil {
		return nil, err
	}
	stats.TotalTimeLogged = logged
	return stats, nil
}

// sumTimeLogged totals the user's logged seconds on tasks inside the given
// projects. Time logs carry no project id, so the task ids are resolved first
// and the sum runs as a single aggregation over them.
func (s *Store) sumTimeLogged(ctx context.Context, userID string, projectIDs []string) (int64, error) {
	taskIDs, err := s.taskIDsByProject(ctx, projectIDs)
	if err != nil {
		return 0, err
	}
	if len(taskIDs) == 0 {
		return 0, nil
	}

	cur, err := s.timeLogs.Aggregate(ctx, []bson.M{
		{"$match": bson.M{
			"user_id": userID,
			"task_id": bson.M{"$in": taskIDs},
		}},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$duration"},
		}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
