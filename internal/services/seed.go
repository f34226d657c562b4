package services

import (
	"context"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/pkg/logger"
)

// SeedService creates sample content for new accounts so the first screen is
// not empty.
type SeedService struct {
	store storage.Store
}

func NewSeedService(store storage.Store) *SeedService {
	return &SeedService{store: store}
}

// SeedSampleProject creates a demo project with a few tasks in the user's
// workspace. Guarded by the user's Seeded flag so it runs at most once per
// account.
func (s *SeedService) SeedSampleProject(ctx context.Context, user *models.User, org *models.Organization) error {
	if user.Seeded {
		return nil
	}

	project := models.Project{
		Name:           "Getting Started",
		Description:    "A sample project to show you around.",
		OrganizationID: org.ID,
		CreatedBy:      user.ID,
	}
	if err := s.store.CreateProject(ctx, &project); err != nil {
		return err
	}

	samples := []models.Task{
		{
			Title:       "Create your first task",
			Description: "Use the + button to add a task to this project.",
			ProjectID:   project.ID,
			Status:      models.TaskStatusTodo,
			Priority:    models.TaskPriorityMedium,
			Order:       1,
		},
		{
			Title:       "Invite a teammate",
			Description: "Send an invitation from the organization settings.",
			ProjectID:   project.ID,
			Status:      models.TaskStatusTodo,
			Priority:    models.TaskPriorityLow,
			Order:       2,
		},
		{
			Title:       "Track your time",
			Description: "Start the timer on a task to log your work.",
			ProjectID:   project.ID,
			Status:      models.TaskStatusTodo,
			Priority:    models.TaskPriorityLow,
			AssigneeID:  &user.ID,
			Order:       3,
		},
	}
	for i := range samples {
		if err := s.store.CreateTask(ctx, &samples[i]); err != nil {
			return err
		}
	}

	seeded := true
	_, err := s.store.UpdateUser(ctx, user.ID, storage.UserPatch{Seeded: &seeded})
	return err
}

func logSeedFailure(userID string, err error) {
	logger.Warn().Err(err).Str("user_id", userID).Msg("failed to seed sample project")
}
