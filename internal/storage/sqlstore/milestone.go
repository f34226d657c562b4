package sqlstore

import (
	"context"
	"time"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
)

func (s *Store) CreateMilestone(ctx context.Context, milestone *models.Milestone) error {
	if milestone.Status == "" {
		milestone.Status = models.MilestoneStatusOpen
	}
	return s.db.WithContext(ctx).Create(milestone).Error
}

func (s *Store) GetMilestone(ctx context.Context, id string) (*models.Milestone, error) {
	var milestone models.Milestone
	if err := s.db.WithContext(ctx).First(&milestone, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &milestone, nil
}

func (s *Store) ListMilestonesByProject(ctx context.Context, projectID string) ([]models.Milestone, error) {
	milestones := []models.Milestone{}
	if err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&milestones).Error; err != nil {
		return nil, err
	}
	return milestones, nil
}

func (s *Store) UpdateMilestone(ctx context.Context, id string, patch storage.MilestonePatch) (*models.Milestone, error) {
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
	applyDate(updates, "due_date", patch.DueDate)
	updates["updated_at"] = time.Now()

	var milestone models.Milestone
	if err := s.db.WithContext(ctx).First(&milestone, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	if err := s.db.WithContext(ctx).Model(&milestone).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetMilestone(ctx, id)
}

// DeleteMilestone does not cascade: tasks keep their milestone id and readers
// tolerate the orphaned reference.
func (s *Store) DeleteMilestone(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).
		Delete(&models.Milestone{}).Error
}
