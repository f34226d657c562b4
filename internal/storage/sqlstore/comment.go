package sqlstore

import (
	"context"

	"github.com/planbase/planbase/internal/models"
)

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *Store) ListCommentsByTask(ctx context.Context, taskID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	if err := s.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
