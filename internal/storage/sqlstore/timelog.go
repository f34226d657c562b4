package sqlstore

import (
	"context"
	"time"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
)

func (s *Store) CreateTimeLog(ctx context.Context, log *models.TimeLog) error {
	if log.StartTime.IsZero() {
		log.StartTime = time.Now()
	}
	return s.db.WithContext(ctx).Create(log).Error
}

func (s *Store) GetTimeLog(ctx context.Context, id string) (*models.TimeLog, error) {
	var log models.TimeLog
	if err := s.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &log, nil
}

// GetActiveTimeLog returns the user's running timer (nil end time) or
// ErrNotFound. The single-active-timer rule is enforced by callers checking
// here before creating a new log.
func (s *Store) GetActiveTimeLog(ctx context.Context, userID string) (*models.TimeLog, error) {
	var log models.TimeLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND end_time IS NULL", userID).
		Order("start_time DESC").
		First(&log).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &log, nil
}

// StopTimeLog sets the end time and computes the duration in seconds.
func (s *Store) StopTimeLog(ctx context.Context, id string, end time.Time) (*models.TimeLog, error) {
	var log models.TimeLog
	if err := s.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}

	duration := int64(end.Sub(log.StartTime).Seconds())
	updates := map[string]interface{}{
		"end_time":   end,
		"duration":   duration,
		"updated_at": time.Now(),
	}
	if err := s.db.WithContext(ctx).Model(&log).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetTimeLog(ctx, id)
}

func (s *Store) ListTimeLogsByTask(ctx context.Context, taskID string) ([]models.TimeLog, error) {
	logs := []models.TimeLog{}
	if err := s.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("start_time ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *Store) ListTimeLogsByUser(ctx context.Context, userID string) ([]models.TimeLog, error) {
	logs := []models.TimeLog{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *Store) UpdateTimeLog(ctx context.Context, id string, patch storage.TimeLogPatch) (*models.TimeLog, error) {
	updates := map[string]interface{}{}
	if patch.Approved != nil {
		updates["approved"] = *patch.Approved
	}
	updates["updated_at"] = time.Now()

	var log models.TimeLog
	if err := s.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	if err := s.db.WithContext(ctx).Model(&log).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetTimeLog(ctx, id)
}

func (s *Store) DeleteTimeLog(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).
		Delete(&models.TimeLog{}).Error
}
