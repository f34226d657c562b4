package sqlstore

import (
	"context"
	"time"

	"github.com/planbase/planbase/internal/models"
)

func (s *Store) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return s.db.WithContext(ctx).Create(notification).Error
}

func (s *Store) ListNotificationsByUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	notifications := []models.Notification{}
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if err := q.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *Store) MarkNotificationRead(ctx context.Context, id string) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.WithContext(ctx).First(&notification, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	updates := map[string]interface{}{"is_read": true, "updated_at": time.Now()}
	if err := s.db.WithContext(ctx).Model(&notification).Updates(updates).Error; err != nil {
		return nil, err
	}
	notification.Read = true
	return &notification, nil
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "updated_at": time.Now()}).Error
}
