package mongostore

import (
	"context"

	"github.com/planbase/planbase/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateNotification(ctx context.Context, notification *models.Notification) error {
	ts := now()
	notification.CreatedAt, notification.UpdatedAt = ts, ts
	doc := newNotificationDoc(notification)
	if _, err := s.notifications.InsertOne(ctx, doc); err != nil {
		return wrapDuplicate(err)
	}
	notification.ID = doc.ID.Hex()
	return nil
}

func (s *Store) ListNotificationsByUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	filter := bson.M{"user_id": userID}
	if unreadOnly {
		filter["read"] = false
	}
	cur, err := s.notifications.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []notificationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	notifications := make([]models.Notification, 0, len(docs))
	for i := range docs {
		notifications = append(notifications, docs[i].model())
	}
	return notifications, nil
}

func (s *Store) MarkNotificationRead(ctx context.Context, id string) (*models.Notification, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, err
	}
	var doc notificationDoc
	err = s.notifications.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"read": true, "updated_at": now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	notification := doc.model()
	return &notification, nil
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := s.notifications.UpdateMany(ctx,
		bson.M{"user_id": userID, "read": false},
		bson.M{"$set": bson.M{"read": true, "updated_at": now()}},
	)
	return err
}
