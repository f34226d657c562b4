package mongostore

import (
	"context"
	"time"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateTimeLog(ctx context.Context, log *models.TimeLog) error {
	if log.StartTime.IsZero() {
		log.StartTime = now()
	}
	ts := now()
	log.CreatedAt, log.UpdatedAt = ts, ts
	doc := newTimeLogDoc(log)
	if _, err := s.timeLogs.InsertOne(ctx, doc); err != nil {
		return wrapDuplicate(err)
	}
	log.ID = doc.ID.Hex()
	return nil
}

func (s *Store) GetTimeLog(ctx context.Context, id string) (*models.TimeLog, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, err
	}
	var doc timeLogDoc
	if err := s.timeLogs.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrapNotFound(err)
	}
	log := doc.model()
	return &log, nil
}

// GetActiveTimeLog returns the user's running timer (no end time) or
// ErrNotFound. The single-active-timer rule is enforced by callers checking
// here before creating a new log.
func (s *Store) GetActiveTimeLog(ctx context.Context, userID string) (*models.TimeLog, error) {
	var doc timeLogDoc
	err := s.timeLogs.FindOne(ctx,
		bson.M{"user_id": userID, "end_time": nil},
		options.FindOne().SetSort(bson.D{{Key: "start_time", Value: -1}}),
	).Decode(&doc)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	log := doc.model()
	return &log, nil
}

// StopTimeLog sets the end time and computes the duration in seconds.
func (s *Store) StopTimeLog(ctx context.Context, id string, end time.Time) (*models.TimeLog, error) {
	log, err := s.GetTimeLog(ctx, id)
	if err != nil {
		return nil, err
	}

	oid, _ := parseOID(id)
	duration := int64(end.Sub(log.StartTime).Seconds())
	var doc timeLogDoc
	err = s.timeLogs.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"end_time":   end,
			"duration":   duration,
			"updated_at": now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	updated := doc.model()
	return &updated, nil
}

func (s *Store) ListTimeLogsByTask(ctx context.Context, taskID string) ([]models.TimeLog, error) {
	return s.findTimeLogs(ctx, bson.M{"task_id": taskID})
}

func (s *Store) ListTimeLogsByUser(ctx context.Context, userID string) ([]models.TimeLog, error) {
	return s.findTimeLogs(ctx, bson.M{"user_id": userID})
}

func (s *Store) findTimeLogs(ctx context.Context, filter bson.M) ([]models.TimeLog, error) {
	cur, err := s.timeLogs.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []timeLogDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	logs := make([]models.TimeLog, 0, len(docs))
	for i := range docs {
		logs = append(logs, docs[i].model())
	}
	return logs, nil
}

func (s *Store) UpdateTimeLog(ctx context.Context, id string, patch storage.TimeLogPatch) (*models.TimeLog, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": now()}
	if patch.Approved != nil {
		set["approved"] = *patch.Approved
	}

	var doc timeLogDoc
	err = s.timeLogs.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	log := doc.model()
	return &log, nil
}

func (s *Store) DeleteTimeLog(ctx context.Context, id string) error {
	oid, err := parseOID(id)
	if err != nil {
		return nil
	}
	_, err = s.timeLogs.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
