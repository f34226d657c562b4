package mongostore

import (
	"context"

	"github.com/planbase/planbase/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	ts := now()
	comment.CreatedAt, comment.UpdatedAt = ts, ts
	doc := newCommentDoc(comment)
	if _, err := s.comments.InsertOne(ctx, doc); err != nil {
		return wrapDuplicate(err)
	}
	comment.ID = doc.ID.Hex()
	return nil
}

func (s *Store) ListCommentsByTask(ctx context.Context, taskID string) ([]models.Comment, error) {
	cur, err := s.comments.Find(ctx,
		bson.M{"task_id": taskID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []commentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	comments := make([]models.Comment, 0, len(docs))
	for i := range docs {
		comments = append(comments, docs[i].model())
	}
	return comments, nil
}
