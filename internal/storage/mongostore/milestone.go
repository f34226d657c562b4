package mongostore

import (
	"context"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateMilestone(ctx context.Context, milestone *models.Milestone) error {
	if milestone.Status == "" {
		milestone.Status = models.MilestoneStatusOpen
	}
	ts := now()
	milestone.CreatedAt, milestone.UpdatedAt = ts, ts
	doc := newMilestoneDoc(milestone)
	if _, err := s.milestones.InsertOne(ctx, doc); err != nil {
		return wrapDuplicate(err)
	}
	milestone.ID = doc.ID.Hex()
	return nil
}

func (s *Store) GetMilestone(ctx context.Context, id string) (*models.Milestone, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, err
	}
	var doc milestoneDoc
	if err := s.milestones.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrapNotFound(err)
	}
	milestone := doc.model()
	return &milestone, nil
}

func (s *Store) ListMilestonesByProject(ctx context.Context, projectID string) ([]models.Milestone, error) {
	cur, err := s.milestones.Find(ctx,
		bson.M{"project_id": projectID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []milestoneDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	milestones := make([]models.Milestone, 0, len(docs))
	for i := range docs {
		milestones = append(milestones, docs[i].model())
	}
	return milestones, nil
}

func (s *Store) UpdateMilestone(ctx context.Context, id string, patch storage.MilestonePatch) (*models.Milestone, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": now()}
	unset := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	applyDate(set, unset, "due_date", patch.DueDate)

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var doc milestoneDoc
	err = s.milestones.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	milestone := doc.model()
	return &milestone, nil
}

// DeleteMilestone does not cascade: tasks keep their milestone id and readers
// tolerate the orphaned reference.
func (s *Store) DeleteMilestone(ctx context.Context, id string) error {
	oid, err := parseOID(id)
	if err != nil {
		return nil
	}
	_, err = s.milestones.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
