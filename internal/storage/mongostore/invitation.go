package mongostore

import (
	"context"

	"github.com/planbase/planbase/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateInvitation(ctx context.Context, invitation *models.Invitation) error {
	if invitation.Status == "" {
		invitation.Status = models.InvitationPending
	}
	ts := now()
	invitation.CreatedAt, invitation.UpdatedAt = ts, ts
	doc := newInvitationDoc(invitation)
	if _, err := s.invitations.InsertOne(ctx, doc); err != nil {
		return wrapDuplicate(err)
	}
	invitation.ID = doc.ID.Hex()
	return nil
}

func (s *Store) GetInvitationByToken(ctx context.Context, token string) (*models.Invitation, error) {
	var doc invitationDoc
	if err := s.invitations.FindOne(ctx, bson.M{"token": token}).Decode(&doc); err != nil {
		return nil, wrapNotFound(err)
	}
	invitation := doc.model()
	return &invitation, nil
}

func (s *Store) ListInvitationsByOrganization(ctx context.Context, orgID string) ([]models.Invitation, error) {
	cur, err := s.invitations.Find(ctx,
		bson.M{"organization_id": orgID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []invitationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	invitations := make([]models.Invitation, 0, len(docs))
	for i := range docs {
		invitations = append(invitations, docs[i].model())
	}
	return invitations, nil
}

func (s *Store) UpdateInvitationStatus(ctx context.Context, id, status string) (*models.Invitation, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, err
	}
	var doc invitationDoc
	err = s.invitations.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status, "updated_at": now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	invitation := doc.model()
	return &invitation, nil
}
