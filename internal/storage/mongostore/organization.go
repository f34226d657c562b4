package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateOrganization inserts the organization and its owner as the first
// admin member. The two inserts are sequential without a transaction; a
// failure in between can leave an organization without members (see
// DESIGN.md).
func (s *Store) CreateOrganization(ctx context.Context, org *models.Organization) error {
	ts := now()
	org.CreatedAt, org.UpdatedAt = ts, ts
	doc := newOrganizationDoc(org)
	if _, err := s.organizations.InsertOne(ctx, doc); err != nil {
		return wrapDuplicate(err)
	}
	org.ID = doc.ID.Hex()

	member := models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         org.OwnerID,
		Role:           models.OrgRoleAdmin,
	}
	_, err := s.AddOrganizationMember(ctx, &member)
	return err
}

func (s *Store) GetOrganization(ctx context.Context, id string) (*models.Organization, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, err
	}
	var doc organizationDoc
	if err := s.organizations.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrapNotFound(err)
	}
	org := doc.model()
	return &org, nil
}

// ListOrganizationsByUser is a two-query join: memberships first, then the
// organizations by id set.
func (s *Store) ListOrganizationsByUser(ctx context.Context, userID string) ([]models.Organization, error) {
	cur, err := s.orgMembers.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "joined_at", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var memberships []orgMemberDoc
	if err := cur.All(ctx, &memberships); err != nil {
		return nil, err
	}

	orgs := []models.Organization{}
	if len(memberships) == 0 {
		return orgs, nil
	}
	oids := make([]primitive.ObjectID, 0, len(memberships))
	for _, m := range memberships {
		oid, err := primitive.ObjectIDFromHex(m.OrganizationID)
		if err != nil {
			continue // dangling reference, tolerated by readers
		}
		oids = append(oids, oid)
	}

	orgCur, err := s.organizations.Find(ctx,
		bson.M{"_id": bson.M{"$in": oids}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer orgCur.Close(ctx)

	var docs []organizationDoc
	if err := orgCur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for i := range docs {
		orgs = append(orgs, docs[i].model())
	}
	return orgs, nil
}

func (s *Store) UpdateOrganization(ctx context.Context, id string, patch storage.OrganizationPatch) (*models.Organization, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.ContactEmail != nil {
		set["contact_email"] = *patch.ContactEmail
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}

	var doc organizationDoc
	err = s.organizations.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	org := doc.model()
	return &org, nil
}

// EnsureWorkspace returns the first organization the user belongs to, or
// creates one with the user as sole admin. Concurrent first calls for the
// same user may race; both callers get a valid organization.
func (s *Store) EnsureWorkspace(ctx context.Context, user *models.User) (*models.Organization, error) {
	var membership orgMemberDoc
	err := s.orgMembers.FindOne(ctx,
		bson.M{"user_id": user.ID},
		options.FindOne().SetSort(bson.D{{Key: "joined_at", Value: 1}}),
	).Decode(&membership)
	if err == nil {
		return s.GetOrganization(ctx, membership.OrganizationID)
	}
	if !errors.Is(wrapNotFound(err), storage.ErrNotFound) {
		return nil, err
	}

	org := models.Organization{
		Name:    fmt.Sprintf("%s's Workspace", user.Name),
		OwnerID: user.ID,
	}
	if err := s.CreateOrganization(ctx, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

// AddOrganizationMember is idempotent per (org, user): adding an existing
// pair returns the original row.
func (s *Store) AddOrganizationMember(ctx context.Context, member *models.OrganizationMember) (*models.OrganizationMember, error) {
	pair := bson.M{"organization_id": member.OrganizationID, "user_id": member.UserID}

	var existing orgMemberDoc
	err := s.orgMembers.FindOne(ctx, pair).Decode(&existing)
	if err == nil {
		m := existing.model()
		return &m, nil
	}
	if !errors.Is(wrapNotFound(err), storage.ErrNotFound) {
		return nil, err
	}

	ts := now()
	member.CreatedAt, member.UpdatedAt = ts, ts
	if member.JoinedAt.IsZero() {
		member.JoinedAt = ts
	}
	doc := newOrgMemberDoc(member)
	if _, err := s.orgMembers.InsertOne(ctx, doc); err != nil {
		// A concurrent add can win the race; fall back to the winner's row.
		if errors.Is(wrapDuplicate(err), storage.ErrDuplicateKey) {
			if err := s.orgMembers.FindOne(ctx, pair).Decode(&existing); err == nil {
				m := existing.model()
				return &m, nil
			}
		}
		return nil, err
	}
	member.ID = doc.ID.Hex()
	return member, nil
}

// ListOrganizationMembers joins memberships with users in two queries merged
// in application code.
func (s *Store) ListOrganizationMembers(ctx context.Context, orgID string) ([]models.OrganizationMemberInfo, error) {
	cur, err := s.orgMembers.Find(ctx,
		bson.M{"organization_id": orgID},
		options.Find().SetSort(bson.D{{Key: "joined_at", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []orgMemberDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.UserID)
	}
	users, err := s.ListUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	infos := make([]models.OrganizationMemberInfo, 0, len(docs))
	for _, d := range docs {
		infos = append(infos, models.OrganizationMemberInfo{
			OrganizationMember: d.model(),
			User:               byID[d.UserID],
		})
	}
	return infos, nil
}

func (s *Store) RemoveOrganizationMember(ctx context.Context, orgID, userID string) error {
	_, err := s.orgMembers.DeleteMany(ctx,
		bson.M{"organization_id": orgID, "user_id": userID})
	return err
}
