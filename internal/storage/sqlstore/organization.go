package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
)

// CreateOrganization inserts the organization and its owner as the first
// admin member.
func (s *Store) CreateOrganization(ctx context.Context, org *models.Organization) error {
	if err := s.db.WithContext(ctx).Create(org).Error; err != nil {
		return wrapDuplicate(err)
	}
	member := models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         org.OwnerID,
		Role:           models.OrgRoleAdmin,
	}
	return s.db.WithContext(ctx).Create(&member).Error
}

func (s *Store) GetOrganization(ctx context.Context, id string) (*models.Organization, error) {
	var org models.Organization
	if err := s.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &org, nil
}

func (s *Store) ListOrganizationsByUser(ctx context.Context, userID string) ([]models.Organization, error) {
	var memberships []models.OrganizationMember
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("joined_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}

	orgs := []models.Organization{}
	if len(memberships) == 0 {
		return orgs, nil
	}
	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.OrganizationID)
	}
	if err := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("created_at ASC").
		Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

func (s *Store) UpdateOrganization(ctx context.Context, id string, patch storage.OrganizationPatch) (*models.Organization, error) {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.ContactEmail != nil {
		updates["contact_email"] = *patch.ContactEmail
	}
	if patch.Address != nil {
		updates["address"] = *patch.Address
	}
	updates["updated_at"] = time.Now()

	var org models.Organization
	if err := s.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	if err := s.db.WithContext(ctx).Model(&org).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// EnsureWorkspace returns the first organization the user belongs to, or
// creates one with the user as sole admin. Concurrent first calls for the
// same user may race; both callers get a valid organization.
func (s *Store) EnsureWorkspace(ctx context.Context, user *models.User) (*models.Organization, error) {
	var membership models.OrganizationMember
	err := s.db.WithContext(ctx).
		Where("user_id = ?", user.ID).
		Order("joined_at ASC").
		First(&membership).Error
	if err == nil {
		return s.GetOrganization(ctx, membership.OrganizationID)
	}
	if !isRecordNotFound(err) {
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
	var existing models.OrganizationMember
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", member.OrganizationID, member.UserID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !isRecordNotFound(err) {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(member).Error; err != nil {
		// A concurrent add can win the race; fall back to the winner's row.
		if storage.IsDuplicateKey(wrapDuplicate(err)) {
			if err := s.db.WithContext(ctx).
				Where("organization_id = ? AND user_id = ?", member.OrganizationID, member.UserID).
				First(&existing).Error; err == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return member, nil
}

func (s *Store) ListOrganizationMembers(ctx context.Context, orgID string) ([]models.OrganizationMemberInfo, error) {
	var memberships []models.OrganizationMember
	if err := s.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("joined_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.UserID)
	}
	users, err := s.ListUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	infos := make([]models.OrganizationMemberInfo, 0, len(memberships))
	for _, m := range memberships {
		infos = append(infos, models.OrganizationMemberInfo{
			OrganizationMember: m,
			User:               byID[m.UserID],
		})
	}
	return infos, nil
}

func (s *Store) RemoveOrganizationMember(ctx context.Context, orgID, userID string) error {
	return s.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		Delete(&models.OrganizationMember{}).Error
}
