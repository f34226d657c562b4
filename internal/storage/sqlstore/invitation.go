package sqlstore

import (
	"context"
	"time"

	"github.com/planbase/planbase/internal/models"
)

func (s *Store) CreateInvitation(ctx context.Context, invitation *models.Invitation) error {
	if invitation.Status == "" {
		invitation.Status = models.InvitationPending
	}
	return s.db.WithContext(ctx).Create(invitation).Error
}

func (s *Store) GetInvitationByToken(ctx context.Context, token string) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := s.db.WithContext(ctx).First(&invitation, "token = ?", token).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &invitation, nil
}

func (s *Store) ListInvitationsByOrganization(ctx context.Context, orgID string) ([]models.Invitation, error) {
	invitations := []models.Invitation{}
	if err := s.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

func (s *Store) UpdateInvitationStatus(ctx context.Context, id, status string) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := s.db.WithContext(ctx).First(&invitation, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	updates := map[string]interface{}{"status": status, "updated_at": time.Now()}
	if err := s.db.WithContext(ctx).Model(&invitation).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}
