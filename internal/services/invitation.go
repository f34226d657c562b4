package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/pkg/response"
)

const invitationTTL = 7 * 24 * time.Hour

// InvitationService issues and redeems organization invitations.
type InvitationService struct {
	store storage.Store
}

func NewInvitationService(store storage.Store) *InvitationService {
	return &InvitationService{store: store}
}

type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

// Invite creates a pending invitation with an opaque token the invitee
// redeems after signing in.
func (s *InvitationService) Invite(ctx context.Context, orgID, inviterID string, req *InviteRequest) (*models.Invitation, error) {
	role := req.Role
	if role == "" {
		role = models.OrgRoleMember
	}

	token, err := generateInviteToken()
	if err != nil {
		return nil, err
	}

	invitation := models.Invitation{
		Email:          req.Email,
		Role:           role,
		OrganizationID: &orgID,
		InvitedBy:      inviterID,
		Token:          token,
		Status:         models.InvitationPending,
		ExpiresAt:      time.Now().Add(invitationTTL),
	}
	if err := s.store.CreateInvitation(ctx, &invitation); err != nil {
		return nil, err
	}
	return &invitation, nil
}

// Accept redeems an invitation token for the authenticated user, adding them
// to the organization with the invited role.
func (s *InvitationService) Accept(ctx context.Context, userID, token string) (*models.Organization, error) {
	invitation, err := s.store.GetInvitationByToken(ctx, token)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, response.NewNotFound("invitation not found")
		}
		return nil, err
	}

	if invitation.Status != models.InvitationPending {
		return nil, response.NewBadRequest("invitation already used")
	}
	if time.Now().After(invitation.ExpiresAt) {
		_, _ = s.store.UpdateInvitationStatus(ctx, invitation.ID, models.InvitationExpired)
		return nil, response.NewBadRequest("invitation expired")
	}
	if invitation.OrganizationID == nil {
		return nil, response.NewBadRequest("invitation has no organization")
	}

	member := models.OrganizationMember{
		OrganizationID: *invitation.OrganizationID,
		UserID:         userID,
		Role:           invitation.Role,
	}
	if _, err := s.store.AddOrganizationMember(ctx, &member); err != nil {
		return nil, err
	}
	if _, err := s.store.UpdateInvitationStatus(ctx, invitation.ID, models.InvitationAccepted); err != nil {
		return nil, err
	}
	return s.store.GetOrganization(ctx, *invitation.OrganizationID)
}

func generateInviteToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
