package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/pkg/response"
)

func TestInviteAndAccept(t *testing.T) {
	store := newTestStore(t)
	invitations := NewInvitationService(store)
	ctx := context.Background()

	inviter, org := seedUserWithOrg(t, store, "owner@example.com", "Owner")
	invitee, _ := seedUserWithOrg(t, store, "new@example.com", "Newcomer")

	invitation, err := invitations.Invite(ctx, org.ID, inviter.ID, &InviteRequest{
		Email: "new@example.com",
		Role:  models.OrgRoleTeamLead,
	})
	if err != nil {
		t.Fatalf("Invite() error = %v", err)
	}
	if invitation.Token == "" {
		t.Fatal("invitation has no token")
	}
	if invitation.Status != models.InvitationPending {
		t.Errorf("status = %q", invitation.Status)
	}

	joined, err := invitations.Accept(ctx, invitee.ID, invitation.Token)
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if joined.ID != org.ID {
		t.Errorf("joined org = %q, expected %q", joined.ID, org.ID)
	}

	members, err := store.ListOrganizationMembers(ctx, org.ID)
	if err != nil {
		t.Fatalf("ListOrganizationMembers() error = %v", err)
	}
	var found bool
	for _, m := range members {
		if m.UserID == invitee.ID {
			found = true
			if m.Role != models.OrgRoleTeamLead {
				t.Errorf("member role = %q, expected team_lead", m.Role)
			}
		}
	}
	if !found {
		t.Error("invitee not added to the organization")
	}

	// The token is single-use.
	_, err = invitations.Accept(ctx, invitee.ID, invitation.Token)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 400 {
		t.Errorf("second Accept() error = %v, expected 400", err)
	}
}

func TestInvite_DefaultRole(t *testing.T) {
	store := newTestStore(t)
	invitations := NewInvitationService(store)

	inviter, org := seedUserWithOrg(t, store, "owner@example.com", "Owner")

	invitation, err := invitations.Invite(context.Background(), org.ID, inviter.ID, &InviteRequest{
		Email: "new@example.com",
	})
	if err != nil {
		t.Fatalf("Invite() error = %v", err)
	}
	if invitation.Role != models.OrgRoleMember {
		t.Errorf("role = %q, expected member", invitation.Role)
	}
}

func TestAccept_Expired(t *testing.T) {
	store := newTestStore(t)
	invitations := NewInvitationService(store)
	ctx := context.Background()

	inviter, org := seedUserWithOrg(t, store, "owner@example.com", "Owner")
	invitee, _ := seedUserWithOrg(t, store, "late@example.com", "Latecomer")

	expired := models.Invitation{
		Email:          "late@example.com",
		Role:           models.OrgRoleMember,
		OrganizationID: &org.ID,
		InvitedBy:      inviter.ID,
		Token:          "expired-token",
		Status:         models.InvitationPending,
		ExpiresAt:      time.Now().Add(-time.Hour),
	}
	if err := store.CreateInvitation(ctx, &expired); err != nil {
		t.Fatalf("CreateInvitation() error = %v", err)
	}

	_, err := invitations.Accept(ctx, invitee.ID, "expired-token")
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 400 {
		t.Fatalf("Accept() error = %v, expected 400", err)
	}

	stale, err := store.GetInvitationByToken(ctx, "expired-token")
	if err != nil {
		t.Fatalf("GetInvitationByToken() error = %v", err)
	}
	if stale.Status != models.InvitationExpired {
		t.Errorf("status = %q, expected expired", stale.Status)
	}
}

func TestAccept_UnknownToken(t *testing.T) {
	store := newTestStore(t)
	invitations := NewInvitationService(store)

	user, _ := seedUserWithOrg(t, store, "alice@example.com", "Alice")

	_, err := invitations.Accept(context.Background(), user.ID, "no-such-token")
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 404 {
		t.Errorf("Accept() error = %v, expected 404", err)
	}
}
