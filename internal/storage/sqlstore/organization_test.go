package sqlstore

import (
	"context"
	"testing"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
)

func TestCreateOrganization_OwnerBecomesAdmin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := mustCreateUser(t, s, "owner@example.com", "Owner")
	org := mustCreateOrg(t, s, "Acme", owner)

	members, err := s.ListOrganizationMembers(ctx, org.ID)
	if err != nil {
		t.Fatalf("ListOrganizationMembers() error = %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("members = %d, expected 1", len(members))
	}
	if members[0].UserID != owner.ID {
		t.Errorf("member user = %q, expected owner %q", members[0].UserID, owner.ID)
	}
	if members[0].Role != models.OrgRoleAdmin {
		t.Errorf("member role = %q, expected admin", members[0].Role)
	}
	if members[0].User == nil || members[0].User.Email != "owner@example.com" {
		t.Error("member info should include the user record")
	}
}

func TestEnsureWorkspace_CreatesOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := mustCreateUser(t, s, "alice@example.com", "Alice")

	first, err := s.EnsureWorkspace(ctx, user)
	if err != nil {
		t.Fatalf("EnsureWorkspace() error = %v", err)
	}
	if first.Name != "Alice's Workspace" {
		t.Errorf("workspace name = %q", first.Name)
	}

	second, err := s.EnsureWorkspace(ctx, user)
	if err != nil {
		t.Fatalf("EnsureWorkspace() second call error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second call created a new workspace: %q != %q", second.ID, first.ID)
	}

	orgs, err := s.ListOrganizationsByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListOrganizationsByUser() error = %v", err)
	}
	if len(orgs) != 1 {
		t.Errorf("organizations = %d, expected 1", len(orgs))
	}
}

func TestEnsureWorkspace_ReturnsExistingMembership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := mustCreateUser(t, s, "owner@example.com", "Owner")
	user := mustCreateUser(t, s, "bob@example.com", "Bob")
	org := mustCreateOrg(t, s, "Acme", owner)

	if _, err := s.AddOrganizationMember(ctx, &models.OrganizationMember{
		OrganizationID: org.ID, UserID: user.ID, Role: models.OrgRoleMember,
	}); err != nil {
		t.Fatalf("AddOrganizationMember() error = %v", err)
	}

	got, err := s.EnsureWorkspace(ctx, user)
	if err != nil {
		t.Fatalf("EnsureWorkspace() error = %v", err)
	}
	if got.ID != org.ID {
		t.Errorf("workspace = %q, expected existing org %q", got.ID, org.ID)
	}
}

func TestAddOrganizationMember_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := mustCreateUser(t, s, "owner@example.com", "Owner")
	user := mustCreateUser(t, s, "bob@example.com", "Bob")
	org := mustCreateOrg(t, s, "Acme", owner)

	first, err := s.AddOrganizationMember(ctx, &models.OrganizationMember{
		OrganizationID: org.ID, UserID: user.ID, Role: models.OrgRoleMember,
	})
	if err != nil {
		t.Fatalf("AddOrganizationMember() error = %v", err)
	}

	second, err := s.AddOrganizationMember(ctx, &models.OrganizationMember{
		OrganizationID: org.ID, UserID: user.ID, Role: models.OrgRoleAdmin,
	})
	if err != nil {
		t.Fatalf("second AddOrganizationMember() error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("duplicate add created a new row: %q != %q", second.ID, first.ID)
	}
	if second.Role != models.OrgRoleMember {
		t.Errorf("duplicate add changed role to %q", second.Role)
	}

	members, err := s.ListOrganizationMembers(ctx, org.ID)
	if err != nil {
		t.Fatalf("ListOrganizationMembers() error = %v", err)
	}
	if len(members) != 2 { // owner + bob
		t.Errorf("members = %d, expected 2", len(members))
	}
}

func TestRemoveOrganizationMember(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := mustCreateUser(t, s, "owner@example.com", "Owner")
	user := mustCreateUser(t, s, "bob@example.com", "Bob")
	org := mustCreateOrg(t, s, "Acme", owner)

	if _, err := s.AddOrganizationMember(ctx, &models.OrganizationMember{
		OrganizationID: org.ID, UserID: user.ID,
	}); err != nil {
		t.Fatalf("AddOrganizationMember() error = %v", err)
	}
	if err := s.RemoveOrganizationMember(ctx, org.ID, user.ID); err != nil {
		t.Fatalf("RemoveOrganizationMember() error = %v", err)
	}

	orgs, err := s.ListOrganizationsByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListOrganizationsByUser() error = %v", err)
	}
	if len(orgs) != 0 {
		t.Errorf("organizations after removal = %d, expected 0", len(orgs))
	}

	// Removing again is a no-op.
	if err := s.RemoveOrganizationMember(ctx, org.ID, user.ID); err != nil {
		t.Errorf("repeated removal error = %v", err)
	}
}

func TestUpdateOrganization_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateOrganization(context.Background(), "no-such-id", storage.OrganizationPatch{
		Name: strPtr("New Name"),
	})
	if !storage.IsNotFound(err) {
		t.Errorf("error = %v, expected ErrNotFound", err)
	}
}
