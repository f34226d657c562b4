package sqlstore

import (
	"context"
	"testing"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
)

func TestCreateProject_SlugCollision(t *testing.T) {
	s := newTestStore(t)

	owner := mustCreateUser(t, s, "owner@example.com", "Owner")
	org := mustCreateOrg(t, s, "Acme", owner)

	p1 := mustCreateProject(t, s, "Website Redesign", org, owner)
	p2 := mustCreateProject(t, s, "Website Redesign", org, owner)
	p3 := mustCreateProject(t, s, "Website Redesign", org, owner)

	if p1.Slug != "website-redesign" {
		t.Errorf("first slug = %q", p1.Slug)
	}
	if p2.Slug != "website-redesign-2" {
		t.Errorf("second slug = %q", p2.Slug)
	}
	if p3.Slug != "website-redesign-3" {
		t.Errorf("third slug = %q", p3.Slug)
	}
}

func TestDeleteProject_Cascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := mustCreateUser(t, s, "owner@example.com", "Owner")
	org := mustCreateOrg(t, s, "Acme", owner)
	project := mustCreateProject(t, s, "Doomed", org, owner)
	task := mustCreateTask(t, s, project, "Task A")

	milestone := &models.Milestone{Title: "v1", ProjectID: project.ID}
	if err := s.CreateMilestone(ctx, milestone); err != nil {
		t.Fatalf("CreateMilestone() error = %v", err)
	}
	log := &models.TimeLog{TaskID: task.ID, UserID: owner.ID}
	if err := s.CreateTimeLog(ctx, log); err != nil {
		t.Fatalf("CreateTimeLog() error = %v", err)
	}
	comment := &models.Comment{TaskID: task.ID, AuthorID: owner.ID, Content: "hi"}
	if err := s.CreateComment(ctx, comment); err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}
	if _, err := s.AddProjectMember(ctx, &models.ProjectMember{
		ProjectID: project.ID, UserID: owner.ID, Role: models.OrgRoleAdmin,
	}); err != nil {
		t.Fatalf("AddProjectMember() error = %v", err)
	}

	if err := s.DeleteProject(ctx, project.ID); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}

	if _, err := s.GetProject(ctx, project.ID); !storage.IsNotFound(err) {
		t.Errorf("GetProject after delete: error = %v, expected ErrNotFound", err)
	}
	if _, err := s.GetTask(ctx, task.ID); !storage.IsNotFound(err) {
		t.Errorf("GetTask after delete: error = %v, expected ErrNotFound", err)
	}
	if _, err := s.GetMilestone(ctx, milestone.ID); !storage.IsNotFound(err) {
		t.Errorf("GetMilestone after delete: error = %v, expected ErrNotFound", err)
	}
	if _, err := s.GetTimeLog(ctx, log.ID); !storage.IsNotFound(err) {
		t.Errorf("GetTimeLog after delete: error = %v, expected ErrNotFound", err)
	}
	comments, err := s.ListCommentsByTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("ListCommentsByTask() error = %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("comments after delete = %d, expected 0", len(comments))
	}
	members, err := s.ListProjectMembers(ctx, project.ID)
	if err != nil {
		t.Fatalf("ListProjectMembers() error = %v", err)
	}
	if len(members) != 0 {
		t.Errorf("members after delete = %d, expected 0", len(members))
	}
}

func TestIsUserInProject(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := mustCreateUser(t, s, "owner@example.com", "Owner")
	orgMember := mustCreateUser(t, s, "member@example.com", "Member")
	outsider := mustCreateUser(t, s, "out@example.com", "Outsider")
	org := mustCreateOrg(t, s, "Acme", owner)

	if _, err := s.AddOrganizationMember(ctx, &models.OrganizationMember{
		OrganizationID: org.ID, UserID: orgMember.ID,
	}); err != nil {
		t.Fatalf("AddOrganizationMember() error = %v", err)
	}

	public := mustCreateProject(t, s, "Public", org, owner)
	private := &models.Project{Name: "Private", OrganizationID: org.ID, IsPrivate: true, CreatedBy: owner.ID}
	if err := s.CreateProject(ctx, private); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	if _, err := s.AddProjectMember(ctx, &models.ProjectMember{
		ProjectID: private.ID, UserID: owner.ID, Role: models.OrgRoleAdmin,
	}); err != nil {
		t.Fatalf("AddProjectMember() error = %v", err)
	}

	tests := []struct {
		name      string
		userID    string
		projectID string
		expected  bool
	}{
		{"org member sees public project", orgMember.ID, public.ID, true},
		{"outsider denied public project", outsider.ID, public.ID, false},
		{"org member denied private project", orgMember.ID, private.ID, false},
		{"direct member sees private project", owner.ID, private.ID, true},
		{"missing project", owner.ID, "no-such-id", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.IsUserInProject(ctx, tt.userID, tt.projectID)
			if err != nil {
				t.Fatalf("IsUserInProject() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("IsUserInProject() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCanUserAccessTask(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := mustCreateUser(t, s, "owner@example.com", "Owner")
	outsider := mustCreateUser(t, s, "out@example.com", "Outsider")
	org := mustCreateOrg(t, s, "Acme", owner)
	project := mustCreateProject(t, s, "Website", org, owner)
	task := mustCreateTask(t, s, project, "Task A")

	ok, err := s.CanUserAccessTask(ctx, owner.ID, task.ID)
	if err != nil {
		t.Fatalf("CanUserAccessTask() error = %v", err)
	}
	if !ok {
		t.Error("org member should access the task")
	}

	ok, err = s.CanUserAccessTask(ctx, outsider.ID, task.ID)
	if err != nil {
		t.Fatalf("CanUserAccessTask() error = %v", err)
	}
	if ok {
		t.Error("outsider should not access the task")
	}

	ok, err = s.CanUserAccessTask(ctx, owner.ID, "no-such-task")
	if err != nil {
		t.Fatalf("CanUserAccessTask() error = %v", err)
	}
	if ok {
		t.Error("missing task should deny access, not error")
	}
}

func TestListProjectsByUser_ScopedToOrganizations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, s, "alice@example.com", "Alice")
	bob := mustCreateUser(t, s, "bob@example.com", "Bob")
	aliceOrg := mustCreateOrg(t, s, "Alice Org", alice)
	bobOrg := mustCreateOrg(t, s, "Bob Org", bob)

	mustCreateProject(t, s, "Alpha", aliceOrg, alice)
	mustCreateProject(t, s, "Beta", aliceOrg, alice)
	mustCreateProject(t, s, "Gamma", bobOrg, bob)

	projects, err := s.ListProjectsByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListProjectsByUser() error = %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("projects = %d, expected 2", len(projects))
	}
	for _, p := range projects {
		if p.OrganizationID != aliceOrg.ID {
			t.Errorf("project %q from unexpected org %q", p.Name, p.OrganizationID)
		}
	}
}

func TestAddProjectMember_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := mustCreateUser(t, s, "owner@example.com", "Owner")
	org := mustCreateOrg(t, s, "Acme", owner)
	project := mustCreateProject(t, s, "Website", org, owner)

	first, err := s.AddProjectMember(ctx, &models.ProjectMember{
		ProjectID: project.ID, UserID: owner.ID, Role: "admin",
	})
	if err != nil {
		t.Fatalf("AddProjectMember() error = %v", err)
	}
	second, err := s.AddProjectMember(ctx, &models.ProjectMember{
		ProjectID: project.ID, UserID: owner.ID, Role: "member",
	})
	if err != nil {
		t.Fatalf("second AddProjectMember() error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("duplicate add created a new row")
	}
}

func TestUpdateProject_ClearsNothingByDefault(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := mustCreateUser(t, s, "owner@example.com", "Owner")
	org := mustCreateOrg(t, s, "Acme", owner)
	project := mustCreateProject(t, s, "Website", org, owner)

	updated, err := s.UpdateProject(ctx, project.ID, storage.ProjectPatch{
		Description: strPtr("now with details"),
	})
	if err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}
	if updated.Name != "Website" {
		t.Errorf("name changed to %q", updated.Name)
	}
	if updated.Description != "now with details" {
		t.Errorf("description = %q", updated.Description)
	}
	if updated.Slug != project.Slug {
		t.Errorf("slug changed on update: %q", updated.Slug)
	}
}
