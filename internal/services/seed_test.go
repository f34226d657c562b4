package services

import (
	"context"
	"testing"
)

func TestSeedSampleProject(t *testing.T) {
	store := newTestStore(t)
	seeder := NewSeedService(store)
	ctx := context.Background()

	user, org := seedUserWithOrg(t, store, "alice@example.com", "Alice")

	if err := seeder.SeedSampleProject(ctx, user, org); err != nil {
		t.Fatalf("SeedSampleProject() error = %v", err)
	}

	projects, err := store.ListProjectsByOrganization(ctx, org.ID)
	if err != nil {
		t.Fatalf("ListProjectsByOrganization() error = %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("projects = %d, expected 1", len(projects))
	}
	if projects[0].Name != "Getting Started" {
		t.Errorf("project name = %q", projects[0].Name)
	}

	tasks, err := store.ListTasksByProject(ctx, projects[0].ID)
	if err != nil {
		t.Fatalf("ListTasksByProject() error = %v", err)
	}
	if len(tasks) != 3 {
		t.Errorf("sample tasks = %d, expected 3", len(tasks))
	}

	updated, err := store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if !updated.Seeded {
		t.Error("seeded flag not set")
	}
}

func TestSeedSampleProject_RunsOnce(t *testing.T) {
	store := newTestStore(t)
	seeder := NewSeedService(store)
	ctx := context.Background()

	user, org := seedUserWithOrg(t, store, "alice@example.com", "Alice")

	if err := seeder.SeedSampleProject(ctx, user, org); err != nil {
		t.Fatalf("SeedSampleProject() error = %v", err)
	}

	again, err := store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if err := seeder.SeedSampleProject(ctx, again, org); err != nil {
		t.Fatalf("second SeedSampleProject() error = %v", err)
	}

	projects, err := store.ListProjectsByOrganization(ctx, org.ID)
	if err != nil {
		t.Fatalf("ListProjectsByOrganization() error = %v", err)
	}
	if len(projects) != 1 {
		t.Errorf("projects after reseed = %d, expected 1", len(projects))
	}
}
