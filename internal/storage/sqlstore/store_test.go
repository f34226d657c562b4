package sqlstore

import (
	"context"
	"testing"

	"github.com/planbase/planbase/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestStore opens a fresh in-memory database per test.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	s := New(db)
	if err := s.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

func mustCreateUser(t *testing.T, s *Store, email, name string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: name, Password: "hash"}
	if err := s.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) error = %v", email, err)
	}
	return user
}

func mustCreateOrg(t *testing.T, s *Store, name string, owner *models.User) *models.Organization {
	t.Helper()
	org := &models.Organization{Name: name, OwnerID: owner.ID}
	if err := s.CreateOrganization(context.Background(), org); err != nil {
		t.Fatalf("CreateOrganization(%s) error = %v", name, err)
	}
	return org
}

func mustCreateProject(t *testing.T, s *Store, name string, org *models.Organization, creator *models.User) *models.Project {
	t.Helper()
	project := &models.Project{Name: name, OrganizationID: org.ID, CreatedBy: creator.ID}
	if err := s.CreateProject(context.Background(), project); err != nil {
		t.Fatalf("CreateProject(%s) error = %v", name, err)
	}
	return project
}

func mustCreateTask(t *testing.T, s *Store, project *models.Project, title string) *models.Task {
	t.Helper()
	task := &models.Task{Title: title, ProjectID: project.ID}
	if err := s.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("CreateTask(%s) error = %v", title, err)
	}
	return task
}

func strPtr(s string) *string { return &s }
