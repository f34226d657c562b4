package services

import (
	"context"
	"testing"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/internal/storage/sqlstore"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestStore backs service tests with an in-memory relational store.
func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	s := sqlstore.New(db)
	if err := s.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

func seedUserWithOrg(t *testing.T, store storage.Store, email, name string) (*models.User, *models.Organization) {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Email: email, Name: name, Password: "hash"}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser(%s) error = %v", email, err)
	}
	org, err := store.EnsureWorkspace(ctx, user)
	if err != nil {
		t.Fatalf("EnsureWorkspace() error = %v", err)
	}
	return user, org
}

func seedTask(t *testing.T, store storage.Store, org *models.Organization, user *models.User, title string) *models.Task {
	t.Helper()
	ctx := context.Background()

	project := &models.Project{Name: title + " project", OrganizationID: org.ID, CreatedBy: user.ID}
	if err := store.CreateProject(ctx, project); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	task := &models.Task{Title: title, ProjectID: project.ID}
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	return task
}
