package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/planbase/planbase/internal/config"
	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store implements storage.Store against a relational database through GORM.
// The driver (postgres, mysql or sqlite) is picked from config; all queries
// use portable SQL so behavior is identical across drivers.
type Store struct {
	db *gorm.DB
}

// Open connects to the configured relational database, runs migrations and
// returns the store.
func Open(cfg *config.DatabaseConfig) (*Store, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres", "":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	s := &Store{db: db}
	if err := s.AutoMigrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// New wraps an existing gorm handle. Used by tests to run against an
// in-memory database.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationMember{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.Milestone{},
		&models.TimeLog{},
		&models.Comment{},
		&models.Notification{},
		&models.Invitation{},
	)
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// wrapNotFound maps gorm's record-not-found onto the storage sentinel.
func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrNotFound
	}
	return err
}

// wrapDuplicate maps unique-constraint violations onto the storage sentinel.
func wrapDuplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return storage.ErrDuplicateKey
	}
	return err
}
