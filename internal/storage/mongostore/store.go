package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/planbase/planbase/internal/config"
	"github.com/planbase/planbase/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store implements storage.Store against MongoDB. Relations are plain string
// ids with no database-level referential integrity, so cascades and
// cross-collection joins are emulated in application code.
type Store struct {
	client *mongo.Client
	db     *mongo.Database

	users         *mongo.Collection
	organizations *mongo.Collection
	orgMembers    *mongo.Collection
	projects      *mongo.Collection
	members       *mongo.Collection
	tasks         *mongo.Collection
	milestones    *mongo.Collection
	timeLogs      *mongo.Collection
	comments      *mongo.Collection
	notifications *mongo.Collection
	invitations   *mongo.Collection
}

// Open connects to MongoDB, verifies the connection and ensures the unique
// indexes that back the uniqueness invariants (email, slug, membership
// pairs).
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	name := cfg.MongoDatabase
	if name == "" {
		name = "planbase"
	}
	db := client.Database(name)

	s := &Store{
		client:        client,
		db:            db,
		users:         db.Collection("users"),
		organizations: db.Collection("organizations"),
		orgMembers:    db.Collection("organization_members"),
		projects:      db.Collection("projects"),
		members:       db.Collection("project_members"),
		tasks:         db.Collection("tasks"),
		milestones:    db.Collection("milestones"),
		timeLogs:      db.Collection("time_logs"),
		comments:      db.Collection("comments"),
		notifications: db.Collection("notifications"),
		invitations:   db.Collection("invitations"),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	type indexSpec struct {
		coll *mongo.Collection
		idx  mongo.IndexModel
	}
	specs := []indexSpec{
		{s.users, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		{s.projects, mongo.IndexModel{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique}},
		{s.orgMembers, mongo.IndexModel{Keys: bson.D{{Key: "organization_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: unique}},
		{s.members, mongo.IndexModel{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: unique}},
		{s.tasks, mongo.IndexModel{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "slug", Value: 1}}, Options: unique}},
		{s.tasks, mongo.IndexModel{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "order", Value: 1}}}},
		{s.tasks, mongo.IndexModel{Keys: bson.D{{Key: "due_date", Value: 1}}}},
		{s.timeLogs, mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "end_time", Value: 1}}}},
		{s.notifications, mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}}},
		{s.invitations, mongo.IndexModel{Keys: bson.D{{Key: "token", Value: 1}}}},
	}
	for _, spec := range specs {
		if _, err := spec.coll.Indexes().CreateOne(ctx, spec.idx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// parseOID validates an id for this backend. Malformed ids are reported as
// not found, never as a driver error.
func parseOID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, storage.ErrNotFound
	}
	return oid, nil
}

// wrapNotFound maps the driver's no-documents error onto the storage
// sentinel.
func wrapNotFound(err error) error {
	if err == mongo.ErrNoDocuments {
		return storage.ErrNotFound
	}
	return err
}

// wrapDuplicate maps unique-index violations onto the storage sentinel.
func wrapDuplicate(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return storage.ErrDuplicateKey
	}
	return err
}

// now returns the current time at millisecond precision, which is what the
// driver round-trips for BSON dates.
func now() time.Time {
	return time.Now().Truncate(time.Millisecond)
}
