package mongostore

import (
	"context"
	"errors"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateProject derives a unique slug from the project name before insert.
func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	slug, err := storage.UniqueSlug(project.Name, func(candidate string) (bool, error) {
		count, err := s.projects.CountDocuments(ctx, bson.M{"slug": candidate})
		return count > 0, err
	})
	if err != nil {
		return err
	}
	project.Slug = slug

	ts := now()
	project.CreatedAt, project.UpdatedAt = ts, ts
	doc := newProjectDoc(project)
	if _, err := s.projects.InsertOne(ctx, doc); err != nil {
		return wrapDuplicate(err)
	}
	project.ID = doc.ID.Hex()
	return nil
}

func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, err
	}
	var doc projectDoc
	if err := s.projects.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrapNotFound(err)
	}
	project := doc.model()
	return &project, nil
}

func (s *Store) ListProjectsByOrganization(ctx context.Context, orgID string) ([]models.Project, error) {
	return s.listProjects(ctx, bson.M{"organization_id": orgID})
}

// ListProjectsByUser resolves the user's organization memberships and returns
// every project in those organizations. There is no referential constraint
// stopping a query from reaching another tenant's documents, so this scoping
// is a hard correctness requirement for every caller-facing task query.
func (s *Store) ListProjectsByUser(ctx context.Context, userID string) ([]models.Project, error) {
	orgs, err := s.ListOrganizationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return []models.Project{}, nil
	}
	orgIDs := make([]string, 0, len(orgs))
	for _, o := range orgs {
		orgIDs = append(orgIDs, o.ID)
	}
	return s.listProjects(ctx, bson.M{"organization_id": bson.M{"$in": orgIDs}})
}

func (s *Store) listProjects(ctx context.Context, filter bson.M) ([]models.Project, error) {
	cur, err := s.projects.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []projectDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	projects := make([]models.Project, 0, len(docs))
	for i := range docs {
		projects = append(projects, docs[i].model())
	}
	return projects, nil
}

func (s *Store) UpdateProject(ctx context.Context, id string, patch storage.ProjectPatch) (*models.Project, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.IsPrivate != nil {
		set["is_private"] = *patch.IsPrivate
	}

	var doc projectDoc
	err = s.projects.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	project := doc.model()
	return &project, nil
}

// DeleteProject hand-emulates the cascade the relational schema would get
// from foreign keys: time logs and comments of the project's tasks, the
// tasks, milestones and memberships, then the project itself. Omitting any
// step orphans documents. Children are deleted before the parent; a failure
// between steps is possible and is not retried.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if _, err := parseOID(id); err != nil {
		return nil // malformed id: nothing to delete
	}

	taskIDs, err := s.taskIDsByProject(ctx, []string{id})
	if err != nil {
		return err
	}
	if len(taskIDs) > 0 {
		if _, err := s.timeLogs.DeleteMany(ctx, bson.M{"task_id": bson.M{"$in": taskIDs}}); err != nil {
			return err
		}
		if _, err := s.comments.DeleteMany(ctx, bson.M{"task_id": bson.M{"$in": taskIDs}}); err != nil {
			return err
		}
		if _, err := s.tasks.DeleteMany(ctx, bson.M{"project_id": id}); err != nil {
			return err
		}
	}
	if _, err := s.milestones.DeleteMany(ctx, bson.M{"project_id": id}); err != nil {
		return err
	}
	if _, err := s.members.DeleteMany(ctx, bson.M{"project_id": id}); err != nil {
		return err
	}

	oid, _ := parseOID(id)
	_, err = s.projects.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

// AddProjectMember is idempotent per (project, user): adding an existing pair
// returns the original row.
func (s *Store) AddProjectMember(ctx context.Context, member *models.ProjectMember) (*models.ProjectMember, error) {
	pair := bson.M{"project_id": member.ProjectID, "user_id": member.UserID}

	var existing projectMemberDoc
	err := s.members.FindOne(ctx, pair).Decode(&existing)
	if err == nil {
		m := existing.model()
		return &m, nil
	}
	if !errors.Is(wrapNotFound(err), storage.ErrNotFound) {
		return nil, err
	}

	ts := now()
	member.CreatedAt, member.UpdatedAt = ts, ts
	if member.AddedAt.IsZero() {
		member.AddedAt = ts
	}
	doc := newProjectMemberDoc(member)
	if _, err := s.members.InsertOne(ctx, doc); err != nil {
		if errors.Is(wrapDuplicate(err), storage.ErrDuplicateKey) {
			if err := s.members.FindOne(ctx, pair).Decode(&existing); err == nil {
				m := existing.model()
				return &m, nil
			}
		}
		return nil, err
	}
	member.ID = doc.ID.Hex()
	return member, nil
}

func (s *Store) ListProjectMembers(ctx context.Context, projectID string) ([]models.ProjectMemberInfo, error) {
	cur, err := s.members.Find(ctx,
		bson.M{"project_id": projectID},
		options.Find().SetSort(bson.D{{Key: "added_at", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []projectMemberDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.UserID)
	}
	users, err := s.ListUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	infos := make([]models.ProjectMemberInfo, 0, len(docs))
	for _, d := range docs {
		infos = append(infos, models.ProjectMemberInfo{
			ProjectMember: d.model(),
			User:          byID[d.UserID],
		})
	}
	return infos, nil
}

func (s *Store) RemoveProjectMember(ctx context.Context, projectID, userID string) error {
	_, err := s.members.DeleteMany(ctx,
		bson.M{"project_id": projectID, "user_id": userID})
	return err
}

// IsUserInProject reports membership: a direct project member, or any member
// of the owning organization when the project is not private.
func (s *Store) IsUserInProject(ctx context.Context, userID, projectID string) (bool, error) {
	count, err := s.members.CountDocuments(ctx,
		bson.M{"project_id": projectID, "user_id": userID})
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		if storage.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if project.IsPrivate {
		return false, nil
	}
	count, err = s.orgMembers.CountDocuments(ctx,
		bson.M{"organization_id": project.OrganizationID, "user_id": userID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CanUserAccessTask resolves the task's project and delegates to the
// project-membership check.
func (s *Store) CanUserAccessTask(ctx context.Context, userID, taskID string) (bool, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		if storage.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return s.IsUserInProject(ctx, userID, task.ProjectID)
}
