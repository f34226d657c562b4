package mongostore

import (
	"context"
	"regexp"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"time"
)

// CreateTask derives a slug from the title, unique within the project.
func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}

	slug, err := storage.UniqueSlug(task.Title, func(candidate string) (bool, error) {
		count, err := s.tasks.CountDocuments(ctx,
			bson.M{"project_id": task.ProjectID, "slug": candidate})
		return count > 0, err
	})
	if err != nil {
		return err
	}
	task.Slug = slug

	ts := now()
	task.CreatedAt, task.UpdatedAt = ts, ts
	doc := newTaskDoc(task)
	if _, err := s.tasks.InsertOne(ctx, doc); err != nil {
		return wrapDuplicate(err)
	}
	task.ID = doc.ID.Hex()
	return nil
}

func (s *Store) GetTask(ctx context.Context, id string) (*models.Task, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, err
	}
	var doc taskDoc
	if err := s.tasks.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrapNotFound(err)
	}
	task := doc.model()
	return &task, nil
}

// ListTasksByProject returns tasks ordered by their manual order, ties broken
// by id for determinism.
func (s *Store) ListTasksByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	return s.findTasks(ctx, bson.M{"project_id": projectID},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}))
}

func (s *Store) findTasks(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Task, error) {
	cur, err := s.tasks.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []taskDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	tasks := make([]models.Task, 0, len(docs))
	for i := range docs {
		tasks = append(tasks, docs[i].model())
	}
	return tasks, nil
}

// taskIDsByProject collects task id strings for cascade deletes; time logs
// and comments reference tasks by string id.
func (s *Store) taskIDsByProject(ctx context.Context, projectIDs []string) ([]string, error) {
	cur, err := s.tasks.Find(ctx,
		bson.M{"project_id": bson.M{"$in": projectIDs}},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID.Hex())
	}
	return ids, nil
}

func (s *Store) UpdateTask(ctx context.Context, id string, patch storage.TaskPatch) (*models.Task, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": now()}
	unset := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Priority != nil {
		set["priority"] = *patch.Priority
	}
	applyRef(set, unset, "assignee_id", patch.AssigneeID)
	applyRef(set, unset, "reviewer_id", patch.ReviewerID)
	applyRef(set, unset, "tester_id", patch.TesterID)
	applyRef(set, unset, "milestone_id", patch.MilestoneID)
	applyRef(set, unset, "parent_id", patch.ParentID)
	applyDate(set, unset, "start_date", patch.StartDate)
	applyDate(set, unset, "due_date", patch.DueDate)
	if patch.DeliveryRole != nil {
		set["delivery_role"] = *patch.DeliveryRole
	}
	if patch.Order != nil {
		set["order"] = *patch.Order
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var doc taskDoc
	err = s.tasks.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	task := doc.model()
	return &task, nil
}

// applyRef sets an optional reference field; an empty string clears it.
func applyRef(set, unset bson.M, field string, value *string) {
	if value == nil {
		return
	}
	if *value == "" {
		unset[field] = ""
	} else {
		set[field] = *value
	}
}

// applyDate sets an optional date field; a zero time clears it.
func applyDate(set, unset bson.M, field string, value *time.Time) {
	if value == nil {
		return
	}
	if value.IsZero() {
		unset[field] = ""
	} else {
		set[field] = *value
	}
}

// DeleteTask deletes the task's time logs and comments before the task
// itself. Skipping either step is a correctness bug: nothing else would ever
// clean up the orphans. Idempotent: a missing or malformed id is a no-op.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	oid, err := parseOID(id)
	if err != nil {
		return nil
	}
	if _, err := s.timeLogs.DeleteMany(ctx, bson.M{"task_id": id}); err != nil {
		return err
	}
	if _, err := s.comments.DeleteMany(ctx, bson.M{"task_id": id}); err != nil {
		return err
	}
	_, err = s.tasks.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

// taskSortFields maps public sort fields onto document fields.
var taskSortFields = map[string]string{
	storage.SortByCreatedAt: "created_at",
	storage.SortByDueDate:   "due_date",
	storage.SortByPriority:  "priority",
	storage.SortByStatus:    "status",
	storage.SortByOrder:     "order",
}

// buildTaskFilter translates a storage.TaskFilter into a Mongo filter with
// the same semantics as the relational backend: same fields, same
// case-insensitive substring match, same date-range bounds.
func buildTaskFilter(filter storage.TaskFilter) bson.M {
	q := bson.M{"project_id": bson.M{"$in": filter.ProjectIDs}}

	if len(filter.Statuses) > 0 {
		q["status"] = bson.M{"$in": filter.Statuses}
	}
	if len(filter.Priorities) > 0 {
		q["priority"] = bson.M{"$in": filter.Priorities}
	}
	if len(filter.AssigneeIDs) > 0 {
		q["assignee_id"] = bson.M{"$in": filter.AssigneeIDs}
	}
	if filter.ParentID != nil {
		if *filter.ParentID == "" {
			q["parent_id"] = nil
		} else {
			q["parent_id"] = *filter.ParentID
		}
	}
	if filter.Query != "" {
		q["title"] = bson.M{
			"$regex":   regexp.QuoteMeta(filter.Query),
			"$options": "i",
		}
	}
	if filter.DueFrom != nil || filter.DueTo != nil {
		due := bson.M{}
		if filter.DueFrom != nil {
			due["$gte"] = *filter.DueFrom
		}
		if filter.DueTo != nil {
			due["$lte"] = *filter.DueTo
		}
		q["due_date"] = due
	}
	return q
}

// SearchTasks filters, sorts and paginates within the caller-resolved project
// scope. Total counts matches before pagination, mirroring the relational
// backend exactly.
func (s *Store) SearchTasks(ctx context.Context, filter storage.TaskFilter) (*storage.TaskPage, error) {
	page := &storage.TaskPage{Items: []models.Task{}}
	if len(filter.ProjectIDs) == 0 {
		return page, nil
	}

	q := buildTaskFilter(filter)

	total, err := s.tasks.CountDocuments(ctx, q)
	if err != nil {
		return nil, err
	}
	page.Total = total

	field, ok := taskSortFields[filter.SortBy]
	if !ok {
		field = "created_at"
	}
	direction := 1
	if filter.SortDesc {
		direction = -1
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	items, err := s.findTasks(ctx, q, options.Find().
		SetSort(bson.D{{Key: field, Value: direction}, {Key: "_id", Value: 1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	page.Items = items
	return page, nil
}

// ListTasksDueBetween returns unfinished, assigned tasks with a due date in
// [from, to). Used by the due-reminder scheduler.
func (s *Store) ListTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	return s.findTasks(ctx, bson.M{
		"due_date":    bson.M{"$gte": from, "$lt": to},
		"status":      bson.M{"$ne": models.TaskStatusDone},
		"assignee_id": bson.M{"$nin": bson.A{nil, ""}},
	}, options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}}))
}
