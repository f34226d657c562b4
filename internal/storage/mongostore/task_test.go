package mongostore

import (
	"reflect"
	"testing"
	"time"

	"github.com/planbase/planbase/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildTaskFilter_ScopeOnly(t *testing.T) {
	q := buildTaskFilter(storage.TaskFilter{ProjectIDs: []string{"p1", "p2"}})

	expected := bson.M{"project_id": bson.M{"$in": []string{"p1", "p2"}}}
	if !reflect.DeepEqual(q, expected) {
		t.Errorf("filter = %v, expected %v", q, expected)
	}
}

func TestBuildTaskFilter_AllFields(t *testing.T) {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	parent := "parent-id"

	q := buildTaskFilter(storage.TaskFilter{
		ProjectIDs:  []string{"p1"},
		Statuses:    []string{"todo", "in_progress"},
		Priorities:  []string{"high"},
		AssigneeIDs: []string{"u1"},
		ParentID:    &parent,
		Query:       "login",
		DueFrom:     &from,
		DueTo:       &to,
	})

	if !reflect.DeepEqual(q["status"], bson.M{"$in": []string{"todo", "in_progress"}}) {
		t.Errorf("status clause = %v", q["status"])
	}
	if !reflect.DeepEqual(q["priority"], bson.M{"$in": []string{"high"}}) {
		t.Errorf("priority clause = %v", q["priority"])
	}
	if !reflect.DeepEqual(q["assignee_id"], bson.M{"$in": []string{"u1"}}) {
		t.Errorf("assignee clause = %v", q["assignee_id"])
	}
	if q["parent_id"] != "parent-id" {
		t.Errorf("parent clause = %v", q["parent_id"])
	}
	if !reflect.DeepEqual(q["title"], bson.M{"$regex": "login", "$options": "i"}) {
		t.Errorf("title clause = %v", q["title"])
	}
	if !reflect.DeepEqual(q["due_date"], bson.M{"$gte": from, "$lte": to}) {
		t.Errorf("due clause = %v", q["due_date"])
	}
}

func TestBuildTaskFilter_TopLevelParent(t *testing.T) {
	empty := ""
	q := buildTaskFilter(storage.TaskFilter{ProjectIDs: []string{"p1"}, ParentID: &empty})

	// Empty ParentID means top-level tasks: the field is absent in documents,
	// which a nil match covers.
	if v, ok := q["parent_id"]; !ok || v != nil {
		t.Errorf("parent clause = %v, expected nil", v)
	}
}

func TestBuildTaskFilter_QueryIsEscaped(t *testing.T) {
	q := buildTaskFilter(storage.TaskFilter{ProjectIDs: []string{"p1"}, Query: "a.b*"})

	title, ok := q["title"].(bson.M)
	if !ok {
		t.Fatalf("title clause = %v", q["title"])
	}
	// Regex metacharacters in user input must match literally.
	if title["$regex"] != `a\.b\*` {
		t.Errorf("regex = %q", title["$regex"])
	}
}

func TestTaskSortFields_CoverAllPublicFields(t *testing.T) {
	public := []string{
		storage.SortByCreatedAt, storage.SortByDueDate,
		storage.SortByPriority, storage.SortByStatus, storage.SortByOrder,
	}
	for _, f := range public {
		if _, ok := taskSortFields[f]; !ok {
			t.Errorf("sort field %q has no document mapping", f)
		}
	}
}
