package mongostore

import (
	"testing"
	"time"

	"github.com/planbase/planbase/internal/models"
	"github.com/planbase/planbase/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseOID_MalformedIsNotFound(t *testing.T) {
	for _, id := range []string{"", "short", "not-hex-not-hex-not-hex-", "68b1c2d3"} {
		if _, err := parseOID(id); !storage.IsNotFound(err) {
			t.Errorf("parseOID(%q) error = %v, expected ErrNotFound", id, err)
		}
	}
}

func TestParseOID_Valid(t *testing.T) {
	oid, err := parseOID("68b1c2d3e4f5a6b7c8d9e0f1")
	if err != nil {
		t.Fatalf("parseOID() error = %v", err)
	}
	if oid.Hex() != "68b1c2d3e4f5a6b7c8d9e0f1" {
		t.Errorf("round trip = %q", oid.Hex())
	}
}

func TestApplyRef(t *testing.T) {
	set, unset := bson.M{}, bson.M{}

	applyRef(set, unset, "untouched", nil)
	value := "u1"
	applyRef(set, unset, "assignee_id", &value)
	empty := ""
	applyRef(set, unset, "milestone_id", &empty)

	if _, ok := set["untouched"]; ok {
		t.Error("nil value must not set the field")
	}
	if set["assignee_id"] != "u1" {
		t.Errorf("set = %v", set)
	}
	if _, ok := unset["milestone_id"]; !ok {
		t.Error("empty string must unset the field")
	}
}

func TestApplyDate(t *testing.T) {
	set, unset := bson.M{}, bson.M{}

	applyDate(set, unset, "untouched", nil)
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	applyDate(set, unset, "due_date", &due)
	applyDate(set, unset, "start_date", &time.Time{})

	if _, ok := set["untouched"]; ok {
		t.Error("nil value must not set the field")
	}
	if set["due_date"] != due {
		t.Errorf("set = %v", set)
	}
	if _, ok := unset["start_date"]; !ok {
		t.Error("zero time must unset the field")
	}
}

func TestTaskDoc_RoundTrip(t *testing.T) {
	assignee := "u1"
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	task := &models.Task{
		Title:      "Fix login",
		ProjectID:  "p1",
		Status:     models.TaskStatusInProgress,
		Priority:   models.TaskPriorityHigh,
		AssigneeID: &assignee,
		DueDate:    &due,
		Slug:       "fix-login",
		Order:      3,
	}

	doc := newTaskDoc(task)
	if doc.ID.IsZero() {
		t.Fatal("doc did not get an object id")
	}

	got := doc.model()
	if got.ID != doc.ID.Hex() {
		t.Errorf("id = %q, expected %q", got.ID, doc.ID.Hex())
	}
	if got.Title != task.Title || got.Status != task.Status || got.Order != task.Order {
		t.Errorf("fields lost in round trip: %+v", got)
	}
	if got.AssigneeID == nil || *got.AssigneeID != assignee {
		t.Errorf("assignee = %v", got.AssigneeID)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("due date = %v", got.DueDate)
	}
}

func TestNow_MillisecondPrecision(t *testing.T) {
	ts := now()
	if ts.Nanosecond()%int(time.Millisecond) != 0 {
		t.Errorf("timestamp not truncated to milliseconds: %v", ts)
	}
}
