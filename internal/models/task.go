package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task statuses.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusInReview   = "in_review"
	TaskStatusTesting    = "testing"
	TaskStatusDone       = "done"
)

// Task priorities.
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

// TaskStatuses lists all valid statuses in workflow order.
var TaskStatuses = []string{
	TaskStatusTodo, TaskStatusInProgress, TaskStatusInReview,
	TaskStatusTesting, TaskStatusDone,
}

// TaskPriorities lists all valid priorities.
var TaskPriorities = []string{
	TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent,
}

// Task is a unit of work under a project. ParentID enables one level of
// subtask nesting; a parent must not itself have a parent (depth limit is not
// enforced at write time, see DESIGN.md). Deleting a task cascades to its
// time logs and comments.
type Task struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Title        string     `gorm:"size:500;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	ProjectID    string     `gorm:"size:36;index;not null" json:"projectId"`
	Status       string     `gorm:"size:50;default:todo;index" json:"status"`
	Priority     string     `gorm:"size:50;default:medium" json:"priority"`
	AssigneeID   *string    `gorm:"size:36;index" json:"assigneeId,omitempty"`
	ReviewerID   *string    `gorm:"size:36" json:"reviewerId,omitempty"`
	TesterID     *string    `gorm:"size:36" json:"testerId,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	DueDate      *time.Time `gorm:"index" json:"dueDate,omitempty"`
	DeliveryRole string     `gorm:"size:100" json:"deliveryRole,omitempty"`
	MilestoneID  *string    `gorm:"size:36;index" json:"milestoneId,omitempty"`
	Slug         string     `gorm:"size:520;index" json:"slug"`
	Order        int        `gorm:"column:task_order;default:0" json:"order"`
	ParentID     *string    `gorm:"size:36;index" json:"parentId,omitempty"`
	CreatedAt    time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (Task) TableName() string { return "tasks" }

func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
