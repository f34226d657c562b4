package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types.
const (
	NotificationTaskAssigned   = "task_assigned"
	NotificationStatusChanged  = "status_changed"
	NotificationMentioned      = "mentioned"
	NotificationDueReminder    = "due_reminder"
	NotificationAddedToProject = "added_to_project"
)

// Notification is a per-user inbox entry.
type Notification struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;index;not null" json:"userId"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	Title     string    `gorm:"size:300" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Read      bool      `gorm:"column:is_read;default:false;index" json:"read"`
	TaskID    *string   `gorm:"size:36" json:"taskId,omitempty"`
	ProjectID *string   `gorm:"size:36" json:"projectId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Notification) TableName() string { return "notifications" }

func (n *Notification) BeforeCreate(*gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
