package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Milestone statuses.
const (
	MilestoneStatusOpen   = "open"
	MilestoneStatusClosed = "closed"
)

// Milestone groups tasks under a project. Deleting a milestone does not
// cascade to tasks; readers must tolerate an orphaned MilestoneID.
type Milestone struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Title       string     `gorm:"size:300;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	ProjectID   string     `gorm:"size:36;index;not null" json:"projectId"`
	Status      string     `gorm:"size:50;default:open" json:"status"` // open, closed
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Milestone) TableName() string { return "milestones" }

func (m *Milestone) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
