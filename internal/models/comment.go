package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is attached to a task. Immutable after creation in the current API.
type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	TaskID    string    `gorm:"size:36;index;not null" json:"taskId"`
	AuthorID  string    `gorm:"size:36;not null" json:"authorId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Mentions  []string  `gorm:"serializer:json" json:"mentions,omitempty"` // mentioned user ids
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Comment) TableName() string { return "comments" }

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
