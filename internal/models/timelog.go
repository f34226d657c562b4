package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeLog records time spent on a task. A nil EndTime marks a running timer;
// at most one log per user may be running at any moment. The storage layer
// does not enforce that rule — callers must check GetActiveTimeLog before
// creating a new log.
type TimeLog struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	TaskID    string     `gorm:"size:36;index;not null" json:"taskId"`
	UserID    string     `gorm:"size:36;index;not null" json:"userId"`
	StartTime time.Time  `gorm:"not null" json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Duration  *int64     `json:"duration,omitempty"` // seconds, computed at stop time
	Approved  bool       `gorm:"default:false" json:"approved"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (TimeLog) TableName() string { return "time_logs" }

func (l *TimeLog) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
