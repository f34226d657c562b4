package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project belongs to exactly one organization. Slug is derived from the name
// and unique across projects, collisions resolved by numeric suffix.
type Project struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Name           string    `gorm:"size:200;not null" json:"name"`
	Slug           string    `gorm:"uniqueIndex;size:220" json:"slug"`
	Description    string    `gorm:"type:text" json:"description,omitempty"`
	OrganizationID string    `gorm:"size:36;index;not null" json:"organizationId"`
	IsPrivate      bool      `gorm:"default:false" json:"isPrivate"`
	CreatedBy      string    `gorm:"size:36" json:"createdBy"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProjectMember links a user to a project. Unique per (project, user);
// adding the same pair twice returns the existing row.
type ProjectMember struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ProjectID string    `gorm:"size:36;uniqueIndex:idx_project_user;not null" json:"projectId"`
	UserID    string    `gorm:"size:36;uniqueIndex:idx_project_user;not null" json:"userId"`
	Role      string    `gorm:"size:50;default:member" json:"role"`
	AddedAt   time.Time `json:"addedAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ProjectMember) TableName() string { return "project_members" }

func (m *ProjectMember) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.AddedAt.IsZero() {
		m.AddedAt = time.Now()
	}
	return nil
}

// ProjectMemberInfo is a membership row merged with its user record.
type ProjectMemberInfo struct {
	ProjectMember
	User *User `json:"user,omitempty"`
}
