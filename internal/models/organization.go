package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization roles.
const (
	OrgRoleAdmin    = "admin"
	OrgRoleTeamLead = "team_lead"
	OrgRoleMember   = "member"
)

// Organization is the root of a tenant. Never auto-deleted.
type Organization struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	ContactEmail string    `gorm:"size:255" json:"contactEmail,omitempty"`
	Address      string    `gorm:"size:500" json:"address,omitempty"`
	OwnerID      string    `gorm:"size:36;index;not null" json:"ownerId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Organization) TableName() string { return "organizations" }

func (o *Organization) BeforeCreate(*gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrganizationMember links a user to an organization. Unique per (org, user).
// Every organization has at least one admin member (its creator) at creation.
type OrganizationMember struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	OrganizationID string    `gorm:"size:36;uniqueIndex:idx_org_user;not null" json:"organizationId"`
	UserID         string    `gorm:"size:36;uniqueIndex:idx_org_user;not null" json:"userId"`
	Role           string    `gorm:"size:50;default:member" json:"role"` // admin, team_lead, member
	JoinedAt       time.Time `json:"joinedAt"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (OrganizationMember) TableName() string { return "organization_members" }

func (m *OrganizationMember) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now()
	}
	return nil
}

// OrganizationMemberInfo is a membership row merged with its user record.
type OrganizationMemberInfo struct {
	OrganizationMember
	User *User `json:"user,omitempty"`
}
