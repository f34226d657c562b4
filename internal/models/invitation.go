package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invitation statuses.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationExpired  = "expired"
)

// Invitation invites an email address into an organization or a project.
// Organization invitations carry a token used in the accept link.
type Invitation struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Email          string    `gorm:"size:255;index;not null" json:"email"`
	Role           string    `gorm:"size:50;default:member" json:"role"`
	OrganizationID *string   `gorm:"size:36;index" json:"organizationId,omitempty"`
	ProjectID      *string   `gorm:"size:36;index" json:"projectId,omitempty"`
	InvitedBy      string    `gorm:"size:36;not null" json:"invitedBy"`
	Token          string    `gorm:"size:64;index" json:"token,omitempty"` // org invitations only
	Status         string    `gorm:"size:50;default:pending" json:"status"`
	ExpiresAt      time.Time `json:"expiresAt"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Invitation) TableName() string { return "invitations" }

func (i *Invitation) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
