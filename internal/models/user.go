package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account. IDs are opaque strings: the relational backend
// generates UUIDs, the document backend generates ObjectID hex. Callers must
// not assume a format.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Password  string    `gorm:"size:255" json:"-"` // bcrypt hash
	Avatar    string    `gorm:"size:500" json:"avatar,omitempty"`
	Seeded    bool      `gorm:"default:false" json:"seeded"` // sample data already created
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
