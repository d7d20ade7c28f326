package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleStudent    Role = "Student"
	RoleInstructor Role = "Instructor"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleInstructor
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:256;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:256;not null" json:"-"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	Phone        *string   `gorm:"size:50" json:"phone,omitempty"`
	AvatarURL    *string   `gorm:"size:500" json:"avatar_url,omitempty"`
	Role         Role      `gorm:"size:20;not null" json:"role"`
	Title        *string   `gorm:"size:200" json:"title,omitempty"`
	Bio          *string   `gorm:"size:2000" json:"bio,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Username is derived from the name fields and is never stored.
func (u User) Username() string {
	return strings.ReplaceAll(strings.TrimSpace(u.FirstName+"-"+u.LastName), " ", "-")
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
