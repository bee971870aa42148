package model

import (
	"strings"

	"github.com/google/uuid"
)

// User mirrors the app's user table. This service only ever reads it; user
// accounts are owned by the auth service.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(100)" json:"username"`
	FirstName string    `gorm:"type:varchar(100)" json:"first_name"`
	LastName  string    `gorm:"type:varchar(100)" json:"last_name"`
	AvatarURL *string   `gorm:"type:varchar(500)" json:"avatar_url,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName returns the name shown in member lists: the username when set,
// otherwise "first last".
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
