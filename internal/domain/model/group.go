package model

import (
	"time"

	"github.com/google/uuid"
)

// Group represents a riding group created by a user.
type Group struct {
	ID            string    `gorm:"type:char(12);primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(250);not null" json:"name"`
	Description   *string   `gorm:"type:varchar(500)" json:"description,omitempty"`
	Location      *string   `gorm:"type:varchar(250)" json:"location,omitempty"`
	AvatarURL     *string   `gorm:"type:varchar(500)" json:"avatar_url,omitempty"`
	CreatedBy     uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
	IsPrivate     bool      `gorm:"not null;default:false" json:"is_private"`
	TotalDistance float64   `gorm:"not null;default:0" json:"total_distance"`
	TotalRides    int       `gorm:"not null;default:0" json:"total_rides"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupUpdate is used for partial updates on a group.
type GroupUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	AvatarURL   *string `json:"avatar_url"`
	IsPrivate   *bool   `json:"is_private"`
}

// GroupDetail is a group together with its resolved member list.
type GroupDetail struct {
	Group
	MemberCount int      `json:"member_count"`
	Members     []Member `json:"members"`
}

// SuggestedGroup annotates a group the user does not belong to with the
// status of the user's join request, so the client can render
// "Pending" instead of "Join".
type SuggestedGroup struct {
	Group
	RequestStatus JoinRequestStatus `json:"request_status,omitempty"`
}
