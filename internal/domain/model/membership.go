package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// Role represents a member's permission tier inside a group.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// CanManageMembers reports whether the role may expel members or act on
// join requests.
func (r Role) CanManageMembers() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Scan implements sql.Scanner interface
func (r *Role) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(v)
	default:
		*r = RoleMember
	}
	return nil
}

// Value implements driver.Valuer interface
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// MembershipStatus represents a membership's lifecycle state.
type MembershipStatus string

const (
	MembershipStatusActive  MembershipStatus = "active"
	MembershipStatusLeft    MembershipStatus = "left"
	MembershipStatusRemoved MembershipStatus = "removed"
)

// IsValid reports whether s is one of the known statuses.
func (s MembershipStatus) IsValid() bool {
	switch s {
	case MembershipStatusActive, MembershipStatusLeft, MembershipStatusRemoved:
		return true
	}
	return false
}

// CanTransitionTo reports whether a membership may move from s to next.
// Leaving and removal only apply to active rows; inactive rows may only be
// reactivated (a rejoin).
func (s MembershipStatus) CanTransitionTo(next MembershipStatus) bool {
	switch s {
	case MembershipStatusActive:
		return next == MembershipStatusLeft || next == MembershipStatusRemoved
	case MembershipStatusLeft, MembershipStatusRemoved:
		return next == MembershipStatusActive
	}
	return false
}

// Scan implements sql.Scanner interface
func (s *MembershipStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = MembershipStatus(v)
	case []byte:
		*s = MembershipStatus(v)
	default:
		*s = MembershipStatusActive
	}
	return nil
}

// Value implements driver.Valuer interface
func (s MembershipStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Membership ties one user to one group with a role and a lifecycle status.
// The natural key is (group_id, user_id); rows are never hard-deleted in the
// normal flow, leaving and removal are status changes.
type Membership struct {
	ID       string           `gorm:"type:char(12);primaryKey" json:"id"`
	GroupID  string           `gorm:"type:char(12);not null;uniqueIndex:idx_group_members_group_user" json:"group_id"`
	UserID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_group_members_group_user" json:"user_id"`
	Role     Role             `gorm:"type:varchar(50);not null;default:'member'" json:"role"`
	Status   MembershipStatus `gorm:"type:varchar(50);not null;default:'active'" json:"status"`
	JoinedAt time.Time        `gorm:"not null" json:"joined_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Membership) TableName() string {
	return "group_members"
}

// IsActive reports whether the membership is currently active.
func (m *Membership) IsActive() bool {
	return m.Status == MembershipStatusActive
}

// Member is a membership resolved to the user's display attributes, the
// shape the client renders. Synthetic is set on the unpersisted placeholder
// entry spliced in when the creator's row is missing and could not be
// repaired.
type Member struct {
	UserID      uuid.UUID        `json:"user_id"`
	DisplayName string           `json:"display_name"`
	AvatarURL   *string          `json:"avatar_url,omitempty"`
	Role        Role             `json:"role"`
	Status      MembershipStatus `json:"status"`
	JoinedAt    time.Time        `json:"joined_at"`
	Synthetic   bool             `json:"-"`
}
