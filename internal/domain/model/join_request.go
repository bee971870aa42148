package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// JoinRequestStatus represents the state of a request to join a private group.
type JoinRequestStatus string

const (
	JoinRequestStatusPending  JoinRequestStatus = "pending"
	JoinRequestStatusApproved JoinRequestStatus = "approved"
	JoinRequestStatusRejected JoinRequestStatus = "rejected"
)

// IsValid reports whether s is one of the known statuses.
func (s JoinRequestStatus) IsValid() bool {
	switch s {
	case JoinRequestStatusPending, JoinRequestStatusApproved, JoinRequestStatusRejected:
		return true
	}
	return false
}

// IsResolved reports whether the request reached a terminal state. A resolved
// request may be superseded by a fresh pending one.
func (s JoinRequestStatus) IsResolved() bool {
	return s == JoinRequestStatusApproved || s == JoinRequestStatusRejected
}

// Scan implements sql.Scanner interface
func (s *JoinRequestStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = JoinRequestStatus(v)
	case []byte:
		*s = JoinRequestStatus(v)
	default:
		*s = JoinRequestStatusPending
	}
	return nil
}

// Value implements driver.Valuer interface
func (s JoinRequestStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// JoinRequest is a pending ask to join a privacy-gated group. At most one row
// exists per (group_id, user_id); a resolved row is replaced when the user
// asks again.
type JoinRequest struct {
	ID      string            `gorm:"type:char(12);primaryKey" json:"id"`
	GroupID string            `gorm:"type:char(12);not null;uniqueIndex:idx_join_requests_group_user" json:"group_id"`
	UserID  uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_join_requests_group_user" json:"user_id"`
	Message *string           `gorm:"type:varchar(500)" json:"message,omitempty"`
	Status  JoinRequestStatus `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (JoinRequest) TableName() string {
	return "group_join_requests"
}

// PendingRequest is a join request resolved to the requester's display
// attributes, for the group management screen.
type PendingRequest struct {
	JoinRequest
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}
