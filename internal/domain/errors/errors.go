package errors

import (
	"errors"
	"fmt"
)

// Error types for group operations
const (
	ErrTypeNotFound         = "NOT_FOUND"
	ErrTypePermissionDenied = "PERMISSION_DENIED"
	ErrTypeConflict         = "CONFLICT"
	ErrTypeInvalidArgument  = "INVALID_ARGUMENT"
	ErrTypeInternal         = "INTERNAL"
)

// GroupError represents errors raised by the group membership domain.
type GroupError struct {
	Type    string
	Message string
	GroupID string
	UserID  string
	Cause   error
}

func (e *GroupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (group: %s, user: %s) - %v",
			e.Type, e.Message, e.GroupID, e.UserID, e.Cause)
	}
	return fmt.Sprintf("%s: %s (group: %s, user: %s)",
		e.Type, e.Message, e.GroupID, e.UserID)
}

func (e *GroupError) Unwrap() error {
	return e.Cause
}

// TypeOf returns the domain error type of err, or ErrTypeInternal when err is
// not a GroupError.
func TypeOf(err error) string {
	var ge *GroupError
	if errors.As(err, &ge) {
		return ge.Type
	}
	return ErrTypeInternal
}

// IsType reports whether err is a GroupError of the given type.
func IsType(err error, errType string) bool {
	var ge *GroupError
	return errors.As(err, &ge) && ge.Type == errType
}

// NewGroupNotFoundError creates a new group not found error
func NewGroupNotFoundError(groupID string) *GroupError {
	return &GroupError{
		Type:    ErrTypeNotFound,
		Message: "group not found",
		GroupID: groupID,
	}
}

// NewMembershipNotFoundError creates a new membership not found error
func NewMembershipNotFoundError(groupID, userID string) *GroupError {
	return &GroupError{
		Type:    ErrTypeNotFound,
		Message: "user is not an active member of this group",
		GroupID: groupID,
		UserID:  userID,
	}
}

// NewRequestNotFoundError creates a new join request not found error
func NewRequestNotFoundError(groupID, userID string) *GroupError {
	return &GroupError{
		Type:    ErrTypeNotFound,
		Message: "join request not found",
		GroupID: groupID,
		UserID:  userID,
	}
}

// NewPermissionDeniedError creates a new permission denied error
func NewPermissionDeniedError(message, groupID, userID string) *GroupError {
	return &GroupError{
		Type:    ErrTypePermissionDenied,
		Message: message,
		GroupID: groupID,
		UserID:  userID,
	}
}

// NewOwnerCannotLeaveError is returned when the group's owner tries to leave
// without transferring ownership first.
func NewOwnerCannotLeaveError(groupID, userID string) *GroupError {
	return &GroupError{
		Type:    ErrTypePermissionDenied,
		Message: "the group owner must transfer ownership before leaving",
		GroupID: groupID,
		UserID:  userID,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message, groupID, userID string) *GroupError {
	return &GroupError{
		Type:    ErrTypeConflict,
		Message: message,
		GroupID: groupID,
		UserID:  userID,
	}
}

// NewInvalidArgumentError creates a new invalid argument error
func NewInvalidArgumentError(message string) *GroupError {
	return &GroupError{
		Type:    ErrTypeInvalidArgument,
		Message: message,
	}
}

// NewInternalError wraps an unexpected storage or infrastructure failure.
func NewInternalError(message string, cause error) *GroupError {
	return &GroupError{
		Type:    ErrTypeInternal,
		Message: message,
		Cause:   cause,
	}
}
