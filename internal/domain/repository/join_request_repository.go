package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/theodez1/revly-sub001/internal/domain/model"
)

// JoinRequestRepository defines the interface for join request persistence.
type JoinRequestRepository interface {
	// GetByID retrieves a request by id. Returns (nil, nil) when no row
	// exists.
	GetByID(ctx context.Context, id string) (*model.JoinRequest, error)

	// Get retrieves the request for (groupID, userID). Returns (nil, nil)
	// when no row exists.
	Get(ctx context.Context, groupID string, userID uuid.UUID) (*model.JoinRequest, error)

	// Create inserts a new pending request.
	Create(ctx context.Context, req *model.JoinRequest) error

	// Replace deletes the resolved request with supersededID and inserts
	// req in a single transaction, so exactly one row per (group, user)
	// survives.
	Replace(ctx context.Context, supersededID string, req *model.JoinRequest) error

	// Delete hard-deletes a request (requester cancellation).
	Delete(ctx context.Context, id string) error

	// UpdateStatus flips the request status.
	UpdateStatus(ctx context.Context, id string, status model.JoinRequestStatus) error

	// ApproveWithMembership marks the request approved and writes the
	// requester's active membership (insert or reactivate) in a single
	// transaction, so an approved request always has a membership row.
	ApproveWithMembership(ctx context.Context, requestID string, membership *model.Membership) error

	// ListPendingByGroup retrieves a group's pending requests, oldest first.
	ListPendingByGroup(ctx context.Context, groupID string) ([]model.JoinRequest, error)

	// ListPendingByUser retrieves the user's pending requests across groups.
	ListPendingByUser(ctx context.Context, userID uuid.UUID) ([]model.JoinRequest, error)
}
