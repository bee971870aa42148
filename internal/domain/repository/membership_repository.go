package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/theodez1/revly-sub001/internal/domain/model"
)

// MembershipRepository defines the interface for membership persistence.
// The natural key is (group_id, user_id); repeated upserts must be
// idempotent on it.
type MembershipRepository interface {
	// Get retrieves the membership row for (groupID, userID) regardless of
	// status. Returns (nil, nil) when no row exists.
	Get(ctx context.Context, groupID string, userID uuid.UUID) (*model.Membership, error)

	// ListActiveByGroup retrieves all active memberships of a group,
	// oldest join first.
	ListActiveByGroup(ctx context.Context, groupID string) ([]model.Membership, error)

	// ListActiveGroupIDsByUser retrieves the ids of the groups the user is
	// an active member of.
	ListActiveGroupIDsByUser(ctx context.Context, userID uuid.UUID) ([]string, error)

	// Create inserts a new membership row.
	Create(ctx context.Context, m *model.Membership) error

	// Reactivate flips an inactive row back to active and refreshes
	// joined_at. The role column is left untouched.
	Reactivate(ctx context.Context, groupID string, userID uuid.UUID, joinedAt time.Time) error

	// UpdateStatus sets the lifecycle status of the row.
	UpdateStatus(ctx context.Context, groupID string, userID uuid.UUID, status model.MembershipStatus) error

	// UpdateRole sets the role of the row.
	UpdateRole(ctx context.Context, groupID string, userID uuid.UUID, role model.Role) error

	// UpsertOwner writes an owner/active membership keyed on
	// (groupID, userID), inserting or overwriting as needed. Used by the
	// consistency repair path for groups created before group creation
	// became transactional.
	UpsertOwner(ctx context.Context, id string, groupID string, userID uuid.UUID, joinedAt time.Time) error
}
