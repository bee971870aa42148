package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/theodez1/revly-sub001/internal/domain/model"
)

// GroupRepository defines the interface for group persistence.
type GroupRepository interface {
	// CreateWithOwner inserts the group row and the creator's owner
	// membership in a single transaction, so a group can never exist
	// without its creator in the member list.
	CreateWithOwner(ctx context.Context, group *model.Group, owner *model.Membership) error

	// GetByID retrieves a group by id. Returns (nil, nil) when no row exists.
	GetByID(ctx context.Context, id string) (*model.Group, error)

	// Update applies a partial update to the group row.
	Update(ctx context.Context, id string, updates model.GroupUpdate) error

	// Delete removes the group row.
	Delete(ctx context.Context, id string) error

	// ListAll retrieves every group, newest first.
	ListAll(ctx context.Context) ([]model.Group, error)

	// ListByIDs retrieves the groups with the given ids.
	ListByIDs(ctx context.Context, ids []string) ([]model.Group, error)

	// TransferOwnership reassigns the group's creator reference and swaps
	// the owner/admin roles between the two members, all in one
	// transaction.
	TransferOwnership(ctx context.Context, groupID string, newOwnerID, currentOwnerID uuid.UUID) error
}
