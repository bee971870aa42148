package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/theodez1/revly-sub001/internal/domain/model"
)

// UserReader provides read-only access to the user table, which is owned by
// the auth service. Member lists are joined against it in application code.
type UserReader interface {
	// GetByID retrieves a user. Returns (nil, nil) when no row exists.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// ListByIDs retrieves the users with the given ids. Missing ids are
	// silently absent from the result.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
}
