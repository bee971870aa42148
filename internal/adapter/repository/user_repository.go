package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/theodez1/revly-sub001/internal/domain/model"
	"github.com/theodez1/revly-sub001/internal/domain/repository"
)

// userReader implements read-only access to the users table.
type userReader struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUserReader creates a new user reader
func NewUserReader(db *gorm.DB, logger *zap.Logger) repository.UserReader {
	return &userReader{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a user, returning (nil, nil) when missing.
func (r *userReader) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Error("failed to get user", zap.String("user_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// ListByIDs retrieves the users with the given ids.
func (r *userReader) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []model.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		r.logger.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
