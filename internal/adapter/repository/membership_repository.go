package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/theodez1/revly-sub001/internal/domain/model"
	"github.com/theodez1/revly-sub001/internal/domain/repository"
)

// membershipRepository implements the MembershipRepository interface
type membershipRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB, logger *zap.Logger) repository.MembershipRepository {
	return &membershipRepository{
		db:     db,
		logger: logger,
	}
}

// Get retrieves the row for (groupID, userID) regardless of status,
// returning (nil, nil) when missing.
func (r *membershipRepository) Get(ctx context.Context, groupID string, userID uuid.UUID) (*model.Membership, error) {
	var m model.Membership
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Error("failed to get membership",
			zap.String("group_id", groupID),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return &m, nil
}

// ListActiveByGroup retrieves all active memberships of a group.
func (r *membershipRepository) ListActiveByGroup(ctx context.Context, groupID string) ([]model.Membership, error) {
	var members []model.Membership
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND status = ?", groupID, model.MembershipStatusActive).
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		r.logger.Error("failed to list group members", zap.String("group_id", groupID), zap.Error(err))
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	return members, nil
}

// ListActiveGroupIDsByUser retrieves the ids of the groups the user belongs to.
func (r *membershipRepository) ListActiveGroupIDsByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Membership{}).
		Where("user_id = ? AND status = ?", userID, model.MembershipStatusActive).
		Pluck("group_id", &ids).Error
	if err != nil {
		r.logger.Error("failed to list user group ids", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list user group ids: %w", err)
	}
	return ids, nil
}

// Create inserts a new membership row.
func (r *membershipRepository) Create(ctx context.Context, m *model.Membership) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error("failed to create membership",
			zap.String("group_id", m.GroupID),
			zap.String("user_id", m.UserID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create membership: %w", err)
	}
	return nil
}

// Reactivate flips an inactive row back to active with a fresh joined_at.
// The role column is deliberately untouched so a rejoining admin keeps the
// admin role.
func (r *membershipRepository) Reactivate(ctx context.Context, groupID string, userID uuid.UUID, joinedAt time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&model.Membership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Updates(map[string]interface{}{
			"status":    model.MembershipStatusActive,
			"joined_at": joinedAt,
		}).Error
	if err != nil {
		r.logger.Error("failed to reactivate membership",
			zap.String("group_id", groupID),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to reactivate membership: %w", err)
	}
	return nil
}

// UpdateStatus sets the lifecycle status of the row.
func (r *membershipRepository) UpdateStatus(ctx context.Context, groupID string, userID uuid.UUID, status model.MembershipStatus) error {
	err := r.db.WithContext(ctx).
		Model(&model.Membership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Update("status", status).Error
	if err != nil {
		r.logger.Error("failed to update membership status",
			zap.String("group_id", groupID),
			zap.String("user_id", userID.String()),
			zap.String("status", string(status)),
			zap.Error(err))
		return fmt.Errorf("failed to update membership status: %w", err)
	}
	return nil
}

// UpdateRole sets the role of the row.
func (r *membershipRepository) UpdateRole(ctx context.Context, groupID string, userID uuid.UUID, role model.Role) error {
	err := r.db.WithContext(ctx).
		Model(&model.Membership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Update("role", role).Error
	if err != nil {
		r.logger.Error("failed to update membership role",
			zap.String("group_id", groupID),
			zap.String("user_id", userID.String()),
			zap.String("role", string(role)),
			zap.Error(err))
		return fmt.Errorf("failed to update membership role: %w", err)
	}
	return nil
}

// UpsertOwner writes an owner/active row keyed on the natural key,
// inserting or overwriting as needed. Idempotent under retries.
func (r *membershipRepository) UpsertOwner(ctx context.Context, id string, groupID string, userID uuid.UUID, joinedAt time.Time) error {
	m := model.Membership{
		ID:       id,
		GroupID:  groupID,
		UserID:   userID,
		Role:     model.RoleOwner,
		Status:   model.MembershipStatusActive,
		JoinedAt: joinedAt,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"role":   model.RoleOwner,
				"status": model.MembershipStatusActive,
			}),
		}).
		Create(&m).Error
	if err != nil {
		r.logger.Error("failed to upsert owner membership",
			zap.String("group_id", groupID),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to upsert owner membership: %w", err)
	}
	return nil
}
