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

// groupRepository implements the GroupRepository interface
type groupRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB, logger *zap.Logger) repository.GroupRepository {
	return &groupRepository{
		db:     db,
		logger: logger,
	}
}

// CreateWithOwner inserts the group and the creator's owner membership in one
// transaction. Either both rows exist afterwards or neither does.
func (r *groupRepository) CreateWithOwner(ctx context.Context, group *model.Group, owner *model.Membership) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		return tx.Create(owner).Error
	})
	if err != nil {
		r.logger.Error("failed to create group with owner membership",
			zap.String("group_id", group.ID),
			zap.String("creator_id", group.CreatedBy.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// GetByID retrieves a group by id, returning (nil, nil) when missing.
func (r *groupRepository) GetByID(ctx context.Context, id string) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Error("failed to get group", zap.String("group_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &group, nil
}

// Update applies a partial update built from the non-nil fields of updates.
func (r *groupRepository) Update(ctx context.Context, id string, updates model.GroupUpdate) error {
	updateMap := make(map[string]interface{})
	if updates.Name != nil {
		updateMap["name"] = *updates.Name
	}
	if updates.Description != nil {
		updateMap["description"] = *updates.Description
	}
	if updates.Location != nil {
		updateMap["location"] = *updates.Location
	}
	if updates.AvatarURL != nil {
		updateMap["avatar_url"] = *updates.AvatarURL
	}
	if updates.IsPrivate != nil {
		updateMap["is_private"] = *updates.IsPrivate
	}
	if len(updateMap) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Model(&model.Group{}).Where("id = ?", id).Updates(updateMap).Error; err != nil {
		r.logger.Error("failed to update group", zap.String("group_id", id), zap.Error(err))
		return fmt.Errorf("failed to update group: %w", err)
	}
	return nil
}

// Delete removes the group row.
func (r *groupRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&model.Group{}, "id = ?", id).Error; err != nil {
		r.logger.Error("failed to delete group", zap.String("group_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

// ListAll retrieves every group, newest first.
func (r *groupRepository) ListAll(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&groups).Error; err != nil {
		r.logger.Error("failed to list groups", zap.Error(err))
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// ListByIDs retrieves the groups with the given ids.
func (r *groupRepository) ListByIDs(ctx context.Context, ids []string) ([]model.Group, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var groups []model.Group
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("created_at DESC").Find(&groups).Error; err != nil {
		r.logger.Error("failed to list groups by ids", zap.Error(err))
		return nil, fmt.Errorf("failed to list groups by ids: %w", err)
	}
	return groups, nil
}

// TransferOwnership runs the three dependent writes of an ownership transfer
// in one transaction: the group's creator reference, the new owner's role and
// the old owner's demotion to admin.
func (r *groupRepository) TransferOwnership(ctx context.Context, groupID string, newOwnerID, currentOwnerID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Group{}).Where("id = ?", groupID).Update("created_by", newOwnerID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		res = tx.Model(&model.Membership{}).
			Where("group_id = ? AND user_id = ? AND status = ?", groupID, newOwnerID, model.MembershipStatusActive).
			Update("role", model.RoleOwner)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(&model.Membership{}).
			Where("group_id = ? AND user_id = ?", groupID, currentOwnerID).
			Update("role", model.RoleAdmin).Error
	})
	if err != nil {
		r.logger.Error("failed to transfer group ownership",
			zap.String("group_id", groupID),
			zap.String("new_owner_id", newOwnerID.String()),
			zap.String("current_owner_id", currentOwnerID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to transfer ownership: %w", err)
	}
	return nil
}
