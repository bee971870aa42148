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

// joinRequestRepository implements the JoinRequestRepository interface
type joinRequestRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewJoinRequestRepository creates a new join request repository
func NewJoinRequestRepository(db *gorm.DB, logger *zap.Logger) repository.JoinRequestRepository {
	return &joinRequestRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a request by id, returning (nil, nil) when missing.
func (r *joinRequestRepository) GetByID(ctx context.Context, id string) (*model.JoinRequest, error) {
	var req model.JoinRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Error("failed to get join request", zap.String("request_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get join request: %w", err)
	}
	return &req, nil
}

// Get retrieves the request for (groupID, userID), returning (nil, nil)
// when missing.
func (r *joinRequestRepository) Get(ctx context.Context, groupID string, userID uuid.UUID) (*model.JoinRequest, error) {
	var req model.JoinRequest
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&req).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Error("failed to get join request",
			zap.String("group_id", groupID),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get join request: %w", err)
	}
	return &req, nil
}

// Create inserts a new pending request.
func (r *joinRequestRepository) Create(ctx context.Context, req *model.JoinRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		r.logger.Error("failed to create join request",
			zap.String("group_id", req.GroupID),
			zap.String("user_id", req.UserID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create join request: %w", err)
	}
	return nil
}

// Replace deletes the superseded resolved request and inserts the new
// pending one in a single transaction.
func (r *joinRequestRepository) Replace(ctx context.Context, supersededID string, req *model.JoinRequest) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.JoinRequest{}, "id = ?", supersededID).Error; err != nil {
			return err
		}
		return tx.Create(req).Error
	})
	if err != nil {
		r.logger.Error("failed to replace join request",
			zap.String("superseded_id", supersededID),
			zap.String("group_id", req.GroupID),
			zap.String("user_id", req.UserID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to replace join request: %w", err)
	}
	return nil
}

// Delete hard-deletes a request.
func (r *joinRequestRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&model.JoinRequest{}, "id = ?", id).Error; err != nil {
		r.logger.Error("failed to delete join request", zap.String("request_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete join request: %w", err)
	}
	return nil
}

// UpdateStatus flips the request status.
func (r *joinRequestRepository) UpdateStatus(ctx context.Context, id string, status model.JoinRequestStatus) error {
	err := r.db.WithContext(ctx).
		Model(&model.JoinRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		r.logger.Error("failed to update join request status",
			zap.String("request_id", id),
			zap.String("status", string(status)),
			zap.Error(err))
		return fmt.Errorf("failed to update join request status: %w", err)
	}
	return nil
}

// ApproveWithMembership marks the request approved and writes the
// requester's membership in one transaction. An existing inactive row is
// reactivated instead of duplicated, keeping the upsert idempotent on the
// natural key.
func (r *joinRequestRepository) ApproveWithMembership(ctx context.Context, requestID string, membership *model.Membership) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Membership
		err := tx.Where("group_id = ? AND user_id = ?", membership.GroupID, membership.UserID).
			First(&existing).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			if err := tx.Create(membership).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"status":    model.MembershipStatusActive,
				"joined_at": membership.JoinedAt,
			}).Error; err != nil {
				return err
			}
		}

		return tx.Model(&model.JoinRequest{}).
			Where("id = ?", requestID).
			Update("status", model.JoinRequestStatusApproved).Error
	})
	if err != nil {
		r.logger.Error("failed to approve join request",
			zap.String("request_id", requestID),
			zap.String("group_id", membership.GroupID),
			zap.String("user_id", membership.UserID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to approve join request: %w", err)
	}
	return nil
}

// ListPendingByGroup retrieves a group's pending requests, oldest first.
func (r *joinRequestRepository) ListPendingByGroup(ctx context.Context, groupID string) ([]model.JoinRequest, error) {
	var requests []model.JoinRequest
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND status = ?", groupID, model.JoinRequestStatusPending).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		r.logger.Error("failed to list pending join requests", zap.String("group_id", groupID), zap.Error(err))
		return nil, fmt.Errorf("failed to list pending join requests: %w", err)
	}
	return requests, nil
}

// ListPendingByUser retrieves the user's pending requests across groups.
func (r *joinRequestRepository) ListPendingByUser(ctx context.Context, userID uuid.UUID) ([]model.JoinRequest, error) {
	var requests []model.JoinRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.JoinRequestStatusPending).
		Find(&requests).Error
	if err != nil {
		r.logger.Error("failed to list user join requests", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list user join requests: %w", err)
	}
	return requests, nil
}
