package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/theodez1/revly-sub001/internal/domain/errors"
	"github.com/theodez1/revly-sub001/internal/domain/model"
	"github.com/theodez1/revly-sub001/internal/domain/repository"
)

// RoleService enforces who may promote, demote and transfer ownership.
// Admin management is gated on the group's creator reference, re-read from
// the group row: an admin can never mint or unmake another admin.
type RoleService struct {
	groups  repository.GroupRepository
	members repository.MembershipRepository
	logger  *zap.Logger
}

// NewRoleService creates a new RoleService
func NewRoleService(
	groups repository.GroupRepository,
	members repository.MembershipRepository,
	logger *zap.Logger,
) *RoleService {
	return &RoleService{
		groups:  groups,
		members: members,
		logger:  logger,
	}
}

// PromoteToAdmin raises an active member to admin. Creator only.
func (s *RoleService) PromoteToAdmin(ctx context.Context, groupID string, targetUserID, actingUserID uuid.UUID) error {
	if err := s.requireCreator(ctx, groupID, actingUserID); err != nil {
		return err
	}

	target, err := s.members.Get(ctx, groupID, targetUserID)
	if err != nil {
		return err
	}
	if target == nil || !target.IsActive() {
		return domainErrors.NewMembershipNotFoundError(groupID, targetUserID.String())
	}

	if err := s.members.UpdateRole(ctx, groupID, targetUserID, model.RoleAdmin); err != nil {
		return err
	}

	s.logger.Info("member promoted to admin",
		zap.String("group_id", groupID),
		zap.String("target_user_id", targetUserID.String()))
	return nil
}

// DemoteFromAdmin lowers an admin back to member. Creator only; the creator
// themself cannot be demoted.
func (s *RoleService) DemoteFromAdmin(ctx context.Context, groupID string, targetUserID, actingUserID uuid.UUID) error {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return domainErrors.NewGroupNotFoundError(groupID)
	}
	if actingUserID != group.CreatedBy {
		return domainErrors.NewPermissionDeniedError(
			"only the group creator can manage admins", groupID, actingUserID.String())
	}
	if targetUserID == group.CreatedBy {
		return domainErrors.NewPermissionDeniedError(
			"the group creator cannot be demoted", groupID, actingUserID.String())
	}

	target, err := s.members.Get(ctx, groupID, targetUserID)
	if err != nil {
		return err
	}
	if target == nil || !target.IsActive() {
		return domainErrors.NewMembershipNotFoundError(groupID, targetUserID.String())
	}

	if err := s.members.UpdateRole(ctx, groupID, targetUserID, model.RoleMember); err != nil {
		return err
	}

	s.logger.Info("admin demoted to member",
		zap.String("group_id", groupID),
		zap.String("target_user_id", targetUserID.String()))
	return nil
}

// TransferOwnership reassigns the group's creator reference to newOwnerID
// and swaps the owner/admin roles between the two members, all in one
// transaction: the mixed states the old mobile client could produce are
// unreachable.
func (s *RoleService) TransferOwnership(ctx context.Context, groupID string, newOwnerID, currentOwnerID uuid.UUID) error {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return domainErrors.NewGroupNotFoundError(groupID)
	}
	if currentOwnerID != group.CreatedBy {
		return domainErrors.NewPermissionDeniedError(
			"only the group owner can transfer ownership", groupID, currentOwnerID.String())
	}
	if newOwnerID == currentOwnerID {
		return domainErrors.NewInvalidArgumentError("new owner must be a different member")
	}

	target, err := s.members.Get(ctx, groupID, newOwnerID)
	if err != nil {
		return err
	}
	if target == nil || !target.IsActive() {
		return domainErrors.NewMembershipNotFoundError(groupID, newOwnerID.String())
	}

	if err := s.groups.TransferOwnership(ctx, groupID, newOwnerID, currentOwnerID); err != nil {
		return err
	}

	s.logger.Info("group ownership transferred",
		zap.String("group_id", groupID),
		zap.String("new_owner_id", newOwnerID.String()),
		zap.String("previous_owner_id", currentOwnerID.String()))
	return nil
}

func (s *RoleService) requireCreator(ctx context.Context, groupID string, actingUserID uuid.UUID) error {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return domainErrors.NewGroupNotFoundError(groupID)
	}
	if actingUserID != group.CreatedBy {
		return domainErrors.NewPermissionDeniedError(
			"only the group creator can manage admins", groupID, actingUserID.String())
	}
	return nil
}
