package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/theodez1/revly-sub001/internal/domain/errors"
	"github.com/theodez1/revly-sub001/internal/domain/model"
	"github.com/theodez1/revly-sub001/internal/domain/repository"
)

// IDGenerator produces the prefixed ids used across tables.
type IDGenerator interface {
	GenerateID(prefix string) (string, error)
}

// creatorPlaceholderName is the display name the app shows for a group
// creator whose user row could not be resolved. Kept in French to match the
// deployed clients.
const creatorPlaceholderName = "Créateur"

// MembershipService handles the user-group relation: member listing with
// creator consistency repair, joining, leaving and removal.
type MembershipService struct {
	groups  repository.GroupRepository
	members repository.MembershipRepository
	users   repository.UserReader
	cache   SuggestionCache
	idgen   IDGenerator
	logger  *zap.Logger
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(
	groups repository.GroupRepository,
	members repository.MembershipRepository,
	users repository.UserReader,
	cache SuggestionCache,
	idgen IDGenerator,
	logger *zap.Logger,
) *MembershipService {
	return &MembershipService{
		groups:  groups,
		members: members,
		users:   users,
		cache:   cache,
		idgen:   idgen,
		logger:  logger,
	}
}

// GetGroupMembers returns the group's active members resolved to display
// attributes. When creatorID is non-nil and missing from the active set, the
// creator-is-a-member invariant has been violated by a legacy partial
// creation: the method repairs it by upserting the owner row and re-reading,
// and falls back to an unpersisted placeholder entry when the upsert fails,
// so the caller's view is self-consistent either way.
func (s *MembershipService) GetGroupMembers(ctx context.Context, groupID string, creatorID uuid.UUID) ([]model.Member, error) {
	rows, err := s.members.ListActiveByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	creatorMissing := creatorID != uuid.Nil && !containsUser(rows, creatorID)
	if creatorMissing {
		repaired, repairErr := s.repairCreatorMembership(ctx, groupID, creatorID)
		if repairErr == nil {
			rows = repaired
			creatorMissing = !containsUser(rows, creatorID)
		} else {
			s.logger.Warn("creator membership repair failed, serving placeholder",
				zap.String("group_id", groupID),
				zap.String("creator_id", creatorID.String()),
				zap.Error(repairErr))
		}
	}

	members, err := s.resolveMembers(ctx, rows)
	if err != nil {
		return nil, err
	}

	if creatorMissing {
		placeholder := model.Member{
			UserID:      creatorID,
			DisplayName: creatorPlaceholderName,
			Role:        model.RoleOwner,
			Status:      model.MembershipStatusActive,
			JoinedAt:    time.Now(),
			Synthetic:   true,
		}
		members = append([]model.Member{placeholder}, members...)
	}

	return members, nil
}

// repairCreatorMembership upserts the missing owner row and re-reads the
// active member list.
func (s *MembershipService) repairCreatorMembership(ctx context.Context, groupID string, creatorID uuid.UUID) ([]model.Membership, error) {
	id, err := s.idgen.GenerateID("M")
	if err != nil {
		return nil, err
	}
	if err := s.members.UpsertOwner(ctx, id, groupID, creatorID, time.Now()); err != nil {
		return nil, err
	}

	s.logger.Info("repaired missing creator membership",
		zap.String("group_id", groupID),
		zap.String("creator_id", creatorID.String()))

	return s.members.ListActiveByGroup(ctx, groupID)
}

// resolveMembers joins membership rows against the user table in application
// code; the user store does not guarantee referential joins for this service.
func (s *MembershipService) resolveMembers(ctx context.Context, rows []model.Membership) ([]model.Member, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}

	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	members := make([]model.Member, 0, len(rows))
	for _, row := range rows {
		member := model.Member{
			UserID:   row.UserID,
			Role:     row.Role,
			Status:   row.Status,
			JoinedAt: row.JoinedAt,
		}
		if u, ok := byID[row.UserID]; ok {
			member.DisplayName = u.DisplayName()
			member.AvatarURL = u.AvatarURL
		}
		members = append(members, member)
	}
	return members, nil
}

// JoinGroup is an idempotent join for public groups: an active row is
// returned unchanged, an inactive row is reactivated with a fresh joined_at
// and its previous role, and a fresh row is created with role member.
// Private groups only admit members through the join-request workflow.
func (s *MembershipService) JoinGroup(ctx context.Context, groupID string, userID uuid.UUID) (*model.Membership, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domainErrors.NewGroupNotFoundError(groupID)
	}
	if group.IsPrivate {
		return nil, domainErrors.NewPermissionDeniedError(
			"this group is private, membership requires an approved join request", groupID, userID.String())
	}

	existing, err := s.members.Get(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if existing.IsActive() {
			return existing, nil
		}
		now := time.Now()
		if err := s.members.Reactivate(ctx, groupID, userID, now); err != nil {
			return nil, err
		}
		existing.Status = model.MembershipStatusActive
		existing.JoinedAt = now
		s.cache.Invalidate(ctx, userID)
		return existing, nil
	}

	id, err := s.idgen.GenerateID("M")
	if err != nil {
		return nil, err
	}
	m := &model.Membership{
		ID:       id,
		GroupID:  groupID,
		UserID:   userID,
		Role:     model.RoleMember,
		Status:   model.MembershipStatusActive,
		JoinedAt: time.Now(),
	}
	if err := s.members.Create(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("user joined group",
		zap.String("group_id", groupID),
		zap.String("user_id", userID.String()))

	s.cache.Invalidate(ctx, userID)
	return m, nil
}

// LeaveGroup flips the caller's membership to left. The group's owner cannot
// leave without transferring ownership first, so a group is never orphaned.
func (s *MembershipService) LeaveGroup(ctx context.Context, groupID string, userID uuid.UUID) error {
	m, err := s.members.Get(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if m == nil || !m.IsActive() {
		return domainErrors.NewMembershipNotFoundError(groupID, userID.String())
	}
	if m.Role == model.RoleOwner {
		return domainErrors.NewOwnerCannotLeaveError(groupID, userID.String())
	}

	if err := s.members.UpdateStatus(ctx, groupID, userID, model.MembershipStatusLeft); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, userID)
	return nil
}

// RemoveMember flips the target's membership to removed. The acting user
// must hold the owner or admin role, and the group's creator can never be
// removed.
func (s *MembershipService) RemoveMember(ctx context.Context, groupID string, targetUserID, actingUserID uuid.UUID) error {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return domainErrors.NewGroupNotFoundError(groupID)
	}

	acting, err := s.members.Get(ctx, groupID, actingUserID)
	if err != nil {
		return err
	}
	if acting == nil || !acting.IsActive() || !acting.Role.CanManageMembers() {
		return domainErrors.NewPermissionDeniedError(
			"only the owner or an admin can remove members", groupID, actingUserID.String())
	}
	if targetUserID == group.CreatedBy {
		return domainErrors.NewPermissionDeniedError(
			"the group creator cannot be removed", groupID, actingUserID.String())
	}

	target, err := s.members.Get(ctx, groupID, targetUserID)
	if err != nil {
		return err
	}
	if target == nil || !target.IsActive() {
		return domainErrors.NewMembershipNotFoundError(groupID, targetUserID.String())
	}

	s.logger.Info("member removed from group",
		zap.String("group_id", groupID),
		zap.String("target_user_id", targetUserID.String()),
		zap.String("acting_user_id", actingUserID.String()))

	if err := s.members.UpdateStatus(ctx, groupID, targetUserID, model.MembershipStatusRemoved); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, targetUserID)
	return nil
}

func containsUser(rows []model.Membership, userID uuid.UUID) bool {
	for _, row := range rows {
		if row.UserID == userID {
			return true
		}
	}
	return false
}
