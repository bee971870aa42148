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

// JoinRequestService manages the pending → approved/rejected lifecycle of
// requests to join private groups. Approval is the only path that creates a
// membership row for a private group.
type JoinRequestService struct {
	groups   repository.GroupRepository
	members  repository.MembershipRepository
	requests repository.JoinRequestRepository
	users    repository.UserReader
	cache    SuggestionCache
	idgen    IDGenerator
	logger   *zap.Logger
}

// NewJoinRequestService creates a new JoinRequestService
func NewJoinRequestService(
	groups repository.GroupRepository,
	members repository.MembershipRepository,
	requests repository.JoinRequestRepository,
	users repository.UserReader,
	cache SuggestionCache,
	idgen IDGenerator,
	logger *zap.Logger,
) *JoinRequestService {
	return &JoinRequestService{
		groups:   groups,
		members:  members,
		requests: requests,
		users:    users,
		cache:    cache,
		idgen:    idgen,
		logger:   logger,
	}
}

// RequestToJoin files a pending request for a private group. An outstanding
// pending request is returned unchanged; a resolved one is superseded by a
// fresh pending row.
func (s *JoinRequestService) RequestToJoin(ctx context.Context, groupID string, userID uuid.UUID, message *string) (*model.JoinRequest, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domainErrors.NewGroupNotFoundError(groupID)
	}
	if !group.IsPrivate {
		return nil, domainErrors.NewInvalidArgumentError("group is public, join it directly")
	}

	membership, err := s.members.Get(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if membership != nil && membership.IsActive() {
		return nil, domainErrors.NewConflictError("user is already a member of this group", groupID, userID.String())
	}

	existing, err := s.requests.Get(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == model.JoinRequestStatusPending {
		return existing, nil
	}

	id, err := s.idgen.GenerateID("R")
	if err != nil {
		return nil, err
	}
	req := &model.JoinRequest{
		ID:      id,
		GroupID: groupID,
		UserID:  userID,
		Message: message,
		Status:  model.JoinRequestStatusPending,
	}

	if existing != nil {
		// A resolved request is superseded, never accumulated.
		if err := s.requests.Replace(ctx, existing.ID, req); err != nil {
			return nil, err
		}
	} else {
		if err := s.requests.Create(ctx, req); err != nil {
			return nil, err
		}
	}

	s.logger.Info("join request filed",
		zap.String("group_id", groupID),
		zap.String("user_id", userID.String()))

	s.cache.Invalidate(ctx, userID)
	return req, nil
}

// CancelJoinRequest hard-deletes the requester's own pending request.
func (s *JoinRequestService) CancelJoinRequest(ctx context.Context, groupID string, userID uuid.UUID) error {
	req, err := s.requests.Get(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if req == nil || req.Status != model.JoinRequestStatusPending {
		return domainErrors.NewRequestNotFoundError(groupID, userID.String())
	}

	if err := s.requests.Delete(ctx, req.ID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, userID)
	return nil
}

// ApproveJoinRequest admits the requester: the membership write and the
// status flip happen in one transaction, so an approved request always has a
// matching membership row. The approver must hold the owner or admin role.
func (s *JoinRequestService) ApproveJoinRequest(ctx context.Context, requestID string, approverID uuid.UUID) (*model.Membership, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domainErrors.NewRequestNotFoundError("", "")
	}
	if req.Status != model.JoinRequestStatusPending {
		return nil, domainErrors.NewConflictError("join request is already resolved", req.GroupID, req.UserID.String())
	}

	if err := s.requireManager(ctx, req.GroupID, approverID, "approve"); err != nil {
		return nil, err
	}

	membership := &model.Membership{
		GroupID:  req.GroupID,
		UserID:   req.UserID,
		Role:     model.RoleMember,
		Status:   model.MembershipStatusActive,
		JoinedAt: time.Now(),
	}

	// A former member keeps their row: reuse its id and role instead of
	// minting a fresh id the reactivation would discard.
	existing, err := s.members.Get(ctx, req.GroupID, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		membership.ID = existing.ID
		membership.Role = existing.Role
	} else {
		memberID, err := s.idgen.GenerateID("M")
		if err != nil {
			return nil, err
		}
		membership.ID = memberID
	}

	if err := s.requests.ApproveWithMembership(ctx, requestID, membership); err != nil {
		return nil, err
	}

	s.logger.Info("join request approved",
		zap.String("request_id", requestID),
		zap.String("group_id", req.GroupID),
		zap.String("user_id", req.UserID.String()),
		zap.String("approver_id", approverID.String()))

	s.cache.Invalidate(ctx, req.UserID)
	return membership, nil
}

// RejectJoinRequest flips a pending request to rejected. The rejector must
// hold the owner or admin role.
func (s *JoinRequestService) RejectJoinRequest(ctx context.Context, requestID string, rejectorID uuid.UUID) error {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return domainErrors.NewRequestNotFoundError("", "")
	}
	if req.Status != model.JoinRequestStatusPending {
		return domainErrors.NewConflictError("join request is already resolved", req.GroupID, req.UserID.String())
	}

	if err := s.requireManager(ctx, req.GroupID, rejectorID, "reject"); err != nil {
		return err
	}

	if err := s.requests.UpdateStatus(ctx, requestID, model.JoinRequestStatusRejected); err != nil {
		return err
	}

	s.logger.Info("join request rejected",
		zap.String("request_id", requestID),
		zap.String("group_id", req.GroupID),
		zap.String("rejector_id", rejectorID.String()))

	s.cache.Invalidate(ctx, req.UserID)
	return nil
}

// ListPendingRequests returns a group's pending requests resolved to the
// requesters' display attributes, for the management screen.
func (s *JoinRequestService) ListPendingRequests(ctx context.Context, groupID string, actingUserID uuid.UUID) ([]model.PendingRequest, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domainErrors.NewGroupNotFoundError(groupID)
	}

	if err := s.requireManager(ctx, groupID, actingUserID, "list"); err != nil {
		return nil, err
	}

	requests, err := s.requests.ListPendingByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.UserID)
	}
	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]model.PendingRequest, 0, len(requests))
	for _, req := range requests {
		pr := model.PendingRequest{JoinRequest: req}
		if u, ok := byID[req.UserID]; ok {
			pr.DisplayName = u.DisplayName()
			pr.AvatarURL = u.AvatarURL
		}
		out = append(out, pr)
	}
	return out, nil
}

func (s *JoinRequestService) requireManager(ctx context.Context, groupID string, userID uuid.UUID, action string) error {
	m, err := s.members.Get(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if m == nil || !m.IsActive() || !m.Role.CanManageMembers() {
		return domainErrors.NewPermissionDeniedError(
			"only the owner or an admin can "+action+" join requests", groupID, userID.String())
	}
	return nil
}
