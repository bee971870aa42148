package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/theodez1/revly-sub001/internal/domain/errors"
	"github.com/theodez1/revly-sub001/internal/domain/model"
	"github.com/theodez1/revly-sub001/internal/domain/repository"
)

// SuggestionCache is a best-effort read cache for suggested-group lists.
// Implementations log their own failures; a miss is never an error.
type SuggestionCache interface {
	Get(ctx context.Context, userID uuid.UUID) ([]model.SuggestedGroup, bool)
	Set(ctx context.Context, userID uuid.UUID, groups []model.SuggestedGroup)
	Invalidate(ctx context.Context, userID uuid.UUID)
	Flush(ctx context.Context)
}

// SuggestionFilters narrows the suggestion feed. Matching is
// case-insensitive substring on the group's name and location; zero values
// match everything.
type SuggestionFilters struct {
	Name     string
	Location string
}

func (f SuggestionFilters) matches(g model.Group) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(g.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Location != "" {
		if g.Location == nil || !strings.Contains(strings.ToLower(*g.Location), strings.ToLower(f.Location)) {
			return false
		}
	}
	return true
}

// CreateGroupInput carries the attributes of a new group.
type CreateGroupInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	AvatarURL   *string `json:"avatar_url"`
	IsPrivate   bool    `json:"is_private"`
}

// GroupService handles group records: creation, detail reads, updates,
// deletion and the suggestion feed.
type GroupService struct {
	groups      repository.GroupRepository
	members     repository.MembershipRepository
	requests    repository.JoinRequestRepository
	memberships *MembershipService
	cache       SuggestionCache
	idgen       IDGenerator
	logger      *zap.Logger
}

// NewGroupService creates a new GroupService
func NewGroupService(
	groups repository.GroupRepository,
	members repository.MembershipRepository,
	requests repository.JoinRequestRepository,
	memberships *MembershipService,
	cache SuggestionCache,
	idgen IDGenerator,
	logger *zap.Logger,
) *GroupService {
	return &GroupService{
		groups:      groups,
		members:     members,
		requests:    requests,
		memberships: memberships,
		cache:       cache,
		idgen:       idgen,
		logger:      logger,
	}
}

// CreateGroup inserts the group row and the creator's owner membership as one
// atomic unit, so the creator-is-a-member invariant holds from the first
// write on.
func (s *GroupService) CreateGroup(ctx context.Context, input CreateGroupInput, creatorID uuid.UUID) (*model.Group, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainErrors.NewInvalidArgumentError("group name is required")
	}

	groupID, err := s.idgen.GenerateID("G")
	if err != nil {
		return nil, err
	}
	memberID, err := s.idgen.GenerateID("M")
	if err != nil {
		return nil, err
	}

	group := &model.Group{
		ID:          groupID,
		Name:        name,
		Description: input.Description,
		Location:    input.Location,
		AvatarURL:   input.AvatarURL,
		CreatedBy:   creatorID,
		IsPrivate:   input.IsPrivate,
	}
	owner := &model.Membership{
		ID:       memberID,
		GroupID:  groupID,
		UserID:   creatorID,
		Role:     model.RoleOwner,
		Status:   model.MembershipStatusActive,
		JoinedAt: time.Now(),
	}

	if err := s.groups.CreateWithOwner(ctx, group, owner); err != nil {
		return nil, err
	}

	s.logger.Info("group created",
		zap.String("group_id", groupID),
		zap.String("creator_id", creatorID.String()),
		zap.Bool("is_private", group.IsPrivate))

	s.cache.Flush(ctx)
	return group, nil
}

// GetGroupByID returns the group with its resolved member list and member
// count. The read always passes the creator id down so the consistency
// repair can run on legacy rows.
func (s *GroupService) GetGroupByID(ctx context.Context, id string) (*model.GroupDetail, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domainErrors.NewGroupNotFoundError(id)
	}

	members, err := s.memberships.GetGroupMembers(ctx, id, group.CreatedBy)
	if err != nil {
		return nil, err
	}

	return &model.GroupDetail{
		Group:       *group,
		MemberCount: len(members),
		Members:     members,
	}, nil
}

// UpdateGroup applies a partial update. The acting user must hold the owner
// or admin role.
func (s *GroupService) UpdateGroup(ctx context.Context, id string, updates model.GroupUpdate, actingUserID uuid.UUID) (*model.Group, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domainErrors.NewGroupNotFoundError(id)
	}

	acting, err := s.members.Get(ctx, id, actingUserID)
	if err != nil {
		return nil, err
	}
	if acting == nil || !acting.IsActive() || !acting.Role.CanManageMembers() {
		return nil, domainErrors.NewPermissionDeniedError(
			"only the owner or an admin can update the group", id, actingUserID.String())
	}

	if updates.Name != nil && strings.TrimSpace(*updates.Name) == "" {
		return nil, domainErrors.NewInvalidArgumentError("group name cannot be empty")
	}

	if err := s.groups.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.groups.GetByID(ctx, id)
}

// DeleteGroup removes the group. Only the group's creator may delete it.
func (s *GroupService) DeleteGroup(ctx context.Context, id string, actingUserID uuid.UUID) error {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if group == nil {
		return domainErrors.NewGroupNotFoundError(id)
	}
	if actingUserID != group.CreatedBy {
		return domainErrors.NewPermissionDeniedError(
			"only the group owner can delete the group", id, actingUserID.String())
	}

	if err := s.groups.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("group deleted",
		zap.String("group_id", id),
		zap.String("acting_user_id", actingUserID.String()))

	s.cache.Flush(ctx)
	return nil
}

// GetSuggestedGroups returns the groups the user does not belong to, each
// annotated with the user's pending join-request status so the client can
// render "Pending" instead of "Join". The cache holds the unfiltered per-user
// list; filters are applied on the way out so a warm cache serves every
// filter combination.
func (s *GroupService) GetSuggestedGroups(ctx context.Context, userID uuid.UUID, filters SuggestionFilters) ([]model.SuggestedGroup, error) {
	if cached, ok := s.cache.Get(ctx, userID); ok {
		return filterSuggestions(cached, filters), nil
	}

	all, err := s.groups.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	joinedIDs, err := s.members.ListActiveGroupIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	joined := make(map[string]struct{}, len(joinedIDs))
	for _, id := range joinedIDs {
		joined[id] = struct{}{}
	}

	pending, err := s.requests.ListPendingByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	pendingByGroup := make(map[string]model.JoinRequestStatus, len(pending))
	for _, req := range pending {
		pendingByGroup[req.GroupID] = req.Status
	}

	suggestions := make([]model.SuggestedGroup, 0, len(all))
	for _, g := range all {
		if _, ok := joined[g.ID]; ok {
			continue
		}
		suggestions = append(suggestions, model.SuggestedGroup{
			Group:         g,
			RequestStatus: pendingByGroup[g.ID],
		})
	}

	s.cache.Set(ctx, userID, suggestions)
	return filterSuggestions(suggestions, filters), nil
}

func filterSuggestions(suggestions []model.SuggestedGroup, filters SuggestionFilters) []model.SuggestedGroup {
	if filters.Name == "" && filters.Location == "" {
		return suggestions
	}
	filtered := make([]model.SuggestedGroup, 0, len(suggestions))
	for _, s := range suggestions {
		if filters.matches(s.Group) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// GetUserGroups returns the groups the user is an active member of.
func (s *GroupService) GetUserGroups(ctx context.Context, userID uuid.UUID) ([]model.Group, error) {
	ids, err := s.members.ListActiveGroupIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.groups.ListByIDs(ctx, ids)
}
