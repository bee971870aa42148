package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/theodez1/revly-sub001/internal/domain/model"
)

// MockGroupRepository is a mock implementation of GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) CreateWithOwner(ctx context.Context, group *model.Group, owner *model.Membership) error {
	args := m.Called(ctx, group, owner)
	return args.Error(0)
}

func (m *MockGroupRepository) GetByID(ctx context.Context, id string) (*model.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *MockGroupRepository) Update(ctx context.Context, id string, updates model.GroupUpdate) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockGroupRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGroupRepository) ListAll(ctx context.Context) ([]model.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Group), args.Error(1)
}

func (m *MockGroupRepository) ListByIDs(ctx context.Context, ids []string) ([]model.Group, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Group), args.Error(1)
}

func (m *MockGroupRepository) TransferOwnership(ctx context.Context, groupID string, newOwnerID, currentOwnerID uuid.UUID) error {
	args := m.Called(ctx, groupID, newOwnerID, currentOwnerID)
	return args.Error(0)
}

// MockMembershipRepository is a mock implementation of MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Get(ctx context.Context, groupID string, userID uuid.UUID) (*model.Membership, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Membership), args.Error(1)
}

func (m *MockMembershipRepository) ListActiveByGroup(ctx context.Context, groupID string) ([]model.Membership, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Membership), args.Error(1)
}

func (m *MockMembershipRepository) ListActiveGroupIDsByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMembershipRepository) Create(ctx context.Context, membership *model.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) Reactivate(ctx context.Context, groupID string, userID uuid.UUID, joinedAt time.Time) error {
	args := m.Called(ctx, groupID, userID, joinedAt)
	return args.Error(0)
}

func (m *MockMembershipRepository) UpdateStatus(ctx context.Context, groupID string, userID uuid.UUID, status model.MembershipStatus) error {
	args := m.Called(ctx, groupID, userID, status)
	return args.Error(0)
}

func (m *MockMembershipRepository) UpdateRole(ctx context.Context, groupID string, userID uuid.UUID, role model.Role) error {
	args := m.Called(ctx, groupID, userID, role)
	return args.Error(0)
}

func (m *MockMembershipRepository) UpsertOwner(ctx context.Context, id string, groupID string, userID uuid.UUID, joinedAt time.Time) error {
	args := m.Called(ctx, id, groupID, userID, joinedAt)
	return args.Error(0)
}

// MockJoinRequestRepository is a mock implementation of JoinRequestRepository
type MockJoinRequestRepository struct {
	mock.Mock
}

func (m *MockJoinRequestRepository) GetByID(ctx context.Context, id string) (*model.JoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) Get(ctx context.Context, groupID string, userID uuid.UUID) (*model.JoinRequest, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) Create(ctx context.Context, req *model.JoinRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockJoinRequestRepository) Replace(ctx context.Context, supersededID string, req *model.JoinRequest) error {
	args := m.Called(ctx, supersededID, req)
	return args.Error(0)
}

func (m *MockJoinRequestRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJoinRequestRepository) UpdateStatus(ctx context.Context, id string, status model.JoinRequestStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockJoinRequestRepository) ApproveWithMembership(ctx context.Context, requestID string, membership *model.Membership) error {
	args := m.Called(ctx, requestID, membership)
	return args.Error(0)
}

func (m *MockJoinRequestRepository) ListPendingByGroup(ctx context.Context, groupID string) ([]model.JoinRequest, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) ListPendingByUser(ctx context.Context, userID uuid.UUID) ([]model.JoinRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JoinRequest), args.Error(1)
}

// MockUserReader is a mock implementation of UserReader
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserReader) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockSuggestionCache is a mock implementation of SuggestionCache
type MockSuggestionCache struct {
	mock.Mock
}

func (m *MockSuggestionCache) Get(ctx context.Context, userID uuid.UUID) ([]model.SuggestedGroup, bool) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]model.SuggestedGroup), args.Bool(1)
}

func (m *MockSuggestionCache) Set(ctx context.Context, userID uuid.UUID, groups []model.SuggestedGroup) {
	m.Called(ctx, userID, groups)
}

func (m *MockSuggestionCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	m.Called(ctx, userID)
}

func (m *MockSuggestionCache) Flush(ctx context.Context) {
	m.Called(ctx)
}

// MockIDGenerator is a mock implementation of IDGenerator
type MockIDGenerator struct {
	mock.Mock
}

func (m *MockIDGenerator) GenerateID(prefix string) (string, error) {
	args := m.Called(prefix)
	return args.String(0), args.Error(1)
}
