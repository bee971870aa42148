package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	domainErrors "github.com/theodez1/revly-sub001/internal/domain/errors"
	"github.com/theodez1/revly-sub001/internal/domain/model"
)

func newMembershipService(groups *MockGroupRepository, members *MockMembershipRepository, users *MockUserReader, cache *MockSuggestionCache, idgen *MockIDGenerator) *MembershipService {
	return NewMembershipService(groups, members, users, cache, idgen, zap.NewNop())
}

func TestMembershipService_GetGroupMembers_CreatorPresent(t *testing.T) {
	creatorID := uuid.New()
	otherID := uuid.New()

	members := new(MockMembershipRepository)
	users := new(MockUserReader)

	rows := []model.Membership{
		{ID: "M01AAAAAAAAA", GroupID: "G01TESTGROUP", UserID: creatorID, Role: model.RoleOwner, Status: model.MembershipStatusActive, JoinedAt: time.Now()},
		{ID: "M01BBBBBBBBB", GroupID: "G01TESTGROUP", UserID: otherID, Role: model.RoleMember, Status: model.MembershipStatusActive, JoinedAt: time.Now()},
	}
	members.On("ListActiveByGroup", mock.Anything, "G01TESTGROUP").Return(rows, nil)
	users.On("ListByIDs", mock.Anything, []uuid.UUID{creatorID, otherID}).Return([]model.User{
		{ID: creatorID, Username: "alice"},
		{ID: otherID, Username: "bob"},
	}, nil)

	service := newMembershipService(new(MockGroupRepository), members, users, new(MockSuggestionCache), new(MockIDGenerator))

	result, err := service.GetGroupMembers(context.Background(), "G01TESTGROUP", creatorID)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, creatorID, result[0].UserID)
	assert.Equal(t, "alice", result[0].DisplayName)
	assert.False(t, result[0].Synthetic)
	members.AssertNotCalled(t, "UpsertOwner", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMembershipService_GetGroupMembers_RepairsMissingCreator(t *testing.T) {
	creatorID := uuid.New()
	otherID := uuid.New()

	members := new(MockMembershipRepository)
	users := new(MockUserReader)
	idgen := new(MockIDGenerator)

	withoutCreator := []model.Membership{
		{ID: "M01BBBBBBBBB", GroupID: "G01TESTGROUP", UserID: otherID, Role: model.RoleMember, Status: model.MembershipStatusActive, JoinedAt: time.Now()},
	}
	withCreator := []model.Membership{
		{ID: "M01CCCCCCCCC", GroupID: "G01TESTGROUP", UserID: creatorID, Role: model.RoleOwner, Status: model.MembershipStatusActive, JoinedAt: time.Now()},
		withoutCreator[0],
	}

	members.On("ListActiveByGroup", mock.Anything, "G01TESTGROUP").Return(withoutCreator, nil).Once()
	idgen.On("GenerateID", "M").Return("M01CCCCCCCCC", nil)
	members.On("UpsertOwner", mock.Anything, "M01CCCCCCCCC", "G01TESTGROUP", creatorID, mock.Anything).Return(nil)
	members.On("ListActiveByGroup", mock.Anything, "G01TESTGROUP").Return(withCreator, nil).Once()
	users.On("ListByIDs", mock.Anything, mock.Anything).Return([]model.User{
		{ID: creatorID, Username: "alice"},
		{ID: otherID, Username: "bob"},
	}, nil)

	service := newMembershipService(new(MockGroupRepository), members, users, new(MockSuggestionCache), idgen)

	result, err := service.GetGroupMembers(context.Background(), "G01TESTGROUP", creatorID)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, creatorID, result[0].UserID)
	assert.Equal(t, model.RoleOwner, result[0].Role)
	assert.False(t, result[0].Synthetic)
	members.AssertExpectations(t)
}

func TestMembershipService_GetGroupMembers_PlaceholderWhenRepairFails(t *testing.T) {
	creatorID := uuid.New()

	members := new(MockMembershipRepository)
	users := new(MockUserReader)
	idgen := new(MockIDGenerator)

	members.On("ListActiveByGroup", mock.Anything, "G01TESTGROUP").Return([]model.Membership{}, nil)
	idgen.On("GenerateID", "M").Return("M01CCCCCCCCC", nil)
	members.On("UpsertOwner", mock.Anything, "M01CCCCCCCCC", "G01TESTGROUP", creatorID, mock.Anything).
		Return(domainErrors.NewInternalError("insert failed", assert.AnError))
	users.On("ListByIDs", mock.Anything, []uuid.UUID{}).Return([]model.User{}, nil)

	service := newMembershipService(new(MockGroupRepository), members, users, new(MockSuggestionCache), idgen)

	result, err := service.GetGroupMembers(context.Background(), "G01TESTGROUP", creatorID)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, creatorID, result[0].UserID)
	assert.Equal(t, "Créateur", result[0].DisplayName)
	assert.Equal(t, model.RoleOwner, result[0].Role)
	assert.True(t, result[0].Synthetic)
}

func TestMembershipService_JoinGroup(t *testing.T) {
	groupID := "G01TESTGROUP"
	userID := uuid.New()
	publicGroup := &model.Group{ID: groupID, Name: "Sunday Riders", CreatedBy: uuid.New()}
	privateGroup := &model.Group{ID: groupID, Name: "Sunday Riders", CreatedBy: uuid.New(), IsPrivate: true}

	tests := []struct {
		name             string
		mockSetup        func(*MockGroupRepository, *MockMembershipRepository, *MockIDGenerator)
		expectedError    bool
		errorType        string
		expectedRole     model.Role
		expectInvalidate bool
	}{
		{
			name: "group not found",
			mockSetup: func(groups *MockGroupRepository, members *MockMembershipRepository, idgen *MockIDGenerator) {
				groups.On("GetByID", mock.Anything, groupID).Return(nil, nil)
			},
			expectedError: true,
			errorType:     domainErrors.ErrTypeNotFound,
		},
		{
			name: "private group rejects direct join",
			mockSetup: func(groups *MockGroupRepository, members *MockMembershipRepository, idgen *MockIDGenerator) {
				groups.On("GetByID", mock.Anything, groupID).Return(privateGroup, nil)
			},
			expectedError: true,
			errorType:     domainErrors.ErrTypePermissionDenied,
		},
		{
			name: "already active member is a no-op",
			mockSetup: func(groups *MockGroupRepository, members *MockMembershipRepository, idgen *MockIDGenerator) {
				groups.On("GetByID", mock.Anything, groupID).Return(publicGroup, nil)
				members.On("Get", mock.Anything, groupID, userID).Return(&model.Membership{
					ID: "M01AAAAAAAAA", GroupID: groupID, UserID: userID,
					Role: model.RoleMember, Status: model.MembershipStatusActive,
				}, nil)
			},
			expectedRole: model.RoleMember,
		},
		{
			name: "rejoin reactivates and keeps the previous role",
			mockSetup: func(groups *MockGroupRepository, members *MockMembershipRepository, idgen *MockIDGenerator) {
				groups.On("GetByID", mock.Anything, groupID).Return(publicGroup, nil)
				members.On("Get", mock.Anything, groupID, userID).Return(&model.Membership{
					ID: "M01AAAAAAAAA", GroupID: groupID, UserID: userID,
					Role: model.RoleAdmin, Status: model.MembershipStatusLeft,
				}, nil)
				members.On("Reactivate", mock.Anything, groupID, userID, mock.Anything).Return(nil)
			},
			expectedRole:     model.RoleAdmin,
			expectInvalidate: true,
		},
		{
			name: "first join creates a member row",
			mockSetup: func(groups *MockGroupRepository, members *MockMembershipRepository, idgen *MockIDGenerator) {
				groups.On("GetByID", mock.Anything, groupID).Return(publicGroup, nil)
				members.On("Get", mock.Anything, groupID, userID).Return(nil, nil)
				idgen.On("GenerateID", "M").Return("M01DDDDDDDDD", nil)
				members.On("Create", mock.Anything, mock.MatchedBy(func(m *model.Membership) bool {
					return m.Role == model.RoleMember && m.Status == model.MembershipStatusActive
				})).Return(nil)
			},
			expectedRole:     model.RoleMember,
			expectInvalidate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := new(MockGroupRepository)
			members := new(MockMembershipRepository)
			idgen := new(MockIDGenerator)
			cache := new(MockSuggestionCache)
			cache.On("Invalidate", mock.Anything, userID).Return()
			tt.mockSetup(groups, members, idgen)

			service := newMembershipService(groups, members, new(MockUserReader), cache, idgen)

			result, err := service.JoinGroup(context.Background(), groupID, userID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, domainErrors.IsType(err, tt.errorType))
				cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedRole, result.Role)
			assert.Equal(t, model.MembershipStatusActive, result.Status)
			if tt.expectInvalidate {
				cache.AssertCalled(t, "Invalidate", mock.Anything, userID)
			} else {
				cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
			}
			members.AssertExpectations(t)
		})
	}
}

func TestMembershipService_JoinGroup_Idempotent(t *testing.T) {
	groupID := "G01TESTGROUP"
	userID := uuid.New()
	active := &model.Membership{
		ID: "M01AAAAAAAAA", GroupID: groupID, UserID: userID,
		Role: model.RoleMember, Status: model.MembershipStatusActive,
	}

	groups := new(MockGroupRepository)
	members := new(MockMembershipRepository)
	groups.On("GetByID", mock.Anything, groupID).Return(&model.Group{ID: groupID, Name: "Sunday Riders"}, nil)
	members.On("Get", mock.Anything, groupID, userID).Return(active, nil)

	cache := new(MockSuggestionCache)
	service := newMembershipService(groups, members, new(MockUserReader), cache, new(MockIDGenerator))

	first, err := service.JoinGroup(context.Background(), groupID, userID)
	assert.NoError(t, err)
	second, err := service.JoinGroup(context.Background(), groupID, userID)
	assert.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	members.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	members.AssertNotCalled(t, "Reactivate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestMembershipService_LeaveGroup(t *testing.T) {
	groupID := "G01TESTGROUP"
	userID := uuid.New()

	tests := []struct {
		name          string
		membership    *model.Membership
		expectedError bool
		errorType     string
	}{
		{
			name:          "not a member",
			membership:    nil,
			expectedError: true,
			errorType:     domainErrors.ErrTypeNotFound,
		},
		{
			name: "already left",
			membership: &model.Membership{
				GroupID: groupID, UserID: userID,
				Role: model.RoleMember, Status: model.MembershipStatusLeft,
			},
			expectedError: true,
			errorType:     domainErrors.ErrTypeNotFound,
		},
		{
			name: "owner cannot leave",
			membership: &model.Membership{
				GroupID: groupID, UserID: userID,
				Role: model.RoleOwner, Status: model.MembershipStatusActive,
			},
			expectedError: true,
			errorType:     domainErrors.ErrTypePermissionDenied,
		},
		{
			name: "member leaves",
			membership: &model.Membership{
				GroupID: groupID, UserID: userID,
				Role: model.RoleMember, Status: model.MembershipStatusActive,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := new(MockMembershipRepository)
			if tt.membership == nil {
				members.On("Get", mock.Anything, groupID, userID).Return(nil, nil)
			} else {
				members.On("Get", mock.Anything, groupID, userID).Return(tt.membership, nil)
			}
			members.On("UpdateStatus", mock.Anything, groupID, userID, model.MembershipStatusLeft).Return(nil)
			cache := new(MockSuggestionCache)
			cache.On("Invalidate", mock.Anything, userID).Return()

			service := newMembershipService(new(MockGroupRepository), members, new(MockUserReader), cache, new(MockIDGenerator))

			err := service.LeaveGroup(context.Background(), groupID, userID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, domainErrors.IsType(err, tt.errorType))
				members.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				cache.AssertCalled(t, "Invalidate", mock.Anything, userID)
			}
		})
	}
}

func TestMembershipService_RemoveMember(t *testing.T) {
	groupID := "G01TESTGROUP"
	creatorID := uuid.New()
	adminID := uuid.New()
	memberID := uuid.New()
	group := &model.Group{ID: groupID, Name: "Sunday Riders", CreatedBy: creatorID}

	activeAdmin := &model.Membership{GroupID: groupID, UserID: adminID, Role: model.RoleAdmin, Status: model.MembershipStatusActive}
	activeMember := &model.Membership{GroupID: groupID, UserID: memberID, Role: model.RoleMember, Status: model.MembershipStatusActive}

	tests := []struct {
		name          string
		targetID      uuid.UUID
		actingID      uuid.UUID
		mockSetup     func(*MockGroupRepository, *MockMembershipRepository)
		expectedError bool
		errorType     string
	}{
		{
			name:     "plain member cannot remove",
			targetID: adminID,
			actingID: memberID,
			mockSetup: func(groups *MockGroupRepository, members *MockMembershipRepository) {
				groups.On("GetByID", mock.Anything, groupID).Return(group, nil)
				members.On("Get", mock.Anything, groupID, memberID).Return(activeMember, nil)
			},
			expectedError: true,
			errorType:     domainErrors.ErrTypePermissionDenied,
		},
		{
			name:     "creator cannot be removed",
			targetID: creatorID,
			actingID: adminID,
			mockSetup: func(groups *MockGroupRepository, members *MockMembershipRepository) {
				groups.On("GetByID", mock.Anything, groupID).Return(group, nil)
				members.On("Get", mock.Anything, groupID, adminID).Return(activeAdmin, nil)
			},
			expectedError: true,
			errorType:     domainErrors.ErrTypePermissionDenied,
		},
		{
			name:     "target not an active member",
			targetID: memberID,
			actingID: adminID,
			mockSetup: func(groups *MockGroupRepository, members *MockMembershipRepository) {
				groups.On("GetByID", mock.Anything, groupID).Return(group, nil)
				members.On("Get", mock.Anything, groupID, adminID).Return(activeAdmin, nil)
				members.On("Get", mock.Anything, groupID, memberID).Return(nil, nil)
			},
			expectedError: true,
			errorType:     domainErrors.ErrTypeNotFound,
		},
		{
			name:     "admin removes a member",
			targetID: memberID,
			actingID: adminID,
			mockSetup: func(groups *MockGroupRepository, members *MockMembershipRepository) {
				groups.On("GetByID", mock.Anything, groupID).Return(group, nil)
				members.On("Get", mock.Anything, groupID, adminID).Return(activeAdmin, nil)
				members.On("Get", mock.Anything, groupID, memberID).Return(activeMember, nil)
				members.On("UpdateStatus", mock.Anything, groupID, memberID, model.MembershipStatusRemoved).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := new(MockGroupRepository)
			members := new(MockMembershipRepository)
			tt.mockSetup(groups, members)
			cache := new(MockSuggestionCache)
			cache.On("Invalidate", mock.Anything, tt.targetID).Return()

			service := newMembershipService(groups, members, new(MockUserReader), cache, new(MockIDGenerator))

			err := service.RemoveMember(context.Background(), groupID, tt.targetID, tt.actingID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, domainErrors.IsType(err, tt.errorType))
				cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				cache.AssertCalled(t, "Invalidate", mock.Anything, tt.targetID)
				members.AssertExpectations(t)
			}
		})
	}
}
