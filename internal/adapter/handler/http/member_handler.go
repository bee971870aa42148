package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/theodez1/revly-sub001/internal/domain/errors"
	"github.com/theodez1/revly-sub001/internal/usecase"
)

// MemberHandler handles membership and role HTTP requests
type MemberHandler struct {
	logger            *zap.Logger
	groupService      *usecase.GroupService
	membershipService *usecase.MembershipService
	roleService       *usecase.RoleService
}

// NewMemberHandler creates a new member handler instance
func NewMemberHandler(
	logger *zap.Logger,
	groupService *usecase.GroupService,
	membershipService *usecase.MembershipService,
	roleService *usecase.RoleService,
) *MemberHandler {
	return &MemberHandler{
		logger:            logger,
		groupService:      groupService,
		membershipService: membershipService,
		roleService:       roleService,
	}
}

// ListMembers handles GET /api/v1/groups/:id/members
func (h *MemberHandler) ListMembers(c echo.Context) error {
	detail, err := h.groupService.GetGroupByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"member_count": detail.MemberCount,
		"members":      detail.Members,
	})
}

// JoinGroup handles POST /api/v1/groups/:id/members
func (h *MemberHandler) JoinGroup(c echo.Context) error {
	userID, err := h.authenticatedUser(c)
	if err != nil {
		return err
	}

	membership, err := h.membershipService.JoinGroup(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, membership)
}

// LeaveGroup handles DELETE /api/v1/groups/:id/members/me
func (h *MemberHandler) LeaveGroup(c echo.Context) error {
	userID, err := h.authenticatedUser(c)
	if err != nil {
		return err
	}

	if err := h.membershipService.LeaveGroup(c.Request().Context(), c.Param("id"), userID); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveMember handles DELETE /api/v1/groups/:id/members/:userId
func (h *MemberHandler) RemoveMember(c echo.Context) error {
	actingID, err := h.authenticatedUser(c)
	if err != nil {
		return err
	}
	targetID, err := h.pathUserID(c)
	if err != nil {
		return err
	}

	if err := h.membershipService.RemoveMember(c.Request().Context(), c.Param("id"), targetID, actingID); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// PromoteMember handles POST /api/v1/groups/:id/members/:userId/promote
func (h *MemberHandler) PromoteMember(c echo.Context) error {
	actingID, err := h.authenticatedUser(c)
	if err != nil {
		return err
	}
	targetID, err := h.pathUserID(c)
	if err != nil {
		return err
	}

	if err := h.roleService.PromoteToAdmin(c.Request().Context(), c.Param("id"), targetID, actingID); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DemoteMember handles POST /api/v1/groups/:id/members/:userId/demote
func (h *MemberHandler) DemoteMember(c echo.Context) error {
	actingID, err := h.authenticatedUser(c)
	if err != nil {
		return err
	}
	targetID, err := h.pathUserID(c)
	if err != nil {
		return err
	}

	if err := h.roleService.DemoteFromAdmin(c.Request().Context(), c.Param("id"), targetID, actingID); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type transferOwnershipRequest struct {
	NewOwnerID string `json:"new_owner_id"`
}

// TransferOwnership handles POST /api/v1/groups/:id/transfer-ownership
func (h *MemberHandler) TransferOwnership(c echo.Context) error {
	actingID, err := h.authenticatedUser(c)
	if err != nil {
		return err
	}

	var req transferOwnershipRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	newOwnerID, err := uuid.Parse(req.NewOwnerID)
	if err != nil {
		return respondError(c, h.logger,
			domainErrors.NewInvalidArgumentError("new_owner_id must be a valid UUID"))
	}

	if err := h.roleService.TransferOwnership(c.Request().Context(), c.Param("id"), newOwnerID, actingID); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MemberHandler) authenticatedUser(c echo.Context) (uuid.UUID, error) {
	userIDStr, ok := actingUserID(c)
	if !ok {
		h.logger.Error("Failed to extract user ID from JWT claims")
		return uuid.Nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		h.logger.Error("Invalid user ID format", zap.String("user_id", userIDStr), zap.Error(err))
		return uuid.Nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID format"})
	}
	return userID, nil
}

func (h *MemberHandler) pathUserID(c echo.Context) (uuid.UUID, error) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return uuid.Nil, respondError(c, h.logger,
			domainErrors.NewInvalidArgumentError("user id must be a valid UUID"))
	}
	return userID, nil
}
