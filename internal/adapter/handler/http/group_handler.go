package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/theodez1/revly-sub001/internal/domain/model"
	"github.com/theodez1/revly-sub001/internal/usecase"
)

// GroupHandler handles group-related HTTP requests
type GroupHandler struct {
	logger       *zap.Logger
	groupService *usecase.GroupService
}

// NewGroupHandler creates a new group handler instance
func NewGroupHandler(logger *zap.Logger, groupService *usecase.GroupService) *GroupHandler {
	return &GroupHandler{
		logger:       logger,
		groupService: groupService,
	}
}

type createGroupRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	AvatarURL   *string `json:"avatar_url"`
	IsPrivate   bool    `json:"is_private"`
}

// CreateGroup handles POST /api/v1/groups
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	userID, err := h.authenticatedUser(c)
	if err != nil {
		return err
	}

	var req createGroupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	group, err := h.groupService.CreateGroup(c.Request().Context(), usecase.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		AvatarURL:   req.AvatarURL,
		IsPrivate:   req.IsPrivate,
	}, userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, group)
}

// GetGroup handles GET /api/v1/groups/:id
func (h *GroupHandler) GetGroup(c echo.Context) error {
	detail, err := h.groupService.GetGroupByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, detail)
}

type updateGroupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	AvatarURL   *string `json:"avatar_url"`
	IsPrivate   *bool   `json:"is_private"`
}

// UpdateGroup handles PATCH /api/v1/groups/:id
func (h *GroupHandler) UpdateGroup(c echo.Context) error {
	userID, err := h.authenticatedUser(c)
	if err != nil {
		return err
	}

	var req updateGroupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	group, err := h.groupService.UpdateGroup(c.Request().Context(), c.Param("id"), model.GroupUpdate{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		AvatarURL:   req.AvatarURL,
		IsPrivate:   req.IsPrivate,
	}, userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, group)
}

// DeleteGroup handles DELETE /api/v1/groups/:id
func (h *GroupHandler) DeleteGroup(c echo.Context) error {
	userID, err := h.authenticatedUser(c)
	if err != nil {
		return err
	}

	if err := h.groupService.DeleteGroup(c.Request().Context(), c.Param("id"), userID); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetSuggestedGroups handles GET /api/v1/groups/suggested
func (h *GroupHandler) GetSuggestedGroups(c echo.Context) error {
	userID, err := h.authenticatedUser(c)
	if err != nil {
		return err
	}

	filters := usecase.SuggestionFilters{
		Name:     c.QueryParam("name"),
		Location: c.QueryParam("location"),
	}
	suggestions, err := h.groupService.GetSuggestedGroups(c.Request().Context(), userID, filters)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, suggestions)
}

// GetUserGroups handles GET /api/v1/groups/mine
func (h *GroupHandler) GetUserGroups(c echo.Context) error {
	userID, err := h.authenticatedUser(c)
	if err != nil {
		return err
	}

	groups, err := h.groupService.GetUserGroups(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, groups)
}

func (h *GroupHandler) authenticatedUser(c echo.Context) (uuid.UUID, error) {
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
