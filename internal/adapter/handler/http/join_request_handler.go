package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/theodez1/revly-sub001/internal/usecase"
)

// JoinRequestHandler handles join-request HTTP requests
type JoinRequestHandler struct {
	logger             *zap.Logger
	joinRequestService *usecase.JoinRequestService
}

// NewJoinRequestHandler creates a new join request handler instance
func NewJoinRequestHandler(logger *zap.Logger, joinRequestService *usecase.JoinRequestService) *JoinRequestHandler {
	return &JoinRequestHandler{
		logger:             logger,
		joinRequestService: joinRequestService,
	}
}

type createJoinRequestRequest struct {
	Message *string `json:"message"`
}

// RequestToJoin handles POST /api/v1/groups/:id/join-requests
func (h *JoinRequestHandler) RequestToJoin(c echo.Context) error {
	userID, err := h.authenticatedUser(c)
	if err != nil {
		return err
	}

	var req createJoinRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	request, err := h.joinRequestService.RequestToJoin(c.Request().Context(), c.Param("id"), userID, req.Message)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, request)
}

// CancelJoinRequest handles DELETE /api/v1/groups/:id/join-requests/me
func (h *JoinRequestHandler) CancelJoinRequest(c echo.Context) error {
	userID, err := h.authenticatedUser(c)
	if err != nil {
		return err
	}

	if err := h.joinRequestService.CancelJoinRequest(c.Request().Context(), c.Param("id"), userID); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListPendingRequests handles GET /api/v1/groups/:id/join-requests
func (h *JoinRequestHandler) ListPendingRequests(c echo.Context) error {
	userID, err := h.authenticatedUser(c)
	if err != nil {
		return err
	}

	requests, err := h.joinRequestService.ListPendingRequests(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, requests)
}

// ApproveJoinRequest handles POST /api/v1/join-requests/:requestId/approve
func (h *JoinRequestHandler) ApproveJoinRequest(c echo.Context) error {
	userID, err := h.authenticatedUser(c)
	if err != nil {
		return err
	}

	membership, err := h.joinRequestService.ApproveJoinRequest(c.Request().Context(), c.Param("requestId"), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, membership)
}

// RejectJoinRequest handles POST /api/v1/join-requests/:requestId/reject
func (h *JoinRequestHandler) RejectJoinRequest(c echo.Context) error {
	userID, err := h.authenticatedUser(c)
	if err != nil {
		return err
	}

	if err := h.joinRequestService.RejectJoinRequest(c.Request().Context(), c.Param("requestId"), userID); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *JoinRequestHandler) authenticatedUser(c echo.Context) (uuid.UUID, error) {
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
