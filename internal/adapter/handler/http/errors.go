package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/theodez1/revly-sub001/internal/domain/errors"
)

// toHTTPStatus maps a domain error type to an HTTP status code.
func toHTTPStatus(errType string) int {
	switch errType {
	case domainErrors.ErrTypeNotFound:
		return http.StatusNotFound
	case domainErrors.ErrTypePermissionDenied:
		return http.StatusForbidden
	case domainErrors.ErrTypeConflict:
		return http.StatusConflict
	case domainErrors.ErrTypeInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a domain error as a JSON response. Unknown errors are
// logged and returned as 500 without leaking internals.
func respondError(c echo.Context, logger *zap.Logger, err error) error {
	var groupErr *domainErrors.GroupError
	if errors.As(err, &groupErr) {
		status := toHTTPStatus(groupErr.Type)
		if status == http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("path", c.Request().URL.Path),
				zap.Error(err))
			return c.JSON(status, echo.Map{
				"error": "internal server error",
				"code":  groupErr.Type,
			})
		}
		return c.JSON(status, echo.Map{
			"error": groupErr.Message,
			"code":  groupErr.Type,
		})
	}

	logger.Error("request failed",
		zap.String("path", c.Request().URL.Path),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": "internal server error",
		"code":  domainErrors.ErrTypeInternal,
	})
}

// actingUserID extracts the authenticated user's id set by the JWT middleware.
func actingUserID(c echo.Context) (string, bool) {
	userID, ok := c.Get("user_id").(string)
	return userID, ok
}
