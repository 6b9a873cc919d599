package middleware

import (
	"net/http"
	"strings"

	"eventshare-service/internal/model"
	"eventshare-service/internal/service"
	"eventshare-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const userContextKey = "current_user"

// TokenAuth resolves the bearer token from an "Authorization: Token <hex>"
// header to a user and stores it in the request context. Resolution never
// rejects: a missing or unknown token leaves the request anonymous and
// downstream handlers decide whether that is acceptable.
func TokenAuth(identity *service.IdentityService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(raw, "Token ") {
				uuid := strings.TrimPrefix(raw, "Token ")
				user, err := identity.Resolve(c.Request().Context(), uuid)
				if err != nil {
					// Store failure, not a bad token; surface as a server error.
					logger.FromContext(c).Error("Token resolution failed", zap.Error(err))
					return c.JSON(http.StatusInternalServerError, echo.Map{
						"success": false,
						"message": "internal error",
					})
				}
				if user != nil {
					c.Set(userContextKey, user)
				}
			}
			return next(c)
		}
	}
}

// RequireUser rejects anonymous requests on mutating routes.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := CurrentUser(c); !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "authentication required",
			})
		}
		return next(c)
	}
}

// CurrentUser returns the authenticated user bound to the request, if any.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(userContextKey).(*model.User)
	return user, ok
}
