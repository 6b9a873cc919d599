package handler

import (
	"errors"
	"net/http"

	"eventshare-service/internal/service"
	"eventshare-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ok writes the canonical success envelope, merging the payload in.
func ok(c echo.Context, status int, payload echo.Map) error {
	body := echo.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

// fail writes the canonical failure envelope.
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

// failErr maps a domain error to the failure envelope. Anything outside
// the taxonomy is logged and surfaced as a generic failure.
func failErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicateEmail):
		return fail(c, http.StatusConflict, "This email is already registered")
	case errors.Is(err, service.ErrUnknownEmail):
		return fail(c, http.StatusNotFound, "This email is not registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		return fail(c, http.StatusUnauthorized, "Wrong Password, please try again")
	case errors.Is(err, service.ErrExpiredResetToken):
		return fail(c, http.StatusUnauthorized, "This reset link has expired, please request a new one")
	case errors.Is(err, service.ErrInvalidResetToken):
		return fail(c, http.StatusUnauthorized, "This reset link is not valid")
	case errors.Is(err, service.ErrForbidden):
		return fail(c, http.StatusForbidden, "Only the creator can edit this event")
	case errors.Is(err, service.ErrNotFound):
		return fail(c, http.StatusNotFound, "Not found")
	default:
		logger.FromContext(c).Error("Unhandled service error", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Something went wrong, please try again")
	}
}
