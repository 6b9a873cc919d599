package handler

import (
	"net/http"
	"time"

	"eventshare-service/internal/middleware"
	"eventshare-service/internal/service"
	"eventshare-service/pkg/logger"
	"eventshare-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProfileHandler exposes the composed user profile and interest links.
type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) View(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	view, err := h.profiles.View(c.Request().Context(), userID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"user": view})
}

func (h *ProfileHandler) SetInterests(c echo.Context) error {
	log := logger.FromContext(c)
	user, _ := middleware.CurrentUser(c)

	var req struct {
		InterestIDs []uint `json:"interests"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse interests payload", zap.Error(err))
		return fail(c, http.StatusBadRequest, "invalid request")
	}

	if err := h.profiles.SetInterests(c.Request().Context(), user.ID, req.InterestIDs); err != nil {
		return failErr(c, err)
	}

	log.Info("Interests updated", zap.Uint("user_id", user.ID))
	return ok(c, http.StatusOK, echo.Map{"message": "success"})
}

func (h *ProfileHandler) Interests(c echo.Context) error {
	interests, err := h.profiles.Interests(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"interests": interests})
}
