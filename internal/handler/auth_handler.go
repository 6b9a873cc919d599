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

// AuthHandler exposes registration, login/logout and the password reset
// flow over the credential service.
type AuthHandler struct {
	credentials *service.CredentialService
}

func NewAuthHandler(credentials *service.CredentialService) *AuthHandler {
	return &AuthHandler{credentials: credentials}
}

func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegistrationCounter.Inc()

	var req service.RegisterInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return fail(c, http.StatusBadRequest, "invalid request")
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	user, err := h.credentials.Register(c.Request().Context(), req)
	if err != nil {
		prometheus.RecordAuthError("registration_failed")
		return failErr(c, err)
	}

	log.Info("User registered", zap.String("email", user.Email))
	return ok(c, http.StatusCreated, echo.Map{
		"message": "Success",
		"user": echo.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return fail(c, http.StatusBadRequest, "invalid request")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	token, user, err := h.credentials.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		prometheus.RecordAuthError("login_failed")
		return failErr(c, err)
	}

	prometheus.LoginCounter.Inc()
	log.Info("User logged in", zap.String("email", user.Email))
	return ok(c, http.StatusOK, echo.Map{
		"user": echo.Map{
			"name":  user.Name,
			"email": user.Email,
		},
		"token": token.UUID,
	})
}

// Logout revokes the caller's token. Idempotent: logging out without a
// live token still succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	user, ok2 := middleware.CurrentUser(c)
	if !ok2 {
		return ok(c, http.StatusOK, echo.Map{"message": "success"})
	}

	if err := h.credentials.Revoke(c.Request().Context(), user.ID); err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"message": "success"})
}

// GetUser returns the authenticated caller's identity.
func (h *AuthHandler) GetUser(c echo.Context) error {
	user, ok2 := middleware.CurrentUser(c)
	if !ok2 {
		return fail(c, http.StatusUnauthorized, "authentication required")
	}
	return ok(c, http.StatusOK, echo.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.PasswordResetCounter.With(map[string]string{"stage": "requested"}).Inc()

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse reset request", zap.Error(err))
		return fail(c, http.StatusBadRequest, "invalid request")
	}

	if err := h.credentials.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"message": "A reset link has been sent to your email"})
}

func (h *AuthHandler) CompletePasswordReset(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse reset completion", zap.Error(err))
		return fail(c, http.StatusBadRequest, "invalid request")
	}

	if err := h.credentials.CompletePasswordReset(c.Request().Context(), req.Token, req.Password); err != nil {
		return failErr(c, err)
	}

	prometheus.PasswordResetCounter.With(map[string]string{"stage": "completed"}).Inc()
	return ok(c, http.StatusOK, echo.Map{"message": "Your password has been updated"})
}
