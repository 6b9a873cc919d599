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

// CommentHandler exposes the append-only comment log.
type CommentHandler struct {
	comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) Add(c echo.Context) error {
	log := logger.FromContext(c)
	user, _ := middleware.CurrentUser(c)

	eventID, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse comment payload", zap.Error(err))
		return fail(c, http.StatusBadRequest, "invalid request")
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	comment, err := h.comments.Add(c.Request().Context(), eventID, user.ID, req.Body)
	if err != nil {
		return failErr(c, err)
	}

	prometheus.CommentCounter.Inc()
	log.Info("Comment added",
		zap.Uint("event_id", eventID),
		zap.Uint("comment_id", comment.ID))
	return ok(c, http.StatusCreated, echo.Map{"comment_id": comment.ID})
}

func (h *CommentHandler) List(c echo.Context) error {
	eventID, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	views, err := h.comments.List(c.Request().Context(), eventID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"comments": views})
}
