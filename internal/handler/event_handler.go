package handler

import (
	"net/http"
	"strconv"
	"time"

	"eventshare-service/internal/middleware"
	"eventshare-service/internal/service"
	"eventshare-service/pkg/logger"
	"eventshare-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// EventHandler exposes event lifecycle, attendance and composed views.
type EventHandler struct {
	events     *service.EventService
	attendance *service.AttendanceService
}

func NewEventHandler(events *service.EventService, attendance *service.AttendanceService) *EventHandler {
	return &EventHandler{events: events, attendance: attendance}
}

func (h *EventHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	user, _ := middleware.CurrentUser(c)

	var req service.EventInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse event payload", zap.Error(err))
		return fail(c, http.StatusBadRequest, "invalid request")
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	event, err := h.events.Create(c.Request().Context(), user.ID, req)
	if err != nil {
		return failErr(c, err)
	}

	prometheus.EventCreatedCounter.Inc()
	log.Info("Event created",
		zap.Uint("event_id", event.ID),
		zap.Uint("creator_id", user.ID))
	return ok(c, http.StatusCreated, echo.Map{"event_id": event.ID})
}

func (h *EventHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	user, _ := middleware.CurrentUser(c)

	eventID, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}

	var req service.EventInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse event payload", zap.Error(err))
		return fail(c, http.StatusBadRequest, "invalid request")
	}

	event, err := h.events.Update(c.Request().Context(), eventID, user.ID, req)
	if err != nil {
		return failErr(c, err)
	}

	log.Info("Event updated", zap.Uint("event_id", event.ID))
	return ok(c, http.StatusOK, echo.Map{"event_id": event.ID})
}

func (h *EventHandler) Get(c echo.Context) error {
	eventID, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	view, err := h.events.Get(c.Request().Context(), eventID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"event": view})
}

func (h *EventHandler) List(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())
	views, err := h.events.List(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"events": views})
}

func (h *EventHandler) ListByCity(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())
	views, err := h.events.ListByCity(c.Request().Context(), c.Param("city"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"events": views})
}

func (h *EventHandler) Join(c echo.Context) error {
	log := logger.FromContext(c)
	user, _ := middleware.CurrentUser(c)

	eventID, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}

	count, err := h.attendance.Join(c.Request().Context(), eventID, user.ID)
	if err != nil {
		return failErr(c, err)
	}

	prometheus.EventJoinCounter.Inc()
	log.Info("User joined event",
		zap.Uint("event_id", eventID),
		zap.Uint("user_id", user.ID))
	return ok(c, http.StatusOK, echo.Map{"attendee_count": count})
}

func (h *EventHandler) Leave(c echo.Context) error {
	log := logger.FromContext(c)
	user, _ := middleware.CurrentUser(c)

	eventID, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid event id")
	}

	if err := h.attendance.Leave(c.Request().Context(), eventID, user.ID); err != nil {
		return failErr(c, err)
	}

	prometheus.EventLeaveCounter.Inc()
	log.Info("User left event",
		zap.Uint("event_id", eventID),
		zap.Uint("user_id", user.ID))
	return ok(c, http.StatusOK, echo.Map{"message": "success"})
}

func (h *EventHandler) Categories(c echo.Context) error {
	categories, err := h.events.Categories(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"categories": categories})
}

func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
