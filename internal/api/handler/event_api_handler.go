package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventsapp/events-api/internal/api/middleware"
	"github.com/eventsapp/events-api/internal/core/domain"
	"github.com/eventsapp/events-api/internal/core/ports"
)

// EventAPIHandler serves the JSON event catalogue under /api/events. Every
// route behind it requires a bearer-authenticated principal.
type EventAPIHandler struct {
	events ports.EventService
}

func NewEventAPIHandler(events ports.EventService) *EventAPIHandler {
	return &EventAPIHandler{events: events}
}

type eventRequest struct {
	Name        string     `json:"name"`
	Date        *time.Time `json:"date"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
}

func (r *eventRequest) toDomain() *domain.Event {
	e := &domain.Event{
		Name:        r.Name,
		Location:    r.Location,
		Description: r.Description,
	}
	if r.Date != nil {
		e.Date = *r.Date
	}
	return e
}

// List returns all events.
//
// @Summary      List all events
// @Tags         events
// @Produce      json
// @Success      200  {array}  domain.Event
// @Router       /api/events [get]
func (h *EventAPIHandler) List(c echo.Context) error {
	events, err := h.events.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// ByOrganizer returns the events created by one organizer.
//
// @Summary      List events by organizer
// @Tags         events
// @Produce      json
// @Param        organizerid  path  int  true  "Organizer user ID"
// @Success      200  {array}  domain.Event
// @Router       /api/events/{organizerid} [get]
func (h *EventAPIHandler) ByOrganizer(c echo.Context) error {
	organizerID, err := strconv.ParseInt(c.Param("organizerid"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid organizer id")
	}
	events, err := h.events.FindByOrganizerID(c.Request().Context(), organizerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Create stores a new event owned by the authenticated principal. Missing
// fields are filled with defaults rather than rejected.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        body  body      eventRequest  true  "Event data"
// @Success      200   {object}  domain.Event
// @Router       /api/events [post]
func (h *EventAPIHandler) Create(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	event := req.toDomain()
	event.OrganizerID = principal.UserID

	created, err := h.events.Create(c.Request().Context(), event)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

// Update rewrites an existing event. Required fields must be present.
//
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id    path      int           true  "Event ID"
// @Param        body  body      eventRequest  true  "Updated event data"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/events/{id} [put]
func (h *EventAPIHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	if _, err := h.events.Update(c.Request().Context(), id, req.toDomain()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Event updated successfully"})
}

// Delete removes an event by ID.
//
// @Summary      Delete an event
// @Tags         events
// @Param        id  path  int  true  "Event ID"
// @Success      200
// @Router       /api/events/{id} [delete]
func (h *EventAPIHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}
	if err := h.events.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}
