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

// EventsWebHandler serves the browser chain's event pages. The listing and
// search pages are public; the mutation pages sit behind the ADMIN rule in
// the session policy.
type EventsWebHandler struct {
	events ports.EventService
}

func NewEventsWebHandler(events ports.EventService) *EventsWebHandler {
	return &EventsWebHandler{events: events}
}

func (h *EventsWebHandler) List(c echo.Context) error {
	events, err := h.events.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "events", map[string]any{"Events": events})
}

func (h *EventsWebHandler) SearchForm(c echo.Context) error {
	return c.Render(http.StatusOK, "searchForm", nil)
}

func (h *EventsWebHandler) Search(c echo.Context) error {
	text := c.FormValue("description")
	if text == "" {
		return c.Render(http.StatusOK, "searchForm", nil)
	}
	events, err := h.events.Search(c.Request().Context(), text)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "events", map[string]any{"Events": events})
}

func (h *EventsWebHandler) CreateForm(c echo.Context) error {
	return c.Render(http.StatusOK, "eventForm", map[string]any{
		"Title": "Create event", "Action": "/events/create", "Event": &domain.Event{Date: time.Now()},
	})
}

func (h *EventsWebHandler) Create(c echo.Context) error {
	principal, _ := middleware.PrincipalFrom(c)

	event := eventFromForm(c)
	event.OrganizerID = principal.UserID

	if _, err := h.events.Create(c.Request().Context(), event); err != nil {
		return c.Render(http.StatusOK, "eventForm", map[string]any{
			"Title": "Create event", "Action": "/events/create", "Event": event,
			"Error": "Could not create event.",
		})
	}
	return c.Redirect(http.StatusFound, "/events")
}

func (h *EventsWebHandler) EditForm(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}
	event, err := h.events.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "eventForm", map[string]any{
		"Title": "Edit event", "Action": "/events/edit/" + c.Param("id"), "Event": event,
	})
}

func (h *EventsWebHandler) Edit(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	event := eventFromForm(c)
	if _, err := h.events.Update(c.Request().Context(), id, event); err != nil {
		event.ID = id
		return c.Render(http.StatusOK, "eventForm", map[string]any{
			"Title": "Edit event", "Action": "/events/edit/" + c.Param("id"), "Event": event,
			"Error": "Could not update event.",
		})
	}
	return c.Redirect(http.StatusFound, "/events")
}

func (h *EventsWebHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}
	if err := h.events.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/events")
}

func eventFromForm(c echo.Context) *domain.Event {
	event := &domain.Event{
		Name:        c.FormValue("name"),
		Location:    c.FormValue("location"),
		Description: c.FormValue("description"),
	}
	if date, err := time.Parse("2006-01-02", c.FormValue("date")); err == nil {
		event.Date = date
	}
	return event
}
