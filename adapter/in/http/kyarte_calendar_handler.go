package http

import (
	"time"

	"kyarte_server/core/domain"
	"kyarte_server/core/service/calendar"
	"kyarte_server/pkg/apperr"
	"kyarte_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CalendarHandler handles calendar event HTTP requests.
type CalendarHandler struct {
	events *calendar.Service
	sync   *calendar.SyncService
}

func NewCalendarHandler(events *calendar.Service, sync *calendar.SyncService) *CalendarHandler {
	return &CalendarHandler{events: events, sync: sync}
}

// RegisterRoutes registers calendar routes.
func (h *CalendarHandler) RegisterRoutes(app fiber.Router) {
	events := app.Group("/calendar/events")
	events.Get("/", h.ListEvents)
	events.Post("/", h.CreateEvent)
	events.Get("/today", h.ListToday)
	events.Get("/week", h.ListWeek)
	events.Get("/:id", h.GetEvent)
	events.Put("/:id", h.UpdateEvent)
	events.Delete("/:id", h.DeleteEvent)

	app.Post("/calendar/sync", h.SyncEvents)
}

// ListEvents returns events, optionally filtered by range, type or
// employee.
func (h *CalendarHandler) ListEvents(c *fiber.Ctx) error {
	if eventType := c.Query("type"); eventType != "" {
		events, err := h.events.ListByType(domain.EventType(eventType))
		if err != nil {
			return err
		}
		return response.OKWithMeta(c, events, &response.Meta{Total: len(events)})
	}

	if employeeID := c.QueryInt("employee_id", 0); employeeID > 0 {
		events, err := h.events.ListByEmployee(int64(employeeID))
		if err != nil {
			return err
		}
		return response.OKWithMeta(c, events, &response.Meta{Total: len(events)})
	}

	if c.Query("from") != "" || c.Query("to") != "" {
		from, err := ParseDateQuery(c, "from", time.Now())
		if err != nil {
			return err
		}
		to, err := ParseDateQuery(c, "to", from.AddDate(0, 1, 0))
		if err != nil {
			return err
		}
		events, err := h.events.ListBetween(from, to)
		if err != nil {
			return err
		}
		return response.OKWithMeta(c, events, &response.Meta{Total: len(events)})
	}

	events, err := h.events.List()
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, events, &response.Meta{Total: len(events)})
}

// ListToday returns events overlapping today.
func (h *CalendarHandler) ListToday(c *fiber.Ctx) error {
	events, err := h.events.Today()
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, events, &response.Meta{Total: len(events)})
}

// ListWeek returns events in the next seven days.
func (h *CalendarHandler) ListWeek(c *fiber.Ctx) error {
	events, err := h.events.Week()
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, events, &response.Meta{Total: len(events)})
}

// GetEvent returns a single event.
func (h *CalendarHandler) GetEvent(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	event, err := h.events.Get(id)
	if err != nil {
		return err
	}
	return response.OK(c, event)
}

type eventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    string    `json:"location"`
	Attendees   string    `json:"attendees"`
	EventType   string    `json:"event_type"`
	EmployeeID  *int64    `json:"employee_id,omitempty"`
	IsPrivate   bool      `json:"is_private"`
}

func (r *eventRequest) apply(event *domain.CalendarEvent) {
	event.Title = r.Title
	event.Description = r.Description
	event.StartTime = r.StartTime
	event.EndTime = r.EndTime
	event.Location = r.Location
	event.Attendees = r.Attendees
	event.EventType = domain.EventType(r.EventType)
	if event.EventType == "" {
		event.EventType = domain.EventTypeOther
	}
	event.EmployeeID = r.EmployeeID
	event.IsPrivate = r.IsPrivate
}

// CreateEvent creates a calendar event manually.
func (h *CalendarHandler) CreateEvent(c *fiber.Ctx) error {
	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	event := &domain.CalendarEvent{}
	req.apply(event)
	if err := h.events.Create(event); err != nil {
		return err
	}
	return response.Created(c, event)
}

// UpdateEvent updates an event.
func (h *CalendarHandler) UpdateEvent(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	event, err := h.events.Get(id)
	if err != nil {
		return err
	}
	req.apply(event)
	if err := h.events.Update(event); err != nil {
		return err
	}
	return response.OK(c, event)
}

// DeleteEvent deletes an event.
func (h *CalendarHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.events.Delete(id); err != nil {
		return err
	}
	return response.NoContent(c)
}

// SyncEvents pushes pending events to the external calendar.
func (h *CalendarHandler) SyncEvents(c *fiber.Ctx) error {
	if h.sync == nil || !h.sync.Enabled() {
		return apperr.New(apperr.CodeConfigError, "external calendar is not configured", fiber.StatusServiceUnavailable)
	}
	synced, err := h.sync.SyncPending(c.Context())
	if err != nil {
		return err
	}
	return response.OK(c, fiber.Map{"synced": synced})
}
