package domain

import "time"

// EventType classifies calendar entries created from analyzed notes.
type EventType string

const (
	EventTypeMeeting  EventType = "meeting"
	EventTypeVacation EventType = "vacation"
	EventTypeDeadline EventType = "deadline"
	EventTypeBirthday EventType = "birthday"
	EventTypeOther    EventType = "other"
)

// CalendarEvent is a scheduled entry, optionally linked to an employee.
type CalendarEvent struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    string    `json:"location,omitempty"`
	// Attendees is a comma separated list of display names.
	Attendees string    `json:"attendees,omitempty"`
	EventType EventType `json:"event_type"`
	EmployeeID *int64   `json:"employee_id,omitempty"`
	IsPrivate  bool     `json:"is_private"`

	// External sync state
	GoogleCalendarID *string `json:"google_calendar_id,omitempty"`
	IsSynced         bool    `json:"is_synced"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CalendarRepository interface for calendar event persistence
type CalendarRepository interface {
	GetByID(id int64) (*CalendarEvent, error)
	List() ([]*CalendarEvent, error)
	ListBetween(start, end time.Time) ([]*CalendarEvent, error)
	ListByType(eventType EventType) ([]*CalendarEvent, error)
	ListByEmployee(employeeID int64) ([]*CalendarEvent, error)
	ListUnsynced() ([]*CalendarEvent, error)
	Create(event *CalendarEvent) error
	Update(event *CalendarEvent) error
	MarkSynced(id int64, googleCalendarID string) error
	Delete(id int64) error
}
