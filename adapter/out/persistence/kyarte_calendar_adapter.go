package persistence

import (
	"database/sql"
	"fmt"
	"time"

	"kyarte_server/core/domain"

	"github.com/jmoiron/sqlx"
)

// CalendarAdapter implements domain.CalendarRepository using PostgreSQL.
type CalendarAdapter struct {
	db *sqlx.DB
}

func NewCalendarAdapter(db *sqlx.DB) *CalendarAdapter {
	return &CalendarAdapter{db: db}
}

// calendarEventRow represents the database row for calendar events.
type calendarEventRow struct {
	ID               int64          `db:"id"`
	Title            string         `db:"title"`
	Description      string         `db:"description"`
	StartTime        time.Time      `db:"start_time"`
	EndTime          time.Time      `db:"end_time"`
	Location         string         `db:"location"`
	Attendees        string         `db:"attendees"`
	EventType        string         `db:"event_type"`
	EmployeeID       sql.NullInt64  `db:"employee_id"`
	IsPrivate        bool           `db:"is_private"`
	GoogleCalendarID sql.NullString `db:"google_calendar_id"`
	IsSynced         bool           `db:"is_synced"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func (r *calendarEventRow) toEntity() *domain.CalendarEvent {
	event := &domain.CalendarEvent{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Location:    r.Location,
		Attendees:   r.Attendees,
		EventType:   domain.EventType(r.EventType),
		IsPrivate:   r.IsPrivate,
		IsSynced:    r.IsSynced,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.EmployeeID.Valid {
		event.EmployeeID = &r.EmployeeID.Int64
	}
	if r.GoogleCalendarID.Valid {
		event.GoogleCalendarID = &r.GoogleCalendarID.String
	}
	return event
}

// GetByID retrieves an event. Returns nil when no event matches.
func (a *CalendarAdapter) GetByID(id int64) (*domain.CalendarEvent, error) {
	var row calendarEventRow
	query := `SELECT * FROM calendar_events WHERE id = $1`

	if err := a.db.Get(&row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get calendar event: %w", err)
	}
	return row.toEntity(), nil
}

// List retrieves all events ordered by start time.
func (a *CalendarAdapter) List() ([]*domain.CalendarEvent, error) {
	query := `SELECT * FROM calendar_events ORDER BY start_time ASC`
	return a.selectEvents(query)
}

// ListBetween retrieves events overlapping [start, end).
func (a *CalendarAdapter) ListBetween(start, end time.Time) ([]*domain.CalendarEvent, error) {
	query := `
		SELECT * FROM calendar_events
		WHERE start_time < $2 AND end_time > $1
		ORDER BY start_time ASC`
	return a.selectEvents(query, start, end)
}

// ListByType retrieves events of one type.
func (a *CalendarAdapter) ListByType(eventType domain.EventType) ([]*domain.CalendarEvent, error) {
	query := `SELECT * FROM calendar_events WHERE event_type = $1 ORDER BY start_time ASC`
	return a.selectEvents(query, string(eventType))
}

// ListByEmployee retrieves events linked to an employee.
func (a *CalendarAdapter) ListByEmployee(employeeID int64) ([]*domain.CalendarEvent, error) {
	query := `SELECT * FROM calendar_events WHERE employee_id = $1 ORDER BY start_time ASC`
	return a.selectEvents(query, employeeID)
}

// ListUnsynced retrieves events not yet exported.
func (a *CalendarAdapter) ListUnsynced() ([]*domain.CalendarEvent, error) {
	query := `SELECT * FROM calendar_events WHERE is_synced = FALSE ORDER BY start_time ASC`
	return a.selectEvents(query)
}

func (a *CalendarAdapter) selectEvents(query string, args ...interface{}) ([]*domain.CalendarEvent, error) {
	var rows []calendarEventRow
	if err := a.db.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	events := make([]*domain.CalendarEvent, len(rows))
	for i, row := range rows {
		events[i] = row.toEntity()
	}
	return events, nil
}

// Create inserts an event and fills the generated fields.
func (a *CalendarAdapter) Create(event *domain.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (title, description, start_time, end_time, location, attendees, event_type, employee_id, is_private)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	var employeeID sql.NullInt64
	if event.EmployeeID != nil {
		employeeID = sql.NullInt64{Int64: *event.EmployeeID, Valid: true}
	}

	err := a.db.QueryRow(
		query,
		event.Title,
		event.Description,
		event.StartTime,
		event.EndTime,
		event.Location,
		event.Attendees,
		string(event.EventType),
		employeeID,
		event.IsPrivate,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create calendar event: %w", err)
	}
	return nil
}

// Update updates an event.
func (a *CalendarAdapter) Update(event *domain.CalendarEvent) error {
	query := `
		UPDATE calendar_events
		SET title = $2, description = $3, start_time = $4, end_time = $5,
		    location = $6, attendees = $7, event_type = $8, employee_id = $9,
		    is_private = $10, updated_at = NOW()
		WHERE id = $1`

	var employeeID sql.NullInt64
	if event.EmployeeID != nil {
		employeeID = sql.NullInt64{Int64: *event.EmployeeID, Valid: true}
	}

	result, err := a.db.Exec(
		query,
		event.ID,
		event.Title,
		event.Description,
		event.StartTime,
		event.EndTime,
		event.Location,
		event.Attendees,
		string(event.EventType),
		employeeID,
		event.IsPrivate,
	)
	if err != nil {
		return fmt.Errorf("failed to update calendar event: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("calendar event not found: %d", event.ID)
	}
	return nil
}

// MarkSynced records the external calendar ID for an exported event.
func (a *CalendarAdapter) MarkSynced(id int64, googleCalendarID string) error {
	query := `
		UPDATE calendar_events
		SET google_calendar_id = $2, is_synced = TRUE, updated_at = NOW()
		WHERE id = $1`

	result, err := a.db.Exec(query, id, googleCalendarID)
	if err != nil {
		return fmt.Errorf("failed to mark calendar event synced: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("calendar event not found: %d", id)
	}
	return nil
}

// Delete removes an event.
func (a *CalendarAdapter) Delete(id int64) error {
	result, err := a.db.Exec(`DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("calendar event not found: %d", id)
	}
	return nil
}
