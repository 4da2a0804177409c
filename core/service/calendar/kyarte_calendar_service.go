// Package calendar implements calendar event management and export.
package calendar

import (
	"time"

	"kyarte_server/core/domain"
	"kyarte_server/pkg/apperr"
)

// Service handles calendar event CRUD and range queries.
type Service struct {
	events domain.CalendarRepository
}

func NewService(events domain.CalendarRepository) *Service {
	return &Service{events: events}
}

func (s *Service) Get(id int64) (*domain.CalendarEvent, error) {
	event, err := s.events.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperr.NotFound("calendar event")
	}
	return event, nil
}

func (s *Service) List() ([]*domain.CalendarEvent, error) {
	return s.events.List()
}

func (s *Service) ListBetween(start, end time.Time) ([]*domain.CalendarEvent, error) {
	if !end.After(start) {
		return nil, apperr.InvalidInput("end", "must be after start")
	}
	return s.events.ListBetween(start, end)
}

// Today returns events overlapping the current calendar day.
func (s *Service) Today() ([]*domain.CalendarEvent, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.events.ListBetween(start, start.AddDate(0, 0, 1))
}

// Week returns events in the next seven days.
func (s *Service) Week() ([]*domain.CalendarEvent, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.events.ListBetween(start, start.AddDate(0, 0, 7))
}

func (s *Service) ListByType(eventType domain.EventType) ([]*domain.CalendarEvent, error) {
	return s.events.ListByType(eventType)
}

func (s *Service) ListByEmployee(employeeID int64) ([]*domain.CalendarEvent, error) {
	return s.events.ListByEmployee(employeeID)
}

func (s *Service) Create(event *domain.CalendarEvent) error {
	if event.Title == "" {
		return apperr.InvalidInput("title", "must not be empty")
	}
	if !event.EndTime.After(event.StartTime) {
		return apperr.InvalidInput("end_time", "must be after start_time")
	}
	return s.events.Create(event)
}

func (s *Service) Update(event *domain.CalendarEvent) error {
	if event.Title == "" {
		return apperr.InvalidInput("title", "must not be empty")
	}
	if !event.EndTime.After(event.StartTime) {
		return apperr.InvalidInput("end_time", "must be after start_time")
	}
	return s.events.Update(event)
}

func (s *Service) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.events.Delete(id)
}
