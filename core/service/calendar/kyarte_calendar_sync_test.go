package calendar

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"kyarte_server/core/domain"
)

type memCalendarRepo struct {
	events map[int64]*domain.CalendarEvent
}

func newMemCalendarRepo(events ...*domain.CalendarEvent) *memCalendarRepo {
	repo := &memCalendarRepo{events: make(map[int64]*domain.CalendarEvent)}
	for i, e := range events {
		e.ID = int64(i + 1)
		repo.events[e.ID] = e
	}
	return repo
}

func (r *memCalendarRepo) GetByID(id int64) (*domain.CalendarEvent, error) {
	return r.events[id], nil
}

func (r *memCalendarRepo) List() ([]*domain.CalendarEvent, error) { return nil, nil }

func (r *memCalendarRepo) ListBetween(start, end time.Time) ([]*domain.CalendarEvent, error) {
	return nil, nil
}

func (r *memCalendarRepo) ListByType(domain.EventType) ([]*domain.CalendarEvent, error) {
	return nil, nil
}

func (r *memCalendarRepo) ListByEmployee(int64) ([]*domain.CalendarEvent, error) { return nil, nil }

func (r *memCalendarRepo) ListUnsynced() ([]*domain.CalendarEvent, error) {
	var list []*domain.CalendarEvent
	for id := int64(1); id <= int64(len(r.events)); id++ {
		if e, ok := r.events[id]; ok && !e.IsSynced {
			list = append(list, e)
		}
	}
	return list, nil
}

func (r *memCalendarRepo) Create(e *domain.CalendarEvent) error {
	e.ID = int64(len(r.events) + 1)
	r.events[e.ID] = e
	return nil
}

func (r *memCalendarRepo) Update(e *domain.CalendarEvent) error { return nil }

func (r *memCalendarRepo) MarkSynced(id int64, googleCalendarID string) error {
	event, ok := r.events[id]
	if !ok {
		return errors.New("event not found")
	}
	event.IsSynced = true
	event.GoogleCalendarID = &googleCalendarID
	return nil
}

func (r *memCalendarRepo) Delete(id int64) error { return nil }

type fakePublisher struct {
	published []int64
	failFor   map[int64]bool
}

func (p *fakePublisher) Publish(_ context.Context, event *domain.CalendarEvent) (string, error) {
	if p.failFor[event.ID] {
		return "", errors.New("api unavailable")
	}
	p.published = append(p.published, event.ID)
	return fmt.Sprintf("google-%d", event.ID), nil
}

func TestSyncPending(t *testing.T) {
	repo := newMemCalendarRepo(
		&domain.CalendarEvent{Title: "会議"},
		&domain.CalendarEvent{Title: "非公開面談", IsPrivate: true},
		&domain.CalendarEvent{Title: "有給休暇"},
		&domain.CalendarEvent{Title: "締切", IsSynced: true},
	)
	publisher := &fakePublisher{}
	svc := NewSyncService(repo, publisher)

	if !svc.Enabled() {
		t.Fatal("Enabled() = false with a publisher configured")
	}

	synced, err := svc.SyncPending(context.Background())
	if err != nil {
		t.Fatalf("SyncPending() error = %v", err)
	}
	if synced != 2 {
		t.Errorf("synced = %d, want 2", synced)
	}

	if event, _ := repo.GetByID(1); !event.IsSynced || event.GoogleCalendarID == nil {
		t.Error("event 1 not marked synced")
	}
	if event, _ := repo.GetByID(2); event.IsSynced {
		t.Error("private event must not be exported")
	}
	if event, _ := repo.GetByID(3); event.GoogleCalendarID == nil || *event.GoogleCalendarID != "google-3" {
		t.Error("event 3 missing its external ID")
	}
}

func TestSyncPendingContinuesPastFailures(t *testing.T) {
	repo := newMemCalendarRepo(
		&domain.CalendarEvent{Title: "会議"},
		&domain.CalendarEvent{Title: "有給休暇"},
	)
	publisher := &fakePublisher{failFor: map[int64]bool{1: true}}
	svc := NewSyncService(repo, publisher)

	synced, err := svc.SyncPending(context.Background())
	if err != nil {
		t.Fatalf("SyncPending() error = %v", err)
	}
	if synced != 1 {
		t.Errorf("synced = %d, want 1", synced)
	}
	if event, _ := repo.GetByID(1); event.IsSynced {
		t.Error("failed event must stay unsynced")
	}
	if event, _ := repo.GetByID(2); !event.IsSynced {
		t.Error("event after a failure must still sync")
	}
}

func TestSyncPendingDisabled(t *testing.T) {
	repo := newMemCalendarRepo(&domain.CalendarEvent{Title: "会議"})
	svc := NewSyncService(repo, nil)

	if svc.Enabled() {
		t.Fatal("Enabled() = true without a publisher")
	}

	synced, err := svc.SyncPending(context.Background())
	if err != nil {
		t.Fatalf("SyncPending() error = %v", err)
	}
	if synced != 0 {
		t.Errorf("synced = %d, want 0", synced)
	}
}
