package calendar

import (
	"context"

	"kyarte_server/core/domain"
	"kyarte_server/core/port/out"
	"kyarte_server/pkg/logger"
)

// SyncService pushes locally created events to an external calendar.
// Private events are never exported.
type SyncService struct {
	events    domain.CalendarRepository
	publisher out.CalendarPublisher
}

func NewSyncService(events domain.CalendarRepository, publisher out.CalendarPublisher) *SyncService {
	return &SyncService{events: events, publisher: publisher}
}

// Enabled reports whether an external calendar is configured.
func (s *SyncService) Enabled() bool {
	return s.publisher != nil
}

// SyncPending publishes every unsynced, non-private event and records
// the external ID. One failing event does not stop the rest.
func (s *SyncService) SyncPending(ctx context.Context) (int, error) {
	if s.publisher == nil {
		return 0, nil
	}

	pending, err := s.events.ListUnsynced()
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, event := range pending {
		if event.IsPrivate {
			continue
		}
		externalID, err := s.publisher.Publish(ctx, event)
		if err != nil {
			logger.WithError(err).WithField("event_id", event.ID).Warn("calendar export failed")
			continue
		}
		if err := s.events.MarkSynced(event.ID, externalID); err != nil {
			logger.WithError(err).WithField("event_id", event.ID).Error("failed to record calendar sync state")
			continue
		}
		synced++
	}
	return synced, nil
}
