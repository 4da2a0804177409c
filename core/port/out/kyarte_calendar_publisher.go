package out

import (
	"context"

	"kyarte_server/core/domain"
)

// CalendarPublisher pushes a local event to an external calendar and
// returns the external event ID.
type CalendarPublisher interface {
	Publish(ctx context.Context, event *domain.CalendarEvent) (string, error)
}
