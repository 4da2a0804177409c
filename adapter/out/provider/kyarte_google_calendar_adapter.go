// Package provider implements adapters for external service APIs.
package provider

import (
	"context"
	"fmt"
	"time"

	"kyarte_server/core/domain"
	"kyarte_server/pkg/logger"

	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendarAdapter implements out.CalendarPublisher for Google
// Calendar using a stored refresh token. Calls run through a circuit
// breaker so a failing Google API does not stall the sync sweep.
type GoogleCalendarAdapter struct {
	oauthConfig *oauth2.Config
	token       *oauth2.Token
	calendarID  string
	cb          *gobreaker.CircuitBreaker
}

// GoogleCalendarConfig holds Google Calendar configuration.
type GoogleCalendarConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	RefreshToken string
	CalendarID   string
}

func NewGoogleCalendarAdapter(cfg *GoogleCalendarConfig) *GoogleCalendarAdapter {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       []string{calendar.CalendarEventsScope},
		Endpoint:     google.Endpoint,
	}

	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	cbSettings := gobreaker.Settings{
		Name:     "google-calendar",
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	}

	return &GoogleCalendarAdapter{
		oauthConfig: oauthConfig,
		token:       &oauth2.Token{RefreshToken: cfg.RefreshToken},
		calendarID:  calendarID,
		cb:          gobreaker.NewCircuitBreaker(cbSettings),
	}
}

// getService creates a Calendar service; the oauth2 client refreshes
// the access token as needed.
func (a *GoogleCalendarAdapter) getService(ctx context.Context) (*calendar.Service, error) {
	client := a.oauthConfig.Client(ctx, a.token)
	return calendar.NewService(ctx, option.WithHTTPClient(client))
}

// Publish inserts a local event into the configured Google calendar
// and returns the created event ID.
func (a *GoogleCalendarAdapter) Publish(ctx context.Context, event *domain.CalendarEvent) (string, error) {
	svc, err := a.getService(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create calendar service: %w", err)
	}

	description := event.Description
	if event.Attendees != "" {
		// Attendees are display names, not addresses; keep them in the body.
		description += "\n参加者: " + event.Attendees
	}

	visibility := "default"
	if event.IsPrivate {
		visibility = "private"
	}

	gcalEvent := &calendar.Event{
		Summary:     event.Title,
		Description: description,
		Location:    event.Location,
		Visibility:  visibility,
		Start: &calendar.EventDateTime{
			DateTime: event.StartTime.Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: event.EndTime.Format(time.RFC3339),
		},
	}

	result, err := a.cb.Execute(func() (interface{}, error) {
		return svc.Events.Insert(a.calendarID, gcalEvent).Context(ctx).Do()
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert calendar event: %w", err)
	}

	return result.(*calendar.Event).Id, nil
}
