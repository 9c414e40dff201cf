package client

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// ListEvents retrieves calendar entries in the [from, to) window.
func (c *Client) ListEvents(ctx context.Context, from, to time.Time) ([]CalendarEvent, error) {
	query := url.Values{
		"from": {from.Format(time.RFC3339)},
		"to":   {to.Format(time.RFC3339)},
	}
	var envelope listEnvelope[CalendarEvent]
	if err := c.Get(ctx, "/calendar/events?"+query.Encode(), &envelope); err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	return envelope.Items, nil
}

// CreateEvent adds a calendar entry.
func (c *Client) CreateEvent(ctx context.Context, in CalendarEvent) (*CalendarEvent, error) {
	var out CalendarEvent
	if err := c.Post(ctx, "/calendar/events", in, &out); err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}
	return &out, nil
}
