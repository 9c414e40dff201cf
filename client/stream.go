package client

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// StreamEvent is one server-sent event from the live notification feed.
type StreamEvent struct {
	ID    string
	Event string
	Data  string
}

// StreamHandler consumes stream events. Returning an error stops the stream
// and surfaces the error to the caller.
type StreamHandler func(StreamEvent) error

// handlerError marks a handler-initiated stop so the reconnect loop can tell
// it apart from a broken connection.
type handlerError struct{ err error }

func (e *handlerError) Error() string { return e.err.Error() }
func (e *handlerError) Unwrap() error { return e.err }

// StreamOptions tunes the reconnect behavior of WatchEvents.
type StreamOptions struct {
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func (o *StreamOptions) withDefaults() StreamOptions {
	out := StreamOptions{InitialBackoff: 1 * time.Second, MaxBackoff: 30 * time.Second}
	if o != nil {
		if o.InitialBackoff > 0 {
			out.InitialBackoff = o.InitialBackoff
		}
		if o.MaxBackoff > 0 {
			out.MaxBackoff = o.MaxBackoff
		}
	}
	return out
}

// WatchEvents subscribes to the live SSE feed at GET /events/stream and keeps
// the subscription alive across connection drops with capped exponential
// backoff. Delivery resumes from the last seen event via Last-Event-ID. The
// call returns when ctx is cancelled, the handler returns an error, or the
// session terminally expires.
func (c *Client) WatchEvents(ctx context.Context, opts *StreamOptions, handler StreamHandler) error {
	o := opts.withDefaults()
	backoff := o.InitialBackoff
	lastEventID := ""

	for {
		delivered, lastID, err := c.streamOnce(ctx, "/events/stream", lastEventID, handler)
		if lastID != "" {
			lastEventID = lastID
		}

		var herr *handlerError
		switch {
		case err == nil:
			// Server closed the stream cleanly; reconnect.
		case errors.As(err, &herr):
			return herr.err
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return ctx.Err()
		case errors.Is(err, ErrSessionExpired):
			return err
		default:
			log.Warn().Err(err).Dur("backoff", backoff).Msg("Event stream dropped, reconnecting...")
		}

		// A connection that actually delivered events was healthy; start the
		// backoff ladder over instead of compounding old failures.
		if delivered {
			backoff = o.InitialBackoff
		}
		if err := sleepCtx(ctx, backoff); err != nil {
			return err
		}
		backoff *= 2
		if backoff > o.MaxBackoff {
			backoff = o.MaxBackoff
		}
	}
}

// streamOnce opens one SSE connection and dispatches events until it ends.
// It reports whether at least one event was delivered and the last event ID
// seen, for resumption.
func (c *Client) streamOnce(ctx context.Context, path, lastEventID string, handler StreamHandler) (bool, string, error) {
	headers := http.Header{"Accept": {"text/event-stream"}}
	if lastEventID != "" {
		headers.Set("Last-Event-ID", lastEventID)
	}

	resp, err := c.streaming().execute(ctx, http.MethodGet, path, nil, headers)
	if err != nil {
		return false, "", err
	}
	defer resp.Body.Close()

	delivered := false
	lastID := lastEventID
	err = parseSSE(resp.Body, func(ev StreamEvent) error {
		delivered = true
		if ev.ID != "" {
			lastID = ev.ID
		}
		return handler(ev)
	})
	if err != nil && ctx.Err() != nil {
		var herr *handlerError
		if !errors.As(err, &herr) {
			err = ctx.Err()
		}
	}
	return delivered, lastID, err
}

// parseSSE reads a text/event-stream body and dispatches complete events.
// Handler errors come back wrapped as *handlerError so callers can tell them
// apart from transport failures.
func parseSSE(body io.Reader, dispatch func(StreamEvent) error) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var ev StreamEvent
	var data []string
	flush := func() error {
		if len(data) == 0 && ev.Event == "" && ev.ID == "" {
			return nil
		}
		ev.Data = strings.Join(data, "\n")
		err := dispatch(ev)
		ev = StreamEvent{}
		data = nil
		if err != nil {
			return &handlerError{err: err}
		}
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if err := flush(); err != nil {
				return err
			}
		case strings.HasPrefix(line, ":"):
			// Heartbeat comment; keeps the connection warm.
		case strings.HasPrefix(line, "id:"):
			ev.ID = strings.TrimSpace(strings.TrimPrefix(line, "id:"))
		case strings.HasPrefix(line, "event:"):
			ev.Event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	// Dispatch a trailing event that was not terminated by a blank line.
	return flush()
}
