package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSSE_FieldsAndComments(t *testing.T) {
	raw := strings.Join([]string{
		": heartbeat",
		"id: 7",
		"event: case.updated",
		"data: {\"case_id\":\"c1\"}",
		"",
		"data: first line",
		"data: second line",
		"",
	}, "\n")

	var events []StreamEvent
	err := parseSSE(strings.NewReader(raw), func(ev StreamEvent) error {
		events = append(events, ev)
		return nil
	})

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "7", events[0].ID)
	assert.Equal(t, "case.updated", events[0].Event)
	assert.Equal(t, `{"case_id":"c1"}`, events[0].Data)
	assert.Equal(t, "first line\nsecond line", events[1].Data)
}

func TestParseSSE_TrailingEventWithoutBlankLine(t *testing.T) {
	raw := "event: ping\ndata: pong"

	var events []StreamEvent
	err := parseSSE(strings.NewReader(raw), func(ev StreamEvent) error {
		events = append(events, ev)
		return nil
	})

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ping", events[0].Event)
	assert.Equal(t, "pong", events[0].Data)
}

func TestParseSSE_HandlerErrorIsMarked(t *testing.T) {
	boom := errors.New("boom")
	err := parseSSE(strings.NewReader("data: x\n\n"), func(StreamEvent) error {
		return boom
	})

	var herr *handlerError
	require.ErrorAs(t, err, &herr)
	assert.ErrorIs(t, herr.err, boom)
}

func TestWatchEvents_ResumesWithLastEventID(t *testing.T) {
	var conns atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := conns.Add(1)
		w.Header().Set("Content-Type", "text/event-stream")
		switch n {
		case 1:
			assert.Empty(t, r.Header.Get("Last-Event-ID"))
			_, _ = w.Write([]byte("id: 1\ndata: first\n\n"))
		default:
			assert.Equal(t, "1", r.Header.Get("Last-Event-ID"))
			_, _ = w.Write([]byte("id: 2\ndata: second\n\n"))
		}
	}))
	defer server.Close()

	stop := errors.New("done watching")
	var got []string
	c := New(server.URL, &stubSession{access: "tok"})
	err := c.WatchEvents(context.Background(), &StreamOptions{
		InitialBackoff: 5 * time.Millisecond,
		MaxBackoff:     20 * time.Millisecond,
	}, func(ev StreamEvent) error {
		got = append(got, ev.Data)
		if len(got) == 2 {
			return stop
		}
		return nil
	})

	require.ErrorIs(t, err, stop, "the handler's error must come back unwrapped")
	assert.Equal(t, []string{"first", "second"}, got)
	assert.GreaterOrEqual(t, conns.Load(), int64(2))
}

func TestWatchEvents_SessionExpiryIsTerminal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"token expired"}`))
	}))
	defer server.Close()

	session := &stubSession{access: "stale", refreshErr: errors.New("refresh rejected")}
	c := New(server.URL, session)
	err := c.WatchEvents(context.Background(), nil, func(StreamEvent) error { return nil })

	require.ErrorIs(t, err, ErrSessionExpired, "an unrecoverable auth failure must not be retried forever")
}

func TestWatchEvents_StopsOnContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: hello\n\n"))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := New(server.URL, &stubSession{access: "tok"})

	done := make(chan error, 1)
	go func() {
		done <- c.WatchEvents(ctx, nil, func(ev StreamEvent) error {
			cancel()
			return nil
		})
	}()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("WatchEvents did not stop after context cancellation")
	}
}
