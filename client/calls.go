package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListCalls retrieves the most recent logged calls.
func (c *Client) ListCalls(ctx context.Context, limit int) ([]CallRecord, error) {
	path := "/calls"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var envelope listEnvelope[CallRecord]
	if err := c.Get(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("failed to list calls: %w", err)
	}
	return envelope.Items, nil
}

// GetCallTranscript retrieves the transcript of a call. Transcription may
// still be pending, in which case the API answers 404.
func (c *Client) GetCallTranscript(ctx context.Context, callID string) (*CallTranscript, error) {
	var out CallTranscript
	if err := c.Get(ctx, "/calls/"+url.PathEscape(callID)+"/transcript", &out); err != nil {
		return nil, fmt.Errorf("failed to get transcript for call %s: %w", callID, err)
	}
	return &out, nil
}
