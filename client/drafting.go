package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// draftChunk is one SSE payload from the drafting service.
type draftChunk struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// StreamDraft asks the AI drafting service for a document and streams the
// generated text to onText as it arrives. The call returns once the service
// signals completion or the stream breaks; a draft stream is one-shot and is
// not reconnected.
func (c *Client) StreamDraft(ctx context.Context, in DraftRequest, onText func(string) error) error {
	if in.CaseID == "" || in.TemplateSlug == "" {
		return fmt.Errorf("draft request requires a case ID and a template")
	}

	payload, err := marshalBody(in)
	if err != nil {
		return err
	}
	headers := http.Header{"Accept": {"text/event-stream"}}
	resp, err := c.streaming().execute(ctx, http.MethodPost, "/ai/drafts", payload, headers)
	if err != nil {
		return fmt.Errorf("draft request failed: %w", err)
	}
	defer resp.Body.Close()

	err = parseSSE(resp.Body, func(ev StreamEvent) error {
		var chunk draftChunk
		if err := json.Unmarshal([]byte(ev.Data), &chunk); err != nil {
			return fmt.Errorf("malformed draft chunk: %w", err)
		}
		if chunk.Done {
			return errDraftComplete
		}
		return onText(chunk.Text)
	})
	if err != nil {
		var herr *handlerError
		if errors.As(err, &herr) {
			if errors.Is(herr.err, errDraftComplete) {
				return nil
			}
			return herr.err
		}
		return fmt.Errorf("draft stream failed: %w", err)
	}
	return nil
}

// errDraftComplete ends the SSE loop when the service marks the draft done.
var errDraftComplete = errors.New("draft complete")
