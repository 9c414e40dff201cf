package client

import (
	"context"
	"fmt"
	"net/url"
)

// ListCases retrieves the cases visible to the session, optionally filtered
// by status.
func (c *Client) ListCases(ctx context.Context, status string) ([]Case, error) {
	path := "/cases"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var envelope listEnvelope[Case]
	if err := c.Get(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return envelope.Items, nil
}

// GetCase retrieves one case by ID.
func (c *Client) GetCase(ctx context.Context, id string) (*Case, error) {
	var out Case
	if err := c.Get(ctx, "/cases/"+url.PathEscape(id), &out); err != nil {
		return nil, fmt.Errorf("failed to get case %s: %w", id, err)
	}
	return &out, nil
}

// CreateCase opens a new case.
func (c *Client) CreateCase(ctx context.Context, in CaseInput) (*Case, error) {
	var out Case
	if err := c.Post(ctx, "/cases", in, &out); err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}
	return &out, nil
}

// UpdateCase patches the writable fields of a case.
func (c *Client) UpdateCase(ctx context.Context, id string, in CaseInput) (*Case, error) {
	var out Case
	if err := c.Patch(ctx, "/cases/"+url.PathEscape(id), in, &out); err != nil {
		return nil, fmt.Errorf("failed to update case %s: %w", id, err)
	}
	return &out, nil
}

// CloseCase marks a case closed.
func (c *Client) CloseCase(ctx context.Context, id string) error {
	if err := c.Post(ctx, "/cases/"+url.PathEscape(id)+"/close", nil, nil); err != nil {
		return fmt.Errorf("failed to close case %s: %w", id, err)
	}
	return nil
}

// ListCaseDocuments retrieves the documents attached to a case.
func (c *Client) ListCaseDocuments(ctx context.Context, caseID string) ([]Document, error) {
	var envelope listEnvelope[Document]
	if err := c.Get(ctx, "/cases/"+url.PathEscape(caseID)+"/documents", &envelope); err != nil {
		return nil, fmt.Errorf("failed to list documents for case %s: %w", caseID, err)
	}
	return envelope.Items, nil
}
