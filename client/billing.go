package client

import (
	"context"
	"fmt"
	"net/url"
)

// ListInvoices retrieves invoices, optionally restricted to one case.
func (c *Client) ListInvoices(ctx context.Context, caseID string) ([]Invoice, error) {
	path := "/billing/invoices"
	if caseID != "" {
		path += "?case_id=" + url.QueryEscape(caseID)
	}
	var envelope listEnvelope[Invoice]
	if err := c.Get(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return envelope.Items, nil
}

// GetInvoice retrieves one invoice by ID.
func (c *Client) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	var out Invoice
	if err := c.Get(ctx, "/billing/invoices/"+url.PathEscape(id), &out); err != nil {
		return nil, fmt.Errorf("failed to get invoice %s: %w", id, err)
	}
	return &out, nil
}

// RecordTimeEntry logs billable time against a case.
func (c *Client) RecordTimeEntry(ctx context.Context, in TimeEntry) error {
	if in.CaseID == "" {
		return fmt.Errorf("time entry requires a case ID")
	}
	if in.Minutes <= 0 {
		return fmt.Errorf("time entry requires a positive duration")
	}
	if err := c.Post(ctx, "/billing/time-entries", in, nil); err != nil {
		return fmt.Errorf("failed to record time entry: %w", err)
	}
	return nil
}
