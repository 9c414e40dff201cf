package client

import (
	"context"
	"fmt"
	"net/url"
)

// ListContacts retrieves the address book, optionally filtered by a search
// query matched against names, emails, and companies.
func (c *Client) ListContacts(ctx context.Context, query string) ([]Contact, error) {
	path := "/contacts"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}
	var envelope listEnvelope[Contact]
	if err := c.Get(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return envelope.Items, nil
}

// GetContact retrieves one contact by ID.
func (c *Client) GetContact(ctx context.Context, id string) (*Contact, error) {
	var out Contact
	if err := c.Get(ctx, "/contacts/"+url.PathEscape(id), &out); err != nil {
		return nil, fmt.Errorf("failed to get contact %s: %w", id, err)
	}
	return &out, nil
}

// CreateContact adds a contact to the address book.
func (c *Client) CreateContact(ctx context.Context, in Contact) (*Contact, error) {
	var out Contact
	if err := c.Post(ctx, "/contacts", in, &out); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return &out, nil
}
