package api

import (
	"context"
	"net/http"
)

// CreateTailor registers a new tailor shop
func (c *Client) CreateTailor(ctx context.Context, tailor Tailor) (*Tailor, error) {
	var created Tailor
	if err := c.do(ctx, http.MethodPost, "/tailors", tailor, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetTailor fetches a tailor by ID
func (c *Client) GetTailor(ctx context.Context, id string) (*Tailor, error) {
	var tailor Tailor
	if err := c.do(ctx, http.MethodGet, pathID("tailors", id), nil, &tailor); err != nil {
		return nil, err
	}
	return &tailor, nil
}

// UpdateTailor applies a partial update to a tailor
func (c *Client) UpdateTailor(ctx context.Context, id string, fields map[string]interface{}) (*Tailor, error) {
	var tailor Tailor
	if err := c.do(ctx, http.MethodPatch, pathID("tailors", id), fields, &tailor); err != nil {
		return nil, err
	}
	return &tailor, nil
}

// DeleteTailor removes a tailor
func (c *Client) DeleteTailor(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, pathID("tailors", id), nil, nil)
}

// ListTailors returns all tailors
func (c *Client) ListTailors(ctx context.Context) ([]Tailor, error) {
	var tailors []Tailor
	if err := c.do(ctx, http.MethodGet, "/tailors", nil, &tailors); err != nil {
		return nil, err
	}
	return tailors, nil
}
