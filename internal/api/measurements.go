package api

import (
	"context"
	"net/http"
	"net/url"
)

// GetMeasurement fetches a measurement by ID
func (c *Client) GetMeasurement(ctx context.Context, id string) (*Measurement, error) {
	var m Measurement
	if err := c.do(ctx, http.MethodGet, pathID("measurements", id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMeasurements returns all measurements
func (c *Client) ListMeasurements(ctx context.Context) ([]Measurement, error) {
	var ms []Measurement
	if err := c.do(ctx, http.MethodGet, "/measurements", nil, &ms); err != nil {
		return nil, err
	}
	return ms, nil
}

// ListMeasurementsByUser returns a user's measurement history
func (c *Client) ListMeasurementsByUser(ctx context.Context, userID string) ([]Measurement, error) {
	var ms []Measurement
	path := "/measurements?userId=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &ms); err != nil {
		return nil, err
	}
	return ms, nil
}

// DeleteMeasurement removes a measurement
func (c *Client) DeleteMeasurement(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, pathID("measurements", id), nil, nil)
}
