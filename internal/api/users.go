package api

import (
	"context"
	"net/http"
)

// CreateUser registers a new user
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser fetches a user by ID
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, pathID("users", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial update to a user. Fields holds only the
// attributes to change.
func (c *Client) UpdateUser(ctx context.Context, id string, fields map[string]interface{}) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPatch, pathID("users", id), fields, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, pathID("users", id), nil, nil)
}

// ListUsers returns all users
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
