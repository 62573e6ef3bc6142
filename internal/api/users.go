package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hammamikhairi/mealcraft/internal/domain"
)

// Compile-time interface check.
var _ domain.UserService = (*Client)(nil)

// Health is the backend's self-reported status.
type Health struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// Healthy reports whether the backend considers itself up.
func (h Health) Healthy() bool { return h.Status == "healthy" }

// Health checks the backend's /health endpoint.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.get(ctx, "/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateUser registers a user and returns the backend's user id.
func (c *Client) CreateUser(ctx context.Context, user domain.UserProfile) (int, error) {
	var resp struct {
		successResponse
		UserID int `json:"user_id"`
	}
	if err := c.post(ctx, "/api/users/create", user, &resp); err != nil {
		return 0, err
	}
	if !resp.Success {
		return 0, fmt.Errorf("api: create user %s: %w", user.Email, domain.ErrUnsuccessful)
	}
	return resp.UserID, nil
}

// User fetches a registered user by email.
func (c *Client) User(ctx context.Context, email string) (*domain.UserProfile, error) {
	var u domain.UserProfile
	if err := c.get(ctx, "/api/users/"+url.PathEscape(email), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// preferencesRequest is the flat body the preferences endpoint expects.
type preferencesRequest struct {
	Email string `json:"email"`
	domain.Preferences
}

// SavePreferences stores preferences for an existing user.
func (c *Client) SavePreferences(ctx context.Context, email string, prefs domain.Preferences) error {
	var resp successResponse
	if err := c.post(ctx, "/api/preferences/save", preferencesRequest{Email: email, Preferences: prefs}, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("api: save preferences for %s: %w", email, domain.ErrUnsuccessful)
	}
	return nil
}

// Preferences fetches the stored preferences for a user.
func (c *Client) Preferences(ctx context.Context, email string) (*domain.Preferences, error) {
	var p domain.Preferences
	if err := c.get(ctx, "/api/preferences/"+url.PathEscape(email), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Options lists the diets, regions, cuisines and stores the backend accepts.
func (c *Client) Options(ctx context.Context) (*domain.Options, error) {
	var o domain.Options
	if err := c.get(ctx, "/api/options", nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
